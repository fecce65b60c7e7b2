package application

import (
	"context"
	"time"

	"github.com/opsflux/inspection-service/internal/domain"
	"github.com/opsflux/inspection-service/pkg/logging"
	"github.com/opsflux/inspection-service/pkg/metrics"
)

// InspectionReport is the compliance report assembled from a completed
// inspection workflow
type InspectionReport struct {
	ArrivalID           string                    `json:"arrivalId"`
	VesselName          string                    `json:"vesselName"`
	ArrivalDate         string                    `json:"arrivalDate"`
	ArrivalTime         string                    `json:"arrivalTime,omitempty"`
	Inspector           string                    `json:"inspector"`
	InspectionStartTime *time.Time                `json:"inspectionStartTime,omitempty"`
	InspectionEndTime   *time.Time                `json:"inspectionEndTime,omitempty"`
	Checklist           map[string]bool           `json:"checklist"`
	Discrepancies       []domain.Discrepancy      `json:"discrepancies"`
	DiscrepancySummary  domain.DiscrepancySummary `json:"discrepancySummary"`
	TotalPackages       int                       `json:"totalPackages"`
	TotalWeight         float64                   `json:"totalWeight"`
	Notes               string                    `json:"notes,omitempty"`
	Status              string                    `json:"status"`
	GeneratedAt         time.Time                 `json:"generatedAt"`
}

// ReportService generates compliance reports from inspection workflows
type ReportService struct {
	inspections *InspectionService
	logger      *logging.Logger
	metrics     *metrics.Metrics
}

// NewReportService creates a new ReportService
func NewReportService(inspections *InspectionService, logger *logging.Logger, m *metrics.Metrics) *ReportService {
	return &ReportService{
		inspections: inspections,
		logger:      logger,
		metrics:     m,
	}
}

// CheckEligibility reports whether the workflow may generate a report
func (s *ReportService) CheckEligibility(ctx context.Context, arrivalID string) (bool, domain.ChecklistProgress, error) {
	workflow, err := s.inspections.GetWorkflow(ctx, arrivalID)
	if err != nil {
		return false, domain.ChecklistProgress{}, err
	}
	return workflow.IsReportEligible(), workflow.ChecklistProgress(), nil
}

// GenerateReport produces the compliance report for an arrival. The checklist
// must be fully complete; otherwise the request is rejected without touching
// the workflow.
func (s *ReportService) GenerateReport(ctx context.Context, cmd GenerateReportCommand) (*InspectionReport, error) {
	workflow, err := s.inspections.mutate(ctx, cmd.ArrivalID, func(workflow *domain.InspectionWorkflow) error {
		return workflow.MarkReportGenerated()
	})
	if err != nil {
		if err == domain.ErrReportNotEligible && s.metrics != nil {
			s.metrics.RecordReportGateRejection()
		}
		return nil, err
	}

	report := buildReport(workflow)

	if s.metrics != nil {
		s.metrics.RecordReportGenerated()
	}
	s.logger.Info("Generated inspection report",
		"arrivalId", workflow.ArrivalID,
		"inspector", workflow.Inspector,
		"discrepancies", report.DiscrepancySummary.Total,
		"criticalOrHigh", report.DiscrepancySummary.CriticalOrHigh,
	)

	return report, nil
}

func buildReport(workflow *domain.InspectionWorkflow) *InspectionReport {
	generatedAt := time.Now().UTC()
	if workflow.ReportGeneratedAt != nil {
		generatedAt = *workflow.ReportGeneratedAt
	}

	checklist := make(map[string]bool, len(workflow.Checklist))
	for item, done := range workflow.Checklist {
		checklist[item] = done
	}

	discrepancies := make([]domain.Discrepancy, len(workflow.Discrepancies))
	copy(discrepancies, workflow.Discrepancies)

	return &InspectionReport{
		ArrivalID:           workflow.ArrivalID,
		VesselName:          workflow.VesselName,
		ArrivalDate:         workflow.ArrivalDate,
		ArrivalTime:         workflow.ArrivalTime,
		Inspector:           workflow.Inspector,
		InspectionStartTime: workflow.InspectionStartTime,
		InspectionEndTime:   workflow.InspectionEndTime,
		Checklist:           checklist,
		Discrepancies:       discrepancies,
		DiscrepancySummary:  workflow.DiscrepancySummary(),
		TotalPackages:       workflow.TotalPackages,
		TotalWeight:         workflow.TotalWeight,
		Notes:               workflow.Notes,
		Status:              string(workflow.Status),
		GeneratedAt:         generatedAt,
	}
}
