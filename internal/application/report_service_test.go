package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsflux/inspection-service/internal/domain"
	"github.com/opsflux/inspection-service/pkg/logging"
)

func newTestReportService(t *testing.T) (*ReportService, *InspectionService) {
	t.Helper()
	inspections, _, _ := newTestService(t)
	logger := logging.New(logging.DefaultConfig("inspection-service-test"))
	return NewReportService(inspections, logger, nil), inspections
}

func completeChecklist(t *testing.T, service *InspectionService, arrivalID string) {
	t.Helper()
	for _, item := range domain.ChecklistItems() {
		_, err := service.SetChecklistItem(context.Background(), SetChecklistItemCommand{
			ArrivalID: arrivalID,
			Item:      item,
			Done:      true,
		})
		require.NoError(t, err)
	}
}

func TestGenerateReport_GateRejectsIncompleteChecklist(t *testing.T) {
	reports, inspections := newTestReportService(t)
	openWorkflow(t, inspections)

	report, err := reports.GenerateReport(context.Background(), GenerateReportCommand{ArrivalID: "ARR-2024-001"})
	assert.ErrorIs(t, err, domain.ErrReportNotEligible)
	assert.Nil(t, report)

	eligible, progress, err := reports.CheckEligibility(context.Background(), "ARR-2024-001")
	require.NoError(t, err)
	assert.False(t, eligible)
	assert.Equal(t, 0, progress.Completed)
}

func TestGenerateReport(t *testing.T) {
	reports, inspections := newTestReportService(t)
	openWorkflow(t, inspections)
	completeChecklist(t, inspections, "ARR-2024-001")

	ctx := context.Background()
	_, _, err := inspections.RecordDiscrepancy(ctx, RecordDiscrepancyCommand{
		ArrivalID:   "ARR-2024-001",
		Type:        string(domain.DiscrepancyMissingPackage),
		Description: "one case short against manifest",
		Severity:    string(domain.SeverityHigh),
	})
	require.NoError(t, err)
	_, err = inspections.SetSummary(ctx, SetSummaryCommand{
		ArrivalID:     "ARR-2024-001",
		TotalPackages: 240,
		TotalWeight:   1250.5,
	})
	require.NoError(t, err)

	report, err := reports.GenerateReport(ctx, GenerateReportCommand{ArrivalID: "ARR-2024-001"})
	require.NoError(t, err)

	assert.Equal(t, "ARR-2024-001", report.ArrivalID)
	assert.Equal(t, "MV Atlantic Carrier", report.VesselName)
	assert.Equal(t, "J. Dupont", report.Inspector)
	assert.Equal(t, "inspected", report.Status)
	assert.Equal(t, 240, report.TotalPackages)
	assert.Equal(t, 1250.5, report.TotalWeight)
	assert.False(t, report.GeneratedAt.IsZero())
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, 1, report.DiscrepancySummary.Total)
	assert.Equal(t, 1, report.DiscrepancySummary.CriticalOrHigh)
	for _, item := range domain.ChecklistItems() {
		assert.True(t, report.Checklist[item])
	}

	// The workflow remembers report generation
	workflow, err := inspections.GetWorkflow(ctx, "ARR-2024-001")
	require.NoError(t, err)
	require.NotNil(t, workflow.ReportGeneratedAt)
}

func TestGenerateReport_RepeatAllowed(t *testing.T) {
	reports, inspections := newTestReportService(t)
	openWorkflow(t, inspections)
	completeChecklist(t, inspections, "ARR-2024-001")

	ctx := context.Background()
	first, err := reports.GenerateReport(ctx, GenerateReportCommand{ArrivalID: "ARR-2024-001"})
	require.NoError(t, err)

	second, err := reports.GenerateReport(ctx, GenerateReportCommand{ArrivalID: "ARR-2024-001"})
	require.NoError(t, err)
	assert.True(t, second.GeneratedAt.Equal(first.GeneratedAt) || second.GeneratedAt.After(first.GeneratedAt))
}

func TestGenerateReport_GateClosesWhenItemUnchecked(t *testing.T) {
	reports, inspections := newTestReportService(t)
	openWorkflow(t, inspections)
	completeChecklist(t, inspections, "ARR-2024-001")

	ctx := context.Background()
	_, err := inspections.SetChecklistItem(ctx, SetChecklistItemCommand{
		ArrivalID: "ARR-2024-001",
		Item:      domain.ChecklistWeightVerified,
		Done:      false,
	})
	require.NoError(t, err)

	_, err = reports.GenerateReport(ctx, GenerateReportCommand{ArrivalID: "ARR-2024-001"})
	assert.ErrorIs(t, err, domain.ErrReportNotEligible)
}
