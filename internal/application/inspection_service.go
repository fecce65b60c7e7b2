package application

import (
	"context"
	"sync"
	"time"

	"github.com/opsflux/inspection-service/internal/domain"
	"github.com/opsflux/inspection-service/pkg/logging"
	"github.com/opsflux/inspection-service/pkg/metrics"
)

// InspectionService handles inspection workflow operations
type InspectionService struct {
	repo      domain.InspectionWorkflowRepository
	publisher domain.EventPublisher
	logger    *logging.Logger
	metrics   *metrics.Metrics

	// one lock per arrival so concurrent mutations of the same workflow
	// serialize while different arrivals proceed independently
	locks sync.Map
}

// NewInspectionService creates a new InspectionService
func NewInspectionService(
	repo domain.InspectionWorkflowRepository,
	publisher domain.EventPublisher,
	logger *logging.Logger,
	m *metrics.Metrics,
) *InspectionService {
	return &InspectionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
	}
}

func (s *InspectionService) lockArrival(arrivalID string) func() {
	value, _ := s.locks.LoadOrStore(arrivalID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// OpenInspection opens a new inspection workflow for a vessel arrival
func (s *InspectionService) OpenInspection(ctx context.Context, cmd OpenInspectionCommand) (*domain.InspectionWorkflow, error) {
	unlock := s.lockArrival(cmd.ArrivalID)
	defer unlock()

	existing, err := s.repo.FindByArrivalID(ctx, cmd.ArrivalID)
	if err != nil && err != domain.ErrWorkflowNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrWorkflowAlreadyExists
	}

	workflow, err := domain.NewInspectionWorkflow(cmd.ArrivalID, cmd.VesselName, cmd.ArrivalDate, cmd.ArrivalTime, cmd.Inspector)
	if err != nil {
		return nil, err
	}

	if err := s.saveAndPublish(ctx, workflow); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordInspectionOpened()
	}
	s.logger.Info("Opened inspection workflow",
		"arrivalId", workflow.ArrivalID,
		"vesselName", workflow.VesselName,
		"inspector", workflow.Inspector,
	)

	return workflow, nil
}

// AssignInspector assigns the inspector to a workflow
func (s *InspectionService) AssignInspector(ctx context.Context, cmd AssignInspectorCommand) (*domain.InspectionWorkflow, error) {
	return s.mutate(ctx, cmd.ArrivalID, func(workflow *domain.InspectionWorkflow) error {
		if err := workflow.SetInspector(cmd.Inspector); err != nil {
			return err
		}
		s.logger.Info("Assigned inspector",
			"arrivalId", cmd.ArrivalID,
			"inspector", cmd.Inspector,
		)
		return nil
	})
}

// SetChecklistItem updates one checklist item
func (s *InspectionService) SetChecklistItem(ctx context.Context, cmd SetChecklistItemCommand) (*domain.InspectionWorkflow, error) {
	workflow, err := s.mutate(ctx, cmd.ArrivalID, func(workflow *domain.InspectionWorkflow) error {
		return workflow.SetChecklistItem(cmd.Item, cmd.Done)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordChecklistItemSet(cmd.Item, cmd.Done)
		if workflow.Status == domain.StatusInspected {
			s.metrics.RecordInspectionCompleted()
		}
	}
	s.logger.Info("Checklist item updated",
		"arrivalId", cmd.ArrivalID,
		"item", cmd.Item,
		"done", cmd.Done,
		"status", string(workflow.Status),
	)

	return workflow, nil
}

// RecordDiscrepancy records a new discrepancy on a workflow
func (s *InspectionService) RecordDiscrepancy(ctx context.Context, cmd RecordDiscrepancyCommand) (*domain.InspectionWorkflow, *domain.Discrepancy, error) {
	var discrepancy *domain.Discrepancy

	detectedBy := cmd.DetectedBy

	workflow, err := s.mutate(ctx, cmd.ArrivalID, func(workflow *domain.InspectionWorkflow) error {
		if detectedBy == "" {
			detectedBy = workflow.Inspector
		}

		var err error
		discrepancy, err = workflow.RecordDiscrepancy(
			domain.DiscrepancyType(cmd.Type),
			cmd.Description,
			domain.Severity(cmd.Severity),
			detectedBy,
			domain.DiscrepancyFields{
				ManifestID:    cmd.ManifestID,
				PackageNumber: cmd.PackageNumber,
				ExpectedValue: cmd.ExpectedValue,
				ActualValue:   cmd.ActualValue,
			},
		)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordDiscrepancyRecorded(cmd.Type, cmd.Severity)
	}
	s.logger.Info("Recorded discrepancy",
		"arrivalId", cmd.ArrivalID,
		"discrepancyId", discrepancy.DiscrepancyID,
		"type", cmd.Type,
		"severity", cmd.Severity,
	)

	return workflow, discrepancy, nil
}

// ResolveDiscrepancy marks a discrepancy as resolved
func (s *InspectionService) ResolveDiscrepancy(ctx context.Context, cmd ResolveDiscrepancyCommand) (*domain.InspectionWorkflow, error) {
	return s.mutate(ctx, cmd.ArrivalID, func(workflow *domain.InspectionWorkflow) error {
		if err := workflow.ResolveDiscrepancy(cmd.DiscrepancyID, cmd.Resolution); err != nil {
			return err
		}
		s.logger.Info("Resolved discrepancy",
			"arrivalId", cmd.ArrivalID,
			"discrepancyId", cmd.DiscrepancyID,
		)
		return nil
	})
}

// RemoveDiscrepancy removes a discrepancy from a workflow
func (s *InspectionService) RemoveDiscrepancy(ctx context.Context, cmd RemoveDiscrepancyCommand) (*domain.InspectionWorkflow, error) {
	return s.mutate(ctx, cmd.ArrivalID, func(workflow *domain.InspectionWorkflow) error {
		if err := workflow.RemoveDiscrepancy(cmd.DiscrepancyID); err != nil {
			return err
		}
		s.logger.Info("Removed discrepancy",
			"arrivalId", cmd.ArrivalID,
			"discrepancyId", cmd.DiscrepancyID,
		)
		return nil
	})
}

// SetSummary records the cargo counters
func (s *InspectionService) SetSummary(ctx context.Context, cmd SetSummaryCommand) (*domain.InspectionWorkflow, error) {
	return s.mutate(ctx, cmd.ArrivalID, func(workflow *domain.InspectionWorkflow) error {
		if err := workflow.SetSummary(cmd.TotalPackages, cmd.TotalWeight); err != nil {
			return err
		}
		s.logger.Info("Recorded cargo summary",
			"arrivalId", cmd.ArrivalID,
			"totalPackages", cmd.TotalPackages,
			"totalWeight", cmd.TotalWeight,
		)
		return nil
	})
}

// SetNotes replaces the free-text notes
func (s *InspectionService) SetNotes(ctx context.Context, cmd SetNotesCommand) (*domain.InspectionWorkflow, error) {
	return s.mutate(ctx, cmd.ArrivalID, func(workflow *domain.InspectionWorkflow) error {
		return workflow.SetNotes(cmd.Notes)
	})
}

// StartInspection records when inspection work started
func (s *InspectionService) StartInspection(ctx context.Context, cmd StartInspectionCommand) (*domain.InspectionWorkflow, error) {
	startTime, err := parseTimeOrNow(cmd.StartTime)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, cmd.ArrivalID, func(workflow *domain.InspectionWorkflow) error {
		if err := workflow.StartInspection(startTime); err != nil {
			return err
		}
		s.logger.Info("Inspection started",
			"arrivalId", cmd.ArrivalID,
			"inspector", workflow.Inspector,
		)
		return nil
	})
}

// FinalizeInspection records when inspection work stopped
func (s *InspectionService) FinalizeInspection(ctx context.Context, cmd FinalizeInspectionCommand) (*domain.InspectionWorkflow, error) {
	endTime, err := parseTimeOrNow(cmd.EndTime)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, cmd.ArrivalID, func(workflow *domain.InspectionWorkflow) error {
		if err := workflow.FinalizeInspection(endTime); err != nil {
			return err
		}
		s.logger.Info("Inspection finalized",
			"arrivalId", cmd.ArrivalID,
			"status", string(workflow.Status),
			"discrepancies", len(workflow.Discrepancies),
		)
		return nil
	})
}

// GetWorkflow retrieves a workflow by arrival id
func (s *InspectionService) GetWorkflow(ctx context.Context, arrivalID string) (*domain.InspectionWorkflow, error) {
	return s.repo.FindByArrivalID(ctx, arrivalID)
}

// GetChecklistProgress returns checklist completion for an arrival
func (s *InspectionService) GetChecklistProgress(ctx context.Context, arrivalID string) (domain.ChecklistProgress, error) {
	workflow, err := s.repo.FindByArrivalID(ctx, arrivalID)
	if err != nil {
		return domain.ChecklistProgress{}, err
	}
	return workflow.ChecklistProgress(), nil
}

// GetDiscrepancySummary returns the discrepancy aggregate for an arrival
func (s *InspectionService) GetDiscrepancySummary(ctx context.Context, arrivalID string) (domain.DiscrepancySummary, error) {
	workflow, err := s.repo.FindByArrivalID(ctx, arrivalID)
	if err != nil {
		return domain.DiscrepancySummary{}, err
	}
	return workflow.DiscrepancySummary(), nil
}

// ListWorkflows retrieves workflows matching the filter
func (s *InspectionService) ListWorkflows(ctx context.Context, filter domain.WorkflowFilter, pagination domain.Pagination) ([]*domain.InspectionWorkflow, error) {
	return s.repo.FindAll(ctx, filter, pagination)
}

// GetWorkflowsByStatus retrieves workflows with a given derived status
func (s *InspectionService) GetWorkflowsByStatus(ctx context.Context, status domain.InspectionStatus, pagination domain.Pagination) ([]*domain.InspectionWorkflow, error) {
	return s.repo.FindByStatus(ctx, status, pagination)
}

// GetWorkflowsByInspector retrieves workflows assigned to an inspector
func (s *InspectionService) GetWorkflowsByInspector(ctx context.Context, inspector string, pagination domain.Pagination) ([]*domain.InspectionWorkflow, error) {
	return s.repo.FindByInspector(ctx, inspector, pagination)
}

// CountWorkflows returns the number of workflows matching the filter
func (s *InspectionService) CountWorkflows(ctx context.Context, filter domain.WorkflowFilter) (int64, error) {
	return s.repo.Count(ctx, filter)
}

// mutate loads the workflow, applies fn, persists it and publishes the
// accumulated domain events
func (s *InspectionService) mutate(ctx context.Context, arrivalID string, fn func(*domain.InspectionWorkflow) error) (*domain.InspectionWorkflow, error) {
	unlock := s.lockArrival(arrivalID)
	defer unlock()

	workflow, err := s.repo.FindByArrivalID(ctx, arrivalID)
	if err != nil {
		return nil, err
	}

	if err := fn(workflow); err != nil {
		return nil, err
	}

	if err := s.saveAndPublish(ctx, workflow); err != nil {
		return nil, err
	}

	return workflow, nil
}

func (s *InspectionService) saveAndPublish(ctx context.Context, workflow *domain.InspectionWorkflow) error {
	if err := s.repo.Save(ctx, workflow); err != nil {
		return err
	}

	events := workflow.GetDomainEvents()
	if len(events) > 0 && s.publisher != nil {
		// Event delivery is best-effort once the state change is durable
		if err := s.publisher.PublishAll(ctx, events); err != nil {
			s.logger.WithError(err).Error("Failed to publish domain events",
				"arrivalId", workflow.ArrivalID,
				"eventCount", len(events),
			)
		}
	}
	workflow.ClearDomainEvents()

	return nil
}

func parseTimeOrNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(time.RFC3339, value)
}
