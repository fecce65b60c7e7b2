package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsflux/inspection-service/internal/domain"
	"github.com/opsflux/inspection-service/pkg/logging"
)

// mockRepository is an in-memory InspectionWorkflowRepository
type mockRepository struct {
	mu        sync.Mutex
	workflows map[string]*domain.InspectionWorkflow
	saveErr   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{workflows: make(map[string]*domain.InspectionWorkflow)}
}

func (r *mockRepository) Save(ctx context.Context, workflow *domain.InspectionWorkflow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.workflows[workflow.ArrivalID] = workflow
	return nil
}

func (r *mockRepository) FindByArrivalID(ctx context.Context, arrivalID string) (*domain.InspectionWorkflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	workflow, exists := r.workflows[arrivalID]
	if !exists {
		return nil, domain.ErrWorkflowNotFound
	}
	return workflow, nil
}

func (r *mockRepository) FindByStatus(ctx context.Context, status domain.InspectionStatus, pagination domain.Pagination) ([]*domain.InspectionWorkflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.InspectionWorkflow
	for _, workflow := range r.workflows {
		if workflow.Status == status {
			result = append(result, workflow)
		}
	}
	return result, nil
}

func (r *mockRepository) FindByInspector(ctx context.Context, inspector string, pagination domain.Pagination) ([]*domain.InspectionWorkflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.InspectionWorkflow
	for _, workflow := range r.workflows {
		if workflow.Inspector == inspector {
			result = append(result, workflow)
		}
	}
	return result, nil
}

func (r *mockRepository) FindAll(ctx context.Context, filter domain.WorkflowFilter, pagination domain.Pagination) ([]*domain.InspectionWorkflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.InspectionWorkflow
	for _, workflow := range r.workflows {
		result = append(result, workflow)
	}
	return result, nil
}

func (r *mockRepository) Delete(ctx context.Context, arrivalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.workflows[arrivalID]; !exists {
		return domain.ErrWorkflowNotFound
	}
	delete(r.workflows, arrivalID)
	return nil
}

func (r *mockRepository) Count(ctx context.Context, filter domain.WorkflowFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.workflows)), nil
}

// mockPublisher records every published event
type mockPublisher struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (p *mockPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *mockPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *mockPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, event := range p.events {
		types[i] = event.EventType()
	}
	return types
}

func newTestService(t *testing.T) (*InspectionService, *mockRepository, *mockPublisher) {
	t.Helper()
	repo := newMockRepository()
	publisher := &mockPublisher{}
	logger := logging.New(logging.DefaultConfig("inspection-service-test"))
	return NewInspectionService(repo, publisher, logger, nil), repo, publisher
}

func openWorkflow(t *testing.T, service *InspectionService) *domain.InspectionWorkflow {
	t.Helper()
	workflow, err := service.OpenInspection(context.Background(), OpenInspectionCommand{
		ArrivalID:   "ARR-2024-001",
		VesselName:  "MV Atlantic Carrier",
		ArrivalDate: "2024-06-15",
		ArrivalTime: "08:30",
		Inspector:   "J. Dupont",
	})
	require.NoError(t, err)
	return workflow
}

func TestOpenInspection(t *testing.T) {
	service, repo, publisher := newTestService(t)

	workflow := openWorkflow(t, service)
	assert.Equal(t, "ARR-2024-001", workflow.ArrivalID)
	assert.Equal(t, domain.StatusInProgress, workflow.Status)
	assert.Empty(t, workflow.GetDomainEvents(), "events are cleared after publishing")

	stored, err := repo.FindByArrivalID(context.Background(), "ARR-2024-001")
	require.NoError(t, err)
	assert.Equal(t, workflow.ArrivalID, stored.ArrivalID)

	types := publisher.eventTypes()
	require.Len(t, types, 1)
	assert.Equal(t, "opsflux.inspection.opened", types[0])
}

func TestOpenInspection_Duplicate(t *testing.T) {
	service, _, _ := newTestService(t)
	openWorkflow(t, service)

	_, err := service.OpenInspection(context.Background(), OpenInspectionCommand{
		ArrivalID:   "ARR-2024-001",
		VesselName:  "MV Atlantic Carrier",
		ArrivalDate: "2024-06-15",
	})
	assert.ErrorIs(t, err, domain.ErrWorkflowAlreadyExists)
}

func TestSetChecklistItem_Service(t *testing.T) {
	service, _, publisher := newTestService(t)
	openWorkflow(t, service)

	workflow, err := service.SetChecklistItem(context.Background(), SetChecklistItemCommand{
		ArrivalID: "ARR-2024-001",
		Item:      domain.ChecklistBordereauxRetrieved,
		Done:      true,
	})
	require.NoError(t, err)
	assert.True(t, workflow.Checklist[domain.ChecklistBordereauxRetrieved])
	assert.Contains(t, publisher.eventTypes(), "opsflux.inspection.checklist-item-updated")
}

func TestSetChecklistItem_UnknownItemNotPersisted(t *testing.T) {
	service, repo, _ := newTestService(t)
	openWorkflow(t, service)

	_, err := service.SetChecklistItem(context.Background(), SetChecklistItemCommand{
		ArrivalID: "ARR-2024-001",
		Item:      "customs-cleared",
		Done:      true,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownChecklistItem)

	stored, err := repo.FindByArrivalID(context.Background(), "ARR-2024-001")
	require.NoError(t, err)
	assert.Len(t, stored.Checklist, 5)
}

func TestSetChecklistItem_WorkflowNotFound(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.SetChecklistItem(context.Background(), SetChecklistItemCommand{
		ArrivalID: "ARR-9999-404",
		Item:      domain.ChecklistBordereauxRetrieved,
		Done:      true,
	})
	assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)
}

func TestRecordAndRemoveDiscrepancy_Service(t *testing.T) {
	service, _, publisher := newTestService(t)
	openWorkflow(t, service)

	ctx := context.Background()
	workflow, discrepancy, err := service.RecordDiscrepancy(ctx, RecordDiscrepancyCommand{
		ArrivalID:   "ARR-2024-001",
		Type:        string(domain.DiscrepancyMissingPackage),
		Description: "package 42 missing from hold 2",
		Severity:    string(domain.SeverityHigh),
	})
	require.NoError(t, err)
	require.NotNil(t, discrepancy)
	assert.Len(t, workflow.Discrepancies, 1)
	// DetectedBy falls back to the assigned inspector
	assert.Equal(t, "J. Dupont", discrepancy.DetectedBy)

	workflow, err = service.RemoveDiscrepancy(ctx, RemoveDiscrepancyCommand{
		ArrivalID:     "ARR-2024-001",
		DiscrepancyID: discrepancy.DiscrepancyID,
	})
	require.NoError(t, err)
	assert.Empty(t, workflow.Discrepancies)

	_, err = service.RemoveDiscrepancy(ctx, RemoveDiscrepancyCommand{
		ArrivalID:     "ARR-2024-001",
		DiscrepancyID: discrepancy.DiscrepancyID,
	})
	assert.ErrorIs(t, err, domain.ErrDiscrepancyNotFound)

	types := publisher.eventTypes()
	assert.Contains(t, types, "opsflux.inspection.discrepancy-recorded")
	assert.Contains(t, types, "opsflux.inspection.discrepancy-removed")
}

func TestSetSummary_Service(t *testing.T) {
	service, repo, _ := newTestService(t)
	openWorkflow(t, service)

	ctx := context.Background()
	_, err := service.SetSummary(ctx, SetSummaryCommand{
		ArrivalID:     "ARR-2024-001",
		TotalPackages: 240,
		TotalWeight:   1250.5,
	})
	require.NoError(t, err)

	stored, err := repo.FindByArrivalID(ctx, "ARR-2024-001")
	require.NoError(t, err)
	assert.Equal(t, 240, stored.TotalPackages)
	assert.Equal(t, 1250.5, stored.TotalWeight)

	_, err = service.SetSummary(ctx, SetSummaryCommand{
		ArrivalID:     "ARR-2024-001",
		TotalPackages: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSummary)
}

func TestQueries_Service(t *testing.T) {
	service, _, _ := newTestService(t)
	openWorkflow(t, service)

	ctx := context.Background()
	progress, err := service.GetChecklistProgress(ctx, "ARR-2024-001")
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Completed)
	assert.Equal(t, 5, progress.Total)

	summary, err := service.GetDiscrepancySummary(ctx, "ARR-2024-001")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)

	_, err = service.GetChecklistProgress(ctx, "ARR-9999-404")
	assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)
}

func TestConcurrentChecklistUpdates(t *testing.T) {
	service, repo, _ := newTestService(t)
	openWorkflow(t, service)

	ctx := context.Background()
	var wg sync.WaitGroup
	for _, item := range domain.ChecklistItems() {
		wg.Add(1)
		go func(item string) {
			defer wg.Done()
			_, err := service.SetChecklistItem(ctx, SetChecklistItemCommand{
				ArrivalID: "ARR-2024-001",
				Item:      item,
				Done:      true,
			})
			assert.NoError(t, err)
		}(item)
	}
	wg.Wait()

	stored, err := repo.FindByArrivalID(ctx, "ARR-2024-001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInspected, stored.Status)
	assert.Equal(t, 5, stored.ChecklistProgress().Completed)
}
