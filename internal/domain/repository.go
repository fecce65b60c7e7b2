package domain

import "context"

// InspectionWorkflowRepository defines the persistence interface for
// inspection workflows
type InspectionWorkflowRepository interface {
	// Save persists an inspection workflow (create or update)
	Save(ctx context.Context, workflow *InspectionWorkflow) error

	// FindByArrivalID retrieves the workflow for a vessel arrival
	FindByArrivalID(ctx context.Context, arrivalID string) (*InspectionWorkflow, error)

	// FindByStatus retrieves workflows with a specific derived status
	FindByStatus(ctx context.Context, status InspectionStatus, pagination Pagination) ([]*InspectionWorkflow, error)

	// FindByInspector retrieves workflows assigned to an inspector
	FindByInspector(ctx context.Context, inspector string, pagination Pagination) ([]*InspectionWorkflow, error)

	// FindAll retrieves workflows matching the filter
	FindAll(ctx context.Context, filter WorkflowFilter, pagination Pagination) ([]*InspectionWorkflow, error)

	// Delete removes a workflow
	Delete(ctx context.Context, arrivalID string) error

	// Count returns the number of workflows matching the filter
	Count(ctx context.Context, filter WorkflowFilter) (int64, error)
}

// Pagination contains pagination parameters
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultPagination returns default pagination settings
func DefaultPagination() Pagination {
	return Pagination{
		Page:     1,
		PageSize: 50,
	}
}

// Skip calculates the number of documents to skip
func (p Pagination) Skip() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size
func (p Pagination) Limit() int {
	if p.PageSize < 1 {
		return 50
	}
	return p.PageSize
}

// WorkflowFilter contains filter criteria for workflow queries
type WorkflowFilter struct {
	Status           InspectionStatus
	Inspector        string
	VesselName       string
	ArrivalDate      string
	ReportGenerated  *bool
	HasDiscrepancies *bool
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish publishes a domain event
	Publish(ctx context.Context, event DomainEvent) error

	// PublishAll publishes multiple domain events
	PublishAll(ctx context.Context, events []DomainEvent) error
}
