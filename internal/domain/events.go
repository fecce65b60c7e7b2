package domain

import "time"

// DomainEvent represents a domain event
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// InspectionOpenedEvent is emitted when a workflow is opened for an arrival
type InspectionOpenedEvent struct {
	ArrivalID   string    `json:"arrivalId"`
	VesselName  string    `json:"vesselName"`
	ArrivalDate string    `json:"arrivalDate"`
	Inspector   string    `json:"inspector,omitempty"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *InspectionOpenedEvent) EventType() string     { return "opsflux.inspection.opened" }
func (e *InspectionOpenedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// InspectorAssignedEvent is emitted when the inspector is set
type InspectorAssignedEvent struct {
	ArrivalID   string    `json:"arrivalId"`
	Inspector   string    `json:"inspector"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *InspectorAssignedEvent) EventType() string     { return "opsflux.inspection.inspector-assigned" }
func (e *InspectorAssignedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// ChecklistItemUpdatedEvent is emitted every time a checklist item changes
type ChecklistItemUpdatedEvent struct {
	ArrivalID   string    `json:"arrivalId"`
	Item        string    `json:"item"`
	Done        bool      `json:"done"`
	Status      string    `json:"status"`
	OccurredAt_ time.Time `json:"occurredAt"`
}

func (e *ChecklistItemUpdatedEvent) EventType() string {
	return "opsflux.inspection.checklist-item-updated"
}
func (e *ChecklistItemUpdatedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// InspectionCompletedEvent is emitted when the checklist transitions to fully
// complete
type InspectionCompletedEvent struct {
	ArrivalID        string    `json:"arrivalId"`
	Inspector        string    `json:"inspector"`
	DiscrepancyCount int       `json:"discrepancyCount"`
	OccurredAt_      time.Time `json:"occurredAt"`
}

func (e *InspectionCompletedEvent) EventType() string     { return "opsflux.inspection.completed" }
func (e *InspectionCompletedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// DiscrepancyRecordedEvent is emitted when a discrepancy is recorded
type DiscrepancyRecordedEvent struct {
	ArrivalID     string    `json:"arrivalId"`
	DiscrepancyID string    `json:"discrepancyId"`
	Type          string    `json:"type"`
	Severity      string    `json:"severity"`
	Description   string    `json:"description"`
	DetectedBy    string    `json:"detectedBy"`
	OccurredAt_   time.Time `json:"occurredAt"`
}

func (e *DiscrepancyRecordedEvent) EventType() string {
	return "opsflux.inspection.discrepancy-recorded"
}
func (e *DiscrepancyRecordedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// DiscrepancyResolvedEvent is emitted when a discrepancy is marked resolved
type DiscrepancyResolvedEvent struct {
	ArrivalID     string    `json:"arrivalId"`
	DiscrepancyID string    `json:"discrepancyId"`
	Resolution    string    `json:"resolution,omitempty"`
	OccurredAt_   time.Time `json:"occurredAt"`
}

func (e *DiscrepancyResolvedEvent) EventType() string {
	return "opsflux.inspection.discrepancy-resolved"
}
func (e *DiscrepancyResolvedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// DiscrepancyRemovedEvent is emitted when a discrepancy is removed
type DiscrepancyRemovedEvent struct {
	ArrivalID     string    `json:"arrivalId"`
	DiscrepancyID string    `json:"discrepancyId"`
	OccurredAt_   time.Time `json:"occurredAt"`
}

func (e *DiscrepancyRemovedEvent) EventType() string {
	return "opsflux.inspection.discrepancy-removed"
}
func (e *DiscrepancyRemovedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// CargoSummaryRecordedEvent is emitted when the cargo counters are set
type CargoSummaryRecordedEvent struct {
	ArrivalID     string    `json:"arrivalId"`
	TotalPackages int       `json:"totalPackages"`
	TotalWeight   float64   `json:"totalWeight"`
	OccurredAt_   time.Time `json:"occurredAt"`
}

func (e *CargoSummaryRecordedEvent) EventType() string {
	return "opsflux.inspection.cargo-summary-recorded"
}
func (e *CargoSummaryRecordedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// InspectionFinalizedEvent is emitted when inspection work is finalized
type InspectionFinalizedEvent struct {
	ArrivalID        string    `json:"arrivalId"`
	Inspector        string    `json:"inspector"`
	Status           string    `json:"status"`
	DiscrepancyCount int       `json:"discrepancyCount"`
	UnresolvedCount  int       `json:"unresolvedCount"`
	OccurredAt_      time.Time `json:"occurredAt"`
}

func (e *InspectionFinalizedEvent) EventType() string     { return "opsflux.inspection.finalized" }
func (e *InspectionFinalizedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// ReportGeneratedEvent is emitted when a compliance report is generated
type ReportGeneratedEvent struct {
	ArrivalID   string    `json:"arrivalId"`
	Inspector   string    `json:"inspector"`
	GeneratedAt time.Time `json:"generatedAt"`
}

func (e *ReportGeneratedEvent) EventType() string     { return "opsflux.inspection.report-generated" }
func (e *ReportGeneratedEvent) OccurredAt() time.Time { return e.GeneratedAt }
