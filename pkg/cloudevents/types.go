package cloudevents

import (
	"time"
)

// EventType constants for inspection domain events
const (
	InspectionOpened     = "opsflux.inspection.opened"
	InspectorAssigned    = "opsflux.inspection.inspector-assigned"
	ChecklistItemUpdated = "opsflux.inspection.checklist-item-updated"
	InspectionCompleted  = "opsflux.inspection.completed"
	InspectionFinalized  = "opsflux.inspection.finalized"

	DiscrepancyRecorded = "opsflux.inspection.discrepancy-recorded"
	DiscrepancyResolved = "opsflux.inspection.discrepancy-resolved"
	DiscrepancyRemoved  = "opsflux.inspection.discrepancy-removed"

	CargoSummaryRecorded = "opsflux.inspection.cargo-summary-recorded"
	ReportGenerated      = "opsflux.inspection.report-generated"
)

// Source constants for event sources
const (
	SourceInspection = "/opsflux/inspection-service"
)

// CloudEvent represents a CloudEvents v1.0 compliant event
type CloudEvent struct {
	SpecVersion     string                 `json:"specversion"`
	Type            string                 `json:"type"`
	Source          string                 `json:"source"`
	Subject         string                 `json:"subject,omitempty"`
	ID              string                 `json:"id"`
	Time            time.Time              `json:"time"`
	DataContentType string                 `json:"datacontenttype"`
	Data            interface{}            `json:"data"`
	Extensions      map[string]interface{} `json:"-"`

	// Inspection-specific extensions
	ArrivalID     string `json:"opsfluxarrivalid,omitempty"`
	CorrelationID string `json:"opsfluxcorrelationid,omitempty"`

	// W3C Trace Context propagation
	TraceParent string `json:"traceparent,omitempty"`
	TraceState  string `json:"tracestate,omitempty"`
}

// InspectionOpenedData represents the data payload for InspectionOpened
type InspectionOpenedData struct {
	ArrivalID string `json:"arrivalId"`
	Inspector string `json:"inspector,omitempty"`
}

// InspectorAssignedData represents the data payload for InspectorAssigned
type InspectorAssignedData struct {
	ArrivalID string `json:"arrivalId"`
	Inspector string `json:"inspector"`
}

// ChecklistItemUpdatedData represents the data payload for ChecklistItemUpdated
type ChecklistItemUpdatedData struct {
	ArrivalID string `json:"arrivalId"`
	Item      string `json:"item"`
	Done      bool   `json:"done"`
	Status    string `json:"status"`
}

// InspectionCompletedData represents the data payload for InspectionCompleted
type InspectionCompletedData struct {
	ArrivalID        string `json:"arrivalId"`
	Inspector        string `json:"inspector"`
	DiscrepancyCount int    `json:"discrepancyCount"`
}

// DiscrepancyRecordedData represents the data payload for DiscrepancyRecorded
type DiscrepancyRecordedData struct {
	ArrivalID     string `json:"arrivalId"`
	DiscrepancyID string `json:"discrepancyId"`
	Type          string `json:"type"`
	Severity      string `json:"severity"`
	Description   string `json:"description,omitempty"`
}

// DiscrepancyResolvedData represents the data payload for DiscrepancyResolved
type DiscrepancyResolvedData struct {
	ArrivalID     string `json:"arrivalId"`
	DiscrepancyID string `json:"discrepancyId"`
	Resolution    string `json:"resolution,omitempty"`
}

// DiscrepancyRemovedData represents the data payload for DiscrepancyRemoved
type DiscrepancyRemovedData struct {
	ArrivalID     string `json:"arrivalId"`
	DiscrepancyID string `json:"discrepancyId"`
}

// CargoSummaryRecordedData represents the data payload for CargoSummaryRecorded
type CargoSummaryRecordedData struct {
	ArrivalID        string  `json:"arrivalId"`
	PackagesExpected int     `json:"packagesExpected"`
	PackagesCounted  int     `json:"packagesCounted"`
	WeightExpected   float64 `json:"weightExpected"`
	WeightMeasured   float64 `json:"weightMeasured"`
}

// InspectionFinalizedData represents the data payload for InspectionFinalized
type InspectionFinalizedData struct {
	ArrivalID        string `json:"arrivalId"`
	Inspector        string `json:"inspector"`
	Status           string `json:"status"`
	DiscrepancyCount int    `json:"discrepancyCount"`
	UnresolvedCount  int    `json:"unresolvedCount"`
}

// ReportGeneratedData represents the data payload for ReportGenerated
type ReportGeneratedData struct {
	ArrivalID   string    `json:"arrivalId"`
	Inspector   string    `json:"inspector"`
	GeneratedAt time.Time `json:"generatedAt"`
}
