package dto

// OpenInspectionRequest is the payload to open an inspection workflow
type OpenInspectionRequest struct {
	ArrivalID   string `json:"arrivalId" binding:"required,arrival_id"`
	VesselName  string `json:"vesselName" binding:"required,safe_string"`
	ArrivalDate string `json:"arrivalDate" binding:"required,datetime=2006-01-02"`
	ArrivalTime string `json:"arrivalTime" binding:"omitempty,datetime=15:04"`
	Inspector   string `json:"inspector" binding:"omitempty,safe_string"`
}

// AssignInspectorRequest is the payload to assign the inspector
type AssignInspectorRequest struct {
	Inspector string `json:"inspector" binding:"required,safe_string"`
}

// SetChecklistItemRequest is the payload to update one checklist item
type SetChecklistItemRequest struct {
	Item string `json:"item" binding:"required,checklist_item"`
	Done *bool  `json:"done" binding:"required"`
}

// RecordDiscrepancyRequest is the payload to record a discrepancy
type RecordDiscrepancyRequest struct {
	Type          string `json:"type" binding:"required,discrepancy_type"`
	Description   string `json:"description" binding:"required"`
	Severity      string `json:"severity" binding:"required,severity"`
	DetectedBy    string `json:"detectedBy" binding:"omitempty,safe_string"`
	ManifestID    string `json:"manifestId" binding:"omitempty,safe_string"`
	PackageNumber string `json:"packageNumber" binding:"omitempty,safe_string"`
	ExpectedValue string `json:"expectedValue"`
	ActualValue   string `json:"actualValue"`
}

// ResolveDiscrepancyRequest is the payload to resolve a discrepancy
type ResolveDiscrepancyRequest struct {
	Resolution string `json:"resolution"`
}

// SetSummaryRequest is the payload to record the cargo counters
type SetSummaryRequest struct {
	TotalPackages int     `json:"totalPackages" binding:"min=0"`
	TotalWeight   float64 `json:"totalWeight" binding:"min=0"`
}

// SetNotesRequest is the payload to replace the free-text notes
type SetNotesRequest struct {
	Notes string `json:"notes"`
}

// StartInspectionRequest is the payload to record the inspection start.
// An empty startTime means now.
type StartInspectionRequest struct {
	StartTime string `json:"startTime" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// FinalizeInspectionRequest is the payload to record the inspection end
type FinalizeInspectionRequest struct {
	EndTime string `json:"endTime" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
