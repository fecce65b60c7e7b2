package application

// OpenInspectionCommand represents a command to open an inspection workflow
// for a vessel arrival
type OpenInspectionCommand struct {
	ArrivalID   string `json:"arrivalId" binding:"required,arrival_id"`
	VesselName  string `json:"vesselName" binding:"required,safe_string"`
	ArrivalDate string `json:"arrivalDate" binding:"required,datetime=2006-01-02"`
	ArrivalTime string `json:"arrivalTime" binding:"omitempty,datetime=15:04"`
	Inspector   string `json:"inspector" binding:"omitempty,safe_string"`
}

// AssignInspectorCommand represents a command to assign the inspector
type AssignInspectorCommand struct {
	ArrivalID string `json:"arrivalId" binding:"required,arrival_id"`
	Inspector string `json:"inspector" binding:"required,safe_string"`
}

// SetChecklistItemCommand represents a command to update one checklist item
type SetChecklistItemCommand struct {
	ArrivalID string `json:"arrivalId" binding:"required,arrival_id"`
	Item      string `json:"item" binding:"required,checklist_item"`
	Done      bool   `json:"done"`
}

// RecordDiscrepancyCommand represents a command to record a discrepancy
type RecordDiscrepancyCommand struct {
	ArrivalID     string `json:"arrivalId" binding:"required,arrival_id"`
	Type          string `json:"type" binding:"required,discrepancy_type"`
	Description   string `json:"description" binding:"required"`
	Severity      string `json:"severity" binding:"required,severity"`
	DetectedBy    string `json:"detectedBy" binding:"omitempty,safe_string"`
	ManifestID    string `json:"manifestId" binding:"omitempty,safe_string"`
	PackageNumber string `json:"packageNumber" binding:"omitempty,safe_string"`
	ExpectedValue string `json:"expectedValue"`
	ActualValue   string `json:"actualValue"`
}

// ResolveDiscrepancyCommand represents a command to resolve a discrepancy
type ResolveDiscrepancyCommand struct {
	ArrivalID     string `json:"arrivalId" binding:"required,arrival_id"`
	DiscrepancyID string `json:"discrepancyId" binding:"required,uuid"`
	Resolution    string `json:"resolution"`
}

// RemoveDiscrepancyCommand represents a command to remove a discrepancy
type RemoveDiscrepancyCommand struct {
	ArrivalID     string `json:"arrivalId" binding:"required,arrival_id"`
	DiscrepancyID string `json:"discrepancyId" binding:"required,uuid"`
}

// SetSummaryCommand represents a command to record the cargo counters
type SetSummaryCommand struct {
	ArrivalID     string  `json:"arrivalId" binding:"required,arrival_id"`
	TotalPackages int     `json:"totalPackages" binding:"min=0"`
	TotalWeight   float64 `json:"totalWeight" binding:"min=0"`
}

// SetNotesCommand represents a command to replace the free-text notes
type SetNotesCommand struct {
	ArrivalID string `json:"arrivalId" binding:"required,arrival_id"`
	Notes     string `json:"notes"`
}

// StartInspectionCommand represents a command to record the inspection start
type StartInspectionCommand struct {
	ArrivalID string `json:"arrivalId" binding:"required,arrival_id"`
	StartTime string `json:"startTime" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// FinalizeInspectionCommand represents a command to record the inspection end
type FinalizeInspectionCommand struct {
	ArrivalID string `json:"arrivalId" binding:"required,arrival_id"`
	EndTime   string `json:"endTime" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// GenerateReportCommand represents a command to generate the compliance report
type GenerateReportCommand struct {
	ArrivalID string `json:"arrivalId" binding:"required,arrival_id"`
}
