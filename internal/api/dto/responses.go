package dto

import "time"

// WorkflowResponse is the full representation of an inspection workflow
type WorkflowResponse struct {
	ID                  string                `json:"id"`
	ArrivalID           string                `json:"arrivalId"`
	VesselName          string                `json:"vesselName"`
	ArrivalDate         string                `json:"arrivalDate"`
	ArrivalTime         string                `json:"arrivalTime,omitempty"`
	Inspector           string                `json:"inspector,omitempty"`
	InspectionStartTime *time.Time            `json:"inspectionStartTime,omitempty"`
	InspectionEndTime   *time.Time            `json:"inspectionEndTime,omitempty"`
	Checklist           map[string]bool       `json:"checklist"`
	Progress            ProgressResponse      `json:"progress"`
	Discrepancies       []DiscrepancyResponse `json:"discrepancies"`
	TotalPackages       int                   `json:"totalPackages"`
	TotalWeight         float64               `json:"totalWeight"`
	Notes               string                `json:"notes,omitempty"`
	Status              string                `json:"status"`
	ReportEligible      bool                  `json:"reportEligible"`
	ReportGeneratedAt   *time.Time            `json:"reportGeneratedAt,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
}

// DiscrepancyResponse is one recorded discrepancy
type DiscrepancyResponse struct {
	DiscrepancyID string    `json:"discrepancyId"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Severity      string    `json:"severity"`
	DetectedBy    string    `json:"detectedBy,omitempty"`
	DetectedAt    time.Time `json:"detectedAt"`
	ManifestID    string    `json:"manifestId,omitempty"`
	PackageNumber string    `json:"packageNumber,omitempty"`
	ExpectedValue string    `json:"expectedValue,omitempty"`
	ActualValue   string    `json:"actualValue,omitempty"`
	Resolved      bool      `json:"resolved"`
	Resolution    string    `json:"resolution,omitempty"`
}

// ProgressResponse reports checklist completion
type ProgressResponse struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
}

// DiscrepancySummaryResponse is the derived discrepancy aggregate
type DiscrepancySummaryResponse struct {
	ArrivalID      string         `json:"arrivalId"`
	Total          int            `json:"total"`
	CriticalOrHigh int            `json:"criticalOrHigh"`
	Resolved       int            `json:"resolved"`
	Unresolved     int            `json:"unresolved"`
	ByType         map[string]int `json:"byType"`
	BySeverity     map[string]int `json:"bySeverity"`
}

// WorkflowSummary is the list representation of a workflow
type WorkflowSummary struct {
	ID                string    `json:"id"`
	ArrivalID         string    `json:"arrivalId"`
	VesselName        string    `json:"vesselName"`
	ArrivalDate       string    `json:"arrivalDate"`
	Inspector         string    `json:"inspector,omitempty"`
	Status            string    `json:"status"`
	ChecklistComplete int       `json:"checklistComplete"`
	DiscrepancyCount  int       `json:"discrepancyCount"`
	ReportEligible    bool      `json:"reportEligible"`
	CreatedAt         time.Time `json:"createdAt"`
}

// WorkflowListResponse is a paginated list of workflows
type WorkflowListResponse struct {
	Workflows []WorkflowSummary `json:"workflows"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"pageSize"`
}

// EligibilityResponse reports whether a report may be generated
type EligibilityResponse struct {
	ArrivalID string           `json:"arrivalId"`
	Eligible  bool             `json:"eligible"`
	Progress  ProgressResponse `json:"progress"`
}
