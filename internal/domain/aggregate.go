package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InspectionWorkflow errors
var (
	ErrWorkflowNotFound      = errors.New("inspection workflow not found")
	ErrWorkflowAlreadyExists = errors.New("inspection workflow already exists")
	ErrArrivalIDRequired     = errors.New("arrival id is required")
	ErrInspectorRequired     = errors.New("inspector is required before recording inspection work")
	ErrUnknownChecklistItem  = errors.New("unknown checklist item")
	ErrInvalidDiscrepancy    = errors.New("invalid discrepancy")
	ErrDiscrepancyNotFound   = errors.New("discrepancy not found")
	ErrInvalidSummary        = errors.New("invalid cargo summary")
	ErrReportNotEligible     = errors.New("inspection report not eligible: complete the checklist first")
)

// InspectionStatus represents the derived status of an inspection workflow
type InspectionStatus string

const (
	StatusPending    InspectionStatus = "pending"
	StatusInProgress InspectionStatus = "in-progress"
	StatusInspected  InspectionStatus = "inspected"
)

// IsValid checks if the status is valid
func (s InspectionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusInspected:
		return true
	default:
		return false
	}
}

// Checklist item names. The set is fixed at construction time and never
// grows or shrinks during a workflow's life.
const (
	ChecklistBordereauxRetrieved = "bordereaux-retrieved"
	ChecklistPhysicalCountDone   = "physical-count-done"
	ChecklistWeightVerified      = "weight-verified"
	ChecklistSlingingChecked     = "slinging-checked"
	ChecklistManifestCompared    = "manifest-compared"
)

// ChecklistItems returns the fixed checklist item names in canonical order.
func ChecklistItems() []string {
	return []string{
		ChecklistBordereauxRetrieved,
		ChecklistPhysicalCountDone,
		ChecklistWeightVerified,
		ChecklistSlingingChecked,
		ChecklistManifestCompared,
	}
}

// DiscrepancyType classifies an anomaly found during unloading
type DiscrepancyType string

const (
	DiscrepancyMissingPackage      DiscrepancyType = "missing-package"
	DiscrepancyDamagedPackage      DiscrepancyType = "damaged-package"
	DiscrepancyUnmanifestedPackage DiscrepancyType = "unmanifested-package"
	DiscrepancyWeightMismatch      DiscrepancyType = "weight-mismatch"
	DiscrepancyIncorrectMarking    DiscrepancyType = "incorrect-marking"
	DiscrepancyMissingDocument     DiscrepancyType = "missing-document"
	DiscrepancyDefectiveSlinging   DiscrepancyType = "defective-slinging"
)

// DiscrepancyTypes returns all discrepancy types in canonical order.
func DiscrepancyTypes() []DiscrepancyType {
	return []DiscrepancyType{
		DiscrepancyMissingPackage,
		DiscrepancyDamagedPackage,
		DiscrepancyUnmanifestedPackage,
		DiscrepancyWeightMismatch,
		DiscrepancyIncorrectMarking,
		DiscrepancyMissingDocument,
		DiscrepancyDefectiveSlinging,
	}
}

// IsValid checks if the discrepancy type is a member of the taxonomy
func (t DiscrepancyType) IsValid() bool {
	switch t {
	case DiscrepancyMissingPackage, DiscrepancyDamagedPackage, DiscrepancyUnmanifestedPackage,
		DiscrepancyWeightMismatch, DiscrepancyIncorrectMarking, DiscrepancyMissingDocument,
		DiscrepancyDefectiveSlinging:
		return true
	default:
		return false
	}
}

// Severity represents how serious a discrepancy is
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IsValid checks if the severity is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// IsCriticalOrHigh reports whether the severity counts toward the
// critical-or-high aggregate
func (s Severity) IsCriticalOrHigh() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// Discrepancy represents a recorded anomaly, owned exclusively by one workflow
type Discrepancy struct {
	DiscrepancyID string          `bson:"discrepancyId" json:"discrepancyId"`
	Type          DiscrepancyType `bson:"type" json:"type"`
	Description   string          `bson:"description" json:"description"`
	Severity      Severity        `bson:"severity" json:"severity"`
	DetectedBy    string          `bson:"detectedBy" json:"detectedBy"`
	DetectedAt    time.Time       `bson:"detectedAt" json:"detectedAt"`
	ManifestID    string          `bson:"manifestId,omitempty" json:"manifestId,omitempty"`
	PackageNumber string          `bson:"packageNumber,omitempty" json:"packageNumber,omitempty"`
	ExpectedValue string          `bson:"expectedValue,omitempty" json:"expectedValue,omitempty"`
	ActualValue   string          `bson:"actualValue,omitempty" json:"actualValue,omitempty"`
	Resolved      bool            `bson:"resolved" json:"resolved"`
	Resolution    string          `bson:"resolution,omitempty" json:"resolution,omitempty"`
}

// DiscrepancyFields carries the optional cross-reference fields of a discrepancy
type DiscrepancyFields struct {
	ManifestID    string
	PackageNumber string
	ExpectedValue string
	ActualValue   string
}

// DiscrepancySummary is the aggregate computed from the discrepancy list.
// It is always derived, never stored independently of its source records.
type DiscrepancySummary struct {
	Total          int                     `json:"total"`
	CriticalOrHigh int                     `json:"criticalOrHigh"`
	Resolved       int                     `json:"resolved"`
	Unresolved     int                     `json:"unresolved"`
	ByType         map[DiscrepancyType]int `json:"byType"`
	BySeverity     map[Severity]int        `json:"bySeverity"`
}

// ChecklistProgress reports completion of the fixed checklist
type ChecklistProgress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
}

// InspectionWorkflow is the aggregate root for one vessel-arrival inspection
type InspectionWorkflow struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ArrivalID           string             `bson:"arrivalId" json:"arrivalId"`
	VesselName          string             `bson:"vesselName" json:"vesselName"`
	ArrivalDate         string             `bson:"arrivalDate" json:"arrivalDate"`
	ArrivalTime         string             `bson:"arrivalTime,omitempty" json:"arrivalTime,omitempty"`
	Inspector           string             `bson:"inspector,omitempty" json:"inspector,omitempty"`
	InspectionStartTime *time.Time         `bson:"inspectionStartTime,omitempty" json:"inspectionStartTime,omitempty"`
	InspectionEndTime   *time.Time         `bson:"inspectionEndTime,omitempty" json:"inspectionEndTime,omitempty"`
	Checklist           map[string]bool    `bson:"checklist" json:"checklist"`
	Discrepancies       []Discrepancy      `bson:"discrepancies" json:"discrepancies"`
	TotalPackages       int                `bson:"totalPackages" json:"totalPackages"`
	TotalWeight         float64            `bson:"totalWeight" json:"totalWeight"`
	Notes               string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status              InspectionStatus   `bson:"status" json:"status"`
	ReportGeneratedAt   *time.Time         `bson:"reportGeneratedAt,omitempty" json:"reportGeneratedAt,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
	DomainEvents        []DomainEvent      `bson:"-" json:"-"`
}

// NewInspectionWorkflow creates a new InspectionWorkflow aggregate with every
// checklist item unchecked
func NewInspectionWorkflow(arrivalID, vesselName, arrivalDate, arrivalTime, inspector string) (*InspectionWorkflow, error) {
	if arrivalID == "" {
		return nil, ErrArrivalIDRequired
	}

	checklist := make(map[string]bool, len(ChecklistItems()))
	for _, item := range ChecklistItems() {
		checklist[item] = false
	}

	now := time.Now().UTC()
	workflow := &InspectionWorkflow{
		ID:            primitive.NewObjectID(),
		ArrivalID:     arrivalID,
		VesselName:    vesselName,
		ArrivalDate:   arrivalDate,
		ArrivalTime:   arrivalTime,
		Inspector:     inspector,
		Checklist:     checklist,
		Discrepancies: make([]Discrepancy, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
		DomainEvents:  make([]DomainEvent, 0),
	}
	workflow.recomputeStatus()

	workflow.addDomainEvent(&InspectionOpenedEvent{
		ArrivalID:   arrivalID,
		VesselName:  vesselName,
		ArrivalDate: arrivalDate,
		Inspector:   inspector,
		OccurredAt_: now,
	})

	return workflow, nil
}

// SetInspector assigns the inspector conducting the inspection. An inspector
// must be assigned before any other state-changing operation is accepted.
func (w *InspectionWorkflow) SetInspector(inspector string) error {
	if inspector == "" {
		return ErrInspectorRequired
	}

	now := time.Now().UTC()
	w.Inspector = inspector
	w.UpdatedAt = now
	w.recomputeStatus()

	w.addDomainEvent(&InspectorAssignedEvent{
		ArrivalID:   w.ArrivalID,
		Inspector:   inspector,
		OccurredAt_: now,
	})

	return nil
}

// SetChecklistItem updates one checklist item and recomputes the derived status
func (w *InspectionWorkflow) SetChecklistItem(name string, value bool) error {
	if err := w.requireInspector(); err != nil {
		return err
	}

	if _, exists := w.Checklist[name]; !exists {
		return ErrUnknownChecklistItem
	}

	now := time.Now().UTC()
	w.Checklist[name] = value
	w.UpdatedAt = now

	previous := w.Status
	w.recomputeStatus()

	w.addDomainEvent(&ChecklistItemUpdatedEvent{
		ArrivalID:   w.ArrivalID,
		Item:        name,
		Done:        value,
		Status:      string(w.Status),
		OccurredAt_: now,
	})

	if previous != StatusInspected && w.Status == StatusInspected {
		w.addDomainEvent(&InspectionCompletedEvent{
			ArrivalID:        w.ArrivalID,
			Inspector:        w.Inspector,
			DiscrepancyCount: len(w.Discrepancies),
			OccurredAt_:      now,
		})
	}

	return nil
}

// RecordDiscrepancy appends a new discrepancy with a fresh id and current
// timestamp. Discrepancies never alter the derived status.
func (w *InspectionWorkflow) RecordDiscrepancy(
	discrepancyType DiscrepancyType,
	description string,
	severity Severity,
	detectedBy string,
	fields DiscrepancyFields,
) (*Discrepancy, error) {
	if err := w.requireInspector(); err != nil {
		return nil, err
	}

	if description == "" || !discrepancyType.IsValid() || !severity.IsValid() {
		return nil, ErrInvalidDiscrepancy
	}

	now := time.Now().UTC()
	discrepancy := Discrepancy{
		DiscrepancyID: uuid.New().String(),
		Type:          discrepancyType,
		Description:   description,
		Severity:      severity,
		DetectedBy:    detectedBy,
		DetectedAt:    now,
		ManifestID:    fields.ManifestID,
		PackageNumber: fields.PackageNumber,
		ExpectedValue: fields.ExpectedValue,
		ActualValue:   fields.ActualValue,
	}

	w.Discrepancies = append(w.Discrepancies, discrepancy)
	w.UpdatedAt = now

	w.addDomainEvent(&DiscrepancyRecordedEvent{
		ArrivalID:     w.ArrivalID,
		DiscrepancyID: discrepancy.DiscrepancyID,
		Type:          string(discrepancyType),
		Severity:      string(severity),
		Description:   description,
		DetectedBy:    detectedBy,
		OccurredAt_:   now,
	})

	return &discrepancy, nil
}

// ResolveDiscrepancy marks a discrepancy as resolved
func (w *InspectionWorkflow) ResolveDiscrepancy(discrepancyID, resolution string) error {
	if err := w.requireInspector(); err != nil {
		return err
	}

	for i := range w.Discrepancies {
		if w.Discrepancies[i].DiscrepancyID == discrepancyID {
			now := time.Now().UTC()
			w.Discrepancies[i].Resolved = true
			w.Discrepancies[i].Resolution = resolution
			w.UpdatedAt = now

			w.addDomainEvent(&DiscrepancyResolvedEvent{
				ArrivalID:     w.ArrivalID,
				DiscrepancyID: discrepancyID,
				Resolution:    resolution,
				OccurredAt_:   now,
			})
			return nil
		}
	}

	return ErrDiscrepancyNotFound
}

// RemoveDiscrepancy removes the discrepancy with the given id. Removal is not
// a silent no-op: repeated calls after removal report DiscrepancyNotFound.
func (w *InspectionWorkflow) RemoveDiscrepancy(discrepancyID string) error {
	if err := w.requireInspector(); err != nil {
		return err
	}

	for i := range w.Discrepancies {
		if w.Discrepancies[i].DiscrepancyID == discrepancyID {
			now := time.Now().UTC()
			w.Discrepancies = append(w.Discrepancies[:i], w.Discrepancies[i+1:]...)
			w.UpdatedAt = now

			w.addDomainEvent(&DiscrepancyRemovedEvent{
				ArrivalID:     w.ArrivalID,
				DiscrepancyID: discrepancyID,
				OccurredAt_:   now,
			})
			return nil
		}
	}

	return ErrDiscrepancyNotFound
}

// SetSummary records the cargo summary counters
func (w *InspectionWorkflow) SetSummary(totalPackages int, totalWeight float64) error {
	if err := w.requireInspector(); err != nil {
		return err
	}

	if totalPackages < 0 || totalWeight < 0 {
		return ErrInvalidSummary
	}

	now := time.Now().UTC()
	w.TotalPackages = totalPackages
	w.TotalWeight = totalWeight
	w.UpdatedAt = now

	w.addDomainEvent(&CargoSummaryRecordedEvent{
		ArrivalID:     w.ArrivalID,
		TotalPackages: totalPackages,
		TotalWeight:   totalWeight,
		OccurredAt_:   now,
	})

	return nil
}

// SetNotes replaces the free-text notes
func (w *InspectionWorkflow) SetNotes(notes string) error {
	if err := w.requireInspector(); err != nil {
		return err
	}

	w.Notes = notes
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// StartInspection records when inspection work started
func (w *InspectionWorkflow) StartInspection(startTime time.Time) error {
	if err := w.requireInspector(); err != nil {
		return err
	}

	t := startTime.UTC()
	w.InspectionStartTime = &t
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// FinalizeInspection records when inspection work stopped. It does not change
// the derived status: finishing work is distinct from the checklist being
// complete.
func (w *InspectionWorkflow) FinalizeInspection(endTime time.Time) error {
	if err := w.requireInspector(); err != nil {
		return err
	}

	now := time.Now().UTC()
	t := endTime.UTC()
	w.InspectionEndTime = &t
	w.UpdatedAt = now

	summary := w.DiscrepancySummary()
	w.addDomainEvent(&InspectionFinalizedEvent{
		ArrivalID:        w.ArrivalID,
		Inspector:        w.Inspector,
		Status:           string(w.Status),
		DiscrepancyCount: summary.Total,
		UnresolvedCount:  summary.Unresolved,
		OccurredAt_:      now,
	})

	return nil
}

// MarkReportGenerated records that a compliance report was produced from this
// workflow. The gate is enforced here: a report may only be generated once
// every checklist item is complete.
func (w *InspectionWorkflow) MarkReportGenerated() error {
	if !w.IsReportEligible() {
		return ErrReportNotEligible
	}

	now := time.Now().UTC()
	w.ReportGeneratedAt = &now
	w.UpdatedAt = now

	w.addDomainEvent(&ReportGeneratedEvent{
		ArrivalID:   w.ArrivalID,
		Inspector:   w.Inspector,
		GeneratedAt: now,
	})

	return nil
}

// ChecklistProgress returns checklist completion. The total is always the
// fixed checklist size, so the fraction is always well-defined.
func (w *InspectionWorkflow) ChecklistProgress() ChecklistProgress {
	completed := 0
	for _, done := range w.Checklist {
		if done {
			completed++
		}
	}

	total := len(w.Checklist)
	return ChecklistProgress{
		Completed: completed,
		Total:     total,
		Fraction:  float64(completed) / float64(total),
	}
}

// DiscrepancySummary computes the aggregate counts from the current
// discrepancy list
func (w *InspectionWorkflow) DiscrepancySummary() DiscrepancySummary {
	summary := DiscrepancySummary{
		ByType:     make(map[DiscrepancyType]int, len(DiscrepancyTypes())),
		BySeverity: make(map[Severity]int, 4),
	}

	for _, t := range DiscrepancyTypes() {
		summary.ByType[t] = 0
	}
	for _, s := range []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical} {
		summary.BySeverity[s] = 0
	}

	for _, d := range w.Discrepancies {
		summary.Total++
		summary.ByType[d.Type]++
		summary.BySeverity[d.Severity]++
		if d.Severity.IsCriticalOrHigh() {
			summary.CriticalOrHigh++
		}
		if d.Resolved {
			summary.Resolved++
		} else {
			summary.Unresolved++
		}
	}

	return summary
}

// IsReportEligible reports whether a compliance report may be generated.
// Report gating depends only on the checklist, never on discrepancies.
func (w *InspectionWorkflow) IsReportEligible() bool {
	return w.Status == StatusInspected
}

// GetDiscrepancy returns a discrepancy by id
func (w *InspectionWorkflow) GetDiscrepancy(discrepancyID string) *Discrepancy {
	for i := range w.Discrepancies {
		if w.Discrepancies[i].DiscrepancyID == discrepancyID {
			return &w.Discrepancies[i]
		}
	}
	return nil
}

// recomputeStatus derives the status from the checklist and inspector. The
// status is never set directly by a caller.
func (w *InspectionWorkflow) recomputeStatus() {
	allDone := true
	anyDone := false
	for _, done := range w.Checklist {
		if done {
			anyDone = true
		} else {
			allDone = false
		}
	}

	switch {
	case allDone && len(w.Checklist) > 0:
		w.Status = StatusInspected
	case anyDone || w.Inspector != "":
		w.Status = StatusInProgress
	default:
		w.Status = StatusPending
	}
}

func (w *InspectionWorkflow) requireInspector() error {
	if w.Inspector == "" {
		return ErrInspectorRequired
	}
	return nil
}

// addDomainEvent adds a domain event
func (w *InspectionWorkflow) addDomainEvent(event DomainEvent) {
	w.DomainEvents = append(w.DomainEvents, event)
}

// GetDomainEvents returns all domain events
func (w *InspectionWorkflow) GetDomainEvents() []DomainEvent {
	return w.DomainEvents
}

// ClearDomainEvents clears all domain events
func (w *InspectionWorkflow) ClearDomainEvents() {
	w.DomainEvents = make([]DomainEvent, 0)
}
