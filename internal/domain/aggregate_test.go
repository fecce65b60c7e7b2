package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkflow(t *testing.T) *InspectionWorkflow {
	t.Helper()
	workflow, err := NewInspectionWorkflow("ARR-2024-001", "MV Atlantic Carrier", "2024-06-15", "08:30", "J. Dupont")
	require.NoError(t, err)
	workflow.ClearDomainEvents()
	return workflow
}

func TestNewInspectionWorkflow(t *testing.T) {
	workflow, err := NewInspectionWorkflow("ARR-2024-001", "MV Atlantic Carrier", "2024-06-15", "08:30", "")
	require.NoError(t, err)

	assert.Equal(t, "ARR-2024-001", workflow.ArrivalID)
	assert.Equal(t, "MV Atlantic Carrier", workflow.VesselName)
	assert.Equal(t, StatusPending, workflow.Status)
	assert.Empty(t, workflow.Discrepancies)
	assert.Len(t, workflow.Checklist, 5)
	for _, item := range ChecklistItems() {
		done, exists := workflow.Checklist[item]
		assert.True(t, exists, "checklist should contain %s", item)
		assert.False(t, done)
	}

	events := workflow.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "opsflux.inspection.opened", events[0].EventType())
}

func TestNewInspectionWorkflow_MissingArrivalID(t *testing.T) {
	workflow, err := NewInspectionWorkflow("", "MV Atlantic Carrier", "2024-06-15", "", "")
	assert.ErrorIs(t, err, ErrArrivalIDRequired)
	assert.Nil(t, workflow)
}

func TestStatusDerivation(t *testing.T) {
	tests := []struct {
		name       string
		inspector  string
		checked    []string
		wantStatus InspectionStatus
	}{
		{
			name:       "no inspector and nothing checked is pending",
			wantStatus: StatusPending,
		},
		{
			name:       "inspector assigned with nothing checked is in progress",
			inspector:  "J. Dupont",
			wantStatus: StatusInProgress,
		},
		{
			name:       "one item checked is in progress",
			inspector:  "J. Dupont",
			checked:    []string{ChecklistBordereauxRetrieved},
			wantStatus: StatusInProgress,
		},
		{
			name:       "four items checked is still in progress",
			inspector:  "J. Dupont",
			checked:    ChecklistItems()[:4],
			wantStatus: StatusInProgress,
		},
		{
			name:       "all items checked is inspected",
			inspector:  "J. Dupont",
			checked:    ChecklistItems(),
			wantStatus: StatusInspected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workflow, err := NewInspectionWorkflow("ARR-2024-001", "MV Atlantic Carrier", "2024-06-15", "", "")
			require.NoError(t, err)

			if tt.inspector != "" {
				require.NoError(t, workflow.SetInspector(tt.inspector))
			}
			for _, item := range tt.checked {
				require.NoError(t, workflow.SetChecklistItem(item, true))
			}

			assert.Equal(t, tt.wantStatus, workflow.Status)
		})
	}
}

func TestStatusDerivation_UncheckingRegresses(t *testing.T) {
	workflow := newTestWorkflow(t)

	for _, item := range ChecklistItems() {
		require.NoError(t, workflow.SetChecklistItem(item, true))
	}
	assert.Equal(t, StatusInspected, workflow.Status)
	assert.True(t, workflow.IsReportEligible())

	require.NoError(t, workflow.SetChecklistItem(ChecklistWeightVerified, false))
	assert.Equal(t, StatusInProgress, workflow.Status)
	assert.False(t, workflow.IsReportEligible())
}

func TestSetChecklistItem_UnknownItem(t *testing.T) {
	workflow := newTestWorkflow(t)

	err := workflow.SetChecklistItem("customs-cleared", true)
	assert.ErrorIs(t, err, ErrUnknownChecklistItem)
	assert.Len(t, workflow.Checklist, 5)
	assert.Equal(t, StatusInProgress, workflow.Status)
}

func TestRequireInspector(t *testing.T) {
	workflow, err := NewInspectionWorkflow("ARR-2024-001", "MV Atlantic Carrier", "2024-06-15", "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, workflow.SetChecklistItem(ChecklistBordereauxRetrieved, true), ErrInspectorRequired)
	_, err = workflow.RecordDiscrepancy(DiscrepancyMissingPackage, "one package short", SeverityHigh, "", DiscrepancyFields{})
	assert.ErrorIs(t, err, ErrInspectorRequired)
	assert.ErrorIs(t, workflow.SetSummary(10, 100), ErrInspectorRequired)
	assert.ErrorIs(t, workflow.RemoveDiscrepancy("missing"), ErrInspectorRequired)

	// The aggregate is untouched
	assert.Equal(t, StatusPending, workflow.Status)
	assert.Empty(t, workflow.Discrepancies)
}

func TestRecordDiscrepancy(t *testing.T) {
	workflow := newTestWorkflow(t)

	discrepancy, err := workflow.RecordDiscrepancy(
		DiscrepancyMissingPackage,
		"package 42 missing from hold 2",
		SeverityHigh,
		"J. Dupont",
		DiscrepancyFields{ManifestID: "MAN-7731", PackageNumber: "42"},
	)
	require.NoError(t, err)

	assert.NotEmpty(t, discrepancy.DiscrepancyID)
	assert.Equal(t, DiscrepancyMissingPackage, discrepancy.Type)
	assert.Equal(t, SeverityHigh, discrepancy.Severity)
	assert.Equal(t, "J. Dupont", discrepancy.DetectedBy)
	assert.Equal(t, "MAN-7731", discrepancy.ManifestID)
	assert.False(t, discrepancy.Resolved)
	assert.False(t, discrepancy.DetectedAt.IsZero())
	assert.Len(t, workflow.Discrepancies, 1)

	second, err := workflow.RecordDiscrepancy(
		DiscrepancyDamagedPackage, "crate crushed", SeverityMedium, "J. Dupont", DiscrepancyFields{},
	)
	require.NoError(t, err)
	assert.NotEqual(t, discrepancy.DiscrepancyID, second.DiscrepancyID)

	// Insertion order is preserved
	assert.Equal(t, DiscrepancyMissingPackage, workflow.Discrepancies[0].Type)
	assert.Equal(t, DiscrepancyDamagedPackage, workflow.Discrepancies[1].Type)
}

func TestRecordDiscrepancy_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		dType       DiscrepancyType
		description string
		severity    Severity
	}{
		{"empty description", DiscrepancyMissingPackage, "", SeverityHigh},
		{"unknown type", DiscrepancyType("late-arrival"), "vessel late", SeverityLow},
		{"unknown severity", DiscrepancyDamagedPackage, "crate crushed", Severity("extreme")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workflow := newTestWorkflow(t)
			_, err := workflow.RecordDiscrepancy(tt.dType, tt.description, tt.severity, "J. Dupont", DiscrepancyFields{})
			assert.ErrorIs(t, err, ErrInvalidDiscrepancy)
			assert.Empty(t, workflow.Discrepancies)
		})
	}
}

func TestRemoveDiscrepancy(t *testing.T) {
	workflow := newTestWorkflow(t)

	first, err := workflow.RecordDiscrepancy(DiscrepancyMissingPackage, "package missing", SeverityHigh, "J. Dupont", DiscrepancyFields{})
	require.NoError(t, err)
	second, err := workflow.RecordDiscrepancy(DiscrepancyWeightMismatch, "weight off by 200kg", SeverityMedium, "J. Dupont", DiscrepancyFields{})
	require.NoError(t, err)

	require.NoError(t, workflow.RemoveDiscrepancy(first.DiscrepancyID))
	assert.Len(t, workflow.Discrepancies, 1)
	assert.Equal(t, second.DiscrepancyID, workflow.Discrepancies[0].DiscrepancyID)

	// Removing again is an error, not a silent no-op
	assert.ErrorIs(t, workflow.RemoveDiscrepancy(first.DiscrepancyID), ErrDiscrepancyNotFound)
	assert.ErrorIs(t, workflow.RemoveDiscrepancy("no-such-id"), ErrDiscrepancyNotFound)
}

func TestResolveDiscrepancy(t *testing.T) {
	workflow := newTestWorkflow(t)

	discrepancy, err := workflow.RecordDiscrepancy(DiscrepancyMissingDocument, "bordereau copy absent", SeverityLow, "J. Dupont", DiscrepancyFields{})
	require.NoError(t, err)

	require.NoError(t, workflow.ResolveDiscrepancy(discrepancy.DiscrepancyID, "copy faxed by agent"))
	resolved := workflow.GetDiscrepancy(discrepancy.DiscrepancyID)
	require.NotNil(t, resolved)
	assert.True(t, resolved.Resolved)
	assert.Equal(t, "copy faxed by agent", resolved.Resolution)

	assert.ErrorIs(t, workflow.ResolveDiscrepancy("no-such-id", ""), ErrDiscrepancyNotFound)
}

func TestSetSummary(t *testing.T) {
	workflow := newTestWorkflow(t)

	require.NoError(t, workflow.SetSummary(240, 1250.5))
	assert.Equal(t, 240, workflow.TotalPackages)
	assert.Equal(t, 1250.5, workflow.TotalWeight)

	assert.ErrorIs(t, workflow.SetSummary(-1, 100), ErrInvalidSummary)
	assert.ErrorIs(t, workflow.SetSummary(10, -0.5), ErrInvalidSummary)

	// Rejected values leave the summary untouched
	assert.Equal(t, 240, workflow.TotalPackages)
	assert.Equal(t, 1250.5, workflow.TotalWeight)

	// Zero is a valid summary
	require.NoError(t, workflow.SetSummary(0, 0))
}

func TestDiscrepancySummary(t *testing.T) {
	workflow := newTestWorkflow(t)

	summary := workflow.DiscrepancySummary()
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.CriticalOrHigh)
	assert.Len(t, summary.ByType, len(DiscrepancyTypes()))
	for _, dType := range DiscrepancyTypes() {
		assert.Equal(t, 0, summary.ByType[dType])
	}

	record := func(dType DiscrepancyType, severity Severity) {
		_, err := workflow.RecordDiscrepancy(dType, "observed during unloading", severity, "J. Dupont", DiscrepancyFields{})
		require.NoError(t, err)
	}

	record(DiscrepancyMissingPackage, SeverityHigh)
	record(DiscrepancyMissingPackage, SeverityCritical)
	record(DiscrepancyDamagedPackage, SeverityLow)
	record(DiscrepancyWeightMismatch, SeverityMedium)
	record(DiscrepancyDefectiveSlinging, SeverityHigh)

	require.NoError(t, workflow.ResolveDiscrepancy(workflow.Discrepancies[2].DiscrepancyID, "repacked on quay"))

	summary = workflow.DiscrepancySummary()
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 3, summary.CriticalOrHigh)
	assert.Equal(t, 1, summary.Resolved)
	assert.Equal(t, 4, summary.Unresolved)
	assert.Equal(t, 2, summary.ByType[DiscrepancyMissingPackage])
	assert.Equal(t, 1, summary.ByType[DiscrepancyDamagedPackage])
	assert.Equal(t, 1, summary.ByType[DiscrepancyWeightMismatch])
	assert.Equal(t, 1, summary.ByType[DiscrepancyDefectiveSlinging])
	assert.Equal(t, 0, summary.ByType[DiscrepancyUnmanifestedPackage])
	assert.Equal(t, 2, summary.BySeverity[SeverityHigh])
	assert.Equal(t, 1, summary.BySeverity[SeverityCritical])
}

func TestChecklistProgress(t *testing.T) {
	workflow := newTestWorkflow(t)

	progress := workflow.ChecklistProgress()
	assert.Equal(t, 0, progress.Completed)
	assert.Equal(t, 5, progress.Total)
	assert.Equal(t, 0.0, progress.Fraction)

	require.NoError(t, workflow.SetChecklistItem(ChecklistBordereauxRetrieved, true))
	require.NoError(t, workflow.SetChecklistItem(ChecklistPhysicalCountDone, true))

	progress = workflow.ChecklistProgress()
	assert.Equal(t, 2, progress.Completed)
	assert.Equal(t, 5, progress.Total)
	assert.InDelta(t, 0.4, progress.Fraction, 1e-9)

	for _, item := range ChecklistItems() {
		require.NoError(t, workflow.SetChecklistItem(item, true))
	}
	progress = workflow.ChecklistProgress()
	assert.Equal(t, 5, progress.Completed)
	assert.Equal(t, 1.0, progress.Fraction)
}

func TestReportGate(t *testing.T) {
	workflow := newTestWorkflow(t)

	assert.False(t, workflow.IsReportEligible())
	assert.ErrorIs(t, workflow.MarkReportGenerated(), ErrReportNotEligible)
	assert.Nil(t, workflow.ReportGeneratedAt)

	for _, item := range ChecklistItems() {
		require.NoError(t, workflow.SetChecklistItem(item, true))
	}

	assert.True(t, workflow.IsReportEligible())
	require.NoError(t, workflow.MarkReportGenerated())
	require.NotNil(t, workflow.ReportGeneratedAt)
}

func TestReportGate_IndependentOfDiscrepancies(t *testing.T) {
	workflow := newTestWorkflow(t)

	for _, item := range ChecklistItems() {
		require.NoError(t, workflow.SetChecklistItem(item, true))
	}

	_, err := workflow.RecordDiscrepancy(DiscrepancyMissingPackage, "package 42 missing", SeverityCritical, "J. Dupont", DiscrepancyFields{})
	require.NoError(t, err)

	// A critical unresolved discrepancy does not block the report
	assert.Equal(t, StatusInspected, workflow.Status)
	assert.True(t, workflow.IsReportEligible())
}

func TestFinalizeInspection(t *testing.T) {
	workflow := newTestWorkflow(t)

	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	require.NoError(t, workflow.StartInspection(start))
	require.NoError(t, workflow.SetChecklistItem(ChecklistBordereauxRetrieved, true))
	require.NoError(t, workflow.FinalizeInspection(end))

	require.NotNil(t, workflow.InspectionStartTime)
	require.NotNil(t, workflow.InspectionEndTime)
	assert.Equal(t, start, *workflow.InspectionStartTime)
	assert.Equal(t, end, *workflow.InspectionEndTime)

	// Finalizing does not force the derived status
	assert.Equal(t, StatusInProgress, workflow.Status)
}

func TestFullInspectionScenario(t *testing.T) {
	workflow, err := NewInspectionWorkflow("ARR-2024-042", "MV Sahel Trader", "2024-06-15", "06:45", "")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, workflow.Status)

	require.NoError(t, workflow.SetInspector("J. Dupont"))
	assert.Equal(t, StatusInProgress, workflow.Status)

	for _, item := range ChecklistItems() {
		require.NoError(t, workflow.SetChecklistItem(item, true))
	}
	assert.Equal(t, StatusInspected, workflow.Status)
	assert.True(t, workflow.IsReportEligible())

	_, err = workflow.RecordDiscrepancy(DiscrepancyMissingPackage, "one case short against manifest", SeverityHigh, "J. Dupont", DiscrepancyFields{})
	require.NoError(t, err)

	summary := workflow.DiscrepancySummary()
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.CriticalOrHigh)
	assert.Equal(t, 1, summary.ByType[DiscrepancyMissingPackage])

	// Still inspected and still eligible
	assert.Equal(t, StatusInspected, workflow.Status)
	assert.True(t, workflow.IsReportEligible())
	require.NoError(t, workflow.MarkReportGenerated())
}

func TestDomainEventAccumulation(t *testing.T) {
	workflow, err := NewInspectionWorkflow("ARR-2024-001", "MV Atlantic Carrier", "2024-06-15", "", "")
	require.NoError(t, err)
	require.NoError(t, workflow.SetInspector("J. Dupont"))

	for _, item := range ChecklistItems() {
		require.NoError(t, workflow.SetChecklistItem(item, true))
	}

	var types []string
	for _, event := range workflow.GetDomainEvents() {
		types = append(types, event.EventType())
		assert.False(t, event.OccurredAt().IsZero())
	}

	// opened + assigned + 5 item updates + the completion transition
	require.Len(t, types, 8)
	assert.Equal(t, "opsflux.inspection.opened", types[0])
	assert.Equal(t, "opsflux.inspection.inspector-assigned", types[1])
	assert.Equal(t, "opsflux.inspection.completed", types[7])

	workflow.ClearDomainEvents()
	assert.Empty(t, workflow.GetDomainEvents())
}

func TestWorkflowJSONRoundTrip(t *testing.T) {
	workflow := newTestWorkflow(t)
	require.NoError(t, workflow.SetChecklistItem(ChecklistBordereauxRetrieved, true))
	_, err := workflow.RecordDiscrepancy(
		DiscrepancyWeightMismatch, "declared 500kg, scaled 720kg", SeverityMedium, "J. Dupont",
		DiscrepancyFields{ManifestID: "MAN-0099", ExpectedValue: "500", ActualValue: "720"},
	)
	require.NoError(t, err)
	require.NoError(t, workflow.SetSummary(120, 4100.75))

	data, err := json.Marshal(workflow)
	require.NoError(t, err)

	var decoded InspectionWorkflow
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, workflow.ArrivalID, decoded.ArrivalID)
	assert.Equal(t, workflow.VesselName, decoded.VesselName)
	assert.Equal(t, workflow.Inspector, decoded.Inspector)
	assert.Equal(t, workflow.Status, decoded.Status)
	assert.Equal(t, workflow.Checklist, decoded.Checklist)
	assert.Equal(t, workflow.TotalPackages, decoded.TotalPackages)
	assert.Equal(t, workflow.TotalWeight, decoded.TotalWeight)
	require.Len(t, decoded.Discrepancies, 1)
	assert.Equal(t, workflow.Discrepancies[0].DiscrepancyID, decoded.Discrepancies[0].DiscrepancyID)
	assert.Equal(t, workflow.Discrepancies[0].Type, decoded.Discrepancies[0].Type)
	assert.True(t, workflow.Discrepancies[0].DetectedAt.Equal(decoded.Discrepancies[0].DetectedAt))

	// Derived views match after the round trip
	assert.Equal(t, workflow.DiscrepancySummary(), decoded.DiscrepancySummary())
	assert.Equal(t, workflow.ChecklistProgress(), decoded.ChecklistProgress())
	assert.Equal(t, workflow.IsReportEligible(), decoded.IsReportEligible())
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusInProgress.IsValid())
	assert.True(t, StatusInspected.IsValid())
	assert.False(t, InspectionStatus("done").IsValid())

	for _, dType := range DiscrepancyTypes() {
		assert.True(t, dType.IsValid())
	}
	assert.False(t, DiscrepancyType("").IsValid())

	assert.True(t, SeverityCritical.IsCriticalOrHigh())
	assert.True(t, SeverityHigh.IsCriticalOrHigh())
	assert.False(t, SeverityMedium.IsCriticalOrHigh())
	assert.False(t, SeverityLow.IsCriticalOrHigh())
}
