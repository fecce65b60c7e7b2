package cloudevents

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEvent(t *testing.T) {
	factory := NewEventFactory(SourceInspection)

	data := InspectionOpenedData{
		ArrivalID: "ARR-2024-001",
		Inspector: "J. Dupont",
	}
	event := factory.CreateEvent(context.Background(), InspectionOpened, "inspection/ARR-2024-001", data)

	assert.Equal(t, "1.0", event.SpecVersion)
	assert.Equal(t, InspectionOpened, event.Type)
	assert.Equal(t, SourceInspection, event.Source)
	assert.Equal(t, "inspection/ARR-2024-001", event.Subject)
	assert.Equal(t, "application/json", event.DataContentType)
	assert.NotEmpty(t, event.ID)
	assert.WithinDuration(t, time.Now().UTC(), event.Time, time.Second)
}

func TestCreateEvent_UniqueIDs(t *testing.T) {
	factory := NewEventFactory(SourceInspection)

	first := factory.CreateEvent(context.Background(), ChecklistItemUpdated, "inspection/ARR-1", nil)
	second := factory.CreateEvent(context.Background(), ChecklistItemUpdated, "inspection/ARR-1", nil)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateEventWithCorrelation(t *testing.T) {
	factory := NewEventFactory(SourceInspection)

	event := factory.CreateEventWithCorrelation(
		context.Background(),
		DiscrepancyRecorded,
		"inspection/ARR-2024-001",
		DiscrepancyRecordedData{ArrivalID: "ARR-2024-001"},
		"ARR-2024-001",
		"corr-123",
	)

	assert.Equal(t, "ARR-2024-001", event.ArrivalID)
	assert.Equal(t, "corr-123", event.CorrelationID)
}

func TestCloudEventJSON(t *testing.T) {
	factory := NewEventFactory(SourceInspection)
	event := factory.CreateEventWithCorrelation(
		context.Background(),
		ReportGenerated,
		"inspection/ARR-2024-001",
		ReportGeneratedData{ArrivalID: "ARR-2024-001"},
		"ARR-2024-001",
		"corr-123",
	)

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "1.0", decoded["specversion"])
	assert.Equal(t, ReportGenerated, decoded["type"])
	assert.Equal(t, "ARR-2024-001", decoded["opsfluxarrivalid"])
	assert.Equal(t, "corr-123", decoded["opsfluxcorrelationid"])
}
