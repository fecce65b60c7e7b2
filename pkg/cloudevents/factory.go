package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventFactory creates CloudEvents for inspection domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new CloudEvent with the given parameters
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *CloudEvent {
	event := &CloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
		Extensions:      make(map[string]interface{}),
	}

	return event
}

// CreateEventWithCorrelation creates an event with correlation tracking
func (f *EventFactory) CreateEventWithCorrelation(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
	arrivalID string,
	correlationID string,
) *CloudEvent {
	event := f.CreateEvent(ctx, eventType, subject, data)
	event.ArrivalID = arrivalID
	event.CorrelationID = correlationID
	return event
}

// CreateInspectionOpenedEvent creates an InspectionOpened event
func (f *EventFactory) CreateInspectionOpenedEvent(
	ctx context.Context,
	arrivalID string,
	inspector string,
) *CloudEvent {
	data := InspectionOpenedData{
		ArrivalID: arrivalID,
		Inspector: inspector,
	}
	event := f.CreateEvent(ctx, InspectionOpened, "inspection/"+arrivalID, data)
	event.ArrivalID = arrivalID
	return event
}

// CreateChecklistItemUpdatedEvent creates a ChecklistItemUpdated event
func (f *EventFactory) CreateChecklistItemUpdatedEvent(
	ctx context.Context,
	arrivalID string,
	item string,
	done bool,
	status string,
) *CloudEvent {
	data := ChecklistItemUpdatedData{
		ArrivalID: arrivalID,
		Item:      item,
		Done:      done,
		Status:    status,
	}
	event := f.CreateEvent(ctx, ChecklistItemUpdated, "inspection/"+arrivalID, data)
	event.ArrivalID = arrivalID
	return event
}

// CreateDiscrepancyRecordedEvent creates a DiscrepancyRecorded event
func (f *EventFactory) CreateDiscrepancyRecordedEvent(
	ctx context.Context,
	arrivalID string,
	discrepancyID string,
	discrepancyType string,
	severity string,
	description string,
) *CloudEvent {
	data := DiscrepancyRecordedData{
		ArrivalID:     arrivalID,
		DiscrepancyID: discrepancyID,
		Type:          discrepancyType,
		Severity:      severity,
		Description:   description,
	}
	event := f.CreateEvent(ctx, DiscrepancyRecorded, "inspection/"+arrivalID+"/discrepancy/"+discrepancyID, data)
	event.ArrivalID = arrivalID
	return event
}

// CreateReportGeneratedEvent creates a ReportGenerated event
func (f *EventFactory) CreateReportGeneratedEvent(
	ctx context.Context,
	arrivalID string,
	inspector string,
	generatedAt time.Time,
) *CloudEvent {
	data := ReportGeneratedData{
		ArrivalID:   arrivalID,
		Inspector:   inspector,
		GeneratedAt: generatedAt,
	}
	event := f.CreateEvent(ctx, ReportGenerated, "inspection/"+arrivalID+"/report", data)
	event.ArrivalID = arrivalID
	return event
}
