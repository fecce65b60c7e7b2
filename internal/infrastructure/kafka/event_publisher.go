package kafka

import (
	"context"
	"fmt"

	"github.com/opsflux/inspection-service/internal/domain"
	"github.com/opsflux/inspection-service/pkg/cloudevents"
	"github.com/opsflux/inspection-service/pkg/kafka"
	"github.com/opsflux/inspection-service/pkg/logging"
)

// EventPublisher publishes inspection domain events to Kafka as CloudEvents
type EventPublisher struct {
	producer     *kafka.InstrumentedProducer
	eventFactory *cloudevents.EventFactory
	topic        string
}

// NewEventPublisher creates a new EventPublisher
func NewEventPublisher(producer *kafka.InstrumentedProducer, eventFactory *cloudevents.EventFactory) *EventPublisher {
	return &EventPublisher{
		producer:     producer,
		eventFactory: eventFactory,
		topic:        kafka.Topics.InspectionsEvents,
	}
}

// Publish publishes a domain event
func (p *EventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	arrivalID := arrivalIDOf(event)
	if arrivalID == "" {
		return fmt.Errorf("unsupported domain event type: %T", event)
	}

	ce := p.eventFactory.CreateEventWithCorrelation(
		ctx,
		event.EventType(),
		"inspection/"+arrivalID,
		event,
		arrivalID,
		logging.CorrelationIDFromContext(ctx),
	)

	return p.producer.PublishEvent(ctx, p.topic, ce)
}

// PublishAll publishes multiple domain events
func (p *EventPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(ctx, event); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", event.EventType(), err)
		}
	}
	return nil
}

func arrivalIDOf(event domain.DomainEvent) string {
	switch e := event.(type) {
	case *domain.InspectionOpenedEvent:
		return e.ArrivalID
	case *domain.InspectorAssignedEvent:
		return e.ArrivalID
	case *domain.ChecklistItemUpdatedEvent:
		return e.ArrivalID
	case *domain.InspectionCompletedEvent:
		return e.ArrivalID
	case *domain.DiscrepancyRecordedEvent:
		return e.ArrivalID
	case *domain.DiscrepancyResolvedEvent:
		return e.ArrivalID
	case *domain.DiscrepancyRemovedEvent:
		return e.ArrivalID
	case *domain.CargoSummaryRecordedEvent:
		return e.ArrivalID
	case *domain.InspectionFinalizedEvent:
		return e.ArrivalID
	case *domain.ReportGeneratedEvent:
		return e.ArrivalID
	default:
		return ""
	}
}
