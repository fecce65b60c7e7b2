package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/opsflux/inspection-service/internal/domain"
	sharedmongo "github.com/opsflux/inspection-service/pkg/mongodb"
)

const collectionName = "inspection_workflows"

// InspectionWorkflowRepository is the MongoDB implementation of
// domain.InspectionWorkflowRepository
type InspectionWorkflowRepository struct {
	collection *sharedmongo.CircuitBreakerCollection
}

// NewInspectionWorkflowRepository creates a new repository backed by the
// inspection_workflows collection
func NewInspectionWorkflowRepository(client *sharedmongo.CircuitBreakerClient) *InspectionWorkflowRepository {
	return &InspectionWorkflowRepository{
		collection: client.Collection(collectionName),
	}
}

// EnsureIndexes creates the collection indexes
func (r *InspectionWorkflowRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "arrivalId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "inspector", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "vesselName", Value: 1}}},
		{Keys: bson.D{{Key: "arrivalDate", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	for _, model := range models {
		if _, err := r.collection.CreateIndex(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
		}
	}
	return nil
}

// Save persists an inspection workflow, creating or replacing by arrival id
func (r *InspectionWorkflowRepository) Save(ctx context.Context, workflow *domain.InspectionWorkflow) error {
	workflow.UpdatedAt = time.Now().UTC()

	filter := bson.M{"arrivalId": workflow.ArrivalID}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, filter, workflow, opts); err != nil {
		return fmt.Errorf("failed to save inspection workflow: %w", err)
	}
	return nil
}

// FindByArrivalID retrieves the workflow for a vessel arrival
func (r *InspectionWorkflowRepository) FindByArrivalID(ctx context.Context, arrivalID string) (*domain.InspectionWorkflow, error) {
	var workflow domain.InspectionWorkflow
	err := r.collection.FindOne(ctx, bson.M{"arrivalId": arrivalID}).Decode(&workflow)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrWorkflowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find inspection workflow: %w", err)
	}
	return &workflow, nil
}

// FindByStatus retrieves workflows with a specific derived status
func (r *InspectionWorkflowRepository) FindByStatus(ctx context.Context, status domain.InspectionStatus, pagination domain.Pagination) ([]*domain.InspectionWorkflow, error) {
	return r.findMany(ctx, bson.M{"status": status}, pagination)
}

// FindByInspector retrieves workflows assigned to an inspector
func (r *InspectionWorkflowRepository) FindByInspector(ctx context.Context, inspector string, pagination domain.Pagination) ([]*domain.InspectionWorkflow, error) {
	return r.findMany(ctx, bson.M{"inspector": inspector}, pagination)
}

// FindAll retrieves workflows matching the filter
func (r *InspectionWorkflowRepository) FindAll(ctx context.Context, filter domain.WorkflowFilter, pagination domain.Pagination) ([]*domain.InspectionWorkflow, error) {
	return r.findMany(ctx, buildFilter(filter), pagination)
}

// Delete removes a workflow
func (r *InspectionWorkflowRepository) Delete(ctx context.Context, arrivalID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"arrivalId": arrivalID})
	if err != nil {
		return fmt.Errorf("failed to delete inspection workflow: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrWorkflowNotFound
	}
	return nil
}

// Count returns the number of workflows matching the filter
func (r *InspectionWorkflowRepository) Count(ctx context.Context, filter domain.WorkflowFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count inspection workflows: %w", err)
	}
	return count, nil
}

func (r *InspectionWorkflowRepository) findMany(ctx context.Context, filter bson.M, pagination domain.Pagination) ([]*domain.InspectionWorkflow, error) {
	opts := options.Find().
		SetSkip(int64(pagination.Skip())).
		SetLimit(int64(pagination.Limit())).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find inspection workflows: %w", err)
	}
	defer cursor.Close(ctx)

	workflows := make([]*domain.InspectionWorkflow, 0)
	for cursor.Next(ctx) {
		var workflow domain.InspectionWorkflow
		if err := cursor.Decode(&workflow); err != nil {
			return nil, fmt.Errorf("failed to decode inspection workflow: %w", err)
		}
		workflows = append(workflows, &workflow)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return workflows, nil
}

func buildFilter(filter domain.WorkflowFilter) bson.M {
	query := bson.M{}

	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Inspector != "" {
		query["inspector"] = filter.Inspector
	}
	if filter.VesselName != "" {
		query["vesselName"] = filter.VesselName
	}
	if filter.ArrivalDate != "" {
		query["arrivalDate"] = filter.ArrivalDate
	}
	if filter.ReportGenerated != nil {
		query["reportGeneratedAt"] = bson.M{"$exists": *filter.ReportGenerated}
	}
	if filter.HasDiscrepancies != nil {
		if *filter.HasDiscrepancies {
			query["discrepancies.0"] = bson.M{"$exists": true}
		} else {
			query["discrepancies.0"] = bson.M{"$exists": false}
		}
	}

	return query
}
