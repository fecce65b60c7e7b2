package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opsflux/inspection-service/pkg/cloudevents"
	"github.com/opsflux/inspection-service/pkg/kafka"
	"github.com/opsflux/inspection-service/pkg/logging"
	"github.com/opsflux/inspection-service/pkg/metrics"
	"github.com/opsflux/inspection-service/pkg/middleware"
	"github.com/opsflux/inspection-service/pkg/mongodb"
	"github.com/opsflux/inspection-service/pkg/tracing"

	"github.com/opsflux/inspection-service/internal/api/dto"
	"github.com/opsflux/inspection-service/internal/application"
	"github.com/opsflux/inspection-service/internal/domain"
	kafkaInfra "github.com/opsflux/inspection-service/internal/infrastructure/kafka"
	mongoRepo "github.com/opsflux/inspection-service/internal/infrastructure/mongodb"
)

const serviceName = "inspection-service"

func main() {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting inspection-service API")

	config := loadConfig()
	ctx := context.Background()

	// OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")
	tracingConfig.Enabled = getEnv("TRACING_ENABLED", "true") == "true"

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.OTLPEndpoint)
	}

	// Prometheus metrics
	m := metrics.New(metrics.DefaultConfig(serviceName))
	logger.Info("Metrics initialized")

	// MongoDB with instrumentation and circuit breaker
	mongoClient, err := mongodb.NewProductionClient(ctx, config.MongoDB, m, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	// Kafka producer with instrumentation
	kafkaProducer := kafka.NewProducer(config.Kafka)
	instrumentedProducer := kafka.NewInstrumentedProducer(kafkaProducer, m, logger)
	defer instrumentedProducer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	// CloudEvents factory and event publisher
	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceInspection)
	eventPublisher := kafkaInfra.NewEventPublisher(instrumentedProducer, eventFactory)

	// Repository
	repo := mongoRepo.NewInspectionWorkflowRepository(mongoClient)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.WithError(err).Error("Failed to create MongoDB indexes")
	}

	// Application services
	inspectionService := application.NewInspectionService(repo, eventPublisher, logger, m)
	reportService := application.NewReportService(inspectionService, logger, m)

	// Gin router with middleware
	router := gin.New()

	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)

	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.SimpleTracingMiddleware(serviceName))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	// API v1 routes
	api := router.Group("/api/v1/inspections")
	{
		api.GET("", listWorkflowsHandler(inspectionService, logger))
		api.POST("", openInspectionHandler(inspectionService, logger))
		api.GET("/status/:status", getByStatusHandler(inspectionService, logger))
		api.GET("/:arrivalId", getWorkflowHandler(inspectionService, logger))
		api.PUT("/:arrivalId/inspector", assignInspectorHandler(inspectionService, logger))
		api.POST("/:arrivalId/start", startInspectionHandler(inspectionService, logger))
		api.POST("/:arrivalId/finalize", finalizeInspectionHandler(inspectionService, logger))
		api.PUT("/:arrivalId/checklist", setChecklistItemHandler(inspectionService, logger))
		api.GET("/:arrivalId/progress", getProgressHandler(inspectionService, logger))
		api.POST("/:arrivalId/discrepancies", recordDiscrepancyHandler(inspectionService, logger))
		api.PUT("/:arrivalId/discrepancies/:discrepancyId/resolve", resolveDiscrepancyHandler(inspectionService, logger))
		api.DELETE("/:arrivalId/discrepancies/:discrepancyId", removeDiscrepancyHandler(inspectionService, logger))
		api.GET("/:arrivalId/discrepancies/summary", getDiscrepancySummaryHandler(inspectionService, logger))
		api.PUT("/:arrivalId/summary", setSummaryHandler(inspectionService, logger))
		api.PUT("/:arrivalId/notes", setNotesHandler(inspectionService, logger))
		api.GET("/:arrivalId/report/eligibility", checkEligibilityHandler(reportService, logger))
		api.POST("/:arrivalId/report", generateReportHandler(reportService, logger))
	}

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
}

func loadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8020"),
		MongoDB: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "inspection_db"),
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    10,
		},
		Kafka: &kafka.Config{
			Brokers:       []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ConsumerGroup: serviceName,
			ClientID:      serviceName,
			BatchSize:     100,
			BatchTimeout:  10 * time.Millisecond,
			RequiredAcks:  -1,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// HTTP Handlers

func openInspectionHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.OpenInspectionRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"inspection.arrival_id": req.ArrivalID,
			"inspection.vessel":     req.VesselName,
		})

		workflow, err := service.OpenInspection(c.Request.Context(), application.OpenInspectionCommand{
			ArrivalID:   req.ArrivalID,
			VesselName:  req.VesselName,
			ArrivalDate: req.ArrivalDate,
			ArrivalTime: req.ArrivalTime,
			Inspector:   req.Inspector,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, toWorkflowResponse(workflow))
	}
}

func getWorkflowHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		arrivalID := c.Param("arrivalId")
		middleware.AddSpanAttributes(c, map[string]interface{}{
			"inspection.arrival_id": arrivalID,
		})

		workflow, err := service.GetWorkflow(c.Request.Context(), arrivalID)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toWorkflowResponse(workflow))
	}
}

func listWorkflowsHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		pagination := paginationFromQuery(c)
		filter := domain.WorkflowFilter{
			Status:      domain.InspectionStatus(c.Query("status")),
			Inspector:   c.Query("inspector"),
			VesselName:  c.Query("vesselName"),
			ArrivalDate: c.Query("arrivalDate"),
		}

		workflows, err := service.ListWorkflows(c.Request.Context(), filter, pagination)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toWorkflowListResponse(workflows, pagination))
	}
}

func getByStatusHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		status := domain.InspectionStatus(c.Param("status"))
		if !status.IsValid() {
			responder.RespondBadRequest("invalid status: " + c.Param("status"))
			return
		}

		pagination := paginationFromQuery(c)
		workflows, err := service.GetWorkflowsByStatus(c.Request.Context(), status, pagination)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toWorkflowListResponse(workflows, pagination))
	}
}

func assignInspectorHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.AssignInspectorRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		workflow, err := service.AssignInspector(c.Request.Context(), application.AssignInspectorCommand{
			ArrivalID: c.Param("arrivalId"),
			Inspector: req.Inspector,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toWorkflowResponse(workflow))
	}
}

func startInspectionHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.StartInspectionRequest
		if c.Request.ContentLength > 0 {
			if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
				responder.RespondWithAppError(appErr)
				return
			}
		}

		workflow, err := service.StartInspection(c.Request.Context(), application.StartInspectionCommand{
			ArrivalID: c.Param("arrivalId"),
			StartTime: req.StartTime,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toWorkflowResponse(workflow))
	}
}

func finalizeInspectionHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.FinalizeInspectionRequest
		if c.Request.ContentLength > 0 {
			if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
				responder.RespondWithAppError(appErr)
				return
			}
		}

		workflow, err := service.FinalizeInspection(c.Request.Context(), application.FinalizeInspectionCommand{
			ArrivalID: c.Param("arrivalId"),
			EndTime:   req.EndTime,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toWorkflowResponse(workflow))
	}
}

func setChecklistItemHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.SetChecklistItemRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"inspection.checklist_item": req.Item,
			"inspection.item_done":      *req.Done,
		})

		workflow, err := service.SetChecklistItem(c.Request.Context(), application.SetChecklistItemCommand{
			ArrivalID: c.Param("arrivalId"),
			Item:      req.Item,
			Done:      *req.Done,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toWorkflowResponse(workflow))
	}
}

func getProgressHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		progress, err := service.GetChecklistProgress(c.Request.Context(), c.Param("arrivalId"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, dto.ProgressResponse{
			Completed: progress.Completed,
			Total:     progress.Total,
			Fraction:  progress.Fraction,
		})
	}
}

func recordDiscrepancyHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.RecordDiscrepancyRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"discrepancy.type":     req.Type,
			"discrepancy.severity": req.Severity,
		})

		_, discrepancy, err := service.RecordDiscrepancy(c.Request.Context(), application.RecordDiscrepancyCommand{
			ArrivalID:     c.Param("arrivalId"),
			Type:          req.Type,
			Description:   req.Description,
			Severity:      req.Severity,
			DetectedBy:    req.DetectedBy,
			ManifestID:    req.ManifestID,
			PackageNumber: req.PackageNumber,
			ExpectedValue: req.ExpectedValue,
			ActualValue:   req.ActualValue,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, toDiscrepancyResponse(*discrepancy))
	}
}

func resolveDiscrepancyHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.ResolveDiscrepancyRequest
		if c.Request.ContentLength > 0 {
			if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
				responder.RespondWithAppError(appErr)
				return
			}
		}

		workflow, err := service.ResolveDiscrepancy(c.Request.Context(), application.ResolveDiscrepancyCommand{
			ArrivalID:     c.Param("arrivalId"),
			DiscrepancyID: c.Param("discrepancyId"),
			Resolution:    req.Resolution,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toWorkflowResponse(workflow))
	}
}

func removeDiscrepancyHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		workflow, err := service.RemoveDiscrepancy(c.Request.Context(), application.RemoveDiscrepancyCommand{
			ArrivalID:     c.Param("arrivalId"),
			DiscrepancyID: c.Param("discrepancyId"),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toWorkflowResponse(workflow))
	}
}

func getDiscrepancySummaryHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		arrivalID := c.Param("arrivalId")
		summary, err := service.GetDiscrepancySummary(c.Request.Context(), arrivalID)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toDiscrepancySummaryResponse(arrivalID, summary))
	}
}

func setSummaryHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.SetSummaryRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		workflow, err := service.SetSummary(c.Request.Context(), application.SetSummaryCommand{
			ArrivalID:     c.Param("arrivalId"),
			TotalPackages: req.TotalPackages,
			TotalWeight:   req.TotalWeight,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toWorkflowResponse(workflow))
	}
}

func setNotesHandler(service *application.InspectionService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.SetNotesRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		workflow, err := service.SetNotes(c.Request.Context(), application.SetNotesCommand{
			ArrivalID: c.Param("arrivalId"),
			Notes:     req.Notes,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, toWorkflowResponse(workflow))
	}
}

func checkEligibilityHandler(service *application.ReportService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		arrivalID := c.Param("arrivalId")
		eligible, progress, err := service.CheckEligibility(c.Request.Context(), arrivalID)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, dto.EligibilityResponse{
			ArrivalID: arrivalID,
			Eligible:  eligible,
			Progress: dto.ProgressResponse{
				Completed: progress.Completed,
				Total:     progress.Total,
				Fraction:  progress.Fraction,
			},
		})
	}
}

func generateReportHandler(service *application.ReportService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		arrivalID := c.Param("arrivalId")
		middleware.AddSpanAttributes(c, map[string]interface{}{
			"inspection.arrival_id": arrivalID,
		})

		report, err := service.GenerateReport(c.Request.Context(), application.GenerateReportCommand{
			ArrivalID: arrivalID,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func paginationFromQuery(c *gin.Context) domain.Pagination {
	pagination := domain.DefaultPagination()
	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			pagination.Page = page
		}
	}
	if sizeStr := c.Query("pageSize"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 {
			pagination.PageSize = size
			if pagination.PageSize > 200 {
				pagination.PageSize = 200
			}
		}
	}
	return pagination
}

// Helpers to convert domain to responses

func toWorkflowResponse(w *domain.InspectionWorkflow) dto.WorkflowResponse {
	progress := w.ChecklistProgress()

	resp := dto.WorkflowResponse{
		ID:                  w.ID.Hex(),
		ArrivalID:           w.ArrivalID,
		VesselName:          w.VesselName,
		ArrivalDate:         w.ArrivalDate,
		ArrivalTime:         w.ArrivalTime,
		Inspector:           w.Inspector,
		InspectionStartTime: w.InspectionStartTime,
		InspectionEndTime:   w.InspectionEndTime,
		Checklist:           w.Checklist,
		Progress: dto.ProgressResponse{
			Completed: progress.Completed,
			Total:     progress.Total,
			Fraction:  progress.Fraction,
		},
		TotalPackages:     w.TotalPackages,
		TotalWeight:       w.TotalWeight,
		Notes:             w.Notes,
		Status:            string(w.Status),
		ReportEligible:    w.IsReportEligible(),
		ReportGeneratedAt: w.ReportGeneratedAt,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}

	resp.Discrepancies = make([]dto.DiscrepancyResponse, len(w.Discrepancies))
	for i, d := range w.Discrepancies {
		resp.Discrepancies[i] = toDiscrepancyResponse(d)
	}

	return resp
}

func toDiscrepancyResponse(d domain.Discrepancy) dto.DiscrepancyResponse {
	return dto.DiscrepancyResponse{
		DiscrepancyID: d.DiscrepancyID,
		Type:          string(d.Type),
		Description:   d.Description,
		Severity:      string(d.Severity),
		DetectedBy:    d.DetectedBy,
		DetectedAt:    d.DetectedAt,
		ManifestID:    d.ManifestID,
		PackageNumber: d.PackageNumber,
		ExpectedValue: d.ExpectedValue,
		ActualValue:   d.ActualValue,
		Resolved:      d.Resolved,
		Resolution:    d.Resolution,
	}
}

func toDiscrepancySummaryResponse(arrivalID string, summary domain.DiscrepancySummary) dto.DiscrepancySummaryResponse {
	byType := make(map[string]int, len(summary.ByType))
	for t, count := range summary.ByType {
		byType[string(t)] = count
	}
	bySeverity := make(map[string]int, len(summary.BySeverity))
	for s, count := range summary.BySeverity {
		bySeverity[string(s)] = count
	}

	return dto.DiscrepancySummaryResponse{
		ArrivalID:      arrivalID,
		Total:          summary.Total,
		CriticalOrHigh: summary.CriticalOrHigh,
		Resolved:       summary.Resolved,
		Unresolved:     summary.Unresolved,
		ByType:         byType,
		BySeverity:     bySeverity,
	}
}

func toWorkflowListResponse(workflows []*domain.InspectionWorkflow, pagination domain.Pagination) dto.WorkflowListResponse {
	response := dto.WorkflowListResponse{
		Workflows: make([]dto.WorkflowSummary, len(workflows)),
		Total:     len(workflows),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
	}

	for i, w := range workflows {
		progress := w.ChecklistProgress()
		response.Workflows[i] = dto.WorkflowSummary{
			ID:                w.ID.Hex(),
			ArrivalID:         w.ArrivalID,
			VesselName:        w.VesselName,
			ArrivalDate:       w.ArrivalDate,
			Inspector:         w.Inspector,
			Status:            string(w.Status),
			ChecklistComplete: progress.Completed,
			DiscrepancyCount:  len(w.Discrepancies),
			ReportEligible:    w.IsReportEligible(),
			CreatedAt:         w.CreatedAt,
		}
	}

	return response
}
