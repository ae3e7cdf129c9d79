package catalog

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
	catalogactivities "github.com/gamefolio/gamefolio-api/internal/platform/temporal/activities/catalog"
)

const (
	// ImportWorkflowName is the public identifier for registering the workflow.
	ImportWorkflowName = "catalog.workflows.Import"
	// ImportTaskQueue is the queue consumed by the worker processing catalog imports.
	ImportTaskQueue = "CATALOG_IMPORT"
)

// ImportWorkflowInput captures the payload for a durable catalog import run.
type ImportWorkflowInput struct {
	TraceID string
}

// ImportWorkflow orchestrates the activity that walks the upstream app list.
func ImportWorkflow(ctx workflow.Context, input ImportWorkflowInput) (*ports.ImportReport, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ImportWorkflow started", withTraceID(input.TraceID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		HeartbeatTimeout:    time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var report ports.ImportReport
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), catalogactivities.RunImportActivityName).Get(ctx, &report)
	if err != nil {
		logger.Error("ImportWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("ImportWorkflow completed", withTraceID(input.TraceID,
		"imported", report.Imported, "pages", report.Pages, "capHit", report.CapHit)...)
	return &report, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
