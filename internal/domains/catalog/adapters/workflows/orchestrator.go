package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
	catalogworkflows "github.com/gamefolio/gamefolio-api/internal/durable/temporal/workflows/catalog"
)

var (
	_ ports.ImportOrchestrator = (*TemporalImports)(nil)
	_ ports.ImportOrchestrator = (*InlineImports)(nil)
)

// TemporalImports starts catalog import workflows on a Temporal cluster.
type TemporalImports struct {
	client    client.Client
	taskQueue string
}

// NewTemporalImports wires a Temporal client into the orchestrator.
func NewTemporalImports(c client.Client) *TemporalImports {
	return &TemporalImports{client: c, taskQueue: catalogworkflows.ImportTaskQueue}
}

// RunImport starts the durable import workflow and waits for its report.
// A run that is already in flight is attached to instead of duplicated.
func (o *TemporalImports) RunImport(ctx context.Context) (ports.ImportReport, error) {
	if o == nil || o.client == nil {
		return ports.ImportReport{}, errors.New("temporal catalog imports not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        "catalog-import",
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		catalogworkflows.ImportWorkflow,
		catalogworkflows.ImportWorkflowInput{TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
			var report ports.ImportReport
			if err := existingRun.Get(ctx, &report); err != nil {
				return ports.ImportReport{}, err
			}
			return report, nil
		}
		return ports.ImportReport{}, err
	}
	var report ports.ImportReport
	if err := run.Get(ctx, &report); err != nil {
		return ports.ImportReport{}, err
	}
	return report, nil
}

// InlineImports executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineImports struct {
	service ports.Service
}

// NewInlineImports wraps the catalog service for synchronous execution.
func NewInlineImports(service ports.Service) *InlineImports {
	return &InlineImports{service: service}
}

// RunImport delegates to the application service without durable orchestration.
func (o *InlineImports) RunImport(ctx context.Context) (ports.ImportReport, error) {
	if o == nil || o.service == nil {
		return ports.ImportReport{}, errors.New("inline catalog imports not configured")
	}
	return o.service.RunImport(ctx)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
