package catalog

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
)

// RunImportActivityName walks the upstream app list and upserts rows locally.
const RunImportActivityName = "catalog.activities.RunImport"

// Activities groups activities that operate on the catalog bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the catalog service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// RunImport executes a single paginated import run against the upstream catalog.
func (a *Activities) RunImport(ctx context.Context) (ports.ImportReport, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("catalog import activity not initialized")
		return ports.ImportReport{}, errors.New("catalog import activity not initialized")
	}
	logger.Info("RunImport activity started")
	report, err := a.service.RunImport(ctx)
	if err != nil {
		logger.Error("RunImport activity failed", "imported", report.Imported, "pages", report.Pages, "error", err)
		return report, err
	}
	activity.RecordHeartbeat(ctx, report.LastID)
	logger.Info("RunImport activity completed", "imported", report.Imported, "pages", report.Pages, "capHit", report.CapHit)
	return report, nil
}
