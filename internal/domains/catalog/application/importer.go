package application

import (
	"context"

	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/domain"
	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
)

// RunImport walks the upstream catalog with a cursor until the upstream
// reports no more pages or the soft cap is reached. Every page is upserted
// with skip-on-conflict semantics, so reruns and concurrent runs are safe.
// A single page failure aborts the run; no partial-page retry.
func (s *Service) RunImport(ctx context.Context) (ports.ImportReport, error) {
	var report ports.ImportReport
	var cursor int64
	for {
		page, err := s.gateway.ListApps(ctx, cursor, s.cfg.ImportPageSize)
		if err != nil {
			return report, err
		}
		report.Pages++

		entries := make([]domain.Game, 0, len(page.Apps))
		for _, app := range page.Apps {
			game, err := domain.NewGame(app.AppID, app.Name)
			if err != nil {
				// Upstream occasionally emits zero ids; skip the row.
				continue
			}
			entries = append(entries, *game)
		}
		if remaining := s.cfg.ImportSoftCap - report.Imported; len(entries) > remaining {
			entries = entries[:remaining]
			report.CapHit = true
		}
		if len(entries) > 0 {
			if _, err := s.repo.UpsertMany(ctx, entries); err != nil {
				return report, err
			}
			report.Imported += len(entries)
			report.LastID = entries[len(entries)-1].SteamAppID
		}

		if report.CapHit || report.Imported >= s.cfg.ImportSoftCap {
			report.CapHit = true
			return report, nil
		}
		if !page.HaveMoreResults {
			return report, nil
		}
		cursor = page.LastAppID
	}
}
