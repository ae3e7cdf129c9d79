package observability

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/gamefolio/gamefolio-api/internal/clients/http/steam"
	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/domain"
	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog application port with tracing, logging, and
// metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core catalog service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// ListCatalog returns all known entries, importing on an empty store.
func (s *Service) ListCatalog(ctx context.Context) ([]*domain.Game, error) {
	ctx, span := s.startSpan(ctx, "Service.ListCatalog")
	defer span.End()

	result, err := s.inner.ListCatalog(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list catalog")
	}
	span.SetAttributes(attribute.Int("catalog.result.count", len(result)))
	s.logInfo(ctx, "catalog listed", slog.Int("count", len(result)))
	return result, nil
}

// RunImport walks the upstream catalog.
func (s *Service) RunImport(ctx context.Context) (ports.ImportReport, error) {
	ctx, span := s.startSpan(ctx, "Service.RunImport")
	defer span.End()

	s.logInfo(ctx, "starting catalog import")
	report, err := s.inner.RunImport(ctx)
	if err != nil {
		return report, s.handleError(ctx, span, err, "catalog import failed",
			slog.Int("imported", report.Imported), slog.Int("pages", report.Pages))
	}
	span.SetAttributes(
		attribute.Int("catalog.import.rows", report.Imported),
		attribute.Int("catalog.import.pages", report.Pages),
		attribute.Bool("catalog.import.cap_hit", report.CapHit),
	)
	s.metrics.recordImported(ctx, report.Imported)
	s.logInfo(ctx, "catalog import finished",
		slog.Int("imported", report.Imported),
		slog.Int("pages", report.Pages),
		slog.Bool("capHit", report.CapHit))
	return report, nil
}

// BatchDetails resolves details for each id independently.
func (s *Service) BatchDetails(ctx context.Context, appIDs []int64) map[int64]*steam.AppDetail {
	ctx, span := s.startSpan(ctx, "Service.BatchDetails", attribute.Int("catalog.batch.size", len(appIDs)))
	defer span.End()

	out := s.inner.BatchDetails(ctx, appIDs)
	var misses int
	for _, detail := range out {
		if detail == nil {
			misses++
		}
	}
	span.SetAttributes(attribute.Int("catalog.batch.misses", misses))
	s.metrics.recordDetailLookups(ctx, len(appIDs), misses)
	return out
}

// Ensure materializes a local row for the app id.
func (s *Service) Ensure(ctx context.Context, steamAppID int64) (*domain.Game, error) {
	ctx, span := s.startSpan(ctx, "Service.Ensure", attribute.Int64("catalog.appid", steamAppID))
	defer span.End()

	game, err := s.inner.Ensure(ctx, steamAppID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "ensure failed", slog.Int64("appid", steamAppID))
	}
	// Absent upstream is a normal outcome; no error logging.
	span.SetAttributes(attribute.Bool("catalog.ensure.found", game != nil))
	return game, nil
}

// GetBySteamID merges the local row with a best-effort live detail.
func (s *Service) GetBySteamID(ctx context.Context, steamAppID int64) (*domain.Game, *steam.AppDetail, error) {
	ctx, span := s.startSpan(ctx, "Service.GetBySteamID", attribute.Int64("catalog.appid", steamAppID))
	defer span.End()

	game, detail, err := s.inner.GetBySteamID(ctx, steamAppID)
	if err != nil {
		return nil, nil, s.handleError(ctx, span, err, "failed to load game", slog.Int64("appid", steamAppID))
	}
	return game, detail, nil
}

// GetByID loads a single entry by its local identifier.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.String("catalog.id", id))
	defer span.End()

	game, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load game", slog.String("id", id))
	}
	return game, nil
}

// Featured serves the featured-categories payload.
func (s *Service) Featured(ctx context.Context) (json.RawMessage, error) {
	ctx, span := s.startSpan(ctx, "Service.Featured")
	defer span.End()

	payload, err := s.inner.Featured(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load featured categories")
	}
	return payload, nil
}

// Search proxies the storefront search.
func (s *Service) Search(ctx context.Context, term string) (json.RawMessage, error) {
	ctx, span := s.startSpan(ctx, "Service.Search", attribute.String("catalog.search.term", term))
	defer span.End()

	payload, err := s.inner.Search(ctx, term)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "search failed", slog.String("term", term))
	}
	return payload, nil
}

// UpToDate proxies the build-version freshness check.
func (s *Service) UpToDate(ctx context.Context, appID int64, version string) (json.RawMessage, error) {
	ctx, span := s.startSpan(ctx, "Service.UpToDate", attribute.Int64("catalog.appid", appID))
	defer span.End()

	payload, err := s.inner.UpToDate(ctx, appID, version)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "up-to-date check failed", slog.Int64("appid", appID))
	}
	return payload, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	rowsImported  metric.Int64Counter
	detailLookups metric.Int64Counter
	detailMisses  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	rowsImported, _ := m.Int64Counter("catalog.service.imported", metric.WithDescription("Number of catalog rows imported"))
	detailLookups, _ := m.Int64Counter("catalog.service.detail_lookups", metric.WithDescription("Number of detail lookups requested"))
	detailMisses, _ := m.Int64Counter("catalog.service.detail_misses", metric.WithDescription("Number of detail lookups resolved as absent"))
	return serviceMetrics{
		rowsImported:  rowsImported,
		detailLookups: detailLookups,
		detailMisses:  detailMisses,
	}
}

func (m serviceMetrics) recordImported(ctx context.Context, rows int) {
	if m.rowsImported == nil {
		return
	}
	m.rowsImported.Add(ctx, int64(rows))
}

func (m serviceMetrics) recordDetailLookups(ctx context.Context, total, misses int) {
	if m.detailLookups != nil {
		m.detailLookups.Add(ctx, int64(total))
	}
	if m.detailMisses != nil && misses > 0 {
		m.detailMisses.Add(ctx, int64(misses))
	}
}

var _ ports.Service = (*Service)(nil)
