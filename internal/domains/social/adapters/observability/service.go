package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/gamefolio/gamefolio-api/internal/domains/social/domain"
	"github.com/gamefolio/gamefolio-api/internal/domains/social/ports"
)

const tracerName = "github.com/gamefolio/gamefolio-api/internal/domains/social/adapters/observability/service"

// Service decorates the social application port with tracing, logging, and
// metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core social service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) ListComments(ctx context.Context, steamAppID int64) ([]*domain.Comment, error) {
	ctx, span := s.startSpan(ctx, "Service.ListComments", attribute.Int64("social.appid", steamAppID))
	defer span.End()
	out, err := s.inner.ListComments(ctx, steamAppID)
	return out, s.finish(ctx, span, err, "failed to list comments")
}

func (s *Service) AddComment(ctx context.Context, userID string, steamAppID int64, content string, rating *int) (*domain.Comment, error) {
	ctx, span := s.startSpan(ctx, "Service.AddComment", attribute.Int64("social.appid", steamAppID))
	defer span.End()
	comment, err := s.inner.AddComment(ctx, userID, steamAppID, content, rating)
	if err == nil {
		s.metrics.commentsCreated.add(ctx, 1)
	}
	return comment, s.finish(ctx, span, err, "failed to add comment")
}

func (s *Service) LikeSummary(ctx context.Context, steamAppID int64, userID string) (domain.LikeSummary, error) {
	ctx, span := s.startSpan(ctx, "Service.LikeSummary", attribute.Int64("social.appid", steamAppID))
	defer span.End()
	summary, err := s.inner.LikeSummary(ctx, steamAppID, userID)
	return summary, s.finish(ctx, span, err, "failed to load like summary")
}

func (s *Service) ToggleLike(ctx context.Context, steamAppID int64, userID string) (domain.LikeToggle, error) {
	ctx, span := s.startSpan(ctx, "Service.ToggleLike", attribute.Int64("social.appid", steamAppID))
	defer span.End()
	toggle, err := s.inner.ToggleLike(ctx, steamAppID, userID)
	if err == nil {
		span.SetAttributes(attribute.String("social.like.action", string(toggle.Action)))
		s.metrics.likesToggled.add(ctx, 1)
	}
	return toggle, s.finish(ctx, span, err, "failed to toggle like")
}

func (s *Service) Recommend(ctx context.Context, input ports.RecommendInput) (*domain.Recommendation, error) {
	ctx, span := s.startSpan(ctx, "Service.Recommend", attribute.Int64("social.appid", input.SteamAppID))
	defer span.End()
	rec, err := s.inner.Recommend(ctx, input)
	if err == nil {
		s.metrics.recommendationsSent.add(ctx, 1)
	}
	return rec, s.finish(ctx, span, err, "failed to create recommendation")
}

func (s *Service) RecommendationsFor(ctx context.Context, userID string) ([]*domain.Recommendation, error) {
	ctx, span := s.startSpan(ctx, "Service.RecommendationsFor")
	defer span.End()
	out, err := s.inner.RecommendationsFor(ctx, userID)
	return out, s.finish(ctx, span, err, "failed to list recommendations")
}

func (s *Service) UpdateRecommendationStatus(ctx context.Context, id, status string) (*domain.Recommendation, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateRecommendationStatus", attribute.String("social.recommendation.id", id))
	defer span.End()
	rec, err := s.inner.UpdateRecommendationStatus(ctx, id, status)
	return rec, s.finish(ctx, span, err, "failed to update recommendation")
}

func (s *Service) Lists(ctx context.Context, userID string) (domain.GameLists, error) {
	ctx, span := s.startSpan(ctx, "Service.Lists")
	defer span.End()
	lists, err := s.inner.Lists(ctx, userID)
	return lists, s.finish(ctx, span, err, "failed to load game lists")
}

func (s *Service) MarkPlayed(ctx context.Context, userID string, steamAppID int64) (domain.GameLists, error) {
	ctx, span := s.startSpan(ctx, "Service.MarkPlayed", attribute.Int64("social.appid", steamAppID))
	defer span.End()
	lists, err := s.inner.MarkPlayed(ctx, userID, steamAppID)
	return lists, s.finish(ctx, span, err, "failed to mark game as played")
}

func (s *Service) AddToWishlist(ctx context.Context, userID string, steamAppID int64) (domain.GameLists, error) {
	ctx, span := s.startSpan(ctx, "Service.AddToWishlist", attribute.Int64("social.appid", steamAppID))
	defer span.End()
	lists, err := s.inner.AddToWishlist(ctx, userID, steamAppID)
	return lists, s.finish(ctx, span, err, "failed to add game to wishlist")
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// finish records the error on the span and logs it. Validation and conflict
// outcomes are expected traffic and stay at debug level upstream, so only the
// span carries them here.
func (s *Service) finish(ctx context.Context, span trace.Span, err error, msg string) error {
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelDebug, msg, slog.String("error", err.Error()))
	}
	return err
}

type counter struct {
	inner metric.Int64Counter
}

func (c counter) add(ctx context.Context, delta int64) {
	if c.inner == nil {
		return
	}
	c.inner.Add(ctx, delta)
}

type serviceMetrics struct {
	commentsCreated     counter
	likesToggled        counter
	recommendationsSent counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	commentsCreated, _ := m.Int64Counter("social.service.comments_created", metric.WithDescription("Number of comments created"))
	likesToggled, _ := m.Int64Counter("social.service.likes_toggled", metric.WithDescription("Number of like toggles"))
	recommendationsSent, _ := m.Int64Counter("social.service.recommendations_sent", metric.WithDescription("Number of recommendations created"))
	return serviceMetrics{
		commentsCreated:     counter{commentsCreated},
		likesToggled:        counter{likesToggled},
		recommendationsSent: counter{recommendationsSent},
	}
}

var _ ports.Service = (*Service)(nil)
