// Package service evaluates dates of birth against age brackets.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ageutil/internal/agecheck/metrics"
	"ageutil/internal/agecheck/models"
	"ageutil/internal/bracket"
	"ageutil/internal/platform/tracer"
	"ageutil/pkg/age"
	"ageutil/pkg/calendar"
	dErrors "ageutil/pkg/domain-errors"
	"ageutil/pkg/requestcontext"
)

const (
	defaultBatchLimit   = 8
	defaultMaxBatchSize = 1000
	defaultTimeout      = 5 * time.Second

	unresolvedLabel = "unresolved"
)

// Catalog resolves bracket names. *bracket.Catalog satisfies it.
type Catalog interface {
	Get(name string) (bracket.Definition, error)
	Names() []string
}

type Service struct {
	catalog      Catalog
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       tracer.Tracer
	batchLimit   int
	maxBatchSize int
	timeout      time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithBatchLimit caps the goroutines evaluating one batch.
func WithBatchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// WithMaxBatchSize caps the dates of birth accepted in one batch.
func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// WithTimeout bounds a single batch evaluation.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func New(catalog Catalog, opts ...Option) (*Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("bracket catalog is required")
	}
	svc := &Service{
		catalog:      catalog,
		logger:       slog.Default(),
		tracer:       tracer.NewNoop(),
		batchLimit:   defaultBatchLimit,
		maxBatchSize: defaultMaxBatchSize,
		timeout:      defaultTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Evaluate computes the age of one person on the reference date and whether
// they fall inside the selected bracket.
func (s *Service) Evaluate(ctx context.Context, req *models.EvaluateRequest) (result *models.EvaluateResult, err error) {
	start := time.Now()
	label := req.Label()
	ctx, span := s.tracer.Start(ctx, tracer.SpanEvaluate,
		tracer.String(tracer.AttrBracket, label),
		tracer.Bool(tracer.AttrExplicit, !req.ReferenceDate.IsZero()),
	)
	defer func() {
		span.End(err)
		s.observe("evaluate", start)
	}()

	def, err := s.resolve(req.BracketSelector)
	if err != nil {
		// unknown names stay out of metric labels
		s.recordOutcome(unresolvedLabel, metrics.OutcomeError)
		return nil, err
	}
	on := s.referenceDate(ctx, req.ReferenceDate)

	result, err = evaluate(def, req.DateOfBirth, on)
	if err != nil {
		s.recordOutcome(label, metrics.OutcomeError)
		s.logger.InfoContext(ctx, "age evaluation rejected",
			"bracket", label,
			"reference_date", on.String(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, err
	}
	result.Bracket = label

	span.SetAttributes(
		tracer.Bool(tracer.AttrEligible, result.Eligible),
		tracer.String(tracer.AttrAgeBucket, tracer.AgeBucket(result.Age.Years)),
	)
	s.recordOutcome(label, outcome(result.Eligible))
	s.logger.DebugContext(ctx, "age evaluated",
		"bracket", label,
		"eligible", result.Eligible,
		"request_id", requestcontext.RequestID(ctx),
	)
	return result, nil
}

// Bounds returns the birth dates inside a catalog bracket on the reference
// date.
func (s *Service) Bounds(ctx context.Context, req *models.BoundsRequest) (result *models.BoundsResult, err error) {
	start := time.Now()
	name := bracket.NormalizeName(req.Bracket)
	ctx, span := s.tracer.Start(ctx, tracer.SpanBounds,
		tracer.String(tracer.AttrBracket, name),
		tracer.Bool(tracer.AttrExplicit, !req.ReferenceDate.IsZero()),
	)
	defer func() {
		span.End(err)
		s.observe("bounds", start)
	}()

	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "bracket is required")
	}
	def, err := s.catalog.Get(name)
	if err != nil {
		return nil, err
	}
	on := s.referenceDate(ctx, req.ReferenceDate)
	bounds, err := def.Predicate(on).Range()
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncrementBoundsLookup(name)
	}
	return &models.BoundsResult{
		ReferenceDate: on,
		Bracket:       name,
		BirthBounds:   toBirthBounds(bounds),
	}, nil
}

// Brackets lists the catalog in definition order.
func (s *Service) Brackets(_ context.Context) []models.BracketInfo {
	names := s.catalog.Names()
	out := make([]models.BracketInfo, 0, len(names))
	for _, name := range names {
		def, err := s.catalog.Get(name)
		if err != nil {
			continue
		}
		out = append(out, models.BracketInfo{Name: name, Definition: def})
	}
	return out
}

func (s *Service) resolve(sel models.BracketSelector) (bracket.Definition, error) {
	if sel.Custom != nil {
		return *sel.Custom, nil
	}
	return s.catalog.Get(sel.Bracket)
}

// referenceDate is explicit when given, otherwise the request date.
func (s *Service) referenceDate(ctx context.Context, explicit calendar.Date) calendar.Date {
	if !explicit.IsZero() {
		return explicit
	}
	if s.metrics != nil {
		s.metrics.IncrementReferenceDateDefaulted()
	}
	return requestcontext.Today(ctx)
}

func (s *Service) recordOutcome(label, outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementEvaluation(label, outcome)
	}
}

func outcome(eligible bool) string {
	if eligible {
		return metrics.OutcomeEligible
	}
	return metrics.OutcomeIneligible
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDuration(operation, time.Since(start))
	}
}

// evaluate builds its own predicate and calculator, so concurrent calls share
// nothing but def.
func evaluate(def bracket.Definition, dob, on calendar.Date) (*models.EvaluateResult, error) {
	if dob.After(on) {
		return nil, dErrors.New(dErrors.CodeInvalidArgument,
			fmt.Sprintf("date of birth %s is after reference date %s", dob, on))
	}
	calc, err := age.DateOfBirth(dob)
	if err != nil {
		return nil, err
	}
	calc.On(on)

	p := def.Predicate(on)
	eligible, err := p.Check(dob)
	if err != nil {
		return nil, err
	}
	bounds, err := p.Range()
	if err != nil {
		return nil, err
	}
	window := calc.RangeFor(p)
	years, months, days, err := calc.AgeYMD()
	if err != nil {
		return nil, err
	}

	return &models.EvaluateResult{
		ReferenceDate: on,
		Age:           models.AgeBreakdown{Years: years, Months: months, Days: days},
		Eligible:      eligible,
		Window:        models.DateWindow{From: window.Lower, Until: window.Upper},
		BirthBounds:   toBirthBounds(bounds),
	}, nil
}

func toBirthBounds(b age.BirthBounds) models.BirthBounds {
	return models.BirthBounds{Earliest: b.Upper, Latest: b.Lower}
}
