package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"ageutil/internal/agecheck/metrics"
	"ageutil/internal/agecheck/models"
	"ageutil/internal/bracket"
	"ageutil/internal/platform/tracer"
	"ageutil/pkg/calendar"
	dErrors "ageutil/pkg/domain-errors"
	"ageutil/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	metrics *metrics.Metrics
	tracer  *recordingTracer
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.tracer = &recordingTracer{}
	svc, err := New(bracket.Defaults(),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithMetrics(s.metrics),
		WithTracer(s.tracer),
		WithBatchLimit(2),
	)
	s.Require().NoError(err)
	s.service = svc
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
}

func date(y int, m time.Month, d int) calendar.Date {
	return calendar.MustNew(y, m, d)
}

func ptr(d calendar.Date) *calendar.Date {
	return &d
}

func (s *ServiceSuite) TestNew() {
	s.Run("requires a catalog", func() {
		_, err := New(nil)
		s.Error(err)
	})
}

func (s *ServiceSuite) TestEvaluate() {
	s.Run("toddler on an explicit reference date", func() {
		res, err := s.service.Evaluate(s.ctx, &models.EvaluateRequest{
			BracketSelector: models.BracketSelector{Bracket: "toddler"},
			DateOfBirth:     date(2022, time.March, 15),
			ReferenceDate:   date(2024, time.June, 1),
		})
		s.Require().NoError(err)
		s.Equal("toddler", res.Bracket)
		s.True(res.Eligible)
		s.Equal(models.AgeBreakdown{Years: 2, Months: 2, Days: 17}, res.Age)
		s.Equal(ptr(date(2023, time.March, 15)), res.Window.From)
		s.Equal(ptr(date(2025, time.March, 14)), res.Window.Until)
		s.Equal(ptr(date(2021, time.June, 2)), res.BirthBounds.Earliest)
		s.Equal(ptr(date(2023, time.June, 1)), res.BirthBounds.Latest)
	})

	s.Run("defaults the reference date to the request date", func() {
		res, err := s.service.Evaluate(s.ctx, &models.EvaluateRequest{
			BracketSelector: models.BracketSelector{Bracket: "adult"},
			DateOfBirth:     date(2006, time.June, 2),
		})
		s.Require().NoError(err)
		s.Equal(date(2024, time.June, 1), res.ReferenceDate)
		s.False(res.Eligible, "turns 18 the next day")
		s.Equal(1.0, testutil.ToFloat64(s.metrics.AgeReferenceDateDefaulted))
	})

	s.Run("inline bracket", func() {
		res, err := s.service.Evaluate(s.ctx, &models.EvaluateRequest{
			BracketSelector: models.BracketSelector{Custom: &bracket.Definition{
				From:    &bracket.Units{Years: bracket.Int(21)},
				OrOlder: true,
			}},
			DateOfBirth:   date(2000, time.January, 1),
			ReferenceDate: date(2024, time.June, 1),
		})
		s.Require().NoError(err)
		s.Equal(models.CustomBracketLabel, res.Bracket)
		s.True(res.Eligible)
		s.Nil(res.Window.Until)
		s.Nil(res.BirthBounds.Earliest)
	})

	s.Run("unknown bracket", func() {
		_, err := s.service.Evaluate(s.ctx, &models.EvaluateRequest{
			BracketSelector: models.BracketSelector{Bracket: "retiree"},
			DateOfBirth:     date(1950, time.January, 1),
		})
		s.True(errors.Is(err, dErrors.ErrNotFound))
	})

	s.Run("born after the reference date", func() {
		_, err := s.service.Evaluate(s.ctx, &models.EvaluateRequest{
			BracketSelector: models.BracketSelector{Bracket: "infant"},
			DateOfBirth:     date(2024, time.June, 2),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})

	s.Run("leap day reference with no matching birth date", func() {
		_, err := s.service.Evaluate(s.ctx, &models.EvaluateRequest{
			BracketSelector: models.BracketSelector{Bracket: "adult"},
			DateOfBirth:     date(2000, time.January, 1),
			ReferenceDate:   date(2024, time.February, 29),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidDate))
	})
}

func (s *ServiceSuite) TestEvaluateObservability() {
	_, err := s.service.Evaluate(s.ctx, &models.EvaluateRequest{
		BracketSelector: models.BracketSelector{Bracket: "toddler"},
		DateOfBirth:     date(2022, time.March, 15),
	})
	s.Require().NoError(err)
	_, err = s.service.Evaluate(s.ctx, &models.EvaluateRequest{
		BracketSelector: models.BracketSelector{Bracket: "nope"},
		DateOfBirth:     date(2022, time.March, 15),
	})
	s.Require().Error(err)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.AgeEvaluationsTotal.WithLabelValues("toddler", metrics.OutcomeEligible)))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.AgeEvaluationsTotal.WithLabelValues(unresolvedLabel, metrics.OutcomeError)))

	spans := s.tracer.ended()
	s.Require().Len(spans, 2)
	s.Equal(tracer.SpanEvaluate, spans[0].name)
	s.NoError(spans[0].err)
	s.Equal("0-12", spans[0].attrs[tracer.AttrAgeBucket])
	s.Error(spans[1].err)
}

func (s *ServiceSuite) TestBounds() {
	s.Run("open-ended bracket", func() {
		res, err := s.service.Bounds(s.ctx, &models.BoundsRequest{Bracket: " Adult "})
		s.Require().NoError(err)
		s.Equal("adult", res.Bracket)
		s.Equal(date(2024, time.June, 1), res.ReferenceDate)
		s.Nil(res.BirthBounds.Earliest)
		s.Equal(ptr(date(2006, time.June, 1)), res.BirthBounds.Latest)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.AgeBracketBoundsLookups.WithLabelValues("adult")))
	})

	s.Run("explicit reference date", func() {
		res, err := s.service.Bounds(s.ctx, &models.BoundsRequest{
			Bracket:       "minor",
			ReferenceDate: date(2020, time.January, 1),
		})
		s.Require().NoError(err)
		s.Equal(ptr(date(2002, time.January, 2)), res.BirthBounds.Earliest)
		s.Nil(res.BirthBounds.Latest)
	})

	s.Run("bracket is required", func() {
		_, err := s.service.Bounds(s.ctx, &models.BoundsRequest{})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})

	s.Run("unknown bracket", func() {
		_, err := s.service.Bounds(s.ctx, &models.BoundsRequest{Bracket: "nope"})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestBrackets() {
	list := s.service.Brackets(s.ctx)
	s.Require().Len(list, 7)
	s.Equal("infant", list[0].Name)
	s.Equal("senior", list[6].Name)
	s.True(list[6].Definition.OrOlder)
}

func (s *ServiceSuite) TestEvaluateBatch() {
	s.Run("keeps request order and isolates bad entries", func() {
		res, err := s.service.EvaluateBatch(s.ctx, &models.BatchRequest{
			BracketSelector: models.BracketSelector{Bracket: "toddler"},
			DatesOfBirth: []calendar.Date{
				date(2022, time.March, 15),
				date(2010, time.January, 1),
				date(2025, time.January, 1),
				date(2023, time.June, 1),
				date(2023, time.June, 2),
			},
		})
		s.Require().NoError(err)
		s.Require().Len(res.Results, 5)
		s.Equal(date(2024, time.June, 1), res.ReferenceDate)

		s.True(res.Results[0].Eligible)
		s.Equal(date(2022, time.March, 15), res.Results[0].DateOfBirth)
		s.False(res.Results[1].Eligible)
		s.Equal(14, res.Results[1].Age.Years)
		s.Equal(string(dErrors.CodeInvalidArgument), res.Results[2].Error)
		s.True(res.Results[3].Eligible, "first birthday is inside the bracket")
		s.False(res.Results[4].Eligible)
		s.Equal(2, res.EligibleCount)
		s.Equal(ptr(date(2021, time.June, 2)), res.BirthBounds.Earliest)
	})

	s.Run("rejects oversized batches", func() {
		svc, err := New(bracket.Defaults(), WithMaxBatchSize(2))
		s.Require().NoError(err)
		_, err = svc.EvaluateBatch(s.ctx, &models.BatchRequest{
			BracketSelector: models.BracketSelector{Bracket: "adult"},
			DatesOfBirth:    []calendar.Date{date(2000, 1, 1), date(2001, 1, 1), date(2002, 1, 1)},
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("leap day reference fails the whole batch", func() {
		_, err := s.service.EvaluateBatch(s.ctx, &models.BatchRequest{
			BracketSelector: models.BracketSelector{Bracket: "adult"},
			ReferenceDate:   date(2024, time.February, 29),
			DatesOfBirth:    []calendar.Date{date(2000, 1, 1)},
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidDate))
	})

	s.Run("cancelled context", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		_, err := s.service.EvaluateBatch(ctx, &models.BatchRequest{
			BracketSelector: models.BracketSelector{Bracket: "adult"},
			DatesOfBirth:    []calendar.Date{date(2000, 1, 1), date(2001, 1, 1)},
		})
		s.True(errors.Is(err, context.Canceled))
	})

	s.Run("matches single evaluations", func() {
		dobs := make([]calendar.Date, 0, 40)
		for i := range 40 {
			dobs = append(dobs, date(2020, time.January, 1).AddDays(i*23))
		}
		res, err := s.service.EvaluateBatch(s.ctx, &models.BatchRequest{
			BracketSelector: models.BracketSelector{Bracket: "toddler"},
			DatesOfBirth:    dobs,
		})
		s.Require().NoError(err)
		for i, dob := range dobs {
			single, err := s.service.Evaluate(s.ctx, &models.EvaluateRequest{
				BracketSelector: models.BracketSelector{Bracket: "toddler"},
				DateOfBirth:     dob,
			})
			s.Require().NoError(err)
			s.Equal(single.Eligible, res.Results[i].Eligible, dob.String())
			s.Equal(single.Age, res.Results[i].Age, dob.String())
		}
	})
}

type recordedSpan struct {
	name  string
	attrs map[string]any
	err   error
}

// recordingTracer keeps ended spans in the order they ended.
type recordingTracer struct {
	mu    sync.Mutex
	spans []recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, attrs ...tracer.Attribute) (context.Context, tracer.Span) {
	sp := &recordingSpan{t: t, rec: recordedSpan{name: name, attrs: map[string]any{}}}
	sp.SetAttributes(attrs...)
	return ctx, sp
}

func (t *recordingTracer) ended() []recordedSpan {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]recordedSpan(nil), t.spans...)
}

type recordingSpan struct {
	t   *recordingTracer
	rec recordedSpan
}

func (sp *recordingSpan) End(err error) {
	sp.rec.err = err
	sp.t.mu.Lock()
	defer sp.t.mu.Unlock()
	sp.t.spans = append(sp.t.spans, sp.rec)
}

func (sp *recordingSpan) SetAttributes(attrs ...tracer.Attribute) {
	for _, a := range attrs {
		sp.rec.attrs[a.Key] = a.Value
	}
}

func (sp *recordingSpan) AddEvent(string, ...tracer.Attribute) {}
