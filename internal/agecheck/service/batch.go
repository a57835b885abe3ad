package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"ageutil/internal/agecheck/metrics"
	"ageutil/internal/agecheck/models"
	"ageutil/internal/platform/tracer"
	dErrors "ageutil/pkg/domain-errors"
	limits "ageutil/pkg/platform/validation"
	"ageutil/pkg/requestcontext"
)

// EvaluateBatch evaluates many dates of birth against one bracket on one
// reference date. Entries are evaluated concurrently, at most batchLimit at a
// time, and results keep request order. An entry that is invalid on its own
// (born after the reference date) carries an error code instead of failing
// the batch.
func (s *Service) EvaluateBatch(ctx context.Context, req *models.BatchRequest) (result *models.BatchResult, err error) {
	start := time.Now()
	label := req.Label()
	ctx, span := s.tracer.Start(ctx, tracer.SpanEvaluateBatch,
		tracer.String(tracer.AttrBracket, label),
		tracer.Int(tracer.AttrBatchSize, len(req.DatesOfBirth)),
		tracer.Bool(tracer.AttrExplicit, !req.ReferenceDate.IsZero()),
	)
	defer func() {
		span.End(err)
		s.observe("evaluate_batch", start)
	}()

	if err := limits.CheckSliceCount("dates_of_birth", len(req.DatesOfBirth), s.maxBatchSize); err != nil {
		return nil, err
	}
	def, err := s.resolve(req.BracketSelector)
	if err != nil {
		return nil, err
	}
	on := s.referenceDate(ctx, req.ReferenceDate)

	// Bounds depend only on the bracket and the reference date, so a
	// reference date with no valid bounds fails the whole batch up front.
	bounds, err := def.Predicate(on).Range()
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveBatchSize(len(req.DatesOfBirth))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	items := make([]models.BatchItem, len(req.DatesOfBirth))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for i, dob := range req.DatesOfBirth {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			item := models.BatchItem{DateOfBirth: dob}
			res, err := evaluate(def, dob, on)
			switch {
			case dErrors.HasCode(err, dErrors.CodeInvalidArgument):
				item.Error = string(dErrors.CodeInvalidArgument)
				s.recordOutcome(label, metrics.OutcomeError)
			case err != nil:
				return err
			default:
				item.Eligible = res.Eligible
				item.Age = res.Age
				s.recordOutcome(label, outcome(res.Eligible))
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch evaluation timed out")
		}
		return nil, err
	}

	eligible := 0
	for _, item := range items {
		if item.Eligible {
			eligible++
		}
	}
	span.SetAttributes(tracer.Int(tracer.AttrEligibleN, eligible))
	s.logger.InfoContext(ctx, "batch evaluated",
		"bracket", label,
		"size", len(items),
		"eligible", eligible,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &models.BatchResult{
		ReferenceDate: on,
		Bracket:       label,
		BirthBounds:   toBirthBounds(bounds),
		EligibleCount: eligible,
		Results:       items,
	}, nil
}
