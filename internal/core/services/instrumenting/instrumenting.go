package instrumenting

import (
	"context"
	"errors"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/metrics"
	"passreset/internal/core/services"
)

type serviceWithMetrics[T any, S any] struct {
	recorder metrics.Recorder
	step     string
	inner    services.Service[T, S]
}

func WithMetrics[T any, S any](
	recorder metrics.Recorder,
	step string,
	inner services.Service[T, S],
) services.Service[T, S] {
	if recorder == nil {
		panic(e.NewNilArgumentError("recorder"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithMetrics[T, S]{
		recorder: recorder,
		step:     step,
		inner:    inner,
	}
}

func (s *serviceWithMetrics[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	s.recorder.Observe(s.step, outcomeOf(err))
	return result, err
}

func outcomeOf(err error) metrics.Outcome {
	switch {
	case err == nil:
		return metrics.Success
	case errors.Is(err, e.ErrValidation),
		errors.Is(err, e.ErrNotFound),
		errors.Is(err, e.ErrInvalidOrExpired):
		return metrics.Rejected
	}
	return metrics.Failure
}
