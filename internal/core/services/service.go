package services

import "context"

// Service is a single use case. Decorators wrap a Service and return one
// with the same input and result types.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}

// Func adapts a plain function to a Service.
type Func[T any, S any] func(ctx context.Context, input T) (S, error)

func (f Func[T, S]) Run(ctx context.Context, input T) (S, error) {
	return f(ctx, input)
}
