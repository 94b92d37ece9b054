package extract

import "context"

// Outcome is the result of running a strategy chain.
type Outcome[T any] struct {
	Value    T
	Found    bool
	Strategy string // name of the accepting strategy, empty when nothing matched
}

// Strategy is one named attempt in a cascade. Apply reports false for "no match".
type Strategy[T any] struct {
	Name  string
	Apply func(ctx context.Context) (T, bool)
}

// Chain runs strategies in order and stops at the first acceptance.
type Chain[T any] []Strategy[T]

// Run returns the first accepted value. Strategies after it are not invoked.
func (c Chain[T]) Run(ctx context.Context) Outcome[T] {
	for _, s := range c {
		if v, ok := s.Apply(ctx); ok {
			return Outcome[T]{Value: v, Found: true, Strategy: s.Name}
		}
	}
	return Outcome[T]{}
}
