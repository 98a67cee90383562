// Package collatz computes Collatz trajectories with a parity multimethod.
package collatz

import (
	"errors"
	"math"

	multimethod "github.com/TheAlpha16/multimethod-go"
)

var (
	ErrNotPositive = errors.New("collatz: n must be positive")
	ErrOverflow    = errors.New("collatz: next value overflows int")
)

// MaxOddInput bounds the odd values whose 3n+1 step still fits in an int.
const MaxOddInput = (math.MaxInt - 1) / 3

// NewStep returns a multimethod dispatching on whether n is even:
// even n maps to n/2, odd n to 3n+1.
func NewStep(opts ...multimethod.Option) *multimethod.MultiMethod[int, int, bool] {
	step := multimethod.MustNew[int, int](func(n int) bool { return n%2 == 0 }, opts...)
	// Both dispatch values are covered and the methods are non-nil.
	_ = step.Register(true, func(n int) int { return n / 2 })
	_ = step.Register(false, func(n int) int { return 3*n + 1 })
	return step
}

// Sequence returns the trajectory from n down to 1, both ends included.
// It is not known to terminate for every n. If an odd value above MaxOddInput
// is reached, the trajectory so far is returned with ErrOverflow.
func Sequence(n int) ([]int, error) {
	if n <= 0 {
		return nil, ErrNotPositive
	}

	step := NewStep()
	steps := []int{n}
	for n != 1 {
		if n%2 != 0 && n > MaxOddInput {
			return steps, ErrOverflow
		}
		next, err := step.Invoke(n)
		if err != nil {
			return steps, err
		}
		n = next
		steps = append(steps, n)
	}
	return steps, nil
}
