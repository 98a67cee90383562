package multimethod

import (
	"errors"
	"fmt"
)

var (
	ErrDispatchMiss    = errors.New("multimethod: no method found for dispatch value")
	ErrNilDispatchFunc = errors.New("multimethod: dispatch function is nil")
	ErrNilMethod       = errors.New("multimethod: method is nil")
)

// DispatchMissError is returned by Invoke when no method is registered for
// the computed dispatch value.
type DispatchMissError[D comparable] struct {
	Value D
}

func (e *DispatchMissError[D]) Error() string {
	return fmt.Sprintf("%s: %v", ErrDispatchMiss, e.Value)
}

func (e *DispatchMissError[D]) Is(target error) bool {
	return target == ErrDispatchMiss
}

// UnhashableValueError reports a dispatch value whose dynamic type cannot be
// used as a map key. It only occurs when D is an interface type.
type UnhashableValueError struct {
	Value any
}

func (e *UnhashableValueError) Error() string {
	return fmt.Sprintf("multimethod: unhashable dispatch value of type %T", e.Value)
}

func (e *UnhashableValueError) Is(target error) bool {
	return target == ErrDispatchMiss
}
