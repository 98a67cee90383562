// Package multimethod provides single-argument dispatch on a computed value.
//
// A MultiMethod is built from a dispatch function that maps an argument to a
// dispatch value. Methods are registered per dispatch value, and Invoke routes
// each call to the method registered for dispatch(arg):
//
//	greet := multimethod.MustNew[Person, string](func(p Person) string { return p.Kind })
//	greet.Register("foo", func(p Person) string { return "Hello " + p.Name })
//	msg, err := greet.Invoke(Person{Kind: "foo", Name: "Alice"})
//
// There is no default method. A dispatch value with no registered method makes
// Invoke return an error matching ErrDispatchMiss.
package multimethod

import (
	"runtime"
	"sync"
)

// DispatchFunc computes the dispatch value for an argument.
type DispatchFunc[Arg any, D comparable] func(Arg) D

// Method handles arguments whose dispatch value it is registered under.
type Method[Arg, Ret any] func(Arg) Ret

// MultiMethod routes a call to the method registered for the argument's
// dispatch value. Dispatch values are matched with ==, so struct values compare
// field by field and pointers compare by identity.
//
// A MultiMethod is safe for concurrent use.
type MultiMethod[Arg, Ret any, D comparable] struct {
	dispatch DispatchFunc[Arg, D]
	methods  map[D]Method[Arg, Ret]
	mu       sync.RWMutex
	options  Options
}

// New creates a MultiMethod with no registered methods.
func New[Arg, Ret any, D comparable](dispatch DispatchFunc[Arg, D], opts ...Option) (*MultiMethod[Arg, Ret, D], error) {
	if dispatch == nil {
		return nil, ErrNilDispatchFunc
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &MultiMethod[Arg, Ret, D]{
		dispatch: dispatch,
		methods:  make(map[D]Method[Arg, Ret]),
		options:  options,
	}, nil
}

// MustNew is like New but panics if dispatch is nil.
func MustNew[Arg, Ret any, D comparable](dispatch DispatchFunc[Arg, D], opts ...Option) *MultiMethod[Arg, Ret, D] {
	m, err := New[Arg, Ret](dispatch, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Register sets the method for a dispatch value, replacing any method already
// registered for it.
func (m *MultiMethod[Arg, Ret, D]) Register(value D, method Method[Arg, Ret]) (err error) {
	if method == nil {
		return ErrNilMethod
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	defer recoverUnhashable(value, &err)

	_, replaced := m.methods[value]
	m.methods[value] = method

	m.options.Logger.Debug("Registered method.", "dispatch_value", value, "replaced", replaced)
	return nil
}

// Lookup returns the method registered for a dispatch value.
func (m *MultiMethod[Arg, Ret, D]) Lookup(value D) (Method[Arg, Ret], bool) {
	method, ok, err := m.lookup(value)
	return method, ok && err == nil
}

// Invoke computes the dispatch value of arg and calls the matching method.
// The method's result is returned unchanged. If no method matches, the zero
// Ret and a *DispatchMissError are returned.
func (m *MultiMethod[Arg, Ret, D]) Invoke(arg Arg) (Ret, error) {
	value := m.dispatch(arg)

	method, ok, err := m.lookup(value)
	if err == nil && !ok {
		err = &DispatchMissError[D]{Value: value}
	}
	if err != nil {
		m.options.Logger.Debug("Dispatch miss.", "dispatch_value", value, "error", err)
		m.options.OnMiss(err)
		var zero Ret
		return zero, err
	}

	return method(arg), nil
}

// Func returns Invoke as a plain function value.
func (m *MultiMethod[Arg, Ret, D]) Func() func(Arg) (Ret, error) {
	return m.Invoke
}

// lookup holds the read lock only for the map access so a running method may
// call Register.
func (m *MultiMethod[Arg, Ret, D]) lookup(value D) (method Method[Arg, Ret], ok bool, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	defer recoverUnhashable(value, &err)

	method, ok = m.methods[value]
	return method, ok, nil
}

// recoverUnhashable turns the runtime panic raised by hashing an interface
// value with an unhashable dynamic type into an error.
func recoverUnhashable[D comparable](value D, err *error) {
	if r := recover(); r != nil {
		if _, isRuntime := r.(runtime.Error); !isRuntime {
			panic(r)
		}
		*err = &UnhashableValueError{Value: value}
	}
}
