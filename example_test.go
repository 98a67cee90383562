package multimethod_test

import (
	"errors"
	"fmt"

	multimethod "github.com/TheAlpha16/multimethod-go"
)

type Person struct {
	Kind string
	Name string
}

func Example() {
	greet := multimethod.MustNew[Person, string](func(p Person) string { return p.Kind })

	greet.Register("foo", func(p Person) string { return "Hello " + p.Name })
	greet.Register("bar", func(p Person) string { return "Goodbye " + p.Name })

	for _, p := range []Person{{"foo", "Alice"}, {"bar", "Bob"}, {"baz", "Carl"}} {
		msg, err := greet.Invoke(p)
		if errors.Is(err, multimethod.ErrDispatchMiss) {
			fmt.Println(err)
			continue
		}
		fmt.Println(msg)
	}
	// Output:
	// Hello Alice
	// Goodbye Bob
	// multimethod: no method found for dispatch value: baz
}

func ExampleMultiMethod_Func() {
	step := multimethod.MustNew[int, int](func(n int) bool { return n%2 == 0 })
	step.Register(true, func(n int) int { return n / 2 })
	step.Register(false, func(n int) int { return 3*n + 1 })

	collatzStep := step.Func()
	for _, n := range []int{6, 7} {
		next, _ := collatzStep(n)
		fmt.Println(n, "->", next)
	}
	// Output:
	// 6 -> 3
	// 7 -> 22
}
