package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	multimethod "github.com/TheAlpha16/multimethod-go"
)

type Person struct {
	Type string
	Name string
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	greet := multimethod.MustNew[Person, string](
		func(p Person) string { return p.Type },
		multimethod.WithLogger(logger),
	)
	greet.Register("foo", func(p Person) string { return "Hello " + p.Name })
	greet.Register("bar", func(p Person) string { return "Goodbye " + p.Name })

	people := []Person{
		{Type: "foo", Name: "Alice"},
		{Type: "bar", Name: "Bob"},
		{Type: "baz", Name: "Carl"},
	}

	for _, p := range people {
		msg, err := greet.Invoke(p)
		var miss *multimethod.DispatchMissError[string]
		if errors.As(err, &miss) {
			logger.Warn("No greeting for person.", "name", p.Name, "type", miss.Value)
			continue
		}
		fmt.Println(msg)
	}
}
