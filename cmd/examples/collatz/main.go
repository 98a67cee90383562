package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/TheAlpha16/multimethod-go/internal/collatz"
)

func main() {
	n := flag.Int("n", 27, "starting value, must be positive")
	flag.Parse()

	steps, err := collatz.Sequence(*n)
	if err != nil {
		slog.Error("Failed to compute sequence.", "n", *n, "error", err)
		os.Exit(1)
	}

	fmt.Println(steps)
	fmt.Printf("%d steps\n", len(steps)-1)
}
