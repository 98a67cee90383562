package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/TheAlpha16/multimethod-go/cnc"
)

const defaultChannel = "my-commands"

// loadConfig reads path when set. Without a file the defaults are used with
// the example's own channel.
func loadConfig(path string) (cnc.Config, error) {
	if path != "" {
		return cnc.LoadConfig(path)
	}
	cfg := cnc.DefaultConfig()
	cfg.Channel = defaultChannel
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load config.", "path", *configPath, "error", err)
		os.Exit(1)
	}

	// Create CNC instance with Valkey transport
	cncInstance, err := cnc.NewCNCFromConfig(cfg, cnc.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to create CNC.", "error", err)
		os.Exit(1)
	}
	defer cncInstance.Shutdown()

	err = cncInstance.RegisterHandler("hello", func(ctx context.Context, cmd cnc.Command) error {
		name := "World"
		if n, ok := cmd.Parameters["name"].(string); ok {
			name = n
		}
		fmt.Printf("Hello, %s!\n", name)
		return nil
	})
	if err != nil {
		logger.Error("Failed to register handler.", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := cncInstance.Start(ctx); err != nil {
		logger.Error("Failed to start CNC.", "error", err)
		os.Exit(1)
	}

	logger.Info("CNC started, listening for commands.", "address", cfg.Address, "channel", cfg.Channel)

	time.Sleep(1 * time.Second)

	command := cnc.Command{
		Name: "hello",
		Parameters: map[string]any{
			"name": "CNC User",
		},
	}
	if err := cncInstance.TriggerCommand(ctx, command); err != nil {
		logger.Warn("Failed to trigger command.", "error", err)
	}

	// Nobody handles "goodbye"; the miss is logged by the CNC.
	if err := cncInstance.TriggerCommand(ctx, cnc.Command{Name: "goodbye"}); err != nil {
		logger.Warn("Failed to trigger command.", "error", err)
	}

	time.Sleep(3 * time.Second)
	logger.Info("Quick start example completed.")
}
