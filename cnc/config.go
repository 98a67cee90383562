package cnc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a Valkey-backed CNC instance.
type Config struct {
	Address       string `yaml:"address"`
	Channel       string `yaml:"channel"`
	Username      string `yaml:"username,omitempty"`
	Password      string `yaml:"password,omitempty"`
	DB            int    `yaml:"db,omitempty"`
	MsgBufferSize int    `yaml:"msg_buffer_size,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Address:       "localhost:6379",
		Channel:       "cnc-commands",
		MsgBufferSize: defaultOptions().MsgBufferSize,
	}
}

// ParseConfig decodes YAML over DefaultConfig, so omitted keys keep their
// defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func (c Config) Validate() error {
	switch {
	case c.Address == "":
		return fmt.Errorf("%w: address is required", ErrInvalidConfig)
	case c.Channel == "":
		return fmt.Errorf("%w: channel is required", ErrInvalidConfig)
	case c.MsgBufferSize < 0:
		return fmt.Errorf("%w: msg_buffer_size must not be negative", ErrInvalidConfig)
	case c.DB < 0:
		return fmt.Errorf("%w: db must not be negative", ErrInvalidConfig)
	}
	return nil
}
