package qtest

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Alloc   AllocConfig   `yaml:"alloc"`
	Remove  RemoveConfig  `yaml:"remove"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type AllocConfig struct {
	// FailRate is the probability of an allocation being refused.
	FailRate float64 `yaml:"fail_rate"`
	Seed     uint64  `yaml:"seed"`
}

type RemoveConfig struct {
	// BufSize is the capacity of the buffer removed values are copied
	// into, terminator included.
	BufSize int `yaml:"buf_size"`
}

type MetricsConfig struct {
	// Out is a file that operation counters are written to in
	// Prometheus text format when the run ends. Empty disables it.
	Out string `yaml:"out"`
}

func defaultConfig() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Alloc:  AllocConfig{Seed: 1},
		Remove: RemoveConfig{BufSize: 1024},
	}
}

func (c *Config) validate() error {
	if c.Alloc.FailRate < 0 || c.Alloc.FailRate > 1 {
		return fmt.Errorf("alloc.fail_rate %v is out of [0, 1]", c.Alloc.FailRate)
	}
	if c.Remove.BufSize < 1 {
		return fmt.Errorf("remove.buf_size %d must be at least 1", c.Remove.BufSize)
	}
	return nil
}

// loadConfig reads a yaml config from path on top of the defaults.
// Unknown keys are an error.
func loadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file, %w", err)
	}
	return decodeConfig(b)
}

func decodeConfig(b []byte) (*Config, error) {
	cfg := defaultConfig()
	m := make(map[string]any)
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("failed to decode yaml config, %w", err)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		TagName:          "yaml",
		Result:           cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init yaml decoder, %w", err)
	}
	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode yaml struct, %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeConfigTemplate(w io.Writer) error {
	b := new(bytes.Buffer)
	encoder := yaml.NewEncoder(b)
	encoder.SetIndent(2)
	if err := encoder.Encode(defaultConfig()); err != nil {
		return fmt.Errorf("failed to encode config, %w", err)
	}
	encoder.Close()

	_, err := w.Write(b.Bytes())
	return err
}
