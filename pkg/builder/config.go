package builder

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TraceConfig declares one trace and the channel it shows.
type TraceConfig struct {
	ID      string `yaml:"id"`
	Channel uint16 `yaml:"channel"`
	Spectra bool   `yaml:"spectra"`
	Length  int    `yaml:"length,omitempty"`
}

// MonitorConfig describes a receive pipeline: where records come from, how much
// history each trace keeps, and which traces to create.
type MonitorConfig struct {
	Transport     string        `yaml:"transport"`
	Address       string        `yaml:"address"`
	Topic         string        `yaml:"topic,omitempty"`
	GroupID       string        `yaml:"group_id,omitempty"`
	History       int           `yaml:"history"`
	PollTimeout   time.Duration `yaml:"poll_timeout"`
	LogLevel      string        `yaml:"log_level"`
	LogFile       string        `yaml:"log_file,omitempty"`
	MeterInterval time.Duration `yaml:"meter_interval,omitempty"`
	Traces        []TraceConfig `yaml:"traces"`
}

// DefaultMonitorConfig listens for ZeroMQ pulses on localhost:5502.
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Transport:   TransportZMQ,
		Address:     "localhost:5502",
		History:     DefaultHistoryLength,
		PollTimeout: DefaultPollTimeout,
		LogLevel:    "info",
	}
}

// LoadMonitorConfig reads a YAML file on top of DefaultMonitorConfig.
func LoadMonitorConfig(path string) (MonitorConfig, error) {
	cfg := DefaultMonitorConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read monitor config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse monitor config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from PULSESCOPE_* environment variables.
func (c *MonitorConfig) ApplyEnv() {
	c.Address = EnvOr("PULSESCOPE_ADDR", c.Address)
	c.Transport = EnvOr("PULSESCOPE_TRANSPORT", c.Transport)
	c.Topic = EnvOr("PULSESCOPE_TOPIC", c.Topic)
	c.History = EnvIntOr("PULSESCOPE_HISTORY", c.History)
	c.PollTimeout = EnvDurationOr("PULSESCOPE_POLL_TIMEOUT", c.PollTimeout)
	c.LogLevel = EnvOr("PULSESCOPE_LOG_LEVEL", c.LogLevel)
	c.LogFile = EnvOr("PULSESCOPE_LOG_FILE", c.LogFile)
}

// Validate reports configuration that NewPipeline cannot use.
func (c MonitorConfig) Validate() error {
	var errs []error
	switch strings.ToLower(c.Transport) {
	case "", TransportZMQ, TransportNATS, TransportKafka:
	default:
		errs = append(errs, fmt.Errorf("unknown transport %q", c.Transport))
	}
	if c.History < 1 {
		errs = append(errs, fmt.Errorf("history must be at least 1, got %d", c.History))
	}
	seen := make(map[string]struct{}, len(c.Traces))
	for i, tc := range c.Traces {
		if tc.ID == "" {
			errs = append(errs, fmt.Errorf("trace %d has no id", i))
			continue
		}
		if _, dup := seen[tc.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate trace id %q", tc.ID))
		}
		seen[tc.ID] = struct{}{}
	}
	return errors.Join(errs...)
}

// Marshal renders the config as YAML.
func (c MonitorConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
