package config

import (
	"time"

	"github.com/go-i2p/go-rtshim/lib/assert"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// Assertion sink targets.
const (
	OutputStderr  = "stderr"
	OutputStdout  = "stdout"
	OutputDiscard = "discard"
	OutputLogger  = "logger"
)

// Critical-section platforms.
const (
	PlatformNone    = "none"
	PlatformSigmask = "sigmask"
)

// RuntimeConfig is the complete rtshim configuration.
type RuntimeConfig struct {
	Assert   AssertConfig   `yaml:"assert"`
	Critical CriticalConfig `yaml:"critical"`
	Shim     ShimConfig     `yaml:"shim"`
}

// AssertConfig configures the assertion reporter.
type AssertConfig struct {
	// Output selects the sink.
	// Default: stderr
	Output string `yaml:"output"`

	// RateLimit caps delivered failures per second; 0 disables the cap.
	// Default: 0
	RateLimit float64 `yaml:"rate_limit"`

	// Burst is the rate limiter burst.
	// Default: 1
	Burst int `yaml:"burst"`

	// Settle is the pause after each delivered failure.
	// Default: 0
	Settle time.Duration `yaml:"settle"`

	// History is the number of failures kept for inspection.
	// Default: 32
	History int `yaml:"history"`
}

// CriticalConfig configures the critical-section guard.
type CriticalConfig struct {
	// Platform selects the engage/disengage hook.
	// Default: none
	Platform string `yaml:"platform"`
}

// ShimConfig configures the library handle.
type ShimConfig struct {
	Banner bool `yaml:"banner"`
	Trace  bool `yaml:"trace"`
}

// Defaults returns the default configuration.
func Defaults() RuntimeConfig {
	return RuntimeConfig{
		Assert: AssertConfig{
			Output:    OutputStderr,
			RateLimit: 0,
			Burst:     1,
			Settle:    0,
			History:   assert.DefaultHistory,
		},
		Critical: CriticalConfig{
			Platform: PlatformNone,
		},
	}
}

// Validate returns an error describing the first invalid value in cfg.
func Validate(cfg RuntimeConfig) error {
	validators := []func() error{
		func() error { return validateAssert(cfg.Assert) },
		func() error { return validateCritical(cfg.Critical) },
	}
	for _, validator := range validators {
		if err := validator(); err != nil {
			log.WithError(err).Error("Configuration validation failed")
			return err
		}
	}
	log.WithFields(logger.Fields{
		"at":     "config.Validate",
		"reason": "all_validators_passed",
	}).Debug("configuration validated")
	return nil
}

func validateAssert(a AssertConfig) error {
	switch a.Output {
	case OutputStderr, OutputStdout, OutputDiscard, OutputLogger:
	default:
		return newValidationError("assert.output must be one of stderr, stdout, discard, logger; got %q", a.Output)
	}
	if a.RateLimit < 0 {
		return newValidationError("assert.rate_limit must not be negative")
	}
	if a.RateLimit > 0 && a.Burst < 1 {
		return newValidationError("assert.burst must be at least 1 when rate_limit is set")
	}
	if a.Settle < 0 {
		return newValidationError("assert.settle must not be negative")
	}
	if a.Settle > time.Second {
		return newValidationError("assert.settle must not exceed 1s")
	}
	if a.History < 1 {
		return newValidationError("assert.history must be at least 1")
	}
	return nil
}

func validateCritical(c CriticalConfig) error {
	switch c.Platform {
	case PlatformNone, PlatformSigmask:
		return nil
	default:
		return newValidationError("critical.platform must be none or sigmask; got %q", c.Platform)
	}
}

// CodeInvalidConfig is the oops code of validation errors.
const CodeInvalidConfig = "invalid_config"

func newValidationError(format string, args ...any) error {
	return oops.In("config").Code(CodeInvalidConfig).Errorf("configuration validation failed: "+format, args...)
}
