package config

import (
	"io"
	"os"

	"github.com/go-i2p/go-rtshim/lib/assert"
	"github.com/go-i2p/go-rtshim/lib/critical"
	"github.com/go-i2p/go-rtshim/lib/shim"
	"github.com/go-i2p/logger"
)

// Streams are the diagnostic outputs a built Lib writes to. Nil fields
// default to the process's standard streams.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

func (s Streams) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

func (s Streams) err() io.Writer {
	if s.Err == nil {
		return os.Stderr
	}
	return s.Err
}

// BuildOptions adjust what Build produces.
type BuildOptions struct {
	// Reporter options are applied after the configured ones.
	Reporter []assert.Option
	// WrapPlatform, if set, wraps the configured platform, e.g. to count
	// transitions.
	WrapPlatform func(critical.Platform) critical.Platform
}

// Sink returns the assertion sink named by cfg.Assert.Output.
func Sink(cfg RuntimeConfig, s Streams) (assert.LogSink, error) {
	switch cfg.Assert.Output {
	case OutputStderr:
		return assert.DefaultSink(s.err()), nil
	case OutputStdout:
		return assert.DefaultSink(s.out()), nil
	case OutputDiscard:
		return assert.Discard, nil
	case OutputLogger:
		return assert.LoggerSink(), nil
	default:
		return nil, newValidationError("unknown assert.output %q", cfg.Assert.Output)
	}
}

// Platform returns the critical-section platform named by cfg.Critical.Platform.
func Platform(cfg RuntimeConfig) (critical.Platform, error) {
	switch cfg.Critical.Platform {
	case PlatformNone:
		return critical.NopPlatform{}, nil
	case PlatformSigmask:
		return critical.NewSignalMaskPlatform(func(err error) {
			log.WithFields(logger.Fields{
				"at":    "config.Platform",
				"error": err,
			}).Warn("platform_hook_failed")
		}), nil
	default:
		return nil, newValidationError("unknown critical.platform %q", cfg.Critical.Platform)
	}
}

// Build validates cfg and returns an uninitialized Lib wired as it
// describes.
func Build(cfg RuntimeConfig, s Streams, opts BuildOptions) (*shim.Lib, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	sink, err := Sink(cfg, s)
	if err != nil {
		return nil, err
	}
	platform, err := Platform(cfg)
	if err != nil {
		return nil, err
	}
	if opts.WrapPlatform != nil {
		platform = opts.WrapPlatform(platform)
	}

	repOpts := []assert.Option{
		assert.WithSink(sink),
		assert.WithRateLimit(cfg.Assert.RateLimit, cfg.Assert.Burst),
		assert.WithSettle(cfg.Assert.Settle),
	}
	repOpts = append(repOpts, opts.Reporter...)

	libOpts := []shim.Option{
		shim.WithReporter(assert.NewReporter(repOpts...)),
		shim.WithPlatform(platform),
		shim.WithTrace(cfg.Shim.Trace || shim.Tracing),
	}
	if cfg.Shim.Banner {
		libOpts = append(libOpts, shim.WithBanner(s.err()))
	}

	log.WithFields(logger.Fields{
		"at":       "config.Build",
		"output":   cfg.Assert.Output,
		"platform": cfg.Critical.Platform,
	}).Debug("building_library_handle")
	return shim.New(libOpts...), nil
}
