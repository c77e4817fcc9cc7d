package script

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"path"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Step operations.
const (
	OpInit    = "init"
	OpProtect = "protect"
	OpRelease = "release"
	OpAssert  = "assert"
)

// Scenario is one scripted run against a fresh library handle.
type Scenario struct {
	// Name uniquely identifies the scenario.
	Name string `yaml:"name"`

	// Description explains what the scenario demonstrates.
	Description string `yaml:"description"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// Final, if set, is checked after the last step.
	Final *FinalExpect `yaml:"final,omitempty"`
}

// Step is one operation on the handle.
type Step struct {
	Op string `yaml:"op"`

	// Token is passed to protect and release.
	Token int `yaml:"token,omitempty"`

	// Repeat runs the op this many times; 0 means once.
	Repeat int `yaml:"repeat,omitempty"`

	// Held and Description are the arguments of an assert step.
	Held        *bool  `yaml:"held,omitempty"`
	Description string `yaml:"description,omitempty"`

	Expect *StepExpect `yaml:"expect,omitempty"`
}

// StepExpect is checked after a step.
type StepExpect struct {
	// Count is the depth returned by the last protect or release.
	Count *int `yaml:"count,omitempty"`

	// Status is the name returned by init: initialized or reinitialized.
	Status string `yaml:"status,omitempty"`

	// Failures is the total number of assertion failures so far.
	Failures *int `yaml:"failures,omitempty"`
}

// FinalExpect is checked once all steps ran.
type FinalExpect struct {
	Depth       *int     `yaml:"depth,omitempty"`
	Initialized *bool    `yaml:"initialized,omitempty"`
	Engage      *int     `yaml:"engage,omitempty"`
	Disengage   *int     `yaml:"disengage,omitempty"`
	Failures    *int     `yaml:"failures,omitempty"`
	Events      []string `yaml:"events,omitempty"`
}

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadScenario reads and validates a scenario file.
func LoadScenario(file string) (*Scenario, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, oops.In("script").Wrapf(err, "failed to read scenario file")
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario, rejecting unknown fields.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, oops.In("script").Wrapf(err, "failed to parse YAML")
	}
	if err := validateScenario(&sc); err != nil {
		return nil, oops.In("script").Wrapf(err, "invalid scenario")
	}
	return &sc, nil
}

// Builtin returns the embedded self-test scenarios sorted by file name.
func Builtin() ([]*Scenario, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, oops.In("script").Wrapf(err, "failed to list builtin scenarios")
	}
	out := make([]*Scenario, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			return nil, oops.In("script").Wrapf(err, "failed to read %s", e.Name())
		}
		sc, err := ParseScenario(data)
		if err != nil {
			return nil, oops.In("script").Wrapf(err, "builtin scenario %s", e.Name())
		}
		out = append(out, sc)
	}
	return out, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return oops.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return oops.Errorf("steps list is required and must be non-empty")
	}
	for i, st := range s.Steps {
		if err := validateStep(st); err != nil {
			return oops.Wrapf(err, "step %d", i+1)
		}
	}
	if s.Final != nil {
		for _, ev := range s.Final.Events {
			if ev != "engage" && ev != "disengage" {
				return oops.Errorf("final event %q must be engage or disengage", ev)
			}
		}
	}
	return nil
}

func validateStep(st Step) error {
	switch st.Op {
	case OpInit, OpProtect, OpRelease:
	case OpAssert:
		if st.Held == nil {
			return oops.Errorf("assert step requires held")
		}
	case "":
		return oops.Errorf("op is required")
	default:
		return oops.Errorf("unknown op %q", st.Op)
	}
	if st.Repeat < 0 {
		return oops.Errorf("repeat must not be negative")
	}
	if st.Expect == nil {
		return nil
	}
	if st.Expect.Count != nil && st.Op != OpProtect && st.Op != OpRelease {
		return oops.Errorf("count expectation only applies to protect and release")
	}
	if st.Expect.Status != "" {
		if st.Op != OpInit {
			return oops.Errorf("status expectation only applies to init")
		}
		if st.Expect.Status != "initialized" && st.Expect.Status != "reinitialized" {
			return oops.Errorf("unknown status %q", st.Expect.Status)
		}
	}
	return nil
}
