package script

import (
	"fmt"
	"slices"

	"github.com/go-i2p/go-rtshim/lib/assert"
	"github.com/go-i2p/go-rtshim/lib/config"
	"github.com/go-i2p/go-rtshim/lib/critical"
	"github.com/go-i2p/go-rtshim/lib/shim"
	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// StepResult records what one step did.
type StepResult struct {
	Index int
	Op    string
	Token int
	// Result is the depth after protect/release, the status name after
	// init, or held/failed for assert.
	Result string
	// Mismatches lists the failed expectations of this step.
	Mismatches []string
}

// Passed reports whether every expectation of the step held.
func (r StepResult) Passed() bool { return len(r.Mismatches) == 0 }

// Result is the outcome of one scenario.
type Result struct {
	Name        string
	Description string
	Steps       []StepResult
	// Final lists failed final expectations.
	Final []string

	Depth       int
	Initialized bool
	Engage      int
	Disengage   int
	Events      []critical.Event
	Failures    []assert.Failure
}

// Passed reports whether the scenario met all of its expectations.
func (r *Result) Passed() bool {
	if len(r.Final) > 0 {
		return false
	}
	for _, s := range r.Steps {
		if !s.Passed() {
			return false
		}
	}
	return true
}

// Run executes sc against a fresh handle built from cfg. Assertion failures
// go to the configured sink and are also collected in the result.
func Run(sc *Scenario, cfg config.RuntimeConfig, streams config.Streams) (*Result, error) {
	rec := assert.NewRecorder(cfg.Assert.History)
	var counting *critical.CountingPlatform
	lib, err := config.Build(cfg, streams, config.BuildOptions{
		Reporter: []assert.Option{assert.WithRecorder(rec)},
		WrapPlatform: func(p critical.Platform) critical.Platform {
			counting = critical.NewCountingPlatform(p)
			return counting
		},
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Name: sc.Name, Description: sc.Description}
	for i, st := range sc.Steps {
		res.Steps = append(res.Steps, runStep(i+1, st, lib, rec))
	}

	res.Depth = lib.Guard().Depth()
	res.Initialized = lib.IsInitialized()
	res.Engage, res.Disengage = counting.Counts()
	res.Events = counting.Events()
	res.Failures = rec.All()
	if sc.Final != nil {
		res.Final = checkFinal(sc.Final, res, rec.Total())
	}

	log.WithFields(logger.Fields{
		"at":       "script.Run",
		"scenario": sc.Name,
		"passed":   res.Passed(),
		"failures": rec.Total(),
	}).Debug("scenario_finished")
	return res, nil
}

func runStep(index int, st Step, lib *shim.Lib, rec *assert.Recorder) StepResult {
	out := StepResult{Index: index, Op: st.Op, Token: st.Token}
	repeat := st.Repeat
	if repeat < 1 {
		repeat = 1
	}

	var (
		count  int
		status shim.Status
	)
	for n := 0; n < repeat; n++ {
		switch st.Op {
		case OpInit:
			status = lib.Init()
			out.Result = status.String()
		case OpProtect:
			count = lib.Protect(critical.Token(st.Token))
			out.Result = fmt.Sprint(count)
		case OpRelease:
			count = lib.Release(critical.Token(st.Token))
			out.Result = fmt.Sprint(count)
		case OpAssert:
			if lib.AssertCheck(*st.Held, st.Description) {
				out.Result = "held"
			} else {
				out.Result = "failed"
			}
		}
	}

	if e := st.Expect; e != nil {
		if e.Count != nil && count != *e.Count {
			out.Mismatches = append(out.Mismatches, fmt.Sprintf("count %d, want %d", count, *e.Count))
		}
		if e.Status != "" && status.String() != e.Status {
			out.Mismatches = append(out.Mismatches, fmt.Sprintf("status %s, want %s", status, e.Status))
		}
		if e.Failures != nil && rec.Total() != *e.Failures {
			out.Mismatches = append(out.Mismatches, fmt.Sprintf("failures %d, want %d", rec.Total(), *e.Failures))
		}
	}
	return out
}

func checkFinal(f *FinalExpect, res *Result, failures int) []string {
	var out []string
	if f.Depth != nil && res.Depth != *f.Depth {
		out = append(out, fmt.Sprintf("depth %d, want %d", res.Depth, *f.Depth))
	}
	if f.Initialized != nil && res.Initialized != *f.Initialized {
		out = append(out, fmt.Sprintf("initialized %t, want %t", res.Initialized, *f.Initialized))
	}
	if f.Engage != nil && res.Engage != *f.Engage {
		out = append(out, fmt.Sprintf("engage calls %d, want %d", res.Engage, *f.Engage))
	}
	if f.Disengage != nil && res.Disengage != *f.Disengage {
		out = append(out, fmt.Sprintf("disengage calls %d, want %d", res.Disengage, *f.Disengage))
	}
	if f.Failures != nil && failures != *f.Failures {
		out = append(out, fmt.Sprintf("assertion failures %d, want %d", failures, *f.Failures))
	}
	if f.Events != nil {
		got := make([]string, len(res.Events))
		for i, ev := range res.Events {
			got[i] = string(ev)
		}
		if !slices.Equal(got, f.Events) {
			out = append(out, fmt.Sprintf("events %v, want %v", got, f.Events))
		}
	}
	return out
}
