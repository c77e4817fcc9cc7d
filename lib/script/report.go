package script

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// Verdict returns PASS or FAIL for r.
func Verdict(r *Result) string {
	if r.Passed() {
		return "PASS"
	}
	return "FAIL"
}

// Render formats one result as a step table followed by a summary. With
// verbose set every step is listed; otherwise only failing steps are.
func Render(r *Result, verbose bool) string {
	var b strings.Builder

	verdict := passStyle.Render(Verdict(r))
	if !r.Passed() {
		verdict = failStyle.Render(Verdict(r))
	}
	fmt.Fprintf(&b, "%s %s\n", verdict, titleStyle.Render(r.Name))
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n", dimStyle.Render(r.Description))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "op", "token", "result", "check")
	rows := 0
	for _, s := range r.Steps {
		if !verbose && s.Passed() {
			continue
		}
		check := "ok"
		if !s.Passed() {
			check = strings.Join(s.Mismatches, "; ")
		}
		t.Row(fmt.Sprint(s.Index), s.Op, fmt.Sprint(s.Token), s.Result, check)
		rows++
	}
	if rows > 0 {
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "depth=%d initialized=%t engage=%d disengage=%d assertion_failures=%d\n",
		r.Depth, r.Initialized, r.Engage, r.Disengage, len(r.Failures))
	for _, f := range r.Final {
		fmt.Fprintf(&b, "%s %s\n", failStyle.Render("final:"), f)
	}
	return b.String()
}

// Summary renders the pass count over a set of results.
func Summary(results []*Result) string {
	passed := 0
	for _, r := range results {
		if r.Passed() {
			passed++
		}
	}
	style := passStyle
	if passed != len(results) {
		style = failStyle
	}
	return style.Render(fmt.Sprintf("%d/%d scenarios passed", passed, len(results)))
}
