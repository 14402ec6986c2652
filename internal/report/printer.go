// Package report renders and persists scenario run results.
//
// [Printer] writes styled, human-readable progress and summaries to a
// terminal; [Writer] persists a machine-readable YAML run report. Both
// consume runner result types and perform no browser work.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ptype-e2e/internal/runner"
	"ptype-e2e/internal/scenario"
)

// Printer writes styled run output to a terminal.
//
// Use [NewPrinter] for stdout or [NewPrinterWithWriter] to capture output in
// tests.
type Printer struct {
	w io.Writer

	titleStyle lipgloss.Style
	passStyle  lipgloss.Style
	failStyle  lipgloss.Style
	skipStyle  lipgloss.Style
	dimStyle   lipgloss.Style
}

// NewPrinter creates a Printer writing to stdout.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a Printer writing to the given writer.
func NewPrinterWithWriter(w io.Writer) *Printer {
	return &Printer{
		w:          w,
		titleStyle: lipgloss.NewStyle().Bold(true),
		passStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		failStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		skipStyle:  lipgloss.NewStyle().Faint(true),
		dimStyle:   lipgloss.NewStyle().Faint(true),
	}
}

// Progress is a [runner.ProgressCallback] that renders live step output.
// Wire it with runner.SetProgressCallback(printer.Progress).
func (p *Printer) Progress(ev runner.Event) {
	switch ev.Kind {
	case runner.EventScenarioStarted:
		fmt.Fprintf(p.w, "\n%s %s\n", p.titleStyle.Render("▶"), p.titleStyle.Render(ev.Scenario))
	case runner.EventStepPassed:
		p.printStepLine(ev, p.passStyle.Render("✓"))
	case runner.EventStepFailed:
		p.printStepLine(ev, p.failStyle.Render("✗"))
		if ev.Result != nil && ev.Result.Error != "" {
			fmt.Fprintf(p.w, "      %s\n", p.failStyle.Render(ev.Result.Error))
		}
	}
}

func (p *Printer) printStepLine(ev runner.Event, mark string) {
	desc := ""
	if ev.Step != nil {
		desc = ev.Step.Description
		if desc == "" {
			desc = string(ev.Step.Action)
		}
	}
	line := fmt.Sprintf("  %s [%d/%d] %s", mark, ev.StepIndex, ev.StepCount, desc)
	if ev.Result != nil && ev.Result.Detail != "" {
		line += " " + p.dimStyle.Render("("+ev.Result.Detail+")")
	}
	fmt.Fprintln(p.w, line)
}

// Summary renders the aggregate outcome of a run.
func (p *Printer) Summary(report runner.RunReport) {
	fmt.Fprintf(p.w, "\n%s\n", p.titleStyle.Render("Run summary"))
	for _, sc := range report.Scenarios {
		mark := p.passStyle.Render("✓")
		note := ""
		if !sc.Passed {
			mark = p.failStyle.Render("✗")
			note = fmt.Sprintf(" (failed at step %d)", sc.FailedStep)
		}
		fmt.Fprintf(p.w, "  %s %-28s %s%s\n", mark, sc.Name,
			p.dimStyle.Render(fmt.Sprintf("%dms", sc.DurationMs)), note)
	}
	line := fmt.Sprintf("%d passed, %d failed of %d", report.Passed, report.Failed, report.Total)
	if report.AllPassed() {
		fmt.Fprintf(p.w, "  %s\n", p.passStyle.Render(line))
	} else {
		fmt.Fprintf(p.w, "  %s\n", p.failStyle.Render(line))
	}
}

// Catalogue renders the scenario registry in declaration order.
func (p *Printer) Catalogue(c *scenario.Catalogue) {
	fmt.Fprintf(p.w, "%s\n", p.titleStyle.Render(fmt.Sprintf("Scenarios (%d)", c.Len())))
	for _, sc := range c.All() {
		fmt.Fprintf(p.w, "  %-28s %s %s\n", sc.Name,
			p.dimStyle.Render(fmt.Sprintf("%2d steps", len(sc.Steps))), sc.Description)
	}
}

// Scenario renders a single scenario's full step sequence.
func (p *Printer) Scenario(sc scenario.Scenario) {
	fmt.Fprintf(p.w, "%s\n", p.titleStyle.Render(sc.Name))
	if sc.Description != "" {
		fmt.Fprintf(p.w, "%s\n", sc.Description)
	}
	for i, step := range sc.Steps {
		fmt.Fprintf(p.w, "  %2d. %-17s %s\n", i+1, string(step.Action), describeStep(step))
	}
}

// describeStep summarizes one step's variant fields for display.
func describeStep(step scenario.Step) string {
	switch step.Action {
	case scenario.ActionNavigate:
		return step.URL
	case scenario.ActionClick:
		return step.Locator
	case scenario.ActionType:
		pace := ""
		if step.Paced {
			pace = " (paced)"
		}
		return fmt.Sprintf("%q into %s%s", step.Text, step.Locator, pace)
	case scenario.ActionPressKey:
		return step.Key
	case scenario.ActionWait:
		return fmt.Sprintf("%gs", step.Seconds)
	case scenario.ActionScreenshot:
		return step.Path
	case scenario.ActionEvaluate:
		return fmt.Sprintf("%s, expect %s", firstLine(step.Expression), step.Expect)
	case scenario.ActionConsoleMessages:
		if step.ErrorsOnly {
			return "errors only"
		}
		return "all messages"
	default:
		return step.Description
	}
}

// firstLine truncates multi-line expressions for single-line display.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i]) + " ..."
	}
	return s
}
