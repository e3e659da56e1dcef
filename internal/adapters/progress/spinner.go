// Package progress implements usecase.ProgressSink for the CLI,
// rendering each action's resolving/executing/advanced/stopped
// transitions as a spinner line.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/simbachain/libsimba-deploy/internal/usecase"
)

// SpinnerReporter drives a single terminal spinner across a Deploy
// pass, relabeling its suffix as the driver moves through actions.
type SpinnerReporter struct {
	spinner *spinner.Spinner
}

// NewSpinnerReporter builds a SpinnerReporter. The spinner is started
// by the first StageResolving event, not here.
func NewSpinnerReporter() *SpinnerReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.HideCursor = false
	return &SpinnerReporter{spinner: s}
}

// OnProgress implements usecase.ProgressSink.
func (r *SpinnerReporter) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	label := fmt.Sprintf("[%d/%d] %s", event.Index+1, event.Total, event.Action.ContractName)

	switch event.Stage {
	case usecase.StageResolving:
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		r.spinner.Suffix = " " + label + ": resolving dependencies"

	case usecase.StageExecuting:
		r.spinner.Suffix = " " + label + ": " + string(event.Action.ActionType)

	case usecase.StageAdvanced:
		r.spinner.Stop()
		color.New(color.FgGreen).Printf("✓ %s\n", label)

	case usecase.StageStopped:
		r.spinner.Stop()
		color.New(color.FgRed).Printf("✗ %s: %s\n", label, event.Message)
	}
}

// NopReporter is a no-op ProgressSink for non-interactive invocations
// (CI, --non-interactive).
type NopReporter struct{}

// NewNopReporter builds a NopReporter.
func NewNopReporter() *NopReporter { return &NopReporter{} }

// OnProgress implements usecase.ProgressSink by doing nothing.
func (r *NopReporter) OnProgress(context.Context, usecase.ProgressEvent) {}

var _ usecase.ProgressSink = (*SpinnerReporter)(nil)
var _ usecase.ProgressSink = (*NopReporter)(nil)
