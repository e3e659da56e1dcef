// Package render formats a Workflow's progress as a terminal table.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/simbachain/libsimba-deploy/internal/domain/models"
	"github.com/simbachain/libsimba-deploy/internal/usecase"
)

var (
	completedStyle = color.New(color.FgGreen)
	pendingStyle   = color.New(color.FgYellow)
	failedStyle    = color.New(color.FgRed)
)

// StatusRenderer renders a plan's per-action state as a table.
type StatusRenderer struct {
	out io.Writer
}

// NewStatusRenderer builds a StatusRenderer writing to out.
func NewStatusRenderer(out io.Writer) *StatusRenderer {
	return &StatusRenderer{out: out}
}

// RenderWorkflow prints one row per action: completed actions first
// (in the order they were filed into Completed is not preserved by a
// map, so these are sorted by contract name), followed by the
// remaining pending/failed actions in plan order.
func (r *StatusRenderer) RenderWorkflow(workflow *models.Workflow) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(table.Row{"#", "Contract", "Type", "State", "Detail"})

	names := usecase.CompletedNames(workflow.Completed)
	sort.Strings(names)

	i := 1
	for _, name := range names {
		action := workflow.Completed[name]
		t.AppendRow(table.Row{i, name, action.ActionType, completedStyle.Sprint(action.ActionState), ""})
		i++
	}

	for _, action := range workflow.Actions {
		style := pendingStyle
		if action.ActionState != "" && action.ActionState != models.StateInited {
			style = failedStyle
		}
		t.AppendRow(table.Row{i, action.ContractName, action.ActionType, style.Sprint(action.ActionState), action.ErrorMessage})
		i++
	}

	t.Render()

	status := usecase.Summarize(workflow)
	fmt.Fprintf(r.out, "\n%d completed, %d pending\n", status.Completed, status.Pending)
}
