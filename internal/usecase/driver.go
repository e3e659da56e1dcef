package usecase

import (
	"context"
	"fmt"

	"github.com/simbachain/libsimba-deploy/internal/domain/models"
)

// Driver iterates the remaining actions of a workflow in order,
// resolving then handling each one — component D of the engine,
// spec.md §4.5. A single Deploy call is one sequential pass; it is
// idempotent under re-invocation: resumption is just calling Deploy
// again on the same (mutated) Workflow value.
type Driver struct {
	resolver *Resolver
	handler  *Handler
	progress ProgressSink
}

// NewDriver builds a Driver over a Resolver and Handler. progress may
// be nil, in which case progress events are discarded.
func NewDriver(resolver *Resolver, handler *Handler, progress ProgressSink) *Driver {
	if progress == nil {
		progress = NopProgress{}
	}
	return &Driver{resolver: resolver, handler: handler, progress: progress}
}

// Deploy drives workflow to completion or to the next failure,
// mutating it in place and returning the same value. The leading
// prefix of workflow.Actions whose handler returned carryOn=true is
// removed from Actions and filed into Completed, keyed by each
// action's post-resolution contract name (models.ProxyContractName
// for proxies). The next element of Actions, if any, is the first
// failed or still-pending action, carrying its most recent
// ActionState and ErrorMessage — re-invoking Deploy on the same
// Workflow resumes from exactly that point.
func (d *Driver) Deploy(ctx context.Context, workflow *models.Workflow) *models.Workflow {
	count := 0
	total := len(workflow.Actions)

	for i, action := range workflow.Actions {
		d.progress.OnProgress(ctx, ProgressEvent{Stage: StageResolving, Action: action, Index: i, Total: total})

		carryOn, err := d.resolver.Resolve(ctx, action, workflow.Completed)
		if err != nil {
			action.ActionState = models.StateFailedDependencies
			action.ErrorMessage = err.Error()
			d.progress.OnProgress(ctx, ProgressEvent{Stage: StageStopped, Action: action, Index: i, Total: total, Message: err.Error()})
			break
		}
		action.ErrorMessage = ""

		if !carryOn {
			// Action was already COMPLETED (defensive; the Driver
			// should already have skipped it). Nothing to execute, but
			// do not count it toward the prefix being drained either —
			// it isn't this pass's to promote.
			continue
		}

		d.progress.OnProgress(ctx, ProgressEvent{Stage: StageExecuting, Action: action, Index: i, Total: total})

		var handled *models.Action
		handled, carryOn = d.handler.Handle(ctx, action, workflow)
		if !carryOn {
			d.progress.OnProgress(ctx, ProgressEvent{Stage: StageStopped, Action: handled, Index: i, Total: total, Message: handled.ErrorMessage})
			break
		}

		count++
		workflow.Completed[handled.ContractName] = handled
		d.progress.OnProgress(ctx, ProgressEvent{Stage: StageAdvanced, Action: handled, Index: i, Total: total})
	}

	workflow.Actions = workflow.Actions[count:]
	return workflow
}

// Status summarizes a Workflow's progress for display: how many
// actions remain pending and, if the head of the plan is sitting in a
// failed state, what that state and message are.
type Status struct {
	Completed    int
	Pending      int
	HeadState    models.ActionState
	HeadError    string
	HeadContract string
}

// Summarize computes a Status snapshot of workflow without mutating
// it.
func Summarize(workflow *models.Workflow) Status {
	s := Status{Completed: len(workflow.Completed), Pending: len(workflow.Actions)}
	if len(workflow.Actions) > 0 {
		head := workflow.Actions[0]
		s.HeadState = head.ActionState
		s.HeadError = head.ErrorMessage
		s.HeadContract = head.ContractName
	}
	return s
}

// ErrWorkflowStalled is returned by RequireProgress when the head
// action of the workflow is in INVALID_STATE — re-invoking Deploy
// would be futile.
var ErrWorkflowStalled = fmt.Errorf("workflow cannot make further progress")

// RequireProgress reports ErrWorkflowStalled if the workflow still has
// pending actions and the head action is in INVALID_STATE; any other
// head state, including a not-yet-run INITED one, passes. The
// CLI resume command uses this to avoid silently looping forever on a
// plan that requires operator intervention.
func RequireProgress(workflow *models.Workflow) error {
	if len(workflow.Actions) == 0 {
		return nil
	}
	head := workflow.Actions[0]
	if head.ActionState == models.StateInvalid {
		return fmt.Errorf("%w: action %q is in INVALID_STATE: %s", ErrWorkflowStalled, head.ContractName, head.ErrorMessage)
	}
	return nil
}
