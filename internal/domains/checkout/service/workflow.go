package service

import (
	"hotelier/internal/domains/checkout/model"
	"hotelier/shared/timezone"
)

// workflow records the state transitions of one checkout attempt.
type workflow struct {
	state  model.State
	failed model.Step
	trail  []model.Transition
}

func newWorkflow() *workflow {
	return &workflow{state: model.StateIdle, trail: []model.Transition{}}
}

func (w *workflow) move(to model.State, step model.Step) {
	w.trail = append(w.trail, model.Transition{From: w.state, To: to, Step: step, At: timezone.Now()})
	w.state = to
}

// run enters the step's state and executes fn. A failure moves the workflow to failed and is returned as a StepError.
func (w *workflow) run(step model.Step, fn func() error) error {
	w.move(model.StateOf(step), step)

	if err := fn(); err != nil {
		w.failed = step
		w.move(model.StateFailed, step)

		return &model.StepError{Step: step, Err: err}
	}

	return nil
}

func (w *workflow) done() {
	w.move(model.StateDone, "")
}
