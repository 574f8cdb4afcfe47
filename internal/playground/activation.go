package playground

import (
	"context"

	"codyplay/internal/api"
	"codyplay/internal/catalog"
)

// Querier performs one backend query. *api.Client satisfies it.
type Querier interface {
	Do(ctx context.Context, op api.Operation, cat catalog.Category) (*api.Result, error)
}

// Activation captures one trigger press: its sequence number and the inputs
// as they were at that moment.
type Activation struct {
	Seq      uint64
	Op       api.Operation
	Category catalog.Category
}

// Activate begins op with the currently selected category (if op takes one).
func (s *Session) Activate(op api.Operation) Activation {
	a := Activation{Op: op}
	if op.TakesCategory() {
		a.Category = s.Selected()
	}
	a.Seq = s.Begin()
	return a
}

// Execute performs the activation's query. It does not touch session state,
// so it may run on any goroutine.
func Execute(ctx context.Context, q Querier, a Activation) (*api.Result, error) {
	return q.Do(ctx, a.Op, a.Category)
}

// Settle applies the outcome of an executed activation.
func (s *Session) Settle(a Activation, res *api.Result, err error) Outcome {
	if err != nil {
		return s.Fail(a.Seq, a.Op, err)
	}
	return s.Complete(a.Seq, res)
}

// Run activates, executes and settles op synchronously.
func (s *Session) Run(ctx context.Context, q Querier, op api.Operation) (Outcome, error) {
	a := s.Activate(op)
	res, err := Execute(ctx, q, a)
	return s.Settle(a, res, err), err
}
