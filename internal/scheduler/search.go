package scheduler

import (
	"context"
	"errors"
	"time"
)

// Outcome is the first-class result of a search.
type Outcome string

const (
	OutcomeScheduled  Outcome = "scheduled"
	OutcomeNoSolution Outcome = "no_solution"
)

// Reason explains how a search ended.
type Reason string

const (
	ReasonSolved     Reason = "solved"
	ReasonExhausted  Reason = "exhausted"
	ReasonNodeBudget Reason = "node_budget"
	ReasonDeadline   Reason = "deadline"
)

// ctxCheckInterval is how many candidate evaluations run between context checks.
const ctxCheckInterval = 256

// Stats summarises the work done by one search.
type Stats struct {
	// Nodes counts candidate values evaluated against the constraints.
	Nodes int `json:"nodes"`
	// Backtracks counts variables whose domain was exhausted.
	Backtracks int           `json:"backtracks"`
	Elapsed    time.Duration `json:"elapsed"`
	// Truncated is set when a node budget or deadline stopped the search early.
	Truncated bool `json:"truncated"`
}

// Result carries either a complete schedule or the no-solution outcome.
type Result struct {
	Outcome  Outcome
	Reason   Reason
	Schedule *Schedule
	Stats    Stats
}

// Found reports whether a complete schedule was produced.
func (r *Result) Found() bool {
	return r != nil && r.Outcome == OutcomeScheduled && r.Schedule != nil
}

// Generate formulates the problem and runs the search.
func Generate(ctx context.Context, activities []Activity, dates DateRange, opts Options) (*Result, error) {
	problem, err := Formulate(activities, dates, opts)
	if err != nil {
		return nil, err
	}
	return Solve(ctx, problem)
}

// Solve runs depth-first backtracking over the problem's variables in their fixed
// order, trying domain values in catalog order, and returns the first complete
// assignment. Frames live on an explicit cursor stack so large problems do not
// grow the call stack; exploration order matches the recursive formulation.
//
// A context deadline or the node budget ends the search with a truncated
// no-solution result. Cancellation without a deadline returns ctx.Err().
func Solve(ctx context.Context, p *Problem) (*Result, error) {
	started := time.Now()
	assignment := NewAssignment()
	cursors := make([]int, len(p.Variables))
	var stats Stats

	finish := func(outcome Outcome, reason Reason, schedule *Schedule) *Result {
		stats.Elapsed = time.Since(started)
		stats.Truncated = reason == ReasonNodeBudget || reason == ReasonDeadline
		return &Result{Outcome: outcome, Reason: reason, Schedule: schedule, Stats: stats}
	}

	depth := 0
	for depth >= 0 {
		if depth == len(p.Variables) {
			return finish(OutcomeScheduled, ReasonSolved, buildSchedule(p, assignment)), nil
		}

		variable := p.Variables[depth]
		// Returning to this frame after the deeper variable failed: undo before
		// moving on to the next candidate.
		assignment.Unassign(variable)

		domain := p.Domains[variable]
		placed := false
		for cursors[depth] < len(domain) {
			if p.Options.MaxNodes > 0 && stats.Nodes >= p.Options.MaxNodes {
				return finish(OutcomeNoSolution, ReasonNodeBudget, nil), nil
			}
			if stats.Nodes%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					if errors.Is(err, context.DeadlineExceeded) {
						return finish(OutcomeNoSolution, ReasonDeadline, nil), nil
					}
					return nil, err
				}
			}

			value := domain[cursors[depth]]
			cursors[depth]++
			stats.Nodes++
			if p.Consistent(assignment, variable, value) {
				assignment.Assign(variable, value)
				placed = true
				break
			}
		}

		if placed {
			depth++
			continue
		}
		cursors[depth] = 0
		stats.Backtracks++
		depth--
	}

	return finish(OutcomeNoSolution, ReasonExhausted, nil), nil
}
