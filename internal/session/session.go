// Package session drives the generate/confirm loop: a batch is generated,
// its statistics are shown, and the user accepts it, asks for a new one or
// quits.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/arcanaland/loteria/internal/cardset"
	"github.com/arcanaland/loteria/internal/stats"
)

// State is a step of the confirmation loop.
type State int

const (
	Generating State = iota
	AwaitConfirm
	Assembling
	Regenerating
	Aborting
	Done
)

func (s State) String() string {
	switch s {
	case Generating:
		return "GENERATING"
	case AwaitConfirm:
		return "AWAIT_CONFIRM"
	case Assembling:
		return "ASSEMBLE"
	case Regenerating:
		return "REGENERATE"
	case Aborting:
		return "ABORT"
	case Done:
		return "DONE"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Decision is the user's answer to a batch.
type Decision int

const (
	Reject Decision = iota
	Accept
	Quit
)

// Confirmation tokens.
const (
	TokenAccept = "y"
	TokenReject = "n"
	TokenQuit   = "q"
)

// ParseDecision maps an answer to a decision. Surrounding white space is
// ignored. Anything other than y, n or q is treated as a rejection and
// reported as unrecognized.
func ParseDecision(input string) (d Decision, recognized bool) {
	switch strings.TrimSpace(input) {
	case TokenAccept:
		return Accept, true
	case TokenReject:
		return Reject, true
	case TokenQuit:
		return Quit, true
	default:
		return Reject, false
	}
}

// Flow wires the loop to its collaborators. Generate, Analyze and Confirm
// are required; Assemble may be nil for a dry run.
type Flow struct {
	Generate func(ctx context.Context) (cardset.Batch, error)
	Analyze  func(batch cardset.Batch) (stats.Report, error)
	// Confirm shows the report and returns the raw answer.
	Confirm  func(ctx context.Context, batch cardset.Batch, report stats.Report) (string, error)
	Assemble func(ctx context.Context, batch cardset.Batch) error

	// OnTransition is called on every state change.
	OnTransition func(from, to State)
	// OnUnrecognized is called with answers that fell back to a rejection.
	OnUnrecognized func(input string)
}

// Outcome is the result of a finished loop.
type Outcome struct {
	Batch     cardset.Batch
	Report    stats.Report
	Accepted  bool
	Assembled bool
	Rounds    int
}

// Run loops until the user accepts or quits, or a collaborator fails. A
// rejected batch is discarded whole and generated again from scratch.
func (f *Flow) Run(ctx context.Context) (Outcome, error) {
	var out Outcome
	state := Generating
	move := func(to State) {
		if f.OnTransition != nil {
			f.OnTransition(state, to)
		}
		state = to
	}

	for {
		switch state {
		case Generating:
			batch, err := f.Generate(ctx)
			if err != nil {
				return Outcome{}, err
			}
			report, err := f.Analyze(batch)
			if err != nil {
				return Outcome{}, err
			}
			out.Batch, out.Report = batch, report
			out.Rounds++
			move(AwaitConfirm)

		case AwaitConfirm:
			answer, err := f.Confirm(ctx, out.Batch, out.Report)
			if err != nil {
				return Outcome{}, err
			}
			d, ok := ParseDecision(answer)
			if !ok && f.OnUnrecognized != nil {
				f.OnUnrecognized(answer)
			}
			switch d {
			case Accept:
				move(Assembling)
			case Quit:
				move(Aborting)
			default:
				move(Regenerating)
			}

		case Regenerating:
			out.Batch, out.Report = nil, stats.Report{}
			move(Generating)

		case Assembling:
			out.Accepted = true
			if f.Assemble != nil {
				if err := f.Assemble(ctx, out.Batch); err != nil {
					return Outcome{}, err
				}
				out.Assembled = true
			}
			move(Done)

		case Aborting:
			out.Batch, out.Report = nil, stats.Report{}
			move(Done)

		case Done:
			return out, nil
		}
	}
}
