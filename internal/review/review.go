// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review runs a bounded iterative document review: an external
// generation capability inspects a transcript and either calls one of a
// restricted tool set or produces a final answer, until it answers or
// the step budget runs out.
package review

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// BudgetExhaustedMarker is appended to the rendered outcome when the
// loop terminates by running out of steps rather than by answering.
const BudgetExhaustedMarker = "[step budget exhausted - partial result]"

// ToolSpec describes one tool offered to the generation capability.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Dispatcher executes tool calls on behalf of the loop. The registry in
// the tools package implements it; Invoke never raises, it returns a
// display string (possibly an "Error:"-prefixed one).
type Dispatcher interface {
	Specs() []ToolSpec
	Invoke(ctx context.Context, name string, args map[string]any) string
}

// ToolCall is a single tool invocation requested by the generator.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// Decision is the generator's output for one step: exactly one of Call
// or Answer is set.
type Decision struct {
	Call   *ToolCall
	Answer string
}

// Generator is the external generation capability. It sees the whole
// session (question, document name, transcript so far) plus the
// permitted tools, and decides the next action.
type Generator interface {
	Decide(ctx context.Context, s *Session, tools []ToolSpec) (Decision, error)
}

// Turn records one executed tool call and its result.
type Turn struct {
	ToolName  string
	Arguments map[string]any
	Result    string
}

// Session is the per-request review state. It is created for one review
// and discarded with the terminal answer; there is no cross-session
// memory.
type Session struct {
	Question     string
	DocumentName string
	StepsUsed    int
	MaxSteps     int
	Transcript   []Turn
}

// Outcome is the terminal result of a review run.
type Outcome struct {
	Answer    string
	StepsUsed int

	// Exhausted is true when the loop hit MaxSteps without a final
	// answer; Answer then holds the last available (partial) output.
	Exhausted bool
}

// Render returns the user-facing text, with the exhaustion marker when
// the budget ran out so forced termination is distinguishable from a
// normal answer.
func (o Outcome) Render() string {
	if o.Exhausted {
		if o.Answer == "" {
			return BudgetExhaustedMarker
		}
		return o.Answer + "\n\n" + BudgetExhaustedMarker
	}
	return o.Answer
}

// Loop drives review sessions.
type Loop struct {
	Gen   Generator
	Tools Dispatcher
	Log   zerolog.Logger
}

// Run executes one session. StepsUsed increments exactly once per tool
// call; a failed tool call is appended to the transcript as one step
// and the generator decides what to do next - the loop never retries on
// its own. Terminal conditions: a final answer, or the step budget.
func (l *Loop) Run(ctx context.Context, question, documentName string, maxSteps int) (Outcome, error) {
	if maxSteps <= 0 {
		return Outcome{}, fmt.Errorf("max steps must be positive, got %d", maxSteps)
	}

	s := &Session{
		Question:     question,
		DocumentName: documentName,
		MaxSteps:     maxSteps,
	}

	var lastOutput string
	for s.StepsUsed < s.MaxSteps {
		decision, err := l.Gen.Decide(ctx, s, l.Tools.Specs())
		if err != nil {
			return Outcome{StepsUsed: s.StepsUsed}, fmt.Errorf("generation step: %w", err)
		}

		if decision.Call == nil {
			l.Log.Debug().Int("steps_used", s.StepsUsed).Msg("review finished with final answer")
			return Outcome{Answer: decision.Answer, StepsUsed: s.StepsUsed}, nil
		}

		result := l.Tools.Invoke(ctx, decision.Call.Name, decision.Call.Arguments)
		s.Transcript = append(s.Transcript, Turn{
			ToolName:  decision.Call.Name,
			Arguments: decision.Call.Arguments,
			Result:    result,
		})
		s.StepsUsed++
		lastOutput = result

		l.Log.Debug().
			Str("tool", decision.Call.Name).
			Int("steps_used", s.StepsUsed).
			Int("max_steps", s.MaxSteps).
			Msg("review tool call")
	}

	l.Log.Info().Int("max_steps", s.MaxSteps).Msg("review step budget exhausted")
	return Outcome{Answer: lastOutput, StepsUsed: s.StepsUsed, Exhausted: true}, nil
}
