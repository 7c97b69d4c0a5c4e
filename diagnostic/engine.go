//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diagnostic collects and renders the events the analysis core cannot simply return as a
// Go error: per-summary and per-call-site results, plus the invariant violations the core treats
// as pessimization rather than a fatal abort (an unresolved callee, an extern with no usable
// annotation, a definition candidate that could not be classified).
package diagnostic

import (
	"cmp"
	"fmt"
	"log"
	"slices"

	"github.com/jmcabandara/purityflow/ast"
)

// Severity distinguishes an informational summary record from an invariant violation worth a
// louder log line.
type Severity int

const (
	// Info records a finished function/call-site result; always emitted if requested.
	Info Severity = iota
	// Warn records a pessimization: the analysis made a sound but conservative choice because some
	// collaborator could not resolve a reference, classify a node, or match an intrinsic.
	Warn
)

// Event is one diagnostic record.
type Event struct {
	Severity Severity
	Position ast.Position
	Message  string
}

// Engine accumulates Events during a run and renders them on demand. Unlike the teacher's
// go/analysis-backed engine, this one owns no file set: positions are whatever package ast.Node.Pos
// already carries from the front-end that lowered the program.
type Engine struct {
	events []Event
}

// NewEngine creates an empty Engine.
func NewEngine() *Engine { return &Engine{} }

// Record appends an Event.
func (e *Engine) Record(severity Severity, pos ast.Position, format string, args ...any) {
	e.events = append(e.events, Event{Severity: severity, Position: pos, Message: fmt.Sprintf(format, args...)})
}

// Warnf is shorthand for Record(Warn, ...), used by collaborator wiring code whenever it falls
// back to a pessimistic default instead of a failure.
func (e *Engine) Warnf(pos ast.Position, format string, args ...any) {
	e.Record(Warn, pos, format, args...)
}

// Events returns every recorded event, sorted by file then line then column for stable output.
func (e *Engine) Events() []Event {
	out := slices.Clone(e.events)
	slices.SortFunc(out, func(a, b Event) int {
		if n := cmp.Compare(a.Position.File, b.Position.File); n != 0 {
			return n
		}
		if n := cmp.Compare(a.Position.Line, b.Position.Line); n != 0 {
			return n
		}
		return cmp.Compare(a.Position.Column, b.Position.Column)
	})
	return out
}

// LogTo writes every recorded event through the given logger, one line each, in position order.
func (e *Engine) LogTo(logger *log.Logger) {
	for _, ev := range e.Events() {
		prefix := "info"
		if ev.Severity == Warn {
			prefix = "warn"
		}
		logger.Printf("%s: %s:%d:%d: %s", prefix, ev.Position.File, ev.Position.Line, ev.Position.Column, ev.Message)
	}
}
