package diagnostic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcabandara/purityflow/ast"
	"github.com/jmcabandara/purityflow/diagnostic"
)

func TestEngine_RecordAndEventsSortedByPosition(t *testing.T) {
	e := diagnostic.NewEngine()
	e.Warnf(ast.Position{File: "b.js", Line: 5, Column: 1}, "second")
	e.Warnf(ast.Position{File: "a.js", Line: 9, Column: 1}, "first by file")
	e.Record(diagnostic.Info, ast.Position{File: "b.js", Line: 1, Column: 1}, "info before warn on same file")

	events := e.Events()
	if assert.Len(t, events, 3) {
		assert.Equal(t, "a.js", events[0].Position.File)
		assert.Equal(t, "b.js", events[1].Position.File)
		assert.Equal(t, 1, events[1].Position.Line)
		assert.Equal(t, diagnostic.Info, events[1].Severity)
		assert.Equal(t, diagnostic.Warn, events[2].Severity)
	}
}

func TestEngine_EventsOnEmptyEngineIsEmpty(t *testing.T) {
	e := diagnostic.NewEngine()
	assert.Empty(t, e.Events())
}
