package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/zigsyntax"
)

func parse(t *testing.T, src string) *zigsyntax.AST {
	t.Helper()
	ast, err := zigsyntax.Parse([]byte(src + "\x00"))
	require.Nil(t, err)
	return ast
}

type recordingVisitor struct {
	NopVisitor
	entered   []ids.NodeID
	exited    []ids.NodeID
	open      []ids.NodeID // entered and not yet exited, innermost last
	misnested int          // exits that did not match the innermost open node
	fullHits  map[ids.NodeID]int
	onEnter   func(ids.NodeID) State
}

func newRecordingVisitor() *recordingVisitor {
	return &recordingVisitor{fullHits: map[ids.NodeID]int{}}
}

func (r *recordingVisitor) EnterNode(n ids.NodeID) {
	r.entered = append(r.entered, n)
	r.open = append(r.open, n)
}

func (r *recordingVisitor) ExitNode(n ids.NodeID) {
	r.exited = append(r.exited, n)
	if len(r.open) == 0 || r.open[len(r.open)-1] != n {
		r.misnested++
		return
	}
	r.open = r.open[:len(r.open)-1]
}

func (r *recordingVisitor) VisitTag(n ids.NodeID, tag zigsyntax.Tag) State {
	if r.onEnter != nil {
		return r.onEnter(n)
	}
	return Continue
}

func (r *recordingVisitor) VisitFull(n ids.NodeID, kind zigsyntax.FullKind, full any) State {
	r.fullHits[n]++
	if r.onEnter != nil {
		return r.onEnter(n)
	}
	return Continue
}

func TestWalkEnterExitNested(t *testing.T) {
	ast := parse(t, "const x = 1;\nconst y = 2;\n")
	v := newRecordingVisitor()
	New(ast, v).Walk()

	require.Equal(t, len(v.entered), len(v.exited))
	// enter/exit are properly nested: every exit pops the most recently
	// entered node that is still open (spec.md §8).
	assert.Zero(t, v.misnested)
	assert.Empty(t, v.open)
}

func TestWalkSkipPreventsDescendantEnter(t *testing.T) {
	ast := parse(t, "fn foo() void {\n  const a = 1;\n}\n")
	var skipped ids.NodeID
	v := newRecordingVisitor()
	v.onEnter = func(n ids.NodeID) State {
		tag := ast.Node(n).Tag
		if tag == zigsyntax.TagFnDecl {
			skipped = n
			return Skip
		}
		return Continue
	}
	New(ast, v).Walk()

	require.NotEqual(t, ids.NodeID(0), skipped)
	assert.Contains(t, v.entered, skipped)
	assert.Contains(t, v.exited, skipped, "exit_node still fires for a skipped node")
	for _, child := range ast.ChildNodes(skipped) {
		assert.NotContains(t, v.entered, child, "Skip must prevent descendant enters")
	}
}

func TestWalkStopTerminatesImmediately(t *testing.T) {
	ast := parse(t, "const x = 1;\nconst y = 2;\nconst z = 3;\n")
	v := newRecordingVisitor()
	stopAfter := ast.RootDecls[0]
	v.onEnter = func(n ids.NodeID) State {
		if n == stopAfter {
			return Stop
		}
		return Continue
	}
	New(ast, v).Walk()

	assert.Equal(t, []ids.NodeID{stopAfter}, v.entered)
	assert.Empty(t, v.exited, "no exit hooks fire once Stop is returned")
}

func TestWalkFullNodeDispatchedAtMostOnce(t *testing.T) {
	ast := parse(t, "fn foo(a: i32) void {\n  const b = a;\n}\n")
	v := newRecordingVisitor()
	New(ast, v).Walk()

	for node, count := range v.fullHits {
		assert.LessOrEqual(t, count, 1, "node %v dispatched to VisitFull more than once", node)
	}
	assert.NotEmpty(t, v.fullHits, "fn_proto and simple_var_decl should have canonicalized")
}
