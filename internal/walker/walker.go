// Package walker implements the depth-first AST traversal spec.md §4.3
// (component C7): an explicit-stack walk that fires enter/exit hooks for
// every node, dispatching to a full-node visitor when one of the node's
// raw tags canonicalizes, falling back to a per-tag visitor otherwise.
package walker

import (
	"fmt"

	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/zigsyntax"
)

// State is what a visitor returns to steer the walk.
type State uint8

const (
	Continue State = iota // descend into this node's children
	Skip                  // do not descend, but continue the walk
	Stop                  // terminate the walk immediately
)

// Visitor is the full hook set spec.md §4.3 describes; every method is
// optional in spirit (NopVisitor embeds no-op defaults so callers only
// override what they need).
type Visitor interface {
	EnterNode(n ids.NodeID)
	ExitNode(n ids.NodeID)

	// VisitTag is the per-raw-tag fallback, called only when no full-node
	// visitor matched.
	VisitTag(n ids.NodeID, tag zigsyntax.Tag) State

	// VisitFull is called instead of VisitTag for any node that
	// canonicalizes to a Full* kind (spec.md §4.3 "Full-node visitors,
	// when present, are called instead of the per-tag visitor").
	VisitFull(n ids.NodeID, kind zigsyntax.FullKind, full any) State

	// VisitFnParam is synthesized once per parameter of a FullFnProto
	// (spec.md §4.3 "Function parameters"): the parser never creates a
	// per-parameter AST node, so the walker calls this directly instead of
	// descending into one.
	VisitFnParam(fnProtoNode ids.NodeID, param zigsyntax.FullFnParam)
}

// NopVisitor implements Visitor with no-ops, so embedders only write the
// methods they need.
type NopVisitor struct{}

func (NopVisitor) EnterNode(ids.NodeID)                                        {}
func (NopVisitor) ExitNode(ids.NodeID)                                         {}
func (NopVisitor) VisitTag(ids.NodeID, zigsyntax.Tag) State                    { return Continue }
func (NopVisitor) VisitFull(ids.NodeID, zigsyntax.FullKind, any) State         { return Continue }
func (NopVisitor) VisitFnParam(ids.NodeID, zigsyntax.FullFnParam)              {}

type phase uint8

const (
	phaseEnter phase = iota
	phaseExit
)

type frame struct {
	node  ids.NodeID
	phase phase
}

// Walker drives one traversal of an AST.
type Walker struct {
	ast *zigsyntax.AST
	v   Visitor

	// Debug, when true, enables the cycle-detection assertion spec.md
	// §4.3 describes ("before pushing, assert the target id is not
	// already on the stack in an unfinished enter state").
	Debug bool
}

func New(ast *zigsyntax.AST, v Visitor) *Walker {
	return &Walker{ast: ast, v: v}
}

// Walk traverses every root declaration in source order (spec.md §4.3
// "Traversal").
func (w *Walker) Walk() {
	var stack []frame
	open := map[ids.NodeID]bool{} // nodes with an unfinished enter, for Debug cycle detection

	push := func(id ids.NodeID) {
		if id.IsNull() {
			return
		}
		if w.Debug && open[id] {
			panic(fmt.Sprintf("walker: cycle detected re-entering node %v", id))
		}
		stack = append(stack, frame{node: id, phase: phaseExit})
		stack = append(stack, frame{node: id, phase: phaseEnter})
	}

	for i := len(w.ast.RootDecls) - 1; i >= 0; i-- {
		push(w.ast.RootDecls[i])
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch f.phase {
		case phaseEnter:
			open[f.node] = true
			w.v.EnterNode(f.node)
			state := w.dispatch(f.node)
			switch state {
			case Stop:
				return
			case Skip:
				// exit_node still fires for a skipped node (spec.md §4.3
				// Walker properties); its frame is already on the stack.
			default:
				children := w.ast.ChildNodes(f.node)
				for i := len(children) - 1; i >= 0; i-- {
					push(children[i])
				}
			}

		case phaseExit:
			delete(open, f.node)
			w.v.ExitNode(f.node)
		}
	}
}

func (w *Walker) dispatch(id ids.NodeID) State {
	if kind, full, ok := w.ast.Canonicalize(id); ok {
		if proto, isProto := full.(zigsyntax.FullFnProto); isProto {
			for _, p := range proto.Params {
				w.v.VisitFnParam(id, p)
			}
		}
		return w.v.VisitFull(id, kind, full)
	}
	return w.v.VisitTag(id, w.ast.Node(id).Tag)
}
