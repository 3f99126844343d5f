// Package ast defines the typed AST node shapes the semantic analysis core
// consumes. Lexing, parsing, and full type checking build this tree; this
// package only specifies its shape and provides the arena that owns it.
package ast

import (
	"fortio.org/safecast"

	"zenc/internal/source"
	"zenc/internal/types"
)

// NodeID identifies a node owned by a Tree's arena.
type NodeID uint32

// NoNodeID marks the absence of a node (an empty else-arm, a return with no
// value, and so on).
const NoNodeID NodeID = 0

// Kind tags every node shape named in the spec's external interface.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindRoot
	KindBlock
	KindVarDecl
	KindFunction
	KindBinary
	KindUnary
	KindVarRef
	KindCall
	KindIf
	KindWhile
	KindFor
	KindLoop
	KindReturn
	KindMatch
	KindMatchCase
	KindTest
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindBlock:
		return "Block"
	case KindVarDecl:
		return "VarDecl"
	case KindFunction:
		return "Function"
	case KindBinary:
		return "Binary"
	case KindUnary:
		return "Unary"
	case KindVarRef:
		return "VarRef"
	case KindCall:
		return "Call"
	case KindIf:
		return "If"
	case KindWhile:
		return "While"
	case KindFor:
		return "For"
	case KindLoop:
		return "Loop"
	case KindReturn:
		return "Return"
	case KindMatch:
		return "Match"
	case KindMatchCase:
		return "MatchCase"
	case KindTest:
		return "Test"
	default:
		return "Invalid"
	}
}

// Node is a single AST node. Every node carries a Kind tag, a source
// position, and a sibling pointer; the remaining fields are populated
// according to Kind (documented per constructor below), matching the
// tagged-variant shape the spec's external interfaces describe.
type Node struct {
	Kind Kind
	Pos  source.Pos
	Next NodeID

	// Name: VarDecl/VarRef binding name, Function/Test name.
	Name string
	// DeclType: VarDecl's declared type.
	DeclType types.TypeID
	// Op: Binary/Unary operator token ("+", "=", "&", "&mut", "*", ...).
	Op string

	// First is the primary child: Root's first top-level item, Block's
	// first statement, VarDecl's initializer, Binary's LHS, If/While's
	// condition (aliased as Cond below for readability), For's init,
	// Unary's operand, Call's callee, Return's value, Match's scrutinee.
	First NodeID
	// Second is the secondary child: Binary's RHS, Function/Test/Loop/
	// MatchCase/While's body, If's then-arm, For's condition.
	Second NodeID
	// Third is the tertiary child: If's else-arm, For's step.
	Third NodeID
	// Fourth is For's body (init/cond/step occupy First/Second/Third).
	Fourth NodeID

	// Args holds Call's argument list.
	Args []NodeID
	// Cases holds Match's case list.
	Cases []NodeID
}

// Cond reads the condition slot (Binary's LHS, If/While's condition, For's
// init). Named accessors make call sites self-documenting despite the
// shared backing fields.
func (n *Node) Cond() NodeID { return n.First }

// LHS reads Binary's left operand.
func (n *Node) LHS() NodeID { return n.First }

// RHS reads Binary's right operand.
func (n *Node) RHS() NodeID { return n.Second }

// Operand reads Unary's operand.
func (n *Node) Operand() NodeID { return n.First }

// Init reads VarDecl's initializer, or For's init statement.
func (n *Node) Init() NodeID { return n.First }

// Body reads Function/Test/Loop/MatchCase's body, or While's body.
func (n *Node) Body() NodeID { return n.Second }

// Then reads If's then-arm.
func (n *Node) Then() NodeID { return n.Second }

// Else reads If's else-arm.
func (n *Node) Else() NodeID { return n.Third }

// ForCond reads For's condition.
func (n *Node) ForCond() NodeID { return n.Second }

// ForStep reads For's step.
func (n *Node) ForStep() NodeID { return n.Third }

// ForBody reads For's body.
func (n *Node) ForBody() NodeID { return n.Fourth }

// Callee reads Call's callee.
func (n *Node) Callee() NodeID { return n.First }

// Value reads Return's value (NoNodeID for a bare return).
func (n *Node) Value() NodeID { return n.First }

// Scrutinee reads Match's scrutinee.
func (n *Node) Scrutinee() NodeID { return n.First }

// FirstChild reads Root's first top-level item or Block's first statement.
func (n *Node) FirstChild() NodeID { return n.First }

// Tree owns every node allocated for one or more files analyzed together.
type Tree struct {
	nodes []Node
}

// NewTree creates an empty Tree.
func NewTree() *Tree {
	return &Tree{}
}

// Alloc appends n to the arena and returns its 1-based NodeID.
func (t *Tree) Alloc(n Node) NodeID {
	t.nodes = append(t.nodes, n)
	id, err := safecast.Conv[uint32](len(t.nodes))
	if err != nil {
		panic(err)
	}
	return NodeID(id)
}

// Node returns a pointer to the node at id, or nil for NoNodeID.
func (t *Tree) Node(id NodeID) *Node {
	if t == nil || id == NoNodeID || int(id) > len(t.nodes) {
		return nil
	}
	return &t.nodes[id-1]
}

// Len returns the number of nodes allocated.
func (t *Tree) Len() int {
	return len(t.nodes)
}
