package ast

import (
	"zenc/internal/source"
	"zenc/internal/types"
)

// Builder constructs a Tree node by node, mirroring the surge compiler's
// arena builders: one NewX method per node kind, returning the new NodeID.
type Builder struct {
	Tree  *Tree
	Types *types.Interner
}

// NewBuilder creates a Builder over a fresh Tree, sharing the given type
// interner (a new one is created if nil).
func NewBuilder(typeInterner *types.Interner) *Builder {
	if typeInterner == nil {
		typeInterner = types.NewInterner()
	}
	return &Builder{Tree: NewTree(), Types: typeInterner}
}

// NewRoot allocates a Root node whose first top-level item is firstChild.
func (b *Builder) NewRoot(pos source.Pos, firstChild NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindRoot, Pos: pos, First: firstChild})
}

// NewBlock allocates a Block node whose first statement is firstStmt.
func (b *Builder) NewBlock(pos source.Pos, firstStmt NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindBlock, Pos: pos, First: firstStmt})
}

// NewVarDecl allocates a `let name: declType = init` binding.
func (b *Builder) NewVarDecl(pos source.Pos, name string, declType types.TypeID, init NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindVarDecl, Pos: pos, Name: name, DeclType: declType, First: init})
}

// NewFunction allocates a function declaration with the given body.
func (b *Builder) NewFunction(pos source.Pos, name string, body NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindFunction, Pos: pos, Name: name, Second: body})
}

// NewTest allocates a test declaration; tests share a function's borrow and
// move scope discipline.
func (b *Builder) NewTest(pos source.Pos, name string, body NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindTest, Pos: pos, Name: name, Second: body})
}

// NewBinary allocates a binary expression/assignment.
func (b *Builder) NewBinary(pos source.Pos, op string, lhs, rhs NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindBinary, Pos: pos, Op: op, First: lhs, Second: rhs})
}

// NewUnary allocates a unary expression (`&`, `&mut`, `*`, or others).
func (b *Builder) NewUnary(pos source.Pos, op string, operand NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindUnary, Pos: pos, Op: op, First: operand})
}

// NewVarRef allocates a bare variable reference.
func (b *Builder) NewVarRef(pos source.Pos, name string) NodeID {
	return b.Tree.Alloc(Node{Kind: KindVarRef, Pos: pos, Name: name})
}

// NewCall allocates a call expression.
func (b *Builder) NewCall(pos source.Pos, callee NodeID, args []NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindCall, Pos: pos, First: callee, Args: args})
}

// NewIf allocates a conditional with optional else-arm (NoNodeID if absent).
func (b *Builder) NewIf(pos source.Pos, cond, then, els NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindIf, Pos: pos, First: cond, Second: then, Third: els})
}

// NewWhile allocates a while loop.
func (b *Builder) NewWhile(pos source.Pos, cond, body NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindWhile, Pos: pos, First: cond, Second: body})
}

// NewFor allocates a for loop with init/cond/step/body slots.
func (b *Builder) NewFor(pos source.Pos, init, cond, step, body NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindFor, Pos: pos, First: init, Second: cond, Third: step, Fourth: body})
}

// NewLoop allocates an unconditional loop.
func (b *Builder) NewLoop(pos source.Pos, body NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindLoop, Pos: pos, Second: body})
}

// NewReturn allocates a return statement (value may be NoNodeID).
func (b *Builder) NewReturn(pos source.Pos, value NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindReturn, Pos: pos, First: value})
}

// NewMatch allocates a match over scrutinee with the given cases.
func (b *Builder) NewMatch(pos source.Pos, scrutinee NodeID, cases []NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindMatch, Pos: pos, First: scrutinee, Cases: cases})
}

// NewMatchCase allocates a single match arm.
func (b *Builder) NewMatchCase(pos source.Pos, body NodeID) NodeID {
	return b.Tree.Alloc(Node{Kind: KindMatchCase, Pos: pos, Second: body})
}

// Link chains sibling onto node's Next pointer and returns node, so callers
// can build a statement list left-to-right: `prev = b.Link(prev, next)`.
func (b *Builder) Link(node, sibling NodeID) NodeID {
	if node == NoNodeID {
		return sibling
	}
	n := b.Tree.Node(node)
	for n.Next != NoNodeID {
		n = b.Tree.Node(n.Next)
	}
	n.Next = sibling
	return node
}
