// Package testkit provides small AST-construction helpers shared by the
// sema package's tests, mirroring the builder-wrapper pattern the wider
// toolchain's test suites use to keep test bodies focused on the scenario
// rather than on arena plumbing.
package testkit

import (
	"zenc/internal/ast"
	"zenc/internal/source"
	"zenc/internal/types"
)

// Program wraps a Builder with convenience constructors for the node
// shapes the sema tests exercise repeatedly.
type Program struct {
	*ast.Builder
}

// NewProgram creates a Program over a fresh Builder and type interner.
func NewProgram() *Program {
	return &Program{Builder: ast.NewBuilder(nil)}
}

// Pos returns a source position at the given line; column is fixed at 1
// since the analyses never read it.
func (p *Program) Pos(line uint32) source.Pos {
	return source.Pos{Line: line, Col: 1}
}

// IntType interns and returns the primitive int type.
func (p *Program) IntType() types.TypeID {
	return p.Types.Intern(types.Type{Kind: types.KindInt})
}

// StructType interns and returns a named struct type.
func (p *Program) StructType(name string) types.TypeID {
	return p.Types.Intern(types.Type{Kind: types.KindStruct, Name: name})
}

// RefType interns and returns a reference type over inner with the given
// mutability.
func (p *Program) RefType(inner types.TypeID, mutable bool) types.TypeID {
	return p.Types.Intern(types.Type{Kind: types.KindRef, Inner: inner, Mutable: mutable})
}

// Let builds `let name: declType = init` at line.
func (p *Program) Let(line uint32, name string, declType types.TypeID, init ast.NodeID) ast.NodeID {
	return p.NewVarDecl(p.Pos(line), name, declType, init)
}

// Ref builds `&name` (or `&mut name` when mutable) at line.
func (p *Program) Ref(line uint32, name string, mutable bool) ast.NodeID {
	op := "&"
	if mutable {
		op = "&mut"
	}
	return p.NewUnary(p.Pos(line), op, p.NewVarRef(p.Pos(line), name))
}

// Deref builds `*name` at line, for use as an assignment target.
func (p *Program) Deref(line uint32, name string) ast.NodeID {
	return p.NewUnary(p.Pos(line), "*", p.NewVarRef(p.Pos(line), name))
}

// Assign builds `lhs = rhs` at line.
func (p *Program) Assign(line uint32, lhs, rhs ast.NodeID) ast.NodeID {
	return p.NewBinary(p.Pos(line), "=", lhs, rhs)
}

// Call builds a call to callee with the given bare-name arguments.
func (p *Program) Call(line uint32, callee string, argNames ...string) ast.NodeID {
	args := make([]ast.NodeID, len(argNames))
	for i, name := range argNames {
		args[i] = p.NewVarRef(p.Pos(line), name)
	}
	return p.NewCall(p.Pos(line), p.NewVarRef(p.Pos(line), callee), args)
}

// Block chains stmts into a sibling list and wraps them in a Block at line.
func (p *Program) Block(line uint32, stmts ...ast.NodeID) ast.NodeID {
	var first, prev ast.NodeID
	for _, s := range stmts {
		if s == ast.NoNodeID {
			continue
		}
		if first == ast.NoNodeID {
			first = s
		} else {
			p.Link(prev, s)
		}
		prev = s
	}
	return p.NewBlock(p.Pos(line), first)
}

// Function builds a function named name with the given body block.
func (p *Program) Function(line uint32, name string, body ast.NodeID) ast.NodeID {
	return p.NewFunction(p.Pos(line), name, body)
}

// Root wraps top-level function declarations into a Root node, chaining
// them as siblings.
func (p *Program) Root(decls ...ast.NodeID) ast.NodeID {
	var first, prev ast.NodeID
	for _, d := range decls {
		if first == ast.NoNodeID {
			first = d
		} else {
			p.Link(prev, d)
		}
		prev = d
	}
	return p.NewRoot(p.Pos(1), first)
}
