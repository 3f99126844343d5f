package sema

import (
	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/symbols"
	"zenc/internal/traits"
	"zenc/internal/types"
)

// MoveAnalyzer drives ownership/use-after-move checking over one function's
// body. Each function gets a fresh symbol table and a fresh root MoveState;
// instances never share mutable state, so analyzing multiple functions
// concurrently just means running one MoveAnalyzer per function.
type MoveAnalyzer struct {
	sink     diag.Sink
	types    *types.Interner
	traits   *traits.Registry
	policy   Policy
	syms     *symbols.Table
	cur      *MoveState
	fallback map[symbols.SymbolID]bool
}

// NewMoveAnalyzer creates a MoveAnalyzer over a shared type interner and
// trait registry (both read-only from the analyzer's perspective).
func NewMoveAnalyzer(sink diag.Sink, typeInterner *types.Interner, registry *traits.Registry, policy Policy) *MoveAnalyzer {
	return &MoveAnalyzer{
		sink:     sink,
		types:    typeInterner,
		traits:   registry,
		policy:   policy,
		fallback: make(map[symbols.SymbolID]bool),
	}
}

// IsCopy reports whether typ may be duplicated without invalidating its
// source.
func (m *MoveAnalyzer) IsCopy(typ types.TypeID) bool {
	return IsCopy(m.types, m.traits, m.policy, typ)
}

// MarkMoved transitions sym's current state to Moved at pos, unless sym's
// type is Copy.
func (m *MoveAnalyzer) MarkMoved(sym *symbols.Symbol, pos source.Pos) {
	if sym == nil || m.IsCopy(sym.Type) {
		return
	}
	if m.cur != nil {
		m.cur.markMoved(sym.Name, pos)
		return
	}
	sym.IsMoved = true
	m.fallback[sym.ID] = true
}

// MarkValid transitions sym to Valid, e.g. on re-initialization or
// assignment.
func (m *MoveAnalyzer) MarkValid(sym *symbols.Symbol) {
	if sym == nil {
		return
	}
	if m.cur != nil {
		m.cur.markValid(sym.Name)
		return
	}
	sym.IsMoved = false
	delete(m.fallback, sym.ID)
}

// CheckUse raises "use of moved value" if sym's effective status is Moved
// or MaybeMoved.
func (m *MoveAnalyzer) CheckUse(sym *symbols.Symbol, pos source.Pos) {
	if sym == nil {
		return
	}
	if m.cur != nil {
		status, at := m.cur.status(sym.Name)
		if status == StatusValid {
			return
		}
		m.report(sym.Name, pos, at)
		return
	}
	if m.fallback[sym.ID] {
		m.report(sym.Name, pos, source.Pos{})
	}
}

func (m *MoveAnalyzer) report(name string, pos, movedAt source.Pos) {
	d := m.sink.Report(diag.MoveUseAfterMove, pos,
		"Use of moved value '"+name+"'",
		"this type owns resources and cannot be implicitly copied",
		"consider borrowing with '&' instead",
	)
	if movedAt.IsValid() {
		d.Notes = append(d.Notes, diag.Note{Pos: movedAt, Msg: "value moved here"})
	}
}

// AnalyzeFunction runs move analysis over one function body and returns the
// number of diagnostics it raised.
func (m *MoveAnalyzer) AnalyzeFunction(tree *ast.Tree, body ast.NodeID) int {
	before := 0
	if b, ok := m.sink.(interface{ Len() int }); ok {
		before = b.Len()
	}
	m.syms = symbols.NewTable()
	m.cur = NewMoveState()
	m.walkStmt(tree, body)
	after := 0
	if b, ok := m.sink.(interface{ Len() int }); ok {
		after = b.Len()
	}
	return after - before
}

func isVarRef(tree *ast.Tree, id ast.NodeID) (*ast.Node, bool) {
	n := tree.Node(id)
	if n == nil || n.Kind != ast.KindVarRef {
		return nil, false
	}
	return n, true
}

func isRefBorrow(tree *ast.Tree, id ast.NodeID) (*ast.Node, bool) {
	n := tree.Node(id)
	if n == nil || n.Kind != ast.KindUnary || (n.Op != "&" && n.Op != "&mut") {
		return nil, false
	}
	return n, true
}

// walkStmt drives the statement-level traversal, threading m.cur across a
// sibling chain and replacing it at control-flow forks with the merged
// result.
func (m *MoveAnalyzer) walkStmt(tree *ast.Tree, id ast.NodeID) {
	for id != ast.NoNodeID {
		n := tree.Node(id)
		switch n.Kind {
		case ast.KindRoot:
			m.walkStmt(tree, n.FirstChild())
		case ast.KindBlock:
			m.walkStmt(tree, n.FirstChild())
		case ast.KindFunction, ast.KindTest:
			child := &MoveAnalyzer{sink: m.sink, types: m.types, traits: m.traits, policy: m.policy,
				syms: symbols.NewTable(), cur: NewMoveState(), fallback: make(map[symbols.SymbolID]bool)}
			child.walkStmt(tree, n.Body())
		case ast.KindVarDecl:
			m.walkVarDecl(tree, n)
		case ast.KindBinary:
			m.walkExpr(tree, id)
		case ast.KindIf:
			m.walkExpr(tree, n.Cond())
			thenState := m.cur.Clone()
			elseState := m.cur.Clone()
			m.cur = thenState
			m.walkStmt(tree, n.Then())
			thenState = m.cur
			if n.Else() != ast.NoNodeID {
				m.cur = elseState
				m.walkStmt(tree, n.Else())
				elseState = m.cur
			}
			merged := thenState.parent.Child()
			merged.parent = thenState.parent
			mergeStates(merged, thenState, elseState)
			m.cur = merged
		case ast.KindWhile:
			m.walkExpr(tree, n.Cond())
			pre := m.cur
			bodyState := pre.Clone()
			m.cur = bodyState
			m.walkStmt(tree, n.Body())
			bodyState = m.cur
			merged := pre.parent.Child()
			merged.parent = pre.parent
			mergeStates(merged, pre, bodyState)
			m.cur = merged
		case ast.KindFor:
			m.walkStmt(tree, n.Init())
			m.walkExpr(tree, n.ForCond())
			pre := m.cur
			bodyState := pre.Clone()
			m.cur = bodyState
			m.walkStmt(tree, n.ForBody())
			m.walkExpr(tree, n.ForStep())
			bodyState = m.cur
			merged := pre.parent.Child()
			merged.parent = pre.parent
			mergeStates(merged, pre, bodyState)
			m.cur = merged
		case ast.KindLoop:
			pre := m.cur
			bodyState := pre.Clone()
			m.cur = bodyState
			m.walkStmt(tree, n.Body())
			bodyState = m.cur
			merged := pre.parent.Child()
			merged.parent = pre.parent
			mergeStates(merged, pre, bodyState)
			m.cur = merged
		case ast.KindReturn:
			if n.Value() != ast.NoNodeID {
				m.walkExpr(tree, n.Value())
			}
		case ast.KindMatch:
			m.walkExpr(tree, n.Scrutinee())
			if len(n.Cases) == 0 {
				break
			}
			pre := m.cur
			branches := make([]*MoveState, 0, len(n.Cases))
			for _, c := range n.Cases {
				m.cur = pre.Clone()
				caseNode := tree.Node(c)
				m.walkStmt(tree, caseNode.Body())
				branches = append(branches, m.cur)
			}
			merged := pre.parent.Child()
			merged.parent = pre.parent
			mergeStates(merged, branches...)
			m.cur = merged
		case ast.KindMatchCase:
			m.walkStmt(tree, n.Body())
		default:
			// Other expression-shaped nodes reached directly from a
			// statement position (e.g. a bare call statement) are walked
			// as expressions.
			m.walkExpr(tree, id)
		}
		id = n.Next
	}
}

// walkVarDecl handles `let name: declType = init`. A non-reference
// declaration whose initializer is a bare variable name transfers
// ownership: the source is moved after the declaration observes it valid.
func (m *MoveAnalyzer) walkVarDecl(tree *ast.Tree, n *ast.Node) {
	declSym := m.syms.Declare(n.Name, n.DeclType)
	if n.Init() == ast.NoNodeID {
		return
	}
	declaredType, _ := m.types.Lookup(n.DeclType)
	if declaredType.Kind == types.KindRef || declaredType.Kind == types.KindRefSlice {
		m.walkExpr(tree, n.Init())
		return
	}
	if initNode, ok := isVarRef(tree, n.Init()); ok {
		if srcID, found := m.syms.Lookup(initNode.Name); found {
			srcSym := m.syms.Get(srcID)
			m.CheckUse(srcSym, initNode.Pos)
			m.MarkValid(m.syms.Get(declSym))
			m.MarkMoved(srcSym, n.Pos)
			return
		}
	}
	m.walkExpr(tree, n.Init())
	m.MarkValid(m.syms.Get(declSym))
}

// walkExpr visits an expression for its move/use effects: reads check_use,
// an assignment re-validates its target and (for a bare-variable source)
// moves the source, and a call argument passed by bare name consumes it.
func (m *MoveAnalyzer) walkExpr(tree *ast.Tree, id ast.NodeID) {
	n := tree.Node(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindVarRef:
		if symID, ok := m.syms.Lookup(n.Name); ok {
			m.CheckUse(m.syms.Get(symID), n.Pos)
		}
	case ast.KindUnary:
		m.walkExpr(tree, n.Operand())
	case ast.KindBinary:
		if n.Op == "=" {
			m.walkAssign(tree, n)
			return
		}
		m.walkExpr(tree, n.LHS())
		m.walkExpr(tree, n.RHS())
	case ast.KindCall:
		m.walkExpr(tree, n.Callee())
		for _, arg := range n.Args {
			m.walkCallArg(tree, arg)
		}
	default:
		// Literals and other leaf shapes carry no move effect.
	}
}

func (m *MoveAnalyzer) walkAssign(tree *ast.Tree, n *ast.Node) {
	lhs := tree.Node(n.LHS())
	if lhs != nil && lhs.Kind == ast.KindVarRef {
		if rhsNode, ok := isVarRef(tree, n.RHS()); ok {
			if srcID, found := m.syms.Lookup(rhsNode.Name); found {
				srcSym := m.syms.Get(srcID)
				m.CheckUse(srcSym, rhsNode.Pos)
				if dstID, ok := m.syms.Lookup(lhs.Name); ok {
					m.MarkValid(m.syms.Get(dstID))
				}
				m.MarkMoved(srcSym, n.Pos)
				return
			}
		}
		m.walkExpr(tree, n.RHS())
		if dstID, ok := m.syms.Lookup(lhs.Name); ok {
			m.MarkValid(m.syms.Get(dstID))
		}
		return
	}
	// Non-variable assignment target (e.g. `*r = value`): no symbol to
	// re-validate, the borrow analyzer owns legality of the write itself.
	m.walkExpr(tree, n.LHS())
	m.walkExpr(tree, n.RHS())
}

func (m *MoveAnalyzer) walkCallArg(tree *ast.Tree, arg ast.NodeID) {
	if argNode, ok := isVarRef(tree, arg); ok {
		if symID, found := m.syms.Lookup(argNode.Name); found {
			sym := m.syms.Get(symID)
			m.CheckUse(sym, argNode.Pos)
			m.MarkMoved(sym, argNode.Pos)
			return
		}
	}
	if borrowNode, ok := isRefBorrow(tree, arg); ok {
		m.walkExpr(tree, borrowNode.Operand())
		return
	}
	m.walkExpr(tree, arg)
}
