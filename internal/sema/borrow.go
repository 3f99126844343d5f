package sema

import (
	"strconv"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/symbols"
	"zenc/internal/types"
)

// BorrowEntry is a single active reference-typed binding.
type BorrowEntry struct {
	Borrowed string
	Borrower string
	Mutable  bool
	Depth    int
	Pos      source.Pos
}

// BorrowSet is the ordered, linearly-searched collection of active borrows
// for the function currently under analysis. Entry counts stay small
// (scope depth times active borrows per scope), so a slice with linear
// scans needs no auxiliary index.
type BorrowSet struct {
	entries []BorrowEntry
	depth   int
}

// NewBorrowSet creates an empty set at depth zero.
func NewBorrowSet() *BorrowSet {
	return &BorrowSet{}
}

// EnterScope increments the depth counter for a new lexical scope.
func (b *BorrowSet) EnterScope() {
	b.depth++
}

// ExitScope drops every entry created at the exiting depth or deeper and
// decrements the counter.
func (b *BorrowSet) ExitScope() {
	kept := b.entries[:0]
	for _, e := range b.entries {
		if e.Depth < b.depth {
			kept = append(kept, e)
		}
	}
	b.entries = kept
	b.depth--
}

// findMutConflict returns the first active &mut entry on name, if any.
func (b *BorrowSet) findMutConflict(name string) (BorrowEntry, bool) {
	for _, e := range b.entries {
		if e.Borrowed == name && e.Mutable {
			return e, true
		}
	}
	return BorrowEntry{}, false
}

// findSharedConflict returns the first active & entry on name, if any.
func (b *BorrowSet) findSharedConflict(name string) (BorrowEntry, bool) {
	for _, e := range b.entries {
		if e.Borrowed == name && !e.Mutable {
			return e, true
		}
	}
	return BorrowEntry{}, false
}

// IsBorrowed reports whether name has any active borrow, of either
// mutability.
func (b *BorrowSet) IsBorrowed(name string) (BorrowEntry, bool) {
	for _, e := range b.entries {
		if e.Borrowed == name {
			return e, true
		}
	}
	return BorrowEntry{}, false
}

// TryBorrow checks the aliasing rules for a new borrow of borrowed by
// borrower with the given mutability at pos, reports a diagnostic and
// returns false if it conflicts, or registers the entry and returns true.
// A rejected request does not register — letting a later use see the
// variable as unborrowed avoids cascading "while borrowed" noise.
func (b *BorrowSet) TryBorrow(sink diag.Sink, borrowed, borrower string, mutable bool, pos source.Pos) bool {
	mutConflict, hasMut := b.findMutConflict(borrowed)
	sharedConflict, hasShared := b.findSharedConflict(borrowed)

	if mutable {
		if hasMut {
			sink.Report(diag.BorrowDoubleMut, pos,
				"Cannot borrow '"+borrowed+"' as mutable more than once at a time (previous mutable borrow at line "+line(mutConflict.Pos)+")")
			return false
		}
		if hasShared {
			sink.Report(diag.BorrowMutWhileImm, pos,
				"Cannot borrow '"+borrowed+"' as mutable while it is borrowed as immutable (immutable borrow at line "+line(sharedConflict.Pos)+")")
			return false
		}
	} else {
		if hasMut {
			sink.Report(diag.BorrowImmWhileMut, pos,
				"Cannot borrow '"+borrowed+"' as immutable while it is borrowed as mutable (mutable borrow at line "+line(mutConflict.Pos)+")")
			return false
		}
	}

	b.entries = append(b.entries, BorrowEntry{
		Borrowed: borrowed,
		Borrower: borrower,
		Mutable:  mutable,
		Depth:    b.depth,
		Pos:      pos,
	})
	return true
}

func line(pos source.Pos) string {
	return strconv.FormatUint(uint64(pos.Line), 10)
}

// borrowerInfo tracks what a borrower variable currently refers to, so a
// deref write `*r = ...` can tell whether r holds a mutable reference.
type borrowerInfo struct {
	borrowedName string
	mutable      bool
}

// BorrowAnalyzer walks one function body tracking active borrows and
// flagging aliasing and write-through-borrow violations.
type BorrowAnalyzer struct {
	sink     diag.Sink
	types    *types.Interner
	syms     *symbols.Table
	set      *BorrowSet
	borrower map[string]borrowerInfo
}

// NewBorrowAnalyzer creates a BorrowAnalyzer sharing a type interner with
// the rest of the pipeline.
func NewBorrowAnalyzer(sink diag.Sink, typeInterner *types.Interner) *BorrowAnalyzer {
	return &BorrowAnalyzer{sink: sink, types: typeInterner}
}

// AnalyzeFunction walks body with a fresh borrow set and returns the
// number of violations it raised.
func (b *BorrowAnalyzer) AnalyzeFunction(tree *ast.Tree, body ast.NodeID) int {
	before := 0
	if bag, ok := b.sink.(interface{ Len() int }); ok {
		before = bag.Len()
	}
	b.syms = symbols.NewTable()
	b.set = NewBorrowSet()
	b.borrower = make(map[string]borrowerInfo)
	b.walk(tree, body)
	after := 0
	if bag, ok := b.sink.(interface{ Len() int }); ok {
		after = bag.Len()
	}
	return after - before
}

// walk is the single depth-first traversal driving both borrow creation and
// write-legality checks, covering every node kind the walk is specified
// over and continuing across sibling chains.
func (b *BorrowAnalyzer) walk(tree *ast.Tree, id ast.NodeID) {
	for id != ast.NoNodeID {
		n := tree.Node(id)
		switch n.Kind {
		case ast.KindRoot:
			b.walk(tree, n.FirstChild())
		case ast.KindBlock:
			b.set.EnterScope()
			b.walk(tree, n.FirstChild())
			b.set.ExitScope()
		case ast.KindFunction, ast.KindTest:
			savedSet, savedSyms, savedBorrower := b.set, b.syms, b.borrower
			b.set = NewBorrowSet()
			b.syms = symbols.NewTable()
			b.borrower = make(map[string]borrowerInfo)
			b.walk(tree, n.Body())
			b.set, b.syms, b.borrower = savedSet, savedSyms, savedBorrower
		case ast.KindVarDecl:
			b.walkVarDecl(tree, n)
		case ast.KindBinary:
			b.walkBinary(tree, n)
		case ast.KindIf:
			b.walk(tree, n.Cond())
			preSnapshot := append([]BorrowEntry(nil), b.set.entries...)
			preDepth := b.set.depth

			b.set.EnterScope()
			b.walk(tree, n.Then())
			b.set.ExitScope()
			thenEntries := append([]BorrowEntry(nil), b.set.entries...)

			b.set.entries = append([]BorrowEntry(nil), preSnapshot...)
			b.set.depth = preDepth
			if n.Else() != ast.NoNodeID {
				b.set.EnterScope()
				b.walk(tree, n.Else())
				b.set.ExitScope()
			}
			// Merge: keep the stricter (union) view of both arms so a
			// reader who only sees one branch still gets the safety check
			// the other would have required.
			b.set.entries = mergeBorrowEntries(preSnapshot, thenEntries, b.set.entries)
		case ast.KindWhile:
			b.walk(tree, n.Cond())
			b.set.EnterScope()
			b.walk(tree, n.Body())
			b.set.ExitScope()
		case ast.KindFor:
			b.set.EnterScope()
			b.walk(tree, n.Init())
			b.walk(tree, n.ForCond())
			b.walk(tree, n.ForBody())
			b.walk(tree, n.ForStep())
			b.set.ExitScope()
		case ast.KindLoop:
			b.set.EnterScope()
			b.walk(tree, n.Body())
			b.set.ExitScope()
		case ast.KindReturn:
			if n.Value() != ast.NoNodeID {
				b.walk(tree, n.Value())
			}
		case ast.KindCall:
			b.walk(tree, n.Callee())
			for _, arg := range n.Args {
				b.walk(tree, arg)
			}
		case ast.KindUnary:
			b.walk(tree, n.Operand())
		case ast.KindMatch:
			b.walk(tree, n.Scrutinee())
			for _, c := range n.Cases {
				caseNode := tree.Node(c)
				b.set.EnterScope()
				b.walk(tree, caseNode.Body())
				b.set.ExitScope()
			}
		case ast.KindMatchCase:
			b.walk(tree, n.Body())
		default:
			// VarRef and other leaf expressions are not themselves borrow
			// events.
		}
		id = n.Next
	}
}

// mergeBorrowEntries unions the then-arm and else-arm borrow views on top
// of the pre-branch baseline, so the merged state reflects the stricter of
// the two arms per the union-of-entries policy.
func mergeBorrowEntries(pre, thenEntries, elseEntries []BorrowEntry) []BorrowEntry {
	seen := make(map[BorrowEntry]bool, len(pre)+len(thenEntries)+len(elseEntries))
	var merged []BorrowEntry
	add := func(entries []BorrowEntry) {
		for _, e := range entries {
			if !seen[e] {
				seen[e] = true
				merged = append(merged, e)
			}
		}
	}
	add(pre)
	add(thenEntries)
	add(elseEntries)
	return merged
}

// walkVarDecl registers a borrow entry when the initializer is a bare
// `&name` / `&mut name`, reading mutability off the declared reference
// type rather than the operator token.
func (b *BorrowAnalyzer) walkVarDecl(tree *ast.Tree, n *ast.Node) {
	b.syms.Declare(n.Name, n.DeclType)
	if n.Init() == ast.NoNodeID {
		return
	}
	if refNode, ok := isRefBorrow(tree, n.Init()); ok {
		if operand, ok := isVarRef(tree, refNode.Operand()); ok {
			declaredType, _ := b.types.Lookup(n.DeclType)
			mutable := declaredType.Mutable
			if b.set.TryBorrow(b.sink, operand.Name, n.Name, mutable, n.Pos) {
				b.borrower[n.Name] = borrowerInfo{borrowedName: operand.Name, mutable: mutable}
			}
			return
		}
	}
	b.walk(tree, n.Init())
}

// walkBinary handles the assignment checks: both operands are walked
// first, then (for `=`) the target is checked against deref-write and
// direct-write-to-borrowed rules.
func (b *BorrowAnalyzer) walkBinary(tree *ast.Tree, n *ast.Node) {
	b.walk(tree, n.LHS())
	b.walk(tree, n.RHS())
	if n.Op != "=" {
		return
	}
	lhs := tree.Node(n.LHS())
	if lhs == nil {
		return
	}
	switch lhs.Kind {
	case ast.KindUnary:
		if lhs.Op != "*" {
			return
		}
		operand, ok := isVarRef(tree, lhs.Operand())
		if !ok {
			return
		}
		info, known := b.borrower[operand.Name]
		if known && !info.mutable {
			b.sink.Report(diag.BorrowWriteThroughImmRef, n.Pos,
				"Cannot assign through immutable reference '"+operand.Name+"' (use &mut for mutable borrow)")
		}
	case ast.KindVarRef:
		if _, borrowed := b.set.IsBorrowed(lhs.Name); borrowed {
			b.sink.Report(diag.BorrowAssignWhileBorrowed, n.Pos,
				"Cannot assign to '"+lhs.Name+"' while it is borrowed")
		}
	}
}
