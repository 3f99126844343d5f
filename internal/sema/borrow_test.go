package sema

import (
	"testing"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/testkit"
)

func runBorrow(t *testing.T, p *testkit.Program, body ast.NodeID) *diag.Bag {
	t.Helper()
	bag := diag.NewBag()
	NewBorrowAnalyzer(bag, p.Types).AnalyzeFunction(p.Tree, body)
	return bag
}

func TestBorrowDoubleMutable(t *testing.T) {
	p := testkit.NewProgram()
	intT := p.IntType()
	refMutT := p.RefType(intT, true)

	x := p.Let(1, "x", intT, nil0())
	a := p.Let(2, "a", refMutT, p.Ref(2, "x", true))
	b := p.Let(3, "b", refMutT, p.Ref(3, "x", true))
	body := p.Block(1, x, a, b)

	bag := runBorrow(t, p, body)
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", bag.Len(), bag.Items())
	}
	want := "Cannot borrow 'x' as mutable more than once at a time (previous mutable borrow at line 2)"
	if bag.Items()[0].Message != want {
		t.Fatalf("message = %q, want %q", bag.Items()[0].Message, want)
	}
}

func TestBorrowSharedThenMutable(t *testing.T) {
	p := testkit.NewProgram()
	intT := p.IntType()
	refT := p.RefType(intT, false)
	refMutT := p.RefType(intT, true)

	x := p.Let(1, "x", intT, nil0())
	r := p.Let(2, "r", refT, p.Ref(2, "x", false))
	m := p.Let(3, "m", refMutT, p.Ref(3, "x", true))
	body := p.Block(1, x, r, m)

	bag := runBorrow(t, p, body)
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	want := "Cannot borrow 'x' as mutable while it is borrowed as immutable (immutable borrow at line 2)"
	if bag.Items()[0].Message != want {
		t.Fatalf("message = %q, want %q", bag.Items()[0].Message, want)
	}
}

func TestBorrowTwoSharedAreFine(t *testing.T) {
	p := testkit.NewProgram()
	intT := p.IntType()
	refT := p.RefType(intT, false)

	x := p.Let(1, "x", intT, nil0())
	a := p.Let(2, "a", refT, p.Ref(2, "x", false))
	b := p.Let(3, "b", refT, p.Ref(3, "x", false))
	body := p.Block(1, x, a, b)

	bag := runBorrow(t, p, body)
	if bag.Len() != 0 {
		t.Fatalf("expected 0 diagnostics, got %d: %v", bag.Len(), bag.Items())
	}
}

func TestBorrowWriteThroughImmutableRef(t *testing.T) {
	p := testkit.NewProgram()
	intT := p.IntType()
	refT := p.RefType(intT, false)

	x := p.Let(1, "x", intT, nil0())
	r := p.Let(2, "r", refT, p.Ref(2, "x", false))
	write := p.Assign(3, p.Deref(3, "r"), p.NewVarRef(p.Pos(3), "five"))
	body := p.Block(1, x, r, write)

	bag := runBorrow(t, p, body)
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	want := "Cannot assign through immutable reference 'r' (use &mut for mutable borrow)"
	if bag.Items()[0].Message != want {
		t.Fatalf("message = %q, want %q", bag.Items()[0].Message, want)
	}
}

func TestBorrowWriteToBorrowedVariable(t *testing.T) {
	p := testkit.NewProgram()
	intT := p.IntType()
	refT := p.RefType(intT, false)

	x := p.Let(1, "x", intT, nil0())
	r := p.Let(2, "r", refT, p.Ref(2, "x", false))
	write := p.Assign(3, p.NewVarRef(p.Pos(3), "x"), p.NewVarRef(p.Pos(3), "seven"))
	body := p.Block(1, x, r, write)

	bag := runBorrow(t, p, body)
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	want := "Cannot assign to 'x' while it is borrowed"
	if bag.Items()[0].Message != want {
		t.Fatalf("message = %q, want %q", bag.Items()[0].Message, want)
	}
}

func TestBorrowReleasedOnScopeExit(t *testing.T) {
	p := testkit.NewProgram()
	intT := p.IntType()
	refMutT := p.RefType(intT, true)

	x := p.Let(1, "x", intT, nil0())
	inner := p.Block(2, p.Let(2, "r", refMutT, p.Ref(2, "x", true)))
	s := p.Let(3, "s", refMutT, p.Ref(3, "x", true))
	body := p.Block(1, x, inner, s)

	bag := runBorrow(t, p, body)
	if bag.Len() != 0 {
		t.Fatalf("expected 0 diagnostics after scope release, got %d: %v", bag.Len(), bag.Items())
	}
}

func TestBorrowFreeFunctionPasses(t *testing.T) {
	p := testkit.NewProgram()
	intT := p.IntType()
	body := p.Block(1, p.Let(1, "x", intT, nil0()), p.Let(2, "y", intT, nil0()))

	bag := runBorrow(t, p, body)
	if bag.Len() != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", bag.Len())
	}
}

func nil0() ast.NodeID { return ast.NoNodeID }
