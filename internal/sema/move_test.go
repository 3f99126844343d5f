package sema

import (
	"testing"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/testkit"
	"zenc/internal/traits"
)

func runMove(t *testing.T, p *testkit.Program, registry *traits.Registry, policy Policy, body ast.NodeID) *diag.Bag {
	t.Helper()
	bag := diag.NewBag()
	NewMoveAnalyzer(bag, p.Types, registry, policy).AnalyzeFunction(p.Tree, body)
	return bag
}

func TestMoveUseAfterMove(t *testing.T) {
	p := testkit.NewProgram()
	sT := p.StructType("S")
	registry := traits.NewRegistry()
	registry.DeclareStruct("S")

	s := p.Let(1, "s", sT, p.Call(1, "make"))
	tDecl := p.Let(2, "t", sT, p.NewVarRef(p.Pos(2), "s"))
	use := p.Call(3, "use", "s")
	body := p.Block(1, s, tDecl, use)

	bag := runMove(t, p, registry, Policy{}, body)
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", bag.Len(), bag.Items())
	}
	want := "Use of moved value 's'"
	if bag.Items()[0].Message != want {
		t.Fatalf("message = %q, want %q", bag.Items()[0].Message, want)
	}
}

func TestMoveCopyTypeNeverMoved(t *testing.T) {
	p := testkit.NewProgram()
	intT := p.IntType()
	registry := traits.NewRegistry()

	a := p.Let(1, "a", intT, p.Call(1, "five"))
	b := p.Let(2, "b", intT, p.NewVarRef(p.Pos(2), "a"))
	use := p.Call(3, "use", "a")
	body := p.Block(1, a, b, use)

	bag := runMove(t, p, registry, Policy{}, body)
	if bag.Len() != 0 {
		t.Fatalf("expected 0 diagnostics for a Copy type, got %d: %v", bag.Len(), bag.Items())
	}
}

func TestMoveMergeProducesMaybeMoved(t *testing.T) {
	p := testkit.NewProgram()
	sT := p.StructType("S")
	registry := traits.NewRegistry()
	registry.DeclareStruct("S")

	s := p.Let(1, "s", sT, p.Call(1, "make"))
	consumeCall := p.Call(2, "consume", "s")
	ifNode := p.NewIf(p.Pos(2), p.NewVarRef(p.Pos(2), "cond"), p.Block(2, consumeCall), ast.NoNodeID)
	use := p.Call(3, "use", "s")
	body := p.Block(1, s, ifNode, use)

	bag := runMove(t, p, registry, Policy{}, body)
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic on the post-merge use, got %d: %v", bag.Len(), bag.Items())
	}
	want := "Use of moved value 's'"
	if bag.Items()[0].Message != want {
		t.Fatalf("message = %q, want %q", bag.Items()[0].Message, want)
	}
}

func TestMoveUnknownStructPermissiveByDefault(t *testing.T) {
	p := testkit.NewProgram()
	sT := p.StructType("Mystery")
	registry := traits.NewRegistry()

	s := p.Let(1, "s", sT, p.Call(1, "make"))
	tDecl := p.Let(2, "t", sT, p.NewVarRef(p.Pos(2), "s"))
	use := p.Call(3, "use", "s")
	body := p.Block(1, s, tDecl, use)

	bag := runMove(t, p, registry, Policy{StrictUnknownCopy: false}, body)
	if bag.Len() != 0 {
		t.Fatalf("expected permissive fallback to treat unknown struct as Copy, got %d diagnostics", bag.Len())
	}
}

func TestMoveUnknownStructStrictPolicy(t *testing.T) {
	p := testkit.NewProgram()
	sT := p.StructType("Mystery")
	registry := traits.NewRegistry()

	s := p.Let(1, "s", sT, p.Call(1, "make"))
	tDecl := p.Let(2, "t", sT, p.NewVarRef(p.Pos(2), "s"))
	use := p.Call(3, "use", "s")
	body := p.Block(1, s, tDecl, use)

	bag := runMove(t, p, registry, Policy{StrictUnknownCopy: true}, body)
	if bag.Len() != 1 {
		t.Fatalf("expected strict policy to flag the unknown struct as moved, got %d diagnostics", bag.Len())
	}
}

func TestMoveRenamingSymbolsPreservesDiagnosticCount(t *testing.T) {
	build := func(sName, tName, useName string) *diag.Bag {
		p := testkit.NewProgram()
		sT := p.StructType("S")
		registry := traits.NewRegistry()
		registry.DeclareStruct("S")

		s := p.Let(1, sName, sT, p.Call(1, "make"))
		tDecl := p.Let(2, tName, sT, p.NewVarRef(p.Pos(2), sName))
		use := p.Call(3, useName, sName)
		body := p.Block(1, s, tDecl, use)
		return runMove(t, p, registry, Policy{}, body)
	}

	original := build("s", "t", "use")
	renamed := build("alpha", "beta", "gamma")
	if original.Len() != renamed.Len() {
		t.Fatalf("renaming changed diagnostic count: %d vs %d", original.Len(), renamed.Len())
	}
}
