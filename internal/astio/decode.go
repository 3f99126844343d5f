package astio

import (
	"encoding/json"
	"fmt"
	"io"

	"zenc/internal/ast"
	"zenc/internal/source"
	"zenc/internal/traits"
	"zenc/internal/types"
)

// Decoded is one file's AST plus the supporting tables the analyses read
// alongside it.
type Decoded struct {
	File      string
	Tree      *ast.Tree
	Types     *types.Interner
	Traits    *traits.Registry
	Functions []DecodedFunction
}

// FileName returns the document's source file name, or "<input>" if the
// document didn't carry one.
func (d *Decoded) FileName() string {
	if d.File == "" {
		return "<input>"
	}
	return d.File
}

// DecodedFunction is one function ready for analysis.
type DecodedFunction struct {
	Name string
	Test bool
	Body ast.NodeID
}

// Decode reads one JSON AST document from r.
func Decode(r io.Reader) (*Decoded, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode ast document: %w", err)
	}
	return build(&doc)
}

func build(doc *Document) (*Decoded, error) {
	typeInterner := types.NewInterner()
	builder := ast.NewBuilder(typeInterner)
	registry := traits.NewRegistry()

	for _, name := range doc.Traits.CopyImpls {
		registry.DeclareImpl("Copy", name)
	}
	for _, name := range doc.Traits.DropImpls {
		registry.DeclareImpl("Drop", name)
	}
	for _, name := range doc.Traits.Structs {
		registry.DeclareStruct(name)
	}

	d := &Decoded{File: doc.File, Tree: builder.Tree, Types: typeInterner, Traits: registry}
	for _, fn := range doc.Functions {
		body, err := decodeNode(builder, fn.Body)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", fn.Name, err)
		}
		if fn.Test {
			builder.NewTest(pos(fn.Line), fn.Name, body)
		} else {
			builder.NewFunction(pos(fn.Line), fn.Name, body)
		}
		d.Functions = append(d.Functions, DecodedFunction{Name: fn.Name, Test: fn.Test, Body: body})
	}
	return d, nil
}

func pos(line uint32) source.Pos {
	return source.Pos{Line: line, Col: 1}
}

func decodeType(builder *ast.Builder, t *TypeDoc) (types.TypeID, error) {
	if t == nil {
		return types.NoTypeID, nil
	}
	typ := types.Type{Name: t.Name, Opaque: t.Opaque, Mutable: t.Mut}
	switch t.Kind {
	case "int":
		typ.Kind = types.KindInt
	case "i8":
		typ.Kind = types.KindI8
	case "i16":
		typ.Kind = types.KindI16
	case "i32":
		typ.Kind = types.KindI32
	case "i64":
		typ.Kind = types.KindI64
	case "u8":
		typ.Kind = types.KindU8
	case "u16":
		typ.Kind = types.KindU16
	case "u32":
		typ.Kind = types.KindU32
	case "u64":
		typ.Kind = types.KindU64
	case "f32":
		typ.Kind = types.KindF32
	case "f64":
		typ.Kind = types.KindF64
	case "bool":
		typ.Kind = types.KindBool
	case "char":
		typ.Kind = types.KindChar
	case "void":
		typ.Kind = types.KindVoid
	case "pointer":
		typ.Kind = types.KindPointer
	case "function":
		typ.Kind = types.KindFunction
	case "enum":
		typ.Kind = types.KindEnum
	case "bitint":
		typ.Kind = types.KindBitInt
	case "ubitint":
		typ.Kind = types.KindUBitInt
	case "struct":
		typ.Kind = types.KindStruct
	case "array":
		typ.Kind = types.KindArray
		inner, err := decodeType(builder, t.Inner)
		if err != nil {
			return types.NoTypeID, err
		}
		typ.Inner = inner
	case "alias":
		typ.Kind = types.KindAlias
		inner, err := decodeType(builder, t.Inner)
		if err != nil {
			return types.NoTypeID, err
		}
		typ.Inner = inner
	case "ref":
		typ.Kind = types.KindRef
		inner, err := decodeType(builder, t.Inner)
		if err != nil {
			return types.NoTypeID, err
		}
		typ.Inner = inner
	case "ref_slice":
		typ.Kind = types.KindRefSlice
		inner, err := decodeType(builder, t.Inner)
		if err != nil {
			return types.NoTypeID, err
		}
		typ.Inner = inner
	default:
		return types.NoTypeID, fmt.Errorf("unknown type kind %q", t.Kind)
	}
	return builder.Types.Intern(typ), nil
}

// decodeNode converts one NodeDoc (and its subtree) into an ast.Node,
// recursing children-first so the arena allocation order matches a natural
// post-order build.
func decodeNode(builder *ast.Builder, n *NodeDoc) (ast.NodeID, error) {
	if n == nil {
		return ast.NoNodeID, nil
	}
	p := pos(n.Line)
	switch n.Kind {
	case "block":
		first, err := decodeStmtList(builder, n.Stmts)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewBlock(p, first), nil
	case "var_decl":
		declType, err := decodeType(builder, n.DeclType)
		if err != nil {
			return ast.NoNodeID, err
		}
		init, err := decodeNode(builder, n.Init)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewVarDecl(p, n.Name, declType, init), nil
	case "binary":
		lhs, err := decodeNode(builder, n.LHS)
		if err != nil {
			return ast.NoNodeID, err
		}
		rhs, err := decodeNode(builder, n.RHS)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewBinary(p, n.Op, lhs, rhs), nil
	case "unary":
		operand, err := decodeNode(builder, n.Operand)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewUnary(p, n.Op, operand), nil
	case "var_ref":
		return builder.NewVarRef(p, n.Name), nil
	case "call":
		callee, err := decodeNode(builder, n.Callee)
		if err != nil {
			return ast.NoNodeID, err
		}
		args, err := decodeNodeList(builder, n.Args)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewCall(p, callee, args), nil
	case "if":
		cond, err := decodeNode(builder, n.Cond)
		if err != nil {
			return ast.NoNodeID, err
		}
		then, err := decodeNode(builder, n.Then)
		if err != nil {
			return ast.NoNodeID, err
		}
		els, err := decodeNode(builder, n.Else)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewIf(p, cond, then, els), nil
	case "while":
		cond, err := decodeNode(builder, n.Cond)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := decodeNode(builder, n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewWhile(p, cond, body), nil
	case "for":
		init, err := decodeNode(builder, n.ForInit)
		if err != nil {
			return ast.NoNodeID, err
		}
		cond, err := decodeNode(builder, n.ForCond)
		if err != nil {
			return ast.NoNodeID, err
		}
		step, err := decodeNode(builder, n.ForStep)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := decodeNode(builder, n.ForBody)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewFor(p, init, cond, step, body), nil
	case "loop":
		body, err := decodeNode(builder, n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewLoop(p, body), nil
	case "return":
		value, err := decodeNode(builder, n.Value)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewReturn(p, value), nil
	case "match":
		scrutinee, err := decodeNode(builder, n.Scrutinee)
		if err != nil {
			return ast.NoNodeID, err
		}
		cases, err := decodeNodeList(builder, n.Cases)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewMatch(p, scrutinee, cases), nil
	case "match_case":
		body, err := decodeNode(builder, n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return builder.NewMatchCase(p, body), nil
	default:
		return ast.NoNodeID, fmt.Errorf("unknown node kind %q", n.Kind)
	}
}

func decodeNodeList(builder *ast.Builder, docs []*NodeDoc) ([]ast.NodeID, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	ids := make([]ast.NodeID, len(docs))
	for i, d := range docs {
		id, err := decodeNode(builder, d)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// decodeStmtList builds a sibling chain out of a statement list, returning
// the chain's first node.
func decodeStmtList(builder *ast.Builder, docs []*NodeDoc) (ast.NodeID, error) {
	var first, prev ast.NodeID
	for _, d := range docs {
		id, err := decodeNode(builder, d)
		if err != nil {
			return ast.NoNodeID, err
		}
		if id == ast.NoNodeID {
			continue
		}
		if first == ast.NoNodeID {
			first = id
		} else {
			builder.Link(prev, id)
		}
		prev = id
	}
	return first, nil
}
