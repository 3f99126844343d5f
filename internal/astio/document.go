// Package astio decodes the JSON-encoded AST documents the analysis core
// takes as input. Lexing, parsing, and full type checking are out of scope
// for this toolchain slice, so the typed tree a front end would have
// produced is handed to the analyzers as data instead.
package astio

// Document is one file's serialized AST plus the trait facts the move
// analyzer needs about struct types it never defines itself.
type Document struct {
	File      string       `json:"file"`
	Traits    TraitsDoc    `json:"traits"`
	Functions []FunctionDoc `json:"functions"`
}

// TraitsDoc lists the Copy/Drop impls and known struct definitions visible
// to this file, the serialized form of a traits.Registry.
type TraitsDoc struct {
	CopyImpls []string `json:"copy_impls"`
	DropImpls []string `json:"drop_impls"`
	Structs   []string `json:"structs"`
}

// FunctionDoc is one function or test declaration.
type FunctionDoc struct {
	Name string   `json:"name"`
	Line uint32   `json:"line"`
	Test bool     `json:"test,omitempty"`
	Body *NodeDoc `json:"body"`
}

// TypeDoc is the serialized form of a types.Type.
type TypeDoc struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name,omitempty"`
	Inner  *TypeDoc `json:"inner,omitempty"`
	Opaque bool     `json:"opaque,omitempty"`
	Mut    bool     `json:"mut,omitempty"`
}

// NodeDoc is the serialized form of one ast.Node. Only the fields relevant
// to Kind are populated by the emitter; the rest are left zero.
type NodeDoc struct {
	Kind string `json:"kind"`
	Line uint32 `json:"line"`

	Name     string   `json:"name,omitempty"`
	Op       string   `json:"op,omitempty"`
	DeclType *TypeDoc `json:"decl_type,omitempty"`

	Stmts []*NodeDoc `json:"stmts,omitempty"`

	Init *NodeDoc `json:"init,omitempty"`

	LHS     *NodeDoc `json:"lhs,omitempty"`
	RHS     *NodeDoc `json:"rhs,omitempty"`
	Operand *NodeDoc `json:"operand,omitempty"`

	Cond *NodeDoc `json:"cond,omitempty"`
	Then *NodeDoc `json:"then,omitempty"`
	Else *NodeDoc `json:"else,omitempty"`

	ForInit *NodeDoc `json:"for_init,omitempty"`
	ForCond *NodeDoc `json:"for_cond,omitempty"`
	ForStep *NodeDoc `json:"for_step,omitempty"`
	ForBody *NodeDoc `json:"for_body,omitempty"`

	Body *NodeDoc `json:"body,omitempty"`

	Callee *NodeDoc   `json:"callee,omitempty"`
	Args   []*NodeDoc `json:"args,omitempty"`

	Value     *NodeDoc `json:"value,omitempty"`
	Scrutinee *NodeDoc `json:"scrutinee,omitempty"`
	Cases     []*NodeDoc `json:"cases,omitempty"`
}
