// Package ast defines the typed syntax tree the parser produces and the
// evaluator walks.
package ast

import "github.com/mikenno/modelgen/internal/token"

// Kind is the closed set of AST node kinds named in the specification.
type Kind int

const (
	Invalid Kind = iota
	Nop

	Module
	Block

	Name
	NullLit
	IntegerLit
	FloatLit
	StringLit
	TupleLit
	ListLit
	MapLit
	Range

	Call
	Subscript
	Attribute
	As

	Assign
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignIntDiv
	AssignMod

	BinAdd
	BinSub
	BinMul
	BinDiv
	BinIntDiv
	BinMod
	BinEq
	BinNotEq
	BinLess
	BinLessEq
	BinGreater
	BinGreaterEq
	BinAnd
	BinOr
	BinCoalesce
	BinConditional

	TernaryConditional

	UnaryPos
	UnaryNeg
	UnaryNot

	For
	While
	Break
	Continue
	If

	Function
	Procedure
	Return

	Emit
	Delete
	ImportStmt
	ImportFrom
	Assert
)

var kindNames = map[Kind]string{
	Invalid: "Invalid", Nop: "Nop", Module: "Module", Block: "Block",
	Name: "Name", NullLit: "Null", IntegerLit: "Integer", FloatLit: "Float",
	StringLit: "String", TupleLit: "Tuple", ListLit: "List", MapLit: "Map",
	Range: "Range", Call: "Call", Subscript: "Subscript", Attribute: "Attribute",
	As: "As", Assign: "Assign", AssignAdd: "AssignAdd", AssignSub: "AssignSub",
	AssignMul: "AssignMul", AssignDiv: "AssignDiv", AssignIntDiv: "AssignIntDiv",
	AssignMod: "AssignMod", BinAdd: "Add", BinSub: "Sub", BinMul: "Mul",
	BinDiv: "Div", BinIntDiv: "IntDiv", BinMod: "Mod", BinEq: "Eq",
	BinNotEq: "NotEq", BinLess: "Less", BinLessEq: "LessEq", BinGreater: "Greater",
	BinGreaterEq: "GreaterEq", BinAnd: "And", BinOr: "Or", BinCoalesce: "Coalesce",
	BinConditional: "Conditional",
	TernaryConditional: "TernaryConditional", UnaryPos: "Pos", UnaryNeg: "Neg",
	UnaryNot: "Not", For: "For", While: "While", Break: "Break", Continue: "Continue",
	If: "If", Function: "Function", Procedure: "Procedure", Return: "Return",
	Emit: "Emit", Delete: "Delete", ImportStmt: "Import", ImportFrom: "ImportFrom",
	Assert: "Assert",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Node is one AST element. Its meaning and the number/order of its children
// depend on Kind; see the parser for the shape each kind produces.
type Node struct {
	Kind  Kind
	Token token.Token // primary token (operator, keyword, or literal token)

	First token.Token // first token of the node's span
	Last  token.Token // last token of the node's span

	Children []*Node

	// Ident carries the decoded name for Name/Attribute/As/parameter nodes.
	Ident string

	// Int/Float/Str carry decoded literal payloads for the matching leaf kinds.
	Int   int32
	Float float32
	Str   string

	// Params is populated on Function/Procedure nodes: one entry per
	// declared parameter, in order.
	Params []Param
}

// Param is a single function/procedure parameter: a name plus an optional
// default-value expression (nil if required).
type Param struct {
	Name    string
	Default *Node
}

// Span returns the begin/end source positions the node covers.
func (n *Node) Span() (token.Position, token.Position) {
	return n.First.Begin, n.Last.End
}

// Walk traverses the tree in depth-first order, calling enter on entry and
// exit on leaving each node (either may be nil).
func (n *Node) Walk(enter func(*Node) bool, exit func(*Node)) {
	if n == nil {
		return
	}
	if enter != nil && !enter(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(enter, exit)
	}
	if exit != nil {
		exit(n)
	}
}

// New creates a node of the given kind for tok. With no children the node
// spans tok alone; otherwise it spans from its first child's first token to
// its last child's last token.
func New(kind Kind, tok token.Token, children ...*Node) *Node {
	n := &Node{Kind: kind, Token: tok, First: tok, Last: tok, Children: children}
	if len(children) > 0 {
		n.First = children[0].First
		n.Last = children[len(children)-1].Last
	}
	return n
}
