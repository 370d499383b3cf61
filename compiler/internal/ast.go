package internal

import (
	"bytes"
	"fmt"
	"strings"
)

// In this file, we defined the ast of the programa language. Unlike a tree of
// typed structs, every node shares one shape: a kind, an optional text value and
// ordered children. The meaning of Value depends on Kind:
// * ID, LITERAL: identifier name or literal text (string literals keep their quotes).
// * TIPO: declared type name, children are the declared ID nodes.
// * COMPARACION, OPERACION: the operator symbol, children are left and right operands.
// * PROGRAMA, BLOQUE, SI, ... : no value.
//
// Shapes built by the parser:
//
//	PROGRAMA   -> ID [DECLARACIONES] BLOQUE
//	DECLARACIONES -> TIPO*            TIPO -> ID+
//	BLOQUE     -> statement*
//	ASIGNACION -> ID VALOR(expr)
//	LEER       -> [ID]
//	ESCRIBIR   -> EXPR(expr)
//	SI         -> CONDICION(expr) BLOQUE_SI(BLOQUE) [BLOQUE_SINO(BLOQUE)]
//	MIENTRAS   -> CONDICION(expr) CUERPO(BLOQUE)
//	REPETIR    -> CUERPO(BLOQUE) CONDICION(expr)

type NodeKind int

const (
	ProgramNode NodeKind = iota
	IDNode
	DeclarationsNode
	TypeNode
	BlockNode
	ReadNode
	WriteNode
	ExprNode
	AssignNode
	ValueNode
	IfNode
	ConditionNode
	ThenBlockNode
	ElseBlockNode
	WhileNode
	BodyNode
	RepeatNode
	ComparisonNode
	OperationNode
	LiteralNode
	ErrorNode
)

var nodeKindNames = [...]string{
	ProgramNode:      "PROGRAMA",
	IDNode:           "ID",
	DeclarationsNode: "DECLARACIONES",
	TypeNode:         "TIPO",
	BlockNode:        "BLOQUE",
	ReadNode:         "LEER",
	WriteNode:        "ESCRIBIR",
	ExprNode:         "EXPR",
	AssignNode:       "ASIGNACION",
	ValueNode:        "VALOR",
	IfNode:           "SI",
	ConditionNode:    "CONDICION",
	ThenBlockNode:    "BLOQUE_SI",
	ElseBlockNode:    "BLOQUE_SINO",
	WhileNode:        "MIENTRAS",
	BodyNode:         "CUERPO",
	RepeatNode:       "REPETIR",
	ComparisonNode:   "COMPARACION",
	OperationNode:    "OPERACION",
	LiteralNode:      "LITERAL",
	ErrorNode:        "ERROR",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "DESCONOCIDO"
}

// isWrapper reports whether the node only groups a single child and carries no meaning by itself.
func (k NodeKind) isWrapper() bool {
	switch k {
	case ExprNode, ValueNode, ConditionNode, ThenBlockNode, ElseBlockNode, BodyNode:
		return true
	}
	return false
}

type Node struct {
	Kind     NodeKind
	Value    string
	Children []*Node
	// Position of the token the node was built from, -1 when unknown.
	Line   int
	Column int
}

func newNode(kind NodeKind, value string, children ...*Node) *Node {
	return &Node{Kind: kind, Value: value, Children: children, Line: -1, Column: -1}
}

func newTokenNode(kind NodeKind, token *Token) *Node {
	if token == nil {
		return newNode(kind, "")
	}
	return &Node{Kind: kind, Value: token.Lexeme, Line: token.Line, Column: token.Column}
}

// newErrorNode marks where parsing failed; it keeps the position but not the text of token.
func newErrorNode(token *Token) *Node {
	node := newNode(ErrorNode, "")
	if token != nil {
		node.Line, node.Column = token.Line, token.Column
	}
	return node
}

func (node *Node) add(children ...*Node) *Node {
	node.Children = append(node.Children, children...)
	return node
}

// Child returns the i-th child or nil.
func (node *Node) Child(i int) *Node {
	if node == nil || i < 0 || i >= len(node.Children) {
		return nil
	}
	return node.Children[i]
}

// Unwrap skips wrapper nodes (EXPR, VALOR, CONDICION, ...) down to the node they hold.
func (node *Node) Unwrap() *Node {
	for node != nil && node.Kind.isWrapper() && len(node.Children) == 1 {
		node = node.Children[0]
	}
	return node
}

// Contains reports whether a node of the given kind appears in the tree.
func (node *Node) Contains(kind NodeKind) bool {
	if node == nil {
		return false
	}
	if node.Kind == kind {
		return true
	}
	for _, child := range node.Children {
		if child.Contains(kind) {
			return true
		}
	}
	return false
}

// String renders the tree one node per line, children indented by two spaces.
//
//	PROGRAMA
//	  ID prueba@
//	  BLOQUE
//	    ASIGNACION
func (node *Node) String() string {
	buf := &bytes.Buffer{}
	node.print(buf, 0)
	return buf.String()
}

func (node *Node) print(buf *bytes.Buffer, depth int) {
	if node == nil {
		return
	}
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString(node.Kind.String())
	if node.Value != "" {
		fmt.Fprintf(buf, " %s", node.Value)
	}
	buf.WriteByte('\n')
	for _, child := range node.Children {
		child.print(buf, depth+1)
	}
}
