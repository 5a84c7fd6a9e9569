package ast

import "strings"

type NodeType string

const (
	NodeEmptyStatement      NodeType = "EmptyStatement"
	NodeExitStatement       NodeType = "ExitStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeProcedureDefinition NodeType = "ProcedureDefinition"
	NodeConditional         NodeType = "Conditional"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Statement is one parsed line (or one branch / body of a line).
type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type EmptyStatement struct {
	nodeImpl
	statementMarker
}

func NewEmptyStatement() *EmptyStatement {
	return &EmptyStatement{nodeImpl: newNodeImpl(NodeEmptyStatement)}
}

type ExitStatement struct {
	nodeImpl
	statementMarker
}

func NewExitStatement() *ExitStatement {
	return &ExitStatement{nodeImpl: newNodeImpl(NodeExitStatement)}
}

// ExpressionStatement holds its tokens in evaluation order: the last element is
// the leftmost source word, so the evaluator drains the slice from its tail.
type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Tokens []Token `json:"tokens"`
}

func NewExpressionStatement(tokens []Token) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Tokens: tokens}
}

// Source renders the tokens back in source order.
func (e *ExpressionStatement) Source() string {
	words := make([]string, 0, len(e.Tokens))
	for i := len(e.Tokens) - 1; i >= 0; i-- {
		words = append(words, e.Tokens[i].String())
	}
	return strings.Join(words, " ")
}

type ProcedureDefinition struct {
	nodeImpl
	statementMarker

	Name   string    `json:"name"`
	Params []string  `json:"params"`
	Body   Statement `json:"body"`
}

func NewProcedureDefinition(name string, params []string, body Statement) *ProcedureDefinition {
	return &ProcedureDefinition{nodeImpl: newNodeImpl(NodeProcedureDefinition), Name: name, Params: params, Body: body}
}

// Conditional selects Then when Guard (if present) and Condition are both
// positive, Else otherwise. Only the selected branch is ever evaluated.
type Conditional struct {
	nodeImpl
	statementMarker

	Guard     *ExpressionStatement `json:"guard,omitempty"`
	Condition *ExpressionStatement `json:"condition"`
	Then      Statement            `json:"then"`
	Else      Statement            `json:"else"`
}

func NewConditional(guard, condition *ExpressionStatement, then, otherwise Statement) *Conditional {
	return &Conditional{nodeImpl: newNodeImpl(NodeConditional), Guard: guard, Condition: condition, Then: then, Else: otherwise}
}
