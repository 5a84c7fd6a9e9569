package ast

import "strconv"

type TokenKind string

const (
	TokenLiteral   TokenKind = "Literal"
	TokenVariable  TokenKind = "Variable"
	TokenProcedure TokenKind = "Procedure"
	TokenKeyword   TokenKind = "Keyword"
	TokenSymbol    TokenKind = "Symbol"
)

// Token is a classified word. Tokens are immutable; bindings live in the runtime.
type Token interface {
	Kind() TokenKind
	String() string
	isToken()
}

// Literal is a natural-number constant.
type Literal struct {
	Value uint64 `json:"value"`
}

func NewLiteral(value uint64) *Literal {
	return &Literal{Value: value}
}

func (*Literal) isToken()         {}
func (*Literal) Kind() TokenKind  { return TokenLiteral }
func (l *Literal) String() string { return strconv.FormatUint(l.Value, 10) }

// Variable names a binding. Whether it is bound is decided when it is consumed.
type Variable struct {
	Name string `json:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{Name: name}
}

func (*Variable) isToken()         {}
func (*Variable) Kind() TokenKind  { return TokenVariable }
func (v *Variable) String() string { return v.Name }

// ProcedureRef refers to a procedure by name; the procedure table is consulted at call time.
type ProcedureRef struct {
	Name string `json:"name"`
}

func NewProcedureRef(name string) *ProcedureRef {
	return &ProcedureRef{Name: name}
}

func (*ProcedureRef) isToken()         {}
func (*ProcedureRef) Kind() TokenKind  { return TokenProcedure }
func (p *ProcedureRef) String() string { return p.Name }

type Keyword struct {
	Word string `json:"word"`
}

func NewKeyword(word string) *Keyword {
	return &Keyword{Word: word}
}

func (*Keyword) isToken()         {}
func (*Keyword) Kind() TokenKind  { return TokenKeyword }
func (k *Keyword) String() string { return k.Word }

type Symbol struct {
	Op Operator `json:"op"`
}

func NewSymbol(op Operator) *Symbol {
	return &Symbol{Op: op}
}

func (*Symbol) isToken()         {}
func (*Symbol) Kind() TokenKind  { return TokenSymbol }
func (s *Symbol) String() string { return string(s.Op) }

// Keywords.
const (
	KeywordDef  = "Def"
	KeywordAs   = "As"
	KeywordExit = "Exit"
	KeywordIf   = "If"
	KeywordThen = "Then"
	KeywordElse = "Else"
)

var keywords = map[string]struct{}{
	KeywordDef:  {},
	KeywordAs:   {},
	KeywordExit: {},
	KeywordIf:   {},
	KeywordThen: {},
	KeywordElse: {},
}

// IsKeyword reports whether word is a reserved keyword.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

type Operator string

const (
	OpAdd          Operator = "+"
	OpSub          Operator = "-"
	OpMul          Operator = "*"
	OpDiv          Operator = "/"
	OpMod          Operator = "%"
	OpAssign       Operator = "="
	OpArrow        Operator = "=>"
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpAnd          Operator = "&&"
	OpOr           Operator = "||"
	OpNot          Operator = "!"
)

var operatorArity = map[Operator]int{
	OpAdd:          2,
	OpSub:          2,
	OpMul:          2,
	OpDiv:          2,
	OpMod:          2,
	OpAssign:       2,
	OpArrow:        0,
	OpEqual:        2,
	OpNotEqual:     2,
	OpGreater:      2,
	OpGreaterEqual: 2,
	OpLess:         2,
	OpLessEqual:    2,
	OpAnd:          2,
	OpOr:           2,
	OpNot:          1,
}

// LookupOperator maps a word onto the closed symbol set.
func LookupOperator(word string) (Operator, bool) {
	op := Operator(word)
	_, ok := operatorArity[op]
	return op, ok
}

// Arity is the number of operands the operator consumes. The arrow is never evaluated.
func (o Operator) Arity() int {
	return operatorArity[o]
}
