// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package script

import "strconv"

// grammar.go holds the raw participle parse tree: one struct per
// precedence level, following the same @@ (OP @@)* repetition idiom the
// teacher's internal/access/policy/dsl/ast.go uses for its
// ConditionBlock -> Conjunction -> Comparison chain, generalized from
// three levels to six and closed under arithmetic instead of boolean
// algebra. Each level folds down into the flat Expr union in ast.go via
// its build method, so the rest of the package never has to walk the
// wrapper types.

type exprOr struct {
	Left *exprAnd   `parser:"@@"`
	Rest []*orTail  `parser:"@@*"`
}
type orTail struct {
	Right *exprAnd `parser:"'or' @@"`
}

type exprAnd struct {
	Left *exprCmp   `parser:"@@"`
	Rest []*andTail `parser:"@@*"`
}
type andTail struct {
	Right *exprCmp `parser:"'and' @@"`
}

type exprCmp struct {
	Left *exprAdd   `parser:"@@"`
	Rest []*cmpTail `parser:"@@*"`
}
type cmpTail struct {
	Op    string   `parser:"@( '==' | '!=' | '<=' | '>=' | '<' | '>' )"`
	Right *exprAdd `parser:"@@"`
}

type exprAdd struct {
	Left *exprMul   `parser:"@@"`
	Rest []*addTail `parser:"@@*"`
}
type addTail struct {
	Op    string   `parser:"@( '+' | '-' )"`
	Right *exprMul `parser:"@@"`
}

type exprMul struct {
	Left *exprUnary `parser:"@@"`
	Rest []*mulTail `parser:"@@*"`
}
type mulTail struct {
	Op    string     `parser:"@( '*' | '/' )"`
	Right *exprUnary `parser:"@@"`
}

type exprUnary struct {
	Not     *exprUnary   `parser:"(  'not' @@"`
	Neg     *exprUnary   `parser:" | '-' @@"`
	True    bool         `parser:" | @'true'"`
	False   bool         `parser:" | @'false'"`
	Primary *exprPrimary `parser:" | @@ )"`
}

type exprPrimary struct {
	Number   *string      `parser:"(  @Number"`
	Percent  *string      `parser:" | @Percent"`
	Duration *string      `parser:" | @Duration"`
	Str      *string      `parser:" | @String"`
	Call     *exprCall    `parser:" | @@"`
	Dotted   *exprDotted  `parser:" | @@"`
	Var      *string      `parser:" | @Ident"`
	Paren    *exprOr      `parser:" | '(' @@ ')' )"`
}

type exprCall struct {
	Name string    `parser:"@Ident '('"`
	Args []*exprOr `parser:"(@@ (',' @@)*)? ')'"`
}

type exprDotted struct {
	Base string   `parser:"@Ident"`
	Rest []string `parser:"('.' @Ident)+"`
}

// --- fold: raw parse tree -> flat Expr union ---

func (e *exprOr) build() Expr {
	left := e.Left.build()
	for _, t := range e.Rest {
		left = &Binary{Op: OpOr, Left: left, Right: t.Right.build()}
	}
	return left
}

func (e *exprAnd) build() Expr {
	left := e.Left.build()
	for _, t := range e.Rest {
		left = &Binary{Op: OpAnd, Left: left, Right: t.Right.build()}
	}
	return left
}

func (e *exprCmp) build() Expr {
	left := e.Left.build()
	for _, t := range e.Rest {
		left = &Binary{Op: cmpOp(t.Op), Left: left, Right: t.Right.build()}
	}
	return left
}

func cmpOp(s string) BinaryOp {
	switch s {
	case "==":
		return OpEq
	case "!=":
		return OpNeq
	case "<":
		return OpLt
	case "<=":
		return OpLte
	case ">":
		return OpGt
	default:
		return OpGte
	}
}

func (e *exprAdd) build() Expr {
	left := e.Left.build()
	for _, t := range e.Rest {
		op := OpAdd
		if t.Op == "-" {
			op = OpSub
		}
		left = &Binary{Op: op, Left: left, Right: t.Right.build()}
	}
	return left
}

func (e *exprMul) build() Expr {
	left := e.Left.build()
	for _, t := range e.Rest {
		op := OpMul
		if t.Op == "/" {
			op = OpDiv
		}
		left = &Binary{Op: op, Left: left, Right: t.Right.build()}
	}
	return left
}

func (e *exprUnary) build() Expr {
	switch {
	case e.Not != nil:
		return &Unary{Op: UnaryNot, Operand: e.Not.build()}
	case e.Neg != nil:
		return &Unary{Op: UnaryNeg, Operand: e.Neg.build()}
	case e.True:
		return &BoolLit{Value: true}
	case e.False:
		return &BoolLit{Value: false}
	default:
		return e.Primary.build()
	}
}

func (e *exprPrimary) build() Expr {
	switch {
	case e.Number != nil:
		return &NumberLit{Value: parseFloat(*e.Number)}
	case e.Percent != nil:
		return &NumberLit{Value: parseFloat(*e.Percent)}
	case e.Duration != nil:
		return &NumberLit{Value: parseFloat(*e.Duration)}
	case e.Str != nil:
		return &StringLit{Value: *e.Str}
	case e.Call != nil:
		args := make([]Expr, len(e.Call.Args))
		for i, a := range e.Call.Args {
			args[i] = a.build()
		}
		return &Call{Name: e.Call.Name, Args: args}
	case e.Dotted != nil:
		path := append([]string{e.Dotted.Base}, e.Dotted.Rest...)
		return &VarRef{Path: path}
	case e.Var != nil:
		return &VarRef{Path: []string{*e.Var}}
	default:
		return e.Paren.build()
	}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
