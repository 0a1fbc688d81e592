// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package script

import "strings"

// CharacterView exposes the six vitals an expression may reference as
// char.<name>. Implemented by internal/simulation.Character.
type CharacterView interface {
	Vital(name string) (float64, bool)
}

// WorldView exposes shelter stats and inventory queries. Implemented by
// internal/simulation.World.
type WorldView interface {
	Shelter(name string) (float64, bool)
	Stock(item string) float64
	Has(item string) float64
	Cond(item string) float64
}

// Context is the evaluation context threaded through Eval: pointers to the
// acting character and world, the current day/tick/breach state, and a
// local-variable table scoped to a single scheduling pass. Context is
// re-created for every scheduling call; its Locals must never be reused
// across ticks or across agents (see simulation's scheduler).
type Context struct {
	Char           CharacterView
	World          WorldView
	Day            int
	Tick           int
	BreachLevel    int
	EventBreach    bool
	EventOvernight bool
	Locals         map[string]float64
}

func (c *Context) local(name string) (float64, bool) {
	if c.Locals == nil {
		return 0, false
	}
	v, ok := c.Locals[name]
	return v, ok
}

// Eval is a pure function from (context, expression) to a float64. It is a
// single switch over the AST tag, with no dispatch hierarchy per node
// type, mirroring the teacher's evalCondition.
func Eval(ctx *Context, e Expr) float64 {
	switch n := e.(type) {
	case *NumberLit:
		return n.Value
	case *BoolLit:
		if n.Value {
			return 1
		}
		return 0
	case *StringLit:
		// A string literal evaluated outside a call context is 0.
		return 0
	case *VarRef:
		return resolveVar(ctx, strings.Join(n.Path, "."))
	case *Call:
		return evalCall(ctx, n)
	case *Unary:
		v := Eval(ctx, n.Operand)
		switch n.Op {
		case UnaryNeg:
			return -v
		case UnaryNot:
			if v == 0 {
				return 1
			}
			return 0
		}
		return 0
	case *Binary:
		return evalBinary(ctx, n)
	default:
		return 0
	}
}

func evalBinary(ctx *Context, n *Binary) float64 {
	// and/or do not short-circuit: both sides are always evaluated.
	l := Eval(ctx, n.Left)
	r := Eval(ctx, n.Right)
	switch n.Op {
	case OpOr:
		if l != 0 || r != 0 {
			return 1
		}
		return 0
	case OpAnd:
		if l != 0 && r != 0 {
			return 1
		}
		return 0
	case OpEq:
		return boolF(l == r)
	case OpNeq:
		return boolF(l != r)
	case OpLt:
		return boolF(l < r)
	case OpLte:
		return boolF(l <= r)
	case OpGt:
		return boolF(l > r)
	case OpGte:
		return boolF(l >= r)
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpMul:
		return l * r
	case OpDiv:
		if r == 0 {
			return 0
		}
		return l / r
	default:
		return 0
	}
}

func boolF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// evalCall resolves the four built-ins. Per spec, each takes exactly one
// string-literal argument; any other call name, arity, or argument shape
// evaluates to 0.
func evalCall(ctx *Context, n *Call) float64 {
	if len(n.Args) != 1 {
		return 0
	}
	lit, ok := n.Args[0].(*StringLit)
	if !ok {
		return 0
	}
	arg := lit.Value
	switch n.Name {
	case "stock":
		if ctx.World == nil {
			return 0
		}
		return ctx.World.Stock(arg)
	case "has":
		if ctx.World == nil {
			return 0
		}
		return ctx.World.Has(arg)
	case "cond":
		if ctx.World == nil {
			return 0
		}
		return ctx.World.Cond(arg)
	case "event":
		switch arg {
		case "breach":
			return boolF(ctx.EventBreach)
		case "overnight_threat_check":
			return boolF(ctx.EventOvernight)
		default:
			return 0
		}
	default:
		return 0
	}
}

// resolveVar implements the documented resolution order: local `let`
// table -> special names -> character vital -> shelter field -> 0.
func resolveVar(ctx *Context, name string) float64 {
	if v, ok := ctx.local(name); ok {
		return v
	}
	switch name {
	case "tick":
		return float64(ctx.Tick)
	case "day":
		return float64(ctx.Day)
	case "breach.level":
		return float64(ctx.BreachLevel)
	}
	if rest, ok := strings.CutPrefix(name, "char."); ok && ctx.Char != nil {
		if v, ok := ctx.Char.Vital(rest); ok {
			return v
		}
	}
	if rest, ok := strings.CutPrefix(name, "shelter."); ok && ctx.World != nil {
		if v, ok := ctx.World.Shelter(rest); ok {
			return v
		}
	}
	return 0
}
