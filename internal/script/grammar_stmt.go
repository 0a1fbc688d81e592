// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package script

// grammar_stmt.go holds the raw statement grammar and its fold into the
// Stmt union, grounded on lb_parser_stmt.c's parse_stmt/parse_action_stmt.

type rawStmt struct {
	Let    *rawLet        `parser:"(  @@"`
	If     *rawIf         `parser:" | @@"`
	Action *rawActionStmt `parser:" | @@ ';' )"`
}

type rawLet struct {
	Name  string  `parser:"'let' @Ident '='"`
	Value *exprOr `parser:"@@ ';'"`
}

type rawIf struct {
	Cond *exprOr    `parser:"'if' @@ '{'"`
	Then []*rawStmt `parser:"@@* '}'"`
	Else *rawElse   `parser:"('else' @@)?"`
}

// rawElse is either a nested `else if` (parsed as a single if-statement)
// or a plain brace block, matching the original's "else-if becomes a
// nested statement in the else slot" desugaring (see DESIGN.md).
type rawElse struct {
	ElseIf *rawIf     `parser:"(  @@"`
	Block  []*rawStmt `parser:" | '{' @@* '}' )"`
}

type rawActionStmt struct {
	Task  *rawTask `parser:"(  @@"`
	Set   *rawSet  `parser:" | @@"`
	Yield bool     `parser:" | @'yield_tick'"`
	Stop  bool     `parser:" | @'stop_block' )"`
}

type rawTask struct {
	Name    string           `parser:"'task' @String"`
	Clauses []*rawTaskClause `parser:"@@*"`
}

// rawTaskClause tolerates the DSL clauses the simulation does not model
// in detail (using/requires/consumes/produces/when): using, requires,
// consumes and produces each accept a brace block, a bracket list, or a
// single expression, and when accepts a single expression; all of them are
// parsed-and-discarded, exactly mirroring parse_action_stmt's tolerant loop.
type rawTaskClause struct {
	For      *exprOr      `parser:"(  'for' @@"`
	Priority *exprOr      `parser:" | 'priority' @@"`
	UsingBlk *skipBlock   `parser:" | 'using' @@"`
	UsingLst *skipBracket `parser:" | 'using' @@"`
	UsingExp *exprOr      `parser:" | 'using' @@"`
	ReqBlk   *skipBlock   `parser:" | 'requires' @@"`
	ReqLst   *skipBracket `parser:" | 'requires' @@"`
	ReqExp   *exprOr      `parser:" | 'requires' @@"`
	ConsBlk  *skipBlock   `parser:" | 'consumes' @@"`
	ConsLst  *skipBracket `parser:" | 'consumes' @@"`
	ConsExp  *exprOr      `parser:" | 'consumes' @@"`
	ProdBlk  *skipBlock   `parser:" | 'produces' @@"`
	ProdLst  *skipBracket `parser:" | 'produces' @@"`
	ProdExp  *exprOr      `parser:" | 'produces' @@"`
	When     *exprOr      `parser:" | 'when' @@ )"`
}

type rawSet struct {
	Base  string   `parser:"'set' @Ident"`
	Rest  []string `parser:"('.' @Ident)*"`
	Value *exprOr  `parser:"'=' @@"`
}

// --- fold ---

func (r *rawStmt) build() Stmt {
	switch {
	case r.Let != nil:
		return &LetStmt{Name: r.Let.Name, Value: r.Let.Value.build()}
	case r.If != nil:
		return r.If.build()
	default:
		return r.Action.build()
	}
}

func buildStmts(raw []*rawStmt) []Stmt {
	out := make([]Stmt, len(raw))
	for i, r := range raw {
		out[i] = r.build()
	}
	return out
}

func (r *rawIf) build() Stmt {
	s := &IfStmt{Cond: r.Cond.build(), Then: buildStmts(r.Then)}
	if r.Else != nil {
		if r.Else.ElseIf != nil {
			s.Else = []Stmt{r.Else.ElseIf.build()}
		} else {
			s.Else = buildStmts(r.Else.Block)
		}
	}
	return s
}

func (r *rawActionStmt) build() Stmt {
	switch {
	case r.Task != nil:
		return r.Task.build()
	case r.Set != nil:
		return &SetStmt{Path: append([]string{r.Set.Base}, r.Set.Rest...), Value: r.Set.Value.build()}
	case r.Yield:
		return &YieldStmt{}
	default:
		return &StopStmt{}
	}
}

func (r *rawTask) build() Stmt {
	s := &TaskStmt{Name: r.Name}
	for _, c := range r.Clauses {
		switch {
		case c.For != nil:
			s.For = c.For.build()
		case c.Priority != nil:
			s.Priority = c.Priority.build()
		}
		// using/requires/consumes/produces/when clauses are parsed above
		// for their side effect of consuming tokens; the simulation does
		// not model resource flows in detail, so nothing else is kept.
	}
	return s
}
