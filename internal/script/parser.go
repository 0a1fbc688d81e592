// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package script

import (
	"github.com/alecthomas/participle/v2"
	"github.com/samber/oops"
)

var exprParser = participle.MustBuild[exprOr](
	participle.Lexer(Lexer),
	participle.UseLookahead(participle.MaxLookahead),
)

// ParseExprString parses a single standalone expression, primarily useful
// for tests and tools that want to evaluate a fragment in isolation.
func ParseExprString(src string) (Expr, error) {
	tree, err := exprParser.ParseString("", src)
	if err != nil {
		return nil, wrapParseError("", err)
	}
	return tree.build(), nil
}

var (
	characterParser = participle.MustBuild[CharacterFile](
		participle.Lexer(Lexer),
		participle.UseLookahead(participle.MaxLookahead),
	)
	worldParser = participle.MustBuild[WorldFile](
		participle.Lexer(Lexer),
		participle.UseLookahead(participle.MaxLookahead),
	)
	catalogParser = participle.MustBuild[CatalogFile](
		participle.Lexer(Lexer),
		participle.UseLookahead(participle.MaxLookahead),
	)
)

// ParseCharacter parses one character script. Per spec, tokens preceding
// the first `character "Name" { ... }` block are skipped rather than
// rejected, so the caller is expected to have already located that block
// (see internal/simulation's loader, which scans for the `character`
// keyword before handing the remainder to this function).
func ParseCharacter(filename string, src []byte) (*CharacterFile, error) {
	cf, err := characterParser.ParseBytes(filename, src)
	if err != nil {
		return nil, wrapParseError(filename, err)
	}
	return cf, nil
}

// ParseWorld parses a world file's full contents.
func ParseWorld(filename string, src []byte) (*WorldFile, error) {
	wf, err := worldParser.ParseBytes(filename, src)
	if err != nil {
		return nil, wrapParseError(filename, err)
	}
	return wf, nil
}

// ParseCatalog parses a task catalog file's full contents.
func ParseCatalog(filename string, src []byte) (*CatalogFile, error) {
	cf, err := catalogParser.ParseBytes(filename, src)
	if err != nil {
		return nil, wrapParseError(filename, err)
	}
	return cf, nil
}

func wrapParseError(filename string, err error) error {
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Position()
		return oops.Code("parse_error").
			With("file", filename).
			With("line", pos.Line).
			Errorf("%s:%d: %s", filename, pos.Line, perr.Message())
	}
	return oops.Code("parse_error").With("file", filename).Wrapf(err, "parsing %s", filename)
}

// Build folds a parsed expression's raw grammar tree into the flat
// Expr AST the evaluator consumes.
func (e *exprOr) Build() Expr { return e.build() }

// BuildStmts folds a parsed statement list's raw grammar tree into the
// flat Stmt AST the scheduler consumes.
func BuildStmts(raw []*rawStmt) []Stmt { return buildStmts(raw) }
