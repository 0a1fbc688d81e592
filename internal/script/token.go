// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package script

import "github.com/alecthomas/participle/v2/lexer"

// Token types for the shared lexer used by the character, world, and
// catalog dialects. Unlike a lexer.MustSimple table, suffix resolution for
// numeric tokens (plain number vs percent vs tick-duration) is context
// sensitive, so the token kinds are produced by a hand-written scanner
// (lexer.go) rather than an ordered regex table.
const (
	Ident lexer.TokenType = iota + 1
	String
	Number
	Percent
	Duration
	Punct
)

// symbols maps token type names to their lexer.TokenType, satisfying
// lexer.Definition.Symbols(). Names are used in error messages and by
// participle's internal bookkeeping.
var symbols = map[string]lexer.TokenType{
	"EOF":      lexer.EOF,
	"Ident":    Ident,
	"String":   String,
	"Number":   Number,
	"Percent":  Percent,
	"Duration": Duration,
	"Punct":    Punct,
}
