// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package script

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/samber/oops"
)

// Definition is the shared participle lexer.Definition for the character,
// world, and catalog dialects. Token resolution is context sensitive
// (suffix dispatch on number runs, raw string escapes) in a way a flat
// lexer.MustSimple rule table cannot express, so scanning is hand-written
// here and handed to participle one token at a time.
type Definition struct{}

var Lexer lexer.Definition = &Definition{}

func (*Definition) Symbols() map[string]lexer.TokenType { return symbols }

func (*Definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, oops.Code("io_error").With("file", filename).Wrapf(err, "reading script")
	}
	return &scanner{filename: filename, src: string(data), line: 1, col: 1}, nil
}

// scanner implements lexer.Lexer by hand, mirroring lb_lexer.c's
// lx_next_token byte-for-byte: whitespace/comment skipping, raw string
// escapes, embedded-dot-iff-digit-follows numbers, and the %/t/bare numeric
// suffix dispatch.
type scanner struct {
	filename string
	src      string
	pos      int
	line     int
	col      int
}

func (s *scanner) Next() (lexer.Token, error) {
	if err := s.skipTrivia(); err != nil {
		return lexer.Token{}, err
	}
	startLine, startCol := s.line, s.col
	pos := lexer.Position{Filename: s.filename, Offset: s.pos, Line: startLine, Column: startCol}

	if s.pos >= len(s.src) {
		return lexer.Token{Type: lexer.EOF, Value: "", Pos: pos}, nil
	}

	c := s.src[s.pos]

	switch {
	case isIdentStart(c):
		return s.scanIdent(pos), nil
	case c == '"':
		return s.scanString(pos)
	case isDigit(c):
		return s.scanNumber(pos)
	default:
		return s.scanPunct(pos)
	}
}

func (s *scanner) skipTrivia() error {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			s.advance()
		case c == '\n':
			s.advance()
		case c == '#':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.advance()
			}
		case c == '/' && s.peek(1) == '/':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.advance()
			}
		case c == '/' && s.peek(1) == '*':
			line, col := s.line, s.col
			s.advance()
			s.advance()
			closed := false
			for s.pos < len(s.src) {
				if s.src[s.pos] == '*' && s.peek(1) == '/' {
					s.advance()
					s.advance()
					closed = true
					break
				}
				s.advance()
			}
			if !closed {
				return oops.Code("lex_error").With("file", s.filename).With("line", line).With("column", col).
					Errorf("%s:%d: unterminated block comment", s.filename, line)
			}
		default:
			return nil
		}
	}
	return nil
}

func (s *scanner) peek(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

func (s *scanner) advance() {
	if s.src[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos++
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (s *scanner) scanIdent(pos lexer.Position) lexer.Token {
	start := s.pos
	for s.pos < len(s.src) && isIdentCont(s.src[s.pos]) {
		s.advance()
	}
	return lexer.Token{Type: Ident, Value: s.src[start:s.pos], Pos: pos}
}

// scanString preserves backslash escapes raw (no interpretation), matching
// lb_lexer.c's string scan: a closing quote must appear before EOF/newline,
// and a backslash simply escapes the following byte verbatim.
func (s *scanner) scanString(pos lexer.Position) (lexer.Token, error) {
	line := s.line
	s.advance() // opening quote
	var b strings.Builder
	for {
		if s.pos >= len(s.src) || s.src[s.pos] == '\n' {
			return lexer.Token{}, oops.Code("lex_error").With("file", s.filename).With("line", line).
				Errorf("%s:%d: unterminated string literal", s.filename, line)
		}
		c := s.src[s.pos]
		if c == '"' {
			s.advance()
			break
		}
		if c == '\\' && s.pos+1 < len(s.src) {
			b.WriteByte(c)
			s.advance()
			b.WriteByte(s.src[s.pos])
			s.advance()
			continue
		}
		b.WriteByte(c)
		s.advance()
	}
	return lexer.Token{Type: String, Value: b.String(), Pos: pos}, nil
}

// scanNumber scans a digit run, an embedded '.' only when another digit
// follows (so "1..3" lexes as NUMBER("1") DOTDOT NUMBER("3")), then
// dispatches on the suffix: '%' -> Percent, 't' -> Duration (rounded to
// the nearest integer tick), otherwise a bare Number.
func (s *scanner) scanNumber(pos lexer.Position) (lexer.Token, error) {
	start := s.pos
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.advance()
	}
	if s.pos < len(s.src) && s.src[s.pos] == '.' && isDigit(s.peek(1)) {
		s.advance()
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.advance()
		}
	}
	text := s.src[start:s.pos]
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return lexer.Token{}, oops.Code("lex_error").With("file", s.filename).With("line", pos.Line).
			Errorf("%s:%d: malformed number literal %q", s.filename, pos.Line, text)
	}
	if s.pos < len(s.src) && s.src[s.pos] == '%' {
		s.advance()
		return lexer.Token{Type: Percent, Value: text, Pos: pos}, nil
	}
	if s.pos < len(s.src) && s.src[s.pos] == 't' && !isIdentCont(s.peek(1)) {
		s.advance()
		ticks := int(val + 0.5)
		return lexer.Token{Type: Duration, Value: strconv.Itoa(ticks), Pos: pos}, nil
	}
	return lexer.Token{Type: Number, Value: text, Pos: pos}, nil
}

var twoCharPuncts = []string{"==", "!=", "<=", ">=", ".."}

func (s *scanner) scanPunct(pos lexer.Position) (lexer.Token, error) {
	c := s.src[s.pos]
	two := s.src[s.pos:min(s.pos+2, len(s.src))]
	for _, op := range twoCharPuncts {
		if two == op {
			s.advance()
			s.advance()
			return lexer.Token{Type: Punct, Value: op, Pos: pos}, nil
		}
	}
	switch c {
	case '(', ')', '{', '}', '[', ']', ',', ';', ':', '.', '+', '-', '*', '/', '=', '<', '>':
		s.advance()
		return lexer.Token{Type: Punct, Value: string(c), Pos: pos}, nil
	case '!':
		return lexer.Token{}, oops.Code("lex_error").With("file", s.filename).With("line", pos.Line).
			Errorf("%s:%d: unexpected character %q", s.filename, pos.Line, string(c))
	default:
		return lexer.Token{}, oops.Code("lex_error").With("file", s.filename).With("line", pos.Line).
			Errorf("%s:%d: unexpected character %q", s.filename, pos.Line, string(c))
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
