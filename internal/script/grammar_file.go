// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package script

import "strconv"

// grammar_file.go holds the three top-level dialect grammars (character,
// world, catalog), grounded on lb_parser_sections.c and lb_data.c. All
// three share the lexer and the expression/statement grammar above.

// intLit accepts a NUMBER or a DURATION, matching parse_int_lit: plan
// block ranges and taskdef durations may be written either way.
type intLit struct {
	Number   *string `parser:"(  @Number"`
	Duration *string `parser:" | @Duration )"`
}

func (i *intLit) value() int {
	s := ""
	switch {
	case i.Number != nil:
		s = *i.Number
	case i.Duration != nil:
		s = *i.Duration
	}
	v, _ := strconv.ParseFloat(s, 64)
	return int(v)
}

// --- character dialect ---

type versionClause struct {
	Value string `parser:"'version' @Number ';'"`
}

type skillEntry struct {
	Name  string `parser:"@Ident ':'"`
	Value string `parser:"@Number ';'"`
}
type skillsSection struct {
	Entries []*skillEntry `parser:"'skills' '{' @@* '}'"`
}

type traitsSection struct {
	Names []string `parser:"'traits' ':' '[' (@String (',' @String)*)? ']' ';'"`
}

// defaultsSection: only defense_posture is interpreted by the scheduler
// (see simulation.ApplyDefault); other scalars are consumed and discarded.
type defaultEntry struct {
	Key    string  `parser:"@Ident ':'"`
	StrVal *string `parser:"(  @String"`
	NumVal *string `parser:" | @Number ) ';'"`
}
type defaultsSection struct {
	Entries []*defaultEntry `parser:"'defaults' '{' @@* '}'"`
}

type thresholdEntry struct {
	Cond   *exprOr        `parser:"'when' @@ 'do'"`
	Action *rawActionStmt `parser:"@@ ';'"`
}
type thresholdsSection struct {
	Entries []*thresholdEntry `parser:"'thresholds' '{' @@* '}'"`
}

type planBlock struct {
	Name  string     `parser:"'block' @Ident"`
	Start *intLit    `parser:"@@"`
	End   *intLit    `parser:"('..' | '.' '.') @@"`
	Body  []*rawStmt `parser:"'{' @@* '}'"`
}
type planRule struct {
	Label    *string    `parser:"'rule' @String?"`
	Priority *exprOr    `parser:"'priority' @@"`
	Body     []*rawStmt `parser:"'{' @@* '}'"`
}
type planItem struct {
	Block *planBlock `parser:"(  @@"`
	Rule  *planRule  `parser:" | @@ )"`
}
type planSection struct {
	Items []*planItem `parser:"'plan' '{' @@* '}'"`
}

type onSection struct {
	Event    string     `parser:"'on' @String"`
	When     *exprOr    `parser:"('when' @@)?"`
	Priority *exprOr    `parser:"'priority' @@"`
	Body     []*rawStmt `parser:"'{' @@* '}'"`
}

type characterSection struct {
	Version    *versionClause     `parser:"(  @@"`
	Skills     *skillsSection     `parser:" | @@"`
	Traits     *traitsSection     `parser:" | @@"`
	Defaults   *defaultsSection   `parser:" | @@"`
	Thresholds *thresholdsSection `parser:" | @@"`
	Plan       *planSection       `parser:" | @@"`
	On         *onSection         `parser:" | @@ )"`
}

// CharacterFile is the parsed form of one `character "Name" { ... }` block.
type CharacterFile struct {
	Name     string              `parser:"'character' @String '{'"`
	Sections []*characterSection `parser:"@@* '}'"`
}

// --- world dialect ---

type shelterEntry struct {
	Key   string `parser:"@Ident ':'"`
	Value string `parser:"@Number ';'"`
}
type shelterSection struct {
	Entries []*shelterEntry `parser:"'shelter' '{' @@* '}'"`
}

type inventoryEntry struct {
	Item string  `parser:"@String ':' 'qty'"`
	Qty  string  `parser:"@Number"`
	Cond *string `parser:"(',' 'cond' @Number)? ';'"`
}
type inventorySection struct {
	Entries []*inventoryEntry `parser:"'inventory' '{' @@* '}'"`
}

type dailyEvent struct {
	Name   string  `parser:"'daily' @String"`
	Chance string  `parser:"'chance' @Percent"`
	When   *exprOr `parser:"('when' @@)? ';'"`
}
type overnightEvent struct {
	Chance string  `parser:"'overnight_threat_check' 'chance' @Percent"`
	When   *exprOr `parser:"('when' @@)? ';'"`
}
type eventEntry struct {
	Daily     *dailyEvent     `parser:"(  @@"`
	Overnight *overnightEvent `parser:" | @@ )"`
}
type eventsSection struct {
	Entries []*eventEntry `parser:"'events' '{' @@* '}'"`
}

// otherBlock consumes any unrecognised top-level identifier in a world or
// catalog file, per spec: a brace block, or free tokens up to ';'.
type otherBlock struct {
	Key   string         `parser:"@Ident"`
	Block *skipBlock     `parser:"(  @@"`
	Line  *skipUntilSemi `parser:" | @@ ';' )"`
}

type worldSection struct {
	Version   *versionClause    `parser:"(  @@"`
	Shelter   *shelterSection   `parser:" | @@"`
	Inventory *inventorySection `parser:" | @@"`
	Events    *eventsSection    `parser:" | @@"`
	Other     *otherBlock       `parser:" | @@ )"`
}

// WorldFile is the parsed form of a `world "Name"? { ... }` document.
type WorldFile struct {
	Name     *string         `parser:"'world' @String?"`
	Sections []*worldSection `parser:"'{' @@* '}'"`
}

// --- catalog dialect ---

type skipOtherField struct {
	Key string       `parser:"@Ident ':'"`
	Blk *skipBlock   `parser:"(  @@"`
	Lst *skipBracket `parser:" | @@"`
	Exp *exprOr      `parser:" | @@ ) ';'"`
}

type taskField struct {
	Time    *intLit         `parser:"(  'time' ':' @@ ';'"`
	Station *string         `parser:" | 'station' ':' @Ident ';'"`
	Other   *skipOtherField `parser:" | @@ )"`
}
type taskDef struct {
	Name   string       `parser:"'taskdef' @String '{'"`
	Fields []*taskField `parser:"@@* '}'"`
}

type itemDef struct {
	Name string       `parser:"'itemdef' @String '{'"`
	Body []*skipToken `parser:"@@* '}'"`
}

type catalogEntry struct {
	Task *taskDef `parser:"(  @@"`
	Item *itemDef `parser:" | @@ )"`
}

// CatalogFile is the parsed form of a task catalog document: zero or more
// `taskdef`/`itemdef` blocks.
type CatalogFile struct {
	Entries []*catalogEntry `parser:"@@*"`
}
