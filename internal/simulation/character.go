// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package simulation

import (
	"github.com/samber/oops"
	"github.com/shelterdsl/runner/internal/script"
)

// ThresholdRule is a (condition, action) pair, executed in selection mode
// with base priority 0 whenever Cond is truthy.
type ThresholdRule struct {
	Cond   script.Expr
	Action script.Stmt
}

// PlanBlockRule fires while Start <= tick < End.
type PlanBlockRule struct {
	Name  string
	Start int
	End   int
	Body  []script.Stmt
}

// GenericRule always fires; its own Priority expression becomes the base
// priority for any task candidates its body proposes.
type GenericRule struct {
	Label    string
	Priority script.Expr
	Body     []script.Stmt
}

// EventHandler fires only when Event matches the tick's active event
// flag, and only if the optional When guard is truthy.
type EventHandler struct {
	Event    string
	When     script.Expr
	Priority script.Expr
	Body     []script.Stmt
}

// vitalNames lists the six clamped vitals, in the order the teacher-style
// status line renders them.
var vitalNames = []string{"hunger", "hydration", "fatigue", "morale", "injury", "illness"}

// Character is the parsed, immutable rule set plus the mutable runtime
// state the tick driver updates each tick.
type Character struct {
	Name            string
	Vitals_         map[string]float64
	DefensePosture  string
	Skills          map[string]float64
	Traits          []string
	Thresholds      []ThresholdRule
	PlanBlocks      []PlanBlockRule
	Rules           []GenericRule
	EventHandlers   []EventHandler

	// Runtime state, mutated by the tick driver.
	TaskName  string
	Station   string
	Remaining int
	Priority  float64
}

// NewCharacter seeds a character with all vitals at 100 and a "quiet"
// defense posture, the same starting point lb_world.c's character
// constructors use before a script's defaults/thresholds adjust state at
// runtime.
func NewCharacter(name string) *Character {
	vitals := make(map[string]float64, len(vitalNames))
	for _, v := range vitalNames {
		vitals[v] = 100
	}
	return &Character{
		Name:           name,
		Vitals_:        vitals,
		DefensePosture: "quiet",
		Skills:         map[string]float64{},
	}
}

// Vital satisfies script.CharacterView.
func (c *Character) Vital(name string) (float64, bool) {
	v, ok := c.Vitals_[name]
	return v, ok
}

// AddVital adds a delta to a vital, clamping into [0, 100].
func (c *Character) AddVital(name string, delta float64) {
	v := c.Vitals_[name] + delta
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	c.Vitals_[name] = v
}

// Idle reports whether the character has no task in flight.
func (c *Character) Idle() bool { return c.Remaining == 0 }

// CompileCharacter converts a parsed character file into runtime form,
// separating the four rule containers the data model describes (thresholds,
// plan blocks, generic rules, event handlers) out of the combined section
// list the grammar produces.
func CompileCharacter(cf *script.CharacterFile) (*Character, error) {
	ch := NewCharacter(cf.Name)
	for _, sec := range cf.Sections {
		switch {
		case sec.Version != nil:
			// version carries no runtime effect.
		case sec.Skills != nil:
			for _, e := range sec.Skills.Entries {
				ch.Skills[e.Name] = parseNum(e.Value)
			}
		case sec.Traits != nil:
			ch.Traits = append(ch.Traits, sec.Traits.Names...)
		case sec.Defaults != nil:
			for _, e := range sec.Defaults.Entries {
				if e.Key != "defense_posture" {
					continue
				}
				if e.StrVal != nil {
					ch.DefensePosture = *e.StrVal
				} else if e.NumVal != nil {
					if parseNum(*e.NumVal) >= 0.5 {
						ch.DefensePosture = "loud"
					} else {
						ch.DefensePosture = "quiet"
					}
				}
			}
		case sec.Thresholds != nil:
			for _, e := range sec.Thresholds.Entries {
				ch.Thresholds = append(ch.Thresholds, ThresholdRule{
					Cond:   e.Cond.build(),
					Action: e.Action.build(),
				})
			}
		case sec.Plan != nil:
			for _, item := range sec.Plan.Items {
				switch {
				case item.Block != nil:
					ch.PlanBlocks = append(ch.PlanBlocks, PlanBlockRule{
						Name:  item.Block.Name,
						Start: item.Block.Start.value(),
						End:   item.Block.End.value(),
						Body:  script.BuildStmts(item.Block.Body),
					})
				case item.Rule != nil:
					label := ""
					if item.Rule.Label != nil {
						label = *item.Rule.Label
					}
					ch.Rules = append(ch.Rules, GenericRule{
						Label:    label,
						Priority: item.Rule.Priority.build(),
						Body:     script.BuildStmts(item.Rule.Body),
					})
				}
			}
		case sec.On != nil:
			var when script.Expr
			if sec.On.When != nil {
				when = sec.On.When.build()
			}
			ch.EventHandlers = append(ch.EventHandlers, EventHandler{
				Event:    sec.On.Event,
				When:     when,
				Priority: sec.On.Priority.build(),
				Body:     script.BuildStmts(sec.On.Body),
			})
		default:
			return nil, oops.Code("parse_error").Errorf("character %q: empty section", cf.Name)
		}
	}
	return ch, nil
}

func parseNum(s string) float64 {
	v, err := parseFloatLenient(s)
	if err != nil {
		return 0
	}
	return v
}
