// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package simulation

import (
	"math"

	"github.com/shelterdsl/runner/internal/script"
)

// CandidateKind tags a scheduler outcome.
type CandidateKind int

const (
	CandNone CandidateKind = iota
	CandTask
	CandYield
)

// Candidate is the scheduler's per-tick proposal for one character.
type Candidate struct {
	Kind     CandidateKind
	TaskName string
	Ticks    int
	Priority float64
	Station  string
}

const negInfPriority = -1e9

// ChooseAction runs the four-source priority auction described by
// lb_scheduler.c's choose_action: event handlers, thresholds, plan
// blocks, and generic rules, each scanned in order. Sources 1 and 2 each
// scan all of their entries and return their best task candidate at once
// if they found one, without consulting later sources. Each handler,
// threshold, block, or rule gets its own ephemeral candidate (reset at
// negInfPriority, mirroring cand_reset/tmp in lb_scheduler.c) and only
// merges into the persistent best when it resolves to a task — a
// yield_tick is local to the list it fires in and never displaces a
// task candidate found by a different list.
func ChooseAction(ch *Character, w *World, cat *Catalog, day, tick, breachLevel int, evBreach, evOvernight bool) Candidate {
	sctx := &script.Context{
		Char:           ch,
		World:          w,
		Day:            day,
		Tick:           tick,
		BreachLevel:    breachLevel,
		EventBreach:    evBreach,
		EventOvernight: evOvernight,
		Locals:         map[string]float64{},
	}
	best := Candidate{Priority: negInfPriority}

	if evBreach {
		for _, h := range ch.EventHandlers {
			if h.Event != "breach" {
				continue
			}
			if h.When != nil && script.Eval(sctx, h.When) == 0 {
				continue
			}
			base := script.Eval(sctx, h.Priority)
			tmp := Candidate{Priority: negInfPriority}
			execStmts(h.Body, sctx, cat, ch, &tmp, base)
			mergeTask(&best, tmp)
		}
		if best.Kind == CandTask {
			return best
		}
	}

	for _, th := range ch.Thresholds {
		if script.Eval(sctx, th.Cond) == 0 {
			continue
		}
		tmp := Candidate{Priority: negInfPriority}
		execStmts([]script.Stmt{th.Action}, sctx, cat, ch, &tmp, 0)
		mergeTask(&best, tmp)
	}
	if best.Kind == CandTask {
		return best
	}

	for _, pb := range ch.PlanBlocks {
		if tick < pb.Start || tick >= pb.End {
			continue
		}
		tmp := Candidate{Priority: negInfPriority}
		stopped := execStmts(pb.Body, sctx, cat, ch, &tmp, 0)
		mergeTask(&best, tmp)
		if stopped {
			break
		}
	}
	for _, r := range ch.Rules {
		base := script.Eval(sctx, r.Priority)
		tmp := Candidate{Priority: negInfPriority}
		execStmts(r.Body, sctx, cat, ch, &tmp, base)
		mergeTask(&best, tmp)
	}
	if best.Kind == CandTask {
		return best
	}

	return Candidate{Kind: CandYield, Priority: 0}
}

// mergeTask folds tmp into best only when tmp settled on a task and it
// outranks whatever best already holds; a yield_tick result is dropped.
func mergeTask(best *Candidate, tmp Candidate) {
	if tmp.Kind == CandTask && tmp.Priority > best.Priority {
		*best = tmp
	}
}

// execStmts runs a statement list in selection mode against its own
// ephemeral candidate (local). It returns true if a stop statement
// fired, in which case the caller must not continue scanning siblings
// in the same list — candidates already accumulated in local remain.
func execStmts(stmts []script.Stmt, sctx *script.Context, cat *Catalog, ch *Character, local *Candidate, basePriority float64) bool {
	for _, st := range stmts {
		switch s := st.(type) {
		case *script.LetStmt:
			sctx.Locals[s.Name] = script.Eval(sctx, s.Value)
		case *script.SetStmt:
			applySet(ch, s, sctx)
		case *script.TaskStmt:
			considerTask(cat, local, s, basePriority, sctx)
		case *script.IfStmt:
			var branch []script.Stmt
			if script.Eval(sctx, s.Cond) != 0 {
				branch = s.Then
			} else {
				branch = s.Else
			}
			if execStmts(branch, sctx, cat, ch, local, basePriority) {
				return true
			}
		case *script.YieldStmt:
			if local.Priority < 0 {
				*local = Candidate{Kind: CandYield, Priority: 0}
			}
		case *script.StopStmt:
			return true
		}
	}
	return false
}

// applySet is honoured only for defaults.defense_posture; all other
// lvalues are silently no-ops per spec §4.4/§7.
func applySet(ch *Character, s *script.SetStmt, sctx *script.Context) {
	if len(s.Path) != 2 || s.Path[0] != "defaults" || s.Path[1] != "defense_posture" {
		return
	}
	if lit, ok := s.Value.(*script.StringLit); ok {
		ch.DefensePosture = lit.Value
		return
	}
	if script.Eval(sctx, s.Value) >= 0.5 {
		ch.DefensePosture = "loud"
	} else {
		ch.DefensePosture = "quiet"
	}
}

func considerTask(cat *Catalog, best *Candidate, s *script.TaskStmt, basePriority float64, sctx *script.Context) {
	def := cat.GetOrAdd(s.Name)
	ticks := def.Duration
	if s.For != nil {
		ticks = int(math.Round(script.Eval(sctx, s.For)))
		if ticks < 1 {
			ticks = 1
		}
	}
	priority := basePriority
	if s.Priority != nil {
		priority = script.Eval(sctx, s.Priority)
	}
	if priority > best.Priority {
		*best = Candidate{Kind: CandTask, TaskName: s.Name, Ticks: ticks, Priority: priority, Station: def.Station}
	}
}
