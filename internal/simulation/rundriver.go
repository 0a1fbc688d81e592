// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package simulation

import (
	"log/slog"
	"strings"
)

// DayTicks is the number of ticks in one simulated day.
const DayTicks = 24

// DayEvents is the single breach event planned for a day, if any.
type DayEvents struct {
	BreachTick  int // -1 if no breach this day
	BreachLevel int
}

// PlanDayEvents rolls the day's single breach event, grounded on
// lb_sim.c's plan_day_events: severity starts at 1, is promoted to 2 if
// structure < 70 or signature > 15, promoted to 3 if structure < 55 or
// signature > 25, with a further 25% chance to bump by one unless already
// at the documented maximum of 3.
func PlanDayEvents(w *World, rng Source) DayEvents {
	ev := DayEvents{BreachTick: -1}
	if rng.Intn(100) >= int(w.BreachChance+0.5) {
		return ev
	}
	ev.BreachTick = 6 + rng.Intn(16) // 6..21
	structure, _ := w.Shelter("structure")
	signature, _ := w.Shelter("signature")
	lvl := 1
	if structure < 70 || signature > 15 {
		lvl = 2
	}
	if structure < 55 || signature > 25 {
		lvl = 3
	}
	if rng.Intn(100) < 25 && lvl < 3 {
		lvl++
	}
	ev.BreachLevel = lvl
	return ev
}

func tickDecay(ch *Character) {
	ch.AddVital("hunger", -0.8)
	ch.AddVital("hydration", -1.0)
	ch.AddVital("morale", -0.1)
}

// fatigueTick increases fatigue while awake (idle or working) and
// decreases it while Sleeping/Resting, per lb_sim.c's fatigue_tick: this
// prevents a character from repeatedly selecting rest without ever
// recovering enough to resume its plan.
func fatigueTick(ch *Character) {
	var df float64
	switch {
	case ch.TaskName == "":
		df = 0.5
	case ch.TaskName == "Sleeping":
		df = -6.0
	case ch.TaskName == "Resting":
		df = -3.0
	default:
		df = 1.0
	}
	ch.AddVital("fatigue", df)
}

// completeTask decrements an in-flight task's remaining ticks and, on
// reaching 0, applies the effect engine and clears runtime task state.
func completeTask(ch *Character, effects EffectEngine, w *World, logger *slog.Logger, day, tick int) {
	if ch.Remaining <= 0 {
		return
	}
	ch.Remaining--
	if ch.Remaining == 0 && ch.TaskName != "" {
		logger.Info("task completed", "day", day, "tick", tick, "character", ch.Name, "task", ch.TaskName)
		effects.ApplyEffects(w, ch, ch.TaskName)
		ch.TaskName = ""
		ch.Station = ""
		ch.Priority = 0
	}
}

// arbitrateStations resolves a same-station conflict between two
// candidates the driver is about to install: the strictly-higher-priority
// candidate wins, ties broken by lexicographically-smaller-or-equal name
// (A wins on an exact tie), and the loser is demoted to yield for this
// tick. Mirrors run_sim's station conflict block.
func arbitrateStations(a, b *Character, ca, cb *Candidate, logger *slog.Logger, day, tick int) {
	if ca.Kind != CandTask || cb.Kind != CandTask {
		return
	}
	if ca.Station == "" || cb.Station == "" || ca.Station != cb.Station {
		return
	}
	aWins := ca.Priority > cb.Priority || (ca.Priority == cb.Priority && a.Name <= b.Name)
	if aWins {
		logger.Info("station conflict", "day", day, "tick", tick, "station", ca.Station, "winner", a.Name, "priority", ca.Priority, "yields", b.Name)
		*cb = Candidate{Kind: CandYield, Priority: 0}
	} else {
		logger.Info("station conflict", "day", day, "tick", tick, "station", cb.Station, "winner", b.Name, "priority", cb.Priority, "yields", a.Name)
		*ca = Candidate{Kind: CandYield, Priority: 0}
	}
}

func install(ch *Character, c Candidate, logger *slog.Logger, day, tick int) {
	if c.Kind == CandTask {
		ch.TaskName = c.TaskName
		ch.Station = c.Station
		ch.Remaining = c.Ticks
		ch.Priority = c.Priority
		logger.Info("task started", "day", day, "tick", tick, "character", ch.Name, "task", c.TaskName, "ticks", c.Ticks, "station", c.Station, "priority", c.Priority)
		return
	}
	logger.Info("idle", "day", day, "tick", tick, "character", ch.Name)
}

func continuing(ch *Character, logger *slog.Logger, day, tick int) {
	logger.Info("task continues", "day", day, "tick", tick, "character", ch.Name, "task", ch.TaskName, "remaining", ch.Remaining)
}

// breachConsequence applies structural damage unless either character's
// current task name contains "Defensive" (case-sensitive substring,
// matching strstr in the original), per lb_sim.c's breach-impact block.
func breachConsequence(w *World, a, b *Character, level int, logger *slog.Logger, day, tick int) {
	defended := strings.Contains(a.TaskName, "Defensive") || strings.Contains(b.TaskName, "Defensive")
	if !defended {
		dmg := 4.0 * float64(level)
		w.AddShelter("structure", -dmg)
		structure, _ := w.Shelter("structure")
		logger.Info("breach impact", "day", day, "tick", tick, "damage", dmg, "structure", structure)
		return
	}
	loss := 0.5
	if level == 3 {
		loss = 1.0
	}
	w.AddShelter("structure", -loss)
	logger.Info("breach defended", "day", day, "tick", tick, "loss", loss)
}

func statusLine(ch *Character, logger *slog.Logger, day, tick int) {
	h, _ := ch.Vital("hunger")
	hy, _ := ch.Vital("hydration")
	f, _ := ch.Vital("fatigue")
	m, _ := ch.Vital("morale")
	inj, _ := ch.Vital("injury")
	ill, _ := ch.Vital("illness")
	logger.Info("status", "day", day, "tick", tick, "character", ch.Name,
		"hunger", h, "hydration", hy, "fatigue", f, "morale", m, "injury", inj, "illness", ill,
		"posture", ch.DefensePosture)
}

func overnightResolution(w *World, rng Source, logger *slog.Logger, day, tick int) {
	roll := rng.Intn(100)
	if roll < int(w.OvernightChance+0.5) {
		logger.Info("overnight contact", "day", day, "tick", tick, "roll", roll, "chance", w.OvernightChance)
		w.AddShelter("signature", 1.0)
		return
	}
	logger.Info("overnight quiet", "day", day, "tick", tick, "roll", roll)
	w.AddShelter("signature", -0.5)
}

// RunSim orchestrates decay, in-flight task progression, scheduling,
// station arbitration, breach/overnight consequences, and status
// reporting across days*DayTicks sequential ticks, grounded on
// lb_sim.c's run_sim.
func RunSim(w *World, cat *Catalog, a, b *Character, days int, rng Source, effects EffectEngine, logger *slog.Logger) {
	for day := 0; day < days; day++ {
		ev := PlanDayEvents(w, rng)
		structure, _ := w.Shelter("structure")
		logger.Info("day start", "day", day, "structure", structure, "breach_chance", w.BreachChance)

		for tick := 0; tick < DayTicks; tick++ {
			evBreach := ev.BreachTick == tick
			breachLevel := 0
			if evBreach {
				breachLevel = ev.BreachLevel
			}
			evOvernight := tick == DayTicks-1

			tickDecay(a)
			tickDecay(b)
			fatigueTick(a)
			fatigueTick(b)

			completeTask(a, effects, w, logger, day, tick)
			completeTask(b, effects, w, logger, day, tick)

			var ca, cb Candidate
			if a.Idle() {
				ca = ChooseAction(a, w, cat, day, tick, breachLevel, evBreach, evOvernight)
			}
			if b.Idle() {
				cb = ChooseAction(b, w, cat, day, tick, breachLevel, evBreach, evOvernight)
			}

			if a.Idle() && b.Idle() {
				arbitrateStations(a, b, &ca, &cb, logger, day, tick)
			}

			if a.Idle() {
				install(a, ca, logger, day, tick)
			} else {
				continuing(a, logger, day, tick)
			}
			if b.Idle() {
				install(b, cb, logger, day, tick)
			} else {
				continuing(b, logger, day, tick)
			}

			if evBreach {
				breachConsequence(w, a, b, breachLevel, logger, day, tick)
			}

			statusLine(a, logger, day, tick)
			statusLine(b, logger, day, tick)

			if evOvernight {
				overnightResolution(w, rng, logger, day, tick)
			}
		}
	}
}
