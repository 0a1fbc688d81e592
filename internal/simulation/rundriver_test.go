// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package simulation

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedSource returns a fixed sequence of rolls, cycling once exhausted;
// useful for pinning PlanDayEvents/overnightResolution branches exactly.
type fixedSource struct {
	rolls []int
	i     int
}

func (f *fixedSource) Intn(n int) int {
	if len(f.rolls) == 0 {
		return 0
	}
	v := f.rolls[f.i%len(f.rolls)]
	f.i++
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

func TestPlanDayEventsNoBreachWhenRollAboveChance(t *testing.T) {
	w := NewDefaultWorld() // BreachChance = 15
	src := &fixedSource{rolls: []int{50}}
	ev := PlanDayEvents(w, src)
	assert.Equal(t, -1, ev.BreachTick)
}

func TestPlanDayEventsBreachTickInDocumentedWindow(t *testing.T) {
	w := NewDefaultWorld()
	src := &fixedSource{rolls: []int{0, 15}} // triggers breach, then picks tick offset
	ev := PlanDayEvents(w, src)
	assert.GreaterOrEqual(t, ev.BreachTick, 6)
	assert.LessOrEqual(t, ev.BreachTick, 21)
}

func TestPlanDayEventsSeverityEscalatesWithWeakStructure(t *testing.T) {
	w := NewDefaultWorld()
	w.SetShelter("structure", 40) // below both thresholds
	w.SetShelter("signature", 5)
	src := &fixedSource{rolls: []int{0, 0, 99}} // breach roll, tick roll, no extra bump
	ev := PlanDayEvents(w, src)
	assert.Equal(t, 3, ev.BreachLevel)
}

func TestPlanDayEventsSeverityNeverExceedsThree(t *testing.T) {
	w := NewDefaultWorld()
	w.SetShelter("structure", 10)
	w.SetShelter("signature", 50)
	src := &fixedSource{rolls: []int{0, 0, 0}} // would bump again if allowed
	ev := PlanDayEvents(w, src)
	assert.Equal(t, 3, ev.BreachLevel)
}

func TestFatigueTickRestsLowerFatigueAndWorkRaisesIt(t *testing.T) {
	ch := NewCharacter("A")
	ch.Vitals_["fatigue"] = 50

	ch.TaskName = "Sleeping"
	fatigueTick(ch)
	assert.Equal(t, 44.0, ch.Vitals_["fatigue"])

	ch.Vitals_["fatigue"] = 50
	ch.TaskName = "Resting"
	fatigueTick(ch)
	assert.Equal(t, 47.0, ch.Vitals_["fatigue"])

	ch.Vitals_["fatigue"] = 50
	ch.TaskName = "Cooking"
	fatigueTick(ch)
	assert.Equal(t, 51.0, ch.Vitals_["fatigue"])

	ch.Vitals_["fatigue"] = 50
	ch.TaskName = ""
	fatigueTick(ch)
	assert.Equal(t, 50.5, ch.Vitals_["fatigue"])
}

func TestArbitrateStationsHigherPriorityWins(t *testing.T) {
	a := NewCharacter("Zeta")
	b := NewCharacter("Alpha")
	ca := &Candidate{Kind: CandTask, Station: "kitchen", Priority: 5}
	cb := &Candidate{Kind: CandTask, Station: "kitchen", Priority: 50}

	arbitrateStations(a, b, ca, cb, discardLogger(), 0, 0)

	assert.Equal(t, CandYield, ca.Kind)
	assert.Equal(t, CandTask, cb.Kind)
}

func TestArbitrateStationsTieBrokenByName(t *testing.T) {
	alice := NewCharacter("Alice")
	bob := NewCharacter("Bob")
	ca := &Candidate{Kind: CandTask, Station: "kitchen", Priority: 50}
	cb := &Candidate{Kind: CandTask, Station: "kitchen", Priority: 50}

	arbitrateStations(alice, bob, ca, cb, discardLogger(), 0, 0)

	assert.Equal(t, CandTask, ca.Kind, "Alice sorts earlier and keeps her candidate")
	assert.Equal(t, CandYield, cb.Kind)
}

func TestArbitrateStationsIgnoresDistinctStations(t *testing.T) {
	a := NewCharacter("A")
	b := NewCharacter("B")
	ca := &Candidate{Kind: CandTask, Station: "kitchen", Priority: 5}
	cb := &Candidate{Kind: CandTask, Station: "workshop", Priority: 50}

	arbitrateStations(a, b, ca, cb, discardLogger(), 0, 0)

	assert.Equal(t, CandTask, ca.Kind)
	assert.Equal(t, CandTask, cb.Kind)
}

func TestBreachConsequenceDamagesStructureUnlessDefended(t *testing.T) {
	w := NewDefaultWorld()
	a := NewCharacter("A")
	b := NewCharacter("B")

	breachConsequence(w, a, b, 2, discardLogger(), 0, 6)
	structure, _ := w.Shelter("structure")
	assert.Equal(t, 67.0, structure) // 75 - 4*2
}

func TestBreachConsequenceReducedWhenDefended(t *testing.T) {
	w := NewDefaultWorld()
	a := NewCharacter("A")
	a.TaskName = "Defensive combat"
	b := NewCharacter("B")

	breachConsequence(w, a, b, 3, discardLogger(), 0, 6)
	structure, _ := w.Shelter("structure")
	assert.Equal(t, 74.0, structure) // 75 - 1.0 at level 3
}

func TestRunSimIsDeterministicForAFixedSeed(t *testing.T) {
	catalog := NewDefaultCatalog()

	runOnce := func() (*Character, *Character, *World) {
		w := NewDefaultWorld()
		a := characterFromSrc(t, `character "Alice" { plan { rule "r" priority 1 { task "Reading"; } } }`)
		b := characterFromSrc(t, `character "Bob" { plan { rule "r" priority 1 { task "Cooking"; } } }`)
		RunSim(w, catalog, a, b, 3, NewLCG(42), DefaultEffectEngine{}, discardLogger())
		return a, b, w
	}

	a1, b1, w1 := runOnce()
	a2, b2, w2 := runOnce()

	assert.Equal(t, a1.Vitals_, a2.Vitals_)
	assert.Equal(t, b1.Vitals_, b2.Vitals_)
	assert.Equal(t, w1.Shelter_, w2.Shelter_)
}

func TestRunSimAdvancesTasksAcrossTicks(t *testing.T) {
	w := NewDefaultWorld()
	catalog := NewDefaultCatalog()
	a := characterFromSrc(t, `character "Alice" { plan { rule "r" priority 1 { task "Sleeping"; } } }`)
	b := NewCharacter("Bob")

	RunSim(w, catalog, a, b, 1, NewLCG(7), DefaultEffectEngine{}, discardLogger())

	// Sleeping restores morale via the default effect table on completion,
	// and fatigue decay during sleep keeps it below the no-task baseline.
	morale, ok := a.Vital("morale")
	require.True(t, ok)
	assert.GreaterOrEqual(t, morale, 0.0)
	idleMorale, _ := b.Vital("morale")
	assert.Greater(t, morale, idleMorale)
	fatigue, _ := a.Vital("fatigue")
	idleFatigue, _ := b.Vital("fatigue")
	assert.Less(t, fatigue, idleFatigue)
}
