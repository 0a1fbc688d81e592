// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package simulation_test

import (
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/shelterdsl/runner/internal/script"
	"github.com/shelterdsl/runner/internal/simulation"
)

func mustCompile(src string) *simulation.Character {
	cf, err := script.ParseCharacter("spec.lbp", []byte(src))
	Expect(err).NotTo(HaveOccurred())
	ch, err := simulation.CompileCharacter(cf)
	Expect(err).NotTo(HaveOccurred())
	return ch
}

var _ = Describe("Priority-source ordering", func() {
	var world *simulation.World
	var catalog *simulation.Catalog

	BeforeEach(func() {
		world = simulation.NewDefaultWorld()
		catalog = simulation.NewDefaultCatalog()
	})

	It("never lets a lower source override a task already found by an earlier source", func() {
		ch := mustCompile(`
character "Watcher" {
  thresholds {
    when char.hunger < 1000 do task "Eating";
  }
  plan {
    rule "always" priority 1000000 { task "Reading"; }
  }
}
`)
		c := simulation.ChooseAction(ch, world, catalog, 0, 0, 0, false, false)
		Expect(c.TaskName).To(Equal("Eating"))
	})

	It("only fires an event handler when its event flag is active this tick", func() {
		ch := mustCompile(`
character "Guard" {
  on "breach" priority 10 { task "Defensive combat"; }
  plan { rule "fallback" priority 1 { task "Reading"; } }
}
`)
		idle := simulation.ChooseAction(ch, world, catalog, 0, 0, 0, false, false)
		Expect(idle.TaskName).To(Equal("Reading"))

		breaching := simulation.ChooseAction(ch, world, catalog, 0, 0, 2, true, false)
		Expect(breaching.TaskName).To(Equal("Defensive combat"))
	})

	It("scans every in-range plan block rather than stopping at the first", func() {
		ch := mustCompile(`
character "Planner" {
  plan {
    block all_day 0..24 { task "Reading" priority 1; }
    block overlap 0..24 { task "Exercise" priority 9; }
  }
}
`)
		c := simulation.ChooseAction(ch, world, catalog, 0, 5, 0, false, false)
		Expect(c.TaskName).To(Equal("Exercise"), "the second block's higher-priority task must still win")
	})

	It("falls back to yield when no rule proposes a task", func() {
		ch := simulation.NewCharacter("Empty")
		c := simulation.ChooseAction(ch, world, catalog, 0, 0, 0, false, false)
		Expect(c.Kind).To(Equal(simulation.CandYield))
	})
})
