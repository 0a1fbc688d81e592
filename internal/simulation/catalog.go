// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package simulation

// TaskDef is a catalog entry: default duration (ticks, >= 1) and an
// optional station identifier.
type TaskDef struct {
	Duration int
	Station  string
}

// Catalog maps task name -> TaskDef. Lookup is by exact name; entries
// referenced by a task statement but absent from the loaded catalog are
// auto-created at duration 1 with no station, matching
// cat_get_or_add_task in the original source.
type Catalog struct {
	tasks map[string]*TaskDef
}

func NewCatalog() *Catalog {
	return &Catalog{tasks: map[string]*TaskDef{}}
}

// Find returns the task definition if present, without creating one.
func (c *Catalog) Find(name string) (*TaskDef, bool) {
	t, ok := c.tasks[name]
	return t, ok
}

// GetOrAdd returns the task definition, auto-creating a default one
// (duration 1, no station) if the name is unknown.
func (c *Catalog) GetOrAdd(name string) *TaskDef {
	if t, ok := c.tasks[name]; ok {
		return t
	}
	t := &TaskDef{Duration: 1}
	c.tasks[name] = t
	return t
}

// Set installs or overwrites a task definition, flooring duration to 1
// per spec's catalog-floor invariant.
func (c *Catalog) Set(name string, duration int, station string) {
	if duration < 1 {
		duration = 1
	}
	c.tasks[name] = &TaskDef{Duration: duration, Station: station}
}

// defaultCatalogSeed is the task table seeded when no --catalog file is
// supplied, recovered exactly (name, duration, station) from
// lb_defaults.c's seed_default_catalog.
var defaultCatalogSeed = []struct {
	Name     string
	Duration int
	Station  string
}{
	{"Reading", 1, "lounge"},
	{"Eating", 1, "kitchen"},
	{"Cooking", 2, "kitchen"},
	{"Meal prep", 2, "kitchen"},
	{"Food preservation", 2, "kitchen"},
	{"Sleeping", 4, "cot"},
	{"Resting", 2, "cot"},
	{"Socializing", 1, "lounge"},
	{"Talking", 1, "lounge"},
	{"Watching", 1, "lounge"},
	{"Computer work", 2, "comms"},
	{"Playing video games", 1, "lounge"},
	{"Playing guitar", 1, "lounge"},
	{"Knitting", 2, "craft"},
	{"Crocheting", 2, "craft"},
	{"Sewing", 2, "craft"},
	{"Crafting", 2, "workshop"},
	{"Painting", 2, "craft"},
	{"Drawing", 1, "craft"},
	{"Gardening", 2, "hydroponics"},
	{"Watering plants", 1, "hydroponics"},
	{"Hydroponics maintenance", 2, "hydroponics"},
	{"Aquarium maintenance", 2, "aquarium"},
	{"Fishing", 3, "outside"},
	{"Fish cleaning", 1, "kitchen"},
	{"Swimming", 2, "outside"},
	{"Scouting outside", 3, "outside"},
	{"Telescope use", 1, "outside"},
	{"Defensive shooting", 3, "defense"},
	{"Defensive combat", 3, "defense"},
	{"Gun smithing", 2, "workshop"},
	{"Electronics repair", 2, "workshop"},
	{"Electrical diagnostics", 2, "power"},
	{"Soldering", 2, "workshop"},
	{"Power management", 2, "power"},
	{"Radio communication", 1, "comms"},
	{"Tending a fire", 2, "heat"},
	{"Heating", 2, "heat"},
	{"General shelter chores", 2, "chores"},
	{"Maintenance chores", 2, "workshop"},
	{"Cleaning", 2, "wash"},
	{"First aid", 1, "med"},
	{"Medical treatment", 2, "med"},
	{"Water collection", 2, "outside"},
	{"Water filtration", 2, "wash"},
}

// NewDefaultCatalog returns the catalog used when no --catalog file is
// supplied.
func NewDefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, t := range defaultCatalogSeed {
		c.Set(t.Name, t.Duration, t.Station)
	}
	return c
}
