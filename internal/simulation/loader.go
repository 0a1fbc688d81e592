// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package simulation

import (
	"bytes"
	"os"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/samber/oops"
	"github.com/shelterdsl/runner/internal/script"
)

// LoadCharacterFile reads a character script from disk and compiles it.
// Tokens preceding the first `character "Name" { ... }` block are
// skipped, per spec §6 ("tokens before the first such block are
// skipped"); reaching EOF without finding one is a fatal parse error.
func LoadCharacterFile(path string) (*Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("io_error").With("file", path).Wrapf(err, "reading character file")
	}
	offset, err := findCharacterKeyword(path, data)
	if err != nil {
		return nil, err
	}
	cf, err := script.ParseCharacter(path, data[offset:])
	if err != nil {
		return nil, err
	}
	return CompileCharacter(cf)
}

// findCharacterKeyword scans tokens from the start of the file and
// returns the byte offset of the first `character` identifier, or a
// fatal error if none is found before EOF.
func findCharacterKeyword(path string, data []byte) (int, error) {
	lx, err := script.Lexer.Lex(path, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	for {
		tok, err := lx.Next()
		if err != nil {
			return 0, err
		}
		if tok.Type == lexer.EOF {
			return 0, oops.Code("parse_error").With("file", path).
				Errorf("%s: no character block found", path)
		}
		if tok.Type == script.Ident && tok.Value == "character" {
			return tok.Pos.Offset, nil
		}
	}
}

// LoadWorldFile reads and compiles a world file, falling back to
// documented defaults if path is empty.
func LoadWorldFile(path string) (*World, error) {
	if path == "" {
		return NewDefaultWorld(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("io_error").With("file", path).Wrapf(err, "reading world file")
	}
	wf, err := script.ParseWorld(path, data)
	if err != nil {
		return nil, err
	}
	return CompileWorld(wf), nil
}

// LoadCatalogFile reads and compiles a task catalog file, falling back to
// the default seeded catalog if path is empty.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return NewDefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("io_error").With("file", path).Wrapf(err, "reading catalog file")
	}
	cf, err := script.ParseCatalog(path, data)
	if err != nil {
		return nil, err
	}
	return CompileCatalog(cf), nil
}

// AutoDiscoverPath returns path if non-empty, else fallback if it exists
// on disk, else "". Mirrors main.c's auto-discovery of ./world.lbw and
// ./catalog.lbc when --world/--catalog are omitted.
func AutoDiscoverPath(explicit, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(fallback); err == nil {
		return fallback
	}
	return ""
}

// CompileWorld converts a parsed world file into runtime form, starting
// from documented defaults and layering the file's sections on top.
func CompileWorld(wf *script.WorldFile) *World {
	w := NewDefaultWorld()
	if wf.Name != nil {
		w.Name = *wf.Name
	}
	for _, sec := range wf.Sections {
		switch {
		case sec.Shelter != nil:
			for _, e := range sec.Shelter.Entries {
				w.SetShelter(e.Key, parseNum(e.Value))
			}
		case sec.Inventory != nil:
			for _, e := range sec.Inventory.Entries {
				cond := 0.0
				if e.Cond != nil {
					cond = parseNum(*e.Cond)
				}
				w.AddInventory(e.Item, parseNum(e.Qty), cond)
			}
		case sec.Events != nil:
			for _, e := range sec.Events.Entries {
				switch {
				case e.Daily != nil && e.Daily.Name == "breach":
					w.BreachChance = parseNum(e.Daily.Chance)
				case e.Overnight != nil:
					w.OvernightChance = parseNum(e.Overnight.Chance)
				}
			}
		}
		// version and unrecognised top-level blocks carry no runtime effect.
	}
	return w
}

// CompileCatalog converts a parsed catalog file into runtime form.
func CompileCatalog(cf *script.CatalogFile) *Catalog {
	cat := NewCatalog()
	for _, entry := range cf.Entries {
		if entry.Task == nil {
			continue // itemdef bodies are skipped entirely, per spec §4.2.5
		}
		duration := 1
		station := ""
		for _, f := range entry.Task.Fields {
			switch {
			case f.Time != nil:
				duration = f.Time.value()
			case f.Station != nil:
				station = *f.Station
			}
		}
		cat.Set(entry.Task.Name, duration, station)
	}
	return cat
}
