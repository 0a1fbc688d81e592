// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Command runner simulates two characters sharing a fallout shelter,
// tick by tick, driven by their character scripts and a shared world and
// task catalog.
package main

import "os"

func main() {
	os.Exit(Execute())
}
