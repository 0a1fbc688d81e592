// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package simulation

import "strconv"

func parseFloatLenient(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
