// SPDX-License-Identifier: MIT
// Package core_test contains small helpers shared by the core tests.

package core_test

import "math"

// nanWeight and infWeight keep math.NaN/math.Inf out of table literals.
func nanWeight() float64 { return math.NaN() }

func infWeight(sign int) float64 { return math.Inf(sign) }
