package state

import "math/rand/v2"

// Roller is the single randomness source for checks. The default draws a
// uniform value in [0,100); tests substitute fixed rolls.
type Roller interface {
	Roll() float64
}

// RollerFunc adapts a function to the Roller interface.
type RollerFunc func() float64

func (f RollerFunc) Roll() float64 { return f() }

// NewRoller returns the production roller.
func NewRoller() Roller {
	return RollerFunc(func() float64 { return rand.Float64() * 100 })
}

// FixedRoller always returns the same value. Test helper.
func FixedRoller(v float64) Roller {
	return RollerFunc(func() float64 { return v })
}
