// Package units holds the length units the converter understands and the
// multiplicative factors between them.
package units

import (
	"math"
	"strings"
)

type Unit uint8

const (
	Unknown Unit = iota
	Meter
	Kilometer
	Foot
	Mile

	unitCount
)

var codes = [unitCount]string{
	Unknown:   "",
	Meter:     "m",
	Kilometer: "km",
	Foot:      "ft",
	Mile:      "mi",
}

// All lists the supported units in display order.
var All = []Unit{Meter, Kilometer, Foot, Mile}

// Parse maps a unit code to a Unit, ignoring case and surrounding space.
func Parse(code string) (Unit, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for u := Meter; u < unitCount; u++ {
		if codes[u] == code {
			return u, true
		}
	}
	return Unknown, false
}

func (u Unit) String() string {
	if u >= unitCount {
		return ""
	}
	return codes[u]
}

// factors[from][to]; zero means the pair is not in the table.
var factors = [unitCount][unitCount]float64{
	Meter: {
		Kilometer: 0.001,
		Foot:      3.28084,
		Mile:      0.000621371,
	},
	Kilometer: {
		Meter: 1000,
		Foot:  3280.84,
		Mile:  0.621371,
	},
	Foot: {
		Meter:     0.3048,
		Kilometer: 0.0003048,
		Mile:      0.000189394,
	},
	Mile: {
		Meter:     1609.34,
		Kilometer: 1.60934,
		Foot:      5280,
	},
}

type OutcomeKind int

const (
	Unsupported OutcomeKind = iota
	Identity
	Found
)

// Outcome is the result of a table lookup. Factor is 1 for Identity and 0
// for Unsupported.
type Outcome struct {
	Kind   OutcomeKind
	Factor float64
}

// Lookup resolves the factor between two unit codes. Codes that are equal
// after lower-casing are an identity even when they are not known units.
func Lookup(from, to string) Outcome {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	if from == to {
		return Outcome{Kind: Identity, Factor: 1}
	}

	f, ok := Parse(from)
	if !ok {
		return Outcome{Kind: Unsupported}
	}
	t, ok := Parse(to)
	if !ok {
		return Outcome{Kind: Unsupported}
	}
	return LookupUnits(f, t)
}

// LookupUnits is Lookup for already parsed units.
func LookupUnits(from, to Unit) Outcome {
	if from == to && from != Unknown {
		return Outcome{Kind: Identity, Factor: 1}
	}
	if from >= unitCount || to >= unitCount {
		return Outcome{Kind: Unsupported}
	}
	if f := factors[from][to]; f != 0 {
		return Outcome{Kind: Found, Factor: f}
	}
	return Outcome{Kind: Unsupported}
}

// Precision is the number of decimal places results are rounded to.
const Precision = 6

// roundLimit is where a float64 no longer has digits below Precision.
const roundLimit = 1e15

// Round rounds v to Precision decimal places, half to even. Magnitudes at
// or above roundLimit, and non-finite values, are returned unchanged.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.Abs(v) >= roundLimit {
		return v
	}
	scale := math.Pow10(Precision)
	return math.RoundToEven(v*scale) / scale
}
