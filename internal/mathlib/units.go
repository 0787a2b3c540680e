package mathlib

import (
	"math"
	"strings"

	"github.com/roach88/vecwrap/internal/native"
)

type unit struct {
	class string
	scale float64 // size of one unit in the class's base unit
}

var units = map[string]unit{
	"RADIANS":        {"ANGLE", 1},
	"DEGREES":        {"ANGLE", math.Pi / 180},
	"ARCMINUTES":     {"ANGLE", math.Pi / 180 / 60},
	"ARCSECONDS":     {"ANGLE", math.Pi / 180 / 3600},
	"HOURANGLE":      {"ANGLE", math.Pi / 12},
	"M":              {"DISTANCE", 1},
	"METERS":         {"DISTANCE", 1},
	"KM":             {"DISTANCE", 1000},
	"KILOMETERS":     {"DISTANCE", 1000},
	"CM":             {"DISTANCE", 0.01},
	"MM":             {"DISTANCE", 0.001},
	"FEET":           {"DISTANCE", 0.3048},
	"INCHES":         {"DISTANCE", 0.0254},
	"STATUTE_MILES":  {"DISTANCE", 1609.344},
	"NAUTICAL_MILES": {"DISTANCE", 1852},
	"AU":             {"DISTANCE", 149597870700},
	"SECONDS":        {"TIME", 1},
	"MINUTES":        {"TIME", 60},
	"HOURS":          {"TIME", 3600},
	"DAYS":           {"TIME", 86400},
	"JULIAN_YEARS":   {"TIME", 31557600},
}

// convrt converts x from unit in to unit out. Unit names are matched
// without regard to case.
func convrt(x float64, in, out string) float64 {
	from, ok := units[strings.ToUpper(strings.TrimSpace(in))]
	if !ok {
		native.Signal("CONVRT", "SPICE(UNITSNOTREC)", "The input unit %q is not recognized.", in)
		return 0
	}
	to, ok := units[strings.ToUpper(strings.TrimSpace(out))]
	if !ok {
		native.Signal("CONVRT", "SPICE(UNITSNOTREC)", "The output unit %q is not recognized.", out)
		return 0
	}
	if from.class != to.class {
		native.Signal("CONVRT", "SPICE(INCOMPATIBLEUNITS)",
			"Units %s and %s measure %s and %s.", in, out, strings.ToLower(from.class), strings.ToLower(to.class))
		return 0
	}
	return x * from.scale / to.scale
}

func rpd() float64 {
	return math.Pi / 180
}
