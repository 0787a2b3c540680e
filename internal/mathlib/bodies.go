package mathlib

import "strings"

var bodyCodes = map[string]int64{
	"SOLAR SYSTEM BARYCENTER": 0,
	"SSB":                     0,
	"MERCURY":                 199,
	"VENUS":                   299,
	"EARTH":                   399,
	"MOON":                    301,
	"MARS":                    499,
	"PHOBOS":                  401,
	"DEIMOS":                  402,
	"JUPITER":                 599,
	"IO":                      501,
	"EUROPA":                  502,
	"SATURN":                  699,
	"TITAN":                   606,
	"URANUS":                  799,
	"NEPTUNE":                 899,
	"SUN":                     10,
}

// bodyNames holds the preferred name of each code.
var bodyNames = map[int64]string{
	0:   "SOLAR SYSTEM BARYCENTER",
	10:  "SUN",
	199: "MERCURY",
	299: "VENUS",
	301: "MOON",
	399: "EARTH",
	401: "PHOBOS",
	402: "DEIMOS",
	499: "MARS",
	501: "IO",
	502: "EUROPA",
	599: "JUPITER",
	606: "TITAN",
	699: "SATURN",
	799: "URANUS",
	899: "NEPTUNE",
}

// normalizeBodyName upper-cases a name and collapses runs of blanks.
func normalizeBodyName(name string) string {
	return strings.Join(strings.Fields(strings.ToUpper(name)), " ")
}

func bodn2c(name string) (int64, bool) {
	code, ok := bodyCodes[normalizeBodyName(name)]
	return code, ok
}

func bodc2n(code int64) (string, bool) {
	name, ok := bodyNames[code]
	return name, ok
}
