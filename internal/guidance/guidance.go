// Package guidance maps a reporter's role, the derived risk level and GPS
// coordinates to do/don't safety advisories for rock bee colony encounters.
package guidance

import "strings"

// Response holds the advisory returned for a role/risk/location combination.
type Response struct {
	Dos      []string `json:"dos"`
	Donts    []string `json:"donts"`
	Advisory string   `json:"advisory"`
}

// Conservation zone bounding box, treated as ecologically sensitive.
const (
	ConservationLatMin = 10.0
	ConservationLatMax = 15.0
	ConservationLonMin = 75.0
	ConservationLonMax = 80.0
)

// rule pairs a predicate with the response returned when it matches.
type rule struct {
	matches  func(role, risk string, lat, lon float64) bool
	response Response
}

// rules are evaluated in order, first match wins. The farmer rule outranks
// the high risk rule, which outranks the conservation zone rule.
var rules = []rule{
	{
		// Farmer, ecology-first priority regardless of risk or location.
		matches: func(role, risk string, lat, lon float64) bool {
			return role == "farmer"
		},
		response: Response{
			Dos: []string{
				"Allow natural bee activity for pollination",
				"Observe the colony from a safe distance",
			},
			Donts: []string{
				"Do NOT spray pesticides near the farm",
				"Do NOT disturb or destroy the bee colony",
			},
			Advisory: "Rock bees are essential for crop pollination. " +
				"Avoid pesticide use in this area for the next few days.",
		},
	},
	{
		// High risk, public or crowded area.
		matches: func(role, risk string, lat, lon float64) bool {
			return risk == "high"
		},
		response: Response{
			Dos: []string{
				"Maintain a safe distance from the colony",
				"Inform authorities using the app",
				"Warn nearby people calmly",
			},
			Donts: []string{
				"Do NOT throw stones or objects",
				"Do NOT spray water, smoke, or chemicals",
				"Do NOT attempt to remove the hive yourself",
			},
			Advisory: "This colony is in a high-risk area and requires expert intervention.",
		},
	},
	{
		// Inside the sensitive conservation zone.
		matches: func(role, risk string, lat, lon float64) bool {
			return lat >= ConservationLatMin && lat <= ConservationLatMax &&
				lon >= ConservationLonMin && lon <= ConservationLonMax
		},
		response: Response{
			Dos: []string{
				"Strictly maintain distance (min 20 meters)",
				"Report immediately to Forest Department",
				"Keep area quiet",
			},
			Donts: []string{
				"NO photography with flash",
				"NO presence of humans for long durations",
				"Absolutely NO chemical usage",
			},
			Advisory: "You are in a SENSITIVE Rock Bee Conservation Zone. Extreme care is required.",
		},
	},
}

// defaultResponse is returned when no rule matches, low risk general public.
var defaultResponse = Response{
	Dos: []string{
		"Maintain a safe distance",
		"Stay calm and observe the situation",
	},
	Donts: []string{
		"Do NOT disturb the bee colony",
		"Do NOT create panic near the area",
	},
	Advisory: "Low risk detected. Continue monitoring the situation.",
}

// Lookup returns the advisory for the given role, risk level and location.
// Role and risk are case-insensitive. It is a pure function with no side
// effects, identical inputs always produce identical responses.
func Lookup(role, risk string, lat, lon float64) Response {
	role = strings.ToLower(role)
	risk = strings.ToLower(risk)

	for _, r := range rules {
		if r.matches(role, risk, lat, lon) {
			return r.response
		}
	}
	return defaultResponse
}
