package guidance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLookupRulePrecedence verifies that rules are evaluated in fixed order
// with first match winning.
func TestLookupRulePrecedence(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name             string
		role             string
		risk             string
		lat              float64
		lon              float64
		expectedAdvisory string
	}{
		{
			name:             "Farmer wins over high risk and conservation zone",
			role:             "farmer",
			risk:             "high",
			lat:              12.0,
			lon:              77.0,
			expectedAdvisory: "Rock bees are essential for crop pollination. Avoid pesticide use in this area for the next few days.",
		},
		{
			name:             "High risk wins over conservation zone",
			role:             "tourist",
			risk:             "high",
			lat:              12.0,
			lon:              77.0,
			expectedAdvisory: "This colony is in a high-risk area and requires expert intervention.",
		},
		{
			name:             "Conservation zone applies when role and risk rules do not match",
			role:             "tourist",
			risk:             "low",
			lat:              12.0,
			lon:              77.0,
			expectedAdvisory: "You are in a SENSITIVE Rock Bee Conservation Zone. Extreme care is required.",
		},
		{
			name:             "Default low risk advisory outside the zone",
			role:             "tourist",
			risk:             "low",
			lat:              0.0,
			lon:              0.0,
			expectedAdvisory: "Low risk detected. Continue monitoring the situation.",
		},
		{
			name:             "Unrecognized role and risk fall through to the default",
			role:             "alien",
			risk:             "medium",
			lat:              50.0,
			lon:              50.0,
			expectedAdvisory: "Low risk detected. Continue monitoring the situation.",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resp := Lookup(tc.role, tc.risk, tc.lat, tc.lon)
			assert.Equal(t, tc.expectedAdvisory, resp.Advisory)
			assert.NotEmpty(t, resp.Dos)
			assert.NotEmpty(t, resp.Donts)
		})
	}
}

// TestLookupCaseNormalization verifies role and risk matching ignores case.
func TestLookupCaseNormalization(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Lookup("farmer", "low", 0, 0), Lookup("FARMER", "Low", 0, 0))
	assert.Equal(t, Lookup("tourist", "high", 0, 0), Lookup("Tourist", "HIGH", 0, 0))
}

// TestLookupConservationBoundaries exercises the bounding box edges, which
// are inclusive on all sides.
func TestLookupConservationBoundaries(t *testing.T) {
	t.Parallel()

	zone := "You are in a SENSITIVE Rock Bee Conservation Zone. Extreme care is required."

	assert.Equal(t, zone, Lookup("tourist", "low", ConservationLatMin, ConservationLonMin).Advisory)
	assert.Equal(t, zone, Lookup("tourist", "low", ConservationLatMax, ConservationLonMax).Advisory)
	assert.NotEqual(t, zone, Lookup("tourist", "low", ConservationLatMin-0.001, ConservationLonMin).Advisory)
	assert.NotEqual(t, zone, Lookup("tourist", "low", ConservationLatMax, ConservationLonMax+0.001).Advisory)
}

// TestLookupIdempotent verifies identical inputs serialize to identical bytes.
func TestLookupIdempotent(t *testing.T) {
	t.Parallel()

	first, err := json.Marshal(Lookup("tourist", "high", 12.0, 77.0))
	require.NoError(t, err)
	second, err := json.Marshal(Lookup("tourist", "high", 12.0, 77.0))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
