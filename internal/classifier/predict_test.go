package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDecide verifies the confidence-thresholded decision policy.
func TestDecide(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name               string
		probabilities      []float32
		threshold          float64
		expectedLabel      string
		expectedStatus     string
		expectedConfidence float64
	}{
		{
			name:               "Rock bee above threshold is confirmed",
			probabilities:      []float32{0.1, 0.9},
			threshold:          0.7,
			expectedLabel:      LabelRockBee,
			expectedStatus:     StatusConfirmed,
			expectedConfidence: 0.9,
		},
		{
			name:               "Rock bee exactly at threshold is confirmed",
			probabilities:      []float32{0.3, 0.7},
			threshold:          0.7,
			expectedLabel:      LabelRockBee,
			expectedStatus:     StatusConfirmed,
			expectedConfidence: 0.7,
		},
		{
			name:               "Rock bee below threshold goes to manual review",
			probabilities:      []float32{0.4, 0.6},
			threshold:          0.7,
			expectedLabel:      LabelPossibleRockBee,
			expectedStatus:     StatusManualReview,
			expectedConfidence: 0.6,
		},
		{
			name:               "Negative class wins at high probability",
			probabilities:      []float32{0.95, 0.05},
			threshold:          0.7,
			expectedLabel:      LabelNotRockBee,
			expectedStatus:     StatusNegative,
			expectedConfidence: 0.95,
		},
		{
			name:               "Negative class wins at low probability",
			probabilities:      []float32{0.55, 0.45},
			threshold:          0.7,
			expectedLabel:      LabelNotRockBee,
			expectedStatus:     StatusNegative,
			expectedConfidence: 0.55,
		},
		{
			name:               "Custom threshold changes the confirmation cutoff",
			probabilities:      []float32{0.4, 0.6},
			threshold:          0.5,
			expectedLabel:      LabelRockBee,
			expectedStatus:     StatusConfirmed,
			expectedConfidence: 0.6,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := decide(tc.probabilities, tc.threshold)
			assert.Equal(t, tc.expectedLabel, result.Label)
			assert.Equal(t, tc.expectedStatus, result.Status)
			assert.InDelta(t, tc.expectedConfidence, result.Confidence, 0.0001)
		})
	}
}
