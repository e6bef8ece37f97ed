package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyThresholds(t *testing.T) {
	h := NewHeuristic()

	tests := []struct {
		name        string
		message     string
		wantMatches int
		wantPrefer  bool
	}{
		{
			name:        "open-ended message prefers quality",
			message:     "What do you think about my day?",
			wantMatches: 0,
			wantPrefer:  true,
		},
		{
			name:        "single topic is simple",
			message:     "I am so stressed lately",
			wantMatches: 1,
			wantPrefer:  false,
		},
		{
			name:        "multi-topic prefers quality",
			message:     "I feel very stressed about sleep and work",
			wantMatches: 3,
			wantPrefer:  true,
		},
		{
			name:        "empty message prefers quality",
			message:     "",
			wantMatches: 0,
			wantPrefer:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Classify(tt.message)
			assert.Equal(t, tt.wantMatches, got.MatchedKeywords)
			assert.Equal(t, tt.wantPrefer, got.PreferQuality)
		})
	}
}

func TestClassifyCountsDistinctPatterns(t *testing.T) {
	h := NewHeuristic()

	got := h.Classify("Stressed about my RELATIONSHIP and my sleep!!!")
	assert.GreaterOrEqual(t, got.MatchedKeywords, 3)
	assert.True(t, got.PreferQuality)
}

func TestClassifyIsDeterministic(t *testing.T) {
	h := NewHeuristic()

	first := h.Classify("work deadlines keep me up")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, h.Classify("work deadlines keep me up"))
	}
}
