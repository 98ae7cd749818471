package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"city", "City", 1},
		{"zip", "zip", 0},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
			assert.Equal(t, tt.expected, Distance(tt.b, tt.a), "symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("zipCode", "ZIP_CODE"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.75, Similarity("city", "cty"), 1e-9)
}

func TestSuggest(t *testing.T) {
	best, ok := Suggest("adress", []string{"city", "address", "zip"})
	assert.True(t, ok)
	assert.Equal(t, "address", best)

	_, ok = Suggest("quantity", []string{"city", "zip"})
	assert.False(t, ok)

	best, ok = Suggest("ab", []string{"", "ax", "ay"})
	assert.True(t, ok)
	assert.Equal(t, "ax", best, "ties keep the earlier candidate")

	assert.Equal(t, ` (did you mean "address"?)`, Hint("adress", []string{"address"}))
	assert.Empty(t, Hint("adress", nil))
}
