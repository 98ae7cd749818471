package request

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

var intType = reflect.TypeFor[int]()

func TestRelay(t *testing.T) {
	tests := []struct {
		name     string
		req      any
		expected []any
	}{
		{
			name:     "type",
			req:      intType,
			expected: []any{intType},
		},
		{
			name:     "seed",
			req:      Seed{Type: intType, Seed: "n"},
			expected: []any{Seed{Type: intType, Seed: "n"}, intType},
		},
		{
			name: "parameter",
			req:  Parameter{Func: "f", Position: 1, Name: "count", Type: intType},
			expected: []any{
				Parameter{Func: "f", Position: 1, Name: "count", Type: intType},
				Seed{Type: intType, Seed: "count"},
				intType,
			},
		},
		{
			name: "field",
			req:  Field{Name: "Count", Type: intType},
			expected: []any{
				Field{Name: "Count", Type: intType},
				Seed{Type: intType, Seed: "Count"},
				intType,
			},
		},
		{
			name:     "parameter without type",
			req:      Parameter{Name: "x"},
			expected: []any{Parameter{Name: "x"}},
		},
		{
			name:     "unknown",
			req:      "raw",
			expected: []any{"raw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Relay(tt.req))
		})
	}
}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "count", NameOf(Parameter{Name: "count"}))
	assert.Equal(t, "Street", NameOf(Field{Name: "Street"}))
	assert.Equal(t, "Title", NameOf(Property{Name: "Title"}))
	assert.Equal(t, "seed", NameOf(Seed{Seed: "seed"}))
	assert.Empty(t, NameOf(Seed{Seed: 3}))
	assert.Empty(t, NameOf(intType))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "type int", Describe(intType))
	assert.Equal(t, "parameter count (int)", Describe(Parameter{Name: "count", Type: intType}))
	assert.Equal(t, "parameter #2 (int)", Describe(Parameter{Position: 2, Type: intType}))
	assert.Equal(t, "float64 request", Describe(1.5))
}
