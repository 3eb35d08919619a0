package testutils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recorder captures Errorf calls instead of failing the test
type recorder struct {
	failures []string
}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestJSONAsserter_DefaultOptions(t *testing.T) {
	opts := NewJSONAsserter(t).Options()

	assert.True(t, opts.IgnoreExtraKeys)
	assert.True(t, opts.NilToEmptyArray)
	assert.False(t, opts.IgnoreArrayOrder)
	assert.Empty(t, opts.IgnoredFields)
}

func TestJSONAsserter_Diff(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		actual   string
		expected string
		match    bool
	}{
		{
			name:     "identical",
			actual:   `{"a": 1, "b": [1, 2]}`,
			expected: `{"a": 1, "b": [1, 2]}`,
			match:    true,
		},
		{
			name:     "extra keys ignored by default",
			actual:   `{"a": 1, "extra": true}`,
			expected: `{"a": 1}`,
			match:    true,
		},
		{
			name:     "extra keys reported when not ignored",
			opts:     []Option{WithIgnoreExtraKeys(false)},
			actual:   `{"a": 1, "extra": true}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "null equals empty array",
			actual:   `{"service_uuids": null}`,
			expected: `{"service_uuids": []}`,
			match:    true,
		},
		{
			name:     "value mismatch",
			actual:   `{"a": 2}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "array order matters by default",
			actual:   `[2, 1]`,
			expected: `[1, 2]`,
		},
		{
			name:     "array order ignored when asked",
			opts:     []Option{WithIgnoreArrayOrder(true)},
			actual:   `[2, 1]`,
			expected: `[1, 2]`,
			match:    true,
		},
		{
			name:     "ignored fields",
			opts:     []Option{WithIgnoredFields("hits")},
			actual:   `{"a": 1, "hits": 3}`,
			expected: `{"a": 1, "hits": 0}`,
			match:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := NewJSONAsserter(t).WithOptions(tt.opts...).Diff(tt.actual, tt.expected)
			if tt.match {
				assert.Empty(t, diff)
			} else {
				assert.NotEmpty(t, diff)
			}
		})
	}
}

func TestJSONAsserter_AssertReportsFailure(t *testing.T) {
	r := &recorder{}
	NewJSONAsserter(r).Assert(`{"a": 2}`, `{"a": 1}`)
	assert.Len(t, r.failures, 1)

	r = &recorder{}
	NewJSONAsserter(r).AssertValue(map[string]int{"a": 1}, `{"a": 1}`)
	assert.Empty(t, r.failures)
}
