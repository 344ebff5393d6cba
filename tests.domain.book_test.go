package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidateBookPayload ensures the book entity rules.
func TestValidateBookPayload(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		valid    bool
		expected string
	}{
		{
			name:    "valid book",
			payload: `{"title":"The Art of Computer Programming","author":"Donald Knuth","numberOfPages":672}`,
			valid:   true,
		},
		{
			name:    "valid book without pages",
			payload: `{"title":"Some title","author":"Some author"}`,
			valid:   true,
		},
		{
			name:     "missing title",
			payload:  `{"author":"Donald Knuth"}`,
			valid:    false,
			expected: "Title",
		},
		{
			name:    "valid book without author",
			payload: `{"title":"The Art of Computer Programming"}`,
			valid:   true,
		},
		{
			name:     "negative number of pages",
			payload:  `{"title":"Some title","author":"Some author","numberOfPages":-1}`,
			valid:    false,
			expected: "NumberOfPages",
		},
		{
			name:     "misspelled title",
			payload:  `{"title":"The Curiousity Shop","author":"Some author"}`,
			valid:    false,
			expected: MisspelledTitleMessage,
		},
		{
			name:    "not a json object",
			payload: `"plain string"`,
			valid:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBookPayload([]byte(tc.payload))
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if len(tc.expected) != 0 {
				assert.ErrorContains(t, err, tc.expected)
			}
		})
	}
}

// TestBookDefinition ensures the engine definition of the book entity.
func TestBookDefinition(t *testing.T) {
	def := BookDefinition()
	assert.Equal(t, BookEntity, def.Name)
	assert.Equal(t, BookIDPrefix, def.IDPrefix)
	assert.Error(t, def.ValidatePayload([]byte(`{}`)))
	assert.NoError(t, def.ValidatePayload([]byte(`{"title":"t","author":"a"}`)))
}

// TestEntityDefinitions ensures the book entity is served by default.
func TestEntityDefinitions(t *testing.T) {
	defs := EntityDefinitions()
	_, ok := defs[BookEntity]
	assert.True(t, ok)
	assert.Contains(t, RegisteredEntities(), BookEntity)
}
