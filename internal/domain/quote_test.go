package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQuotes_Size(t *testing.T) {
	defaults := DefaultQuotes()

	require.Len(t, defaults, 24)
	assert.True(t, defaults.Valid())
}

func TestDefaultQuotes_ReturnsCopy(t *testing.T) {
	first := DefaultQuotes()
	first[0] = "mutated"

	second := DefaultQuotes()
	assert.NotEqual(t, Quote("mutated"), second[0])
}

func TestQuoteList_Valid(t *testing.T) {
	tests := []struct {
		name  string
		list  QuoteList
		valid bool
	}{
		{name: "nil list", list: nil, valid: false},
		{name: "empty list", list: QuoteList{}, valid: false},
		{name: "single quote", list: QuoteList{"gm"}, valid: true},
		{name: "blank entry", list: QuoteList{"gm", "   "}, valid: false},
		{name: "empty entry", list: QuoteList{"gm", ""}, valid: false},
		{name: "duplicates allowed", list: QuoteList{"gm", "gm"}, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.list.Valid())
		})
	}
}

func TestQuoteList_Clone(t *testing.T) {
	original := QuoteList{"a", "b"}
	clone := original.Clone()

	clone[0] = "c"
	assert.Equal(t, Quote("a"), original[0])

	assert.Nil(t, QuoteList(nil).Clone())
}

func TestQuoteList_StringsRoundTrip(t *testing.T) {
	list := QuoteList{"one", "two"}

	assert.Equal(t, list, QuoteListFromStrings(list.Strings()))
}
