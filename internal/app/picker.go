package app

import (
	"math/rand/v2"

	"github.com/basedfin/quotecast/internal/domain"
)

// Picker selects the quote to display for the current session.
// Selection is uniform over the list; the previously shown quote is not
// excluded, so repeats across sessions are expected.
type Picker struct {
	intn func(n int) int
}

// NewPicker creates a picker backed by the process-wide random source.
func NewPicker() *Picker {
	return &Picker{intn: rand.IntN}
}

// NewPickerWithSource creates a picker with a custom index source.
// The source must return a value in [0, n). Deterministic sources are
// the seam tests inject.
func NewPickerWithSource(intn func(n int) int) *Picker {
	if intn == nil {
		panic("Picker: index source is required")
	}

	return &Picker{intn: intn}
}

// Pick returns one quote chosen uniformly from list. Callers guarantee a
// non-empty list per the display invariant; an empty list yields the zero
// quote.
func (p *Picker) Pick(list domain.QuoteList) domain.Quote {
	if len(list) == 0 {
		return ""
	}

	return list[p.intn(len(list))]
}
