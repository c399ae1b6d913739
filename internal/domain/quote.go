// Package domain contains core business entities and rules.
package domain

import "strings"

// Quote is a single castable line of text. A quote has no identity beyond
// its text and its position in the list; duplicates are permitted.
type Quote string

// QuoteList is an ordered sequence of quotes. The order is management and
// display order only; random selection ignores it.
type QuoteList []Quote

// DefaultAdminSecret is the passphrase in effect until the operator sets
// their own. It is exempt from the minimum-length rule that applies to
// operator-chosen secrets.
const DefaultAdminSecret = "basedfin"

// MinSecretLength is the minimum trimmed length for an operator-chosen
// admin secret.
const MinSecretLength = 4

// defaultQuotes is the built-in fallback list. It is substituted whenever
// every other quote source yields nothing usable, so it must never be empty.
var defaultQuotes = QuoteList{
	"Stay based, stay building.",
	"Ship it before you overthink it.",
	"Consistency compounds faster than talent.",
	"The best time to start was yesterday. The second best is now.",
	"Conviction is quiet. Hype is loud.",
	"Small daily wins beat rare big ones.",
	"Your network is your net worth.",
	"Build in public, learn in public.",
	"Bear markets build the best builders.",
	"Focus is saying no a hundred times a day.",
	"Don't chase the pump, chase the product.",
	"Every expert was once a beginner who kept going.",
	"Touch grass, then touch code.",
	"Signal over noise, always.",
	"The market rewards patience it cannot shake out.",
	"Do the boring work nobody claps for.",
	"Ideas are cheap. Shipped is priceless.",
	"Stack skills like you stack sats.",
	"You miss every cast you don't send.",
	"Long-term greedy beats short-term clever.",
	"Be so good they can't ignore you.",
	"Fortune favors the onchain.",
	"Keep your fees low and your standards high.",
	"The grind doesn't care about the chart.",
}

// DefaultQuotes returns a copy of the built-in quote list.
// Callers may mutate the returned slice freely.
func DefaultQuotes() QuoteList {
	out := make(QuoteList, len(defaultQuotes))
	copy(out, defaultQuotes)

	return out
}

// Valid reports whether the list is usable as a quote source: non-empty,
// with every entry holding visible text. An invalid list is treated the
// same as an absent one by the resolver.
func (l QuoteList) Valid() bool {
	if len(l) == 0 {
		return false
	}

	for _, q := range l {
		if strings.TrimSpace(string(q)) == "" {
			return false
		}
	}

	return true
}

// Clone returns an independent copy of the list.
func (l QuoteList) Clone() QuoteList {
	if l == nil {
		return nil
	}

	out := make(QuoteList, len(l))
	copy(out, l)

	return out
}

// Strings converts the list to a plain string slice for serialization.
func (l QuoteList) Strings() []string {
	out := make([]string, len(l))
	for i, q := range l {
		out[i] = string(q)
	}

	return out
}

// QuoteListFromStrings builds a QuoteList from raw strings, e.g. a decoded
// JSON array. No validation is performed; call Valid on the result.
func QuoteListFromStrings(raw []string) QuoteList {
	out := make(QuoteList, len(raw))
	for i, s := range raw {
		out[i] = Quote(s)
	}

	return out
}
