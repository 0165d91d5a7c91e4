package model

import "math/rand"

// DefaultQuotes is the motivational pool a task's quote is drawn from.
var DefaultQuotes = []string{
	"Believe you can and you're halfway there.",
	"Progress, not perfection.",
	"Success is not for the lazy.",
	"Each step forward is toward success.",
}

// QuotePicker returns a quote for a newly created task.
type QuotePicker func() string

// RandomQuotes picks uniformly from pool, falling back to DefaultQuotes
// when pool is empty.
func RandomQuotes(pool []string) QuotePicker {
	if len(pool) == 0 {
		pool = DefaultQuotes
	}
	quotes := append([]string(nil), pool...)
	return func() string {
		return quotes[rand.Intn(len(quotes))]
	}
}
