package recurrence

import (
	"fmt"
	"strconv"
	"strings"
)

// Occurrences is the ceiling on the number of occurrences expanded per
// recurring transaction. It implements flag.Value.
type Occurrences int

const (
	// None disables the expansion of recurring transactions.
	None Occurrences = 0
	// Default is enough for a few years of monthly transactions.
	Default Occurrences = 100
	// Unlimited approximates "every occurrence in the window".
	Unlimited Occurrences = 2000
)

// ParseOccurrences parses a ceiling: a non negative number, or one of
// "none", "default", "all".
func ParseOccurrences(s string) (Occurrences, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return None, nil
	case "", "default":
		return Default, nil
	case "all", "unlimited":
		return Unlimited, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return None, fmt.Errorf("invalid occurrences %q: want a non negative number, none, default or all", s)
	}
	if n > int(Unlimited) {
		n = int(Unlimited)
	}
	return Occurrences(n), nil
}

func (o Occurrences) String() string { return strconv.Itoa(int(o)) }

// Set implements flag.Value.
func (o *Occurrences) Set(s string) error {
	v, err := ParseOccurrences(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}
