package shootout

import (
	"fmt"
	"strings"
)

// Filter is a list of substrings a name must contain. Entries
// starting with "!" are substrings it must not contain. It
// implements flag.Value so it can be given multiple times.
type Filter []string

func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(*f, ",")
}

func (f *Filter) Set(s string) error {
	*f = append(*f, s)
	return nil
}

// Match reports whether the name of v passes every entry of f. An
// empty filter matches everything.
func (f Filter) Match(v fmt.Stringer) bool {
	name := v.String()
	for _, entry := range f {
		if neg, ok := strings.CutPrefix(entry, "!"); ok {
			if strings.Contains(name, neg) {
				return false
			}
		} else if !strings.Contains(name, entry) {
			return false
		}
	}
	return true
}

// Apply returns the items matching f, in order.
func Apply[T fmt.Stringer](f Filter, items []T) []T {
	var out []T
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}
