package content

import (
	"strconv"
	"strings"
)

// Dictionary looks up user-facing texts by "l10n.key" or "a11y.key".
type Dictionary struct {
	entries map[string]string
}

// NewDictionary builds a dictionary from the l10n and a11y maps, falling
// back to the default texts for missing keys.
func NewDictionary(l10n, a11y map[string]string) Dictionary {
	d := Dictionary{entries: map[string]string{}}
	defaults := Defaults()
	for _, group := range []string{"l10n", "a11y"} {
		if texts, ok := defaults[group].(map[string]any); ok {
			for k, v := range texts {
				if s, ok := v.(string); ok {
					d.entries[group+"."+k] = s
				}
			}
		}
	}
	for k, v := range l10n {
		d.entries["l10n."+k] = v
	}
	for k, v := range a11y {
		d.entries["a11y."+k] = v
	}
	return d
}

// Get returns the text for key, or "" if there is none.
func (d Dictionary) Get(key string) string {
	return d.entries[key]
}

// Count replaces "@count" in the text for key.
func (d Dictionary) Count(key string, n int) string {
	return strings.ReplaceAll(d.Get(key), "@count", strconv.Itoa(n))
}
