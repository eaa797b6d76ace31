package answers

import (
	"sort"
	"strings"
)

// CustomReader is the read side of the custom-entry store.
type CustomReader interface {
	List(stepID, fieldID string) []string
}

// CustomKey builds the "{stepId}-{fieldId}" key custom entries are filed
// under.
func CustomKey(stepID, fieldID string) string {
	return stepID + "-" + fieldID
}

// Custom keeps the free-text "other" entries typed next to enumerated
// options, in insertion order and without duplicates.
type Custom struct {
	entries map[string][]string
}

var _ CustomReader = (*Custom)(nil)

// NewCustom returns an empty custom-entry store.
func NewCustom() *Custom {
	return &Custom{entries: make(map[string][]string)}
}

// Add appends text unless it is blank or already present. It reports whether
// the store changed.
func (c *Custom) Add(stepID, fieldID, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	key := CustomKey(stepID, fieldID)
	if containsKey(c.entries[key], text) {
		return false
	}
	c.entries[key] = append(c.entries[key], text)
	return true
}

// Remove deletes the first matching entry. It reports whether the store
// changed.
func (c *Custom) Remove(stepID, fieldID, text string) bool {
	text = strings.TrimSpace(text)
	key := CustomKey(stepID, fieldID)
	list := c.entries[key]
	for i, entry := range list {
		if entry != text {
			continue
		}
		next := make([]string, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		c.entries[key] = next
		return true
	}
	return false
}

// List returns a copy of the entries for a field, never nil.
func (c *Custom) List(stepID, fieldID string) []string {
	list := c.entries[CustomKey(stepID, fieldID)]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Keys returns the composite keys that hold at least one entry.
func (c *Custom) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k, v := range c.entries {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
