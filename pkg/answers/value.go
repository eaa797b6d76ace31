package answers

// Value is the answer held for one field: either a single token or a
// deduplicated set of option keys. The zero value is an absent answer.
type Value struct {
	multi bool
	text  string
	set   []string
}

// Single wraps a scalar answer.
func Single(text string) Value {
	return Value{text: text}
}

// Set builds a multi-choice answer, dropping duplicates while keeping the
// first occurrence order.
func Set(keys ...string) Value {
	out := Value{multi: true}
	for _, key := range keys {
		if !containsKey(out.set, key) {
			out.set = append(out.set, key)
		}
	}
	return out
}

// IsSet reports whether the value holds a multi-choice answer.
func (v Value) IsSet() bool { return v.multi }

// Text returns the scalar answer. Sets return "".
func (v Value) Text() string {
	if v.multi {
		return ""
	}
	return v.text
}

// Keys returns a copy of the selected keys. Scalars return nil.
func (v Value) Keys() []string {
	if !v.multi || len(v.set) == 0 {
		return nil
	}
	out := make([]string, len(v.set))
	copy(out, v.set)
	return out
}

// Contains reports whether key is part of the set.
func (v Value) Contains(key string) bool {
	return v.multi && containsKey(v.set, key)
}

// Empty reports whether the value carries no answer.
func (v Value) Empty() bool {
	if v.multi {
		return len(v.set) == 0
	}
	return v.text == ""
}

// Strings flattens the value: set keys, or the scalar as a one-element slice.
func (v Value) Strings() []string {
	if v.multi {
		return v.Keys()
	}
	if v.text == "" {
		return nil
	}
	return []string{v.text}
}

func (v Value) snapshot() any {
	if !v.multi {
		return v.text
	}
	out := make([]any, len(v.set))
	for i, key := range v.set {
		out[i] = key
	}
	return out
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func without(keys []string, drop []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !containsKey(drop, k) {
			out = append(out, k)
		}
	}
	return out
}
