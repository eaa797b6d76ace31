package schema

import "fmt"

// FieldKind is the closed set of question kinds a wizard step can hold.
type FieldKind string

const (
	KindSelect   FieldKind = "select"
	KindRadio    FieldKind = "radio"
	KindCheckbox FieldKind = "checkbox"
	KindText     FieldKind = "text"
	KindNumber   FieldKind = "number"
	KindTextArea FieldKind = "textarea"
)

// Kinds lists every supported field kind in declaration order.
func Kinds() []FieldKind {
	return []FieldKind{KindSelect, KindRadio, KindCheckbox, KindText, KindNumber, KindTextArea}
}

// Valid reports whether k is one of the declared kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case KindSelect, KindRadio, KindCheckbox, KindText, KindNumber, KindTextArea:
		return true
	default:
		return false
	}
}

// IsMultiChoice reports whether answers of this kind are sets of option keys.
func (k FieldKind) IsMultiChoice() bool {
	return k == KindCheckbox
}

// IsChoice reports whether the kind draws its values from Field.Options.
func (k FieldKind) IsChoice() bool {
	switch k {
	case KindSelect, KindRadio, KindCheckbox:
		return true
	default:
		return false
	}
}

// KindHandlers holds one callback per field kind. Dispatch refuses to run
// when a handler is missing so adding a kind breaks every caller that has
// not been taught about it.
type KindHandlers[T any] struct {
	Select   func() T
	Radio    func() T
	Checkbox func() T
	Text     func() T
	Number   func() T
	TextArea func() T
}

// Dispatch invokes the handler registered for kind.
func Dispatch[T any](kind FieldKind, h KindHandlers[T]) (T, error) {
	var zero T
	var fn func() T
	switch kind {
	case KindSelect:
		fn = h.Select
	case KindRadio:
		fn = h.Radio
	case KindCheckbox:
		fn = h.Checkbox
	case KindText:
		fn = h.Text
	case KindNumber:
		fn = h.Number
	case KindTextArea:
		fn = h.TextArea
	default:
		return zero, fmt.Errorf("schema: unsupported field kind %q", kind)
	}
	if fn == nil {
		return zero, fmt.Errorf("schema: no handler for field kind %q", kind)
	}
	return fn(), nil
}
