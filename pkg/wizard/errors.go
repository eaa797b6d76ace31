package wizard

import "errors"

var (
	// ErrNoSteps is returned when a controller is built from a schema
	// without steps.
	ErrNoSteps = errors.New("wizard: schema has no steps")
	// ErrUnknownField is returned when an edit names a field the step does
	// not declare.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrUnknownOption is returned when a choice edit names a key the field
	// does not offer.
	ErrUnknownOption = errors.New("wizard: unknown option")
	// ErrNotExclusive is returned by SelectExclusive for keys that are not
	// the field's unknown/needsHelp option.
	ErrNotExclusive = errors.New("wizard: option is not exclusive")
	// ErrNotNumeric is returned when a numeric field receives non-numeric
	// text.
	ErrNotNumeric = errors.New("wizard: value is not numeric")
	// ErrNoCustomEntry is returned when custom entries are added to a field
	// without a custom-trigger option.
	ErrNoCustomEntry = errors.New("wizard: field does not accept custom entries")
)
