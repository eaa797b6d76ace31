// Package uischema loads declarative wizard schemas (JSON or YAML) into
// schema.Schema values. Rule-string conditions are compiled into pure
// functions at load time and option lists may be resolved from named lookup
// tables, so the rest of the engine only ever sees the immutable model.
package uischema
