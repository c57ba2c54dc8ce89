// Package schema implements the declarative field pipeline used to turn a
// raw request mapping into a validated record. Each field declares a
// coercion, ordered pre/post transform stages, an optional wrap stage
// around the coercion, alternate input names and a nested extraction path.
// Whole-record checks run before any field processing (over the raw
// mapping) or after all fields are processed (over the built record).
package schema

import "fmt"

// Raw is the unvalidated input mapping as decoded from a request body.
type Raw map[string]interface{}

// Record is a validated record produced by Schema.Construct.
type Record map[string]interface{}

// StageFunc transforms a single field value, returning the new value or an
// error with a human-readable reason.
type StageFunc func(v interface{}) (interface{}, error)

// CoerceFunc converts a raw value into the field's required type.
type CoerceFunc func(v interface{}) (interface{}, error)

// WrapFunc runs around coercion. It receives the raw value (after pre
// stages) and a continuation that performs the coercion; it decides if and
// how the continuation is invoked.
type WrapFunc func(v interface{}, next CoerceFunc) (interface{}, error)

// BeforeCheck sees the raw mapping before any field processing and may edit
// it in place. Returning an error rejects the whole record.
type BeforeCheck func(raw Raw) error

// AfterCheck sees the fully constructed record. Returning an error rejects
// the whole record.
type AfterCheck func(rec Record) error

// Field declares one field of a schema.
type Field struct {
	Name string

	// Coerce converts the resolved value to the field's type. Required.
	Coerce CoerceFunc

	// Pre stages run before coercion, in declared order.
	Pre []StageFunc
	// Wrap, when set, runs around the coercion step.
	Wrap WrapFunc
	// Post stages run after coercion, in declared order.
	Post []StageFunc

	// Aliases are alternate input names tried in order after Name.
	Aliases []string
	// Path extracts the value from nested input, tried after Name and
	// Aliases. Absence at any segment yields "absent".
	Path []string

	// Default is used when the field is absent from the input.
	Default interface{}
	// DefaultFunc produces a fresh default per record. Takes precedence
	// over Default. Container defaults must use DefaultFunc so records
	// never share a mutable instance.
	DefaultFunc func() interface{}
	// Nullable marks the field optional-with-null-default: absent or null
	// input stores nil instead of failing.
	Nullable bool

	// OutName renames the field in alias-based output projection.
	OutName string
}

// Schema is an ordered set of field declarations plus whole-record checks.
type Schema struct {
	Name   string
	Fields []Field

	Before []BeforeCheck
	After  []AfterCheck
}

// absent is the sentinel for "no value found under any resolution strategy".
type absentType struct{}

var absent = absentType{}

// resolve finds the input value for f: direct name first, then alternates
// in declared order, then the nested path.
func (f *Field) resolve(raw Raw) interface{} {
	if v, ok := raw[f.Name]; ok {
		return v
	}
	for _, alias := range f.Aliases {
		if v, ok := raw[alias]; ok {
			return v
		}
	}
	if len(f.Path) > 0 {
		node := interface{}(map[string]interface{}(raw))
		for _, seg := range f.Path {
			m, ok := node.(map[string]interface{})
			if !ok {
				return absent
			}
			node, ok = m[seg]
			if !ok {
				return absent
			}
		}
		return node
	}
	return absent
}

// defaultValue applies default/required handling for an absent field.
func (f *Field) defaultValue() (interface{}, error) {
	switch {
	case f.DefaultFunc != nil:
		return f.DefaultFunc(), nil
	case f.Default != nil:
		return f.Default, nil
	case f.Nullable:
		return nil, nil
	default:
		return nil, fmt.Errorf("required field is missing")
	}
}

// process runs the field pipeline: pre stages, coercion (possibly wrapped),
// then post stages.
func (f *Field) process(v interface{}) (interface{}, error) {
	var err error
	for _, stage := range f.Pre {
		if v, err = stage(v); err != nil {
			return nil, err
		}
	}

	if f.Wrap != nil {
		v, err = f.Wrap(v, f.Coerce)
	} else {
		v, err = f.Coerce(v)
	}
	if err != nil {
		return nil, err
	}

	for _, stage := range f.Post {
		if v, err = stage(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Construct validates and transforms raw into a Record. On any stage
// failure it returns a *FieldError or *RecordError and no partial record.
// The caller's map is never mutated; before-checks edit a shallow copy.
func (s *Schema) Construct(raw Raw) (Record, error) {
	work := make(Raw, len(raw))
	for k, v := range raw {
		work[k] = v
	}

	for _, check := range s.Before {
		if err := check(work); err != nil {
			return nil, &RecordError{Schema: s.Name, Reason: err.Error()}
		}
	}

	rec := make(Record, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]

		v := f.resolve(work)
		if v == absent {
			dv, err := f.defaultValue()
			if err != nil {
				return nil, &FieldError{Field: f.Name, Reason: err.Error()}
			}
			rec[f.Name] = dv
			continue
		}

		if v == nil {
			if !f.Nullable {
				return nil, &FieldError{Field: f.Name, Reason: "null is not allowed"}
			}
			rec[f.Name] = nil
			continue
		}

		out, err := f.process(v)
		if err != nil {
			return nil, &FieldError{Field: f.Name, Reason: err.Error()}
		}
		rec[f.Name] = out
	}

	for _, check := range s.After {
		if err := check(rec); err != nil {
			return nil, &RecordError{Schema: s.Name, Reason: err.Error()}
		}
	}

	return rec, nil
}

// ProjectOption configures Project.
type ProjectOption func(*projectConfig)

type projectConfig struct {
	useAliases bool
}

// WithAliases renames projected fields to their declared OutName.
func WithAliases() ProjectOption {
	return func(cfg *projectConfig) {
		cfg.useAliases = true
	}
}

// Project restricts rec to the schema's declared fields. Fields of rec not
// declared on the schema are omitted. With WithAliases, fields that declare
// an OutName are renamed in the result.
func (s *Schema) Project(rec Record, opts ...ProjectOption) map[string]interface{} {
	var cfg projectConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	out := make(map[string]interface{}, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		v, ok := rec[f.Name]
		if !ok {
			continue
		}
		name := f.Name
		if cfg.useAliases && f.OutName != "" {
			name = f.OutName
		}
		out[name] = v
	}
	return out
}
