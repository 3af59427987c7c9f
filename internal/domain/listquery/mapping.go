package listquery

import (
	"strconv"
	"strings"
)

const (
	PageKey  = "page"
	LimitKey = "limit"
)

// Transform turns a raw filter value into the value the backend expects.
type Transform interface {
	Apply(raw string) Opt[Value]
}

type TransformFunc func(raw string) Opt[Value]

func (f TransformFunc) Apply(raw string) Opt[Value] { return f(raw) }

// Raw passes the value through unchanged.
func Raw() Transform {
	return TransformFunc(func(raw string) Opt[Value] {
		if raw == "" {
			return None[Value]()
		}
		return Some(String(raw))
	})
}

// Numeric coerces the value to an int. A value that does not parse is sent
// trimmed as a string instead of being dropped.
func Numeric() Transform {
	return TransformFunc(func(raw string) Opt[Value] {
		s := strings.TrimSpace(raw)
		if s == "" {
			return None[Value]()
		}
		if n, err := strconv.Atoi(s); err == nil {
			return Some(Int(n))
		}
		return Some(String(s))
	})
}

// Option is one display label of a lookup table and its backend value.
type Option struct {
	Label string
	Value Value
}

// LookupTransform translates display labels to backend values. Labels are
// matched exactly first, then case-insensitively. A label with no entry
// falls back to a lowercased copy of itself.
type LookupTransform struct {
	options []Option
	exact   map[string]Value
	folded  map[string]Value
}

func Lookup(options ...Option) *LookupTransform {
	t := &LookupTransform{
		options: options,
		exact:   make(map[string]Value, len(options)),
		folded:  make(map[string]Value, len(options)),
	}
	for _, o := range options {
		t.exact[o.Label] = o.Value
		if _, ok := t.folded[strings.ToLower(o.Label)]; !ok {
			t.folded[strings.ToLower(o.Label)] = o.Value
		}
	}
	return t
}

// BoolLookup builds a lookup whose backend values are booleans.
func BoolLookup(trueLabel, falseLabel string) *LookupTransform {
	return Lookup(
		Option{Label: trueLabel, Value: Bool(true)},
		Option{Label: falseLabel, Value: Bool(false)},
	)
}

func (t *LookupTransform) Apply(raw string) Opt[Value] {
	if raw == "" {
		return None[Value]()
	}
	if v, ok := t.exact[raw]; ok {
		return Some(v)
	}
	if v, ok := t.folded[strings.ToLower(raw)]; ok {
		return Some(v)
	}
	return Some(String(strings.ToLower(raw)))
}

// Labels lists the display labels in declaration order.
func (t *LookupTransform) Labels() []string {
	out := make([]string, 0, len(t.options))
	for _, o := range t.options {
		out = append(out, o.Label)
	}
	return out
}

// Label returns the display label for a backend value, if any.
func (t *LookupTransform) Label(v Value) (string, bool) {
	for _, o := range t.options {
		if o.Value.Equal(v) {
			return o.Label, true
		}
	}
	return "", false
}

// Field maps one filter onto a backend key.
type Field struct {
	Key       string
	Transform Transform
}

func (f *Field) apply(raw string) Opt[Value] {
	if f == nil || raw == "" {
		return None[Value]()
	}
	t := f.Transform
	if t == nil {
		t = Raw()
	}
	return t.Apply(raw)
}

// Labels returns the selectable labels when the field is a lookup.
func (f *Field) Labels() []string {
	if f == nil {
		return nil
	}
	if l, ok := f.Transform.(*LookupTransform); ok {
		return l.Labels()
	}
	return nil
}

// ColumnField maps a per-column text filter onto a backend key.
type ColumnField struct {
	Column    string
	Key       string
	Transform Transform
}

type Default struct {
	Key   string
	Value Value
}

// Mapping is the declarative query contract of one list endpoint.
type Mapping struct {
	SortKey  string
	Status   *Field
	JobType  *Field
	Columns  []ColumnField
	Defaults []Default
}

// Build maps fs and the page position to the backend query. It never fails:
// unknown labels degrade per transform and unknown columns are ignored.
func (m Mapping) Build(fs FilterState, page, limit int) Params {
	var p Params
	p.Set(PageKey, Some(Int(page)))
	p.Set(LimitKey, Some(Int(limit)))
	for _, d := range m.Defaults {
		p.Set(d.Key, Some(d.Value))
	}

	if fs.IDSort != SortNone && m.SortKey != "" {
		p.Set(m.SortKey, Some(String(string(fs.IDSort))))
	}
	if m.Status != nil {
		p.Set(m.Status.Key, m.Status.apply(fs.StatusFilter))
	}
	if m.JobType != nil {
		p.Set(m.JobType.Key, m.JobType.apply(fs.JobTypeFilter))
	}
	for _, c := range m.Columns {
		raw, ok := fs.Column(c.Column)
		if !ok || raw == "" {
			continue
		}
		f := Field{Key: c.Key, Transform: c.Transform}
		p.Set(c.Key, f.apply(raw))
	}
	return p
}

// ColumnNames lists the filterable columns in declaration order.
func (m Mapping) ColumnNames() []string {
	out := make([]string, 0, len(m.Columns))
	for _, c := range m.Columns {
		out = append(out, c.Column)
	}
	return out
}
