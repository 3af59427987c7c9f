package listquery

import (
	"net/url"
	"sort"
	"strings"
)

// Params is the query sent to a list endpoint. Keys keep insertion order;
// a key is stored only when its value is present.
type Params struct {
	keys []string
	vals map[string]Value
}

// Set stores v under key when v is present. An absent v is a no-op.
func (p *Params) Set(key string, v Opt[Value]) {
	val, ok := v.Get()
	if !ok {
		return
	}
	if p.vals == nil {
		p.vals = make(map[string]Value)
	}
	if _, exists := p.vals[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.vals[key] = val
}

func (p *Params) Del(key string) {
	if _, ok := p.vals[key]; !ok {
		return
	}
	delete(p.vals, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i:i], p.keys[i+1:]...)
			break
		}
	}
}

func (p Params) Get(key string) (Value, bool) {
	v, ok := p.vals[key]
	return v, ok
}

func (p Params) Has(key string) bool {
	_, ok := p.vals[key]
	return ok
}

func (p Params) Len() int { return len(p.keys) }

// Keys returns the keys in insertion order.
func (p Params) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := Params{keys: append([]string(nil), p.keys...)}
	if p.vals != nil {
		out.vals = make(map[string]Value, len(p.vals))
		for k, v := range p.vals {
			out.vals[k] = v
		}
	}
	return out
}

// Map returns the params as key -> string/int/bool.
func (p Params) Map() map[string]any {
	out := make(map[string]any, len(p.keys))
	for _, k := range p.keys {
		out[k] = p.vals[k].Interface()
	}
	return out
}

// Values serializes the present keys for a query string.
func (p Params) Values() url.Values {
	out := make(url.Values, len(p.keys))
	for _, k := range p.keys {
		out.Set(k, p.vals[k].String())
	}
	return out
}

// Key is the canonical identity of p: two Params with the same keys, kinds
// and values have the same Key regardless of insertion order.
func (p Params) Key() string {
	keys := append([]string(nil), p.keys...)
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		v := p.vals[k]
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(v.Kind().String())
		b.WriteByte(':')
		b.WriteString(url.QueryEscape(v.String()))
	}
	return b.String()
}

func (p Params) Equal(o Params) bool {
	return p.Key() == o.Key()
}
