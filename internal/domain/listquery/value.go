package listquery

import (
	"strconv"
)

type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// Value is a primitive query parameter value.
type Value struct {
	kind Kind
	s    string
	i    int
	b    bool
}

func String(s string) Value { return Value{kind: KindString, s: s} }
func Int(i int) Value       { return Value{kind: KindInt, i: i} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }

func (v Value) Kind() Kind { return v.kind }

// Interface returns the value as string, int or bool.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindBool:
		return v.b
	default:
		return v.s
	}
}

// String is the query string encoding of v.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.s == o.s && v.i == o.i && v.b == o.b
}

// Opt is a present/absent wrapper. Only present values ever reach a Params.
type Opt[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Opt[T] { return Opt[T]{v: v, ok: true} }

func None[T any]() Opt[T] { return Opt[T]{} }

func (o Opt[T]) Get() (T, bool) { return o.v, o.ok }

func (o Opt[T]) IsPresent() bool { return o.ok }
