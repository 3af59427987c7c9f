package table

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Cell is one rendered table cell. Badge, when set, is the tone of a status
// pill; Href turns the text into a link.
type Cell struct {
	Text  string
	Badge string
	Href  string
}

// Accessor produces the cell of a column for one row.
type Accessor[T any] func(row T) Cell

// Column describes how to render one column of T.
type Column[T any] struct {
	Header    string
	Accessor  Accessor[T]
	ClassName string
}

// Func wraps a row-to-cell function.
func Func[T any](fn func(row T) Cell) Accessor[T] {
	return Accessor[T](fn)
}

// Text wraps a row-to-string function.
func Text[T any](fn func(row T) string) Accessor[T] {
	return func(row T) Cell { return Cell{Text: fn(row)} }
}

// Field reads a struct field by Go name or json name. It panics at
// declaration time when T has no such field, so a typo fails at startup.
func Field[T any](name string) Accessor[T] {
	var zero T
	typ := reflect.TypeOf(zero)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("table: Field(%q) needs a struct row type", name))
	}
	index, ok := fieldIndex(typ, name)
	if !ok {
		panic(fmt.Sprintf("table: %s has no field %q", typ.Name(), name))
	}

	return func(row T) Cell {
		v := reflect.ValueOf(row)
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return Cell{}
			}
			v = v.Elem()
		}
		return Cell{Text: format(v.FieldByIndex(index))}
	}
}

func fieldIndex(typ reflect.Type, name string) ([]int, bool) {
	if f, ok := typ.FieldByName(name); ok {
		return f.Index, true
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name {
			return f.Index, true
		}
	}
	return nil, false
}

func format(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return "Yes"
		}
		return "No"
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', 2, 64)
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return ""
		}
		return format(v.Elem())
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprint(v.Interface())
	}
}

// Tones used by status pills.
const (
	ToneGreen  = "green"
	ToneYellow = "yellow"
	ToneRed    = "red"
	ToneBlue   = "blue"
	ToneGray   = "gray"
)

// StatusBadge renders label as a pill coloured by tones[key]; unknown keys
// are gray.
func StatusBadge(label, key string, tones map[string]string) Cell {
	tone, ok := tones[key]
	if !ok {
		tone = ToneGray
	}
	return Cell{Text: label, Badge: tone}
}

// Link renders text pointing at href.
func Link(text, href string) Cell {
	return Cell{Text: text, Href: href}
}
