// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a mutable tree representation of JSON values.
//
// Unlike a conventional syntax tree, this representation is designed
// to be observed while it is still being built: containers are
// modified in place, so a reference to the root remains valid as the
// tree grows underneath it.
package ast

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go4.org/mem"

	"github.com/creachadair/jflow/internal/escape"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON renders the value as compact JSON text.
	JSON() string

	String() string
}

// Null represents the null constant.
type Null struct{}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

func (Null) String() string { return "null" }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) String() string { return fmt.Sprintf("Bool(%v)", bool(b)) }

// A Number is a JSON number. All numbers are carried as 64-bit
// floating point values.
type Number float64

// JSON satisfies the Value interface. Integral values in range are
// rendered without a fraction or exponent.
func (n Number) JSON() string {
	f := float64(n)
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (n Number) String() string { return "Number(" + n.JSON() + ")" }

// A String is a string value.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return string(escape.Quote(mem.S(string(s)))) }

func (s String) String() string { return fmt.Sprintf("String(%q)", string(s)) }

// An Array is a sequence of values. An Array is mutated in place; the
// zero value is ready for use.
type Array struct {
	Values []Value
}

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// Put stores v at index i, extending a with nulls as needed so that
// index i exists.
func (a *Array) Put(i int, v Value) {
	for len(a.Values) <= i {
		a.Values = append(a.Values, Null{})
	}
	a.Values[i] = v
}

// Truncate reduces a to at most n elements.
func (a *Array) Truncate(n int) {
	if n < len(a.Values) {
		a.Values = a.Values[:n]
	}
}

// JSON satisfies the Value interface.
func (a *Array) JSON() string {
	if len(a.Values) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a *Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.Values)) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// An Object is a collection of key-value members in insertion order.
// An Object is mutated in place; the zero value is ready for use.
type Object struct {
	Members []*Member
}

// Len reports the number of members of o.
func (o *Object) Len() int { return len(o.Members) }

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Set stores v under key, overwriting an existing member with that key
// or appending a new member.
func (o *Object) Set(key string, v Value) {
	if m := o.Find(key); m != nil {
		m.Value = v
		return
	}
	o.Members = append(o.Members, &Member{Key: key, Value: v})
}

// Keep removes every member of o whose key keep rejects.
func (o *Object) Keep(keep func(key string) bool) {
	kept := o.Members[:0]
	for _, m := range o.Members {
		if keep(m.Key) {
			kept = append(kept, m)
		}
	}
	o.Members = kept
}

// JSON satisfies the Value interface.
func (o *Object) JSON() string {
	if len(o.Members) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o.Members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(String(m.Key).JSON())
		sb.WriteByte(':')
		sb.WriteString(m.Value.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.Members)) }

// ToValue converts a plain Go value into an ast.Value. It panics if v
// does not have one of the supported types:
//
//	nil             Null
//	bool            Bool
//	string          String
//	int, int64      Number
//	float64         Number
//	[]any           Array of converted values
//	map[string]any  Object of converted values, in key order
//	Value           returned unchanged
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Number(t)
	case int64:
		return Number(t)
	case float64:
		return Number(t)
	case []any:
		out := new(Array)
		for _, elt := range t {
			out.Values = append(out.Values, ToValue(elt))
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := new(Object)
		for _, key := range keys {
			out.Set(key, ToValue(t[key]))
		}
		return out
	case Value:
		return t
	}
	panic(fmt.Sprintf("invalid value of type %T", v))
}

// Equal reports whether a and b are structurally equal, meaning they
// have the same shape and equal scalars, with object members in the
// same order.
func Equal(a, b Value) bool {
	switch t := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		u, ok := b.(Bool)
		return ok && t == u
	case Number:
		u, ok := b.(Number)
		return ok && t == u
	case String:
		u, ok := b.(String)
		return ok && t == u
	case *Array:
		u, ok := b.(*Array)
		if !ok || len(t.Values) != len(u.Values) {
			return false
		}
		for i, v := range t.Values {
			if !Equal(v, u.Values[i]) {
				return false
			}
		}
		return true
	case *Object:
		u, ok := b.(*Object)
		if !ok || len(t.Members) != len(u.Members) {
			return false
		}
		for i, m := range t.Members {
			if m.Key != u.Members[i].Key || !Equal(m.Value, u.Members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
