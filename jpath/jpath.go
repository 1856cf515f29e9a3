// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jpath defines paths that address elements of a JSON value
// tree, using a subset of JSONPath notation for their text form.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/jflow/ast"
)

/*
Grammar:

  path = "$" steps
 steps = step [steps]
  step = "." WORD
  step = "[" INDEX "]"
  step = "[" "'" QTEXT "'" "]"

  WORD = RE `\w+`
 QTEXT = { all text except "'" }
 INDEX = RE `-?\d+`
*/

// An Op is the kind of a path step.
type Op byte

const (
	Invalid Op = iota // invalid step
	Member            // object member lookup
	Index             // array index lookup
)

// A Step is a single step of a path.
type Step struct {
	Op    Op
	Name  string // member key, when Op == Member
	Index int    // array index, when Op == Index
}

// Field constructs a member lookup step with the given key.
func Field(name string) Step { return Step{Op: Member, Name: name} }

// Elem constructs an index lookup step with the given index.
func Elem(i int) Step { return Step{Op: Index, Index: i} }

// A Path addresses an element of a JSON value tree. The empty path
// addresses the root.
type Path []Step

func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, s := range p {
		switch s.Op {
		case Member:
			if wordRE.MatchString(s.Name) {
				sb.WriteString(".")
				sb.WriteString(s.Name)
			} else {
				fmt.Fprintf(&sb, "['%s']", s.Name)
			}
		case Index:
			fmt.Fprintf(&sb, "[%d]", s.Index)
		default:
			sb.WriteString("[invalid]")
		}
	}
	return sb.String()
}

var (
	wordRE   = regexp.MustCompile(`^\w+$`)
	prefixRE = regexp.MustCompile(`^\w+`)
)

// Parse parses s as the string rendering of a Path. Quoted member
// names may not contain a single quotation mark.
func Parse(s string) (Path, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var out Path
	for t != "" {
		if u, ok := strings.CutPrefix(t, "."); ok {
			name := prefixRE.FindString(u)
			if name == "" {
				return nil, fmt.Errorf("invalid member name %q", u)
			}
			out = append(out, Field(name))
			t = u[len(name):]
			continue
		}
		u, ok := strings.CutPrefix(t, "[")
		if !ok {
			return nil, fmt.Errorf("invalid path step %q", t)
		}
		if q, ok := strings.CutPrefix(u, "'"); ok {
			end := strings.Index(q, "'")
			if end < 0 || !strings.HasPrefix(q[end+1:], "]") {
				return nil, errors.New("unclosed quoted name")
			}
			out = append(out, Field(q[:end]))
			t = q[end+2:]
			continue
		}
		end := strings.Index(u, "]")
		if end < 0 {
			return nil, errors.New("missing close bracket")
		}
		n, err := strconv.Atoi(u[:end])
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", u[:end])
		}
		out = append(out, Elem(n))
		t = u[end+1:]
	}
	return out, nil
}

// Resolve walks p from root and returns the value it addresses, or
// false if some step of p does not exist in the tree.
func Resolve(root ast.Value, p Path) (ast.Value, bool) {
	cur := root
	for _, s := range p {
		switch t := cur.(type) {
		case *ast.Object:
			if s.Op != Member {
				return nil, false
			}
			m := t.Find(s.Name)
			if m == nil {
				return nil, false
			}
			cur = m.Value
		case *ast.Array:
			if s.Op != Index || s.Index < 0 || s.Index >= t.Len() {
				return nil, false
			}
			cur = t.Values[s.Index]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Put stores v in the slot p addresses relative to root. The enclosing
// container must already exist and match the kind of the final step;
// the slot itself is created if needed. The empty path addresses the
// root itself, which has no enclosing container to assign through.
func Put(root ast.Value, p Path, v ast.Value) error {
	if len(p) == 0 {
		return errors.New("cannot assign through the empty path")
	}
	parent, ok := Resolve(root, p[:len(p)-1])
	if !ok {
		return fmt.Errorf("unresolved path %s", p[:len(p)-1])
	}
	last := p[len(p)-1]
	switch t := parent.(type) {
	case *ast.Object:
		if last.Op != Member {
			return fmt.Errorf("cannot index object by %s", last.Op)
		}
		t.Set(last.Name, v)
	case *ast.Array:
		if last.Op != Index {
			return fmt.Errorf("cannot index array by %s", last.Op)
		}
		t.Put(last.Index, v)
	default:
		return fmt.Errorf("cannot index %s", parent)
	}
	return nil
}

var opText = map[Op]string{
	Invalid: "invalid",
	Member:  "member",
	Index:   "index",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}
