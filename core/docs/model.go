// Package docs defines the documentation model read from docs.json, the
// format emitted by `elm make --docs`.
package docs

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Module documents one exposed module.
type Module struct {
	Name    string  `json:"name"`
	Comment string  `json:"comment"`
	Unions  []Union `json:"unions"`
	Aliases []Alias `json:"aliases"`
	Values  []Value `json:"values"`
	Binops  []Binop `json:"binops"`
}

// Union is a custom type and its constructors.
type Union struct {
	Name    string   `json:"name"`
	Comment string   `json:"comment"`
	Args    []string `json:"args"`
	Cases   []Case   `json:"cases"`
}

// Case is a single constructor of a Union.
type Case struct {
	Name string
	Args []string
}

// UnmarshalJSON decodes the ["Name", ["Arg", ...]] pair form.
func (c *Case) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("case: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("case: want [name, args], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Name); err != nil {
		return fmt.Errorf("case name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &c.Args); err != nil {
		return fmt.Errorf("case %s args: %w", c.Name, err)
	}
	return nil
}

// Alias is a type alias.
type Alias struct {
	Name    string   `json:"name"`
	Comment string   `json:"comment"`
	Args    []string `json:"args"`
	Type    string   `json:"type"`
}

// Value is a top-level function or constant.
type Value struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Type    string `json:"type"`
}

// Binop is an infix operator.
type Binop struct {
	Name          string `json:"name"`
	Comment       string `json:"comment"`
	Type          string `json:"type"`
	Associativity string `json:"associativity"`
	Precedence    int    `json:"precedence"`
}

// PageName returns the file stem used for the module's page:
// Json.Decode becomes Json-Decode.
func (m Module) PageName() string {
	return strings.ReplaceAll(m.Name, ".", "-")
}

// Signature renders the declaration line of the union, e.g.
// "type Maybe a = Just a | Nothing".
func (u Union) Signature() string {
	var b strings.Builder
	b.WriteString("type ")
	b.WriteString(u.Name)
	for _, a := range u.Args {
		b.WriteString(" ")
		b.WriteString(a)
	}
	for i, c := range u.Cases {
		if i == 0 {
			b.WriteString("\n    = ")
		} else {
			b.WriteString("\n    | ")
		}
		b.WriteString(c.Name)
		for _, a := range c.Args {
			b.WriteString(" ")
			if strings.ContainsAny(a, " ") && !strings.HasPrefix(a, "(") && !strings.HasPrefix(a, "{") {
				b.WriteString("(" + a + ")")
			} else {
				b.WriteString(a)
			}
		}
	}
	return b.String()
}

// Signature renders the alias declaration.
func (a Alias) Signature() string {
	head := "type alias " + a.Name
	if len(a.Args) > 0 {
		head += " " + strings.Join(a.Args, " ")
	}
	return head + " =\n    " + a.Type
}

// Signature renders the value's type annotation.
func (v Value) Signature() string {
	return v.Name + " : " + v.Type
}

// Signature renders the operator's type annotation.
func (o Binop) Signature() string {
	return "(" + o.Name + ") : " + o.Type
}
