package introspect

import (
	"reflect"
	"strings"
	"sync"
)

// Directive is a single parsed tag entry, e.g. date(2006-01-02,en).
type Directive struct {
	Name   string
	Params []string
}

// Param returns the i-th parameter, or "".
func (d Directive) Param(i int) string {
	if i < len(d.Params) {
		return d.Params[i]
	}
	return ""
}

// fieldTagKey identifies a struct field tag in the parsed tag cache.
// tagName allows the same field to be read under different tag keys.
type fieldTagKey struct {
	parent  reflect.Type
	index   int
	tagName string
}

// tagCache holds parsed tags per field.
type tagCache struct {
	c sync.Map // map[fieldTagKey][]Directive
}

func (c *tagCache) directives(parent reflect.Type, fieldIndex int, tagName string) []Directive {
	key := fieldTagKey{parent: parent, index: fieldIndex, tagName: tagName}
	if v, ok := c.c.Load(key); ok {
		return v.([]Directive)
	}
	parsed := ParseTag(parent.Field(fieldIndex).Tag.Get(tagName))
	v, _ := c.c.LoadOrStore(key, parsed)
	return v.([]Directive)
}

// ParseTag tokenizes a raw tag string (e.g., "name(id),nillable,date(2006-01-02,en)") into directives.
// Behavior:
//   - Splits on top-level commas only (commas inside parentheses do not split tokens).
//   - Trims whitespace around tokens and parameters.
//   - Empty tokens (from leading/trailing commas) are skipped.
//   - A lone "-" is kept as a directive and marks the field as skipped.
//   - Does not support quotes or escaping inside parameters.
func ParseTag(tag string) []Directive {
	var out []Directive
	if strings.TrimSpace(tag) == "" {
		return out
	}

	var tokens []string
	depth := 0
	start := 0
	for i, r := range tag {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				tokens = append(tokens, strings.TrimSpace(tag[start:i]))
				start = i + 1
			}
		}
	}
	tokens = append(tokens, strings.TrimSpace(tag[start:]))

	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		name := tok
		var params []string
		if idx := strings.IndexRune(tok, '('); idx != -1 && strings.HasSuffix(tok, ")") {
			name = strings.TrimSpace(tok[:idx])
			for _, p := range strings.Split(tok[idx+1:len(tok)-1], ",") {
				if p = strings.TrimSpace(p); p != "" {
					params = append(params, p)
				}
			}
		}
		if name != "" {
			out = append(out, Directive{Name: name, Params: params})
		}
	}
	return out
}
