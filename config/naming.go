package config

import (
	"strings"
	"unicode"
)

// NamingStrategy translates Go field names into property names.
type NamingStrategy string

const (
	Identity                 NamingStrategy = "IDENTITY"
	LowerCamelCase           NamingStrategy = "LOWER_CAMEL_CASE"
	UpperCamelCase           NamingStrategy = "UPPER_CAMEL_CASE"
	UpperCamelCaseWithSpaces NamingStrategy = "UPPER_CAMEL_CASE_WITH_SPACES"
	LowerCaseWithUnderscores NamingStrategy = "LOWER_CASE_WITH_UNDERSCORES"
	LowerCaseWithDashes      NamingStrategy = "LOWER_CASE_WITH_DASHES"
)

func (s NamingStrategy) valid() bool {
	switch s {
	case Identity, LowerCamelCase, UpperCamelCase, UpperCamelCaseWithSpaces,
		LowerCaseWithUnderscores, LowerCaseWithDashes:
		return true
	}
	return false
}

// Translate returns the property name for a field name. Unknown strategies behave like Identity.
func (s NamingStrategy) Translate(name string) string {
	switch s {
	case LowerCamelCase:
		words := splitWords(name)
		for i, w := range words {
			if i == 0 {
				words[i] = strings.ToLower(w)
				continue
			}
			words[i] = capitalize(w)
		}
		return strings.Join(words, "")
	case UpperCamelCase:
		return capitalize(name)
	case UpperCamelCaseWithSpaces:
		words := splitWords(name)
		for i, w := range words {
			words[i] = capitalize(w)
		}
		return strings.Join(words, " ")
	case LowerCaseWithUnderscores:
		return strings.ToLower(strings.Join(splitWords(name), "_"))
	case LowerCaseWithDashes:
		return strings.ToLower(strings.Join(splitWords(name), "-"))
	default:
		return name
	}
}

func capitalize(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// splitWords splits a camel case identifier: "HTTPServerID2" -> [HTTP Server ID2].
// Underscores and dashes also separate words.
func splitWords(name string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
