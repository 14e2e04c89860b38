package query

import (
	"net/url"
	"strings"
)

// Build renders clauses into the provider query language and percent-encodes
// the result as one query component. Callers splice it into a URL as is.
//
// Rendering rules:
//
//	field + op + many values -> field:(v1 OP v2)
//	field + op + one value   -> field:<op>v1
//	field + one value        -> field:v1
//	field + many values      -> field:v1
//
// The single value form puts the raw operation in front of the value while
// the grouped form uses it as an upper-case keyword. Providers accept both,
// and existing saved queries depend on it, so the two forms stay as they are.
// Without an operation there is nothing to join by, so only the first value
// is used.
func Build(clauses []Clause) string {
	if len(clauses) == 0 {
		return ""
	}

	terms := make([]string, 0, len(clauses))
	for _, c := range clauses {
		terms = append(terms, c.Term())
	}

	return Escape(strings.Join(terms, " "))
}

// Term renders one clause without encoding.
func (c Clause) Term() string {
	switch {
	case len(c.Values) == 0:
		return c.Field + ":"
	case len(c.Values) == 1 && !c.Operation.IsZero():
		return c.Field + ":" + c.Operation.String() + c.Values[0].String()
	case c.Operation.IsZero():
		return c.Field + ":" + c.Values[0].String()
	}

	sep := " " + c.Operation.Keyword() + " "

	parts := make([]string, len(c.Values))
	for i, v := range c.Values {
		parts[i] = v.String()
	}
	return c.Field + ":(" + strings.Join(parts, sep) + ")"
}

// Escape percent-encodes s for use as a single query value. Spaces become %20.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
