package matching

import (
	"fmt"
	"strings"

	"autoparam/internal/match"
)

// Criteria selects which requests a frozen value satisfies. Flags combine with |.
type Criteria int

const (
	ExactType             Criteria = 1 << iota // the type itself, or a seeded request for it
	DirectBaseType                             // a struct embedded directly in the type
	ImplementedInterfaces                      // an interface the type implements
	ParameterName                              // a function parameter with the same name
	PropertyName                               // a SetX setter with the same name
	FieldName                                  // a struct field with the same name

	MemberName            = ParameterName | PropertyName | FieldName // any member with the same name
	CriteriaNone Criteria = 0                                        // no criteria; selectors fall back to ExactType
)

var criteriaNames = []struct {
	flag  Criteria
	name  string
	alias string
}{
	{ExactType, "ExactType", "type"},
	{DirectBaseType, "DirectBaseType", "base"},
	{ImplementedInterfaces, "ImplementedInterfaces", "iface"},
	{ParameterName, "ParameterName", "param"},
	{PropertyName, "PropertyName", "property"},
	{FieldName, "FieldName", "field"},
}

// Has reports whether all flags in o are set in c.
func (c Criteria) Has(o Criteria) bool {
	return o != 0 && c&o == o
}

// String renders the set flags joined by "|".
func (c Criteria) String() string {
	if c == CriteriaNone {
		return "None"
	}

	var parts []string

	rest := c
	if c.Has(MemberName) {
		parts = append(parts, "MemberName")
		rest &^= MemberName
	}

	for _, n := range criteriaNames {
		if rest.Has(n.flag) {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}

	if rest != 0 {
		parts = append(parts, fmt.Sprintf("Criteria(%d)", int(rest)))
	}

	return strings.Join(parts, "|")
}

// ParseCriteria parses flags separated by "|" or ",". Both the full flag names
// and the short aliases (type, base, iface, param, property, field, member)
// are accepted, case-insensitively.
func ParseCriteria(s string) (Criteria, error) {
	var c Criteria

	tokens := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' })
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		flag, ok := lookupCriteria(tok)
		if !ok {
			return CriteriaNone, fmt.Errorf("unknown matching criteria %q%s", tok, match.Hint(tok, criteriaTokens()))
		}

		c |= flag
	}

	return c, nil
}

func criteriaTokens() []string {
	tokens := []string{"MemberName", "member"}
	for _, n := range criteriaNames {
		tokens = append(tokens, n.name, n.alias)
	}

	return tokens
}

func lookupCriteria(tok string) (Criteria, bool) {
	if strings.EqualFold(tok, "MemberName") || strings.EqualFold(tok, "member") {
		return MemberName, true
	}

	for _, n := range criteriaNames {
		if strings.EqualFold(tok, n.name) || strings.EqualFold(tok, n.alias) {
			return n.flag, true
		}
	}

	return CriteriaNone, false
}
