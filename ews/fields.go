package ews

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// Generic field mapping: element local-names are normalized to snake_case
// keys, each key holds a path locator sufficient to re-extract the value,
// and a static table tags well-known fields with a coercion kind.

var (
	firstCapRe = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCapRe   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

var goKeywords = map[string]struct{}{
	"break": {}, "case": {}, "chan": {}, "const": {}, "continue": {},
	"default": {}, "defer": {}, "else": {}, "fallthrough": {}, "for": {},
	"func": {}, "go": {}, "goto": {}, "if": {}, "import": {},
	"interface": {}, "map": {}, "package": {}, "range": {}, "return": {},
	"select": {}, "struct": {}, "switch": {}, "type": {}, "var": {},
}

// ConvertFieldName normalizes a PascalCase or camelCase XML local-name to
// a snake_case identifier. Names colliding with a Go keyword get a
// trailing underscore. The function is idempotent: applying it to its own
// output returns the same string.
func ConvertFieldName(name string) string {
	s := firstCapRe.ReplaceAllString(name, "${1}_${2}")
	s = allCapRe.ReplaceAllString(s, "${1}_${2}")
	s = strings.ToLower(s)
	if _, reserved := goKeywords[s]; reserved {
		s += "_"
	}
	return s
}

type castKind string

const (
	castNone     castKind = ""
	castBool     castKind = "bool"
	castInt      castKind = "int"
	castDateTime castKind = "datetime"
)

// typecastMap tags the well-known message fields that are not plain
// strings on the wire.
var typecastMap = map[string]castKind{
	"date_time_received":        castDateTime,
	"date_time_sent":            castDateTime,
	"date_time_created":         castDateTime,
	"size":                      castInt,
	"is_submitted":              castBool,
	"is_draft":                  castBool,
	"is_from_me":                castBool,
	"is_resend":                 castBool,
	"is_unmodified":             castBool,
	"has_attachments":           castBool,
	"is_read_receipt_requested": castBool,
	"is_read":                   castBool,
}

type mappedField struct {
	// Path locates the field relative to the mapped element, e.g.
	// "t:Subject". It stays valid after the element is detached from its
	// response document.
	Path string
	Cast castKind
}

// buildPropertyMap maps each child element of elem to a normalized field
// name and a locator for re-extraction. Repeated calls over the same
// subtree yield identical maps.
func buildPropertyMap(elem *etree.Element) map[string]mappedField {
	fields := make(map[string]mappedField, len(elem.ChildElements()))
	for _, child := range elem.ChildElements() {
		name := ConvertFieldName(child.Tag)
		fields[name] = mappedField{
			Path: child.FullTag(),
			Cast: typecastMap[name],
		}
	}
	return fields
}

// extractProperties re-reads every mapped field from elem and applies its
// coercion. Untagged fields stay strings.
func extractProperties(elem *etree.Element, fields map[string]mappedField) (map[string]any, error) {
	props := make(map[string]any, len(fields))
	for name, field := range fields {
		node := elem.FindElement(field.Path)
		if node == nil {
			continue
		}
		value, err := castValue(node.Text(), field.Cast)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		props[name] = value
	}
	return props, nil
}

func castValue(text string, cast castKind) (any, error) {
	switch cast {
	case castBool:
		switch {
		case strings.EqualFold(text, "true"):
			return true, nil
		case strings.EqualFold(text, "false"):
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q", text)
	case castInt:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", text)
		}
		return n, nil
	case castDateTime:
		t, err := time.Parse(DateTimeFormat, text)
		if err != nil {
			return nil, fmt.Errorf("invalid datetime %q", text)
		}
		return t.UTC(), nil
	default:
		return text, nil
	}
}
