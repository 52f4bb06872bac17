package service

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"tnved-api/internal/domain"
)

var requirementSplitRe = regexp.MustCompile(`[;\n\r]+`)

// asString renders a decoded-JSON value as text. Numbers come out
// without a trailing ".0" so a model answering `"duty": 5` reads "5".
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func capitalizeFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// stringifyTech31 renders the declaration box 31 narrative regardless
// of the shape the model chose: plain text passes through, a mapping
// becomes a bulleted list (one line per key, key capitalized), a
// sequence becomes one bullet per element. Mapping keys are sorted so
// the rendering is stable.
func stringifyTech31(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, "- "+capitalizeFirst(k)+": "+renderTechValue(t[k]))
		}
		return strings.Join(lines, "\n")
	case []any:
		lines := make([]string, 0, len(t))
		for _, el := range t {
			lines = append(lines, "- "+strings.TrimSpace(asString(el)))
		}
		return strings.Join(lines, "\n")
	default:
		return asString(t)
	}
}

func renderTechValue(v any) string {
	switch t := v.(type) {
	case []any:
		parts := make([]string, 0, len(t))
		for _, el := range t {
			parts = append(parts, strings.TrimSpace(asString(el)))
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+strings.TrimSpace(asString(t[k])))
		}
		return strings.Join(parts, "; ")
	default:
		return strings.TrimSpace(asString(t))
	}
}

// normalizeAlternatives accepts the alternative-codes field in any of
// the shapes observed from the model: a mapping of code to reason, a
// sequence of {code, reason} objects (English or Russian key names), a
// sequence of bare codes, or a single scalar. Malformed entries default
// to empty strings rather than being dropped silently mid-object.
func normalizeAlternatives(v any) []domain.AlternativeCode {
	switch t := v.(type) {
	case nil:
		return []domain.AlternativeCode{}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]domain.AlternativeCode, 0, len(keys))
		for _, k := range keys {
			out = append(out, domain.AlternativeCode{
				Code:   strings.TrimSpace(k),
				Reason: strings.TrimSpace(asString(t[k])),
			})
		}
		return out
	case []any:
		out := make([]domain.AlternativeCode, 0, len(t))
		for _, el := range t {
			if m, ok := el.(map[string]any); ok {
				out = append(out, domain.AlternativeCode{
					Code:   firstNonEmpty(m, "code", "код"),
					Reason: firstNonEmpty(m, "reason", "причина"),
				})
				continue
			}
			out = append(out, domain.AlternativeCode{Code: strings.TrimSpace(asString(el))})
		}
		return out
	default:
		return []domain.AlternativeCode{{Code: strings.TrimSpace(asString(t))}}
	}
}

func firstNonEmpty(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(asString(m[k])); s != "" {
			return s
		}
	}
	return ""
}

// normalizePayments starts from the already-normalized top-level
// duty/vat and the "not applicable" placeholder for excise/fees; a
// mapping input overwrites any of the four recognized keys that carry a
// non-null value. Anything else leaves the defaults untouched.
func normalizePayments(v any, duty, vat string) domain.PaymentBreakdown {
	p := domain.PaymentBreakdown{
		Duty:   duty,
		Vat:    vat,
		Excise: domain.NotApplicable,
		Fees:   domain.NotApplicable,
	}

	m, ok := v.(map[string]any)
	if !ok {
		return p
	}
	if val, ok := m["duty"]; ok && val != nil {
		p.Duty = strings.TrimSpace(asString(val))
	}
	if val, ok := m["vat"]; ok && val != nil {
		p.Vat = strings.TrimSpace(asString(val))
	}
	if val, ok := m["excise"]; ok && val != nil {
		p.Excise = strings.TrimSpace(asString(val))
	}
	if val, ok := m["fees"]; ok && val != nil {
		p.Fees = strings.TrimSpace(asString(val))
	}
	return p
}

// normalizeRequirements flattens the requirements field to a clean list
// of strings. A single string is split on semicolons and line breaks
// with bullet markers stripped; if the splitting leaves nothing, the
// original trimmed string survives as a one-element list.
func normalizeRequirements(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(t))
		for _, el := range t {
			if s := strings.TrimSpace(asString(el)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return splitRequirements(t)
	default:
		return []string{strings.TrimSpace(asString(t))}
	}
}

func splitRequirements(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []string{}
	}

	parts := requirementSplitRe.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		frag := strings.Trim(part, " \t-–—•*")
		if frag != "" {
			out = append(out, frag)
		}
	}
	if len(out) == 0 {
		return []string{trimmed}
	}
	return out
}
