package service

import (
	"strings"

	"tnved-api/internal/domain"
)

// assembleResult combines the extracted mapping with the recovered
// code/duty/vat into a structurally complete result. Every omitted or
// empty field gets an explicit default so the client never sees a null:
// UNKNOWN for code/duty/vat, empty strings for narratives, empty slices
// for lists, the duty/vat-seeded record for payments.
func assembleResult(data map[string]any, raw, code, duty, vat string) domain.ClassificationResult {
	if code == "" {
		code = domain.UnknownSentinel
	}
	if duty == "" {
		duty = domain.UnknownSentinel
	}
	if vat == "" {
		vat = domain.UnknownSentinel
	}

	return domain.ClassificationResult{
		Code:                 code,
		Duty:                 duty,
		Vat:                  vat,
		Raw:                  raw,
		Description:          strings.TrimSpace(asString(data["description"])),
		Tech31:               stringifyTech31(data["tech31"]),
		ClassificationReason: strings.TrimSpace(asString(data["classification_reason"])),
		Alternatives:         normalizeAlternatives(data["alternatives"]),
		Payments:             normalizePayments(data["payments"], duty, vat),
		Requirements:         normalizeRequirements(data["requirements"]),
	}
}

// ParseReply runs the full extraction pipeline over a raw model reply:
// JSON block extraction, code recovery, percentage normalization with
// positional fallback, then defaulting. Total by construction; garbage
// in still yields a schema-valid result.
func ParseReply(raw string) domain.ClassificationResult {
	raw = strings.TrimSpace(raw)
	data := extractJSONBlock(raw)

	code := recoverCode(asString(data["code"]), raw)
	dutyRaw := asString(data["duty"])
	vatRaw := asString(data["vat"])
	duty := normPercent(dutyRaw)
	vat := normPercent(vatRaw)

	// A reply that answered UNKNOWN keeps the sentinel; only a missing
	// or non-numeric field falls back to positional tokens in the raw
	// text (single-line reply format).
	if duty == "" || vat == "" {
		fbDuty, fbVat := fallbackPercents(raw)
		if duty == "" && !isUnknown(dutyRaw) {
			duty = fbDuty
		}
		if vat == "" && !isUnknown(vatRaw) {
			vat = fbVat
		}
	}

	return assembleResult(data, raw, code, duty, vat)
}

func isUnknown(s string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(s)), "UNKNOWN")
}
