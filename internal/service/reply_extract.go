package service

import (
	"regexp"
	"strings"
)

var (
	tenDigitsRe    = regexp.MustCompile(`\b\d{10}\b`)
	percentRe      = regexp.MustCompile(`(\d+(\.\d+)?)\s*%?`)
	percentTokenRe = regexp.MustCompile(`\d+(?:[.,]\d+)?\s*%`)
)

// takeTenDigits returns the first standalone 10-digit run in s, with
// internal spaces ignored ("8471 30 000 0" counts).
func takeTenDigits(s string) string {
	if s == "" {
		return ""
	}
	return tenDigitsRe.FindString(strings.ReplaceAll(s, " ", ""))
}

// normPercent canonicalizes a rate to "<number>%": trims, converts
// comma decimal separators, takes the first numeric token. No numeric
// token yields "". Already-normalized input passes through unchanged.
func normPercent(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, ",", ".")
	m := percentRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1] + "%"
}

// recoverCode applies the code fallback chain: keep the extracted field
// if it holds a 10-digit run, otherwise scan the whole raw reply for
// one, otherwise preserve an explicit UNKNOWN sentinel. Empty return
// means "let the assembler substitute the default".
func recoverCode(extracted, raw string) string {
	code := strings.TrimSpace(extracted)
	if takeTenDigits(code) != "" {
		return code
	}
	if guessed := takeTenDigits(raw); guessed != "" {
		return guessed
	}
	if strings.HasPrefix(strings.ToUpper(code), "UNKNOWN") {
		return code
	}
	return ""
}

// fallbackPercents scans the raw reply for percentage tokens in order
// of appearance. Single-line replies like "Widget ; 8471300000; 5%; 20%"
// carry duty first, VAT second.
func fallbackPercents(raw string) (duty, vat string) {
	tokens := percentTokenRe.FindAllString(raw, -1)
	if len(tokens) > 0 {
		duty = normPercent(tokens[0])
	}
	if len(tokens) > 1 {
		vat = normPercent(tokens[1])
	}
	return duty, vat
}
