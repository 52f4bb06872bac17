package service

import (
	"reflect"
	"testing"

	"tnved-api/internal/domain"
)

func TestStringifyTech31_StringPassesThroughTrimmed(t *testing.T) {
	if got := stringifyTech31("  портативный компьютер  "); got != "портативный компьютер" {
		t.Fatalf("unexpected tech31: %q", got)
	}
}

func TestStringifyTech31_MappingBecomesBullets(t *testing.T) {
	in := map[string]any{
		"материал":   []any{"пластик", "металл"},
		"назначение": "обработка данных",
	}
	want := "- Материал: пластик; металл\n- Назначение: обработка данных"
	if got := stringifyTech31(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStringifyTech31_NestedMappingValue(t *testing.T) {
	in := map[string]any{
		"параметры": map[string]any{"вес": "1.2 кг", "диагональ": "13 дюймов"},
	}
	want := "- Параметры: вес: 1.2 кг; диагональ: 13 дюймов"
	if got := stringifyTech31(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStringifyTech31_SequenceBecomesBullets(t *testing.T) {
	in := []any{"процессор x86", "8 ГБ ОЗУ"}
	want := "- процессор x86\n- 8 ГБ ОЗУ"
	if got := stringifyTech31(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStringifyTech31_AbsentYieldsEmpty(t *testing.T) {
	if got := stringifyTech31(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestNormalizeAlternatives_MappingForm(t *testing.T) {
	in := map[string]any{
		"8471300000": "если портативный",
		"8471410000": "если стационарный",
	}
	got := normalizeAlternatives(in)
	want := []domain.AlternativeCode{
		{Code: "8471300000", Reason: "если портативный"},
		{Code: "8471410000", Reason: "если стационарный"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeAlternatives_SequenceOfObjectsLocalizedKeys(t *testing.T) {
	in := []any{
		map[string]any{"code": "8471300000", "reason": "портативный"},
		map[string]any{"код": "8471410000", "причина": "стационарный"},
		map[string]any{"weight": 3.5},
	}
	got := normalizeAlternatives(in)
	want := []domain.AlternativeCode{
		{Code: "8471300000", Reason: "портативный"},
		{Code: "8471410000", Reason: "стационарный"},
		{Code: "", Reason: ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeAlternatives_ScalarAndAbsent(t *testing.T) {
	got := normalizeAlternatives("8471300000")
	if len(got) != 1 || got[0].Code != "8471300000" || got[0].Reason != "" {
		t.Fatalf("unexpected scalar normalization: %v", got)
	}
	if got := normalizeAlternatives(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestNormalizePayments_DefaultsSeededFromTopLevel(t *testing.T) {
	got := normalizePayments(nil, "5%", "20%")
	want := domain.PaymentBreakdown{Duty: "5%", Vat: "20%", Excise: "—", Fees: "—"}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizePayments_MappingOverrides(t *testing.T) {
	in := map[string]any{"excise": " 3% ", "fees": nil, "vat": "20%"}
	got := normalizePayments(in, "5%", "UNKNOWN")
	want := domain.PaymentBreakdown{Duty: "5%", Vat: "20%", Excise: "3%", Fees: "—"}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizePayments_NonMappingLeavesDefaults(t *testing.T) {
	got := normalizePayments("бесплатно", "5%", "20%")
	want := domain.PaymentBreakdown{Duty: "5%", Vat: "20%", Excise: "—", Fees: "—"}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeRequirements_SplitsOnSemicolonAndNewline(t *testing.T) {
	got := normalizeRequirements("Cert A; Cert B\nCert C")
	want := []string{"Cert A", "Cert B", "Cert C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeRequirements_StripsBulletMarkers(t *testing.T) {
	got := normalizeRequirements("- ТР ЕАЭС 004/2011\n• Сертификат соответствия")
	want := []string{"ТР ЕАЭС 004/2011", "Сертификат соответствия"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeRequirements_SequenceFiltersEmpties(t *testing.T) {
	got := normalizeRequirements([]any{" Декларация ", nil, "", "Лицензия"})
	want := []string{"Декларация", "Лицензия"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeRequirements_NothingSurvivesKeepsOriginal(t *testing.T) {
	got := normalizeRequirements(";;;")
	if len(got) != 1 || got[0] != ";;;" {
		t.Fatalf("expected original trimmed string kept, got %v", got)
	}
}

func TestNormalizeRequirements_ScalarAndAbsent(t *testing.T) {
	if got := normalizeRequirements(42.0); len(got) != 1 || got[0] != "42" {
		t.Fatalf("unexpected scalar normalization: %v", got)
	}
	if got := normalizeRequirements(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestAsString_NumberWithoutTrailingZero(t *testing.T) {
	if got := asString(5.0); got != "5" {
		t.Fatalf("expected 5, got %q", got)
	}
	if got := asString(12.5); got != "12.5" {
		t.Fatalf("expected 12.5, got %q", got)
	}
}
