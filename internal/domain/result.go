package domain

// UnknownSentinel marks a field the classifier could not determine,
// as opposed to a field that was simply absent from the reply.
const UnknownSentinel = "UNKNOWN"

// NotApplicable is the placeholder for payment components that do not
// apply to the classified goods (excise, fees).
const NotApplicable = "—"

// ClassificationResult is the canonical response of the detect endpoint.
// Every field is always present: narrative fields default to "", list
// fields to empty slices, code/duty/vat to UnknownSentinel. Clients
// never need null-checks.
type ClassificationResult struct {
	Code                 string            `json:"code"`
	Duty                 string            `json:"duty"`
	Vat                  string            `json:"vat"`
	Raw                  string            `json:"raw"`
	Description          string            `json:"description"`
	Tech31               string            `json:"tech31"`
	ClassificationReason string            `json:"classification_reason"`
	Alternatives         []AlternativeCode `json:"alternatives"`
	Payments             PaymentBreakdown  `json:"payments"`
	Requirements         []string          `json:"requirements"`
}

// AlternativeCode is a candidate TN VED position with the condition
// under which it could apply.
type AlternativeCode struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// PaymentBreakdown lists the customs payments for the classified goods.
type PaymentBreakdown struct {
	Duty   string `json:"duty"`
	Vat    string `json:"vat"`
	Excise string `json:"excise"`
	Fees   string `json:"fees"`
}
