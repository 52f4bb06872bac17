package service

import "encoding/json"

const classifierSystemPrompt = "Ты — эксперт по классификации товаров по ТН ВЭД ЕАЭС."

// buildClassifierPrompt asks for a strict JSON reply covering every
// response section. The extraction pipeline still treats the answer as
// untrusted text.
func buildClassifierPrompt(fullName string) string {
	payload, _ := json.Marshal(map[string]string{"Наименование": fullName})

	return "Определи 10-значный код ТН ВЭД для товара и верни результат СТРОГО в виде JSON.\n" +
		"Вход:\n" +
		string(payload) + "\n\n" +
		"Требуемый JSON-ответ на РУССКОМ:\n" +
		"{\n" +
		`  "code": "10-значный код или UNKNOWN",` + "\n" +
		`  "duty": "проценты или UNKNOWN",` + "\n" +
		`  "vat": "проценты или UNKNOWN",` + "\n" +
		`  "description": "краткое текстовое описание товара",` + "\n" +
		`  "tech31": "техническое описание для графы 31 (состав, материал, назначение, параметры, интерфейсы, комплектность)",` + "\n" +
		`  "classification_reason": "обоснование выбора позиции ТН ВЭД (правила ОПИ, примечания, пояснения)",` + "\n" +
		`  "alternatives": [ {"code":"возможный_код","reason":"когда может применяться"}, ... ],` + "\n" +
		`  "payments": {"duty":"%","vat":"%","excise":"если есть или —","fees":"если есть или —"},` + "\n" +
		`  "requirements": ["перечень обязательных требований: ТР ЕАЭС, лицензии, сертификация и т.д."]` + "\n" +
		"}\n" +
		"Не добавляй никаких пояснений вне JSON."
}
