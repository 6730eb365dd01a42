package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "min" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates use
// {name} placeholders filled from data; unknown placeholders stay verbatim.
type dictTranslator struct{ lang string }

var catalog = map[string]map[string]string{
	"en": {
		"invalid_type":        "invalid type",
		"const":               "value is not the constant",
		"invalid_enum":        "value is not one of the allowed values",
		"too_small":           "number too small",
		"too_big":             "number too big",
		"not_multiple":        "not a multiple of {multipleOf}",
		"too_short":           "too short",
		"too_long":            "too long",
		"pattern":             "does not match pattern",
		"required":            "required property {key} missing",
		"unknown_key":         "unknown key",
		"too_few_items":       "too few items",
		"too_many_items":      "too many items",
		"contains":            "no item matches contains",
		"too_few_properties":  "too few properties",
		"too_many_properties": "too many properties",
		"any_of":              "no anyOf branch matches",
		"one_of_none":         "no oneOf branch matches",
		"union_ambiguous":     "more than one oneOf branch matches",
		"not":                 "matches a forbidden schema",
		"depth_exceeded":      "schema nesting too deep",
	},
	"ja": {
		"invalid_type":        "型が不正です",
		"const":               "定数と一致しません",
		"invalid_enum":        "許可された値ではありません",
		"too_small":           "値が小さすぎます",
		"too_big":             "値が大きすぎます",
		"not_multiple":        "{multipleOf} の倍数ではありません",
		"too_short":           "短すぎます",
		"too_long":            "長すぎます",
		"pattern":             "パターンに一致しません",
		"required":            "必須プロパティ {key} が不足しています",
		"unknown_key":         "未知のキーです",
		"too_few_items":       "要素が少なすぎます",
		"too_many_items":      "要素が多すぎます",
		"contains":            "contains に一致する要素がありません",
		"too_few_properties":  "プロパティが少なすぎます",
		"too_many_properties": "プロパティが多すぎます",
		"any_of":              "anyOf のどの候補にも一致しません",
		"one_of_none":         "oneOf のどの候補にも一致しません",
		"union_ambiguous":     "oneOf の複数の候補に一致します",
		"not":                 "禁止されたスキーマに一致します",
		"depth_exceeded":      "スキーマの入れ子が深すぎます",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalog[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := catalog[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
