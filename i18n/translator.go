package i18n

import "sync"

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "limit").
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		"payload":             "error parsing payload",
		"multipart":           "error in multipart creation",
		"content_disposition": "bad Content-Disposition",
		"content_type":        "bad Content-Type",
		"field":               "failed to parse field name",
		"field_type":          "field type not allowed by form",
		"filename":            "missing or invalid filename",
		"field_size":          "field too large",
		"file_size":           "file too large",
		"field_count":         "too many fields in request",
		"file_count":          "too many files in request",
		"parse_field":         "failed to parse field",
		"parse_int":           "failed to parse int",
		"parse_float":         "failed to parse float",
		"mkdir":               "failed to make directory for upload",
		"fs":                  "error saving file",
		"gen_filename":        "failed to generate filename",
		"canceled":            "decode canceled",
	},
	"ja": {
		"payload":             "ペイロードの解析エラー",
		"multipart":           "マルチパートの生成エラー",
		"content_disposition": "Content-Disposition が不正です",
		"content_type":        "Content-Type が不正です",
		"field":               "フィールド名を解析できません",
		"field_type":          "フォームで許可されていないフィールドです",
		"filename":            "ファイル名がないか不正です",
		"field_size":          "フィールドが大きすぎます",
		"file_size":           "ファイルが大きすぎます",
		"field_count":         "フィールドが多すぎます",
		"file_count":          "ファイルが多すぎます",
		"parse_field":         "フィールドを解析できません",
		"parse_int":           "整数を解析できません",
		"parse_float":         "浮動小数点数を解析できません",
		"mkdir":               "アップロード先ディレクトリを作成できません",
		"fs":                  "ファイルの保存に失敗しました",
		"gen_filename":        "ファイル名を生成できません",
		"canceled":            "デコードが中断されました",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	if msg, ok := dictionaries[t.lang][code]; ok {
		return msg
	}
	return code
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
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
