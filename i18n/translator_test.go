package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("field_size", nil); msg != "field too large" {
		t.Fatalf("expected english message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("field_size", nil); msg == "field too large" || msg == "field_size" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// unknown languages fall back to en
	SetLanguage("xx")
	if msg := T("file_count", nil); msg != "too many files in request" {
		t.Fatalf("expected english fallback, got %q", msg)
	}
}

func TestTranslator_UnknownCodeEchoesCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("mkdir", nil); msg != "X:mkdir" {
		t.Fatalf("expected custom translator, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("mkdir", nil); msg != "failed to make directory for upload" {
		t.Fatalf("expected reset to en, got %q", msg)
	}
}
