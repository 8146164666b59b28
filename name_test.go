package goform_test

import (
	"errors"
	"testing"

	goform "github.com/reoring/goform"
)

func TestParseName(t *testing.T) {
	m, a := goform.MapPart, goform.ArrayPart
	cases := map[string]goform.NamePath{
		"a":          {m("a")},
		"a[b]":       {m("a"), m("b")},
		"a[]":        {m("a"), a()},
		"a[b][]":     {m("a"), m("b"), a()},
		"a[][c]":     {m("a"), a(), m("c")},
		"a[b][c][d]": {m("a"), m("b"), m("c"), m("d")},
		"a[]]":       {m("a"), m("")},
	}
	for name, want := range cases {
		got, err := goform.ParseName(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(got) != len(want) {
			t.Fatalf("%s: got %v want %v", name, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s[%d]: got %+v want %+v", name, i, got[i], want[i])
			}
		}
	}
}

func TestParseName_Rejects(t *testing.T) {
	for _, name := range []string{"", "[x]", "[]", "[a][b]"} {
		_, err := goform.ParseName(name)
		if !errors.Is(err, goform.ErrContentDisposition) {
			t.Fatalf("%q: expected content_disposition, got %v", name, err)
		}
	}
}

func TestNamePath_String(t *testing.T) {
	for _, name := range []string{"a", "a[b]", "a[]", "a[b][]", "a[][c]"} {
		p, err := goform.ParseName(name)
		if err != nil {
			t.Fatal(err)
		}
		if p.String() != name {
			t.Fatalf("String() = %q, want %q", p.String(), name)
		}
	}
}
