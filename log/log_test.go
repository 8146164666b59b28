package log

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestDefault_WithPrependsTags(t *testing.T) {
	var buf bytes.Buffer
	sl := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := (&Default{Slog: sl, Tags: []any{"req", 7}}).With("field", "title")
	l.Debug("part", "bytes", 5)
	l.Crit("boom")

	out := buf.String()
	for _, want := range []string{"msg=part", "bytes=5", "field=title", "req=7", "level=ERROR+4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestTfmt(t *testing.T) {
	got := tfmt("DEB ", "part", []any{"field", "tags[]", "kind", "Text"})
	if got != "DEB part field=tags[] kind=Text" {
		t.Fatalf("unexpected: %q", got)
	}
}

type recTB struct {
	lines []string
	fatal bool
}

func (r *recTB) Errorf(f string, a ...any) { r.lines = append(r.lines, fmt.Sprintf(f, a...)) }
func (r *recTB) Fatalf(f string, a ...any) {
	r.fatal = true
	r.lines = append(r.lines, fmt.Sprintf(f, a...))
}
func (r *recTB) Logf(f string, a ...any) { r.lines = append(r.lines, fmt.Sprintf(f, a...)) }
func (r *recTB) Helper()                 {}

func TestTesting(t *testing.T) {
	tb := &recTB{}
	var l Logger = &Testing{TB: tb}
	l = l.With("form", "upload")
	l.Error("decode failed", "code", "field_size")
	if tb.fatal {
		t.Fatal("Error must not fail the test")
	}
	l.Crit("bad")
	if !tb.fatal {
		t.Fatal("Crit must fail the test")
	}
	if tb.lines[0] != "ERR decode failed code=field_size form=upload" {
		t.Fatalf("unexpected line %q", tb.lines[0])
	}
	Discard.With("a", 1).Error("ignored")
}
