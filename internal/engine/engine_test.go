package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCounter_StrictLessThan(t *testing.T) {
	c := NewCounter(Limits{MaxFields: 2, MaxFiles: 1})

	if err := c.AcceptField("a"); err != nil {
		t.Fatalf("first field should be accepted: %v", err)
	}
	err := c.AcceptField("b")
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != "field_count" || ie.Path != "b" {
		t.Fatalf("expected field_count at b, got %v", err)
	}

	// MaxFiles = 1 accepts no file at all
	if err := c.AcceptFile("f"); err == nil {
		t.Fatalf("expected file_count error")
	}
	if c.Files() != 1 || c.Fields() != 2 {
		t.Fatalf("unexpected counts files=%d fields=%d", c.Files(), c.Fields())
	}
}

func TestMeter_FailsAboveMax(t *testing.T) {
	m := NewMeter(4)
	if err := m.Add(4, "f"); err != nil {
		t.Fatalf("exactly max should pass: %v", err)
	}
	if err := m.Add(1, "f"); err == nil {
		t.Fatalf("expected file_size error")
	}
	if m.Total() != 5 {
		t.Fatalf("expected running total 5, got %d", m.Total())
	}
}

func TestCheckField_MeetOrExceed(t *testing.T) {
	if err := CheckField(3, 1, 5, "x"); err != nil {
		t.Fatalf("4 < 5 should pass: %v", err)
	}
	if err := CheckField(4, 1, 5, "x"); err == nil {
		t.Fatalf("5 >= 5 should fail")
	}
}

func TestReadChunks_DeliversAllBytes(t *testing.T) {
	var got strings.Builder
	err := ReadChunks(context.Background(), strings.NewReader("hello world"), make([]byte, 3), func(b []byte) error {
		got.Write(b)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.String() != "hello world" {
		t.Fatalf("unexpected content %q", got.String())
	}
}

func TestReadChunks_StopAndCancel(t *testing.T) {
	calls := 0
	err := ReadChunks(context.Background(), strings.NewReader("abcdef"), make([]byte, 2), func(b []byte) error {
		calls++
		return ErrStop
	})
	if err != nil || calls != 1 {
		t.Fatalf("expected clean stop after 1 call, got err=%v calls=%d", err, calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = ReadChunks(ctx, strings.NewReader("abc"), nil, func([]byte) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
