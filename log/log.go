// Package log defines the small key-value logger used by forms.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// LevelCrit sits above slog.LevelError.
const LevelCrit = slog.Level(12)

// Logger is logger interface. The variadic arguments are key value pairs. The key must be a
// string and the value should have a meaningful string representations.
type Logger interface {
	Debug(string, ...any)
	Error(string, ...any)
	Crit(string, ...any)
	With(...any) Logger
}

// Discard drops everything. Forms use it unless given a logger.
var Discard Logger = discard{}

type discard struct{}

func (discard) Debug(string, ...any) {}
func (discard) Error(string, ...any) {}
func (discard) Crit(string, ...any)  {}
func (d discard) With(...any) Logger { return d }

// Default writes through a slog.Logger, slog.Default() when nil.
type Default struct {
	Slog *slog.Logger
	Tags []any
}

func (l *Default) Debug(m string, s ...any) { l.log(slog.LevelDebug, m, s) }
func (l *Default) Error(m string, s ...any) { l.log(slog.LevelError, m, s) }
func (l *Default) Crit(m string, s ...any)  { l.log(LevelCrit, m, s) }
func (l *Default) With(tags ...any) Logger {
	return l.with(tags)
}

func (l *Default) with(tags []any) *Default {
	t := make([]any, 0, len(tags)+len(l.Tags))
	t = append(t, tags...)
	t = append(t, l.Tags...)
	return &Default{Slog: l.Slog, Tags: t}
}

func (l *Default) log(lvl slog.Level, msg string, s []any) {
	sl := l.Slog
	if sl == nil {
		sl = slog.Default()
	}
	args := make([]any, 0, len(s)+len(l.Tags))
	args = append(args, s...)
	args = append(args, l.Tags...)
	sl.Log(context.Background(), lvl, msg, args...)
}

func tfmt(lvl, msg string, all ...[]any) string {
	var b strings.Builder
	b.WriteString(lvl)
	b.WriteString(msg)
	for _, tags := range all {
		for i, v := range tags {
			if i%2 == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte('=')
			}
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}
