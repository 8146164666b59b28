package log

type TB interface {
	Errorf(string, ...any)
	Fatalf(string, ...any)
	Logf(string, ...any)
	Helper()
}

// Testing routes log lines to a test. Decode failures are often the expected
// outcome of a test, so Error only logs; Crit fails the test.
type Testing struct {
	TB
	Tags []any
}

func (l *Testing) Debug(m string, s ...any) {
	l.Helper()
	l.Logf("%s", tfmt("DEB ", m, s, l.Tags))
}
func (l *Testing) Error(m string, s ...any) {
	l.Helper()
	l.Logf("%s", tfmt("ERR ", m, s, l.Tags))
}
func (l *Testing) Crit(m string, s ...any) {
	l.Helper()
	l.Fatalf("%s", tfmt("CRI ", m, s, l.Tags))
}
func (l *Testing) With(tags ...any) Logger {
	t := make([]any, 0, len(tags)+len(l.Tags))
	t = append(t, tags...)
	t = append(t, l.Tags...)
	return &Testing{TB: l.TB, Tags: t}
}
