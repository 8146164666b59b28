package engine

// Enforcement of the per-request resource limits: part counts checked by the
// aggregator and byte sizes checked while a part body is streamed.

// Limits mirrors the numeric bounds of a form.
type Limits struct {
	MaxFields    int
	MaxFieldSize int64
	MaxFiles     int
	MaxFileSize  int64
}

// SimpleIssue is a lightweight issue produced by the engine; callers convert
// it into their public error type.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

func issue(code, path, msg string) error {
	return IssueError{SimpleIssue{Code: code, Path: path, Message: msg}}
}

// Counter tracks accepted fields and files for one request. Counts only grow.
type Counter struct {
	lim    Limits
	fields int
	files  int
}

// NewCounter returns a zeroed counter for lim.
func NewCounter(lim Limits) *Counter { return &Counter{lim: lim} }

// AcceptFile counts one more file. The new count must stay strictly below
// MaxFiles.
func (c *Counter) AcceptFile(path string) error {
	c.files++
	if c.files < c.lim.MaxFiles {
		return nil
	}
	return issue("file_count", path, "too many files in request")
}

// AcceptField counts one more non-file field. The new count must stay strictly
// below MaxFields.
func (c *Counter) AcceptField(path string) error {
	c.fields++
	if c.fields < c.lim.MaxFields {
		return nil
	}
	return issue("field_count", path, "too many fields in request")
}

// Files returns the number of files counted so far.
func (c *Counter) Files() int { return c.files }

// Fields returns the number of non-file fields counted so far.
func (c *Counter) Fields() int { return c.fields }

// Meter keeps the running byte count of a streamed file.
type Meter struct {
	max int64
	n   int64
}

// NewMeter returns a meter that fails once more than max bytes were added.
func NewMeter(max int64) *Meter { return &Meter{max: max} }

// Add records n more bytes.
func (m *Meter) Add(n int, path string) error {
	m.n += int64(n)
	if m.n > m.max {
		return issue("file_size", path, "file too large")
	}
	return nil
}

// Total returns the number of bytes recorded so far.
func (m *Meter) Total() int64 { return m.n }

// CheckField reports whether a chunk of next bytes may be appended to a field
// buffer already holding have bytes. The check runs before the append and the
// combined size must stay strictly below max.
func CheckField(have, next int, max int64, path string) error {
	if int64(have)+int64(next) < max {
		return nil
	}
	return issue("field_size", path, "field too large")
}
