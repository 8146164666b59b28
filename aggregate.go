package goform

import (
	"iter"

	"github.com/reoring/goform/internal/engine"
)

func (f *Form) limits() engine.Limits {
	return engine.Limits{
		MaxFields:    f.MaxFields,
		MaxFieldSize: f.MaxFieldSize,
		MaxFiles:     f.MaxFiles,
		MaxFileSize:  f.MaxFileSize,
	}
}

// aggregate enforces the per-request file and field counts over seq. The
// first violation ends the sequence; later parts are never read.
func (f *Form) aggregate(seq iter.Seq2[Hash, error]) iter.Seq2[Hash, error] {
	return func(yield func(Hash, error) bool) {
		counter := engine.NewCounter(f.limits())
		for h, err := range seq {
			if err != nil {
				yield(Hash{}, err)
				return
			}
			name := h.Path.String()
			if _, ok := h.Content.(FileContent); ok {
				err = counter.AcceptFile(name)
			} else {
				err = counter.AcceptField(name)
			}
			if err != nil {
				yield(Hash{}, f.convert(err, name))
				return
			}
			if !yield(h, nil) {
				return
			}
		}
	}
}
