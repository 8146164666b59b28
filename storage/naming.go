package storage

import (
	"mime"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/reoring/goform/internal/hash"
)

// CounterGenerator names files dir/0<ext>, dir/1<ext>, ... in call order.
type CounterGenerator struct {
	dir string
	ext string
	n   atomic.Uint64
}

// Counter returns a generator numbering files inside dir.
func Counter(dir, ext string) *CounterGenerator {
	return &CounterGenerator{dir: dir, ext: ext}
}

func (g *CounterGenerator) NextFilename(string) (string, bool) {
	n := g.n.Add(1) - 1
	return filepath.Join(g.dir, strconv.FormatUint(n, 10)+g.ext), true
}

func (g *CounterGenerator) String() string { return "Counter(" + g.dir + ")" }

// HashedGenerator derives names from an xxhash of a per-process seed and a
// sequence number. The extension follows the media type when known.
type HashedGenerator struct {
	dir  string
	seed string
	n    atomic.Uint64
}

// Hashed returns a generator producing hex names inside dir.
func Hashed(dir string) *HashedGenerator {
	return &HashedGenerator{dir: dir, seed: strconv.FormatInt(time.Now().UnixNano(), 36)}
}

func (g *HashedGenerator) NextFilename(mediaType string) (string, bool) {
	n := g.n.Add(1)
	id := hash.ID(g.seed + "/" + strconv.FormatUint(n, 10))
	name := strconv.FormatUint(id, 16) + extensionFor(mediaType)
	return filepath.Join(g.dir, name), true
}

func (g *HashedGenerator) String() string { return "Hashed(" + g.dir + ")" }

func extensionFor(mediaType string) string {
	if mediaType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return ""
	}
	exts, err := mime.ExtensionsByType(mt)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
