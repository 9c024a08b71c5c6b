package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Reader extracts raw rows, header included, from an uploaded file.
type Reader interface {
	Read(r io.Reader) ([][]string, error)
	Format() string
}

// Registry holds readers keyed by file extension.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVReader{})
	r.Register(&XLSXReader{})
	return r
}

// ParseFile reads an upload from disk, picks a reader by extension, and
// parses the rows into candidates. codeToID resolves ParentCode references
// against the current tree.
func ParseFile(path string, codeToID map[string]int) ([]model.ImportCandidate, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	rd := DefaultRegistry().Get(ext)
	if rd == nil {
		return nil, fmt.Errorf("unsupported file format %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	rows, err := rd.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s file: %w", rd.Format(), err)
	}

	records, verrs := Parse(rows, codeToID)
	if len(verrs) > 0 {
		return nil, verrs
	}
	return records, nil
}
