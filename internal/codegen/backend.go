package codegen

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/KromDaniel/regdfa/internal/recognizer"
)

// ErrUnknownBackend is returned by Lookup for unregistered names.
var ErrUnknownBackend = errors.New("unknown backend")

// Meta describes the pattern a program is generated for.
type Meta struct {
	Pattern string
	Name    string
}

// Backend serializes a dense table into a program with the recognizer
// contract: read one whitespace-delimited token from standard input, print
// "accept" or "reject" followed by a newline, exit with status 0.
type Backend interface {
	Name() string
	FileExtension() string
	Generate(w io.Writer, table *recognizer.Table[rune], meta Meta) error
}

var backends = map[string]Backend{
	"go": GoBackend{},
	"c":  CBackend{},
}

// Lookup returns the backend registered under name. The empty name selects Go.
func Lookup(name string) (Backend, error) {
	if name == "" {
		name = "go"
	}
	b, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownBackend, name, Names())
	}
	return b, nil
}

// Names lists the registered backends.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
