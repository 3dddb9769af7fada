// Package registry provides a global registry of legacy cave-file formats.
// Importers register themselves in init() functions, allowing the loader
// to sniff and decode files without a hardcoded list of formats.
package registry

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-caves/internal/cave"
)

// MagicLen is the length of the magic string that opens a cave file.
const MagicLen = 8

// Tag identifies a format (e.g., "bd1", "plck").
type Tag string

// Context is what a decoder gets to know about the cave it decodes.
type Context struct {
	// Index is the position of the cave in the file, starting at 0.
	Index int

	// Log receives recoverable problems (bad coordinates, unknown codes).
	Log *log.Logger
}

// Decoder decodes one cave from the start of data and returns the
// definition and the number of bytes consumed.
// Recoverable problems are logged through ctx; structural damage is an error.
type Decoder func(data []byte, ctx *Context) (*cave.Definition, int, error)

// Format describes a registered file format.
type Format struct {
	Tag    Tag
	Magic  string // MagicLen bytes
	Title  string
	Decode Decoder
}

var (
	formats = make(map[Tag]Format)
	mu      sync.RWMutex
)

// Register adds a format to the registry.
// Typically called from an importer's init() function.
// Panics if the tag or the magic is already registered, or the magic has
// the wrong length.
func Register(f Format) {
	mu.Lock()
	defer mu.Unlock()

	if len(f.Magic) != MagicLen {
		panic(fmt.Sprintf("registry: format %q has magic of length %d", f.Tag, len(f.Magic)))
	}
	if _, exists := formats[f.Tag]; exists {
		panic(fmt.Sprintf("registry: format %q already registered", f.Tag))
	}
	for _, other := range formats {
		if other.Magic == f.Magic {
			panic(fmt.Sprintf("registry: magic %q of %q already used by %q", f.Magic, f.Tag, other.Tag))
		}
	}

	formats[f.Tag] = f
}

// List returns all registered formats, sorted by tag.
func List() []Format {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Format, 0, len(formats))
	for _, f := range formats {
		result = append(result, f)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Tag < result[j].Tag
	})

	return result
}

// Lookup returns the format registered under tag.
func Lookup(tag Tag) (Format, bool) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := formats[tag]
	return f, ok
}

// ByMagic returns the format whose magic opens buf.
func ByMagic(buf []byte) (Format, bool) {
	if len(buf) < MagicLen {
		return Format{}, false
	}

	mu.RLock()
	defer mu.RUnlock()

	for _, f := range formats {
		if bytes.Equal(buf[:MagicLen], []byte(f.Magic)) {
			return f, true
		}
	}
	return Format{}, false
}

// Exists checks if a format with the given tag is registered.
func Exists(tag Tag) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := formats[tag]
	return ok
}
