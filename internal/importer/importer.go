// Package importer decodes the legacy binary cave formats. Every format
// registers itself with the registry; Import sniffs the magic and runs the
// matching decoder over each cave of the payload.
//
// A file is an 8-byte magic string, a little-endian uint32 payload length
// and the payload, which holds the caves back to back.
package importer

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

var (
	// ErrUnrecognized is returned when no format claims the magic.
	ErrUnrecognized = errors.New("importer: unrecognized format")
	// ErrTruncated is returned when the data ends inside a header or a cave.
	ErrTruncated = errors.New("importer: truncated data")
	// ErrMalformed is returned for structurally invalid caves.
	ErrMalformed = errors.New("importer: malformed data")
)

// HeaderLen is the size of the file header.
const HeaderLen = registry.MagicLen + 4

// Options controls an import.
type Options struct {
	// Logger receives recoverable problems. Nil means log.Default().
	Logger *log.Logger

	// MaxCaves stops after that many caves; 0 imports all of them.
	MaxCaves int
}

// DetectFormat returns the tag of the format whose magic opens buf.
func DetectFormat(buf []byte) (registry.Tag, bool) {
	f, ok := registry.ByMagic(buf)
	if !ok {
		return "", false
	}
	return f.Tag, true
}

// Import decodes every cave of buf. On error the caves decoded so far are
// returned along with it.
func Import(buf []byte, opts Options) ([]*cave.Definition, error) {
	f, ok := registry.ByMagic(buf)
	if !ok {
		return nil, ErrUnrecognized
	}
	if len(buf) < HeaderLen {
		return nil, fmt.Errorf("%w: header of %d bytes", ErrTruncated, len(buf))
	}
	n := int(binary.LittleEndian.Uint32(buf[registry.MagicLen:HeaderLen]))
	if n > len(buf)-HeaderLen {
		return nil, fmt.Errorf("%w: payload of %d bytes, have %d", ErrTruncated, n, len(buf)-HeaderLen)
	}
	data := buf[HeaderLen : HeaderLen+n]

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("format", f.Tag)

	var defs []*cave.Definition
	for i := 0; len(data) > 0; i++ {
		if opts.MaxCaves > 0 && i >= opts.MaxCaves {
			break
		}
		ctx := &registry.Context{Index: i, Log: logger}
		def, used, err := f.Decode(data, ctx)
		if err != nil {
			return defs, fmt.Errorf("cave %d: %w", i, err)
		}
		if used <= 0 || used > len(data) {
			return defs, fmt.Errorf("%w: cave %d: decoder consumed %d of %d bytes", ErrMalformed, i, used, len(data))
		}
		applyChecksumHack(f.Tag, data[:used], def, ctx)
		defs = append(defs, def)
		data = data[used:]
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no caves", ErrMalformed)
	}
	return defs, nil
}

// Encode wraps a payload into a file of format tag.
func Encode(tag registry.Tag, payload []byte) ([]byte, error) {
	f, ok := registry.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnrecognized, tag)
	}
	out := make([]byte, HeaderLen, HeaderLen+len(payload))
	copy(out, f.Magic)
	binary.LittleEndian.PutUint32(out[registry.MagicLen:], uint32(len(payload)))
	return append(out, payload...), nil
}

func warn(ctx *registry.Context, msg string, keyvals ...any) {
	if ctx == nil || ctx.Log == nil {
		return
	}
	ctx.Log.Warn(msg, append([]any{"cave", ctx.Index}, keyvals...)...)
}

func need(data []byte, n int, what string) error {
	if len(data) < n {
		return fmt.Errorf("%w: %s needs %d bytes, have %d", ErrTruncated, what, n, len(data))
	}
	return nil
}

// checkPoint logs coordinates outside the cave. The object is kept: the
// renderer wraps coordinates like the original engines did.
func checkPoint(ctx *registry.Context, def *cave.Definition, x, y int) {
	if x < 0 || y < 0 || x >= def.W || y >= def.H {
		warn(ctx, "coordinates out of range", "x", x, "y", y)
	}
}

// legacyDefinition returns a definition with the switches every legacy
// engine shares.
func legacyDefinition(intermission bool) *cave.Definition {
	w, h := 40, 22
	if intermission {
		w, h = 20, 12
	}
	def := cave.NewDefinition(w, h)
	def.Intermission = intermission
	def.Lineshift = true
	def.BorderScan = false
	def.MagicTimerWaitsHatch = true
	def.AmoebaTimerWaitsHatch = true
	return def
}

func fixedString(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == 0 || b[end-1] == ' ') {
		end--
	}
	return string(b[:end])
}
