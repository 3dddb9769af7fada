// Package caveset loads cave sets: YAML cave-set files and legacy binary
// cave files, found on disk and addressed by ID.
package caveset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/importer"
)

var (
	// ErrNotFound is returned when no set or cave matches an ID.
	ErrNotFound = errors.New("caveset: not found")
	// ErrInvalid is returned for cave-set files that parse but make no sense.
	ErrInvalid = errors.New("caveset: invalid cave set")
)

// FormatYAML is the Format of sets read from YAML files. Binary sets carry
// the importer tag of their format.
const FormatYAML = "yaml"

// Set is a named list of caves.
type Set struct {
	ID          string
	Name        string
	Author      string
	Description string
	Format      string
	Caves       []*cave.Definition
	FilePath    string
}

// CaveID returns the ID of the i-th cave (0-based): "<set>/<n>" with n
// counted from 1.
func (s *Set) CaveID(i int) string {
	return s.ID + "/" + strconv.Itoa(i+1)
}

// Cave finds a cave by its 1-based number or, failing that, by name.
func (s *Set) Cave(ref string) (*cave.Definition, int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.Caves) {
			return nil, 0, fmt.Errorf("%w: cave %d of %s", ErrNotFound, n, s.ID)
		}
		return s.Caves[n-1], n - 1, nil
	}
	for i, d := range s.Caves {
		if strings.EqualFold(d.Name, ref) {
			return d, i, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: cave %q of %s", ErrNotFound, ref, s.ID)
}

// Loader handles loading cave sets from directories.
type Loader struct {
	Roots []string
	Log   *log.Logger
}

// NewLoader creates a new cave-set loader. A nil logger discards the
// reasons files were skipped.
func NewLoader(logger *log.Logger, roots ...string) *Loader {
	return &Loader{Roots: roots, Log: logger}
}

// LoadAll recursively scans the roots and loads every cave file. Roots that
// do not exist are skipped; files that fail to load are logged and skipped.
// Returns sets sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]*Set, error) {
	var sets []*Set
	seen := make(map[string]string)

	for _, root := range l.Roots {
		if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			set, err := l.LoadFile(path)
			if err != nil {
				if !errors.Is(err, importer.ErrUnrecognized) && l.Log != nil {
					l.Log.Warn("skipping cave file", "path", path, "err", err)
				}
				return nil
			}
			if prev, dup := seen[set.ID]; dup {
				if l.Log != nil {
					l.Log.Warn("duplicate cave set id", "id", set.ID, "path", path, "kept", prev)
				}
				return nil
			}
			seen[set.ID] = path
			sets = append(sets, set)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking directory %s: %w", root, err)
		}
	}

	// Sort by ID for determinism
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].ID < sets[j].ID
	})

	return sets, nil
}

// LoadFile loads a single cave file: YAML by extension, anything else by
// its magic.
func (l *Loader) LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))
	id := strings.TrimSuffix(base, filepath.Ext(base))

	var set *Set
	switch ext {
	case ".yaml", ".yml":
		set, err = ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing file %s: %w", path, err)
		}
	default:
		tag, ok := importer.DetectFormat(data)
		if !ok {
			return nil, fmt.Errorf("%s: %w", path, importer.ErrUnrecognized)
		}
		logger := l.Log
		if logger != nil {
			logger = logger.With("file", base)
		}
		caves, err := importer.Import(data, importer.Options{Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("importing file %s: %w", path, err)
		}
		set = &Set{Name: id, Format: string(tag), Caves: caves}
	}

	set.ID = id
	set.FilePath = path
	if set.Name == "" {
		set.Name = id
	}
	return set, nil
}

// Find resolves "<set>/<cave>" to a cave, where <cave> is a 1-based number
// or a cave name. A bare set ID selects its first cave.
func (l *Loader) Find(id string) (*Set, *cave.Definition, int, error) {
	setID, ref, ok := strings.Cut(id, "/")
	if !ok {
		ref = "1"
	}
	sets, err := l.LoadAll()
	if err != nil {
		return nil, nil, 0, err
	}
	for _, s := range sets {
		if s.ID != setID {
			continue
		}
		d, i, err := s.Cave(ref)
		if err != nil {
			return nil, nil, 0, err
		}
		return s, d, i, nil
	}
	return nil, nil, 0, fmt.Errorf("%w: cave set %q", ErrNotFound, setID)
}

// ListIDs returns every cave ID in sorted set order.
func (l *Loader) ListIDs() ([]string, error) {
	sets, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, s := range sets {
		for i := range s.Caves {
			ids = append(ids, s.CaveID(i))
		}
	}
	return ids, nil
}
