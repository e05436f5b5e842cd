// Package songs discovers playable note tables on disk. A built-in demo
// song ships embedded so the game is playable with no files installed.
package songs

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/chart"
	"github.com/vovakirdan/tui-rhythm/internal/engine"
)

//go:embed demo.notes
var demoNotes []byte

// DemoID is the id of the embedded demo song.
const DemoID = "demo"

// SongInfo contains metadata about a discovered song.
type SongInfo struct {
	ID       string
	Title    string
	Path     string // Empty for the embedded demo
	Notes    int    // Total note count
	Playable int    // User-playable note count
	Length   time.Duration
}

// Library scans a directory tree for *.notes files.
type Library struct {
	Root string
}

// NewLibrary creates a library rooted at the given directory. An empty
// root means only the embedded demo is available.
func NewLibrary(root string) *Library {
	return &Library{Root: root}
}

// List returns every available song sorted by ID. Files that fail to
// parse are skipped; a *.notes file named "demo" shadows the embedded
// demo song.
func (l *Library) List() ([]SongInfo, error) {
	infos := map[string]SongInfo{}

	if l.Root != "" {
		err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".notes") {
				return nil
			}

			notes, parseErr := chart.ParseFile(path)
			if parseErr != nil {
				// Skip invalid files
				return nil
			}

			id := songID(path)
			infos[id] = describe(id, path, notes)
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("songs: walking %s: %w", l.Root, err)
		}
	}

	if _, shadowed := infos[DemoID]; !shadowed {
		if notes, err := chart.Parse(bytes.NewReader(demoNotes)); err == nil {
			infos[DemoID] = describe(DemoID, "", notes)
		}
	}

	result := make([]SongInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Load returns a song's metadata and its parsed notes.
func (l *Library) Load(id string) (SongInfo, []engine.NoteData, error) {
	if l.Root != "" {
		var found string
		err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || songID(path) != id || !strings.EqualFold(filepath.Ext(path), ".notes") {
				return nil
			}
			found = path
			return filepath.SkipAll
		})
		if err != nil && !os.IsNotExist(err) {
			return SongInfo{}, nil, fmt.Errorf("songs: walking %s: %w", l.Root, err)
		}
		if found != "" {
			notes, err := chart.ParseFile(found)
			if err != nil {
				return SongInfo{}, nil, err
			}
			return describe(id, found, notes), notes, nil
		}
	}

	if id == DemoID {
		notes, err := chart.Parse(bytes.NewReader(demoNotes))
		if err != nil {
			return SongInfo{}, nil, err
		}
		return describe(DemoID, "", notes), notes, nil
	}

	return SongInfo{}, nil, fmt.Errorf("songs: unknown song %q", id)
}

// Exists reports whether a song with the given id is available.
func (l *Library) Exists(id string) bool {
	_, _, err := l.Load(id)
	return err == nil
}

// songID derives a song id from its file path: the base name without the
// extension, lower-cased.
func songID(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

func describe(id, path string, notes []engine.NoteData) SongInfo {
	playable := 0
	var lastEnd float64
	for _, n := range notes {
		if n.UserPlayed {
			playable++
		}
		if n.End > lastEnd {
			lastEnd = n.End
		}
	}
	return SongInfo{
		ID:       id,
		Title:    songTitle(id),
		Path:     path,
		Notes:    len(notes),
		Playable: playable,
		Length:   time.Duration(lastEnd * float64(time.Second)),
	}
}

// songTitle turns "moon_river" into "Moon River".
func songTitle(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
