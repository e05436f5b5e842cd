// Package chart reads song note tables and translates them into scheduled
// engine actions. Parsing rejects a malformed file outright, before any
// game state exists, so the engine only ever sees well-formed notes.
package chart

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-rhythm/internal/engine"
)

// noteFields is the column count of the note table:
// userPlayed instrument velocity pitch start end
const noteFields = 6

// Parse reads a newline-delimited note table. The first line is a header
// and is skipped; every other non-empty line must hold exactly six
// whitespace-separated fields. Any malformed line fails the whole file.
func Parse(r io.Reader) ([]engine.NoteData, error) {
	scanner := bufio.NewScanner(r)

	var notes []engine.NoteData
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 || line == "" {
			continue
		}

		note, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("chart: line %d: %w", lineNo, err)
		}
		notes = append(notes, note)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("chart: read: %w", err)
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("chart: no notes")
	}
	return notes, nil
}

// ParseFile reads and parses a note table from disk.
func ParseFile(path string) ([]engine.NoteData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("chart: open %s: %w", path, err)
	}
	defer f.Close()

	notes, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	return notes, nil
}

func parseLine(line string) (engine.NoteData, error) {
	fields := strings.Fields(line)
	if len(fields) != noteFields {
		return engine.NoteData{}, fmt.Errorf("%d fields, want %d", len(fields), noteFields)
	}

	userPlayed, err := strconv.ParseBool(fields[0])
	if err != nil {
		return engine.NoteData{}, fmt.Errorf("userPlayed %q: %w", fields[0], err)
	}
	velocity, err := strconv.Atoi(fields[2])
	if err != nil {
		return engine.NoteData{}, fmt.Errorf("velocity %q: %w", fields[2], err)
	}
	if velocity < 0 || velocity > 127 {
		return engine.NoteData{}, fmt.Errorf("velocity %d outside 0-127", velocity)
	}
	pitch, err := strconv.Atoi(fields[3])
	if err != nil {
		return engine.NoteData{}, fmt.Errorf("pitch %q: %w", fields[3], err)
	}
	if pitch < 0 || pitch > 127 {
		return engine.NoteData{}, fmt.Errorf("pitch %d outside 0-127", pitch)
	}
	start, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return engine.NoteData{}, fmt.Errorf("start %q: %w", fields[4], err)
	}
	end, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return engine.NoteData{}, fmt.Errorf("end %q: %w", fields[5], err)
	}
	if start < 0 || end < start {
		return engine.NoteData{}, fmt.Errorf("bad note span [%v, %v]", start, end)
	}

	return engine.NoteData{
		UserPlayed: userPlayed,
		Instrument: fields[1],
		Velocity:   velocity,
		Pitch:      pitch,
		Start:      start,
		End:        end,
	}, nil
}
