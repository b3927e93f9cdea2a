package league

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxResultEntries caps one race submission.
	MaxResultEntries = 40
	// MaxFinishPosition is the largest grid spot a result may claim.
	MaxFinishPosition = 36
)

var (
	ErrEmptyBatch          = errors.New("no entries in batch")
	ErrBatchTooLarge       = errors.New("too many entries in batch")
	ErrDuplicatePole       = errors.New("only one pole per race")
	ErrDuplicateFastestLap = errors.New("only one fastest lap per race")
	ErrBadEntry            = errors.New("malformed entry")
)

// ResultEntry is one parsed line of a batch result submission.
type ResultEntry struct {
	Driver     string
	Position   int
	Pole       bool
	FastestLap bool
}

// ParseResultEntries parses `driver,position[,Yes][,FL]` entries separated by
// semicolons. The whole batch is validated before anything is written: entry
// count, position range, and the one-pole/one-fastest-lap invariants all hold
// or the submission is rejected outright.
func ParseResultEntries(raw string) ([]ResultEntry, error) {
	cleaned := strings.NewReplacer(`"`, "", "'", "").Replace(raw)

	var entries []ResultEntry
	poles, fastestLaps := 0, 0
	for _, piece := range strings.Split(cleaned, ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}

		parts := strings.Split(piece, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 || parts[0] == "" {
			return nil, fmt.Errorf("%w: %q, use driver,position[,Yes][,FL]", ErrBadEntry, piece)
		}

		position, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid position %q", ErrBadEntry, parts[1])
		}
		if position < 1 || position > MaxFinishPosition {
			return nil, fmt.Errorf("%w: position %d out of range 1-%d", ErrBadEntry, position, MaxFinishPosition)
		}

		entry := ResultEntry{
			Driver:   parts[0],
			Position: position,
		}
		if len(parts) >= 3 && strings.EqualFold(parts[2], "yes") {
			entry.Pole = true
			poles++
		}
		if len(parts) >= 4 && strings.EqualFold(parts[3], "fl") {
			entry.FastestLap = true
			fastestLaps++
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(entries) > MaxResultEntries {
		return nil, fmt.Errorf("%w: %d entries, max %d", ErrBatchTooLarge, len(entries), MaxResultEntries)
	}
	if poles > 1 {
		return nil, ErrDuplicatePole
	}
	if fastestLaps > 1 {
		return nil, ErrDuplicateFastestLap
	}

	return entries, nil
}

// ParseRaceEntries parses `track,date` entries separated by semicolons, used
// by the batch race commands. Invalid entries are collected, not fatal.
func ParseRaceEntries(raw string) (valid [][2]string, skipped []string) {
	for _, piece := range strings.Split(raw, ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		parts := strings.SplitN(piece, ",", 2)
		if len(parts) != 2 {
			skipped = append(skipped, piece)
			continue
		}
		track := strings.TrimSpace(parts[0])
		date := strings.TrimSpace(parts[1])
		if track == "" || date == "" {
			skipped = append(skipped, piece)
			continue
		}
		valid = append(valid, [2]string{track, date})
	}
	return valid, skipped
}

// SplitNames splits a semicolon-separated driver list, dropping empties.
func SplitNames(raw string) []string {
	var names []string
	for _, piece := range strings.Split(raw, ";") {
		if piece = strings.TrimSpace(piece); piece != "" {
			names = append(names, piece)
		}
	}
	return names
}
