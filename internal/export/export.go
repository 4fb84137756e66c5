// Package export writes simulation summaries to disk.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/streetgames/internal/simulator"
)

// GameSummary is the persisted view of one game's simulation
type GameSummary struct {
	Game           string     `json:"game"`
	Rounds         int        `json:"rounds"`
	Wins           int        `json:"wins"`
	Losses         int        `json:"losses"`
	Pushes         int        `json:"pushes"`
	Mean           float64    `json:"mean"`
	StdDev         float64    `json:"std_dev"`
	CI95           [2]float64 `json:"ci95"`
	ReturnToPlayer float64    `json:"return_to_player"`
	TotalStaked    int        `json:"total_staked"`
	TotalNet       int        `json:"total_net"`
	Rebuys         int        `json:"rebuys"`
	FinalBalance   int        `json:"final_balance"`
	HighWater      int        `json:"high_water"`
}

// Report is the document written by WriteReport
type Report struct {
	Seed  int64         `json:"seed"`
	Games []GameSummary `json:"games"`
}

// NewReport summarises simulator results
func NewReport(seed int64, results []simulator.Result) Report {
	r := Report{Seed: seed, Games: make([]GameSummary, 0, len(results))}
	for _, res := range results {
		s := res.Stats
		lo, hi := s.ConfidenceInterval95()
		r.Games = append(r.Games, GameSummary{
			Game:           res.Game,
			Rounds:         s.Rounds,
			Wins:           s.Wins,
			Losses:         s.Losses,
			Pushes:         s.Pushes,
			Mean:           s.Mean(),
			StdDev:         s.StdDev(),
			CI95:           [2]float64{lo, hi},
			ReturnToPlayer: s.ReturnToPlayer(),
			TotalStaked:    s.TotalStaked,
			TotalNet:       s.TotalNet,
			Rebuys:         res.Rebuys,
			FinalBalance:   res.FinalBalance,
			HighWater:      res.HighWater,
		})
	}
	return r
}

// WriteReport encodes r as indented JSON and writes it atomically
func WriteReport(filename string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return writeFileAtomic(filename, append(data, '\n'), 0o644)
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it over filename, so readers see either the old file or the whole new one.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
