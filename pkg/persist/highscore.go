package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ninehex/nhsim/pkg/export"
)

// MaxHighScores is the cap on persisted entries.
const MaxHighScores = 100

// ScoreEntry is one row of the high-score table.
type ScoreEntry struct {
	PlayerName  string `json:"player_name"`
	Score       int64  `json:"score"`
	Gold        int64  `json:"gold"`
	Depth       int    `json:"depth"`
	ExpLevel    int32  `json:"exp_level"`
	Ascended    bool   `json:"ascended"`
	HasAmulet   bool   `json:"has_amulet"`
	Conducts    int    `json:"conducts"`
	DeathReason string `json:"death_reason"`
}

type highScoreFile struct {
	Entries []ScoreEntry `json:"entries"`
}

// CalculateScore computes a final score:
// gold + 100*depth + 50*level + 50000*ascended + 1000*conducts*ascended +
// 10000*amulet.
func CalculateScore(gold int64, depth int, level int32, ascended, amulet bool, conducts int) int64 {
	score := gold + 100*int64(depth) + 50*int64(level)
	if ascended {
		score += 50000
		score += 1000 * int64(conducts)
	}
	if amulet {
		score += 10000
	}
	return score
}

// LoadHighScores reads the high-score table from path, returning an
// empty table if the file does not yet exist.
func LoadHighScores(path string) ([]ScoreEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("persist: reading high scores: %w", err)
	}
	var hf highScoreFile
	if err := export.Unmarshal(data, &hf); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorrupted, err)
	}
	return hf.Entries, nil
}

// InsertHighScore inserts entry into entries, maintaining descending
// score order and truncating to MaxHighScores.
func InsertHighScore(entries []ScoreEntry, entry ScoreEntry) []ScoreEntry {
	entries = append(entries, entry)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > MaxHighScores {
		entries = entries[:MaxHighScores]
	}
	return entries
}

// SaveHighScores writes entries to path as JSON.
func SaveHighScores(path string, entries []ScoreEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("persist: creating high score directory: %w", err)
	}
	data, err := export.MarshalDeterministic(highScoreFile{Entries: entries})
	if err != nil {
		return fmt.Errorf("persist: encoding high scores: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: writing high scores: %w", err)
	}
	return nil
}
