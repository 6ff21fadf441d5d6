package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ninehex/nhsim/pkg/export"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// SaveMagic and SaveVersion are the header values every save must
// carry; any other version refuses to load.
const (
	SaveMagic   = "NHRS"
	SaveVersion = 1
)

// SaveHeader is the fixed-shape header every save file carries ahead of
// its GameState payload.
type SaveHeader struct {
	Magic      string       `json:"magic"`
	Version    int          `json:"version"`
	PlayerName string       `json:"player_name"`
	Turns      uint64       `json:"turns"`
	DLevel     model.DLevel `json:"dlevel"`
	Timestamp  int64        `json:"timestamp"`
}

// saveFile is the on-disk envelope: `{"header": ..., "state": ...}`.
type saveFile struct {
	Header SaveHeader       `json:"header"`
	State  *model.GameState `json:"state"`
}

// nowUnix isolates this package's one non-deterministic call so tests can
// substitute a fixed clock.
var nowUnix = func() int64 { return time.Now().Unix() }

// Save writes gs to path as a versioned JSON save file, creating parent
// directories as needed.
func Save(gs *model.GameState, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("persist: creating save directory: %w", err)
	}
	sf := saveFile{
		Header: SaveHeader{
			Magic:      SaveMagic,
			Version:    SaveVersion,
			PlayerName: gs.Player.Name,
			Turns:      gs.Turns,
			DLevel:     gs.CurrentLevel,
			Timestamp:  nowUnix(),
		},
		State: gs,
	}
	data, err := export.MarshalDeterministic(sf)
	if err != nil {
		return fmt.Errorf("persist: encoding save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: writing save: %w", err)
	}
	return nil
}

// Load reads and validates a save file at path, strictly checking the
// magic and version before returning the decoded GameState.
func Load(path string) (*model.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("persist: reading save: %w", err)
	}

	var sf saveFile
	if err := export.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorrupted, err)
	}
	if sf.Header.Magic != SaveMagic {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrInvalidHeader, sf.Header.Magic, SaveMagic)
	}
	if sf.Header.Version != SaveVersion {
		return nil, &IncompatibleVersionError{Expected: SaveVersion, Found: sf.Header.Version}
	}
	if sf.State == nil {
		return nil, fmt.Errorf("%w: missing state payload", ErrCorrupted)
	}
	if sf.State.RNG == nil {
		// A save written before the RNG state was carried inline still
		// loads, restarting the stream from the recorded seed.
		sf.State.RNG = rng.NewIsaac64(sf.State.Seed)
	}
	return sf.State, nil
}
