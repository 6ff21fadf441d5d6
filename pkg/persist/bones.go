package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ninehex/nhsim/pkg/export"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/rng"
)

// BonesVersion is the only version this build accepts for bones files.
const BonesVersion = 1

// BonesHeader is the fixed-shape header a bones file carries.
type BonesHeader struct {
	Version     int          `json:"version"`
	PlayerName  string       `json:"player_name"`
	Role        string       `json:"role"`
	Race        string       `json:"race"`
	DLevel      model.DLevel `json:"dlevel"`
	DeathReason string       `json:"death_reason"`
	TurnCount   uint64       `json:"turn_count"`
	ExpLevel    int32        `json:"exp_level"`
	Gold        int64        `json:"gold"`
	MaxHP       int32        `json:"max_hp"`
}

type bonesFile struct {
	Header BonesHeader  `json:"header"`
	Level  *model.Level `json:"level"`
}

// BonesPath returns the filename a bones file for dl is written under,
// "bon<dnum><lnum>.dat" inside dir.
func BonesPath(dir string, dl model.DLevel) string {
	return filepath.Join(dir, fmt.Sprintf("bon%d%d.dat", dl.Dungeon, dl.Level))
}

// SanitizeForBones mutates lvl in place into the snapshot a bones file
// should carry: tame monsters are removed,
// non-shopkeeper/non-priest monsters are un-peaced, one third are put to
// sleep, every object is 25% cursed with its artifact status stripped
// and marked unidentified, the dying player's inventory is dropped at
// deathPos and sanitized the same way, and a ghost of the player is
// added.
func SanitizeForBones(r *rng.Isaac64, gs *model.GameState, lvl *model.Level, deathPos model.Position) {
	kept := lvl.Monsters[:0:0]
	for _, m := range lvl.Monsters {
		if m.State.Has(model.StateTame) {
			continue
		}
		if !m.IsShopkeeper && !m.IsPriest {
			m.State &^= model.StatePeaceful
		}
		if r.Rn2(3) == 0 {
			m.State |= model.StateSleeping
		}
		kept = append(kept, m)
	}
	lvl.Monsters = kept

	for _, o := range lvl.Objects {
		sanitizeObject(r, o)
	}

	for _, o := range gs.Inventory {
		sanitizeObject(r, o)
		o.InvLetter = 0
		o.SetFloorPos(deathPos)
	}
	lvl.Objects = append(lvl.Objects, gs.Inventory...)
	gs.Inventory = nil

	id := gs.NextMonsterID()
	for _, m := range lvl.Monsters {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	ghost := &model.Monster{
		ID:    id,
		Pos:   deathPos,
		Name:  "ghost of " + gs.Player.Name,
		HP:    gs.Player.HPMax / 2,
		HPMax: gs.Player.HPMax / 2,
		Level: gs.Player.ExpLevel,
		State: model.StateAlive | model.StateInvisible,
	}
	lvl.Monsters = append(lvl.Monsters, ghost)
}

func sanitizeObject(r *rng.Isaac64, o *model.Object) {
	if r.Rn2(4) == 0 {
		o.BUC = model.Cursed
		o.BUCKnown = false
	}
	o.Artifact = 0
	o.Known = false
	for _, c := range o.Contents {
		sanitizeObject(r, c)
	}
}

// WriteBones writes lvl's sanitized snapshot to dir, following the
// BonesPath naming convention.
func WriteBones(dir string, header BonesHeader, lvl *model.Level) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: creating bones directory: %w", err)
	}
	header.Version = BonesVersion
	bf := bonesFile{Header: header, Level: lvl}
	data, err := export.MarshalDeterministic(bf)
	if err != nil {
		return fmt.Errorf("persist: encoding bones: %w", err)
	}
	path := BonesPath(dir, header.DLevel)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: writing bones: %w", err)
	}
	return nil
}

// LoadBones reads and validates a bones file, strictly checking the
// version.
func LoadBones(r *rng.Isaac64, dir string, dl model.DLevel) (*BonesHeader, *model.Level, error) {
	path := BonesPath(dir, dl)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("persist: reading bones: %w", err)
	}

	var bf bonesFile
	if err := export.Unmarshal(data, &bf); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrCorrupted, err)
	}
	if bf.Header.Version != BonesVersion {
		return nil, nil, &IncompatibleVersionError{Expected: BonesVersion, Found: bf.Header.Version}
	}
	if bf.Level == nil {
		return nil, nil, fmt.Errorf("%w: missing level payload", ErrCorrupted)
	}

	for _, m := range bf.Level.Monsters {
		if m.State.Has(model.StateSleeping) && r.Rn2(2) == 0 {
			m.State &^= model.StateSleeping
		}
	}
	bf.Level.Flags.WizardBones = true

	return &bf.Header, bf.Level, nil
}
