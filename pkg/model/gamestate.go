package model

import "github.com/ninehex/nhsim/pkg/rng"

// GameFlags carries top-level, whole-run boolean state that does not
// belong to any single level or the player.
type GameFlags struct {
	WizardMode  bool   `json:"wizard_mode"`
	Explore     bool   `json:"explore"`
	Bones       bool   `json:"bones"`
	Amulet      bool   `json:"amulet"`
	Quest       bool   `json:"quest"`
	Ascended    bool   `json:"ascended"`
	Dead        bool   `json:"dead"`
	DeathReason string `json:"death_reason"`
}

// GameState is the complete, serializable state of one running game:
// the deterministic RNG, the player, every generated level,
// and bookkeeping needed to resume or replay a run.
type GameState struct {
	RNG *rng.Isaac64 `json:"rng"`

	Player       You               `json:"player"`
	CurrentLevel DLevel            `json:"current_level"`
	Levels       map[DLevel]*Level `json:"levels"`
	Inventory    []*Object         `json:"inventory"`

	Dungeon *DungeonSystem `json:"dungeon"`

	Turns    uint64    `json:"turns"`
	Messages []string  `json:"messages"`
	Flags    GameFlags `json:"flags"`

	Seed uint64 `json:"seed"`
}

// NewGameState returns a fresh GameState seeded from seed, with an empty
// level map and the canonical dungeon branch layout.
func NewGameState(seed uint64) *GameState {
	return &GameState{
		RNG:     rng.NewIsaac64(seed),
		Levels:  make(map[DLevel]*Level),
		Dungeon: NewDungeonSystem(),
		Seed:    seed,
	}
}

// Level returns the level at dl, generating an empty placeholder if one
// has not yet been created. Callers that need generation should check
// for an existing entry first; pkg/dungeon populates real levels.
func (gs *GameState) Level(dl DLevel) *Level {
	lvl, ok := gs.Levels[dl]
	if !ok {
		lvl = NewLevel(dl)
		gs.Levels[dl] = lvl
	}
	return lvl
}

// Current returns the Level the player currently occupies.
func (gs *GameState) Current() *Level {
	return gs.Level(gs.CurrentLevel)
}

// Log appends a message to the game's message history, truncating the
// oldest entries once the history exceeds a reasonable scrollback size.
func (gs *GameState) Log(msg string) {
	const maxHistory = 2000
	gs.Messages = append(gs.Messages, msg)
	if len(gs.Messages) > maxHistory {
		gs.Messages = gs.Messages[len(gs.Messages)-maxHistory:]
	}
}

// NextObjectID returns one above the highest ObjectID currently present
// in this GameState, scanning both carried inventory and every level's
// floor and container objects. An ID whose object was removed can be
// returned again.
func (gs *GameState) NextObjectID() ObjectID {
	var max ObjectID
	scan := func(o *Object) {
		if o.ID > max {
			max = o.ID
		}
	}
	var walk func(os []*Object)
	walk = func(os []*Object) {
		for _, o := range os {
			scan(o)
			walk(o.Contents)
		}
	}
	walk(gs.Inventory)
	for _, lvl := range gs.Levels {
		walk(lvl.Objects)
		for _, m := range lvl.Monsters {
			walk(m.Inventory)
		}
	}
	return max + 1
}

// NextMonsterID returns one above the highest MonsterID currently present
// on any level in gs.Levels. An ID whose monster was removed can be
// returned again.
func (gs *GameState) NextMonsterID() MonsterID {
	var max MonsterID
	for _, lvl := range gs.Levels {
		for _, m := range lvl.Monsters {
			if m.ID > max {
				max = m.ID
			}
		}
	}
	return max + 1
}
