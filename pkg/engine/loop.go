// Package engine drives the turn/action/AI game loop:
// action-point accounting, dispatching the player's command through
// pkg/action, ticking every monster on the current level through
// pkg/ai, and advancing per-turn timers, scheduled events, and end
// conditions.
package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/ninehex/nhsim/pkg/action"
	"github.com/ninehex/nhsim/pkg/ai"
	"github.com/ninehex/nhsim/pkg/invariant"
	"github.com/ninehex/nhsim/pkg/logging"
	"github.com/ninehex/nhsim/pkg/model"
	"github.com/ninehex/nhsim/pkg/persist"
	"github.com/ninehex/nhsim/pkg/property"
)

// EndCondition is the closed set of reasons a run can terminate.
type EndCondition int

const (
	EndNone EndCondition = iota
	EndPlayerDied
	EndPlayerWon
	EndPlayerQuit
	EndSaveAndQuit
)

// String renders the end condition's name.
func (e EndCondition) String() string {
	switch e {
	case EndPlayerDied:
		return "PlayerDied"
	case EndPlayerWon:
		return "PlayerWon"
	case EndPlayerQuit:
		return "PlayerQuit"
	case EndSaveAndQuit:
		return "SaveAndQuit"
	default:
		return "None"
	}
}

// Loop owns a GameState and the engine Config that parameterizes its
// scheduling, and exposes the single-step entry point front-ends call
// once per submitted Command.
type Loop struct {
	GS     *model.GameState
	Config Config

	bonesWritten  bool
	scoreRecorded bool
}

// NewLoop constructs a Loop around an existing GameState, applying cfg's
// scheduling parameters.
func NewLoop(gs *model.GameState, cfg Config) *Loop {
	return &Loop{GS: gs, Config: cfg}
}

// Step runs one full pass of the turn loop for a
// single submitted player Command, recovering from any invariant panic
// by performing an emergency save before re-panicking to the caller.
func (l *Loop) Step(cmd action.Command) (result action.Result, end EndCondition) {
	defer func() {
		if r := recover(); r != nil {
			l.emergencyRecover(r)
			panic(r)
		}
	}()

	you := &l.GS.Player
	cost := action.Cost(cmd)

	acted := false
	if you.MovementPoints >= cost {
		result = action.Dispatch(l.GS, cmd)
		if result.Kind == action.ResultSuccess {
			you.MovementPoints -= cost
			acted = true
		}
	} else {
		you.MovementPoints += l.Config.Speed - l.encumbrancePenalty()
		result = action.NoTime()
	}

	l.tickMonsters()
	l.tickTimers()
	l.runScheduledEvents()
	l.checkInvariants()

	if acted {
		l.GS.Turns++
		you.TurnsPlayed++
	}

	return result, l.checkEndConditions()
}

// checkInvariants runs after every action and every tick: in-bounds
// positions, player
// vitals within their bounds, and unique monster IDs. A failure here is
// an internal bug, not a recoverable player error, so it panics through
// pkg/invariant rather than returning an error.
func (l *Loop) checkInvariants() {
	gs := l.GS
	you := &gs.Player

	invariant.Check(gs.Turns, you.Pos.Valid(), "player position %s out of bounds", you.Pos)
	invariant.Check(gs.Turns, you.HP <= you.HPMax, "player HP %d exceeds HPMax %d", you.HP, you.HPMax)
	invariant.Check(gs.Turns, you.Energy <= you.EnergyMax, "player energy %d exceeds EnergyMax %d", you.Energy, you.EnergyMax)
	invariant.Check(gs.Turns, you.Luck >= -13 && you.Luck <= 13, "player luck %d out of [-13,13]", you.Luck)
	invariant.Check(gs.Turns, you.ExpLevel <= model.MaxULev, "player exp_level %d exceeds MaxULev", you.ExpLevel)

	lvl := gs.Current()
	seen := make(map[model.MonsterID]bool, len(lvl.Monsters))
	for _, m := range lvl.Monsters {
		invariant.Check(gs.Turns, m.Pos.Valid(), "monster %d position %s out of bounds", m.ID, m.Pos)
		invariant.Check(gs.Turns, !seen[m.ID], "duplicate monster id %d on level %s", m.ID, lvl.DLevel)
		invariant.Check(gs.Turns, !m.State.Has(model.StateTame) || m.State.Has(model.StatePeaceful), "monster %d is tame but not peaceful", m.ID)
		seen[m.ID] = true
	}
}

// tickMonsters grants every monster on the current level its per-tick
// action points and runs pkg/ai.Tick while it can still afford to act,
// iterating in stable MonsterID order.
func (l *Loop) tickMonsters() {
	lvl := l.GS.Current()
	monsters := make([]*model.Monster, len(lvl.Monsters))
	copy(monsters, lvl.Monsters)
	sort.Slice(monsters, func(i, j int) bool { return monsters[i].ID < monsters[j].ID })

	for _, m := range monsters {
		if !m.Alive() {
			continue
		}
		m.ActionPoints += l.Config.Speed + m.Speed
		for m.ActionPoints >= l.Config.ActionThreshold && m.Alive() {
			ai.Tick(l.GS, m)
			m.ActionPoints -= l.Config.ActionThreshold
		}
	}
}

// tickTimers advances per-turn countdowns: property timeouts, cursed-item
// effects, and nutrition drain.
func (l *Loop) tickTimers() {
	you := &l.GS.Player
	if you.Properties != nil {
		you.Properties.TickTimeouts()
	}

	var worn []*model.Object
	for _, o := range l.GS.Inventory {
		if o.WornMask != 0 {
			worn = append(worn, o)
		}
	}
	for _, msg := range property.TickCursedEffects(you, worn, l.GS.RNG) {
		l.GS.Log(msg)
	}

	you.Nutrition--
	decrementStatus(&you.Confused)
	decrementStatus(&you.Stunned)
	decrementStatus(&you.Blind)
	decrementStatus(&you.Sleeping)
	decrementStatus(&you.Hallucinating)
	decrementStatus(&you.Paralyzed)

	if you.PrayerTimeout > 0 {
		you.PrayerTimeout--
	}
}

func decrementStatus(v *int32) {
	if *v > 0 {
		*v--
	}
}

// runScheduledEvents fires the per-turn scheduled events: mail delivery.
// Monsters are placed by pkg/content only when a level is generated,
// and no bones level is loaded during play, so only mail fires here; no
// per-turn monster spawn or bones encounter is scheduled.
func (l *Loop) runScheduledEvents() {
	DeliverMail(l.GS, l.Config)
}

// checkEndConditions inspects GameFlags and the player's vital state for
// a terminal condition.
func (l *Loop) checkEndConditions() EndCondition {
	switch {
	case l.GS.Flags.Dead:
		l.writeBonesOnDeath()
		l.recordScore(false)
		return EndPlayerDied
	case l.GS.Flags.Ascended:
		l.recordScore(true)
		return EndPlayerWon
	default:
		return EndNone
	}
}

// recordScore appends this run's final score to the high-score table the
// first time a terminal condition is observed. Failures are logged, not
// propagated, like writeBonesOnDeath's.
func (l *Loop) recordScore(ascended bool) {
	if l.scoreRecorded {
		return
	}
	l.scoreRecorded = true

	gs := l.GS
	you := &gs.Player
	depth := 0
	if gs.Dungeon != nil {
		depth = gs.Dungeon.Ledger(gs.CurrentLevel) + 1
	}
	conducts := 0
	for _, kept := range you.Conducts {
		if kept {
			conducts++
		}
	}
	entry := persist.ScoreEntry{
		PlayerName:  you.Name,
		Score:       persist.CalculateScore(you.Gold, depth, you.ExpLevel, ascended, gs.Flags.Amulet, conducts),
		Gold:        you.Gold,
		Depth:       depth,
		ExpLevel:    you.ExpLevel,
		Ascended:    ascended,
		HasAmulet:   gs.Flags.Amulet,
		Conducts:    conducts,
		DeathReason: gs.Flags.DeathReason,
	}
	entries, err := persist.LoadHighScores(l.Config.HighScoreFile)
	if err != nil {
		logging.Error("loading high scores failed", "path", l.Config.HighScoreFile, "error", err)
		return
	}
	entries = persist.InsertHighScore(entries, entry)
	if err := persist.SaveHighScores(l.Config.HighScoreFile, entries); err != nil {
		logging.Error("saving high scores failed", "path", l.Config.HighScoreFile, "error", err)
	}
}

// writeBonesOnDeath sanitizes and writes the dying level to a bones file
// the first time death is observed, provided the current dungeon is
// bones-eligible (main, Mines, Gehennom only). Failures are logged, not
// propagated, the same way emergencyRecover treats a failed diagnostic
// save as best-effort rather than fatal.
func (l *Loop) writeBonesOnDeath() {
	if l.bonesWritten {
		return
	}
	l.bonesWritten = true

	gs := l.GS
	if gs.Dungeon == nil || !gs.Dungeon.BonesEligible(gs.CurrentLevel) {
		return
	}

	lvl := gs.Current()
	you := &gs.Player
	deathPos := you.Pos
	persist.SanitizeForBones(gs.RNG, gs, lvl, deathPos)

	reason := gs.Flags.DeathReason
	if reason == "" {
		reason = "unknown causes"
	}
	header := persist.BonesHeader{
		PlayerName:  you.Name,
		Role:        you.Role,
		Race:        you.Race,
		DLevel:      gs.CurrentLevel,
		DeathReason: reason,
		TurnCount:   gs.Turns,
		ExpLevel:    you.ExpLevel,
		Gold:        you.Gold,
		MaxHP:       you.HPMax,
	}
	if err := persist.WriteBones(l.Config.BonesDir, header, lvl); err != nil {
		logging.Error("writing bones failed", "dlevel", gs.CurrentLevel, "error", err)
	}
}

// encumbrancePenalty returns the action-point penalty Encumbrance applies
// to the player's per-tick grant.
func (l *Loop) encumbrancePenalty() int32 {
	you := &l.GS.Player
	var carried uint32
	for _, o := range l.GS.Inventory {
		carried += o.TotalWeight()
	}
	enc := model.EncumbranceFor(carried, you.CarryingCapacity())
	switch enc {
	case model.EncBurdened:
		return 1
	case model.EncStressed:
		return 2
	case model.EncStrained:
		return 4
	case model.EncOverTaxed:
		return 8
	case model.EncOverloaded:
		return 12
	default:
		return 0
	}
}

// emergencyRecover writes a best-effort diagnostic save after any
// recovered panic, invariant violation or not.
func (l *Loop) emergencyRecover(r any) {
	v, ok := invariant.AsViolation(r)
	msg := fmt.Sprintf("%v", r)
	if ok {
		msg = v.Error()
	}
	logging.Error("invariant violation, attempting emergency save", "turn", l.GS.Turns, "error", msg)
	path := fmt.Sprintf("%s/emergency_%d.json", l.Config.EmergencySaveDir, emergencyTimestamp())
	if err := persist.Save(l.GS, path); err != nil {
		logging.Error("emergency save failed", "path", path, "error", err)
	}
}

// emergencyTimestamp isolates the one non-deterministic call this package
// makes, so tests can substitute a fixed clock if ever needed.
var emergencyTimestamp = func() int64 { return time.Now().Unix() }
