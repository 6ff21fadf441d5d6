package ai

import "github.com/ninehex/nhsim/pkg/model"

// MoraleEventType is one of the discrete events MoraleTracker.Calculate
// folds into a monster's current morale.
type MoraleEventType int

const (
	EventAlliedDeath MoraleEventType = iota
	EventTookHeavyDamage
	EventWitnessedPlayerPower
	EventSuccessfulAttack
	EventNearDeath
	EventAllySupportPresent
)

// eventDelta is the base morale swing each event type contributes, before
// time decay and personality modifiers.
var eventDelta = map[MoraleEventType]int32{
	EventAlliedDeath:          -20,
	EventTookHeavyDamage:      -15,
	EventWitnessedPlayerPower: -30,
	EventSuccessfulAttack:     5,
	EventNearDeath:            -25,
	EventAllySupportPresent:   10,
}

// moraleEventWindow is the number of turns over which an event's
// influence linearly decays to zero; older events are pruned.
const moraleEventWindow = 10

// MoraleEvent is one recorded event affecting a monster's morale, aged by
// TurnsAgo since it occurred.
type MoraleEvent struct {
	Type     MoraleEventType
	TurnsAgo int32
}

// MoraleTracker computes a monster's current morale from its personality,
// HP fraction, and a history of recent events.
type MoraleTracker struct{}

// Calculate returns morale clamped to [-100, 100]: an HP penalty of
// (0.5 - hp%)*80, capped at 40, once HP falls below half; plus every
// event's time-decayed contribution; plus the personality modifier.
func (MoraleTracker) Calculate(personality model.Personality, hp, hpMax int32, events []MoraleEvent) int32 {
	// Single-precision throughout: the truncating conversions below are
	// sensitive to the float width, and the reference engine computes
	// morale in 32-bit floats.
	hpPercent := float32(1.0)
	if hpMax > 0 {
		hpPercent = float32(hp) / float32(hpMax)
		if hpPercent < 0 {
			hpPercent = 0
		} else if hpPercent > 1 {
			hpPercent = 1
		}
	}

	var morale int32
	if hpPercent < 0.5 {
		penalty := int32((0.5 - hpPercent) * 80)
		if penalty > 40 {
			penalty = 40
		}
		morale -= penalty
	}

	for _, e := range events {
		decay := 1.0 - float32(e.TurnsAgo)/moraleEventWindow
		if decay <= 0 {
			continue
		}
		morale += int32(float32(eventDelta[e.Type]) * decay)
	}

	morale += personalityMoraleModifier(personality, hpPercent, events)

	if morale > 100 {
		morale = 100
	}
	if morale < -100 {
		morale = -100
	}
	return morale
}

// personalityMoraleModifier is the per-personality adjustment, computed
// on the raw (undecayed) event total: a Berserker shrugs off half the
// swing and rallies below 30% HP, a Coward feels every event twice
// over, and a Defensive monster takes heart from present ally support.
func personalityMoraleModifier(p model.Personality, hpPercent float32, events []MoraleEvent) int32 {
	switch p {
	case model.PersonalityBerserker:
		mod := -rawEventTotal(events) / 2
		if hpPercent < 0.3 {
			mod += 15
		}
		return mod
	case model.PersonalityCoward:
		return rawEventTotal(events)
	case model.PersonalityDefensive:
		for _, e := range events {
			if e.Type == EventAllySupportPresent {
				return 15
			}
		}
		return 0
	default:
		return 0
	}
}

func rawEventTotal(events []MoraleEvent) int32 {
	var total int32
	for _, e := range events {
		total += eventDelta[e.Type]
	}
	return total
}

// RetreatReason is the closed set of conditions should_retreat can
// identify.
type RetreatReason int

const (
	RetreatNone RetreatReason = iota
	RetreatLowMorale
	RetreatLowHP
	RetreatAlliesDead
	RetreatOutNumbered
)

// lowHPThreshold returns the HP-fraction threshold below which this
// intelligence tier triggers a low-HP retreat, scaling from Animal's
// risk-tolerant 15% up to Genius's cautious 35%.
func lowHPThreshold(intel model.Intelligence) float64 {
	switch intel {
	case model.IntelligenceMindless:
		return 0.10
	case model.IntelligenceAnimal:
		return 0.15
	case model.IntelligenceLow:
		return 0.20
	case model.IntelligenceAverage:
		return 0.25
	case model.IntelligenceHigh:
		return 0.30
	case model.IntelligenceGenius:
		return 0.35
	default:
		return 0.20
	}
}

// ShouldRetreat evaluates mon's current state against its
// intelligence-scaled thresholds, returning the first applicable reason
// in priority order.
func ShouldRetreat(mon *model.Monster, moraleScore int32, alliesAlive, enemyCount, allyCount int) RetreatReason {
	var hpPercent float64
	if mon.HPMax > 0 {
		hpPercent = float64(mon.HP) / float64(mon.HPMax)
	}
	switch {
	case alliesAlive == 0 && allyCount > 0:
		return RetreatAlliesDead
	case hpPercent < lowHPThreshold(mon.Intelligence):
		return RetreatLowHP
	case moraleScore < -50:
		return RetreatLowMorale
	case enemyCount > allyCount+1 && mon.Intelligence >= model.IntelligenceLow:
		return RetreatOutNumbered
	default:
		return RetreatNone
	}
}
