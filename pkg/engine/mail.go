package engine

import "github.com/ninehex/nhsim/pkg/model"

// mailFlavors are the rotating flavor messages a delivered-mail event
// appends, mirroring the reference's small fixed set of daemon
// newspaper/junk-mail strings rather than its full mail-daemon content.
var mailFlavors = []string{
	"A flying letter gets delivered right into your hands!",
	"\"Nethack Journal of Insights\", 7th edition, arrives by owl post.",
	"A scrap of paper flutters down from above.",
}

// DeliverMail is the per-turn mail scheduled event: a 1/cfg.MailChance
// roll per turn appends a flavor message. There is no repeat suppression
// and no daemon queue, a single low-probability independent roll.
func DeliverMail(gs *model.GameState, cfg Config) {
	if cfg.MailChance <= 0 {
		return
	}
	if gs.RNG.Rn2(uint32(cfg.MailChance)) != 0 {
		return
	}
	idx := gs.RNG.Rn2(uint32(len(mailFlavors)))
	gs.Log(mailFlavors[idx])
}
