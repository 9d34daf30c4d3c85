package autopilot

import (
	"github.com/talgya/streetsim/internal/actions"
	"github.com/talgya/streetsim/internal/engine"
	"github.com/talgya/streetsim/internal/funding"
	"github.com/talgya/streetsim/internal/state"
)

// Policy tunes how much risk the pilot accepts.
type Policy struct {
	// Risky allows drugs, gambling, theft and car approaches.
	Risky bool
	// PitchAbove is the hunger and hope floor for pitching investors.
	PitchAbove float64
}

// DefaultPolicy plays it safe.
func DefaultPolicy() Policy {
	return Policy{PitchAbove: 40}
}

// Decision is one input and the reason for it.
type Decision struct {
	Cmd       engine.Command
	Rationale string
}

// Pilot decides inputs from snapshots. It walks one way through the city and
// presses whatever the resolver offers that helps.
type Pilot struct {
	Policy Policy
	Memory *Memory

	dir      int
	lastKind actions.Kind // the previous decision's press, if any
	lastSeen Health
}

// New creates a pilot walking right.
func New(p Policy) *Pilot {
	return &Pilot{Policy: p, Memory: NewMemory(), dir: 1}
}

// Next decides the input for s. It reports false when there is nothing to
// do, as after the session has ended.
func (p *Pilot) Next(s state.State) (Decision, bool) {
	d, ok := p.decide(&s)
	if ok {
		h := Triage(&s)
		name := string(d.Cmd.Op)
		if d.Cmd.Op == engine.OpPress {
			name = d.Cmd.Action.Kind.String()
		}
		p.Memory.Record(Record{
			Tick:      s.Stats.ElapsedSeconds,
			Action:    name,
			Level:     h.Level.String(),
			Rationale: d.Rationale,
		})
	}
	return d, ok
}

func (p *Pilot) decide(s *state.State) (Decision, bool) {
	switch {
	case s.Screen == state.ScreenTitle:
		return Decision{Cmd: engine.Command{Op: engine.OpStart}, Rationale: "title screen"}, true
	case s.Ended():
		return Decision{}, false
	case s.Flags.IsPaused:
		return Decision{Cmd: engine.Command{Op: engine.OpPause}, Rationale: "resume"}, true
	case s.Flags.FreezeTicks > 0:
		return Decision{}, false
	case s.Flags.ShopMode:
		return p.shop(s), true
	}

	h := Triage(s)
	shown := actions.Resolve(s)
	var best actions.Action
	bestScore := 0.0
	var why string
	for _, a := range shown.Slots() {
		if !a.Set() {
			continue
		}
		if score, reason := p.score(s, h, *a); score > bestScore {
			best, bestScore, why = *a, score, reason
		}
	}
	// A press that did nothing for us last time gets one step of walking
	// before it is tried again.
	if best.Set() && best.Kind == p.lastKind && !improved(p.lastSeen, h) {
		best = actions.Action{}
	}
	p.lastSeen = h
	if best.Set() {
		p.lastKind = best.Kind
		return Decision{Cmd: engine.Command{Op: engine.OpPress, Action: best}, Rationale: why}, true
	}
	p.lastKind = actions.KindNone
	return Decision{Cmd: engine.Command{Op: engine.OpMove, Dir: p.dir}, Rationale: "keep walking"}, true
}

// score rates pressing a. Zero means leave it alone.
func (p *Pilot) score(s *state.State, h Health, a actions.Action) (float64, string) {
	st := &s.Stats
	cooled := s.Flags.ZoneCooldown == 0
	switch a.Kind {
	case actions.KindBuyMeal:
		if h.Hunger < 60 && h.Money >= 8 {
			return 100 - h.Hunger, "hungry and can pay"
		}
	case actions.KindEnterShop:
		if _, ok := bestItem(engine.ShopItems(s.World.Venue.Type), h); ok {
			return 50 - h.Vital(h.Weakest)/2, "shop has something worth buying"
		}
	case actions.KindSleep:
		if h.Warmth < 50 {
			return 100 - h.Warmth, "cold, shelter nearby"
		}
	case actions.KindSleepRough:
		if h.Warmth < 30 {
			return 60 - h.Warmth, "cold, nowhere better"
		}
	case actions.KindAskCharity:
		if cooled && (h.Hunger < 70 || h.Hope < 50) {
			return 80 - h.Hunger/2, "free soup"
		}
	case actions.KindDig:
		if cooled && h.Hunger < 40 {
			return 50 - h.Hunger, "desperate for scraps"
		}
	case actions.KindPanhandle:
		if cooled && h.Money < 15 {
			return 30 - float64(h.Money), "need cash"
		}
	case actions.KindPawn:
		if st.HasAsset() && h.Money < 8 && h.Level >= Warning {
			return 40, "pawn to eat"
		}
	case actions.KindPitchInvestors:
		if funding.Terminal(st.FundingStage) {
			return 0, ""
		}
		terms := funding.TermsFor(st.FundingStage)
		if h.Hunger-terms.HungerCost >= p.Policy.PitchAbove && h.Hope >= p.Policy.PitchAbove {
			return 70 + 100*funding.SuccessChance(st), "fed and hopeful enough to pitch"
		}
	case actions.KindSellBelongings:
		if h.Level == Critical {
			return 35, "sell to survive"
		}
	case actions.KindTheft:
		if h.Level == Critical {
			return 30, "nothing left to lose"
		}
	case actions.KindSacrificeCompanion:
		// Only when the dog is the last thing standing between the player and
		// a collapse.
		if h.Level == Critical && !st.HasAsset() && h.Money == 0 {
			return 5, "last resort"
		}
	}

	if !p.Policy.Risky {
		return 0, ""
	}
	switch a.Kind {
	case actions.KindGamble:
		if h.Money >= 10 {
			return 15, "feeling lucky"
		}
	case actions.KindScore, actions.KindBuyDrugs, actions.KindBuyStimulant:
		if h.Hope < 30 && h.Money >= 10 {
			return 20, "needs a lift"
		}
	case actions.KindTakeHallucinogen:
		if h.Hope < 40 {
			return 18, "escape"
		}
	case actions.KindApproach:
		return 25, "see what the car wants"
	case actions.KindGrab, actions.KindPurseSteal, actions.KindSteal:
		if h.Money < 5 {
			return 22, "broke"
		}
	}
	return 0, ""
}

func improved(before, after Health) bool {
	return after.Hunger > before.Hunger || after.Warmth > before.Warmth ||
		after.Hope > before.Hope || after.Money > before.Money
}

// shop buys the item that best serves the weakest need, then leaves.
func (p *Pilot) shop(s *state.State) Decision {
	h := Triage(s)
	if i, ok := bestItem(engine.ShopItems(s.World.Venue.Type), h); ok {
		return Decision{Cmd: engine.Command{Op: engine.OpBuyItem, Index: i}, Rationale: "restock"}
	}
	return Decision{Cmd: engine.Command{Op: engine.OpExitShop}, Rationale: "done shopping"}
}

// bestItem picks the affordable item with the most value for the current
// needs.
func bestItem(items []engine.ShopItem, h Health) (int, bool) {
	best, bestValue := -1, 0.0
	for i, it := range items {
		if it.Price > h.Money {
			continue
		}
		var v float64
		if h.Hunger < 60 {
			v += it.Hunger
		}
		if h.Warmth < 60 {
			v += it.Warmth
		}
		if h.Hope < 50 {
			v += it.Hope
		}
		if it.DogFood && h.DogNeed {
			v += 20
		}
		if v > bestValue {
			best, bestValue = i, v
		}
	}
	return best, best >= 0
}
