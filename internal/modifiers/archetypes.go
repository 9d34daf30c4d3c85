package modifiers

import "fmt"

// Archetype is the behavioral class of a pedestrian. Each one carries two
// outcome records: what happens when robbed, and how it answers a pitch,
// a trade, or a confrontation.
type Archetype uint8

const (
	ArchTechWorker Archetype = iota
	ArchTourist
	ArchCommuter
	ArchHipster
	ArchExecutive
	ArchGrandma
	ArchStudent
	ArchJunkie
	ArchUndercover // plainclothes police
	ArchInvestor
	ArchDealer // spawned separately, never drawn from a crowd table
)

// NumArchetypes is the number of archetypes.
const NumArchetypes = 11

// StealProfile tunes theft outcomes against an archetype.
type StealProfile struct {
	MoneyMin       int
	MoneyMax       int
	ShoutChance    float64
	KindnessChance float64
	CarryChance    float64 // chance a spawned pedestrian shows a stealable wallet or bag
}

// SocialProfile tunes pitch, trade and confront outcomes.
type SocialProfile struct {
	PitchSuccess     float64
	TradeWillingness float64
	Retaliation      float64
}

// ArchetypeProfile is the full per-archetype record.
type ArchetypeProfile struct {
	Name   string
	Steal  StealProfile
	Social SocialProfile
}

// These numbers were tuned by feel; keep them as data.
var archetypeTable = [NumArchetypes]ArchetypeProfile{
	ArchTechWorker: {
		Name:   "tech worker",
		Steal:  StealProfile{MoneyMin: 5, MoneyMax: 25, ShoutChance: 0.35, KindnessChance: 0.10, CarryChance: 0.6},
		Social: SocialProfile{PitchSuccess: 0.25, TradeWillingness: 0.25, Retaliation: 0.15},
	},
	ArchTourist: {
		Name:   "tourist",
		Steal:  StealProfile{MoneyMin: 3, MoneyMax: 20, ShoutChance: 0.30, KindnessChance: 0.15, CarryChance: 0.7},
		Social: SocialProfile{PitchSuccess: 0.10, TradeWillingness: 0.15, Retaliation: 0.10},
	},
	ArchCommuter: {
		Name:   "commuter",
		Steal:  StealProfile{MoneyMin: 2, MoneyMax: 12, ShoutChance: 0.40, KindnessChance: 0.08, CarryChance: 0.5},
		Social: SocialProfile{PitchSuccess: 0.05, TradeWillingness: 0.10, Retaliation: 0.20},
	},
	ArchHipster: {
		Name:   "hipster",
		Steal:  StealProfile{MoneyMin: 1, MoneyMax: 8, ShoutChance: 0.20, KindnessChance: 0.25, CarryChance: 0.4},
		Social: SocialProfile{PitchSuccess: 0.08, TradeWillingness: 0.45, Retaliation: 0.10},
	},
	ArchExecutive: {
		Name:   "executive",
		Steal:  StealProfile{MoneyMin: 10, MoneyMax: 40, ShoutChance: 0.55, KindnessChance: 0.05, CarryChance: 0.5},
		Social: SocialProfile{PitchSuccess: 0.15, TradeWillingness: 0.08, Retaliation: 0.25},
	},
	ArchGrandma: {
		Name:   "grandma",
		Steal:  StealProfile{MoneyMin: 1, MoneyMax: 10, ShoutChance: 0.60, KindnessChance: 0.40, CarryChance: 0.6},
		Social: SocialProfile{PitchSuccess: 0.12, TradeWillingness: 0.02, Retaliation: 0.02},
	},
	ArchStudent: {
		Name:   "student",
		Steal:  StealProfile{MoneyMin: 1, MoneyMax: 6, ShoutChance: 0.25, KindnessChance: 0.20, CarryChance: 0.4},
		Social: SocialProfile{PitchSuccess: 0.06, TradeWillingness: 0.35, Retaliation: 0.12},
	},
	ArchJunkie: {
		Name:   "junkie",
		Steal:  StealProfile{MoneyMin: 0, MoneyMax: 3, ShoutChance: 0.10, KindnessChance: 0.05, CarryChance: 0.2},
		Social: SocialProfile{PitchSuccess: 0.01, TradeWillingness: 0.60, Retaliation: 0.45},
	},
	ArchUndercover: {
		Name:   "plainclothes cop",
		Steal:  StealProfile{MoneyMin: 0, MoneyMax: 5, ShoutChance: 0.90, KindnessChance: 0, CarryChance: 0.3},
		Social: SocialProfile{PitchSuccess: 0, TradeWillingness: 0.70, Retaliation: 0.60},
	},
	ArchInvestor: {
		Name:   "angel investor",
		Steal:  StealProfile{MoneyMin: 20, MoneyMax: 60, ShoutChance: 0.50, KindnessChance: 0.10, CarryChance: 0.5},
		Social: SocialProfile{PitchSuccess: 0.35, TradeWillingness: 0.05, Retaliation: 0.15},
	},
	ArchDealer: {
		Name:   "dealer",
		Steal:  StealProfile{MoneyMin: 5, MoneyMax: 30, ShoutChance: 0.05, KindnessChance: 0, CarryChance: 0},
		Social: SocialProfile{PitchSuccess: 0, TradeWillingness: 0, Retaliation: 0.70},
	},
}

// ProfileOf returns the outcome records for an archetype.
func ProfileOf(a Archetype) ArchetypeProfile {
	if int(a) >= NumArchetypes {
		panic(fmt.Sprintf("modifiers: unknown archetype %d", a))
	}
	return archetypeTable[a]
}

func (a Archetype) String() string {
	return ProfileOf(a).Name
}

// IsPolice reports whether the archetype is law enforcement.
func (a Archetype) IsPolice() bool {
	return a == ArchUndercover
}

// DealerThreshold is the minimum district drug bias for a lurking dealer
// to appear or for the alley trade to open.
const DealerThreshold = 0.5
