// pkg/ai/personality.go
package ai

// GoalType names an NPC behavior intent.
type GoalType string

const (
	GoalTrade  GoalType = "trade"
	GoalPatrol GoalType = "patrol"
	GoalFlee   GoalType = "flee"
	GoalIdle   GoalType = "idle"
)

// GoalCandidates is the fixed candidate set scored on every re-evaluation.
// Declaration order breaks score ties, which keeps goal selection
// reproducible for a fixed input state.
var GoalCandidates = []GoalType{GoalTrade, GoalPatrol, GoalFlee, GoalIdle}

// Trait is a named personality trait with additive effects on goal scores.
type Trait struct {
	Name    string
	Effects map[GoalType]float64
}

// Personality is an NPC's disposition: a type label plus its traits.
type Personality struct {
	Type   string
	Traits []Trait
}

// EffectOn sums every trait's effect on a goal type.
func (p Personality) EffectOn(goal GoalType) float64 {
	var total float64
	for _, trait := range p.Traits {
		total += trait.Effects[goal]
	}
	return total
}

// Skills are the scalar competencies that weight goal scoring.
// All values are on a 0..1 scale.
type Skills struct {
	RiskTolerance   float64
	Aggressiveness  float64
	Trading         float64
	Combat          float64
	Navigation      float64
	Social          float64
	MarketKnowledge float64
}

// TraderPersonality returns the stock merchant disposition.
func TraderPersonality() Personality {
	return Personality{
		Type: "trader",
		Traits: []Trait{
			{Name: "opportunist", Effects: map[GoalType]float64{GoalTrade: 0.3}},
			{Name: "cautious", Effects: map[GoalType]float64{GoalFlee: 0.2, GoalPatrol: -0.2}},
		},
	}
}

// PiratePersonality returns the stock raider disposition.
func PiratePersonality() Personality {
	return Personality{
		Type: "pirate",
		Traits: []Trait{
			{Name: "predatory", Effects: map[GoalType]float64{GoalPatrol: 0.5, GoalTrade: -0.3}},
			{Name: "reckless", Effects: map[GoalType]float64{GoalFlee: -0.3}},
		},
	}
}

// PatrolPersonality returns the stock security disposition.
func PatrolPersonality() Personality {
	return Personality{
		Type: "patrol",
		Traits: []Trait{
			{Name: "dutiful", Effects: map[GoalType]float64{GoalPatrol: 0.6}},
			{Name: "steadfast", Effects: map[GoalType]float64{GoalFlee: -0.2}},
		},
	}
}

// PersonalityByName resolves an archetype name, falling back to the
// trader disposition for unknown names.
func PersonalityByName(name string) Personality {
	switch name {
	case "pirate":
		return PiratePersonality()
	case "patrol":
		return PatrolPersonality()
	default:
		return TraderPersonality()
	}
}

// SkillsByName returns the stock skill set matching an archetype.
func SkillsByName(name string) Skills {
	switch name {
	case "pirate":
		return Skills{
			RiskTolerance:   0.9,
			Aggressiveness:  0.8,
			Trading:         0.2,
			Combat:          0.8,
			Navigation:      0.6,
			Social:          0.2,
			MarketKnowledge: 0.3,
		}
	case "patrol":
		return Skills{
			RiskTolerance:   0.7,
			Aggressiveness:  0.6,
			Trading:         0.1,
			Combat:          0.7,
			Navigation:      0.7,
			Social:          0.4,
			MarketKnowledge: 0.1,
		}
	default:
		return Skills{
			RiskTolerance:   0.3,
			Aggressiveness:  0.2,
			Trading:         0.8,
			Combat:          0.2,
			Navigation:      0.6,
			Social:          0.6,
			MarketKnowledge: 0.7,
		}
	}
}
