// pkg/ai/goal.go
package ai

import (
	"fmt"
	"time"
)

// Goal is a selected behavior intent with its parameters.
type Goal struct {
	ID        string
	Type      GoalType
	Priority  float64
	StartTime time.Time
	Params    map[string]string
}

// NewGoal stamps a goal with an id derived from its type and start time.
func NewGoal(goalType GoalType, priority float64, params map[string]string) Goal {
	now := time.Now()
	return Goal{
		ID:        fmt.Sprintf("%s-%d", goalType, now.UnixNano()),
		Type:      goalType,
		Priority:  priority,
		StartTime: now,
		Params:    params,
	}
}

// GoalScore pairs a candidate goal type with its computed score.
type GoalScore struct {
	Type  GoalType
	Score float64
}

// ScoreGoals computes a score for every candidate goal from personality
// traits, skills, and the current threat level. It is a pure function:
// identical inputs always produce identical scores.
//
// The weighting deliberately couples threat to disposition: risk tolerance
// suppresses both the flee bonus and the trade penalty that threat
// otherwise applies, while trading skill and market knowledge raise the
// appeal of trading independent of danger.
func ScoreGoals(p Personality, s Skills, threatLevel float64) []GoalScore {
	scores := make([]GoalScore, 0, len(GoalCandidates))
	for _, candidate := range GoalCandidates {
		var score float64
		switch candidate {
		case GoalTrade:
			score = 0.5 + 0.3*s.Trading + 0.2*s.MarketKnowledge - threatLevel*(1-s.RiskTolerance)
		case GoalPatrol:
			score = 0.2 + 0.4*s.Aggressiveness + 0.2*s.Combat
		case GoalFlee:
			score = threatLevel * (1.8 - s.RiskTolerance)
		case GoalIdle:
			score = 0.05
		}
		score += p.EffectOn(candidate)
		scores = append(scores, GoalScore{Type: candidate, Score: score})
	}
	return scores
}

// ChooseGoal selects the highest-scoring candidate. Ties go to the
// earlier candidate in declaration order, never to chance.
func ChooseGoal(scores []GoalScore) GoalType {
	if len(scores) == 0 {
		return GoalIdle
	}
	best := scores[0]
	for _, candidate := range scores[1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}
	return best.Type
}
