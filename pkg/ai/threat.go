// pkg/ai/threat.go
package ai

import (
	"time"

	"github.com/driftline/startrader/pkg/physics"
)

// Contact is a hostile sighting: who and where.
type Contact struct {
	ID       uint64
	Position physics.Vector2D
}

// ThreatAssessment is an NPC's current estimate of nearby danger.
type ThreatAssessment struct {
	NearbyThreats []uint64
	Level         float64 // 0 (calm) to 1 (surrounded)
	LastUpdate    time.Time
}

// AssessThreat computes a threat level from hostile contacts around a
// position. Each contact contributes proximity weight, linear from 1 at
// zero distance down to 0 at the scan radius; the sum is halved and
// clamped so a single adjacent hostile reads ~0.5 and a crowd saturates
// at 1.
func AssessThreat(self physics.Vector2D, contacts []Contact, radius float64) ThreatAssessment {
	assessment := ThreatAssessment{
		NearbyThreats: make([]uint64, 0, len(contacts)),
		LastUpdate:    time.Now(),
	}
	if radius <= 0 {
		return assessment
	}

	var weight float64
	for _, contact := range contacts {
		distance := self.Distance(contact.Position)
		if distance > radius {
			continue
		}
		assessment.NearbyThreats = append(assessment.NearbyThreats, contact.ID)
		weight += 1 - distance/radius
	}

	level := weight / 2
	if level > 1 {
		level = 1
	}
	assessment.Level = level
	return assessment
}

// ThreatCentroid returns the mean position of the given contacts and
// whether any exist. NPCs flee away from it.
func ThreatCentroid(contacts []Contact) (physics.Vector2D, bool) {
	if len(contacts) == 0 {
		return physics.Vector2D{}, false
	}
	var sum physics.Vector2D
	for _, contact := range contacts {
		sum = sum.Add(contact.Position)
	}
	return sum.Scale(1 / float64(len(contacts))), true
}
