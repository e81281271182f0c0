// Package storage defines the persistence collaborator interfaces.
//
// The engine treats these as best-effort side effects invoked at
// registration time and at match end; a failed save is logged at the
// boundary and never aborts match progression.
package storage

import "context"

// PlayerRecord is a participant's persistent career line.
type PlayerRecord struct {
	ID          string
	Name        string
	TotalPoints int64
	Games       int
	Wins        int
	Survivals   int
	Draws       int
	Rate        float64
}

// RecalculateDerivedRating refreshes the record's rating from its counters.
func (r *PlayerRecord) RecalculateDerivedRating() {
	wins := float64(r.Wins)
	survivals := float64(r.Survivals)
	games := float64(r.Games)
	losses := float64(r.Games - r.Wins - r.Draws)
	if losses == 0 {
		r.Rate = (wins + survivals*0.5) * games
		return
	}
	r.Rate = (wins + survivals*0.5) * games / losses
}

// PlayerStore persists player records.
type PlayerStore interface {
	// LoadPlayerRecord returns the record for a player id, or a NOT_FOUND
	// domain error when the player has no history yet.
	LoadPlayerRecord(ctx context.Context, id string) (PlayerRecord, error)
	// SavePlayerRecord upserts a record.
	SavePlayerRecord(ctx context.Context, record PlayerRecord) error
	// TopPlayers returns up to limit records ordered by the given field
	// ("total_points", "rate", "games" or "wins").
	TopPlayers(ctx context.Context, field string, limit int) ([]PlayerRecord, error)
	// RecalculateRatings refreshes the derived rating of every stored record.
	RecalculateRatings(ctx context.Context) error
	// Close releases the underlying resources.
	Close() error
}
