package event

// PlayerRef identifies a roster member in event payloads. Ordinal is the
// 1-based roster position players use to target each other.
type PlayerRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Ordinal int    `json:"ordinal"`
	Alive   bool   `json:"alive"`
}

// CountdownPayload announces remaining collecting time.
type CountdownPayload struct {
	RemainingSeconds int `json:"remaining_seconds"`
	PlayerCount      int `json:"player_count"`
	MinPlayers       int `json:"min_players"`
}

// RosterPayload carries a player plus the running roster size.
type RosterPayload struct {
	Player PlayerRef `json:"player"`
	Count  int       `json:"count"`
}

// PhasePayload announces a phase transition.
type PhasePayload struct {
	Phase            string `json:"phase"`
	DeadlineSeconds  int    `json:"deadline_seconds"`
	EveningHasTarget bool   `json:"evening_has_target,omitempty"`
}

// SnapshotPayload lists living players at phase entry.
type SnapshotPayload struct {
	Phase   string      `json:"phase"`
	Players []PlayerRef `json:"players"`
}

// RoleNoticePayload privately tells a participant their assigned role.
type RoleNoticePayload struct {
	Role string `json:"role"`
	Team string `json:"team"`
	// Teammates is filled for faction roles so members know each other.
	Teammates []PlayerRef `json:"teammates,omitempty"`
}

// VotePayload reports a recorded ballot vote with the running count.
type VotePayload struct {
	Voter  PlayerRef `json:"voter"`
	Target PlayerRef `json:"target,omitempty"`
	// Verdict is set for evening yes/no votes.
	Verdict *bool `json:"verdict,omitempty"`
	Count   int   `json:"count"`
}

// ActionPayload reports an accepted role action without revealing the target
// to the public channel.
type ActionPayload struct {
	Actor  PlayerRef `json:"actor"`
	Action string    `json:"action"`
	// Target is only populated on team-scoped copies of the event.
	Target *PlayerRef `json:"target,omitempty"`
}

// NightActionPayload publicly announces that a role acted tonight.
type NightActionPayload struct {
	Role string `json:"role"`
}

// CheckPayload privately reveals an investigation result.
type CheckPayload struct {
	Target PlayerRef `json:"target"`
	Role   string    `json:"role"`
	Team   string    `json:"team"`
}

// TargetPayload names the player an announcement is about.
type TargetPayload struct {
	Target PlayerRef `json:"target"`
	// Cause distinguishes announcement variants (e.g. which role struck).
	Cause string `json:"cause,omitempty"`
}

// BlastPayload reports a destroyed place and its victims.
type BlastPayload struct {
	Place   string      `json:"place"`
	Victims []PlayerRef `json:"victims"`
}

// CursePayload reports players killed by acting against a cursed target.
type CursePayload struct {
	Victims []PlayerRef `json:"victims"`
}

// ItemPayload reports a shop purchase.
type ItemPayload struct {
	Buyer PlayerRef `json:"buyer"`
	Item  string    `json:"item"`
	Cost  int64     `json:"cost"`
}

// ScoreLine is one scoreboard row in a win announcement.
type ScoreLine struct {
	Player       PlayerRef `json:"player"`
	OriginalRole string    `json:"original_role"`
	MatchPoints  int64     `json:"match_points"`
	TotalPoints  int64     `json:"total_points"`
	Survived     bool      `json:"survived"`
}

// WinPayload declares the outcome with the final scoreboard.
type WinPayload struct {
	WinningTeam string      `json:"winning_team"`
	Draw        bool        `json:"draw"`
	Scoreboard  []ScoreLine `json:"scoreboard"`
}
