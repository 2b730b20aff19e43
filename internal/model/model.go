package model

import "time"

// ---- Account & profile resources ----

// Account is the Riot account resolved from a gameName#tagLine pair.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// RiotID formats the account as "gameName#tagLine".
func (a Account) RiotID() string {
	return a.GameName + "#" + a.TagLine
}

// Summoner is the platform-level profile for a PUUID.
type Summoner struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int    `json:"summonerLevel"`
}

// ChampionMastery is one entry of the mastery list, ordered by points
// descending as the upstream returns it.
type ChampionMastery struct {
	ChampionID     int   `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int   `json:"championPoints"`
	LastPlayTime   int64 `json:"lastPlayTime"`
}

// ---- Match records ----

// RosterEntry identifies another participant in a match, either an ally or an
// opponent of the tracked player.
type RosterEntry struct {
	PUUID        string `json:"puuid"`
	GameName     string `json:"riotIdGameName"`
	TagLine      string `json:"riotIdTagline"`
	ChampionName string `json:"championName"`
}

// RiotID formats the entry as "gameName#tagLine".
func (r RosterEntry) RiotID() string {
	return r.GameName + "#" + r.TagLine
}

// MatchRecord is one match flattened to the tracked player's perspective.
// Built from the raw match-v5 detail payload by the repository builder.
type MatchRecord struct {
	MatchID      string
	GameMode     string
	QueueID      int
	GameVersion  string
	GameCreation int64 // epoch millis
	GameDuration int   // seconds

	ChampionName       string
	ChampionID         int
	Lane               string
	Role               string
	IndividualPosition string
	ParticipantID      int
	TeamID             int

	Kills   int
	Deaths  int
	Assists int
	Win     bool

	PentaKills             int
	QuadraKills            int
	TripleKills            int
	DoubleKills            int
	LargestMultiKill       int
	KillingSprees          int
	LargestKillingSpree    int
	LargestCriticalStrike  int
	LongestTimeSpentLiving int

	GoldEarned           int
	GoldPerMinute        float64
	TotalMinionsKilled   int
	NeutralMinionsKilled int

	DamageToChampions int
	DamagePerMinute   float64
	DamageTaken       int

	TimeCCingOthers  int
	TotalTimeCCDealt int

	VisionScore     int
	WardsPlaced     int
	WardsKilled     int
	PinkWardsBought int

	Spell1Casts    int
	Spell2Casts    int
	Spell3Casts    int
	Spell4Casts    int
	Summoner1ID    int
	Summoner2ID    int
	Summoner1Casts int
	Summoner2Casts int

	ObjectivesStolen int
	TurretKills      int
	InhibitorKills   int

	GameEndedInSurrender      bool
	GameEndedInEarlySurrender bool
	TeamHadAFK                bool

	Items [7]int

	Teammates []RosterEntry
	Opponents []RosterEntry
}

// KDA returns (kills+assists)/max(deaths, 1).
func (m MatchRecord) KDA() float64 {
	d := m.Deaths
	if d < 1 {
		d = 1
	}
	return float64(m.Kills+m.Assists) / float64(d)
}

// CreationTime converts the epoch-millis creation stamp to UTC.
func (m MatchRecord) CreationTime() time.Time {
	return time.UnixMilli(m.GameCreation).UTC()
}

// Patch returns the major.minor prefix of the game version
// ("14.23.456.789" -> "14.23").
func (m MatchRecord) Patch() string {
	dots := 0
	for i := 0; i < len(m.GameVersion); i++ {
		if m.GameVersion[i] == '.' {
			dots++
			if dots == 2 {
				return m.GameVersion[:i]
			}
		}
	}
	return m.GameVersion
}

// ---- Timeline records ----

// VictimDamage is one attacker's contribution to a kill victim's death recap.
type VictimDamage struct {
	ParticipantID  int `json:"participantId"`
	MagicDamage    int `json:"magicDamage"`
	PhysicalDamage int `json:"physicalDamage"`
	TrueDamage     int `json:"trueDamage"`
}

// Total returns the summed damage across the three damage types.
func (v VictimDamage) Total() int {
	return v.MagicDamage + v.PhysicalDamage + v.TrueDamage
}

// Position is a map coordinate attached to kill events.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TimelineEvent is a single frame event. Only CHAMPION_KILL fields are kept.
type TimelineEvent struct {
	Type                    string         `json:"type"`
	Timestamp               int            `json:"timestamp"` // millis from game start
	KillerID                int            `json:"killerId"`
	VictimID                int            `json:"victimId"`
	AssistingParticipantIDs []int          `json:"assistingParticipantIds"`
	Position                *Position      `json:"position,omitempty"`
	VictimDamageReceived    []VictimDamage `json:"victimDamageReceived"`
}

// ParticipantFrame is one participant's snapshot inside a timeline frame.
type ParticipantFrame struct {
	TotalGold     int `json:"totalGold"`
	XP            int `json:"xp"`
	MinionsKilled int `json:"minionsKilled"`
}

// TimelineFrame is one fixed-interval snapshot of a match.
type TimelineFrame struct {
	Timestamp         int                         `json:"timestamp"`
	ParticipantFrames map[string]ParticipantFrame `json:"participantFrames"` // keyed "1".."10"
	Events            []TimelineEvent             `json:"events"`
}

// TimelineData is the parsed match timeline.
type TimelineData struct {
	MatchID       string
	FrameInterval int
	Frames        []TimelineFrame
}

// ---- Repository ----

// MatchRepository is the per-request working set handed to the analytics
// engine. Matches are ordered oldest to newest; the builder reverses the
// newest-first ID listing exactly once so streak and tilt windows scan
// forward in time. Not cached and not shared across requests.
type MatchRepository struct {
	Account  Account
	Summoner Summoner
	Mastery  []ChampionMastery

	Matches   []MatchRecord
	Timelines map[string]*TimelineData

	// RequestedCount is how many match IDs the acquisition layer set out to
	// fetch; len(Matches) may be smaller after per-item failures. Reports
	// render this as "analyzed N of M".
	RequestedCount int
}

// Wins counts won matches.
func (r *MatchRepository) Wins() int {
	n := 0
	for _, m := range r.Matches {
		if m.Win {
			n++
		}
	}
	return n
}

// WinRate returns the overall win rate in percent, 0 for an empty repository.
func (r *MatchRepository) WinRate() float64 {
	if len(r.Matches) == 0 {
		return 0
	}
	return float64(r.Wins()) / float64(len(r.Matches)) * 100
}
