package riot

import "github.com/Sveder/riftwind/internal/model"

// Wire types for the match-v5 and account-v1 payloads. Only the fields the
// analytics pipeline consumes are declared; the raw JSON is what gets cached.

// AccountResponse is /riot/account/v1/accounts/by-riot-id/{gameName}/{tagLine}.
type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// SummonerResponse is /lol/summoner/v4/summoners/by-puuid/{puuid}.
type SummonerResponse struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int    `json:"summonerLevel"`
}

// MasteryEntry is one element of
// /lol/champion-mastery/v4/champion-masteries/by-puuid/{puuid}.
type MasteryEntry struct {
	ChampionID     int   `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int   `json:"championPoints"`
	LastPlayTime   int64 `json:"lastPlayTime"`
}

// MatchResponse is /lol/match/v5/matches/{matchId}.
type MatchResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type MatchInfo struct {
	GameCreation              int64              `json:"gameCreation"`
	GameDuration              int                `json:"gameDuration"`
	GameMode                  string             `json:"gameMode"`
	GameVersion               string             `json:"gameVersion"`
	QueueID                   int                `json:"queueId"`
	GameEndedInEarlySurrender bool               `json:"gameEndedInEarlySurrender"`
	Participants              []MatchParticipant `json:"participants"`
	Teams                     []MatchTeam        `json:"teams"`
}

type MatchTeam struct {
	TeamID int  `json:"teamId"`
	Win    bool `json:"win"`
}

type MatchParticipant struct {
	ParticipantID  int    `json:"participantId"`
	PUUID          string `json:"puuid"`
	RiotIdGameName string `json:"riotIdGameName"`
	RiotIdTagline  string `json:"riotIdTagline"`
	TeamID         int    `json:"teamId"`

	ChampionID         int    `json:"championId"`
	ChampionName       string `json:"championName"`
	Lane               string `json:"lane"`
	Role               string `json:"role"`
	IndividualPosition string `json:"individualPosition"`

	Kills   int  `json:"kills"`
	Deaths  int  `json:"deaths"`
	Assists int  `json:"assists"`
	Win     bool `json:"win"`

	PentaKills             int `json:"pentaKills"`
	QuadraKills            int `json:"quadraKills"`
	TripleKills            int `json:"tripleKills"`
	DoubleKills            int `json:"doubleKills"`
	LargestMultiKill       int `json:"largestMultiKill"`
	KillingSprees          int `json:"killingSprees"`
	LargestKillingSpree    int `json:"largestKillingSpree"`
	LargestCriticalStrike  int `json:"largestCriticalStrike"`
	LongestTimeSpentLiving int `json:"longestTimeSpentLiving"`

	GoldEarned           int `json:"goldEarned"`
	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`

	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int `json:"totalDamageTaken"`

	TimeCCingOthers  int `json:"timeCCingOthers"`
	TotalTimeCCDealt int `json:"totalTimeCCDealt"`

	VisionScore             int `json:"visionScore"`
	WardsPlaced             int `json:"wardsPlaced"`
	WardsKilled             int `json:"wardsKilled"`
	VisionWardsBoughtInGame int `json:"visionWardsBoughtInGame"`

	Spell1Casts    int `json:"spell1Casts"`
	Spell2Casts    int `json:"spell2Casts"`
	Spell3Casts    int `json:"spell3Casts"`
	Spell4Casts    int `json:"spell4Casts"`
	Summoner1ID    int `json:"summoner1Id"`
	Summoner2ID    int `json:"summoner2Id"`
	Summoner1Casts int `json:"summoner1Casts"`
	Summoner2Casts int `json:"summoner2Casts"`

	ObjectivesStolen int `json:"objectivesStolen"`
	TurretKills      int `json:"turretKills"`
	InhibitorKills   int `json:"inhibitorKills"`

	GameEndedInSurrender      bool `json:"gameEndedInSurrender"`
	GameEndedInEarlySurrender bool `json:"gameEndedInEarlySurrender"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"`
}

// TimelineResponse is /lol/match/v5/matches/{matchId}/timeline. The frame
// and event shapes are shared with the analytics model.
type TimelineResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     TimelineInfo  `json:"info"`
}

type TimelineInfo struct {
	FrameInterval int                   `json:"frameInterval"`
	Frames        []model.TimelineFrame `json:"frames"`
}
