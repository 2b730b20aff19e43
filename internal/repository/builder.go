// Package repository assembles the per-request MatchRepository: it drives
// the acquisition sequence (account, summoner, mastery, match ids, match
// details, timelines) and flattens the raw payloads to the tracked player's
// perspective.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sveder/riftwind/internal/model"
	"github.com/Sveder/riftwind/internal/riot"
)

// Fetcher is the slice of the riot client the builder needs. Tests provide
// a fake.
type Fetcher interface {
	AccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.AccountResponse, error)
	SummonerByPUUID(ctx context.Context, puuid string) (*riot.SummonerResponse, error)
	MasteryByPUUID(ctx context.Context, puuid string) ([]riot.MasteryEntry, error)
	MatchIDs(ctx context.Context, puuid string, start, end time.Time, count int) ([]string, error)
	Matches(ctx context.Context, ids []string, ceiling int) ([]*riot.MatchResponse, riot.BatchResult, error)
	Timelines(ctx context.Context, ids []string, limit int) map[string]*riot.TimelineResponse
}

// Options bound the acquisition pass.
type Options struct {
	Year          int // calendar year to analyze; 0 means the current UTC year
	MatchIDCount  int // ids requested from the listing endpoint
	MatchCeiling  int // cap on detail fetches
	TimelineCount int // timelines fetched, newest matches first
}

func (o Options) withDefaults() Options {
	if o.Year == 0 {
		o.Year = time.Now().UTC().Year()
	}
	if o.MatchIDCount <= 0 {
		o.MatchIDCount = 100
	}
	if o.MatchCeiling <= 0 {
		o.MatchCeiling = 1000
	}
	if o.TimelineCount <= 0 {
		o.TimelineCount = 10
	}
	return o
}

// Builder runs the fetch pipeline for one player.
type Builder struct {
	fetcher Fetcher
	opts    Options
	log     zerolog.Logger
}

// NewBuilder wires a builder around the given fetcher.
func NewBuilder(fetcher Fetcher, opts Options, log zerolog.Logger) *Builder {
	return &Builder{fetcher: fetcher, opts: opts.withDefaults(), log: log}
}

// Build fetches everything for gameName#tagLine and returns the repository.
// Account and summoner failures are fatal; mastery, match listing, per-match
// and timeline failures degrade the result instead of failing it.
func (b *Builder) Build(ctx context.Context, gameName, tagLine string) (*model.MatchRepository, error) {
	acct, err := b.fetcher.AccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		return nil, fmt.Errorf("resolve %s#%s: %w", gameName, tagLine, err)
	}
	b.log.Info().Str("riotId", gameName+"#"+tagLine).Str("puuid", acct.PUUID).Msg("account resolved")

	summoner, err := b.fetcher.SummonerByPUUID(ctx, acct.PUUID)
	if err != nil {
		return nil, fmt.Errorf("summoner profile: %w", err)
	}

	mastery, err := b.fetcher.MasteryByPUUID(ctx, acct.PUUID)
	if err != nil {
		b.log.Warn().Err(err).Msg("mastery fetch failed, continuing without it")
		mastery = nil
	}

	start := time.Date(b.opts.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(b.opts.Year, time.December, 31, 23, 59, 59, 0, time.UTC)
	ids, err := b.fetcher.MatchIDs(ctx, acct.PUUID, start, end, b.opts.MatchIDCount)
	if err != nil {
		b.log.Warn().Err(err).Msg("match listing failed, continuing with no matches")
		ids = nil
	}
	b.log.Info().Int("count", len(ids)).Int("year", b.opts.Year).Msg("match ids listed")

	raw, batch, err := b.fetcher.Matches(ctx, ids, b.opts.MatchCeiling)
	if err != nil {
		return nil, fmt.Errorf("match batch: %w", err)
	}

	timelines := b.fetcher.Timelines(ctx, ids, b.opts.TimelineCount)

	repo := &model.MatchRepository{
		Account: model.Account{
			PUUID:    acct.PUUID,
			GameName: acct.GameName,
			TagLine:  acct.TagLine,
		},
		Summoner: model.Summoner{
			PUUID:         summoner.PUUID,
			ProfileIconID: summoner.ProfileIconID,
			SummonerLevel: summoner.SummonerLevel,
		},
		Timelines:      make(map[string]*model.TimelineData, len(timelines)),
		RequestedCount: batch.Attempted,
	}
	for _, m := range mastery {
		repo.Mastery = append(repo.Mastery, model.ChampionMastery{
			ChampionID:     m.ChampionID,
			ChampionLevel:  m.ChampionLevel,
			ChampionPoints: m.ChampionPoints,
			LastPlayTime:   m.LastPlayTime,
		})
	}

	// The listing endpoint returns newest first; iterate the details in
	// reverse so the repository reads oldest to newest.
	for i := len(raw) - 1; i >= 0; i-- {
		rec, ok := flatten(raw[i], acct.PUUID)
		if !ok {
			b.log.Warn().Str("matchId", raw[i].Metadata.MatchID).Msg("player not in match roster, skipping")
			continue
		}
		repo.Matches = append(repo.Matches, rec)
	}

	for id, tl := range timelines {
		repo.Timelines[id] = &model.TimelineData{
			MatchID:       id,
			FrameInterval: tl.Info.FrameInterval,
			Frames:        tl.Info.Frames,
		}
	}

	b.log.Info().Int("matches", len(repo.Matches)).Int("requested", repo.RequestedCount).
		Int("timelines", len(repo.Timelines)).Msg("repository built")
	return repo, nil
}

// flatten reduces a raw match payload to the tracked player's record.
func flatten(m *riot.MatchResponse, puuid string) (model.MatchRecord, bool) {
	var player *riot.MatchParticipant
	for i := range m.Info.Participants {
		if m.Info.Participants[i].PUUID == puuid {
			player = &m.Info.Participants[i]
			break
		}
	}
	if player == nil {
		return model.MatchRecord{}, false
	}

	minutes := float64(m.Info.GameDuration) / 60
	perMinute := func(v int) float64 {
		if minutes <= 0 {
			return 0
		}
		return round2(float64(v) / minutes)
	}

	rec := model.MatchRecord{
		MatchID:      m.Metadata.MatchID,
		GameMode:     m.Info.GameMode,
		QueueID:      m.Info.QueueID,
		GameVersion:  m.Info.GameVersion,
		GameCreation: m.Info.GameCreation,
		GameDuration: m.Info.GameDuration,

		ChampionName:       player.ChampionName,
		ChampionID:         player.ChampionID,
		Lane:               player.Lane,
		Role:               player.Role,
		IndividualPosition: player.IndividualPosition,
		ParticipantID:      player.ParticipantID,
		TeamID:             player.TeamID,

		Kills:   player.Kills,
		Deaths:  player.Deaths,
		Assists: player.Assists,
		Win:     player.Win,

		PentaKills:             player.PentaKills,
		QuadraKills:            player.QuadraKills,
		TripleKills:            player.TripleKills,
		DoubleKills:            player.DoubleKills,
		LargestMultiKill:       player.LargestMultiKill,
		KillingSprees:          player.KillingSprees,
		LargestKillingSpree:    player.LargestKillingSpree,
		LargestCriticalStrike:  player.LargestCriticalStrike,
		LongestTimeSpentLiving: player.LongestTimeSpentLiving,

		GoldEarned:           player.GoldEarned,
		GoldPerMinute:        perMinute(player.GoldEarned),
		TotalMinionsKilled:   player.TotalMinionsKilled,
		NeutralMinionsKilled: player.NeutralMinionsKilled,

		DamageToChampions: player.TotalDamageDealtToChampions,
		DamagePerMinute:   perMinute(player.TotalDamageDealtToChampions),
		DamageTaken:       player.TotalDamageTaken,

		TimeCCingOthers:  player.TimeCCingOthers,
		TotalTimeCCDealt: player.TotalTimeCCDealt,

		VisionScore:     player.VisionScore,
		WardsPlaced:     player.WardsPlaced,
		WardsKilled:     player.WardsKilled,
		PinkWardsBought: player.VisionWardsBoughtInGame,

		Spell1Casts:    player.Spell1Casts,
		Spell2Casts:    player.Spell2Casts,
		Spell3Casts:    player.Spell3Casts,
		Spell4Casts:    player.Spell4Casts,
		Summoner1ID:    player.Summoner1ID,
		Summoner2ID:    player.Summoner2ID,
		Summoner1Casts: player.Summoner1Casts,
		Summoner2Casts: player.Summoner2Casts,

		ObjectivesStolen: player.ObjectivesStolen,
		TurretKills:      player.TurretKills,
		InhibitorKills:   player.InhibitorKills,

		GameEndedInSurrender:      player.GameEndedInSurrender,
		GameEndedInEarlySurrender: player.GameEndedInEarlySurrender,

		Items: [7]int{
			player.Item0, player.Item1, player.Item2, player.Item3,
			player.Item4, player.Item5, player.Item6,
		},
	}

	for i := range m.Info.Participants {
		p := &m.Info.Participants[i]
		if p.PUUID == puuid {
			continue
		}
		entry := model.RosterEntry{
			PUUID:        p.PUUID,
			GameName:     p.RiotIdGameName,
			TagLine:      p.RiotIdTagline,
			ChampionName: p.ChampionName,
		}
		if p.TeamID == player.TeamID {
			rec.Teammates = append(rec.Teammates, entry)
		} else {
			rec.Opponents = append(rec.Opponents, entry)
		}
	}

	// A leaver anywhere on the player's own team marks the game.
	for i := range m.Info.Participants {
		p := &m.Info.Participants[i]
		if p.TeamID == player.TeamID && p.GameEndedInEarlySurrender {
			rec.TeamHadAFK = true
			break
		}
	}

	return rec, true
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
