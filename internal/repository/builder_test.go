package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sveder/riftwind/internal/model"
	"github.com/Sveder/riftwind/internal/riot"
)

const testPUUID = "puuid-player"

// fakeFetcher serves canned payloads and records the listing window.
type fakeFetcher struct {
	accountErr error
	listErr    error
	matches    []*riot.MatchResponse // newest first, as the listing returns
	failIDs    map[string]bool
	timelines  map[string]*riot.TimelineResponse

	listedStart, listedEnd time.Time
}

func (f *fakeFetcher) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.AccountResponse, error) {
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return &riot.AccountResponse{PUUID: testPUUID, GameName: gameName, TagLine: tagLine}, nil
}

func (f *fakeFetcher) SummonerByPUUID(ctx context.Context, puuid string) (*riot.SummonerResponse, error) {
	return &riot.SummonerResponse{PUUID: puuid, SummonerLevel: 150, ProfileIconID: 9}, nil
}

func (f *fakeFetcher) MasteryByPUUID(ctx context.Context, puuid string) ([]riot.MasteryEntry, error) {
	return []riot.MasteryEntry{{ChampionID: 103, ChampionLevel: 7, ChampionPoints: 250000}}, nil
}

func (f *fakeFetcher) MatchIDs(ctx context.Context, puuid string, start, end time.Time, count int) ([]string, error) {
	f.listedStart, f.listedEnd = start, end
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]string, 0, len(f.matches))
	for _, m := range f.matches {
		ids = append(ids, m.Metadata.MatchID)
	}
	return ids, nil
}

func (f *fakeFetcher) Matches(ctx context.Context, ids []string, ceiling int) ([]*riot.MatchResponse, riot.BatchResult, error) {
	res := riot.BatchResult{Attempted: len(ids)}
	out := make([]*riot.MatchResponse, 0, len(ids))
	for _, m := range f.matches {
		if f.failIDs[m.Metadata.MatchID] {
			res.Failed = append(res.Failed, m.Metadata.MatchID)
			continue
		}
		out = append(out, m)
	}
	return out, res, nil
}

func (f *fakeFetcher) Timelines(ctx context.Context, ids []string, limit int) map[string]*riot.TimelineResponse {
	return f.timelines
}

// makeMatch builds a two-team match where the tracked player won on the
// given champion, with one leaver flag on the opposing team.
func makeMatch(id string, creation int64, win bool, champion string) *riot.MatchResponse {
	participants := []riot.MatchParticipant{
		{ParticipantID: 1, PUUID: testPUUID, TeamID: 100, ChampionName: champion,
			RiotIdGameName: "Me", RiotIdTagline: "NA1", Win: win,
			Kills: 5, Deaths: 3, Assists: 7, GoldEarned: 12000, IndividualPosition: "MIDDLE"},
		{ParticipantID: 2, PUUID: "ally-1", TeamID: 100, ChampionName: "Leona",
			RiotIdGameName: "AllyOne", RiotIdTagline: "NA1", Win: win},
		{ParticipantID: 6, PUUID: "foe-1", TeamID: 200, ChampionName: "Zed",
			RiotIdGameName: "FoeOne", RiotIdTagline: "NA1", Win: !win,
			GameEndedInEarlySurrender: true},
	}
	return &riot.MatchResponse{
		Metadata: riot.MatchMetadata{MatchID: id},
		Info: riot.MatchInfo{
			GameCreation: creation,
			GameDuration: 1800,
			GameMode:     "CLASSIC",
			GameVersion:  "14.23.456.789",
			Participants: participants,
		},
	}
}

func newTestBuilder(f *fakeFetcher) *Builder {
	return NewBuilder(f, Options{Year: 2025, MatchIDCount: 100, MatchCeiling: 1000, TimelineCount: 10}, zerolog.Nop())
}

func TestBuild_OrdersOldestFirst(t *testing.T) {
	f := &fakeFetcher{
		matches: []*riot.MatchResponse{ // newest first
			makeMatch("NA1_3", 3000, true, "Ahri"),
			makeMatch("NA1_2", 2000, false, "Lux"),
			makeMatch("NA1_1", 1000, true, "Ahri"),
		},
	}
	repo, err := newTestBuilder(f).Build(context.Background(), "Me", "NA1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"NA1_1", "NA1_2", "NA1_3"}
	if len(repo.Matches) != 3 {
		t.Fatalf("matches = %d, want 3", len(repo.Matches))
	}
	for i, m := range repo.Matches {
		if m.MatchID != want[i] {
			t.Fatalf("matches[%d] = %s, want %s", i, m.MatchID, want[i])
		}
	}
}

func TestBuild_FlattensPlayerPerspective(t *testing.T) {
	f := &fakeFetcher{matches: []*riot.MatchResponse{makeMatch("NA1_1", 1000, true, "Ahri")}}
	repo, err := newTestBuilder(f).Build(context.Background(), "Me", "NA1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := repo.Matches[0]
	if m.ChampionName != "Ahri" || !m.Win || m.Kills != 5 {
		t.Fatalf("record = %+v", m)
	}
	if len(m.Teammates) != 1 || m.Teammates[0].RiotID() != "AllyOne#NA1" {
		t.Fatalf("teammates = %+v", m.Teammates)
	}
	if len(m.Opponents) != 1 || m.Opponents[0].ChampionName != "Zed" {
		t.Fatalf("opponents = %+v", m.Opponents)
	}
	// The leaver is on the enemy team, so the player's team is clean.
	if m.TeamHadAFK {
		t.Fatal("TeamHadAFK set by an enemy leaver")
	}
	if m.GoldPerMinute != 400 {
		t.Fatalf("GoldPerMinute = %v, want 400", m.GoldPerMinute)
	}
}

func TestBuild_TeamLeaverFlag(t *testing.T) {
	match := makeMatch("NA1_1", 1000, false, "Ahri")
	match.Info.Participants[1].GameEndedInEarlySurrender = true // ally left
	f := &fakeFetcher{matches: []*riot.MatchResponse{match}}
	repo, err := newTestBuilder(f).Build(context.Background(), "Me", "NA1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.Matches[0].TeamHadAFK {
		t.Fatal("TeamHadAFK not set for an allied leaver")
	}
}

func TestBuild_PartialBatchKeepsRequestedCount(t *testing.T) {
	f := &fakeFetcher{
		matches: []*riot.MatchResponse{
			makeMatch("NA1_2", 2000, true, "Ahri"),
			makeMatch("NA1_1", 1000, false, "Lux"),
		},
		failIDs: map[string]bool{"NA1_1": true},
	}
	repo, err := newTestBuilder(f).Build(context.Background(), "Me", "NA1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.Matches) != 1 || repo.RequestedCount != 2 {
		t.Fatalf("got %d of %d, want 1 of 2", len(repo.Matches), repo.RequestedCount)
	}
}

// TestBuild_ListingFailureDegrades: a failed match listing yields an empty
// repository, not an error, so the caller still gets the account profile.
func TestBuild_ListingFailureDegrades(t *testing.T) {
	f := &fakeFetcher{listErr: errors.New("service unavailable")}
	repo, err := newTestBuilder(f).Build(context.Background(), "Me", "NA1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.Matches) != 0 || repo.RequestedCount != 0 {
		t.Fatalf("got %d matches, requested %d, want 0 of 0", len(repo.Matches), repo.RequestedCount)
	}
	if repo.Account.PUUID != testPUUID {
		t.Fatalf("account = %+v", repo.Account)
	}
}

func TestBuild_AccountFailureIsFatal(t *testing.T) {
	f := &fakeFetcher{accountErr: fmt.Errorf("account lookup: %w", riot.ErrNotFound)}
	_, err := newTestBuilder(f).Build(context.Background(), "Nobody", "XXX")
	if !errors.Is(err, riot.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBuild_YearWindow(t *testing.T) {
	f := &fakeFetcher{}
	if _, err := newTestBuilder(f).Build(context.Background(), "Me", "NA1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.listedStart.Year() != 2025 || f.listedStart.Month() != time.January || f.listedStart.Day() != 1 {
		t.Fatalf("window start = %v", f.listedStart)
	}
	if f.listedEnd.Year() != 2025 || f.listedEnd.Month() != time.December || f.listedEnd.Day() != 31 {
		t.Fatalf("window end = %v", f.listedEnd)
	}
}

func TestBuild_TimelinesAttached(t *testing.T) {
	f := &fakeFetcher{
		matches: []*riot.MatchResponse{makeMatch("NA1_1", 1000, true, "Ahri")},
		timelines: map[string]*riot.TimelineResponse{
			"NA1_1": {Info: riot.TimelineInfo{FrameInterval: 60000, Frames: []model.TimelineFrame{{Timestamp: 0}}}},
		},
	}
	repo, err := newTestBuilder(f).Build(context.Background(), "Me", "NA1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tl, ok := repo.Timelines["NA1_1"]
	if !ok || tl.FrameInterval != 60000 || len(tl.Frames) != 1 {
		t.Fatalf("timeline = %+v, ok=%v", tl, ok)
	}
}
