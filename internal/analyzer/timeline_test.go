package analyzer

import (
	"testing"

	"github.com/Sveder/riftwind/internal/model"
)

func killEvent(minute, killer, victim int, assists []int, recap ...model.VictimDamage) model.TimelineEvent {
	return model.TimelineEvent{
		Type:                    "CHAMPION_KILL",
		Timestamp:               minute * 60_000,
		KillerID:                killer,
		VictimID:                victim,
		AssistingParticipantIDs: assists,
		VictimDamageReceived:    recap,
	}
}

func dmg(pid, physical int) model.VictimDamage {
	return model.VictimDamage{ParticipantID: pid, PhysicalDamage: physical}
}

func timelineRepo(win bool, events ...model.TimelineEvent) *model.MatchRepository {
	m := mk(0, win, "Ahri")
	tl := &model.TimelineData{
		MatchID:       m.MatchID,
		FrameInterval: 60_000,
		Frames:        []model.TimelineFrame{{Timestamp: 0, Events: events}},
	}
	repo := repoOf(m)
	repo.Timelines[m.MatchID] = tl
	return repo
}

func TestSameTeamRoster(t *testing.T) {
	cases := []struct {
		a, b int
		want bool
	}{
		{1, 5, true},
		{6, 10, true},
		{5, 6, false},
		{0, 3, false}, // minions and towers carry participantId 0
		{1, 0, false},
	}
	for _, c := range cases {
		if got := sameTeamRoster(c.a, c.b); got != c.want {
			t.Errorf("sameTeamRoster(%d, %d) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

// TestKillSteal_ShareThreshold: a 15% own-damage share is a steal, a 25%
// share is not, under the default 20% threshold.
func TestKillSteal_ShareThreshold(t *testing.T) {
	repo := timelineRepo(true,
		// Steal: 15 of 100 team damage.
		killEvent(10, 1, 6, nil, dmg(1, 15), dmg(2, 85), dmg(7, 500)),
		// Earned: 25 of 100.
		killEvent(12, 1, 7, nil, dmg(1, 25), dmg(3, 75)),
		// Someone else's kill, ignored.
		killEvent(14, 2, 8, nil, dmg(2, 100)),
	)
	insight, ok := detectKillSteals(repo, DefaultConfig())
	if !ok {
		t.Fatal("kill steal omitted")
	}
	if insight.Kills != 2 || insight.Steals != 1 {
		t.Fatalf("kills/steals = %d/%d, want 2/1", insight.Kills, insight.Steals)
	}
	if insight.StealRate != 50.0 {
		t.Fatalf("steal rate = %v, want 50", insight.StealRate)
	}
	if insight.WorstShare != 15.0 {
		t.Fatalf("worst share = %v, want 15", insight.WorstShare)
	}
}

// TestKillSteal_ZeroTeamDamageExcluded: a kill where only enemies damaged
// the victim leaves the denominator untouched.
func TestKillSteal_ZeroTeamDamageExcluded(t *testing.T) {
	repo := timelineRepo(true,
		killEvent(10, 1, 6, nil, dmg(7, 300)),
	)
	if _, ok := detectKillSteals(repo, DefaultConfig()); ok {
		t.Fatal("kill steal emitted with no countable kills")
	}
}

func TestKillSteal_NoTimelineOmitted(t *testing.T) {
	if _, ok := detectKillSteals(repoOf(mk(0, true, "Ahri")), DefaultConfig()); ok {
		t.Fatal("kill steal emitted without timeline data")
	}
}

func goldFrame(minute int, blue, red [5]int) model.TimelineFrame {
	frames := make(map[string]model.ParticipantFrame, 10)
	for i, g := range blue {
		frames[string(rune('1'+i))] = model.ParticipantFrame{TotalGold: g}
	}
	red10 := map[string]int{"6": red[0], "7": red[1], "8": red[2], "9": red[3], "10": red[4]}
	for k, g := range red10 {
		frames[k] = model.ParticipantFrame{TotalGold: g}
	}
	return model.TimelineFrame{Timestamp: minute * 60_000, ParticipantFrames: frames}
}

func TestComebackPotential(t *testing.T) {
	// Blue-side player, down 1500 gold at 15 minutes, wins anyway.
	won := mk(0, true, "Ahri")
	lost := mk(1, false, "Ahri")
	even := mk(2, true, "Ahri")
	repo := repoOf(won, lost, even)
	repo.Timelines[won.MatchID] = &model.TimelineData{
		MatchID: won.MatchID,
		Frames: []model.TimelineFrame{
			goldFrame(0, [5]int{}, [5]int{}),
			goldFrame(15, [5]int{2000, 2000, 2000, 2000, 2000}, [5]int{2300, 2300, 2300, 2300, 2300}),
		},
	}
	repo.Timelines[lost.MatchID] = &model.TimelineData{
		MatchID: lost.MatchID,
		Frames: []model.TimelineFrame{
			goldFrame(15, [5]int{2000, 2000, 2000, 2000, 2000}, [5]int{2400, 2400, 2400, 2400, 2400}),
		},
	}
	// Only 500 behind: below the deficit threshold, not counted.
	repo.Timelines[even.MatchID] = &model.TimelineData{
		MatchID: even.MatchID,
		Frames: []model.TimelineFrame{
			goldFrame(15, [5]int{2000, 2000, 2000, 2000, 2000}, [5]int{2100, 2100, 2100, 2100, 2100}),
		},
	}

	insight, ok := comebackPotential(repo, DefaultConfig())
	if !ok {
		t.Fatal("comeback omitted")
	}
	if insight.DeficitGames != 2 || insight.Comebacks != 1 {
		t.Fatalf("deficit/comebacks = %d/%d, want 2/1", insight.DeficitGames, insight.Comebacks)
	}
	if insight.ComebackRate != 50.0 {
		t.Fatalf("rate = %v, want 50", insight.ComebackRate)
	}
	if insight.WorstDeficit != 1500 {
		t.Fatalf("worst deficit = %d, want 1500", insight.WorstDeficit)
	}
}

func TestComebackPotential_RedSide(t *testing.T) {
	m := mk(0, true, "Ahri")
	m.ParticipantID = 7
	m.TeamID = 200
	repo := repoOf(m)
	// Red side trails by 2000 at the mark.
	repo.Timelines[m.MatchID] = &model.TimelineData{
		MatchID: m.MatchID,
		Frames: []model.TimelineFrame{
			goldFrame(15, [5]int{2400, 2400, 2400, 2400, 2400}, [5]int{2000, 2000, 2000, 2000, 2000}),
		},
	}
	insight, ok := comebackPotential(repo, DefaultConfig())
	if !ok || insight.Comebacks != 1 || insight.WorstDeficit != 2000 {
		t.Fatalf("red-side comeback = %+v, ok=%v", insight, ok)
	}
}

func TestPowerSpikes_PhaseSplit(t *testing.T) {
	repo := timelineRepo(true,
		killEvent(5, 1, 6, nil),          // early kill
		killEvent(14, 6, 1, nil),         // early death, minute 14 is still early
		killEvent(15, 1, 7, nil),         // minute 15 opens the mid game
		killEvent(24, 2, 8, []int{1}),    // mid assist
		killEvent(25, 1, 9, nil),         // late kill
		killEvent(40, 6, 2, []int{7, 8}), // not involved
	)
	insight, ok := powerSpikes(repo, DefaultConfig())
	if !ok {
		t.Fatal("power spikes omitted")
	}
	if insight.Early.Kills != 1 || insight.Early.Deaths != 1 {
		t.Fatalf("early = %+v", insight.Early)
	}
	if insight.Mid.Kills != 1 || insight.Mid.Assists != 1 {
		t.Fatalf("mid = %+v", insight.Mid)
	}
	if insight.Late.Kills != 1 || insight.Late.Deaths != 0 {
		t.Fatalf("late = %+v", insight.Late)
	}
	// Mid: 2 participation, 0 deaths; late: 1, 0. Mid wins on KDA.
	if insight.BestPhase != "mid" {
		t.Fatalf("best phase = %q, want mid", insight.BestPhase)
	}
}

// TestPowerSpikes_TiePrecedence: equal KDA across phases resolves to the
// earliest phase.
func TestPowerSpikes_TiePrecedence(t *testing.T) {
	repo := timelineRepo(true,
		killEvent(5, 1, 6, nil),
		killEvent(20, 1, 7, nil),
		killEvent(30, 1, 8, nil),
	)
	insight, ok := powerSpikes(repo, DefaultConfig())
	if !ok {
		t.Fatal("power spikes omitted")
	}
	if insight.BestPhase != "early" {
		t.Fatalf("best phase = %q, want early", insight.BestPhase)
	}
}
