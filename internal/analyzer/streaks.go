package analyzer

import (
	"fmt"

	"github.com/Sveder/riftwind/internal/model"
)

// StreakGame anchors one end of a streak for the narrative.
type StreakGame struct {
	Champion string `json:"champion"`
	Date     string `json:"date"`
	KDA      string `json:"kda"`
}

// StreakInsight is the longest run of a single outcome.
type StreakInsight struct {
	Length     int         `json:"length"`
	StartIndex int         `json:"start_index"`
	StartGame  *StreakGame `json:"start_game,omitempty"`
	EndGame    *StreakGame `json:"end_game,omitempty"`
}

func streakGame(m model.MatchRecord) *StreakGame {
	return &StreakGame{
		Champion: m.ChampionName,
		Date:     m.CreationTime().Format("January 2, 2006"),
		KDA:      fmt.Sprintf("%d/%d/%d", m.Kills, m.Deaths, m.Assists),
	}
}

// longestStreak scans the chronologically ordered matches once, tracking the
// longest run of wins (or losses). The first and last match of the best run
// are recorded for the report.
func longestStreak(repo *model.MatchRepository, wins bool) (StreakInsight, bool) {
	if len(repo.Matches) == 0 {
		return StreakInsight{}, false
	}
	best, current := 0, 0
	bestStart, currentStart := 0, 0
	for i, m := range repo.Matches {
		if m.Win == wins {
			if current == 0 {
				currentStart = i
			}
			current++
			if current > best {
				best = current
				bestStart = currentStart
			}
		} else {
			current = 0
		}
	}
	if best == 0 {
		return StreakInsight{}, false
	}
	return StreakInsight{
		Length:     best,
		StartIndex: bestStart,
		StartGame:  streakGame(repo.Matches[bestStart]),
		EndGame:    streakGame(repo.Matches[bestStart+best-1]),
	}, true
}

// TiltInsight compares the baseline win rate against the win rate right
// after strings of losses.
type TiltInsight struct {
	BaselineWinRate   float64 `json:"baseline_winrate"`
	TiltedWinRate     float64 `json:"tilted_winrate"` // after >=2 consecutive losses in the window
	HeavyTiltWinRate  float64 `json:"heavy_tilt_winrate"`
	Drop              float64 `json:"drop"` // points below baseline in the tilted condition
	QualifyingWindows int     `json:"qualifying_windows"`
	Classification    string  `json:"classification"` // steady / tilting / heavily tilting
}

// hasLossRun reports whether outcomes contains a run of at least k
// consecutive losses.
func hasLossRun(outcomes []bool, k int) bool {
	run := 0
	for _, win := range outcomes {
		if win {
			run = 0
			continue
		}
		run++
		if run >= k {
			return true
		}
	}
	return false
}

// detectTilt slides a window of the previous cfg.TiltWindow results over the
// chronological sequence. A window with >=2 consecutive losses conditions the
// next result; the win-rate drop against baseline classifies the player.
// Needs cfg.TiltMinWindows qualifying windows, otherwise the key is omitted.
func detectTilt(repo *model.MatchRepository, cfg Config) (TiltInsight, bool) {
	n := len(repo.Matches)
	if n <= cfg.TiltWindow {
		return TiltInsight{}, false
	}

	outcomes := make([]bool, n)
	wins := 0
	for i, m := range repo.Matches {
		outcomes[i] = m.Win
		if m.Win {
			wins++
		}
	}
	baseline := float64(wins) / float64(n) * 100

	tiltedWins, tiltedGames := 0, 0
	heavyWins, heavyGames := 0, 0
	for i := cfg.TiltWindow; i < n; i++ {
		window := outcomes[i-cfg.TiltWindow : i]
		if hasLossRun(window, 2) {
			tiltedGames++
			if outcomes[i] {
				tiltedWins++
			}
		}
		if hasLossRun(window, 3) {
			heavyGames++
			if outcomes[i] {
				heavyWins++
			}
		}
	}
	if tiltedGames < cfg.TiltMinWindows {
		return TiltInsight{}, false
	}

	tiltedRate := float64(tiltedWins) / float64(tiltedGames) * 100
	drop := baseline - tiltedRate
	out := TiltInsight{
		BaselineWinRate:   round1(baseline),
		TiltedWinRate:     round1(tiltedRate),
		Drop:              round1(drop),
		QualifyingWindows: tiltedGames,
		Classification:    "steady",
	}
	if heavyGames > 0 {
		out.HeavyTiltWinRate = round1(float64(heavyWins) / float64(heavyGames) * 100)
	}
	switch {
	case drop > cfg.TiltDropHeavy:
		out.Classification = "heavily tilting"
	case drop > cfg.TiltDropTilting:
		out.Classification = "tilting"
	}
	return out, true
}
