package analyzer

import (
	"sort"

	"github.com/Sveder/riftwind/internal/model"
)

// NemesisInsight names the opponent the player lost to the most.
type NemesisInsight struct {
	Name       string `json:"name"`
	Losses     int    `json:"losses"`
	TotalGames int    `json:"total_games"`
	Champion   string `json:"champion"` // champion seen in the most recent shared match
}

// findNemesis picks the opponent with the most recorded losses. Ties break
// by most total games against that opponent, then lexicographically by name
// so the result is fully deterministic.
func findNemesis(repo *model.MatchRepository) (NemesisInsight, bool) {
	type record struct {
		losses, games int
		champion      string
	}
	byName := make(map[string]*record)

	for _, m := range repo.Matches {
		for _, opp := range m.Opponents {
			if opp.GameName == "" {
				continue
			}
			name := opp.RiotID()
			r := byName[name]
			if r == nil {
				r = &record{}
				byName[name] = r
			}
			r.games++
			r.champion = opp.ChampionName
			if !m.Win {
				r.losses++
			}
		}
	}

	names := make([]string, 0, len(byName))
	for name, r := range byName {
		if r.losses > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return NemesisInsight{}, false
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := byName[names[i]], byName[names[j]]
		if a.losses != b.losses {
			return a.losses > b.losses
		}
		if a.games != b.games {
			return a.games > b.games
		}
		return names[i] < names[j]
	})

	top := byName[names[0]]
	return NemesisInsight{
		Name:       names[0],
		Losses:     top.losses,
		TotalGames: top.games,
		Champion:   top.champion,
	}, true
}

// BFFInsight names the ally with the best win rate over enough shared games.
type BFFInsight struct {
	Name    string  `json:"name"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winrate"`
}

// findBFF picks the ally with the highest win rate among allies with at
// least cfg.BFFMinSharedGames shared games; ties break by more games
// together, then by name.
func findBFF(repo *model.MatchRepository, cfg Config) (BFFInsight, bool) {
	type record struct{ wins, games int }
	byName := make(map[string]*record)

	for _, m := range repo.Matches {
		for _, ally := range m.Teammates {
			if ally.GameName == "" {
				continue
			}
			name := ally.RiotID()
			r := byName[name]
			if r == nil {
				r = &record{}
				byName[name] = r
			}
			r.games++
			if m.Win {
				r.wins++
			}
		}
	}

	names := make([]string, 0, len(byName))
	for name, r := range byName {
		if r.games >= cfg.BFFMinSharedGames {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return BFFInsight{}, false
	}
	rate := func(r *record) float64 { return float64(r.wins) / float64(r.games) }
	sort.Slice(names, func(i, j int) bool {
		a, b := byName[names[i]], byName[names[j]]
		if rate(a) != rate(b) {
			return rate(a) > rate(b)
		}
		if a.games != b.games {
			return a.games > b.games
		}
		return names[i] < names[j]
	})

	top := byName[names[0]]
	return BFFInsight{
		Name:    names[0],
		Games:   top.games,
		Wins:    top.wins,
		WinRate: round1(rate(top) * 100),
	}, true
}
