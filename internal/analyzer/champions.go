package analyzer

import (
	"sort"

	"github.com/Sveder/riftwind/internal/model"
)

// FatigueEntry is one champion's run analysis.
type FatigueEntry struct {
	Champion     string  `json:"champion"`
	RunLength    int     `json:"run_length"`
	FreshWinRate float64 `json:"fresh_winrate"` // picks 1-3 of the run
	StaleWinRate float64 `json:"stale_winrate"` // picks 5 and later
	Drop         float64 `json:"drop"`
	Fatigued     bool    `json:"fatigued"`
}

// FatigueInsight lists champions whose win rate sags over long pick runs.
type FatigueInsight struct {
	Champions []FatigueEntry `json:"champions"`
}

// championFatigue walks the chronological sequence for runs of consecutive
// same-champion picks of at least cfg.FatigueRunLength games, then compares
// the win rate of the first 3 picks against the 5th-and-later picks. A drop
// of cfg.FatigueDropPoints or more flags fatigue. Champions without a
// qualifying run are excluded, not zero-filled.
func championFatigue(repo *model.MatchRepository, cfg Config) (FatigueInsight, bool) {
	type runStats struct {
		length                int
		freshWins, freshGames int
		staleWins, staleGames int
	}
	byChampion := make(map[string]*runStats)

	i := 0
	for i < len(repo.Matches) {
		champ := repo.Matches[i].ChampionName
		j := i
		for j < len(repo.Matches) && repo.Matches[j].ChampionName == champ {
			j++
		}
		if runLen := j - i; runLen >= cfg.FatigueRunLength {
			s := byChampion[champ]
			if s == nil {
				s = &runStats{}
				byChampion[champ] = s
			}
			if runLen > s.length {
				s.length = runLen
			}
			for k := i; k < j; k++ {
				pick := k - i + 1
				win := repo.Matches[k].Win
				switch {
				case pick <= 3:
					s.freshGames++
					if win {
						s.freshWins++
					}
				case pick >= 5:
					s.staleGames++
					if win {
						s.staleWins++
					}
				}
			}
		}
		i = j
	}
	if len(byChampion) == 0 {
		return FatigueInsight{}, false
	}

	names := make([]string, 0, len(byChampion))
	for name := range byChampion {
		names = append(names, name)
	}
	sort.Strings(names)

	var out FatigueInsight
	for _, name := range names {
		s := byChampion[name]
		if s.freshGames == 0 || s.staleGames == 0 {
			continue
		}
		fresh := float64(s.freshWins) / float64(s.freshGames) * 100
		stale := float64(s.staleWins) / float64(s.staleGames) * 100
		drop := fresh - stale
		out.Champions = append(out.Champions, FatigueEntry{
			Champion:     name,
			RunLength:    s.length,
			FreshWinRate: round1(fresh),
			StaleWinRate: round1(stale),
			Drop:         round1(drop),
			Fatigued:     drop >= cfg.FatigueDropPoints,
		})
	}
	if len(out.Champions) == 0 {
		return FatigueInsight{}, false
	}
	return out, true
}

// PatchDiversity is the champion variety within one patch.
type PatchDiversity struct {
	Patch     string  `json:"patch"`
	Games     int     `json:"games"`
	Champions int     `json:"champions"`
	Diversity float64 `json:"diversity"` // unique champions / games
}

// MetaInsight judges whether the player changes champions across patches.
type MetaInsight struct {
	Patches          []PatchDiversity `json:"patches"`
	AverageDiversity float64          `json:"average_diversity"`
	Adapting         bool             `json:"adapting"`
}

// metaAdaptation groups matches by game-version patch (major.minor) and
// scores champion diversity per patch; an average above
// cfg.MetaDiversityThreshold counts as adapting to the meta.
func metaAdaptation(repo *model.MatchRepository, cfg Config) (MetaInsight, bool) {
	if len(repo.Matches) == 0 {
		return MetaInsight{}, false
	}
	type bucket struct {
		games int
		champ map[string]bool
	}
	buckets := make(map[string]*bucket)
	for _, m := range repo.Matches {
		p := m.Patch()
		b := buckets[p]
		if b == nil {
			b = &bucket{champ: make(map[string]bool)}
			buckets[p] = b
		}
		b.games++
		b.champ[m.ChampionName] = true
	}

	patches := make([]string, 0, len(buckets))
	for p := range buckets {
		patches = append(patches, p)
	}
	sort.Strings(patches)

	var out MetaInsight
	sum := 0.0
	for _, p := range patches {
		b := buckets[p]
		d := float64(len(b.champ)) / float64(b.games)
		sum += d
		out.Patches = append(out.Patches, PatchDiversity{
			Patch:     p,
			Games:     b.games,
			Champions: len(b.champ),
			Diversity: round2(d),
		})
	}
	out.AverageDiversity = round2(sum / float64(len(patches)))
	out.Adapting = out.AverageDiversity > cfg.MetaDiversityThreshold
	return out, true
}

// ChampionCount pairs a champion with its games played.
type ChampionCount struct {
	Name  string `json:"name"`
	Games int    `json:"games"`
}

// DiversityInsight sizes the champion pool.
type DiversityInsight struct {
	UniqueChampions int             `json:"unique_champions"`
	TotalGames      int             `json:"total_games"`
	DiversityScore  float64         `json:"diversity_score"` // unique/total in percent
	Top3            []ChampionCount `json:"top_3_champions"`
	Top3Percentage  float64         `json:"top_3_percentage"`
	OneTrick        bool            `json:"one_trick"`
}

// championGames counts games per champion, sorted by games descending then
// name for determinism.
func championGames(repo *model.MatchRepository) []ChampionCount {
	counts := make(map[string]int)
	for _, m := range repo.Matches {
		counts[m.ChampionName]++
	}
	out := make([]ChampionCount, 0, len(counts))
	for name, games := range counts {
		out = append(out, ChampionCount{Name: name, Games: games})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// championDiversity scores the champion pool; a top-3 share above
// cfg.OneTrickTopShare percent flags a one-trick.
func championDiversity(repo *model.MatchRepository, cfg Config) (DiversityInsight, bool) {
	total := len(repo.Matches)
	if total == 0 {
		return DiversityInsight{}, false
	}
	counts := championGames(repo)
	top3 := counts
	if len(top3) > 3 {
		top3 = top3[:3]
	}
	top3Games := 0
	for _, c := range top3 {
		top3Games += c.Games
	}
	share := float64(top3Games) / float64(total) * 100
	return DiversityInsight{
		UniqueChampions: len(counts),
		TotalGames:      total,
		DiversityScore:  round1(float64(len(counts)) / float64(total) * 100),
		Top3:            top3,
		Top3Percentage:  round1(share),
		OneTrick:        share > cfg.OneTrickTopShare,
	}, true
}

// RoleRecord is a win-rate summary for one role.
type RoleRecord struct {
	Role    string  `json:"role"`
	Games   int     `json:"games"`
	WinRate float64 `json:"winrate"`
}

// WhatIfInsight plays out alternate histories: only the main champion, only
// the best role.
type WhatIfInsight struct {
	MainChampionOnly struct {
		Champion   string  `json:"champion"`
		Games      int     `json:"games_played"`
		WinRate    float64 `json:"winrate"`
		Difference float64 `json:"difference"` // vs overall win rate, points
	} `json:"main_champion_only"`
	BestRole  RoleRecord `json:"best_role_only"`
	WorstRole RoleRecord `json:"worst_role_swap"`
}

// whatIfScenarios compares the main champion's win rate to the overall rate
// and finds the best and worst roles.
func whatIfScenarios(repo *model.MatchRepository) (WhatIfInsight, bool) {
	if len(repo.Matches) == 0 {
		return WhatIfInsight{}, false
	}
	var out WhatIfInsight

	counts := championGames(repo)
	main := counts[0]
	mainWins := 0
	for _, m := range repo.Matches {
		if m.ChampionName == main.Name && m.Win {
			mainWins++
		}
	}
	mainRate := float64(mainWins) / float64(main.Games) * 100
	out.MainChampionOnly.Champion = main.Name
	out.MainChampionOnly.Games = main.Games
	out.MainChampionOnly.WinRate = round1(mainRate)
	out.MainChampionOnly.Difference = round1(mainRate - repo.WinRate())

	type roleStats struct{ wins, games int }
	roles := make(map[string]*roleStats)
	for _, m := range repo.Matches {
		role := m.IndividualPosition
		if role == "" {
			role = "NONE"
		}
		s := roles[role]
		if s == nil {
			s = &roleStats{}
			roles[role] = s
		}
		s.games++
		if m.Win {
			s.wins++
		}
	}
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)
	rate := func(s *roleStats) float64 { return float64(s.wins) / float64(s.games) }

	best, worst := names[0], names[0]
	for _, name := range names[1:] {
		if rate(roles[name]) > rate(roles[best]) {
			best = name
		}
		if rate(roles[name]) < rate(roles[worst]) {
			worst = name
		}
	}
	out.BestRole = RoleRecord{Role: best, Games: roles[best].games, WinRate: round1(rate(roles[best]) * 100)}
	out.WorstRole = RoleRecord{Role: worst, Games: roles[worst].games, WinRate: round1(rate(roles[worst]) * 100)}
	return out, true
}
