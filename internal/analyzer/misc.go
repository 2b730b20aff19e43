package analyzer

import (
	"fmt"

	"github.com/Sveder/riftwind/internal/model"
)

// MiracleInsight is the won game with the most deaths.
type MiracleInsight struct {
	MatchID      string  `json:"matchId"`
	Champion     string  `json:"championName"`
	Kills        int     `json:"kills"`
	Deaths       int     `json:"deaths"`
	Assists      int     `json:"assists"`
	KDA          float64 `json:"kda"`
	GameDuration int     `json:"gameDuration"`
	Date         string  `json:"date"`
}

// findMiracleComeback finds wins despite at least cfg.MiracleDeaths deaths;
// the best one is the win with the most deaths.
func findMiracleComeback(repo *model.MatchRepository, cfg Config) (MiracleInsight, bool) {
	var best *model.MatchRecord
	for i := range repo.Matches {
		m := &repo.Matches[i]
		if !m.Win || m.Deaths < cfg.MiracleDeaths {
			continue
		}
		if best == nil || m.Deaths > best.Deaths {
			best = m
		}
	}
	if best == nil {
		return MiracleInsight{}, false
	}
	return MiracleInsight{
		MatchID:      best.MatchID,
		Champion:     best.ChampionName,
		Kills:        best.Kills,
		Deaths:       best.Deaths,
		Assists:      best.Assists,
		KDA:          round2(best.KDA()),
		GameDuration: best.GameDuration,
		Date:         best.CreationTime().Format("January 2, 2006"),
	}, true
}

// DeniedPenta is one quadra-kill game that never became a penta.
type DeniedPenta struct {
	MatchID  string `json:"matchId"`
	Champion string `json:"championName"`
	Quadras  int    `json:"quadraKills"`
	Date     string `json:"date"`
}

// PentaBreakerInsight counts quadra kills denied their fifth.
type PentaBreakerInsight struct {
	Count int           `json:"count"`
	Games []DeniedPenta `json:"games"` // up to 3 samples, chronological
}

// pentakillBreaker collects games with a quadra kill but no penta.
func pentakillBreaker(repo *model.MatchRepository) (PentaBreakerInsight, bool) {
	if len(repo.Matches) == 0 {
		return PentaBreakerInsight{}, false
	}
	var out PentaBreakerInsight
	for _, m := range repo.Matches {
		if m.QuadraKills == 0 || m.PentaKills > 0 {
			continue
		}
		out.Count++
		if len(out.Games) < 3 {
			out.Games = append(out.Games, DeniedPenta{
				MatchID:  m.MatchID,
				Champion: m.ChampionName,
				Quadras:  m.QuadraKills,
				Date:     m.CreationTime().Format("January 2, 2006"),
			})
		}
	}
	return out, true
}

// AFKInsight counts games marred by an early-surrendering teammate.
type AFKInsight struct {
	GamesWithAFK int     `json:"games_with_afk"`
	WonWithAFK   int     `json:"won_with_afk"`
	AFKRate      float64 `json:"afk_rate"`
}

func afkStats(repo *model.MatchRepository) (AFKInsight, bool) {
	if len(repo.Matches) == 0 {
		return AFKInsight{}, false
	}
	var out AFKInsight
	for _, m := range repo.Matches {
		if !m.TeamHadAFK {
			continue
		}
		out.GamesWithAFK++
		if m.Win {
			out.WonWithAFK++
		}
	}
	out.AFKRate = round1(float64(out.GamesWithAFK) / float64(len(repo.Matches)) * 100)
	return out, true
}

// HighlightContext anchors a highlight to its game.
type HighlightContext struct {
	Champion string `json:"champion"`
	Date     string `json:"date"`
	KDA      string `json:"kda,omitempty"`
}

// HighlightInsight collects the season's bragging numbers.
type HighlightInsight struct {
	TotalPentakills  int `json:"total_pentakills"`
	TotalQuadrakills int `json:"total_quadrakills"`
	LongestLiving    int `json:"longest_living"` // seconds
	LargestCrit      int `json:"largest_crit"`
	LargestSpree     int `json:"largest_spree"`
	MostKillsGame    int `json:"most_kills_game"`
	TotalCCTime      int `json:"total_cc_time"` // seconds

	LongestLivingDetails *HighlightContext `json:"longest_living_details,omitempty"`
	LargestCritDetails   *HighlightContext `json:"largest_crit_details,omitempty"`
	LargestSpreeDetails  *HighlightContext `json:"largest_spree_details,omitempty"`
	MostKillsDetails     *HighlightContext `json:"most_kills_details,omitempty"`
}

func highlightContext(m *model.MatchRecord, withKDA bool) *HighlightContext {
	ctx := &HighlightContext{
		Champion: m.ChampionName,
		Date:     m.CreationTime().Format("January 2, 2006"),
	}
	if withKDA {
		ctx.KDA = fmt.Sprintf("%d/%d/%d", m.Kills, m.Deaths, m.Assists)
	}
	return ctx
}

// highlightStats sums totals and finds the record-setting games.
func highlightStats(repo *model.MatchRepository) (HighlightInsight, bool) {
	if len(repo.Matches) == 0 {
		return HighlightInsight{}, false
	}
	var out HighlightInsight
	var livingGame, critGame, spreeGame, killsGame *model.MatchRecord
	for i := range repo.Matches {
		m := &repo.Matches[i]
		out.TotalPentakills += m.PentaKills
		out.TotalQuadrakills += m.QuadraKills
		out.TotalCCTime += m.TimeCCingOthers
		if livingGame == nil || m.LongestTimeSpentLiving > livingGame.LongestTimeSpentLiving {
			livingGame = m
		}
		if critGame == nil || m.LargestCriticalStrike > critGame.LargestCriticalStrike {
			critGame = m
		}
		if spreeGame == nil || m.LargestKillingSpree > spreeGame.LargestKillingSpree {
			spreeGame = m
		}
		if killsGame == nil || m.Kills > killsGame.Kills {
			killsGame = m
		}
	}
	out.LongestLiving = livingGame.LongestTimeSpentLiving
	out.LargestCrit = critGame.LargestCriticalStrike
	out.LargestSpree = spreeGame.LargestKillingSpree
	out.MostKillsGame = killsGame.Kills
	out.LongestLivingDetails = highlightContext(livingGame, false)
	out.LargestCritDetails = highlightContext(critGame, false)
	out.LargestSpreeDetails = highlightContext(spreeGame, false)
	out.MostKillsDetails = highlightContext(killsGame, true)
	return out, true
}

// SurrenderInsight tallies thrown towels and the time they bought back.
type SurrenderInsight struct {
	TotalSurrenders  int     `json:"total_surrenders"`
	EarlySurrenders  int     `json:"early_surrenders"`
	SurrenderRate    float64 `json:"surrender_rate"`
	TimeSavedSeconds int     `json:"time_saved_seconds"`
	TimeSavedHours   float64 `json:"time_saved_hours"`
}

// surrenderAnalysis estimates time saved as the gap between an average full
// game and an average surrendered one, per early surrender.
func surrenderAnalysis(repo *model.MatchRepository, cfg Config) (SurrenderInsight, bool) {
	if len(repo.Matches) == 0 {
		return SurrenderInsight{}, false
	}
	var out SurrenderInsight
	for _, m := range repo.Matches {
		if m.GameEndedInSurrender {
			out.TotalSurrenders++
		}
		if m.GameEndedInEarlySurrender {
			out.EarlySurrenders++
		}
	}
	out.SurrenderRate = round1(float64(out.TotalSurrenders) / float64(len(repo.Matches)) * 100)
	savedPerGame := (cfg.SurrenderFullGameMinutes - cfg.SurrenderEarlyGameMinutes) * 60
	out.TimeSavedSeconds = out.EarlySurrenders * savedPerGame
	out.TimeSavedHours = round1(float64(out.TimeSavedSeconds) / 3600)
	return out, true
}

// HoursInsight totals time on the Rift.
type HoursInsight struct {
	TotalHours          float64 `json:"total_hours"`
	TotalMinutes        float64 `json:"total_minutes"`
	TotalSeconds        int     `json:"total_seconds"`
	AverageGameMinutes  float64 `json:"average_game_minutes"`
	LongestGameMinutes  float64 `json:"longest_game_minutes"`
	ShortestGameMinutes float64 `json:"shortest_game_minutes"`
}

func totalHours(repo *model.MatchRepository) (HoursInsight, bool) {
	if len(repo.Matches) == 0 {
		return HoursInsight{}, false
	}
	total, longest := 0, 0
	shortest := repo.Matches[0].GameDuration
	for _, m := range repo.Matches {
		total += m.GameDuration
		if m.GameDuration > longest {
			longest = m.GameDuration
		}
		if m.GameDuration < shortest {
			shortest = m.GameDuration
		}
	}
	return HoursInsight{
		TotalHours:          round1(float64(total) / 3600),
		TotalMinutes:        round1(float64(total) / 60),
		TotalSeconds:        total,
		AverageGameMinutes:  round1(float64(total) / float64(len(repo.Matches)) / 60),
		LongestGameMinutes:  round1(float64(longest) / 60),
		ShortestGameMinutes: round1(float64(shortest) / 60),
	}, true
}
