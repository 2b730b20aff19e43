package analyzer

import (
	"sort"

	"github.com/Sveder/riftwind/internal/model"
)

type monthBucket struct {
	games, wins            int
	kills, deaths, assists int
}

func (b monthBucket) winRate() float64 { return float64(b.wins) / float64(b.games) }
func (b monthBucket) kda() float64     { return kdaOf(b.kills, b.deaths, b.assists) }

func bucketByMonth(repo *model.MatchRepository) (map[string]*monthBucket, []string) {
	buckets := make(map[string]*monthBucket)
	for _, m := range repo.Matches {
		key := m.CreationTime().Format("2006-01")
		b := buckets[key]
		if b == nil {
			b = &monthBucket{}
			buckets[key] = b
		}
		b.games++
		if m.Win {
			b.wins++
		}
		b.kills += m.Kills
		b.deaths += m.Deaths
		b.assists += m.Assists
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return buckets, keys
}

// MonthInsight is a calendar-month performance summary.
type MonthInsight struct {
	Month   string  `json:"month"` // YYYY-MM
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winrate"`
	KDA     float64 `json:"kda"`
}

func monthInsight(key string, b *monthBucket) MonthInsight {
	return MonthInsight{
		Month:   key,
		Games:   b.games,
		Wins:    b.wins,
		WinRate: round1(b.winRate() * 100),
		KDA:     round2(b.kda()),
	}
}

// monthExtremes finds the hot-streak and slump months in one pass. The hot
// month needs cfg.MonthMinGames games in its bucket and wins ties by KDA;
// the slump month is the minimum win-rate month, forced distinct from the
// hot month when the two tie.
func monthExtremes(repo *model.MatchRepository, cfg Config) (hot MonthInsight, hotOK bool, slump MonthInsight, slumpOK bool) {
	buckets, keys := bucketByMonth(repo)
	if len(keys) == 0 {
		return
	}

	var hotKey string
	for _, k := range keys {
		b := buckets[k]
		if b.games < cfg.MonthMinGames {
			continue
		}
		if hotKey == "" {
			hotKey = k
			continue
		}
		best := buckets[hotKey]
		if b.winRate() > best.winRate() ||
			(b.winRate() == best.winRate() && b.kda() > best.kda()) {
			hotKey = k
		}
	}
	if hotKey != "" {
		hot, hotOK = monthInsight(hotKey, buckets[hotKey]), true
	}

	var slumpKey string
	for _, k := range keys {
		if k == hotKey && len(keys) > 1 {
			continue
		}
		if slumpKey == "" || buckets[k].winRate() < buckets[slumpKey].winRate() {
			slumpKey = k
		}
	}
	if slumpKey != "" {
		slump, slumpOK = monthInsight(slumpKey, buckets[slumpKey]), true
	}
	return
}

// PeriodStats summarizes one slice of the year for the glow-up comparison.
type PeriodStats struct {
	WinRate   float64 `json:"winrate"`
	KDA       float64 `json:"kda"`
	AvgKills  float64 `json:"avg_kills"`
	AvgDeaths float64 `json:"avg_deaths"`
}

// GlowUpInsight compares the first quarter of the year to the last.
type GlowUpInsight struct {
	Early       PeriodStats `json:"early"`
	Late        PeriodStats `json:"late"`
	Improvement struct {
		WinRate         float64 `json:"winrate"`
		KDA             float64 `json:"kda"`
		DeathsReduction float64 `json:"deaths_reduction"`
	} `json:"improvement"`
}

func periodStats(matches []model.MatchRecord) PeriodStats {
	games := len(matches)
	if games == 0 {
		return PeriodStats{}
	}
	wins, kills, deaths, assists := 0, 0, 0, 0
	for _, m := range matches {
		if m.Win {
			wins++
		}
		kills += m.Kills
		deaths += m.Deaths
		assists += m.Assists
	}
	return PeriodStats{
		WinRate:   round1(float64(wins) / float64(games) * 100),
		KDA:       round2(kdaOf(kills, deaths, assists)),
		AvgKills:  round2(float64(kills) / float64(games)),
		AvgDeaths: round2(float64(deaths) / float64(games)),
	}
}

// calculateGlowUp compares the first 25% of matches against the last 25%.
// Needs cfg.GlowUpMinMatches matches to be meaningful.
func calculateGlowUp(repo *model.MatchRepository, cfg Config) (GlowUpInsight, bool) {
	n := len(repo.Matches)
	if n < cfg.GlowUpMinMatches {
		return GlowUpInsight{}, false
	}
	quarter := n / 4
	early := periodStats(repo.Matches[:quarter])
	late := periodStats(repo.Matches[n-quarter:])

	var out GlowUpInsight
	out.Early = early
	out.Late = late
	out.Improvement.WinRate = round1(late.WinRate - early.WinRate)
	out.Improvement.KDA = round2(late.KDA - early.KDA)
	out.Improvement.DeathsReduction = round2(early.AvgDeaths - late.AvgDeaths)
	return out, true
}

// roleEvolution maps month -> role -> games played.
func roleEvolution(repo *model.MatchRepository) (map[string]map[string]int, bool) {
	if len(repo.Matches) == 0 {
		return nil, false
	}
	out := make(map[string]map[string]int)
	for _, m := range repo.Matches {
		key := m.CreationTime().Format("2006-01")
		role := m.IndividualPosition
		if role == "" {
			role = "NONE"
		}
		if out[key] == nil {
			out[key] = make(map[string]int)
		}
		out[key][role]++
	}
	return out, true
}

// Day-period buckets for the time-of-day analysis.
const (
	periodNight     = "Night Owl (12am-6am)"
	periodMorning   = "Early Bird (6am-12pm)"
	periodAfternoon = "Afternoon (12pm-6pm)"
	periodEvening   = "Evening (6pm-12am)"
)

func dayPeriod(hour int) string {
	switch {
	case hour < 6:
		return periodNight
	case hour < 12:
		return periodMorning
	case hour < 18:
		return periodAfternoon
	default:
		return periodEvening
	}
}

// PeriodInsight is one time-of-day bucket.
type PeriodInsight struct {
	Games     int     `json:"games"`
	WinRate   float64 `json:"winrate"`
	AvgKills  float64 `json:"avg_kills"`
	AvgDeaths float64 `json:"avg_deaths"`
}

// TimeInsight buckets performance by time of day.
type TimeInsight struct {
	Periods  map[string]PeriodInsight `json:"periods"`
	BestTime string                   `json:"best_time"`
}

// timeAnalysis computes win rate and averages per day period, using the
// game-creation hour in UTC. Best period wins by win rate, ties by games.
func timeAnalysis(repo *model.MatchRepository) (TimeInsight, bool) {
	if len(repo.Matches) == 0 {
		return TimeInsight{}, false
	}
	type bucket struct{ games, wins, kills, deaths int }
	buckets := make(map[string]*bucket)
	for _, m := range repo.Matches {
		p := dayPeriod(m.CreationTime().Hour())
		b := buckets[p]
		if b == nil {
			b = &bucket{}
			buckets[p] = b
		}
		b.games++
		if m.Win {
			b.wins++
		}
		b.kills += m.Kills
		b.deaths += m.Deaths
	}

	out := TimeInsight{Periods: make(map[string]PeriodInsight, len(buckets))}
	// Fixed iteration order keeps the best-time tie-break deterministic.
	order := []string{periodNight, periodMorning, periodAfternoon, periodEvening}
	bestRate := -1.0
	bestGames := 0
	for _, p := range order {
		b := buckets[p]
		if b == nil {
			continue
		}
		rate := float64(b.wins) / float64(b.games)
		out.Periods[p] = PeriodInsight{
			Games:     b.games,
			WinRate:   round1(rate * 100),
			AvgKills:  round1(float64(b.kills) / float64(b.games)),
			AvgDeaths: round1(float64(b.deaths) / float64(b.games)),
		}
		if rate > bestRate || (rate == bestRate && b.games > bestGames) {
			bestRate = rate
			bestGames = b.games
			out.BestTime = p
		}
	}
	return out, true
}
