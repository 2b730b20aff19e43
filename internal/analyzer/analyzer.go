// Package analyzer derives the year-in-review insight battery from a match
// repository. Every analyzer is a pure function of the repository: no
// network, no shared mutable state, deterministic for a given match order.
// An analyzer that lacks its minimum sample omits its key from the result
// instead of emitting zeroes.
package analyzer

import "github.com/Sveder/riftwind/internal/model"

// Result maps fixed insight names to their structured values. Absent keys
// mean the analyzer had no viable sample and must not be rendered as zero.
type Result map[string]any

// Config collects the thresholds and minimum sample sizes used across the
// battery. See DefaultConfig for the tuned values.
type Config struct {
	BFFMinSharedGames int // games together before an ally qualifies

	MonthMinGames int // games in a calendar month before it can be the hot month

	GlowUpMinMatches int // repository size before early/late comparison runs

	TiltWindow      int     // how many previous results a tilt window inspects
	TiltMinWindows  int     // qualifying windows before a classification is emitted
	TiltDropTilting float64 // win-rate drop in points for "tilting"
	TiltDropHeavy   float64 // win-rate drop in points for "heavily tilting"

	KillStealShare float64 // own share of team damage below this is a steal

	ComebackGoldDeficit int // team gold deficit that opens a comeback chance
	ComebackFrameMinute int // minute mark at which the deficit is measured

	EarlyPhaseEndMinute int // power-spike phase boundaries
	MidPhaseEndMinute   int

	FatigueRunLength  int     // consecutive same-champion picks that form a run
	FatigueDropPoints float64 // win-rate drop that flags fatigue

	MetaDiversityThreshold float64 // average per-patch diversity above this counts as adapting

	MiracleDeaths int // deaths in a won game that make it a miracle comeback

	OneTrickTopShare float64 // top-3 champion share in percent that flags a one-trick

	SurrenderFullGameMinutes  int // time-saved heuristic bounds
	SurrenderEarlyGameMinutes int

	// OptimalBuilds is the externally supplied per-champion reference item
	// set for the build comparison. Empty means the comparison is skipped.
	OptimalBuilds map[string][]int
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		BFFMinSharedGames: 3,

		MonthMinGames: 3,

		GlowUpMinMatches: 10,

		TiltWindow:      5,
		TiltMinWindows:  3,
		TiltDropTilting: 15,
		TiltDropHeavy:   25,

		KillStealShare: 0.20,

		ComebackGoldDeficit: 1000,
		ComebackFrameMinute: 15,

		EarlyPhaseEndMinute: 15,
		MidPhaseEndMinute:   25,

		FatigueRunLength:  5,
		FatigueDropPoints: 15,

		MetaDiversityThreshold: 0.5,

		MiracleDeaths: 8,

		OneTrickTopShare: 70,

		SurrenderFullGameMinutes:  25,
		SurrenderEarlyGameMinutes: 20,
	}
}

// Analyze runs the full ordered battery against the repository. It never
// panics on an empty or undersized repository; analyzers simply withhold
// their keys.
func Analyze(repo *model.MatchRepository, cfg Config) Result {
	res := make(Result)
	put := func(key string, value any, ok bool) {
		if ok {
			res[key] = value
		}
	}

	nemesis, ok := findNemesis(repo)
	put("nemesis", nemesis, ok)

	bff, ok := findBFF(repo, cfg)
	put("bff", bff, ok)

	hot, hotOK, slump, slumpOK := monthExtremes(repo, cfg)
	put("hot_streak_month", hot, hotOK)
	put("slump_month", slump, slumpOK)

	glowUp, ok := calculateGlowUp(repo, cfg)
	put("glow_up", glowUp, ok)

	winStreak, ok := longestStreak(repo, true)
	put("longest_win_streak", winStreak, ok)

	lossStreak, ok := longestStreak(repo, false)
	put("longest_loss_streak", lossStreak, ok)

	tilt, ok := detectTilt(repo, cfg)
	put("tilt_detection", tilt, ok)

	killSteal, ok := detectKillSteals(repo, cfg)
	put("kill_steal", killSteal, ok)

	comeback, ok := comebackPotential(repo, cfg)
	put("comeback_potential", comeback, ok)

	spikes, ok := powerSpikes(repo, cfg)
	put("power_spikes", spikes, ok)

	fatigue, ok := championFatigue(repo, cfg)
	put("champion_fatigue", fatigue, ok)

	meta, ok := metaAdaptation(repo, cfg)
	put("meta_adaptation", meta, ok)

	builds, ok := buildComparison(repo, cfg.OptimalBuilds)
	put("build_comparison", builds, ok)

	miracle, ok := findMiracleComeback(repo, cfg)
	put("miracle_comeback", miracle, ok)

	penta, ok := pentakillBreaker(repo)
	put("pentakill_breaker", penta, ok)

	afk, ok := afkStats(repo)
	put("afk_stats", afk, ok)

	highlights, ok := highlightStats(repo)
	put("highlight_stats", highlights, ok)

	roles, ok := roleEvolution(repo)
	put("role_evolution", roles, ok)

	surrender, ok := surrenderAnalysis(repo, cfg)
	put("surrender_analysis", surrender, ok)

	whatIf, ok := whatIfScenarios(repo)
	put("what_if_scenarios", whatIf, ok)

	times, ok := timeAnalysis(repo)
	put("time_analysis", times, ok)

	diversity, ok := championDiversity(repo, cfg)
	put("champion_diversity", diversity, ok)

	hours, ok := totalHours(repo)
	put("total_hours", hours, ok)

	return res
}

// round2 rounds to 2 decimal places, round1 to one.
func round2(v float64) float64 {
	if v < 0 {
		return -float64(int(-v*100+0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}

func round1(v float64) float64 {
	if v < 0 {
		return -float64(int(-v*10+0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}

// kdaOf computes (kills+assists)/max(deaths,1) for aggregate counts.
func kdaOf(kills, deaths, assists int) float64 {
	if deaths < 1 {
		deaths = 1
	}
	return float64(kills+assists) / float64(deaths)
}
