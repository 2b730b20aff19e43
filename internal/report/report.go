// Package report renders the season review as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Sveder/riftwind/internal/analyzer"
	"github.com/Sveder/riftwind/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintHeader prints the summoner line and the acquisition tally.
func PrintHeader(w io.Writer, repo *model.MatchRepository) {
	fmt.Fprintf(w, "\nSummoner: %s  |  Level: %d  |  Win Rate: %.1f%%\n",
		repo.Account.RiotID(), repo.Summoner.SummonerLevel, repo.WinRate())
	fmt.Fprintf(w, "Analyzed %d of %d matches\n\n", len(repo.Matches), repo.RequestedCount)
}

// PrintChampionTable prints per-champion aggregates, most played first.
func PrintChampionTable(w io.Writer, repo *model.MatchRepository) {
	type champStats struct {
		name                   string
		games, wins            int
		kills, deaths, assists int
		cs                     int
		gold                   float64
	}
	stats := make(map[string]*champStats)
	for _, m := range repo.Matches {
		s := stats[m.ChampionName]
		if s == nil {
			s = &champStats{name: m.ChampionName}
			stats[m.ChampionName] = s
		}
		s.games++
		if m.Win {
			s.wins++
		}
		s.kills += m.Kills
		s.deaths += m.Deaths
		s.assists += m.Assists
		s.cs += m.TotalMinionsKilled + m.NeutralMinionsKilled
		s.gold += m.GoldPerMinute
	}
	rows := make([]*champStats, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, s)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].games != rows[j].games {
			return rows[i].games > rows[j].games
		}
		return rows[i].name < rows[j].name
	})

	table := newTable(w)
	table.Header("CHAMPION", "GAMES", "WINS", "WIN%", "K", "D", "A", "KDA", "CS/GAME", "GOLD/MIN")
	for _, s := range rows {
		kdaStr := "—"
		if s.deaths > 0 {
			kdaStr = fmt.Sprintf("%.2f", float64(s.kills+s.assists)/float64(s.deaths))
		} else if s.kills+s.assists > 0 {
			kdaStr = fmt.Sprintf("%.2f", float64(s.kills+s.assists))
		}
		table.Append(
			s.name,
			strconv.Itoa(s.games),
			strconv.Itoa(s.wins),
			fmt.Sprintf("%.1f%%", float64(s.wins)/float64(s.games)*100),
			strconv.Itoa(s.kills),
			strconv.Itoa(s.deaths),
			strconv.Itoa(s.assists),
			kdaStr,
			fmt.Sprintf("%.1f", float64(s.cs)/float64(s.games)),
			fmt.Sprintf("%.1f", s.gold/float64(s.games)),
		)
	}
	table.Render()
}

// PrintInsightTable prints the headline analysis results. Insights absent
// from the result map render as an em-dash placeholder.
func PrintInsightTable(w io.Writer, analysis analyzer.Result) {
	table := newTable(w)
	table.Header("INSIGHT", "RESULT")

	row := func(label, value string) {
		if value == "" {
			value = "—"
		}
		table.Append(label, value)
	}

	nemesis := ""
	if n, ok := analysis["nemesis"].(analyzer.NemesisInsight); ok {
		nemesis = fmt.Sprintf("%s (%d losses in %d games)", n.Name, n.Losses, n.TotalGames)
	}
	row("Nemesis", nemesis)

	bff := ""
	if b, ok := analysis["bff"].(analyzer.BFFInsight); ok {
		bff = fmt.Sprintf("%s (%.1f%% over %d games)", b.Name, b.WinRate, b.Games)
	}
	row("Duo BFF", bff)

	hot := ""
	if h, ok := analysis["hot_streak_month"].(analyzer.MonthInsight); ok {
		hot = fmt.Sprintf("%s (%.1f%% win rate)", h.Month, h.WinRate)
	}
	row("Hot streak month", hot)

	slump := ""
	if s, ok := analysis["slump_month"].(analyzer.MonthInsight); ok {
		slump = fmt.Sprintf("%s (%.1f%% win rate)", s.Month, s.WinRate)
	}
	row("Slump month", slump)

	winStreak := ""
	if s, ok := analysis["longest_win_streak"].(analyzer.StreakInsight); ok {
		winStreak = fmt.Sprintf("%d games starting %s", s.Length, s.StartGame.Date)
	}
	row("Longest win streak", winStreak)

	lossStreak := ""
	if s, ok := analysis["longest_loss_streak"].(analyzer.StreakInsight); ok {
		lossStreak = fmt.Sprintf("%d games starting %s", s.Length, s.StartGame.Date)
	}
	row("Longest loss streak", lossStreak)

	tilt := ""
	if ti, ok := analysis["tilt_detection"].(analyzer.TiltInsight); ok {
		tilt = fmt.Sprintf("%s (%.1f%% vs %.1f%% baseline)", ti.Classification, ti.TiltedWinRate, ti.BaselineWinRate)
	}
	row("Tilt check", tilt)

	steal := ""
	if ks, ok := analysis["kill_steal"].(analyzer.KillStealInsight); ok {
		steal = fmt.Sprintf("%d of %d kills (%.1f%%)", ks.Steals, ks.Kills, ks.StealRate)
	}
	row("Kill steals", steal)

	comeback := ""
	if cb, ok := analysis["comeback_potential"].(analyzer.ComebackInsight); ok {
		comeback = fmt.Sprintf("%d of %d deficit games won", cb.Comebacks, cb.DeficitGames)
	}
	row("Comebacks", comeback)

	spike := ""
	if ps, ok := analysis["power_spikes"].(analyzer.PowerSpikeInsight); ok {
		spike = fmt.Sprintf("%s game (%.2f KDA)", ps.BestPhase, bestPhaseKDA(ps))
	}
	row("Power spike", spike)

	miracle := ""
	if mc, ok := analysis["miracle_comeback"].(analyzer.MiracleInsight); ok {
		miracle = fmt.Sprintf("won on %s with %d deaths", mc.Champion, mc.Deaths)
	}
	row("Miracle comeback", miracle)

	pentas := ""
	if hl, ok := analysis["highlight_stats"].(analyzer.HighlightInsight); ok {
		pentas = fmt.Sprintf("%d pentas, %d quadras, %d kills best game",
			hl.TotalPentakills, hl.TotalQuadrakills, hl.MostKillsGame)
	}
	row("Highlights", pentas)

	hours := ""
	if h, ok := analysis["total_hours"].(analyzer.HoursInsight); ok {
		hours = fmt.Sprintf("%.1f hours on the Rift", h.TotalHours)
	}
	row("Time played", hours)

	bestTime := ""
	if ta, ok := analysis["time_analysis"].(analyzer.TimeInsight); ok {
		bestTime = ta.BestTime
	}
	row("Best time of day", bestTime)

	table.Render()
}

func bestPhaseKDA(ps analyzer.PowerSpikeInsight) float64 {
	switch ps.BestPhase {
	case "early":
		return ps.Early.KDA
	case "mid":
		return ps.Mid.KDA
	default:
		return ps.Late.KDA
	}
}

// PrintMonthTable prints the month-by-month record.
func PrintMonthTable(w io.Writer, repo *model.MatchRepository) {
	type bucket struct{ games, wins, kills, deaths, assists int }
	buckets := make(map[string]*bucket)
	for _, m := range repo.Matches {
		key := m.CreationTime().Format("2006-01")
		b := buckets[key]
		if b == nil {
			b = &bucket{}
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

	table := newTable(w)
	table.Header("MONTH", "GAMES", "WINS", "WIN%", "KDA")
	for _, k := range keys {
		b := buckets[k]
		kdaStr := "—"
		if b.deaths > 0 {
			kdaStr = fmt.Sprintf("%.2f", float64(b.kills+b.assists)/float64(b.deaths))
		} else if b.kills+b.assists > 0 {
			kdaStr = fmt.Sprintf("%.2f", float64(b.kills+b.assists))
		}
		table.Append(
			k,
			strconv.Itoa(b.games),
			strconv.Itoa(b.wins),
			fmt.Sprintf("%.1f%%", float64(b.wins)/float64(b.games)*100),
			kdaStr,
		)
	}
	table.Render()
}
