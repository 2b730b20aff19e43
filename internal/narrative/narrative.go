// Package narrative turns the season analysis into prose with the Anthropic
// API. Generation failures never fail the caller: both generators fall back
// to a canned line so a review can always be served.
package narrative

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"github.com/Sveder/riftwind/internal/analyzer"
	"github.com/Sveder/riftwind/internal/model"
)

const narrativeMaxTokens = 300
const roastMaxTokens = 500

// Config carries the Anthropic credentials and model choice.
type Config struct {
	APIKey string
	Model  string
	Logger zerolog.Logger

	// Sink receives streamed deltas as they arrive, for interactive use.
	// Leave nil to only collect the final text.
	Sink io.Writer
}

// Generator produces year-in-review prose from a match repository and its
// analysis.
type Generator struct {
	client anthropic.Client
	model  anthropic.Model
	sink   io.Writer
	log    zerolog.Logger
}

func NewGenerator(cfg Config) *Generator {
	return &Generator{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  anthropic.Model(cfg.Model),
		sink:   cfg.Sink,
		log:    cfg.Logger,
	}
}

// Narrative writes a short celebratory recap of the season. On any API
// failure it returns the fallback line instead.
func (g *Generator) Narrative(ctx context.Context, repo *model.MatchRepository, analysis analyzer.Result) string {
	prompt := narrativePrompt(repo, analysis)
	text, err := g.complete(ctx, prompt, narrativeMaxTokens)
	if err != nil {
		g.log.Warn().Err(err).Msg("narrative generation failed, using fallback")
		return g.fallback(fmt.Sprintf("Had an incredible year with %d games played!", len(repo.Matches)))
	}
	return text
}

// Roast writes a playful roast of the season. On any API failure it returns
// the fallback line instead.
func (g *Generator) Roast(ctx context.Context, repo *model.MatchRepository, analysis analyzer.Result) string {
	prompt := roastPrompt(repo, analysis)
	text, err := g.complete(ctx, prompt, roastMaxTokens)
	if err != nil {
		g.log.Warn().Err(err).Msg("roast generation failed, using fallback")
		return g.fallback("Even the roast bot gave up on you... just like your teammates.")
	}
	return text
}

// fallback mirrors the canned line to the sink so interactive callers see
// it in place of the stream.
func (g *Generator) fallback(line string) string {
	if g.sink != nil {
		fmt.Fprint(g.sink, line)
	}
	return line
}

// complete streams one user message to the model and collects the text.
func (g *Generator) complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	stream := g.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	var out strings.Builder
	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				text := delta.Delta.AsTextDelta().Text
				out.WriteString(text)
				if g.sink != nil {
					fmt.Fprint(g.sink, text)
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("streaming completion: %w", err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return strings.TrimSpace(out.String()), nil
}

func narrativePrompt(repo *model.MatchRepository, analysis analyzer.Result) string {
	nemesisName := "None"
	if n, ok := analysis["nemesis"].(analyzer.NemesisInsight); ok {
		nemesisName = n.Name
	}
	bffName := "None"
	if b, ok := analysis["bff"].(analyzer.BFFInsight); ok {
		bffName = b.Name
	}
	hotMonth := "Unknown"
	if h, ok := analysis["hot_streak_month"].(analyzer.MonthInsight); ok {
		hotMonth = h.Month
	}
	pentas := 0
	if h, ok := analysis["highlight_stats"].(analyzer.HighlightInsight); ok {
		pentas = h.TotalPentakills
	}

	return fmt.Sprintf(`You are a League of Legends analyst creating a fun year-in-review for %s.

Based on these stats, write a short, engaging narrative (3-4 sentences) about their year:

Total Games: %d
Win Rate: %.1f%%
Nemesis: %s
BFF: %s
Hot Streak Month: %s
Pentakills: %d

Make it fun, personal, and celebratory! Use emojis sparingly.`,
		repo.Account.RiotID(), len(repo.Matches), repo.WinRate(),
		nemesisName, bffName, hotMonth, pentas)
}

func roastPrompt(repo *model.MatchRepository, analysis analyzer.Result) string {
	total := len(repo.Matches)
	mostDeaths, sumDeaths := 0, 0
	worstKDA, sumKDA := -1.0, 0.0
	for _, m := range repo.Matches {
		if m.Deaths > mostDeaths {
			mostDeaths = m.Deaths
		}
		sumDeaths += m.Deaths
		kda := m.KDA()
		if worstKDA < 0 || kda < worstKDA {
			worstKDA = kda
		}
		sumKDA += kda
	}
	avgDeaths, avgKDA := 0.0, 0.0
	if total > 0 {
		avgDeaths = float64(sumDeaths) / float64(total)
		avgKDA = sumKDA / float64(total)
	}
	if worstKDA < 0 {
		worstKDA = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a SAVAGE League of Legends roaster. You've been given extensive data about %s's gameplay. Pick the FUNNIEST and most BRUTAL things to roast them about. Be creative, witty, and ruthless (but playful)!

COMPREHENSIVE PLAYER DATA:

Overall Performance:
- Total Games: %d
- Win Rate: %.1f%%
- Average KDA: %.2f
- Worst KDA in a game: %.2f

Death Stats:
- Most deaths in one game: %d
- Average deaths per game: %.1f
`,
		repo.Account.RiotID(), total, repo.WinRate(), avgKDA, worstKDA, mostDeaths, avgDeaths)

	if afk, ok := analysis["afk_stats"].(analyzer.AFKInsight); ok {
		fmt.Fprintf(&b, "\nTilt & Mentality:\n- Games with AFK teammates: %d\n- Won with AFK: %d\n",
			afk.GamesWithAFK, afk.WonWithAFK)
	}
	if div, ok := analysis["champion_diversity"].(analyzer.DiversityInsight); ok {
		fmt.Fprintf(&b, "\nChampion Pool:\n- Unique champions played: %d\n- One-trick?: %v\n- Top 3 champions take up %.1f%% of games\n",
			div.UniqueChampions, div.OneTrick, div.Top3Percentage)
		if champ, rate, ok := worstChampion(repo); ok {
			fmt.Fprintf(&b, "- Worst champion: %s with %.1f%% winrate\n", champ, rate)
		}
	}
	if len(repo.Mastery) > 0 {
		level7 := 0
		for _, m := range repo.Mastery {
			if m.ChampionLevel >= 7 {
				level7++
			}
		}
		// The mastery list arrives ordered by points descending.
		fmt.Fprintf(&b, "\nMastery:\n- Champions at mastery 7: %d\n- Most points sunk into a single champion: %d\n",
			level7, repo.Mastery[0].ChampionPoints)
	}
	if n, ok := analysis["nemesis"].(analyzer.NemesisInsight); ok {
		fmt.Fprintf(&b, "\nRivals:\n- Has a nemesis (%s) who beat them %d times\n", n.Name, n.Losses)
	} else {
		b.WriteString("\nRivals:\n- No nemesis (no one cares enough)\n")
	}
	if pb, ok := analysis["pentakill_breaker"].(analyzer.PentaBreakerInsight); ok {
		fmt.Fprintf(&b, "\nMissed Opportunities:\n- Quadra kills that didn't become Pentas: %d\n", pb.Count)
	}
	if ta, ok := analysis["time_analysis"].(analyzer.TimeInsight); ok {
		fmt.Fprintf(&b, "\nTime of Day Performance:\n- Best time: %s\n", ta.BestTime)
	}

	b.WriteString("\nYOUR TASK:\nWrite 2-4 hilarious roast lines. Choose the FUNNIEST stats to roast. Mix in some unexpected observations. Be savage but keep it fun!")
	return b.String()
}

// worstChampion finds the lowest win rate among champions with at least 3
// games.
func worstChampion(repo *model.MatchRepository) (string, float64, bool) {
	type stat struct{ wins, games int }
	stats := make(map[string]*stat)
	for _, m := range repo.Matches {
		s := stats[m.ChampionName]
		if s == nil {
			s = &stat{}
			stats[m.ChampionName] = s
		}
		s.games++
		if m.Win {
			s.wins++
		}
	}
	name, rate := "", 101.0
	for champ, s := range stats {
		if s.games < 3 {
			continue
		}
		r := float64(s.wins) / float64(s.games) * 100
		if r < rate || (r == rate && champ < name) {
			name, rate = champ, r
		}
	}
	if name == "" {
		return "", 0, false
	}
	return name, rate, true
}
