package api

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Sveder/riftwind/internal/analyzer"
	"github.com/Sveder/riftwind/internal/cache"
	"github.com/Sveder/riftwind/internal/config"
	"github.com/Sveder/riftwind/internal/model"
	"github.com/Sveder/riftwind/internal/narrative"
	"github.com/Sveder/riftwind/internal/repository"
	"github.com/Sveder/riftwind/internal/riot"
)

// Pipeline wires the riot client, repository builder, analyzer and narrative
// generator into one Reviewer. A fresh riot client is built per request so
// the region can vary; the tiered cache is shared across all of them.
type Pipeline struct {
	cfg      config.Config
	cache    *cache.Tiered
	analyzer analyzer.Config
	gen      *narrative.Generator
	log      zerolog.Logger
}

func NewPipeline(cfg config.Config, tiered *cache.Tiered, gen *narrative.Generator, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		cache:    tiered,
		analyzer: analyzer.DefaultConfig(),
		gen:      gen,
		log:      log,
	}
}

func (p *Pipeline) Review(ctx context.Context, gameName, tagLine, region string) (*Review, error) {
	repo, analysis, err := p.build(ctx, gameName, tagLine, region)
	if err != nil {
		return nil, err
	}
	text := p.gen.Narrative(ctx, repo, analysis)
	return p.review(repo, analysis, text), nil
}

func (p *Pipeline) Roast(ctx context.Context, gameName, tagLine, region string) (*Review, error) {
	repo, analysis, err := p.build(ctx, gameName, tagLine, region)
	if err != nil {
		return nil, err
	}
	text := p.gen.Roast(ctx, repo, analysis)
	return p.review(repo, analysis, text), nil
}

// Build runs the fetch and analyze stages without generating prose. The
// fetch and cache commands reuse it.
func (p *Pipeline) Build(ctx context.Context, gameName, tagLine, region string) (*model.MatchRepository, analyzer.Result, error) {
	return p.build(ctx, gameName, tagLine, region)
}

func (p *Pipeline) build(ctx context.Context, gameName, tagLine, region string) (*model.MatchRepository, analyzer.Result, error) {
	if region == "" {
		region = p.cfg.Region
	}

	client := riot.NewClient(riot.Config{
		APIKey:        p.cfg.RiotAPIKey,
		Region:        region,
		RatePerSecond: p.cfg.RatePerSecond,
		Burst:         p.cfg.RateBurst,
		Cache:         p.cache,
		Logger:        p.log,
	})
	builder := repository.NewBuilder(client, repository.Options{
		Year:          p.cfg.Year,
		MatchIDCount:  p.cfg.MatchIDCount,
		MatchCeiling:  p.cfg.MatchCeiling,
		TimelineCount: p.cfg.TimelineCount,
	}, p.log)

	repo, err := builder.Build(ctx, gameName, tagLine)
	if err != nil {
		return nil, nil, err
	}
	return repo, analyzer.Analyze(repo, p.analyzer), nil
}

func (p *Pipeline) review(repo *model.MatchRepository, analysis analyzer.Result, text string) *Review {
	return &Review{
		Summoner:         NewSummonerInfo(repo),
		Analysis:         analysis,
		Narrative:        text,
		MatchesAnalyzed:  len(repo.Matches),
		MatchesRequested: repo.RequestedCount,
	}
}
