// Package riot implements the rate-limit-aware data acquisition layer for
// the Riot match-v5, account-v1, summoner-v4 and champion-mastery-v4 APIs.
// Every fetch consults the two-tier cache first; successful payloads are
// written back to both layers before they are returned.
package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Sveder/riftwind/internal/cache"
)

// Typed fetch failures. Callers branch on these with errors.Is; per-match
// failures inside a batch are absorbed, account and profile failures are
// fatal to the whole request.
var (
	ErrRateLimited = errors.New("riot: rate limited")
	ErrNotFound    = errors.New("riot: not found")
	ErrUnavailable = errors.New("riot: upstream unavailable")
)

// regionRouting maps a platform region (na1, euw1, ...) to its regional
// cluster, which hosts the account and match-v5 APIs.
var regionRouting = map[string]string{
	"na1":  "americas",
	"br1":  "americas",
	"la1":  "americas",
	"la2":  "americas",
	"euw1": "europe",
	"eun1": "europe",
	"tr1":  "europe",
	"ru":   "europe",
	"kr":   "asia",
	"jp1":  "asia",
	"oc1":  "sea",
	"ph2":  "sea",
	"sg2":  "sea",
	"th2":  "sea",
	"tw2":  "sea",
	"vn2":  "sea",
}

// Cluster resolves a platform region to its regional routing value,
// defaulting to americas for unknown regions.
func Cluster(region string) string {
	if c, ok := regionRouting[region]; ok {
		return c
	}
	return "americas"
}

// Retry delays applied on a 429 without a Retry-After hint. Match resources
// burn the 2-minute budget fastest so they back off longer.
const (
	accountRetryDelay = 1 * time.Second
	matchRetryDelay   = 2 * time.Second
)

// Config carries the client's wiring.
type Config struct {
	APIKey        string
	Region        string // platform id, e.g. na1
	RatePerSecond int
	Burst         int
	Cache         *cache.Tiered
	Logger        zerolog.Logger
}

// Client is the acquisition layer. All methods are safe for concurrent use;
// the proactive limiter and the reactive 429 backoff are shared across
// callers so parallel fetches cannot amplify rate-limit responses.
type Client struct {
	apiKey       string
	region       string
	clusterBase  string
	platformBase string
	httpClient   *http.Client
	limiter      *rate.Limiter
	cache        *cache.Tiered
	log          zerolog.Logger

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient builds a client for the configured platform region.
func NewClient(cfg Config) *Client {
	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 15
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = rps
	}
	return &Client{
		apiKey:       cfg.APIKey,
		region:       cfg.Region,
		clusterBase:  fmt.Sprintf("https://%s.api.riotgames.com", Cluster(cfg.Region)),
		platformBase: fmt.Sprintf("https://%s.api.riotgames.com", cfg.Region),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		limiter:      rate.NewLimiter(rate.Limit(rps), burst),
		cache:        cfg.Cache,
		log:          cfg.Logger,
		sleep:        sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// get fetches rawURL with the given query params, going through the cache.
// retryDelay is the fallback 429 backoff for this resource family.
func (c *Client) get(ctx context.Context, rawURL string, params map[string]string, retryDelay time.Duration) ([]byte, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(rawURL, params); ok {
			return data, nil
		}
	}

	data, err := c.request(ctx, rawURL, params, retryDelay, true)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Put(rawURL, params, data)
	}
	return data, nil
}

func (c *Client) request(ctx context.Context, rawURL string, params map[string]string, retryDelay time.Duration, mayRetry bool) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if len(params) > 0 {
		q := req.URL.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
		}
		return body, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		if !mayRetry {
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, req.URL.Path)
		}
		delay := retryDelay
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				delay = time.Duration(secs) * time.Second
			}
		}
		c.log.Warn().Str("path", req.URL.Path).Dur("delay", delay).Msg("rate limited, retrying once")
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
		return c.request(ctx, rawURL, params, retryDelay, false)

	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, req.URL.Path)

	default:
		return nil, fmt.Errorf("%w: HTTP %d on %s", ErrUnavailable, resp.StatusCode, req.URL.Path)
	}
}

// AccountByRiotID resolves a gameName#tagLine pair to an account.
func (c *Client) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*AccountResponse, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.clusterBase, url.PathEscape(gameName), url.PathEscape(tagLine))
	data, err := c.get(ctx, u, nil, accountRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	var acct AccountResponse
	if err := json.Unmarshal(data, &acct); err != nil {
		return nil, fmt.Errorf("%w: decode account: %v", ErrUnavailable, err)
	}
	return &acct, nil
}

// SummonerByPUUID fetches the platform-level profile.
func (c *Client) SummonerByPUUID(ctx context.Context, puuid string) (*SummonerResponse, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.platformBase, puuid)
	data, err := c.get(ctx, u, nil, accountRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("summoner lookup: %w", err)
	}
	var s SummonerResponse
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: decode summoner: %v", ErrUnavailable, err)
	}
	return &s, nil
}

// MasteryByPUUID fetches the champion mastery list, ordered by points
// descending. A failure here is non-fatal upstream; callers may proceed
// with an empty list.
func (c *Client) MasteryByPUUID(ctx context.Context, puuid string) ([]MasteryEntry, error) {
	u := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s", c.platformBase, puuid)
	data, err := c.get(ctx, u, nil, accountRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("mastery lookup: %w", err)
	}
	var entries []MasteryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode mastery: %v", ErrUnavailable, err)
	}
	return entries, nil
}

// MatchIDs lists match IDs for a player within [start, end), newest first,
// up to count.
func (c *Client) MatchIDs(ctx context.Context, puuid string, start, end time.Time, count int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids", c.clusterBase, puuid)
	params := map[string]string{
		"startTime": strconv.FormatInt(start.Unix(), 10),
		"endTime":   strconv.FormatInt(end.Unix(), 10),
		"start":     "0",
		"count":     strconv.Itoa(count),
	}
	data, err := c.get(ctx, u, params, matchRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("match id listing: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("%w: decode match ids: %v", ErrUnavailable, err)
	}
	return ids, nil
}

// Match fetches a single match detail.
func (c *Client) Match(ctx context.Context, matchID string) (*MatchResponse, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.clusterBase, matchID)
	data, err := c.get(ctx, u, nil, matchRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", matchID, err)
	}
	var m MatchResponse
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: decode match %s: %v", ErrUnavailable, matchID, err)
	}
	return &m, nil
}

// Timeline fetches a single match timeline.
func (c *Client) Timeline(ctx context.Context, matchID string) (*TimelineResponse, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s/timeline", c.clusterBase, matchID)
	data, err := c.get(ctx, u, nil, matchRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("timeline %s: %w", matchID, err)
	}
	var tl TimelineResponse
	if err := json.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("%w: decode timeline %s: %v", ErrUnavailable, matchID, err)
	}
	return &tl, nil
}

// BatchResult reports a batch fetch: how many IDs were attempted and which
// ones failed. len(failed) + fetched == attempted.
type BatchResult struct {
	Attempted int
	Failed    []string
}

// Matches fetches details for the given IDs up to ceiling, preserving input
// order in the output. Per-item failures are absorbed and recorded; each
// match is cached independently so a retried run only refetches the gaps.
func (c *Client) Matches(ctx context.Context, ids []string, ceiling int) ([]*MatchResponse, BatchResult, error) {
	if ceiling > 0 && len(ids) > ceiling {
		ids = ids[:ceiling]
	}
	res := BatchResult{Attempted: len(ids)}
	out := make([]*MatchResponse, 0, len(ids))
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return out, res, err
		}
		m, err := c.Match(ctx, id)
		if err != nil {
			c.log.Warn().Err(err).Str("matchId", id).Int("index", i).Msg("match fetch failed, skipping")
			res.Failed = append(res.Failed, id)
			continue
		}
		out = append(out, m)
	}
	c.log.Info().Int("fetched", len(out)).Int("attempted", res.Attempted).Msg("match batch complete")
	return out, res, nil
}

// Timelines fetches timelines for the first limit IDs, keyed by match ID.
// Failures are absorbed per item.
func (c *Client) Timelines(ctx context.Context, ids []string, limit int) map[string]*TimelineResponse {
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make(map[string]*TimelineResponse, len(ids))
	for _, id := range ids {
		if ctx.Err() != nil {
			return out
		}
		tl, err := c.Timeline(ctx, id)
		if err != nil {
			c.log.Warn().Err(err).Str("matchId", id).Msg("timeline fetch failed, skipping")
			continue
		}
		out[id] = tl
	}
	return out
}
