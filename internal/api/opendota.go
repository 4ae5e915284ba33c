package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"dota-draft-advisor/internal/config"
	"dota-draft-advisor/internal/constants"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned for a 404 from OpenDota.
var ErrNotFound = errors.New("opendota: not found")

// StatusError carries a non-200 response status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("opendota API error: %d", e.StatusCode)
}

type OpenDotaClient struct {
	baseURL     string
	apiKey      string
	client      *fasthttp.Client
	limiter     *rate.Limiter
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	RemainingMinute int       `json:"remaining_minute"`
	RemainingDay    int       `json:"remaining_day"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewOpenDotaClient(cfg *config.Config) *OpenDotaClient {
	return &OpenDotaClient{
		baseURL: strings.TrimRight(cfg.OpenDotaBaseURL, "/"),
		apiKey:  cfg.OpenDotaAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.OpenDotaRPS), constants.OpenDotaBurst),
		rateLimit: RateLimitInfo{
			RemainingMinute: -1,
			RemainingDay:    -1,
			UpdatedAt:       time.Now(),
		},
	}
}

func (c *OpenDotaClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *OpenDotaClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if v := string(resp.Header.Peek("X-Rate-Limit-Remaining-Minute")); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			c.rateLimit.RemainingMinute = val
		}
	}
	if v := string(resp.Header.Peek("X-Rate-Limit-Remaining-Day")); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			c.rateLimit.RemainingDay = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func (c *OpenDotaClient) GetHeroStats(ctx context.Context) ([]HeroStatsEntry, error) {
	res, err := doRequest[[]HeroStatsEntry](ctx, c, c.url("/api/heroStats"))
	if err != nil {
		return nil, err
	}
	return *res, nil
}

func (c *OpenDotaClient) GetMatchups(ctx context.Context, heroID int) ([]MatchupEntry, error) {
	res, err := doRequest[[]MatchupEntry](ctx, c, c.url(fmt.Sprintf("/api/heroes/%d/matchups", heroID)))
	if err != nil {
		return nil, err
	}
	return *res, nil
}

func (c *OpenDotaClient) url(path string) string {
	u := c.baseURL + path
	if c.apiKey != "" {
		u += "?api_key=" + url.QueryEscape(c.apiKey)
	}
	return u
}

func doRequest[T any](ctx context.Context, client *OpenDotaClient, url string) (*T, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.DoTimeout(req, resp, constants.ExternalAPITimeout); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, &StatusError{StatusCode: resp.StatusCode(), URL: url}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}
