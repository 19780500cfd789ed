// Package statsfeed pulls raw basketball box scores from the stats provider.
package statsfeed

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
	"github.com/Alislimm/fantasy-ms/internal/platform/resilience"
	"github.com/Alislimm/fantasy-ms/internal/usecase"
)

const (
	defaultBaseURL        = "https://api.statsfeed.example.com/v1/basketball"
	defaultTimeout        = 20 * time.Second
	defaultFailureLimit   = 5
	defaultOpenTimeout    = 30 * time.Second
	defaultHalfOpenMaxReq = 2
	maxResponseBytes      = 6 << 20
	statusFinal           = "FINAL"
)

var apiKeyParamRegex = regexp.MustCompile(`api_key=[^&\s"']+`)
var errStatsFeedTransient = crerr.New("statsfeed transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		maxRetries: maxRetries,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(defaultFailureLimit, defaultOpenTimeout, defaultHalfOpenMaxReq),
	}
}

type boxScoreEnvelope struct {
	Data struct {
		FixtureID string `json:"fixture_id"`
		Status    string `json:"status"`
		Lines     []struct {
			PlayerID  string `json:"player_id"`
			Points    int    `json:"points"`
			Rebounds  int    `json:"rebounds"`
			Assists   int    `json:"assists"`
			Steals    int    `json:"steals"`
			Blocks    int    `json:"blocks"`
			Turnovers int    `json:"turnovers"`
			ThreeMade int    `json:"three_made"`
		} `json:"lines"`
	} `json:"data"`
}

func (c *Client) FetchBoxScore(ctx context.Context, fixtureID string) (usecase.BoxScore, error) {
	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return usecase.BoxScore{}, crerr.New("fixture id is empty")
	}

	var envelope boxScoreEnvelope
	path := "/fixtures/" + url.PathEscape(fixtureID) + "/boxscore"
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return usecase.BoxScore{}, crerr.Wrapf(err, "fetch box score fixture_id=%s", fixtureID)
	}

	box := usecase.BoxScore{
		FixtureID: fixtureID,
		Final:     strings.EqualFold(envelope.Data.Status, statusFinal),
		Lines:     make([]usecase.BoxScoreLine, 0, len(envelope.Data.Lines)),
	}
	for _, line := range envelope.Data.Lines {
		box.Lines = append(box.Lines, usecase.BoxScoreLine{
			PlayerID:  line.PlayerID,
			Points:    line.Points,
			Rebounds:  line.Rebounds,
			Assists:   line.Assists,
			Steals:    line.Steals,
			Blocks:    line.Blocks,
			Turnovers: line.Turnovers,
			ThreeMade: line.ThreeMade,
		})
	}

	return box, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "statsfeed circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	values := url.Values{}
	values.Set("api_key", c.apiKey)
	fullURL := c.baseURL + path + "?" + values.Encode()

	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if reqErr != nil && stderrors.Is(reqErr, errStatsFeedTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return crerr.Newf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	c.logger.DebugContext(ctx, "statsfeed request", "curl", buildCurlPreview(fullURL))

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errStatsFeedTransient, redactAPIKey(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errStatsFeedTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errStatsFeedTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "statsfeed request failed", "url", redactAPIKey(fullURL), "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const maxLen = 300
	body := strings.TrimSpace(string(raw))
	if len(body) > maxLen {
		return body[:maxLen] + "..."
	}
	return body
}

func redactAPIKey(text string) string {
	return apiKeyParamRegex.ReplaceAllString(text, "api_key=***")
}

func buildCurlPreview(fullURL string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -H 'accept: application/json' ")
	_, _ = buf.WriteString("'")
	_, _ = buf.WriteString(redactAPIKey(fullURL))
	_, _ = buf.WriteString("'")

	return buf.String()
}
