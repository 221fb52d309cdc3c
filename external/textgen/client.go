package textgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
	"github.com/riskibarqy/matchday-aggregator/internal/usecase"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second
	completionPath = "/chat/completions"
)

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	Logger  *logging.Logger
}

// Client produces match previews through an OpenAI compatible chat
// completions endpoint.
type Client struct {
	http    *fasthttp.Client
	url     string
	apiKey  string
	model   string
	timeout time.Duration
	logger  *logging.Logger
}

var _ usecase.AnalysisGenerator = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "matchday-aggregator",
			MaxIdleConnDuration: 90 * time.Second,
		},
		url:     baseURL + completionPath,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// GenerateAnalysis asks the model for an HTML preview of one fixture.
func (c *Client) GenerateAnalysis(ctx context.Context, prompt usecase.AnalysisPrompt) (string, error) {
	if strings.TrimSpace(prompt.HomeTeam) == "" || strings.TrimSpace(prompt.AwayTeam) == "" {
		return "", fmt.Errorf("%w: analysis prompt needs both teams", usecase.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	payload, err := sonic.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(prompt)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", crerr.Wrap(err, "encode chat request")
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if c.apiKey != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.apiKey)
	}
	req.SetBodyRaw(payload)

	started := time.Now()
	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		c.logger.WarnContext(ctx, "text generation request failed", "error", err, "duration_ms", time.Since(started).Milliseconds())
		return "", fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, crerr.Wrap(err, "text generation request"))
	}

	status := resp.StatusCode()
	// the body buffer returns to the pool on release
	body := append([]byte(nil), resp.Body()...)
	c.logger.DebugContext(ctx, "text generation response", "status", status, "duration_ms", time.Since(started).Milliseconds())

	switch {
	case status == fasthttp.StatusTooManyRequests:
		return "", fmt.Errorf("%w: text generation status=%d", usecase.ErrRateLimited, status)
	case status < 200 || status >= 300:
		return "", fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, crerr.Newf("text generation status=%d body=%s", status, abbreviate(body)))
	}

	var decoded chatResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, crerr.Wrap(err, "decode chat response"))
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, crerr.Newf("text generation error type=%s: %s", decoded.Error.Type, decoded.Error.Message))
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%w: text generation returned no choices", usecase.ErrDependencyUnavailable)
	}

	html := stripCodeFence(decoded.Choices[0].Message.Content)
	if html == "" {
		return "", fmt.Errorf("%w: text generation returned empty content", usecase.ErrDependencyUnavailable)
	}
	return html, nil
}

// stripCodeFence removes a ```html fence some models wrap their answer in.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		content = content[idx+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

func abbreviate(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
