package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/resilience"
	"github.com/riskibarqy/matchday-aggregator/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxBodyBytes = 6 << 20

var errTransient = crerr.New("upstream transient failure")

type Config struct {
	Name       string
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// RetryBackoff is multiplied by the attempt number between retries.
	RetryBackoff time.Duration
	// Headers are sent on every request; their values are redacted in logs.
	Headers map[string]string
	// Query is merged into every request; SecretParams name the keys
	// redacted in logs and errors.
	Query          url.Values
	SecretParams   []string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Response is one successful upstream answer.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Fetcher performs JSON GETs against one provider behind a circuit breaker,
// per-URL single-flight and bounded retries. A shared request is bounded by
// the client timeout, not by the caller that started it. Failures are classified into
// usecase.ErrRateLimited, usecase.ErrNotFound and usecase.ErrDependencyUnavailable.
type Fetcher struct {
	name           string
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	retryBackoff   time.Duration
	headers        map[string]string
	query          url.Values
	secrets        []string
	secretParams   *regexp.Regexp
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.Group[Response]
}

func New(cfg Config) *Fetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = time.Second
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "upstream"
	}

	secrets := make([]string, 0, len(cfg.Headers)+len(cfg.SecretParams))
	for _, value := range cfg.Headers {
		if value = strings.TrimSpace(value); value != "" {
			secrets = append(secrets, value)
		}
	}
	for _, param := range cfg.SecretParams {
		if value := strings.TrimSpace(cfg.Query.Get(param)); value != "" {
			secrets = append(secrets, value)
		}
	}

	breaker, enabled := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker)
	return &Fetcher{
		name:           name,
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		maxRetries:     max(cfg.MaxRetries, 0),
		retryBackoff:   retryBackoff,
		headers:        cfg.Headers,
		query:          cfg.Query,
		secrets:        secrets,
		secretParams:   secretParamPattern(cfg.SecretParams),
		logger:         logger,
		breaker:        breaker,
		circuitEnabled: enabled,
	}
}

// GetJSON decodes the response body of path into target and returns the
// response headers.
func (f *Fetcher) GetJSON(ctx context.Context, path string, query url.Values, target any) (http.Header, error) {
	resp, err := f.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if err := sonic.Unmarshal(resp.Body, target); err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, crerr.Wrapf(err, "decode %s payload", f.name))
	}
	return resp.Header, nil
}

func (f *Fetcher) Get(ctx context.Context, path string, query url.Values) (Response, error) {
	if f.circuitEnabled {
		if err := f.breaker.Allow(); err != nil {
			f.logger.WarnContext(ctx, "upstream circuit breaker rejected request", "provider", f.name, "state", f.breaker.State())
			return Response{}, fmt.Errorf("%w: %s is temporarily unavailable", usecase.ErrDependencyUnavailable, f.name)
		}
	}

	fullURL := f.buildURL(path, query)
	resp, err, _ := f.flight.Do(http.MethodGet+" "+fullURL, func() (Response, error) {
		resp, reqErr := f.execute(context.WithoutCancel(ctx), fullURL)
		if f.circuitEnabled {
			f.breaker.Record(reqErr, isCircuitFailure)
		}
		return resp, reqErr
	})
	if err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Breaker reports the circuit state for health output.
func (f *Fetcher) Breaker() resilience.Snapshot {
	return f.breaker.Snapshot()
}

func (f *Fetcher) buildURL(path string, query url.Values) string {
	values := url.Values{}
	for key, items := range f.query {
		for _, item := range items {
			values.Add(key, item)
		}
	}
	for key, items := range query {
		for _, item := range items {
			values.Add(key, item)
		}
	}

	fullURL := f.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

func (f *Fetcher) execute(ctx context.Context, fullURL string) (Response, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return Response{}, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")
		for key, value := range f.headers {
			req.Header.Set(key, value)
		}
		f.logger.DebugContext(ctx, "upstream request", "provider", f.name, "curl", f.curlPreview(req))

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %w: send request: %s", usecase.ErrDependencyUnavailable, errTransient, f.redact(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: %w: read response body: %v", usecase.ErrDependencyUnavailable, errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return Response{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: raw}, nil
			case resp.StatusCode == http.StatusTooManyRequests:
				f.logger.WarnContext(ctx, "upstream rate limited", "provider", f.name, "url", f.redact(fullURL))
				return Response{}, fmt.Errorf("%w: %s status=429 body=%s", usecase.ErrRateLimited, f.name, f.redact(abbreviateBody(raw)))
			case resp.StatusCode == http.StatusNotFound:
				return Response{}, fmt.Errorf("%w: %s status=404", usecase.ErrNotFound, f.name)
			case resp.StatusCode >= http.StatusInternalServerError:
				lastErr = fmt.Errorf("%w: %w: %s status=%d body=%s", usecase.ErrDependencyUnavailable, errTransient, f.name, resp.StatusCode, f.redact(abbreviateBody(raw)))
			default:
				return Response{}, fmt.Errorf("%w: %s status=%d body=%s", usecase.ErrDependencyUnavailable, f.name, resp.StatusCode, f.redact(abbreviateBody(raw)))
			}
		}

		if attempt == f.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * f.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Response{}, ctx.Err()
		case <-timer.C:
		}
	}

	f.logger.WarnContext(ctx, "upstream request failed", "provider", f.name, "url", f.redact(fullURL), "error", lastErr)
	return Response{}, lastErr
}

// curlPreview renders the request as a curl command with secrets redacted.
func (f *Fetcher) curlPreview(req *http.Request) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -X ")
	_, _ = buf.WriteString(req.Method)
	_, _ = buf.WriteString(" '")
	_, _ = buf.WriteString(f.redact(req.URL.String()))
	_, _ = buf.WriteString("'")

	keys := make([]string, 0, len(req.Header))
	for key := range req.Header {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		_, _ = buf.WriteString(" -H '")
		_, _ = buf.WriteString(key)
		_, _ = buf.WriteString(": ")
		_, _ = buf.WriteString(f.redact(req.Header.Get(key)))
		_, _ = buf.WriteString("'")
	}
	return buf.String()
}

func (f *Fetcher) redact(value string) string {
	for _, secret := range f.secrets {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	if f.secretParams != nil {
		value = f.secretParams.ReplaceAllString(value, "${1}=REDACTED")
	}
	return value
}

func secretParamPattern(params []string) *regexp.Regexp {
	quoted := make([]string, 0, len(params))
	for _, param := range params {
		if param = strings.TrimSpace(param); param != "" {
			quoted = append(quoted, regexp.QuoteMeta(param))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(` + strings.Join(quoted, "|") + `)=[^&\s"']+`)
}

func isCircuitFailure(err error) bool {
	return errors.Is(err, errTransient)
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
