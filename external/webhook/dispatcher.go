package webhook

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/pitchside/matchsync/internal/platform/logging"
	"github.com/pitchside/matchsync/internal/platform/resilience"
	"github.com/pitchside/matchsync/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type DispatcherConfig struct {
	URL            string
	Secret         string
	Timeout        time.Duration
	Retries        int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Dispatcher pushes finished sync results to a downstream webhook so
// consumers do not have to poll the internal API.
type Dispatcher struct {
	client         *fasthttp.Client
	url            string
	secret         string
	timeout        time.Duration
	retries        int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewDispatcher(cfg DispatcherConfig, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Dispatcher{
		client:         &fasthttp.Client{},
		url:            strings.TrimSpace(cfg.URL),
		secret:         strings.TrimSpace(cfg.Secret),
		timeout:        timeout,
		retries:        maxInt(cfg.Retries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Enabled reports whether a webhook target is configured at all.
func (d *Dispatcher) Enabled() bool {
	return d.url != ""
}

type resultEnvelope struct {
	Event           string         `json:"event"`
	ProviderMatchID int64          `json:"providerMatchId"`
	Status          string         `json:"status"`
	Success         bool           `json:"success"`
	FailureReason   string         `json:"failureReason,omitempty"`
	Participants    countsEnvelope `json:"participants"`
	Events          countsEnvelope `json:"events"`
	TeamStats       countsEnvelope `json:"teamStats"`
	PlayerStats     countsEnvelope `json:"playerStats"`
	SyncedAt        time.Time      `json:"syncedAt"`
}

type countsEnvelope struct {
	Created  int `json:"created"`
	Retained int `json:"retained"`
	Deleted  int `json:"deleted"`
}

// NotifySyncResult posts one sync result. Transient upstream failures (5xx,
// 429, network errors) are retried; anything else is surfaced immediately.
func (d *Dispatcher) NotifySyncResult(ctx context.Context, result usecase.SyncResult) error {
	if !d.Enabled() {
		return nil
	}
	if d.circuitEnabled {
		if err := d.breaker.Allow(); err != nil {
			d.logger.WarnContext(ctx, "webhook circuit breaker rejected request", "state", d.breaker.State())
			return fmt.Errorf("webhook target is temporarily unavailable: %w", err)
		}
	}

	body, err := sonic.Marshal(resultEnvelope{
		Event:           "match.synced",
		ProviderMatchID: result.ProviderMatchID,
		Status:          result.Status,
		Success:         result.Success,
		FailureReason:   result.FailureReason,
		Participants:    countsEnvelope(result.Participants),
		Events:          countsEnvelope(result.Events),
		TeamStats:       countsEnvelope(result.TeamStats),
		PlayerStats:     countsEnvelope(result.PlayerStats),
		SyncedAt:        result.SyncedAt,
	})
	if err != nil {
		return crerr.Wrap(err, "marshal webhook payload")
	}

	d.logger.InfoContext(ctx, "webhook dispatch",
		"url", d.url,
		"provider_match_id", result.ProviderMatchID,
		"preview", buildBodyPreview(body),
	)

	callErr := d.send(ctx, body)
	d.recordCircuitResult(callErr)
	return callErr
}

func (d *Dispatcher) send(ctx context.Context, body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= d.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		req.SetRequestURI(d.url)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		if d.secret != "" {
			req.Header.Set("X-Webhook-Secret", d.secret)
		}
		req.SetBody(body)

		err := d.client.DoTimeout(req, resp, d.timeout)
		status := resp.StatusCode()
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)

		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: post webhook: %v", errWebhookTransient, err)
		case status >= 200 && status < 300:
			return nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: post webhook status=%d", errWebhookTransient, status)
		default:
			return fmt.Errorf("post webhook status=%d", status)
		}

		if attempt == d.retries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

func (d *Dispatcher) recordCircuitResult(err error) {
	if !d.circuitEnabled || d.breaker == nil {
		return
	}
	if err != nil && stderrors.Is(err, errWebhookTransient) {
		d.breaker.RecordFailure()
		return
	}
	d.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func buildBodyPreview(body []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	const max = 512
	if len(body) > max {
		_, _ = buf.Write(body[:max])
		_, _ = buf.WriteString("...(truncated)")
	} else {
		_, _ = buf.Write(body)
	}
	return buf.String()
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
