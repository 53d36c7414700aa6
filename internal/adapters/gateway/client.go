package gateway

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"suite_hotel/internal/adapters/observability"
	"suite_hotel/internal/domain"
)

const DefaultBaseURL = "https://suite-be.vercel.app"

type Options struct {
	APIKey     string // optional, sent as X-API-Key
	RPS        int
	Timeout    time.Duration
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter

	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

func New(base string, o Options) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if o.RPS <= 0 {
		o.RPS = 5
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = time.Second
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 30 * time.Second
	}
	return &Client{
		base:       strings.TrimRight(base, "/"),
		hc:         &http.Client{Timeout: o.Timeout},
		key:        o.APIKey,
		rl:         rate.NewLimiter(rate.Limit(o.RPS), o.RPS),
		maxRetries: o.MaxRetries,
		baseDelay:  o.BaseDelay,
		maxDelay:   o.MaxDelay,
	}
}

// ---- Public API (tries the deployed paths first, falls back to the canonical ones) ----

func (c *Client) ListHotels(ctx context.Context) ([]map[string]any, error) {
	candidates := []string{
		c.base + "/api/hotels/all", // deployed
		c.base + "/api/hotels",
	}
	var out []map[string]any
	return out, c.getFirst(ctx, "hotels", candidates, &out)
}

func (c *Client) ListRooms(ctx context.Context, hotelID string) ([]map[string]any, error) {
	id := url.PathEscape(hotelID)
	candidates := []string{
		fmt.Sprintf("%s/api//hotels/%s/rooms", c.base, id), // deployed route has a double slash
		fmt.Sprintf("%s/api/hotels/%s/rooms", c.base, id),
	}
	var out []map[string]any
	return out, c.getFirst(ctx, "rooms", candidates, &out)
}

func (c *Client) ListReservations(ctx context.Context, guestAddress string) ([]map[string]any, error) {
	q := url.Values{"guestAddress": {guestAddress}}.Encode()
	candidates := []string{
		c.base + "/reservations?" + q,
		c.base + "/api/reservations?" + q,
	}
	var out []map[string]any
	return out, c.getFirst(ctx, "reservations", candidates, &out)
}

// ---- Internals ----

var (
	ErrNotFound     = fmt.Errorf("gateway: %w", domain.ErrNotFound)
	ErrUnauthorized = errors.New("gateway: unauthorized")
	ErrForbidden    = errors.New("gateway: forbidden")
	ErrUnavailable  = errors.New("gateway: unavailable")
	ErrClientStatus = errors.New("gateway: request rejected")
)

func (c *Client) getFirst(ctx context.Context, endpoint string, urls []string, out any) error {
	var last error
	for _, u := range urls {
		if err := c.get(ctx, endpoint, u, out); err != nil {
			if errors.Is(err, ErrNotFound) {
				last = err
				continue // try next pattern
			}
			return err // non-404: stop early
		}
		return nil // success
	}
	if last != nil {
		return last
	}
	return errors.New("no candidate URL succeeded")
}

// get is a rate-limited GET that decodes JSON into out. Transport failures
// and 5xx are retried with backoff; 4xx never is.
func (c *Client) get(ctx context.Context, endpoint, url string, out any) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			if !sleepCtx(ctx, c.wait(lastErr, i-1)) {
				return ctx.Err()
			}
		}
		if err := c.rl.Wait(ctx); err != nil {
			return err
		}
		err := c.attempt(ctx, endpoint, url, out)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !errors.Is(err, ErrUnavailable) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// retryable carries the server's Retry-After hint with an ErrUnavailable.
type retryable struct {
	err   error
	after time.Duration
}

func (r *retryable) Error() string { return r.err.Error() }
func (r *retryable) Unwrap() error { return r.err }

func (c *Client) wait(err error, i int) time.Duration {
	var r *retryable
	if errors.As(err, &r) && r.after > 0 {
		return r.after
	}
	return c.backoff(i)
}

// attempt sends one request and maps the response to a result.
func (c *Client) attempt(ctx context.Context, endpoint, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "suite-hotel/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternalError("gateway", endpoint, err, time.Since(start))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("gateway", endpoint, resp.StatusCode, time.Since(start))

	switch code := resp.StatusCode; {
	case code == http.StatusNoContent:
		return nil
	case code >= 200 && code < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s: %w", endpoint, err)
		}
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code >= 500:
		return &retryable{err: fmt.Errorf("%w: remote %d", ErrUnavailable, code), after: retryAfter(resp)}
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", ErrClientStatus, code, strings.TrimSpace(string(b)))
	}
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff is baseDelay·2^i capped at maxDelay, plus up to 10% jitter (still capped).
func (c *Client) backoff(i int) time.Duration {
	d := c.maxDelay
	if i < 30 {
		if b := c.baseDelay << i; b > 0 && b < c.maxDelay {
			d = b
		}
	}
	// concurrency-safe jitter using crypto/rand
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return d
	}
	j := time.Duration(0.1 * float64(b[0]) / 255.0 * float64(d))
	if d+j > c.maxDelay {
		return c.maxDelay
	}
	return d + j
}
