package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Config contains configuration for the remote ledger client
type Config struct {
	BaseURL      string        `json:"base_url"`
	APIKey       string        `json:"api_key,omitempty"`
	JWTSecret    string        `json:"jwt_secret,omitempty"` // HS256 service token; takes precedence over APIKey
	JWTIssuer    string        `json:"jwt_issuer,omitempty"`
	JWTSubject   string        `json:"jwt_subject,omitempty"`
	TokenTTL     time.Duration `json:"token_ttl"`
	Timeout      time.Duration `json:"timeout"`
	RateLimitRPS float64       `json:"rate_limit_rps"`
	Burst        int           `json:"burst"`
}

// CallObserver receives per-call telemetry
type CallObserver interface {
	ObserveRemoteCall(operation, code string, d time.Duration)
}

// HTTPLedgerClient talks to the remote ledger service over its REST API
type HTTPLedgerClient struct {
	config   Config
	baseURL  *url.URL
	client   *http.Client
	limiter  *rate.Limiter
	observer CallObserver
	logger   zerolog.Logger
}

// Option configures an HTTPLedgerClient
type Option func(*HTTPLedgerClient)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPLedgerClient) { h.client = c }
}

// WithCallObserver reports every call to obs
func WithCallObserver(obs CallObserver) Option {
	return func(h *HTTPLedgerClient) { h.observer = obs }
}

// WithLogger sets the client's logger
func WithLogger(l zerolog.Logger) Option {
	return func(h *HTTPLedgerClient) { h.logger = l }
}

// NewHTTPLedgerClient creates a client for the service at config.BaseURL
func NewHTTPLedgerClient(config Config, opts ...Option) (*HTTPLedgerClient, error) {
	if config.BaseURL == "" {
		return nil, errors.New("ledger base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(config.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid ledger base URL: %w", err)
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimitRPS == 0 {
		config.RateLimitRPS = 10
	}
	if config.Burst == 0 {
		config.Burst = int(config.RateLimitRPS * 2)
	}
	if config.TokenTTL == 0 {
		config.TokenTTL = 5 * time.Minute
	}

	h := &HTTPLedgerClient{
		config:  config,
		baseURL: base,
		client: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimitRPS), config.Burst),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

type listResponse struct {
	Data []models.RawReceivable `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type installmentBody struct {
	Number  int    `json:"number"`
	Amount  string `json:"amount"`
	DueDate string `json:"due_date"`
}

type installmentPlanBody struct {
	NumInstallments int               `json:"num_installments"`
	IntervalDays    int               `json:"interval_days"`
	FirstDueDate    string            `json:"first_due_date"`
	PaymentMethod   string            `json:"payment_method,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	SplitAmount     string            `json:"split_amount"`
	Installments    []installmentBody `json:"installments"`
}

// ListReceivables fetches receivables matching filter
func (h *HTTPLedgerClient) ListReceivables(ctx context.Context, filter models.ReceivableFilter) ([]models.RawReceivable, error) {
	query := url.Values{}
	if filter.Status != "" && filter.Status != models.StatusFilterAll {
		query.Set("status", filter.Status)
	}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.HasDateRange() {
		query.Set("date_field", string(filter.DateMode))
		if filter.From != nil {
			query.Set("from", models.FormatDate(models.CalendarDate(*filter.From)))
		}
		if filter.To != nil {
			query.Set("to", models.FormatDate(models.CalendarDate(*filter.To)))
		}
	}

	var resp listResponse
	if err := h.do(ctx, "listReceivables", "", http.MethodGet, "/receivables", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// RecordPayment posts one payment
func (h *HTTPLedgerClient) RecordPayment(ctx context.Context, id string, req models.PaymentRequest) (*models.RawReceivable, error) {
	var out models.RawReceivable
	if err := h.do(ctx, "recordPayment", id, http.MethodPost, receivablePath(id, "payments"), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApplyInterest posts one manual interest application
func (h *HTTPLedgerClient) ApplyInterest(ctx context.Context, id string, req models.InterestRequest) (*models.RawReceivable, error) {
	var out models.RawReceivable
	if err := h.do(ctx, "applyInterest", id, http.MethodPost, receivablePath(id, "interest"), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateInstallmentPlan posts a split with its config and computed installments
func (h *HTTPLedgerClient) CreateInstallmentPlan(ctx context.Context, id string, plan models.InstallmentPlan) (*models.RawInstallmentPlanResult, error) {
	body := installmentPlanBody{
		NumInstallments: plan.Config.NumInstallments,
		IntervalDays:    plan.Config.IntervalDays,
		FirstDueDate:    models.FormatDate(plan.Config.FirstDueDate),
		PaymentMethod:   string(plan.Config.PaymentMethod),
		Notes:           plan.Config.Notes,
		SplitAmount:     plan.SplitAmount.StringFixed(2),
	}
	for _, inst := range plan.Installments {
		body.Installments = append(body.Installments, installmentBody{
			Number:  inst.Number,
			Amount:  inst.Amount.StringFixed(2),
			DueDate: models.FormatDate(inst.DueDate),
		})
	}

	var out models.RawInstallmentPlanResult
	if err := h.do(ctx, "createInstallmentPlan", id, http.MethodPost, receivablePath(id, "installments"), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func receivablePath(id, action string) string {
	return "/receivables/" + url.PathEscape(id) + "/" + action
}

// do performs one rate-limited call. Every failure is a *models.RemoteCallError.
func (h *HTTPLedgerClient) do(
	ctx context.Context,
	op, id, method, path string,
	query url.Values,
	body, out interface{},
) error {
	start := time.Now()
	code := "error"
	defer func() {
		if h.observer != nil {
			h.observer.ObserveRemoteCall(op, code, time.Since(start))
		}
	}()

	remoteErr := func(status int, msg string, err error) error {
		return &models.RemoteCallError{Op: op, ReceivableID: id, StatusCode: status, Message: msg, Err: err}
	}

	var err error
	if err = h.limiter.Wait(ctx); err != nil {
		return remoteErr(0, "rate limiter", err)
	}

	// path is already escaped so ids containing slashes stay one segment
	endpoint := *h.baseURL
	endpoint.RawPath = h.baseURL.EscapedPath() + path
	if endpoint.Path, err = url.PathUnescape(endpoint.RawPath); err != nil {
		return remoteErr(0, "build request", err)
	}
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return remoteErr(0, "encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return remoteErr(0, "build request", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := h.authorize(req); err != nil {
		return remoteErr(0, "sign token", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Warn().Err(err).Str("operation", op).Str("request_id", requestID).Msg("ledger request failed")
		return remoteErr(0, "", err)
	}
	defer resp.Body.Close()
	code = strconv.Itoa(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var errResp errorResponse
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		h.logger.Debug().
			Str("operation", op).
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Msg("ledger request rejected")
		return remoteErr(resp.StatusCode, msg, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// The mutation was accepted; only the response is unreadable
		return remoteErr(0, "decode response", err)
	}
	return nil
}

func (h *HTTPLedgerClient) authorize(req *http.Request) error {
	if h.config.JWTSecret != "" {
		now := time.Now()
		claims := jwt.RegisteredClaims{
			Issuer:    h.config.JWTIssuer,
			Subject:   h.config.JWTSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.config.TokenTTL)),
			ID:        uuid.NewString(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.config.JWTSecret))
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
	if h.config.APIKey != "" {
		req.Header.Set("X-API-Key", h.config.APIKey)
	}
	return nil
}
