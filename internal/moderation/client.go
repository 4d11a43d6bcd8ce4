// Package moderation is a client for the external bad-words API used to
// censor user-supplied text before it is stored.
//
// One Censor call is one POST: the raw text is the request body, the API key
// travels in the "apikey" header, and the replacement character is passed as
// the censor_character query parameter. Failures are classified into the
// apperr taxonomy:
//
//   - transport errors, timeouts, unreadable bodies -> apperr.KindExternalAPI
//   - 4xx responses                                 -> apperr.KindClient
//   - 5xx responses                                 -> apperr.KindServer
//
// There is no retry at this layer.
package moderation

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tbourn/go-qa-backend/internal/apperr"
)

// DefaultURL is the public bad-words endpoint.
const DefaultURL = "https://api.apilayer.com/bad_words"

// Config configures a Client.
type Config struct {
	URL             string
	APIKey          string
	CensorCharacter string
	Timeout         time.Duration
}

// BadWord is one match reported by the API.
type BadWord struct {
	Original    string `json:"original"`
	Word        string `json:"word"`
	Deviations  int64  `json:"deviations"`
	Info        int64  `json:"info"`
	ReplacedLen int64  `json:"replacedLen"`
}

// Response is the success body of the API.
type Response struct {
	Content         string    `json:"content"`
	BadWordsTotal   int64     `json:"bad_words_total"`
	BadWordsList    []BadWord `json:"bad_words_list"`
	CensoredContent string    `json:"censored_content"`
}

// errorBody is the failure body of the API.
type errorBody struct {
	Message string `json:"message"`
}

// Client calls the moderation API. It is safe for concurrent use.
type Client struct {
	rc     *resty.Client
	url    string
	censor string
}

// New builds a Client. A zero Timeout leaves the request bounded only by
// the caller's context.
func New(cfg Config) *Client {
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}
	censor := cfg.CensorCharacter
	if censor == "" {
		censor = "*"
	}
	rc := resty.New().
		SetHeader("apikey", cfg.APIKey).
		SetTimeout(cfg.Timeout)
	return &Client{rc: rc, url: url, censor: censor}
}

// Censor returns text with profane words replaced by the censor character.
func (c *Client) Censor(ctx context.Context, text string) (string, error) {
	ctx, span := otel.Tracer("moderation").Start(ctx, "Censor")
	defer span.End()
	start := time.Now()

	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("censor_character", c.censor).
		SetBody(text).
		Post(c.url)
	if err != nil {
		observe(outcomeTransport, start)
		span.SetStatus(codes.Error, err.Error())
		return "", apperr.ExternalAPI(err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))

	if !resp.IsSuccess() {
		e := apperr.Upstream(resp.StatusCode(), upstreamMessage(resp))
		switch e.Kind {
		case apperr.KindServer:
			observe(outcomeServer, start)
		case apperr.KindClient:
			observe(outcomeClient, start)
		default:
			observe(outcomeTransport, start)
		}
		span.SetStatus(codes.Error, e.Error())
		return "", e
	}

	var out Response
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		observe(outcomeTransport, start)
		span.SetStatus(codes.Error, err.Error())
		return "", apperr.ExternalAPI(err)
	}
	span.SetAttributes(attribute.Int64("moderation.bad_words_total", out.BadWordsTotal))
	observe(outcomeOK, start)
	return out.CensoredContent, nil
}

// upstreamMessage prefers the JSON "message" field, then the raw body, then
// the status text.
func upstreamMessage(resp *resty.Response) string {
	var eb errorBody
	if err := json.Unmarshal(resp.Body(), &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	if raw := strings.TrimSpace(string(resp.Body())); raw != "" {
		return raw
	}
	return http.StatusText(resp.StatusCode())
}

// Noop passes text through unchanged. Used when moderation is disabled.
type Noop struct{}

// Censor returns text as is.
func (Noop) Censor(_ context.Context, text string) (string, error) { return text, nil }
