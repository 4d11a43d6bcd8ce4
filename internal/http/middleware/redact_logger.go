// Package middleware contains the Gin middleware shared by the HTTP layer.
//
// This file implements RedactingLogger, the access logger used in production.
// It never logs bodies. Credential headers are replaced wholesale, credential
// query parameters have their values blanked, and email addresses in the
// query string are masked.
package middleware

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const redacted = "[REDACTED]"

var emailRE = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+(@|%40)[a-z0-9.\-]+\.[a-z]{2,}`)

// RedactOptions extends the built-in redaction lists. Matching is
// case-insensitive.
type RedactOptions struct {
	MaskHeaders     []string
	MaskQueryParams []string
}

// RedactingLogger behaves like Logger (it also attaches the request-scoped
// logger) but scrubs headers and query strings first.
//
// Always masked headers: Authorization, Cookie, Set-Cookie, Apikey,
// X-Api-Key. Always masked query parameters: apikey, api_key, token.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := toSet([]string{"authorization", "cookie", "set-cookie", "apikey", "x-api-key"}, opts.MaskHeaders)
	maskParams := toSet([]string{"apikey", "api_key", "token"}, opts.MaskQueryParams)

	return func(c *gin.Context) {
		start := time.Now()

		headers := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				headers[k] = redacted
				continue
			}
			headers[k] = emailRE.ReplaceAllString(strings.Join(vv, ", "), "[REDACTED:email]")
		}
		query := redactQuery(c.Request.URL.RawQuery, maskParams)

		l := scopedLogger(c)
		c.Set(loggerKey, &l)

		c.Next()

		ev := levelFor(&l, c.Writer.Status())
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("query", truncate(query, maxQueryLogLength)).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}

// redactQuery blanks values of sensitive keys and masks emails elsewhere.
// Unparseable query strings are masked as a whole apart from emails.
func redactQuery(raw string, mask map[string]struct{}) string {
	if raw == "" {
		return ""
	}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return emailRE.ReplaceAllString(raw, "[REDACTED:email]")
	}
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		_, sensitive := mask[strings.ToLower(k)]
		for _, v := range vals[k] {
			if sensitive {
				v = redacted
			} else {
				v = emailRE.ReplaceAllString(v, "[REDACTED:email]")
			}
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, "&")
}

func toSet(base, extra []string) map[string]struct{} {
	out := make(map[string]struct{}, len(base)+len(extra))
	for _, s := range append(base, extra...) {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out[s] = struct{}{}
		}
	}
	return out
}
