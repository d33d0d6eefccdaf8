// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package logging

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Audit event names.
const (
	EventReloadRequested = "reload_requested"
	EventRateLimited     = "rate_limited"
)

// AuditEvent is an operator-visible control-plane action, such as a
// dataset reload request or a rejected client.
type AuditEvent struct {
	// Event is one of the Event* constants.
	Event string
	// Trigger names where the action came from (api, nats, ...).
	Trigger string
	// IPAddress is the client address, when the action came over HTTP.
	IPAddress string
	// UserAgent is truncated before logging.
	UserAgent string
	// Path is the request path, when relevant.
	Path string
	// Accepted reports whether the action went ahead.
	Accepted bool
	// Reason is free text supplied by the caller.
	Reason string
	// Error is the rejection cause when Accepted is false.
	Error string
	// Details holds extra fields; values are sanitized by key.
	Details map[string]string
}

// AuditLogger writes AuditEvents with sensitive data removed.
type AuditLogger struct {
	logger zerolog.Logger
}

// NewAuditLogger creates an audit logger on the global logger.
func NewAuditLogger() *AuditLogger {
	return &AuditLogger{
		logger: With().Str("component", "audit").Logger(),
	}
}

// NewAuditLoggerWithLogger creates an audit logger on a specific logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAuditLoggerWithLogger(logger zerolog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

// LogEvent logs event at info level, or warn when it was not accepted.
func (l *AuditLogger) LogEvent(event *AuditEvent) {
	e := l.logger.Info()
	status := "accepted"
	if !event.Accepted {
		e = l.logger.Warn()
		status = "rejected"
	}
	e = e.Str("event", event.Event).Str("status", status)

	if event.Trigger != "" {
		e = e.Str("trigger", event.Trigger)
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.UserAgent != "" {
		e = e.Str("user_agent", truncateString(event.UserAgent, 100))
	}
	if event.Path != "" {
		e = e.Str("path", event.Path)
	}
	if event.Reason != "" {
		e = e.Str("reason", truncateString(event.Reason, 200))
	}
	if event.Error != "" && !event.Accepted {
		e = e.Str("error", SanitizeError(event.Error))
	}
	for k, v := range event.Details {
		e = e.Str(k, SanitizeValue(k, v))
	}

	e.Msg("")
}

// LogReloadRequested records a dataset reload request. err is nil when the
// request was queued.
func (l *AuditLogger) LogReloadRequested(trigger, ip, userAgent, reason string, err error) {
	event := &AuditEvent{
		Event:     EventReloadRequested,
		Trigger:   trigger,
		IPAddress: ip,
		UserAgent: userAgent,
		Accepted:  err == nil,
		Reason:    reason,
	}
	if err != nil {
		event.Error = err.Error()
	}
	l.LogEvent(event)
}

// LogRateLimited records a request rejected by the rate limiter.
func (l *AuditLogger) LogRateLimited(ip, path string) {
	l.LogEvent(&AuditEvent{
		Event:     EventRateLimited,
		IPAddress: ip,
		Path:      path,
		Error:     "rate limit exceeded",
	})
}

// urlPattern finds URLs with a scheme, which is where DSN credentials live.
var urlPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://[^\s"']+`)

// SanitizeError redacts URL credentials and truncates long messages. Dataset
// errors can carry a PostgreSQL DSN or a signed download URL.
func SanitizeError(err string) string {
	redacted := urlPattern.ReplaceAllStringFunc(err, RedactURL)
	return truncateString(redacted, 300)
}

// RedactURL replaces the password and any query string of rawURL. Strings
// that do not parse are returned unchanged.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	if u.User != nil {
		if _, has := u.User.Password(); has {
			u.User = url.UserPassword(u.User.Username(), "REDACTED")
		}
	}
	if u.RawQuery != "" {
		u.RawQuery = "REDACTED"
	}
	return u.String()
}

// SanitizeToken shows only the first and last four characters of a secret.
func SanitizeToken(token string) string {
	if len(token) <= 12 {
		return "[REDACTED]"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

var sensitiveKeys = map[string]bool{
	"password":      true,
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"authorization": true,
	"cookie":        true,
	"dsn":           true,
	"database_url":  true,
}

// SanitizeValue sanitizes a value based on its key name.
func SanitizeValue(key, value string) string {
	if sensitiveKeys[strings.ToLower(key)] {
		return SanitizeToken(value)
	}
	if strings.Contains(value, "://") {
		return SanitizeError(value)
	}
	return value
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
