package log

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// sensitiveKeys contains attribute keys whose values are always masked.
var sensitiveKeys = map[string]bool{
	"password":      true,
	"passwd":        true,
	"db_password":   true,
	"dbpassword":    true,
	"dsn":           true,
	"secret":        true,
	"token":         true,
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"api_key":       true,
	"apikey":        true,
}

// sensitiveKeywords mark a key as sensitive when contained in it.
// The bare word "key" is excluded because it matches too much ("primary_key").
var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token", "credential", "dsn",
}

// dsnPasswordPattern matches "user:password@proto(" in go-sql-driver/mysql DSNs,
// including DSNs embedded in error messages.
var dsnPasswordPattern = regexp.MustCompile(`([^:@/\s]+):([^@\s]+)@(tcp|unix|udp)?\(`)

// tokenPatterns match values that look like bearer credentials.
var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
}

// SecureHandler wraps an slog.Handler to sanitize sensitive information.
// Every attribute, including those added with WithAttrs and those nested
// in groups, passes through sanitizeAttr before reaching the wrapped handler.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler creates a new SecureHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is wrapped.
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled reports whether the wrapped handler handles records at the given level.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and passes it on.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes sanitized and added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(clean)}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// sanitizeAttr sanitizes a single attribute, recursing into groups.
func sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		clean := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			clean[i] = sanitizeAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, SanitizeValue(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, SanitizeValue(err.Error()))
		}
	}
	return a
}

// isSensitiveKey reports whether an attribute key names a credential.
func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	if sensitiveKeys[lower] {
		return true
	}
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// SanitizeValue masks credentials embedded in a string value.
// DSN passwords and URL user info are masked in place so the rest of the
// value stays readable; token-like values are masked entirely.
func SanitizeValue(value string) string {
	for _, p := range tokenPatterns {
		if p.MatchString(value) {
			return MaskValue
		}
	}

	value = dsnPasswordPattern.ReplaceAllString(value, "${1}:"+MaskValue+"@${3}(")

	return maskURLUserInfo(value)
}

// urlWithUserInfo finds absolute URLs carrying user info inside free text.
var urlWithUserInfo = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://[^\s/@"'<>]+@[^\s"'<>]*`)

// maskURLUserInfo replaces "user:pass@" in every URL of s with "user:***REDACTED***@".
func maskURLUserInfo(s string) string {
	return urlWithUserInfo.ReplaceAllStringFunc(s, func(raw string) string {
		u, err := url.Parse(raw)
		if err != nil || u.User == nil {
			return raw
		}
		if _, hasPassword := u.User.Password(); !hasPassword {
			return raw
		}
		u.User = url.UserPassword(u.User.Username(), MaskValue)
		// url.String escapes the mask; keep it readable
		return strings.Replace(u.String(), url.QueryEscape(MaskValue), MaskValue, 1)
	})
}

// newLevel returns Debug for verbose output and Warn otherwise.
func newLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewSecureLogger creates a text slog.Logger that sanitizes all output.
// Verbose sets the level to Debug; otherwise only warnings and errors are written.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: newLevel(verbose)})
	return slog.New(NewSecureHandler(h))
}

// NewSecureJSONLogger is NewSecureLogger with JSON output.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: newLevel(verbose)})
	return slog.New(NewSecureHandler(h))
}
