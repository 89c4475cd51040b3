package internal

import (
	"context"
	"time"
)

type ctxKey string

// ContextUserKey holds the authenticated system user for the request.
const ContextUserKey ctxKey = "user"

// AuthUser is the authenticated actor the auth middleware attaches to the
// request context. It lives here so every domain handler can read it without
// importing the auth package.
type AuthUser struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

func ContextWithUser(ctx context.Context, u *AuthUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

func UserFromContext(ctx context.Context) (*AuthUser, bool) {
	u, ok := ctx.Value(ContextUserKey).(*AuthUser)
	return u, ok
}

// ContextLangKey holds the negotiated display language ("en" or "fr").
const ContextLangKey ctxKey = "lang"

func LangFromContext(ctx context.Context) string {
	if ctx == nil {
		return "fr"
	}
	if lang, ok := ctx.Value(ContextLangKey).(string); ok && lang != "" {
		return lang
	}
	return "fr"
}

func ContextWithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ContextLangKey, lang)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
