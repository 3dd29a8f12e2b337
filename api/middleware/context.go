package middleware

import "context"

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxScope  contextKey = "token_scope"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func ScopeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxScope).(string); ok {
		return v
	}
	return ""
}
