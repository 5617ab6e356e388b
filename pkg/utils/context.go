package utils

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	TokenKey    contextKey = "token"
	LanguageKey contextKey = "language"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func SetUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID.String())
}

// GetTokenFromContext returns the session token stored by the auth middleware.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

// GetLanguageFromContext returns the active language, or fallback when none
// has been activated.
func GetLanguageFromContext(ctx context.Context, fallback language.Tag) language.Tag {
	tag, ok := ctx.Value(LanguageKey).(language.Tag)
	if !ok {
		return fallback
	}
	return tag
}

func SetLanguageContext(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, LanguageKey, tag)
}
