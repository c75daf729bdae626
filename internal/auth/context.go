package auth

import (
	"context"
)

type ctxKey string

const userKey ctxKey = "userClaims"

// Claims is the identity a verified token asserts: the user, their email
// and the ids of their assigned roles.
type Claims struct {
	Subject string
	Email   string
	Roles   []string
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, userKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(userKey).(Claims); ok {
		return v
	}
	return Claims{}
}

// Subject returns the authenticated user id, or "" when unauthenticated.
func Subject(ctx context.Context) string {
	return FromContext(ctx).Subject
}
