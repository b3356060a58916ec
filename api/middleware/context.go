package middleware

import "context"

type contextKey string

const (
	ctxGuildID contextKey = "guild_id"
	ctxRoleIDs contextKey = "role_ids"
	ctxManager contextKey = "manager"
)

func GuildIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxGuildID).(int64); ok {
		return v
	}
	return 0
}

func RoleIDsFromContext(ctx context.Context) []int64 {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxRoleIDs).([]int64); ok {
		return v
	}
	return nil
}

func ManagerFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	if v, ok := ctx.Value(ctxManager).(bool); ok {
		return v
	}
	return false
}

// WithGuildID injects the guild identifier into the context.
func WithGuildID(ctx context.Context, guildID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxGuildID, guildID)
}

// WithClaims seeds the context with everything the token carries.
func WithClaims(ctx context.Context, guildID int64, roleIDs []int64, manager bool) context.Context {
	ctx = WithGuildID(ctx, guildID)
	ctx = context.WithValue(ctx, ctxRoleIDs, roleIDs)
	return context.WithValue(ctx, ctxManager, manager)
}
