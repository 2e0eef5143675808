package auth

import (
	"context"

	"github.com/JojoFlex1/done/internal/util"
)

// User is the authenticated principal of a request.
type User struct {
	ID    string
	Email string
}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, util.CTXKeyUser, u)
}

// UserFromContext returns the authenticated user or nil.
func UserFromContext(ctx context.Context) *User {
	u, ok := ctx.Value(util.CTXKeyUser).(*User)
	if !ok {
		return nil
	}

	return u
}
