package middleware

import (
	"context"

	"inkpost/backend/app/authz"
	jwtutil "inkpost/backend/app/jwt"
)

func GetClaims(ctx context.Context) *jwtutil.Claims {
	if v := ctx.Value(ClaimsKey); v != nil {
		if c, ok := v.(*jwtutil.Claims); ok {
			return c
		}
	}
	return nil
}

// Identity returns the verified caller, or nil for anonymous requests.
func Identity(ctx context.Context) *authz.Identity {
	c := GetClaims(ctx)
	if c == nil {
		return nil
	}
	id := c.Identity()
	return &id
}
