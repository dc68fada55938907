package auth

import "context"

type principalKey struct{}

func WithPrincipal(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, principalKey{}, username)
}

// PrincipalFrom returns the authenticated username, if any.
func PrincipalFrom(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(principalKey{}).(string)
	return username, ok && username != ""
}
