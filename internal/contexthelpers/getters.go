package contexthelpers

import (
	"context"
)

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(CurrentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSPNonce(ctx context.Context) string {
	cspNonce, ok := ctx.Value(CspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return cspNonce
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(CsrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}
