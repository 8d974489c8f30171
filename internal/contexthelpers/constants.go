package contexthelpers

type contextKey string

const CurrentPathContextKey = contextKey("currentPath")
const CsrfTokenContextKey = contextKey("csrfToken")
const CspNonceContextKey = contextKey("cspNonce")
