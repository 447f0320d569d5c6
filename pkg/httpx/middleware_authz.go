package httpx

import "net/http"

// RequireRole rejects requests whose verified role claim is not the one the
// operation declares. This runs after AuthnMiddleware, so a failure here
// means a valid identity with the wrong kind: 403, never 401.
func RequireRole(role string) Middleware {
	return RequireAnyRole(role)
}

// RequireAnyRole allows any of the listed roles.
func RequireAnyRole(roles ...string) Middleware {
	want := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		want[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[RoleFromCtx(r.Context())]; !ok {
				WriteError(w, http.StatusForbidden, "insufficient_role",
					"this operation is not available to your account kind")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
