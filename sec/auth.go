package sec

import (
	"context"
	"log"
	"net/http"
	"slices"

	"github.com/zeptools/informes/responses"
)

type claimsKey struct{}

func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}

// AuthWrapper requires a valid bearer token. With Modules set, the token
// must belong to one of them. It implements routing.HandlerWrapper.
type AuthWrapper struct {
	Issuer  *Issuer
	Modules []string
}

func (a *AuthWrapper) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := ExtractBearerToken(r.Header.Get("Authorization"))
		if raw == "" {
			responses.WriteErrorJSON(w, http.StatusUnauthorized, "sesión requerida")
			return
		}
		claims, err := a.Issuer.Parse(raw)
		if err != nil {
			log.Printf("[WARN][auth] %s %s: %v", r.Method, r.URL.Path, err)
			responses.WriteErrorJSON(w, http.StatusUnauthorized, "sesión inválida o vencida")
			return
		}
		if len(a.Modules) > 0 && !slices.Contains(a.Modules, claims.Module) {
			responses.WriteErrorJSON(w, http.StatusForbidden, "módulo no autorizado")
			return
		}
		inner.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}
