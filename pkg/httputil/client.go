package httputil

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ClientCookie is the cookie holding the anonymous client id.
const ClientCookie = "barbell_client"

// CookieOptions configures the client cookie.
type CookieOptions struct {
	// MaxAge defaults to one year.
	MaxAge time.Duration
	Secure bool
}

type clientKey struct{}

// ClientID ensures every request carries a client id, setting the cookie
// when the request has none or an invalid one.
func ClientID(opts CookieOptions) func(http.Handler) http.Handler {
	if opts.MaxAge <= 0 {
		opts.MaxAge = 365 * 24 * time.Hour
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := clientIDFromCookie(r)
			if !ok {
				id = uuid.New()
				http.SetCookie(w, &http.Cookie{
					Name:     ClientCookie,
					Value:    id.String(),
					Path:     "/",
					MaxAge:   int(opts.MaxAge.Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			ctx := context.WithValue(r.Context(), clientKey{}, id.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIDFromCookie(r *http.Request) (uuid.UUID, bool) {
	c, err := r.Cookie(ClientCookie)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// ClientIDFrom returns the id stored by [ClientID], or "" outside it.
func ClientIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(clientKey{}).(string)
	return id
}
