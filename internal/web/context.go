package web

import (
	"net"
	"net/http"

	"github.com/JonMunkholm/leadlist/internal/lead"
)

// requestMetadata stores the client IP and User-Agent in the request
// context for the store's audit trail. RemoteAddr has already been
// resolved by TrustedRealIP.
func requestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		ctx := lead.WithRequestInfo(r.Context(), ip, r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
