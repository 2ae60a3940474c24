package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"linguachat/auth"
	"linguachat/utils"
)

type contextKey string

const principalKey contextKey = "principal"

// Server is the auth-token verifier service. Clients present bearer
// tokens; the server validates them and returns the principal they
// identify.
type Server struct {
	secret string
	logger *utils.Logger
}

// New creates a server verifying tokens against the given secret.
func New(secret string, logger *utils.Logger) *Server {
	return &Server{secret: secret, logger: logger}
}

// Router builds the HTTP handler with the full middleware stack.
func (s *Server) Router(corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.With(s.RequireAuth).Post("/verify", s.handleVerify)
	})

	return r
}

// RequireAuth validates the Authorization bearer token and stores the
// principal in the request context. Requests without a valid token are
// rejected before reaching the handler.
func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "missing token"})
			return
		}

		tokenStr := strings.TrimPrefix(h, "Bearer ")
		principal, err := auth.VerifyToken(s.secret, tokenStr)
		if err != nil {
			s.logger.Warn("Rejected token: %v", err)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFrom extracts the authenticated principal placed in the
// context by RequireAuth.
func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(auth.Principal)
	return p, ok
}

// handleVerify handles POST /api/verify
// Returns the identity of the presented token.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "missing token"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"user_id": p.UserID,
		"email":   p.Email,
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
