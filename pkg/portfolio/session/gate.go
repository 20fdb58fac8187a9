// Package session implements the edit-mode access gate: a configured
// identifier/secret pair whose successful comparison yields a short-lived
// session token. This is presentation-only gating for a single site owner,
// not an authentication system — there are no accounts, no password hashes,
// and no server-side identity beyond "holds a valid session token".
package session

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
)

// ErrInvalidCredentials indicates the submitted identifier/secret pair did
// not match the configured values.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultTokenTTL is the session token lifetime when none is configured.
const DefaultTokenTTL = 12 * time.Hour

// Config holds the gate's configured secrets.
type Config struct {
	EditorID     string        // identifier the owner logs in with
	EditorSecret string        // secret the owner logs in with
	TokenSecret  string        // HMAC key for session tokens
	TokenTTL     time.Duration // session token lifetime (default: 12h)
}

// Gate issues and verifies edit-session tokens. Pass one explicit Gate to
// the handlers that need gated behavior; never hold gate state in a global.
type Gate struct {
	editorID     []byte
	editorSecret []byte
	tokenAuth    *jwtauth.JWTAuth
	tokenTTL     time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> token expiry
}

// NewGate creates a gate from the configured secrets.
func NewGate(cfg Config) (*Gate, error) {
	if cfg.EditorID == "" || cfg.EditorSecret == "" {
		return nil, errors.New("editor id and secret are required")
	}
	if cfg.TokenSecret == "" {
		return nil, errors.New("token secret is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}

	return &Gate{
		editorID:     []byte(cfg.EditorID),
		editorSecret: []byte(cfg.EditorSecret),
		tokenAuth:    jwtauth.New("HS256", []byte(cfg.TokenSecret), nil),
		tokenTTL:     cfg.TokenTTL,
		revoked:      make(map[string]time.Time),
	}, nil
}

// Login compares the submitted pair against the configured values in
// constant time and, on match, issues a session token.
func (g *Gate) Login(id, secret string) (string, error) {
	idOK := subtle.ConstantTimeCompare([]byte(id), g.editorID) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(secret), g.editorSecret) == 1
	if !idOK || !secretOK {
		return "", ErrInvalidCredentials
	}

	claims := map[string]interface{}{
		"sub": "editor",
		"jti": uuid.NewString(),
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, g.tokenTTL)

	_, tokenString, err := g.tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// Logout revokes the session the claims belong to. The token stays revoked
// for the remainder of its lifetime.
func (g *Gate) Logout(claims map[string]interface{}) {
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return
	}

	expiry := time.Now().Add(g.tokenTTL)
	if exp, ok := claims["exp"].(time.Time); ok {
		expiry = exp
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.revoked[jti] = expiry
	g.prune()
}

// prune drops revocation entries for tokens that have expired anyway.
// Caller must hold g.mu.
func (g *Gate) prune() {
	now := time.Now()
	for jti, expiry := range g.revoked {
		if expiry.Before(now) {
			delete(g.revoked, jti)
		}
	}
}

func (g *Gate) isRevoked(jti string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, revoked := g.revoked[jti]
	return revoked
}

// TokenAuth exposes the underlying jwtauth instance for the Verifier
// middleware.
func (g *Gate) TokenAuth() *jwtauth.JWTAuth {
	return g.tokenAuth
}

// Verifier returns the middleware that extracts and validates session tokens
// from incoming requests.
func (g *Gate) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(g.tokenAuth)
}

// Authenticator rejects requests without a valid, unrevoked session token.
func (g *Gate) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		jti, _ := claims["jti"].(string)
		if jti == "" || g.isRevoked(jti) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
