package experts

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/handlers"
)

// Dev header names honored when Config.DevHeaders is enabled.
const (
	HeaderExpertID   = "X-Expert-Id"
	HeaderExpertName = "X-Expert-Name"
)

// System resolves expert identities and guards routes that require one.
type System interface {
	// Middleware returns an HTTP middleware that authenticates the request
	// and injects the expert identity into the request context. Requests
	// without a resolvable identity are rejected with 401.
	Middleware() func(http.Handler) http.Handler
}

type tokenClaims struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

type provider struct {
	verifier   *oidc.IDTokenVerifier
	devHeaders bool
	logger     *slog.Logger
}

// New creates an identity provider. Unless dev headers are enabled, the
// OIDC discovery document is fetched during construction, so the issuer
// must be reachable at startup.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (System, error) {
	p := &provider{
		devHeaders: cfg.DevHeaders,
		logger:     logger.With("system", "experts"),
	}

	if cfg.DevHeaders {
		p.logger.Warn("dev header identity enabled; do not use in production")
		return p, nil
	}

	oidcProvider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc issuer: %w", err)
	}

	p.verifier = oidcProvider.Verifier(&oidc.Config{ClientID: cfg.ClientID})
	return p, nil
}

func (p *provider) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			expert, err := p.resolve(r)
			if err != nil {
				handlers.RespondError(w, p.logger, MapHTTPStatus(err), err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithExpert(r.Context(), expert)))
		})
	}
}

func (p *provider) resolve(r *http.Request) (Expert, error) {
	if p.devHeaders {
		return p.resolveHeaders(r)
	}
	return p.resolveToken(r)
}

func (p *provider) resolveHeaders(r *http.Request) (Expert, error) {
	id := strings.TrimSpace(r.Header.Get(HeaderExpertID))
	if id == "" {
		return Expert{}, ErrUnauthenticated
	}

	name := strings.TrimSpace(r.Header.Get(HeaderExpertName))
	if name == "" {
		name = id
	}

	return Expert{ID: id, DisplayName: name}, nil
}

func (p *provider) resolveToken(r *http.Request) (Expert, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return Expert{}, ErrUnauthenticated
	}

	token, err := p.verifier.Verify(r.Context(), raw)
	if err != nil {
		p.logger.Warn("token verification failed", "error", err)
		return Expert{}, ErrInvalidToken
	}

	var claims tokenClaims
	if err := token.Claims(&claims); err != nil {
		return Expert{}, ErrInvalidToken
	}

	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	if name == "" {
		name = claims.Subject
	}

	return Expert{ID: claims.Subject, DisplayName: name}, nil
}
