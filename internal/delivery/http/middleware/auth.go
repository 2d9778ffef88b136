package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token is expired")
)

// Cookies checked when no Authorization header is sent.
var tokenCookies = []string{"seller_token", "token"}

// Claims carry the caller identity. Roles map onto capabilities.
type Claims struct {
	ShopID string   `json:"shop_id,omitempty"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type actorKey struct{}

// ActorFrom returns the verified caller, or the zero Actor for anonymous requests.
func ActorFrom(ctx context.Context) domain.Actor {
	actor, _ := ctx.Value(actorKey{}).(domain.Actor)
	return actor
}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// UnauthorizedFunc writes the response for a missing or rejected token.
type UnauthorizedFunc func(w http.ResponseWriter, r *http.Request, err error)

type Authenticator struct {
	secret       []byte
	unauthorized UnauthorizedFunc
}

func NewAuthenticator(secret string, unauthorized UnauthorizedFunc) *Authenticator {
	if unauthorized == nil {
		unauthorized = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
	}
	return &Authenticator{secret: []byte(secret), unauthorized: unauthorized}
}

// Parse validates an HS256 token and builds the actor from its claims.
func (a *Authenticator) Parse(tokenString string) (domain.Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Actor{}, ErrTokenExpired
		}
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.Subject == "" {
		return domain.Actor{}, ErrTokenInvalid
	}

	actor := domain.Actor{UserID: claims.Subject, ShopID: claims.ShopID}
	for _, role := range claims.Roles {
		switch domain.Capability(role) {
		case domain.CapabilitySeller, domain.CapabilityAdmin:
			actor.Capabilities = append(actor.Capabilities, domain.Capability(role))
		}
	}
	return actor, nil
}

// Sign issues a token for claims. Used by tooling and tests.
func (a *Authenticator) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	for _, name := range tokenCookies {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

// Authenticate attaches the actor when a token is present. Requests without
// a token pass through anonymously; a bad token is rejected.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}
		actor, err := a.Parse(tokenString)
		if err != nil {
			a.unauthorized(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// RequireActor rejects anonymous requests.
func (a *Authenticator) RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFrom(r.Context()).UserID == "" {
			a.unauthorized(w, r, errors.New("authorization token is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
