// Package tenant resolves the store a request acts for and carries it in the
// request context.
package tenant

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/render"
)

// Header carries the store identifier on requests from the browser client.
const Header = "X-Store-ID"

type ctxKey struct{}

// store is the resolved tenant. verified is set only when a signed token
// named it; header and body identifiers are taken on trust.
type store struct {
	id       uuid.UUID
	verified bool
}

// TokenParser extracts a store identifier from a bearer token.
type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

// WithStore returns a copy of ctx that carries storeID as an unverified
// identifier, as sent in the X-Store-ID header.
func WithStore(ctx context.Context, storeID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, store{id: storeID})
}

// WithVerifiedStore returns a copy of ctx that carries storeID taken from a
// signed token. Request bodies cannot override it.
func WithVerifiedStore(ctx context.Context, storeID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, store{id: storeID, verified: true})
}

// StoreFrom returns the store carried by ctx, if any.
func StoreFrom(ctx context.Context) (uuid.UUID, bool) {
	s, ok := ctx.Value(ctxKey{}).(store)
	return s.id, ok && s.id != uuid.Nil
}

// Verified reports whether the store in ctx came from a signed token.
func Verified(ctx context.Context) bool {
	s, ok := ctx.Value(ctxKey{}).(store)
	return ok && s.verified && s.id != uuid.Nil
}

// Middleware resolves the store from an Authorization bearer token or, when
// there is no valid token, from the X-Store-ID header. A header naming a
// different store than a valid token is rejected with 403. Requests without
// either pass through without a store; RequireStore or Resolve decide what
// that means.
func Middleware(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header, hasHeader := fromHeader(r)
			if id, ok := fromToken(r, tokens); ok {
				if hasHeader && header != id {
					render.Error(w, errMismatch)
					return
				}
				r = r.WithContext(WithVerifiedStore(r.Context(), id))
			} else if hasHeader {
				r = r.WithContext(WithStore(r.Context(), header))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func fromHeader(r *http.Request) (uuid.UUID, bool) {
	raw := strings.TrimSpace(r.Header.Get(Header))
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	return id, err == nil && id != uuid.Nil
}

func fromToken(r *http.Request, tokens TokenParser) (uuid.UUID, bool) {
	if tokens == nil {
		return uuid.Nil, false
	}
	bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || bearer == "" {
		return uuid.Nil, false
	}
	id, err := tokens.Parse(bearer)
	return id, err == nil && id != uuid.Nil
}

// RequireStore rejects requests without a store: 401 for reads, 403 for writes.
func RequireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := StoreFrom(r.Context()); !ok {
			render.Error(w, missingError(r.Method))
			return
		}
		next.ServeHTTP(w, r)
	})
}

var errMismatch = fmt.Errorf("%w: store id does not match the session", apperror.ErrForbidden)

// Resolve picks the store for a write. An explicit id from the request body
// wins over an X-Store-ID header, but must equal a store taken from a signed
// token. It fails with apperror.ErrForbidden when no valid identifier is
// found or the body contradicts the token.
func Resolve(ctx context.Context, explicit string) (uuid.UUID, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		id, err := uuid.Parse(explicit)
		if err != nil || id == uuid.Nil {
			return uuid.Nil, fmt.Errorf("%w: invalid store id", apperror.ErrForbidden)
		}
		if current, ok := StoreFrom(ctx); ok && Verified(ctx) && current != id {
			return uuid.Nil, errMismatch
		}
		return id, nil
	}
	if id, ok := StoreFrom(ctx); ok {
		return id, nil
	}
	return uuid.Nil, fmt.Errorf("%w: no store context", apperror.ErrForbidden)
}

func missingError(method string) error {
	if method == http.MethodGet || method == http.MethodHead {
		return fmt.Errorf("%w: no store context", apperror.ErrUnauthorized)
	}
	return fmt.Errorf("%w: no store context", apperror.ErrForbidden)
}
