package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/database/dbtest"
	"github.com/georgemunganga/retailos/internal/modules/auth"
	"github.com/georgemunganga/retailos/internal/modules/user"
)

func TestIssuerRoundTrip(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	store := uuid.New()

	token, err := issuer.Issue(store)
	require.NoError(t, err)

	got, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, store, got)

	_, err = auth.NewIssuer("other-secret", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestIssuerRejectsExpired(t *testing.T) {
	issuer := auth.NewIssuer("secret", -time.Minute)
	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func newAuth(t *testing.T) (auth.Service, *auth.Issuer) {
	db, _ := dbtest.Open(t)
	issuer := auth.NewIssuer("secret", time.Hour)
	return auth.NewService(user.NewService(user.NewSQLRepository(db)), issuer), issuer
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, issuer := newAuth(t)

	reg, err := svc.Register(ctx, user.RegisterRequest{Login: "shop", Password: "pass1", StoreName: "Shop"})
	require.NoError(t, err)
	assert.Equal(t, "Shop", reg.User.StoreName)

	sess, err := svc.Login(ctx, "shop", "pass1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.StoreID, sess.User.StoreID)

	subject, err := issuer.Parse(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.StoreID, subject)

	_, err = svc.Login(ctx, "shop", "nope")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestHandlerLoginFailureIs401(t *testing.T) {
	svc, _ := newAuth(t)
	router := chi.NewRouter()
	auth.NewHandler(svc).RegisterRoutes(router)

	body, _ := json.Marshal(auth.LoginRequest{Login: "ghost", Password: "x"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/stores/login", bytes.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid login or password")
}
