package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finance/config"
	deliverycontext "finance/internal/delivery/context"
	"finance/internal/delivery/http/middleware"
	"finance/internal/delivery/http/response"
	"finance/internal/delivery/http/router"
	"finance/internal/delivery/http/router/handler"
	"finance/internal/domain/entity"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/infra/auth"
	"finance/internal/infra/persistence/memory"
	"finance/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	echo  *echo.Echo
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			SigningKey: "http-test-signing-key-0123456789abcdef",
			TokenTTL:   time.Minute,
			PBKDF2: config.PBKDF2Config{
				Iterations:          1000,
				SaltSizeBytes:       16,
				DerivedKeySizeBytes: 20,
			},
			SeedAccounts: []config.SeedAccount{
				{Username: "admin", Password: "admin", Role: 1},
				{Username: "user", Password: "user", Role: 0},
			},
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hasher, err := auth.NewPBKDF2Hasher(cfg)
	require.NoError(t, err)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	store := memory.NewStore()
	authUC := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:    store,
		AccountRepo:  store.AccountRepo(),
		Hasher:       hasher,
		TokenService: tokens,
		Config:       cfg,
		Logger:       logger,
	})
	require.NoError(t, authUC.SeedAccounts(t.Context()))

	txUC := impl.NewTransactionService(impl.TransactionServiceParams{
		TxManager: store,
		TxRepo:    store.TransactionRepo(),
		Logger:    logger,
	})

	e := NewEcho(cfg, logger, middleware.NewErrorMiddleware(logger))
	router.NewRouter(router.RouterParams{
		AccountHandler:     handler.NewAccountHandler(authUC),
		TransactionHandler: handler.NewTransactionHandler(txUC),
		AuthMiddleware:     middleware.NewAuthMiddleware(tokens, store.AccountRepo()),
	}).RegisterRoutes(e)

	return &testServer{echo: e, store: store}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var resp response.Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}

	return rec, resp
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	rec, resp := s.do(t, http.MethodPost, "/api/auth/login", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := resp.Data.(map[string]any)

	return data["token"].(string)
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestServer_Login(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]any)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, float64(1), data["role"])
}

func TestServer_LoginFailuresLookTheSame(t *testing.T) {
	s := newTestServer(t)

	recWrong, wrong := s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"nope"}`)
	recUnknown, unknown := s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"ghost","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, wrong.Message, unknown.Message)
	assert.Equal(t, "LOGIN_FAILED", wrong.Error.Code)
	assert.Equal(t, "LOGIN_FAILED", unknown.Error.Code)
}

func TestServer_LoginRequiresCredentials(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/auth/login", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_LoginCorruptCredentialsIsServerError(t *testing.T) {
	s := newTestServer(t)

	account := &entity.Account{Username: "broken", Role: entity.RoleUser}
	account.MarkCredentialsCorrupt(domainerrors.ErrCredentialDecode)
	require.NoError(t, s.store.AccountRepo().Create(t.Context(), account))

	rec, resp := s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"broken","password":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "CREDENTIAL_DECODE_FAILED", resp.Error.Code)
}

func TestServer_RegisterRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	body := `{"username":"carol","password":"pw","role":0}`

	rec, _ := s.do(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, resp := s.do(t, http.MethodPost, "/api/auth/register", s.login(t, "user", "user"), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	adminToken := s.login(t, "admin", "admin")
	rec, _ = s.do(t, http.MethodPost, "/api/auth/register", adminToken, body)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = s.do(t, http.MethodPost, "/api/auth/register", adminToken, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_USERNAME", resp.Error.Code)

	rec, resp = s.do(t, http.MethodPost, "/api/auth/register", adminToken, `{"username":"","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)

	s.login(t, "carol", "pw")
}

func TestServer_ListAccountsHidesSecrets(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/auth", s.login(t, "user", "user"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"username":"admin"`)
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "salt")
	assert.NotContains(t, body, "hash")
}

func TestServer_UpdateAndDeleteAccount(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin", "admin")

	rec, _ := s.do(t, http.MethodPut, "/api/auth", adminToken, `{"username":"user","password":"","role":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// still logs in with the old password, now as admin
	rec, resp := s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"user","password":"user"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), resp.Data.(map[string]any)["role"])

	rec, _ = s.do(t, http.MethodPut, "/api/auth", adminToken, `{"username":"ghost","role":0}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/auth/user", adminToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(t, http.MethodDelete, "/api/auth/user", adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_DemotedAdminLosesAccessBeforeTokenExpiry(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin", "admin")

	rec, _ := s.do(t, http.MethodPut, "/api/auth", adminToken, `{"username":"admin","role":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/auth/user", adminToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_InvalidToken(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/api/auth", "not.a.jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
}

func TestServer_TransactionsCRUD(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "user", "user")

	rec, _ := s.do(t, http.MethodGet, "/transactions", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, resp := s.do(t, http.MethodGet, "/transactions", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NO_TRANSACTIONS", resp.Error.Code)

	rec, resp = s.do(t, http.MethodPost, "/transactions", token, `{"type":1,"amountCents":1999,"date":"2024-07-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := resp.Data.(map[string]any)["id"].(string)

	rec, resp = s.do(t, http.MethodGet, "/transactions/"+id, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-07-01", resp.Data.(map[string]any)["date"])

	rec, _ = s.do(t, http.MethodPut, "/transactions", token, `{"id":"`+id+`","type":0,"amountCents":5000,"date":"2024-07-02"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, resp = s.do(t, http.MethodGet, "/transactions", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := resp.Data.([]any)
	require.Len(t, list, 1)
	assert.Equal(t, float64(5000), list[0].(map[string]any)["amountCents"])

	rec, _ = s.do(t, http.MethodDelete, "/transactions/"+id, token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, resp = s.do(t, http.MethodGet, "/transactions/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "TRANSACTION_NOT_FOUND", resp.Error.Code)
}

func TestServer_TransactionValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "user", "user")

	rec, _ := s.do(t, http.MethodPost, "/transactions", token, `{"type":1,"amountCents":0,"date":"2024-07-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/transactions", token, `{"type":3,"amountCents":10,"date":"2024-07-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/transactions", token, `{"type":0,"amountCents":10,"date":"07/01/2024"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/transactions/not-a-uuid", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
