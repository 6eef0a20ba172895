package handler_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/AlexZinkM/qsafe-wallet/internal/api"
	"github.com/AlexZinkM/qsafe-wallet/internal/credstore"
	"github.com/AlexZinkM/qsafe-wallet/internal/crypto"
	"github.com/AlexZinkM/qsafe-wallet/internal/handler"
	"github.com/AlexZinkM/qsafe-wallet/internal/keys"
	"github.com/AlexZinkM/qsafe-wallet/internal/metrics"
	"github.com/AlexZinkM/qsafe-wallet/internal/model"
	"github.com/AlexZinkM/qsafe-wallet/internal/session"
	"github.com/AlexZinkM/qsafe-wallet/internal/storage"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	log := zaptest.NewLogger(t)
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	store := credstore.New(storage.NewMemory(),
		credstore.WithLogger(log),
		credstore.WithMetrics(m),
		credstore.WithParams(crypto.Params{N: 1 << 4, R: 8, P: 1}),
	)
	s := session.New(store, session.WithLogger(log), session.WithMetrics(m))
	h, err := handler.NewWalletHandler(s, log)
	require.NoError(t, err)
	return api.SetupRouter(h, reg)
}

func do(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestCreateUnlockFlow(t *testing.T) {
	require := require.New(t)
	srv := newServer(t)

	rec := do(t, srv, http.MethodPost, "/wallet/create", model.PasswordRequest{Password: "Secret123!"})
	require.Equal(http.StatusOK, rec.Code)
	created := decode[model.GenerateResponse](t, rec)
	require.True(created.Success)
	require.Len(strings.Fields(created.Mnemonic), 12)
	require.NoError(keys.ValidateAddress(created.Address))

	rec = do(t, srv, http.MethodPost, "/wallet/lock", nil)
	require.Equal(http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/wallet/status", nil)
	status := decode[model.StatusResponse](t, rec)
	require.True(status.HasWallet)
	require.False(status.IsUnlocked)
	require.Equal("locked", status.State)
	require.Equal(created.Address, status.Meta.Address)
	require.Equal(3, status.AttemptsRemaining)

	rec = do(t, srv, http.MethodPost, "/wallet/unlock", model.PasswordRequest{Password: "Secret123!"})
	require.Equal(http.StatusOK, rec.Code)
	unlocked := decode[model.UnlockResponse](t, rec)
	require.Equal(created.Address, unlocked.Address)
}

func TestUnlockFailuresAndBan(t *testing.T) {
	require := require.New(t)
	srv := newServer(t)
	do(t, srv, http.MethodPost, "/wallet/create", model.PasswordRequest{Password: "Secret123!"})
	do(t, srv, http.MethodPost, "/wallet/lock", nil)

	rec := do(t, srv, http.MethodPost, "/wallet/unlock", model.PasswordRequest{Password: "wrong"})
	require.Equal(http.StatusUnauthorized, rec.Code)
	failed := decode[model.ErrorResponse](t, rec)
	require.Equal(model.CodeDecryptionFailed, failed.Code)
	require.Equal(2, *failed.AttemptsRemaining)
	require.Nil(failed.Ban)

	do(t, srv, http.MethodPost, "/wallet/unlock", model.PasswordRequest{Password: "wrong"})
	rec = do(t, srv, http.MethodPost, "/wallet/unlock", model.PasswordRequest{Password: "wrong"})
	require.Equal(http.StatusUnauthorized, rec.Code)
	failed = decode[model.ErrorResponse](t, rec)
	require.Equal(0, *failed.AttemptsRemaining)
	require.NotNil(failed.Ban)

	rec = do(t, srv, http.MethodPost, "/wallet/unlock", model.PasswordRequest{Password: "Secret123!"})
	require.Equal(http.StatusLocked, rec.Code)
	banned := decode[model.ErrorResponse](t, rec)
	require.Equal(model.CodeBanned, banned.Code)
	require.Equal(3, banned.Ban.Attempts)
	require.Greater(banned.Ban.RemainingSeconds, 0)
	require.LessOrEqual(banned.Ban.RemainingSeconds, 15)

	rec = do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(http.StatusOK, rec.Code)
	require.Contains(rec.Body.String(), `qswallet_unlock_attempts_total{result="banned"} 1`)
}

func TestConcurrentUnlockKeepsOwnError(t *testing.T) {
	require := require.New(t)
	srv := newServer(t)
	do(t, srv, http.MethodPost, "/wallet/create", model.PasswordRequest{Password: "Secret123!"})
	do(t, srv, http.MethodPost, "/wallet/lock", nil)

	const n = 8
	unlocks := make([]*httptest.ResponseRecorder, n)
	var wg sync.WaitGroup
	for i := range n {
		unlocks[i] = httptest.NewRecorder()
		wg.Add(2)
		go func() {
			defer wg.Done()
			body := strings.NewReader(`{"password":"wrong"}`)
			srv.ServeHTTP(unlocks[i], httptest.NewRequest(http.MethodPost, "/wallet/unlock", body))
		}()
		go func() {
			defer wg.Done()
			srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/wallet/lock", nil))
		}()
	}
	wg.Wait()

	var failed, banned int
	for _, rec := range unlocks {
		resp := decode[model.ErrorResponse](t, rec)
		switch rec.Code {
		case http.StatusUnauthorized:
			failed++
			require.Equal(model.CodeDecryptionFailed, resp.Code)
			require.NotNil(resp.AttemptsRemaining)
		case http.StatusLocked:
			banned++
			require.Equal(model.CodeBanned, resp.Code)
			require.NotNil(resp.Ban)
			require.Greater(resp.Ban.RemainingSeconds, 0)
		default:
			t.Fatalf("unexpected status %d: %+v", rec.Code, resp)
		}
	}
	require.Equal(3, failed)
	require.Equal(n-3, banned)
}

func TestRestoreValidation(t *testing.T) {
	require := require.New(t)
	srv := newServer(t)

	rec := do(t, srv, http.MethodPost, "/wallet/restore", model.RestoreRequest{Mnemonic: "only two words", Password: "pw"})
	require.Equal(http.StatusBadRequest, rec.Code)
	resp := decode[model.ErrorResponse](t, rec)
	require.Equal(model.CodeInvalidMnemonic, resp.Code)
	require.Contains(resp.Error, "got 3")
	require.NotContains(resp.Error, "two words")

	phrase := "one two three four five six seven eight nine ten eleven twelve"
	rec = do(t, srv, http.MethodPost, "/wallet/restore", model.RestoreRequest{Mnemonic: phrase, Password: "NewPass1"})
	require.Equal(http.StatusOK, rec.Code)
	restored := decode[model.GenerateResponse](t, rec)
	require.Empty(restored.Mnemonic)

	rec = do(t, srv, http.MethodGet, "/wallet/status", nil)
	status := decode[model.StatusResponse](t, rec)
	require.True(status.Meta.HasBackup)
}

func TestSeedEndpoints(t *testing.T) {
	require := require.New(t)
	srv := newServer(t)
	rec := do(t, srv, http.MethodPost, "/wallet/create", model.PasswordRequest{Password: "pw"})
	words := strings.Fields(decode[model.GenerateResponse](t, rec).Mnemonic)

	rec = do(t, srv, http.MethodPost, "/wallet/seed/hide", nil)
	require.False(decode[model.SeedPhraseResponse](t, rec).Revealed)
	rec = do(t, srv, http.MethodGet, "/wallet/seed", nil)
	require.False(decode[model.SeedPhraseResponse](t, rec).Revealed)

	rec = do(t, srv, http.MethodPost, "/wallet/seed/show", nil)
	shown := decode[model.SeedPhraseResponse](t, rec)
	require.True(shown.Revealed)
	require.Equal(strings.Join(words, " "), shown.Mnemonic)

	rec = do(t, srv, http.MethodPost, "/wallet/seed/verify", model.VerifyWordRequest{Index: 3, Word: words[3]})
	require.True(decode[model.VerifyWordResponse](t, rec).Match)
	rec = do(t, srv, http.MethodPost, "/wallet/seed/verify", model.VerifyWordRequest{Index: 30, Word: words[3]})
	require.False(decode[model.VerifyWordResponse](t, rec).Match)

	rec = do(t, srv, http.MethodPost, "/wallet/seed/confirm", nil)
	require.Equal(http.StatusOK, rec.Code)
	rec = do(t, srv, http.MethodGet, "/wallet/seed", nil)
	require.False(decode[model.SeedPhraseResponse](t, rec).Revealed)

	do(t, srv, http.MethodPost, "/wallet/lock", nil)
	rec = do(t, srv, http.MethodPost, "/wallet/seed/confirm", nil)
	require.Equal(http.StatusForbidden, rec.Code)
	require.Equal(model.CodeLocked, decode[model.ErrorResponse](t, rec).Code)
}

func TestSignAndQR(t *testing.T) {
	require := require.New(t)
	srv := newServer(t)

	rec := do(t, srv, http.MethodGet, "/wallet/address/qr", nil)
	require.Equal(http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodPost, "/wallet/create", model.PasswordRequest{Password: "pw"})
	address := decode[model.GenerateResponse](t, rec).Address

	rec = do(t, srv, http.MethodPost, "/wallet/sign", model.SignRequest{Message: "hello"})
	require.Equal(http.StatusOK, rec.Code)
	signed := decode[model.SignResponse](t, rec)
	pub, err := base64.StdEncoding.DecodeString(signed.PublicKey)
	require.NoError(err)
	sig, err := base64.StdEncoding.DecodeString(signed.Signature)
	require.NoError(err)
	require.True(keys.Verify(pub, []byte("hello"), sig))
	require.Equal(address, keys.Address(pub))

	rec = do(t, srv, http.MethodGet, "/wallet/address/qr", nil)
	require.Equal(http.StatusOK, rec.Code)
	qr := decode[model.AddressQRResponse](t, rec)
	require.Equal(address, qr.Address)
	png, err := base64.StdEncoding.DecodeString(qr.QR)
	require.NoError(err)
	require.True(bytes.HasPrefix(png, []byte("\x89PNG")))

	do(t, srv, http.MethodPost, "/wallet/lock", nil)
	rec = do(t, srv, http.MethodPost, "/wallet/sign", model.SignRequest{Message: "hello"})
	require.Equal(http.StatusForbidden, rec.Code)
}

func TestChangePasswordAndDelete(t *testing.T) {
	require := require.New(t)
	srv := newServer(t)
	do(t, srv, http.MethodPost, "/wallet/create", model.PasswordRequest{Password: "old"})

	rec := do(t, srv, http.MethodPost, "/wallet/password", model.ChangePasswordRequest{OldPassword: "old", NewPassword: "new"})
	require.Equal(http.StatusOK, rec.Code)

	do(t, srv, http.MethodPost, "/wallet/lock", nil)
	rec = do(t, srv, http.MethodPost, "/wallet/unlock", model.PasswordRequest{Password: "new"})
	require.Equal(http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodPost, "/wallet/delete", nil)
	require.Equal(http.StatusOK, rec.Code)
	rec = do(t, srv, http.MethodPost, "/wallet/unlock", model.PasswordRequest{Password: "new"})
	require.Equal(http.StatusNotFound, rec.Code)
	require.Equal(model.CodeNoWallet, decode[model.ErrorResponse](t, rec).Code)
}

func TestBadRequests(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodGet, "/wallet/create", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/wallet/unlock", strings.NewReader("{")))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/wallet/create", model.PasswordRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewWalletHandlerRequiresSession(t *testing.T) {
	_, err := handler.NewWalletHandler(nil, nil)
	require.Error(t, err)
}
