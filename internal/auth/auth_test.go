package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bartab/internal/auth"
)

func TestService_LoginVerify(t *testing.T) {
	svc := auth.NewService("1234", "test-secret")

	type testCase struct {
		name    string
		pin     string
		wantErr error
	}

	tests := []testCase{
		{name: "CorrectPIN", pin: "1234"},
		{name: "WrongPIN", pin: "0000", wantErr: auth.ErrInvalidPIN},
		{name: "EmptyPIN", pin: "", wantErr: auth.ErrInvalidPIN},
		{name: "PINWithExtraDigit", pin: "12345", wantErr: auth.ErrInvalidPIN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Login(tt.pin)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)

				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, token)
			assert.NoError(t, svc.Verify(token))
		})
	}
}

func TestService_VerifyRejectsForeignToken(t *testing.T) {
	svc := auth.NewService("1234", "test-secret")
	other := auth.NewService("1234", "other-secret")

	token, err := other.Login("1234")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Verify(token), auth.ErrUnauthorized)
}

func TestService_VerifyRejectsGarbage(t *testing.T) {
	svc := auth.NewService("1234", "test-secret")

	assert.ErrorIs(t, svc.Verify("not-a-token"), auth.ErrUnauthorized)
}

func TestService_AdminOnly(t *testing.T) {
	svc := auth.NewService("1234", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := svc.AdminOnly(next)

	t.Run("MissingCookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "junk"})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidCookie", func(t *testing.T) {
		token, err := svc.Login("1234")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
