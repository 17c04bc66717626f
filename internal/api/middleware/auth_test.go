package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/marketplace-api/internal/api/shared"
	"github.com/phrazzld/marketplace-api/internal/mocks"
	"github.com/phrazzld/marketplace-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		header        string
		validateErr   error
		wantStatus    int
		wantMessage   string
		wantValidated string
	}{
		{
			name:        "missing header",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: shared.MsgNoToken,
		},
		{
			name:        "scheme without token",
			header:      "Bearer",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: shared.MsgNoToken,
		},
		{
			name:        "scheme with blank token",
			header:      "Bearer   ",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: shared.MsgNoToken,
		},
		{
			name:        "other scheme",
			header:      "Basic dXNlcjpwYXNz",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: shared.MsgNoToken,
		},
		{
			name:          "expired token",
			header:        "Bearer expired",
			validateErr:   auth.ErrExpiredToken,
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   shared.MsgTokenInvalid,
			wantValidated: "expired",
		},
		{
			name:          "malformed token",
			header:        "Bearer not-a-jwt",
			validateErr:   auth.ErrInvalidToken,
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   shared.MsgTokenInvalid,
			wantValidated: "not-a-jwt",
		},
		{
			name:          "wrong token type",
			header:        "Bearer refresh",
			validateErr:   auth.ErrWrongTokenType,
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   shared.MsgTokenInvalid,
			wantValidated: "refresh",
		},
		{
			name:          "valid token",
			header:        "Bearer good",
			wantStatus:    http.StatusOK,
			wantValidated: "good",
		},
		{
			name:          "lowercase scheme",
			header:        "bearer good",
			wantStatus:    http.StatusOK,
			wantValidated: "good",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jwtSvc := &mocks.MockJWTService{
				Claims:      &auth.Claims{UserID: "u1"},
				ValidateErr: tc.validateErr,
			}
			mw := NewAuthMiddleware(jwtSvc)

			var seenUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenUser, _ = GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantValidated, jwtSvc.ValidateCalledWith)

			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, "u1", seenUser)
				return
			}

			assert.Empty(t, seenUser)
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMessage, body.Message)
		})
	}
}

func TestGetUserID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req)
	assert.False(t, ok)

	req = req.WithContext(shared.WithUserID(context.Background(), "u9"))
	id, ok := GetUserID(req)
	assert.True(t, ok)
	assert.Equal(t, "u9", id)
}
