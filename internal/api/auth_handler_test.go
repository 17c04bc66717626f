package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/marketplace-api/internal/api/shared"
	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/mocks"
	"github.com/phrazzld/marketplace-api/internal/service"
	"github.com/phrazzld/marketplace-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	return &domain.User{
		ID:             "u1",
		Username:       "ann",
		Email:          "ann@example.com",
		HashedPassword: "$2a$10$hash",
		CreatedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		setup      func(m *userServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success normalizes identity",
			body: `{"username":" ann ","email":" Ann@Example.com ","password":"secret1"}`,
			setup: func(m *userServiceMock) {
				m.On("Register", mock.Anything, "ann", "ann@example.com", "secret1", "").Return(testUser(), nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "validation",
			body:       `{"email":"nope","password":"abc"}`,
			wantStatus: http.StatusBadRequest,
			wantBody: `{"errors":[
				{"field":"username","message":"Username is required"},
				{"field":"email","message":"Please include a valid email"},
				{"field":"password","message":"Password must be at least 6 characters"}]}`,
		},
		{
			name: "email taken",
			body: `{"username":"ann","email":"ann@example.com","password":"secret1"}`,
			setup: func(m *userServiceMock) {
				m.On("Register", mock.Anything, "ann", "ann@example.com", "secret1", "").
					Return(nil, service.NewUserServiceError("register", "email taken", store.ErrEmailExists))
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"message":"Email already exists"}`,
		},
		{
			name: "username taken",
			body: `{"username":"ann","email":"ann@example.com","password":"secret1"}`,
			setup: func(m *userServiceMock) {
				m.On("Register", mock.Anything, "ann", "ann@example.com", "secret1", "").
					Return(nil, store.ErrUsernameExists)
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"message":"Username already exists"}`,
		},
		{
			name:       "malformed",
			body:       `[`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Invalid request format"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &userServiceMock{}
			if tc.setup != nil {
				tc.setup(svc)
			}
			h := NewAuthHandler(svc, &mocks.MockJWTService{Token: "jwt-token"}, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			h.Register(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			svc.AssertExpectations(t)
			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rr.Body.String())
				return
			}

			var body AuthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, "jwt-token", body.Token)
			assert.Equal(t, "u1", body.User.ID)
			assert.NotContains(t, rr.Body.String(), "hash")
			assert.NotContains(t, rr.Body.String(), "password")
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		authErr    error
		tokenErr   error
		wantStatus int
		wantMsg    string
	}{
		{name: "success", body: `{"email":"ANN@example.com","password":"secret1"}`, wantStatus: http.StatusOK},
		{
			name:       "bad credentials",
			body:       `{"email":"ann@example.com","password":"wrong"}`,
			authErr:    service.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    shared.MsgInvalidCredentials,
		},
		{
			name:       "token failure",
			body:       `{"email":"ann@example.com","password":"secret1"}`,
			tokenErr:   errors.New("signing failed"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    shared.MsgServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &userServiceMock{}
			var user *domain.User
			if tc.authErr == nil {
				user = testUser()
			}
			svc.On("Authenticate", mock.Anything, "ann@example.com", mock.Anything).Return(user, tc.authErr)
			h := NewAuthHandler(svc, &mocks.MockJWTService{Token: "jwt-token", Err: tc.tokenErr}, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			h.Login(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			svc.AssertExpectations(t)
			if tc.wantMsg != "" {
				var body shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, tc.wantMsg, body.Message)
				return
			}

			var body AuthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, "jwt-token", body.Token)
		})
	}
}

func TestMe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		userID     string
		err        error
		wantStatus int
	}{
		{name: "profile", userID: "u1", wantStatus: http.StatusOK},
		{name: "no subject", wantStatus: http.StatusUnauthorized},
		{name: "deleted user", userID: "u1", err: store.ErrUserNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &userServiceMock{}
			if tc.userID != "" {
				var user *domain.User
				if tc.err == nil {
					user = testUser()
				}
				svc.On("GetUser", mock.Anything, tc.userID).Return(user, tc.err)
			}
			h := NewAuthHandler(svc, &mocks.MockJWTService{}, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tc.userID != "" {
				req = req.WithContext(shared.WithUserID(req.Context(), tc.userID))
			}
			rr := httptest.NewRecorder()
			h.Me(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			svc.AssertExpectations(t)
			if tc.wantStatus == http.StatusOK {
				var body UserResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, "ann", body.Username)
			}
		})
	}
}
