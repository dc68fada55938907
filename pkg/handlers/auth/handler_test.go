package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/dashboard/pkg/models/domain"
	"github.com/de-tools/dashboard/pkg/services/auth"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (auth.Token, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(auth.Token), args.Error(1)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func TestLogin(t *testing.T) {
	expiresAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		setupMock      func(*mockAuthService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "valid credentials",
			body: `{"username":"admin","password":"s3cret"}`,
			setupMock: func(m *mockAuthService) {
				m.On("Login", mock.Anything, "admin", "s3cret").
					Return(auth.Token{Value: "abc", ExpiresAt: expiresAt}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"data":{"token":"abc","expiresAt":"2026-01-02T03:04:05Z"}}`,
		},
		{
			name: "invalid credentials",
			body: `{"username":"admin","password":"nope"}`,
			setupMock: func(m *mockAuthService) {
				m.On("Login", mock.Anything, "admin", "nope").
					Return(auth.Token{}, domain.ErrUnauthorized)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success":false,"data":"Invalid credentials"}`,
		},
		{
			name: "signing failure",
			body: `{"username":"admin","password":"s3cret"}`,
			setupMock: func(m *mockAuthService) {
				m.On("Login", mock.Anything, "admin", "s3cret").
					Return(auth.Token{}, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"data":"Server Error"}`,
		},
		{
			name:           "malformed body",
			body:           `not json`,
			setupMock:      func(*mockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"data":"Invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAuthService)
			tt.setupMock(svc)
			h := NewHandler(svc)

			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestValidate(t *testing.T) {
	h := NewHandler(new(mockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/validate", nil)
	req = req.WithContext(auth.WithPrincipal(req.Context(), "admin"))
	rec := httptest.NewRecorder()
	h.Validate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "admin", resp.Data["username"])

	rec = httptest.NewRecorder()
	h.Validate(rec, httptest.NewRequest(http.MethodGet, "/api/auth/validate", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
