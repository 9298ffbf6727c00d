package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/asgoh05/geuk-small-library/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestAuthentication(t *testing.T) {
	t.Parallel()
	secret := "secret"
	token, err := auth.NewToken([]byte(secret), auth.Principal{Email: "a@co.com", Name: "A"}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name      string
		cfg       auth.Config
		headers   map[string]string
		wantCode  int
		wantEmail string
	}{
		{
			name:      "bearer",
			cfg:       auth.Config{JWTSecret: secret},
			headers:   map[string]string{AuthorizationHeader: bearer + token},
			wantCode:  http.StatusOK,
			wantEmail: "a@co.com",
		},
		{
			name:     "bad bearer",
			cfg:      auth.Config{JWTSecret: secret},
			headers:  map[string]string{AuthorizationHeader: bearer + "garbage"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:      "trusted headers",
			cfg:       auth.Config{TrustHeaders: true},
			headers:   map[string]string{auth.XUserEmailHeader: " B@Co.com "},
			wantCode:  http.StatusOK,
			wantEmail: "b@co.com",
		},
		{
			name:     "untrusted headers",
			cfg:      auth.Config{JWTSecret: secret},
			headers:  map[string]string{auth.XUserEmailHeader: "b@co.com"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "nothing",
			cfg:      auth.Config{JWTSecret: secret},
			wantCode: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			e.GET("/", func(c echo.Context) error {
				p, err := auth.GetPrincipal(c.Request().Context())
				if err != nil {
					return err
				}
				return c.String(http.StatusOK, p.Email)
			}, Authentication(tt.cfg))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantEmail != "" {
				require.Equal(t, tt.wantEmail, rec.Body.String())
			}
		})
	}
}
