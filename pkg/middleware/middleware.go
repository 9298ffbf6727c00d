package middleware

import (
	"net/http"
	"strings"

	"github.com/asgoh05/geuk-small-library/pkg/auth"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

const (
	AuthorizationHeader = "Authorization"
	bearer              = "Bearer "
)

// Authentication puts the caller's principal into the request context. A
// bearer token wins over gateway headers, which are read only when trusted.
func Authentication(cfg auth.Config) echo.MiddlewareFunc {
	secret := []byte(cfg.JWTSecret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			var (
				p   auth.Principal
				err error
			)
			switch authorization := req.Header.Get(AuthorizationHeader); {
			case authorization != "":
				if !strings.HasPrefix(authorization, bearer) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization Header")
				}
				if len(secret) == 0 {
					return echo.NewHTTPError(http.StatusUnauthorized, "bearer tokens are not accepted")
				}
				p, err = auth.ParseToken(secret, strings.TrimPrefix(authorization, bearer))
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "JwtAccessDenied")
				}
			case cfg.TrustHeaders && req.Header.Get(auth.XUserEmailHeader) != "":
				p = auth.Principal{
					Subject: req.Header.Get(auth.XUserSubHeader),
					Email:   strings.ToLower(strings.TrimSpace(req.Header.Get(auth.XUserEmailHeader))),
					Name:    req.Header.Get(auth.XUserNameHeader),
				}
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "No Authorization Header")
			}

			c.SetRequest(req.WithContext(auth.SetAuthContext(req.Context(), p)))
			return next(c)
		}
	}
}

func NewRateLimiter(rps rate.Limit) echo.MiddlewareFunc {
	return echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(rps))
}

func RequestLoggerConfig(log *zap.Logger) echomw.RequestLoggerConfig {
	log = log.Named("echo")
	return echomw.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
				if v.Status < http.StatusInternalServerError {
					level = zapcore.WarnLevel
				}
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
}
