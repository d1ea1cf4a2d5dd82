package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	apperrors "github.com/abrilera/tangopulse/internal/errors"
)

// idleClientExpiry is how long an idle client keeps its per-IP bucket.
const idleClientExpiry = 10 * time.Minute

// newRateLimiter throttles inbound clients per IP. This is a different
// concern from the provider token-bucket limiter, which meters outbound
// AI calls; the two never share state. Denials surface as structured
// rate-limited errors so they carry the same JSON shape as every other
// error on the API.
func newRateLimiter(ratePerSecond float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(ratePerSecond),
			Burst:     burst,
			ExpiresIn: idleClientExpiry,
		},
	)
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.InternalError("failed to identify client", err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return apperrors.RateLimitedError("too many requests").WithField("client", identifier)
		},
	})
}
