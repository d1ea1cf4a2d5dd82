package httpserver

import (
	"bytes"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/abrilera/tangopulse/internal/cache"
	apperrors "github.com/abrilera/tangopulse/internal/errors"
)

// anonymousIdentity keys cache entries for requests without a user header.
const anonymousIdentity = "anonymous"

// cachedResponse is the stored form of a memoized handler result.
type cachedResponse struct {
	contentType string
	body        []byte
}

// cacheMiddleware memoizes successful GET responses under a key derived from
// method, route, acting identity and query parameters. Mutating handlers
// invalidate their resource patterns before responding, so readers may race
// an invalidation and see stale-but-recent data; that is accepted.
func (s *Server) cacheMiddleware(ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			identity, err := requestIdentity(c)
			if err != nil {
				return err
			}

			key := cache.Key(c.Request().Method, c.Request().URL.Path, identity, c.QueryParams())

			if value, ok := s.cache.Get(key); ok {
				s.metrics.Cache.Hits.Inc()
				resp := value.(cachedResponse)
				return c.Blob(http.StatusOK, resp.contentType, resp.body)
			}
			s.metrics.Cache.Misses.Inc()

			rec := &responseRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}

			if c.Response().Status == http.StatusOK {
				s.cache.Set(key, cachedResponse{
					contentType: c.Response().Header().Get(echo.HeaderContentType),
					body:        rec.buf.Bytes(),
				}, ttl)
			}
			s.metrics.Cache.Size.Set(float64(s.cache.Size()))

			return nil
		}
	}
}

// invalidateCached drops cached reads matching the pattern and records the count.
func (s *Server) invalidateCached(pattern string) {
	deleted := s.cache.Invalidate(pattern)
	if deleted > 0 {
		s.metrics.Cache.Invalidations.Add(float64(deleted))
		s.metrics.Cache.Size.Set(float64(s.cache.Size()))
	}
}

// requestIdentity resolves the acting identity from the X-User-ID header so
// two users never share a cache entry. A malformed header is rejected
// rather than folded into the anonymous identity.
func requestIdentity(c echo.Context) (string, error) {
	raw := c.Request().Header.Get("X-User-ID")
	if raw == "" {
		return anonymousIdentity, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.ValidationError("X-User-ID must be a valid UUID").WithField("x_user_id", raw)
	}
	return id.String(), nil
}

// responseRecorder tees the response body so it can be cached after the
// handler has written it.
type responseRecorder struct {
	http.ResponseWriter
	buf bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}
