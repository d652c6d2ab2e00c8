package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"roomstack/shared"
	"roomstack/shared/cache"
	"roomstack/shared/constant"
	"roomstack/transport/http/response"
)

const unknownAgent = "unknown"

// RateLimit counts requests per client host and user agent in a fixed redis window. The client
// host is read from RemoteAddr, so chi's RealIP must run first behind a proxy. Requests are let
// through when redis is unreachable.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limits := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limits.Enable {
				next.ServeHTTP(w, r)

				return
			}

			agent := r.Header.Get(constant.RequestHeaderUserAgent)
			if agent == "" {
				agent = unknownAgent
			}

			key := shared.BuildCacheKey(constant.CacheKeyRateLimit, clientHost(r.RemoteAddr), agent)

			count, err := a.hit(r.Context(), key, limits.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			if count > limits.MaxRequests {
				response.WithRequestLimitExceeded(w)

				return
			}

			header := w.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limits.MaxRequests-count)))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			next.ServeHTTP(w, r)
		})
	}
}

// hit returns the request count for key including the current request. A rejected request is
// not written back, so the window is not extended while a client stays over the limit.
func (a *appMiddleware) hit(ctx context.Context, key string, window int) (int, error) {
	var count int

	err := a.cache.Get(ctx, key, &count)
	if err != nil && !errors.Is(err, cache.Nil) {
		return 0, err
	}

	count++

	if count > a.config.App.RateLimiter.MaxRequests {
		return count, nil
	}

	if err = a.cache.Save(ctx, key, count, window); err != nil {
		return 0, err
	}

	return count, nil
}

func clientHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}

	return host
}
