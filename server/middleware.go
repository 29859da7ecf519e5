package server

import (
	"fmt"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/services/jwt"
)

func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var userID uint
		switch v := accessClaims["id"].(type) {
		case float64:
			userID = uint(v)
		default:
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("invalid userID format", http.StatusBadRequest))
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			if errs.Is(err, errs.ErrUserNotFound) {
				respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
				return
			}
			respondAndAbort(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Next()
	}
}

// submitRateLimit throttles report submissions per user. Backed by redis
// when configured so the limit holds across replicas, in-memory otherwise.
func (s *Server) submitRateLimit() gin.HandlerFunc {
	var store ratelimit.Store
	if s.Config.RedisAddr != "" {
		store = ratelimit.RedisStore(&ratelimit.RedisOptions{
			RedisClient: redis.NewClient(&redis.Options{Addr: s.Config.RedisAddr}),
			Rate:        time.Minute,
			Limit:       10,
		})
	} else {
		store = ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  time.Minute,
			Limit: 10,
		})
	}

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			msg := fmt.Sprintf("too many submissions, retry at %s", info.ResetTime.Format(time.RFC3339))
			respondAndAbort(c, msg, http.StatusTooManyRequests, nil, errs.ErrQuotaExceeded)
		},
		KeyFunc: func(c *gin.Context) string {
			if userID, ok := c.Get("userID"); ok {
				return fmt.Sprintf("user:%v", userID)
			}
			return c.ClientIP()
		},
	})
}

// currentUserID reads the authenticated user id set by Authorize.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := v.(uint)
	return userID, ok
}

// getTokenFromHeader returns the token string in the authorization header
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 8 {
		return authHeader[7:]
	}
	return ""
}
