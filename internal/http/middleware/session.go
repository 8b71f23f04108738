package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	LoginPath     = "/login/"

	userKey   = "user"
	claimsKey = "session_claims"
)

// UserResolver turns a session's user id into the user row.
type UserResolver interface {
	CurrentUser(ctx context.Context, userID int64) (*domain.User, error)
}

// Session resolves the session cookie into the current user. Requests
// without a valid, unrevoked session simply carry no user; RequireLogin
// decides what to do with them.
func Session(users UserResolver, revoker service.SessionRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := service.ParseJWT(token)
		if err != nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		revoked, err := revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			logger.Warn("session revocation check failed", "error", err)
		}
		if revoked {
			c.Next()
			return
		}

		userID, _ := claims.UserID()
		user, err := users.CurrentUser(ctx, userID)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthenticated) {
				logger.Error("failed to load session user", "error", err, "user_id", userID)
			}
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Set(claimsKey, claims)
		c.Set("user_id", user.ID)
		c.Request = c.Request.WithContext(context.WithValue(ctx, logger.UserIDKey, user.ID))
		c.Next()
	}
}

// RequireLogin redirects anonymous requests to the login page, remembering where they were going.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectAuthenticated sends signed-in users to target, for the login and register pages.
func RedirectAuthenticated(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by Session, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// SessionClaims returns the claims of the current session, or nil.
func SessionClaims(c *gin.Context) *service.SessionClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.SessionClaims)
	return claims
}
