package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/http/middleware"
	"taskboard/internal/logger"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

const invalidLoginMessage = "Please enter a correct username and password. Note that both fields may be case-sensitive."

func (h *Handler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"PageTitle": "Login",
		"Next":      safeNext(c.Query("next")),
	})
}

func (h *Handler) Login(c *gin.Context) {
	next := safeNext(c.Query("next"))

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLoginError(c, form.Username, next)
		return
	}

	user, err := h.Auth.Authenticate(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		h.renderLoginError(c, form.Username, next)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.startSession(c, user); err != nil {
		h.fail(c, err)
		return
	}
	if next == "" {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

// Logout revokes the session and always lands on the login page.
func (h *Handler) Logout(c *gin.Context) {
	if claims := middleware.SessionClaims(c); claims != nil {
		if err := h.Revoker.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			logger.Warn("failed to revoke session", "error", err)
		}
		logger.WithContext(c.Request.Context()).Info("user logged out")
	}

	h.clearSession(c)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

func (h *Handler) RegisterForm(c *gin.Context) {
	renderRegister(c, "", nil)
}

// Register creates the account and signs the new user straight in.
func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		renderRegister(c, form.Username, fieldErrors(err))
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), service.RegisterInput{
		Username:  strings.TrimSpace(form.Username),
		Password1: form.Password1,
		Password2: form.Password2,
	})
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		renderRegister(c, form.Username, ve.Fields)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.startSession(c, user); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) startSession(c *gin.Context, user *domain.User) error {
	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(service.SessionTTL()/time.Second), "/", "", h.CookieSecure, true)
	return nil
}

func (h *Handler) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.CookieSecure, true)
}

func (h *Handler) renderLoginError(c *gin.Context, username, next string) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"PageTitle": "Login",
		"Error":     invalidLoginMessage,
		"Username":  username,
		"Next":      next,
	})
}

func renderRegister(c *gin.Context, username string, errs map[string]string) {
	if errs == nil {
		errs = map[string]string{}
	}
	c.HTML(http.StatusOK, "register.tmpl", gin.H{
		"PageTitle": "Register",
		"Username":  username,
		"Errors":    errs,
	})
}

// safeNext only allows local absolute paths as post-login redirect targets.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}
