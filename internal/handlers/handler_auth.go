package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
	"github.com/SscSPs/personal_finance_tracker/internal/middleware"
	"github.com/SscSPs/personal_finance_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const defaultLoginRateLimit = "5-M"

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService    portssvc.UserSvcFacade
	sessionService portssvc.SessionSvcFacade
	cookieName     string
	secureCookie   bool
	isProduction   bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ss portssvc.SessionSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:    us,
		sessionService: ss,
		cookieName:     cfg.SessionCookieName,
		secureCookie:   cfg.IsProduction,
		isProduction:   cfg.IsProduction,
	}
}

// newLoginLimiter builds the per-IP limiter guarding POST /login.
func newLoginLimiter(formatted string) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		slog.Warn("Invalid LOGIN_RATE_LIMIT, using default", slog.String("value", formatted), slog.String("default", defaultLoginRateLimit))
		rate, _ = limiter.NewRateFromFormatted(defaultLoginRateLimit)
	}
	return limiter.New(memory.NewStore(), rate)
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, h *AuthHandler) {
	limitMiddleware := middleware.RateLimit(newLoginLimiter(cfg.LoginRateLimit), h.loginRateLimited)

	r.GET("/login", h.showLogin)
	r.GET("/register", h.showRegister)
	r.POST("/register", h.register)
	r.POST("/login", limitMiddleware, h.login)
	r.GET("/logout", h.logout)
}

// wantsJSON reports whether the caller should get JSON rather than a redirect.
func wantsJSON(c *gin.Context) bool {
	if c.ContentType() == gin.MIMEJSON {
		return true
	}
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func (h *AuthHandler) showLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Flashes": popFlashes(c)})
}

func (h *AuthHandler) showRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Flashes": popFlashes(c)})
}

// register godoc
// @Summary Register a new user
// @Description Creates an account. Form callers are redirected with a flash message; JSON callers get the created user.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param user body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Missing fields or passwords do not match"
// @Failure 409 {object} ErrorResponse "Username or email already taken"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /register [post]
func (h *AuthHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind registration request", slog.String("error", err.Error()))
		h.registerFailed(c, apperrors.ErrValidation, "Invalid request format")
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		logServiceError(logger, "Registration failed", err)
		h.registerFailed(c, err, registrationMessage(err, h.isProduction))
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusCreated, dto.ToUserResponse(user))
		return
	}
	addFlash(c, flashSuccess, "Registration successful! Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) registerFailed(c *gin.Context, err error, message string) {
	if wantsJSON(c) {
		c.JSON(errorStatus(err), ErrorResponse{Error: message})
		return
	}
	addFlash(c, flashError, message)
	c.Redirect(http.StatusFound, "/register")
}

func registrationMessage(err error, isProduction bool) string {
	switch {
	case errors.Is(err, apperrors.ErrDuplicate):
		return trimSentinel(err, apperrors.ErrDuplicate)
	case errors.Is(err, apperrors.ErrValidation):
		return trimSentinel(err, apperrors.ErrValidation)
	default:
		return errorMessage(err, isProduction)
	}
}

// trimSentinel drops the "<sentinel>: " prefix of an error wrapped as "%w: detail".
func trimSentinel(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// login godoc
// @Summary Log in
// @Description Verifies credentials and starts a session. Form callers get a session cookie and a redirect to the dashboard; JSON callers also get the token.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param credentials body dto.LoginRequest true "User credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Username and password are required"
// @Failure 401 {object} ErrorResponse "Invalid username or password"
// @Failure 429 {object} ErrorResponse "Too many login attempts"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /login [post]
func (h *AuthHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind login request", slog.String("error", err.Error()))
		h.loginFailed(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logServiceError(logger, "Login failed", err)
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			h.loginFailed(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.loginFailed(c, errorStatus(err), errorMessage(err, h.isProduction))
		return
	}

	token, expiresAt, err := h.sessionService.StartSession(c.Request.Context(), user)
	if err != nil {
		logServiceError(logger, "Failed to start session", err)
		h.loginFailed(c, http.StatusInternalServerError, errorMessage(err, h.isProduction))
		return
	}

	h.setSessionCookie(c, token, expiresAt)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) loginFailed(c *gin.Context, status int, message string) {
	if wantsJSON(c) {
		c.JSON(status, ErrorResponse{Error: message})
		return
	}
	addFlash(c, flashError, message)
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) loginRateLimited(c *gin.Context) {
	h.loginFailed(c, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
}

// logout godoc
// @Summary Log out
// @Description Ends the current session and clears the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /logout [get]
func (h *AuthHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	if token := middleware.SessionToken(c, h.cookieName); token != "" {
		if err := h.sessionService.EndSession(c.Request.Context(), token); err != nil {
			logger.Error("Failed to end session", slog.String("error", err.Error()))
		}
	}
	h.clearSessionCookie(c)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
		return
	}
	addFlash(c, flashInfo, "You have been logged out.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, maxAge, "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
}
