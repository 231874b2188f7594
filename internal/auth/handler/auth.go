package handler

import (
	"crypto/subtle"
	"errors"
	"mockly-server/internal/apierrors"
	"mockly-server/internal/auth/processor"
	"mockly-server/internal/observability"
	"mockly-server/internal/store"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "session"

	sessionCookieMaxAge = int(7 * 24 * time.Hour / time.Second)

	contextKeyUser   = "User"
	contextKeyUserID = "User-ID"
)

type Handler struct {
	authProcessor processor.AuthProcessor
	secureCookie  bool
	logger        *observability.Logger
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func New(authProcessor processor.AuthProcessor, secureCookie bool, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, secureCookie: secureCookie, logger: logger}
}

func toUserResponse(u store.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func (h *Handler) HandleSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	user, err := h.authProcessor.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully. Please sign in.",
		"user":    toUserResponse(user),
	})
}

func (h *Handler) HandleSignin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	signedIn, err := h.authProcessor.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	h.setSessionCookie(c, signedIn.Token, sessionCookieMaxAge)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signed in successfully.",
		"user":    toUserResponse(signedIn.User),
	})
}

func (h *Handler) HandleSignout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleAuthStatus reports whether the request carries a valid session. It never fails.
func (h *Handler) HandleAuthStatus(c *gin.Context) {
	token := sessionToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	_, err := h.authProcessor.Authenticate(c.Request.Context(), token)
	c.JSON(http.StatusOK, gin.H{"authenticated": err == nil})
}

func (h *Handler) HandleSessionMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	token := sessionToken(c)
	if token == "" {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Authentication required"))
		c.Abort()
		return
	}

	user, err := h.authProcessor.Authenticate(ctx, token)
	if err != nil {
		if !errors.Is(err, processor.ErrFailedGetUser) {
			apierrors.RespondWithError(c, apierrors.Unauthorized("Invalid or expired session"))
		} else {
			apierrors.RespondWithError(c, err)
		}
		c.Abort()
		return
	}

	SetCurrentUser(c, user)
	c.Request = c.Request.WithContext(observability.WithFields(ctx, observability.Field{Key: "user_id", Value: user.ID}))
	c.Next()
}

// RequireSharedSecret rejects requests whose header does not carry secret.
// Server-to-server webhooks use it in place of a session.
func RequireSharedSecret(header, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(header)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			apierrors.RespondWithError(c, apierrors.Unauthorized("Invalid webhook secret"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *Handler) HandleGetCurrentUser(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		h.logger.Error(c.Request.Context(), "failed to get user from context", nil)
		apierrors.RespondWithError(c, apierrors.Unauthorized("Authentication required"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// SetCurrentUser stores the authenticated user on the request.
func SetCurrentUser(c *gin.Context, user store.User) {
	c.Set(contextKeyUser, user)
	c.Set(contextKeyUserID, user.ID.String())
}

// CurrentUser returns the user stored by HandleSessionMiddleware.
func CurrentUser(c *gin.Context) (store.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return store.User{}, false
	}
	user, ok := v.(store.User)
	return user, ok
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, value, maxAge, "/", "", h.secureCookie, true)
}
