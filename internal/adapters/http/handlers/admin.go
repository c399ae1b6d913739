package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	httpapi "github.com/basedfin/quotecast/internal/adapters/http"
	"github.com/basedfin/quotecast/internal/adapters/http/dto"
	"github.com/basedfin/quotecast/internal/app"
	"github.com/basedfin/quotecast/internal/domain"
)

// AdminHandler serves the password-gated quote curation panel.
//
// Authentication is a two-step contract: POST /admin/session exchanges the
// admin password for an opaque session token, and every other admin route
// requires that token as a Bearer credential. Closing the session (or
// restarting the process) invalidates the token; the next panel open must
// authenticate again.
type AdminHandler struct {
	sessions *app.SessionManager
	library  *app.Library
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(sessions *app.SessionManager, library *app.Library) *AdminHandler {
	return &AdminHandler{
		sessions: sessions,
		library:  library,
	}
}

// OpenSession handles POST /api/v1/admin/session
// Exchanges the admin password for a session token. A wrong password
// yields 401 and no session.
func (h *AdminHandler) OpenSession(c *gin.Context) {
	var req dto.UnlockRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindingError(c, err)
		return
	}

	token, err := h.sessions.Unlock(c.Request.Context(), req.Password)
	if err != nil {
		// The wrong password is reported as unauthorized, not as a
		// malformed request.
		if domain.IsValidation(err) {
			httpapi.RespondWithErrorCode(c, dto.ErrorCodeUnauthorized, "incorrect password")
			return
		}

		httpapi.RespondWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, dto.UnlockResponse{Token: token})
}

// CloseSession handles DELETE /api/v1/admin/session
// Locks and forgets the session. Idempotent: closing an unknown or
// already-closed token succeeds.
func (h *AdminHandler) CloseSession(c *gin.Context) {
	h.sessions.Close(bearerToken(c))
	c.Status(http.StatusNoContent)
}

// ListQuotes handles GET /api/v1/admin/quotes
func (h *AdminHandler) ListQuotes(c *gin.Context) {
	if _, ok := h.requireSession(c); !ok {
		return
	}

	quotes := h.library.Quotes()

	c.JSON(http.StatusOK, dto.QuoteListResponse{
		Quotes: quotes.Strings(),
		Count:  len(quotes),
	})
}

// AddQuote handles POST /api/v1/admin/quotes
// Prepends the trimmed text to the list.
func (h *AdminHandler) AddQuote(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req dto.AddQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := sess.AddQuote(c.Request.Context(), req.Text); err != nil {
		httpapi.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// DeleteQuote handles DELETE /api/v1/admin/quotes/:index?confirm=true
// Removes the quote at the given position. Requires confirm=true.
func (h *AdminHandler) DeleteQuote(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httpapi.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "index must be an integer")
		return
	}

	confirmed := c.Query("confirm") == "true"

	if err := sess.DeleteQuote(c.Request.Context(), index, confirmed); err != nil {
		httpapi.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ResetQuotes handles POST /api/v1/admin/quotes/reset
// Overwrites the list with the built-in defaults. Requires confirm:true
// in the body.
func (h *AdminHandler) ResetQuotes(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req dto.ConfirmRequest
	if c.Request.ContentLength > 0 {
		if err := dto.BindAndValidate(c, &req); err != nil {
			respondBindingError(c, err)
			return
		}
	}

	if err := sess.ResetQuotes(c.Request.Context(), req.Confirm); err != nil {
		httpapi.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetSecret handles PUT /api/v1/admin/secret
// Replaces the admin secret. The old secret stops authenticating
// immediately; already-open sessions stay open.
func (h *AdminHandler) SetSecret(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req dto.SetSecretRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := sess.SetSecret(c.Request.Context(), req.Secret); err != nil {
		httpapi.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.POST("/session", h.OpenSession)
	admin.DELETE("/session", h.CloseSession)
	admin.GET("/quotes", h.ListQuotes)
	admin.POST("/quotes", h.AddQuote)
	admin.DELETE("/quotes/:index", h.DeleteQuote)
	admin.POST("/quotes/reset", h.ResetQuotes)
	admin.PUT("/secret", h.SetSecret)
}

// requireSession resolves the Bearer token to an open session, responding
// 401 when the token is missing or unknown.
func (h *AdminHandler) requireSession(c *gin.Context) (*app.AdminSession, bool) {
	token := bearerToken(c)
	if token == "" {
		httpapi.RespondWithErrorCode(c, dto.ErrorCodeUnauthorized, "session token required")
		return nil, false
	}

	sess := h.sessions.Session(token)
	if sess == nil {
		httpapi.RespondWithErrorCode(c, dto.ErrorCodeUnauthorized, "unknown or expired session")
		return nil, false
	}

	return sess, true
}

// bearerToken extracts the Bearer credential from the Authorization header.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(auth, prefix))
}

// respondBindingError distinguishes malformed bodies from field-level
// validation failures.
func respondBindingError(c *gin.Context, err error) {
	if errors.Is(err, dto.ErrBinding) {
		httpapi.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "request body could not be parsed")
		return
	}

	httpapi.RespondWithValidationErrors(c, dto.ValidationErrors(err))
}
