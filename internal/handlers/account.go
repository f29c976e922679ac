package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-media-service/internal/models"
	"social-media-service/internal/repositories"
	"social-media-service/internal/services"
	"social-media-service/internal/telemetry"
)

// AccountHandler manages registration and login endpoints.
//
// Failure responses carry only a status code and an empty body; the
// richer repository errors are logged here and collapsed onto the
// external contract.
type AccountHandler struct {
	accounts *services.AccountService
	emitter  *telemetry.EventEmitter
}

// NewAccountHandler builds an AccountHandler.
func NewAccountHandler(accounts *services.AccountService, emitter *telemetry.EventEmitter) *AccountHandler {
	return &AccountHandler{accounts: accounts, emitter: emitter}
}

// Register creates a new account. Blank usernames and passwords
// shorter than 4 characters are rejected before touching persistence.
// Duplicate usernames answer 400 with an empty body.
func (h *AccountHandler) Register(c *gin.Context) {
	var account models.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if account.Username == "" || len(account.Password) < 4 {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.accounts.Register(c.Request.Context(), account)
	if err != nil {
		if !errors.Is(err, repositories.ErrDuplicateUsername) {
			log.Printf("register account failed: %v", err)
		}
		c.Status(http.StatusBadRequest)
		return
	}

	h.emitter.Emit(c.Request.Context(), "account.registered", requestIDFromContext(c), map[string]any{
		"account_id": created.AccountID,
		"username":   created.Username,
	})
	c.JSON(http.StatusOK, created)
}

// Login resolves credentials to a stored account. Any mismatch, and
// any persistence failure, answers 401 with an empty body.
func (h *AccountHandler) Login(c *gin.Context) {
	var account models.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	found, err := h.accounts.Login(c.Request.Context(), account.Username, account.Password)
	if err != nil {
		if !errors.Is(err, repositories.ErrAccountNotFound) {
			log.Printf("login failed: %v", err)
		}
		c.Status(http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, found)
}
