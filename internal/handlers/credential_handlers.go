package handlers

import (
	"net/http"
	"time"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// CredentialInput is the JSON body of PUT /authorization/credential.
type CredentialInput struct {
	Provider       string    `json:"provider" binding:"required"`
	AccessToken    string    `json:"accessToken" binding:"required"`
	RefreshToken   string    `json:"refreshToken"`
	DateExpiresUtc time.Time `json:"dateExpiresUtc"`
}

// GetCredential is the handler for GET /authorization/credential?provider=
// Tokens are masked unless reveal=true.
func (h *Handlers) GetCredential(c *gin.Context) {
	provider := c.Query("provider")
	if provider == "" {
		badRequest(c, "provider is required")
		return
	}
	cred, err := h.Store.GetOAuthCredential(c.Request.Context(), provider)
	if err != nil {
		h.fail(c, err)
		return
	}
	if c.Query("reveal") == "true" {
		c.JSON(http.StatusOK, cred)
		return
	}
	c.JSON(http.StatusOK, cred.Redacted())
}

// SaveCredential is the handler for PUT /authorization/credential
func (h *Handlers) SaveCredential(c *gin.Context) {
	var input CredentialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	saved, err := h.Store.SaveOAuthCredential(c.Request.Context(), &models.OAuthCredential{
		Provider:       input.Provider,
		AccessToken:    input.AccessToken,
		RefreshToken:   input.RefreshToken,
		DateExpiresUtc: input.DateExpiresUtc,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved.Redacted())
}

// DeleteCredential is the handler for DELETE /authorization/credential?provider=
func (h *Handlers) DeleteCredential(c *gin.Context) {
	provider := c.Query("provider")
	if provider == "" {
		badRequest(c, "provider is required")
		return
	}
	if err := h.Store.RemoveOAuthCredential(c.Request.Context(), provider); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}
