package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/casaviva/casaviva-backend/internal/pkg/apperr"
	"github.com/casaviva/casaviva-backend/internal/pkg/ctxutil"
	"github.com/casaviva/casaviva-backend/internal/pkg/dbctx"
	"github.com/casaviva/casaviva-backend/internal/services"
)

type AuthHandler struct {
	authService   services.AuthService
	reauthService services.ReauthService
}

func NewAuthHandler(authService services.AuthService, reauthService services.ReauthService) *AuthHandler {
	return &AuthHandler{authService: authService, reauthService: reauthService}
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	accessToken, user, err := ah.authService.Login(dbc, req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}

	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	RespondOK(c, gin.H{
		"access_token": accessToken,
		"expires_in":   expiresIn,
		"user":         user,
	})
}

// Reauthenticate re-verifies the caller's password and mints the short-lived
// credential expected in X-Reauth-Token by step-up gated operations.
func (ah *AuthHandler) Reauthenticate(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}

	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperr.New(apperr.KindUnauthenticated, "missing session"))
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	minted, err := ah.reauthService.Mint(dbc, rd.UserID, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, minted)
}
