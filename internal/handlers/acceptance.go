package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/casaviva/casaviva-backend/internal/domain"
	"github.com/casaviva/casaviva-backend/internal/legal/template"
	"github.com/casaviva/casaviva-backend/internal/pkg/dbctx"
	"github.com/casaviva/casaviva-backend/internal/services"
)

type AcceptanceHandler struct {
	acceptanceService services.AcceptanceService
}

func NewAcceptanceHandler(acceptanceService services.AcceptanceService) *AcceptanceHandler {
	return &AcceptanceHandler{acceptanceService: acceptanceService}
}

// PrepareAcceptance mints the short-lived token embedding the exact rendered
// text the prospect is about to agree to. Called during signup, pre-session.
func (ach *AcceptanceHandler) PrepareAcceptance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Variables template.Variables `json:"variables"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	prepared, err := ach.acceptanceService.PrepareAcceptance(
		dbc, id, req.Variables, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, prepared)
}

func (ach *AcceptanceHandler) ListForDocument(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	rows, err := ach.acceptanceService.ListAcceptances(dbc, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, rows)
}

func (ach *AcceptanceHandler) GetForTenant(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "invalid tenant id")
		return
	}
	kind := types.DocumentKind(c.Query("kind"))
	if kind != types.KindContract && kind != types.KindTermsOfService {
		RespondBadRequest(c, "kind must be CONTRACT or TERMS_OF_SERVICE")
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	row, err := ach.acceptanceService.GetTenantAcceptance(dbc, tenantID, kind)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, row)
}
