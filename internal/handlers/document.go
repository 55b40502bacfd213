package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	legalrepo "github.com/casaviva/casaviva-backend/internal/data/repos/legal"
	types "github.com/casaviva/casaviva-backend/internal/domain"
	"github.com/casaviva/casaviva-backend/internal/legal/template"
	"github.com/casaviva/casaviva-backend/internal/pkg/apperr"
	"github.com/casaviva/casaviva-backend/internal/pkg/ctxutil"
	"github.com/casaviva/casaviva-backend/internal/pkg/dbctx"
	"github.com/casaviva/casaviva-backend/internal/services"
)

// DocumentHandler serves one document kind. The router mounts two instances,
// one under /api/contracts and one under /api/terms, so the URL itself fixes
// the kind and clients can never mix families by mistake.
type DocumentHandler struct {
	documentService services.LegalDocumentService
	kind            types.DocumentKind
}

func NewDocumentHandler(documentService services.LegalDocumentService, kind types.DocumentKind) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, kind: kind}
}

func (dh *DocumentHandler) List(c *gin.Context) {
	filter := legalrepo.ListFilter{Kind: dh.kind}
	if status := c.Query("status"); status != "" {
		filter.Status = types.DocumentStatus(status)
	}
	planID, ok := parseOptionalUUID(c, "plan_id")
	if !ok {
		return
	}
	filter.PlanID = planID

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	docs, err := dh.documentService.FindAll(dbc, filter)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, docs)
}

func (dh *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	doc, err := dh.documentService.FindOne(dbc, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if doc.DocumentKind != dh.kind {
		RespondError(c, apperr.New(apperr.KindNotFound, "Documento não encontrado"))
		return
	}
	RespondOK(c, doc)
}

func (dh *DocumentHandler) Create(c *gin.Context) {
	var req struct {
		PlanID  *uuid.UUID `json:"plan_id"`
		Version string     `json:"version"`
		Title   string     `json:"title"`
		Content string     `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	if req.Version == "" || req.Title == "" || req.Content == "" {
		RespondBadRequest(c, "version, title and content are required")
		return
	}

	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperr.New(apperr.KindUnauthenticated, "missing session"))
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	doc, err := dh.documentService.Create(dbc, services.CreateDocumentInput{
		Kind:    dh.kind,
		PlanID:  req.PlanID,
		Version: req.Version,
		Title:   req.Title,
		Content: req.Content,
	}, rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, doc)
}

func (dh *DocumentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	doc, err := dh.documentService.Update(dbc, id, services.UpdateDocumentInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, doc)
}

func (dh *DocumentHandler) Publish(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		EffectiveFrom *time.Time `json:"effective_from"`
	}
	// Body is optional; publish with no payload means "effective now".
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondBadRequest(c, "invalid request body")
			return
		}
	}

	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperr.New(apperr.KindUnauthenticated, "missing session"))
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	doc, err := dh.documentService.Publish(dbc, id, services.PublishDocumentInput{
		EffectiveFrom: req.EffectiveFrom,
	}, rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, doc)
}

func (dh *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	if err := dh.documentService.Delete(dbc, id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (dh *DocumentHandler) NextVersion(c *gin.Context) {
	planID, ok := parseOptionalUUID(c, "plan_id")
	if !ok {
		return
	}
	isMajor := c.Query("major") == "true"

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	next, err := dh.documentService.NextVersion(dbc, dh.kind, planID, isMajor)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"next_version": next})
}

func (dh *DocumentHandler) Render(c *gin.Context) {
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
	doc, err := dh.documentService.Render(dbc, id, req.Variables)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Active serves the public "which document applies to this plan" lookup used
// during signup, before any session exists.
func (dh *DocumentHandler) Active(c *gin.Context) {
	planID, ok := parseOptionalUUID(c, "plan_id")
	if !ok {
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	doc, err := dh.documentService.FindActiveForPlan(dbc, dh.kind, planID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, doc)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "invalid document id")
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUID reads a UUID query parameter that may be absent. The
// second return is false only when the value is present and malformed, in
// which case the response has already been written.
func parseOptionalUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		RespondBadRequest(c, "invalid "+name)
		return nil, false
	}
	return &parsed, true
}
