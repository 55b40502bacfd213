package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	legalrepo "github.com/casaviva/casaviva-backend/internal/data/repos/legal"
	types "github.com/casaviva/casaviva-backend/internal/domain"
	"github.com/casaviva/casaviva-backend/internal/legal/hash"
	"github.com/casaviva/casaviva-backend/internal/legal/template"
	"github.com/casaviva/casaviva-backend/internal/pkg/apperr"
	"github.com/casaviva/casaviva-backend/internal/pkg/dbctx"
	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
)

// PreparedAcceptance is handed to the client; the token is later exchanged
// by the onboarding flow for a durable acceptance record.
type PreparedAcceptance struct {
	AcceptanceToken string `json:"acceptance_token"`
	ExpiresIn       int    `json:"expires_in"`
}

// AcceptanceService mints acceptance tokens and serves the admin read side
// of acceptance records. It never persists anything itself.
type AcceptanceService interface {
	PrepareAcceptance(dbc dbctx.Context, documentID uuid.UUID, vars template.Variables, ipAddress, userAgent string) (*PreparedAcceptance, error)
	ListAcceptances(dbc dbctx.Context, documentID uuid.UUID) ([]*types.DocumentAcceptance, error)
	GetTenantAcceptance(dbc dbctx.Context, tenantID uuid.UUID, kind types.DocumentKind) (*types.DocumentAcceptance, error)
}

type acceptanceService struct {
	db              *gorm.DB
	log             *logger.Logger
	documentService LegalDocumentService
	acceptanceRepo  legalrepo.DocumentAcceptanceRepo
	jwtSecretKey    string
	acceptanceTTL   time.Duration
}

func NewAcceptanceService(
	db *gorm.DB,
	log *logger.Logger,
	documentService LegalDocumentService,
	acceptanceRepo legalrepo.DocumentAcceptanceRepo,
	jwtSecretKey string,
	acceptanceTTL time.Duration,
) AcceptanceService {
	serviceLog := log.With("service", "AcceptanceService")
	return &acceptanceService{
		db:              db,
		log:             serviceLog,
		documentService: documentService,
		acceptanceRepo:  acceptanceRepo,
		jwtSecretKey:    jwtSecretKey,
		acceptanceTTL:   acceptanceTTL,
	}
}

func (acs *acceptanceService) PrepareAcceptance(dbc dbctx.Context, documentID uuid.UUID, vars template.Variables, ipAddress, userAgent string) (*PreparedAcceptance, error) {
	doc, err := acs.documentService.FindOne(dbc, documentID)
	if err != nil {
		return nil, err
	}
	if !doc.IsActive() {
		// Accepting a draft or revoked version would let acceptance be
		// backdated onto text that was never in force.
		return nil, apperr.New(apperr.KindNotActive,
			fmt.Sprintf("Apenas %ss ACTIVE podem ser aceitos", kindLabel(doc.DocumentKind)))
	}

	renderedContent := template.Render(doc.Content, vars)
	renderedContentHash := hash.ContentString(renderedContent)

	now := time.Now()
	claims := AcceptanceClaims{
		DocumentID:          doc.ID.String(),
		DocumentKind:        string(doc.DocumentKind),
		DocumentVersion:     doc.Version,
		RenderedContentHash: renderedContentHash,
		RenderedContent:     renderedContent,
		IPAddress:           ipAddress,
		UserAgent:           userAgent,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(acs.acceptanceTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(acs.jwtSecretKey))
	if err != nil {
		return nil, fmt.Errorf("sign acceptance token: %w", err)
	}

	acs.log.Info("Acceptance token prepared",
		"document_id", doc.ID, "version", doc.Version, "rendered_hash", renderedContentHash)

	return &PreparedAcceptance{
		AcceptanceToken: token,
		ExpiresIn:       int(acs.acceptanceTTL.Seconds()),
	}, nil
}

func (acs *acceptanceService) ListAcceptances(dbc dbctx.Context, documentID uuid.UUID) ([]*types.DocumentAcceptance, error) {
	// FindOne doubles as the existence check.
	if _, err := acs.documentService.FindOne(dbc, documentID); err != nil {
		return nil, err
	}
	rows, err := acs.acceptanceRepo.GetByDocumentIDs(dbc, []uuid.UUID{documentID})
	if err != nil {
		return nil, fmt.Errorf("list acceptances: %w", err)
	}
	return rows, nil
}

func (acs *acceptanceService) GetTenantAcceptance(dbc dbctx.Context, tenantID uuid.UUID, kind types.DocumentKind) (*types.DocumentAcceptance, error) {
	rows, err := acs.acceptanceRepo.GetByTenantIDs(dbc, []uuid.UUID{tenantID})
	if err != nil {
		return nil, fmt.Errorf("get tenant acceptance: %w", err)
	}
	for _, row := range rows {
		if row.DocumentKind == kind {
			return row, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "Aceite não encontrado para este tenant")
}
