package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userrepo "github.com/casaviva/casaviva-backend/internal/data/repos/user"
	"github.com/casaviva/casaviva-backend/internal/pkg/apperr"
	"github.com/casaviva/casaviva-backend/internal/pkg/dbctx"
	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
)

// MintedReauth is the response of a successful step-up: a credential good
// for one high-risk action within the TTL.
type MintedReauth struct {
	ReauthToken string `json:"reauth_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// ReauthService mints and verifies step-up credentials. Verification is
// pure token math; nothing here touches shared mutable state.
type ReauthService interface {
	Mint(dbc dbctx.Context, userID uuid.UUID, password string) (*MintedReauth, error)
	Verify(tokenString string, subjectID uuid.UUID) error
}

type reauthService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     userrepo.UserRepo
	jwtSecretKey string
	reauthTTL    time.Duration
}

func NewReauthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo userrepo.UserRepo,
	jwtSecretKey string,
	reauthTTL time.Duration,
) ReauthService {
	serviceLog := log.With("service", "ReauthService")
	return &reauthService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		reauthTTL:    reauthTTL,
	}
}

// Mint re-verifies the subject's password and issues a fresh reauth token.
func (rs *reauthService) Mint(dbc dbctx.Context, userID uuid.UUID, password string) (*MintedReauth, error) {
	users, err := rs.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("retrieve user: %w", err)
	}
	if len(users) == 0 {
		return nil, apperr.New(apperr.KindUnauthenticated, "Usuário não encontrado")
	}
	u := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.KindUnauthenticated, "Senha incorreta")
	}

	token, err := SignSessionToken(rs.jwtSecretKey, TokenTypeReauthentication, u.ID, u.TenantID, rs.reauthTTL)
	if err != nil {
		return nil, fmt.Errorf("sign reauth token: %w", err)
	}

	rs.log.Info("Reauth token minted", "user_id", u.ID)

	return &MintedReauth{
		ReauthToken: token,
		ExpiresIn:   int(rs.reauthTTL.Seconds()),
	}, nil
}

// Verify runs the step-up ladder against a presented credential. The error
// kinds are deliberately distinct: an absent or expired token means "ask
// the user for their password again" (RequiresReauth), while a wrong token
// type or a token for another subject means something is broken or hostile
// and re-prompting with the same credential will not help.
func (rs *reauthService) Verify(tokenString string, subjectID uuid.UUID) error {
	if tokenString == "" {
		return apperr.New(apperr.KindReauthenticationRequired,
			"Esta operação requer confirmação de senha")
	}

	parsedToken, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(rs.jwtSecretKey), nil
	})
	if err != nil {
		// Malformed, bad signature and expired all land here: from the
		// client's point of view the remedy is the same fresh prompt.
		return apperr.Wrap(apperr.KindReauthTokenExpired,
			"Confirmação de senha expirada ou inválida", err)
	}
	claims, ok := parsedToken.Claims.(*SessionClaims)
	if !ok || !parsedToken.Valid {
		return apperr.New(apperr.KindReauthTokenExpired,
			"Confirmação de senha expirada ou inválida")
	}

	if claims.TokenType != TokenTypeReauthentication {
		return apperr.New(apperr.KindInvalidReauthToken,
			"Token de reautenticação inválido")
	}

	tokenSubject, err := uuid.Parse(claims.Subject)
	if err != nil || tokenSubject != subjectID {
		rs.log.Warn("Reauth token subject mismatch",
			"token_subject", claims.Subject, "request_subject", subjectID)
		return apperr.New(apperr.KindReauthTokenMismatch,
			"Token de reautenticação não pertence a este usuário")
	}

	return nil
}
