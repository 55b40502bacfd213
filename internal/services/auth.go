package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userrepo "github.com/casaviva/casaviva-backend/internal/data/repos/user"
	types "github.com/casaviva/casaviva-backend/internal/domain"
	"github.com/casaviva/casaviva-backend/internal/pkg/apperr"
	"github.com/casaviva/casaviva-backend/internal/pkg/ctxutil"
	"github.com/casaviva/casaviva-backend/internal/pkg/dbctx"
	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
)

// AuthService owns the primary session: login and resolving the subject of
// an inbound request from its bearer token. Registration, refresh and the
// rest of account management live in another service.
type AuthService interface {
	Login(dbc dbctx.Context, email, password string) (string, *types.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     userrepo.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo userrepo.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Login(dbc dbctx.Context, email, password string) (string, *types.User, error) {
	users, err := as.userRepo.GetByEmails(dbc, []string{email})
	if err != nil {
		return "", nil, fmt.Errorf("retrieve user by email: %w", err)
	}
	if len(users) == 0 {
		return "", nil, apperr.New(apperr.KindUnauthenticated, "Credenciais inválidas")
	}

	u := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.KindUnauthenticated, "Credenciais inválidas")
	}

	token, err := as.generateAccessToken(u)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	return token, u, nil
}

func (as *authService) generateAccessToken(u *types.User) (string, error) {
	return SignSessionToken(as.jwtSecretKey, TokenTypeAccess, u.ID, u.TenantID, as.accessTTL)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apperr.New(apperr.KindUnauthenticated, "missing token")
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, apperr.Wrap(apperr.KindUnauthenticated, "invalid or expired token", err)
	}
	claims, ok := parsedToken.Claims.(*SessionClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apperr.New(apperr.KindUnauthenticated, "invalid or expired token")
	}
	if claims.TokenType != "" && claims.TokenType != TokenTypeAccess {
		return ctx, apperr.New(apperr.KindUnauthenticated, "wrong token type for session")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apperr.Wrap(apperr.KindUnauthenticated, "invalid user id in token", err)
	}
	tenantID := uuid.Nil
	if claims.TenantID != "" {
		if parsed, err := uuid.Parse(claims.TenantID); err == nil {
			tenantID = parsed
		}
	}

	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		TenantID:    tenantID,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
