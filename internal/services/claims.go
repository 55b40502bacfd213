package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenTypeAccess marks ordinary session tokens.
	TokenTypeAccess = "access"
	// TokenTypeReauthentication marks the short-lived step-up credential.
	// The gate rejects any other type: an access token is never a
	// substitute for a fresh password check.
	TokenTypeReauthentication = "reauthentication"
)

// SessionClaims are the claims of both access and reauthentication tokens.
// Subject carries the user id.
type SessionClaims struct {
	TokenType string `json:"tokenType,omitempty"`
	TenantID  string `json:"tenantId,omitempty"`
	jwt.RegisteredClaims
}

// AcceptanceClaims bind a user-visible snapshot of a legal document to the
// request that asked to accept it. The rendered content rides inside the
// token verbatim so the acceptance record can later prove byte-for-byte
// what was shown, even after the source document changes.
type AcceptanceClaims struct {
	DocumentID          string `json:"documentId"`
	DocumentKind        string `json:"documentKind"`
	DocumentVersion     string `json:"documentVersion"`
	RenderedContentHash string `json:"renderedContentHash"`
	RenderedContent     string `json:"renderedContent"`
	IPAddress           string `json:"ipAddress"`
	UserAgent           string `json:"userAgent"`
	jwt.RegisteredClaims
}

// SignSessionToken signs a session-shaped token of the given type. Both the
// login path and the step-up mint go through here so the two credentials can
// never drift in shape.
func SignSessionToken(secretKey, tokenType string, subjectID, tenantID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if tenantID != uuid.Nil {
		claims.TenantID = tenantID.String()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
}
