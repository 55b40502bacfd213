// Package domain re-exports the model types of every subdomain so callers
// can import one package as `types` the way the repos and services do.
package domain

import (
	"github.com/casaviva/casaviva-backend/internal/domain/legal"
	"github.com/casaviva/casaviva-backend/internal/domain/plan"
	"github.com/casaviva/casaviva-backend/internal/domain/tenant"
	"github.com/casaviva/casaviva-backend/internal/domain/user"
)

type (
	User   = user.User
	Tenant = tenant.Tenant
	Plan   = plan.Plan

	LegalDocument      = legal.LegalDocument
	DocumentAcceptance = legal.DocumentAcceptance
	DocumentKind       = legal.DocumentKind
	DocumentStatus     = legal.DocumentStatus
)

const (
	KindContract       = legal.KindContract
	KindTermsOfService = legal.KindTermsOfService

	StatusDraft   = legal.StatusDraft
	StatusActive  = legal.StatusActive
	StatusRevoked = legal.StatusRevoked
)
