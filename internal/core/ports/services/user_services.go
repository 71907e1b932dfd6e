package services

import (
	"context"
	"time"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	"github.com/invoiceai/invoice_archive_app/internal/dto"
)

// UserSvcFacade exposes account management.
type UserSvcFacade interface {
	// CreateUser registers a new local account. Returns
	// apperrors.ErrDuplicate when the email is already taken.
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves the account for a validated Google
	// identity, creating it on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, email, name string) (*domain.User, error)
}

// TokenSvcFacade issues application access tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
