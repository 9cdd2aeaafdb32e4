package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/davidmorel/skillswap/internal/models"
)

// ProfileServiceInterface defines the contract for account and directory operations.
type ProfileServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error)
	SkillsOffered(ctx context.Context, id uuid.UUID) ([]string, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, params models.UpdateProfileParams) (*models.User, error)
	Browse(ctx context.Context, viewerID uuid.UUID, skill string) ([]models.PublicProfile, error)
}

// AuthServiceInterface defines the contract for authentication operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	CreateSession(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSession(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
}

// SwapServiceInterface defines the contract for swap request operations used by handlers.
type SwapServiceInterface interface {
	Create(ctx context.Context, params models.CreateSwapParams) (*models.SwapRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.SwapRequest, error)
	Accept(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error)
	Reject(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
	Complete(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error)
	Rate(ctx context.Context, id, actorID uuid.UUID, rating int) (*models.SwapRequest, error)
	ListForViewer(ctx context.Context, viewerID uuid.UUID, direction models.SwapDirection) ([]models.SwapRequest, error)
	CountByDirection(ctx context.Context, viewerID uuid.UUID) (*models.SwapCounts, error)
}
