package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/davidmorel/skillswap/internal/models"
)

type mockProfileService struct {
	CreateFunc        func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	GetProfileFunc    func(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error)
	SkillsOfferedFunc func(ctx context.Context, id uuid.UUID) ([]string, error)
	UpdateProfileFunc func(ctx context.Context, userID uuid.UUID, params models.UpdateProfileParams) (*models.User, error)
	BrowseFunc        func(ctx context.Context, viewerID uuid.UUID, skill string) ([]models.PublicProfile, error)
}

func (m *mockProfileService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc == nil {
		panic("unexpected Create")
	}
	return m.CreateFunc(ctx, params)
}

func (m *mockProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc == nil {
		panic("unexpected GetByID")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mockProfileService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc == nil {
		panic("unexpected GetByEmail")
	}
	return m.GetByEmailFunc(ctx, email)
}

func (m *mockProfileService) GetProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error) {
	if m.GetProfileFunc == nil {
		panic("unexpected GetProfile")
	}
	return m.GetProfileFunc(ctx, id)
}

func (m *mockProfileService) SkillsOffered(ctx context.Context, id uuid.UUID) ([]string, error) {
	if m.SkillsOfferedFunc == nil {
		panic("unexpected SkillsOffered")
	}
	return m.SkillsOfferedFunc(ctx, id)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, params models.UpdateProfileParams) (*models.User, error) {
	if m.UpdateProfileFunc == nil {
		panic("unexpected UpdateProfile")
	}
	return m.UpdateProfileFunc(ctx, userID, params)
}

func (m *mockProfileService) Browse(ctx context.Context, viewerID uuid.UUID, skill string) ([]models.PublicProfile, error) {
	if m.BrowseFunc == nil {
		panic("unexpected Browse")
	}
	return m.BrowseFunc(ctx, viewerID, skill)
}

type mockAuthService struct {
	HashPasswordFunc    func(password string) (string, error)
	VerifyPasswordFunc  func(hash, password string) bool
	CreateSessionFunc   func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSessionFunc func(ctx context.Context, token string) (*models.User, error)
	DeleteSessionFunc   func(ctx context.Context, token string) error
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc == nil {
		panic("unexpected HashPassword")
	}
	return m.HashPasswordFunc(password)
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc == nil {
		panic("unexpected VerifyPassword")
	}
	return m.VerifyPasswordFunc(hash, password)
}

func (m *mockAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.CreateSessionFunc == nil {
		panic("unexpected CreateSession")
	}
	return m.CreateSessionFunc(ctx, userID)
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if m.ValidateSessionFunc == nil {
		panic("unexpected ValidateSession")
	}
	return m.ValidateSessionFunc(ctx, token)
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc == nil {
		panic("unexpected DeleteSession")
	}
	return m.DeleteSessionFunc(ctx, token)
}

type mockSwapService struct {
	CreateFunc           func(ctx context.Context, params models.CreateSwapParams) (*models.SwapRequest, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.SwapRequest, error)
	AcceptFunc           func(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error)
	RejectFunc           func(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error)
	DeleteFunc           func(ctx context.Context, id, actorID uuid.UUID) error
	CompleteFunc         func(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error)
	RateFunc             func(ctx context.Context, id, actorID uuid.UUID, rating int) (*models.SwapRequest, error)
	ListForViewerFunc    func(ctx context.Context, viewerID uuid.UUID, direction models.SwapDirection) ([]models.SwapRequest, error)
	CountByDirectionFunc func(ctx context.Context, viewerID uuid.UUID) (*models.SwapCounts, error)
}

func (m *mockSwapService) Create(ctx context.Context, params models.CreateSwapParams) (*models.SwapRequest, error) {
	if m.CreateFunc == nil {
		panic("unexpected Create")
	}
	return m.CreateFunc(ctx, params)
}

func (m *mockSwapService) GetByID(ctx context.Context, id uuid.UUID) (*models.SwapRequest, error) {
	if m.GetByIDFunc == nil {
		panic("unexpected GetByID")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mockSwapService) Accept(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error) {
	if m.AcceptFunc == nil {
		panic("unexpected Accept")
	}
	return m.AcceptFunc(ctx, id, actorID)
}

func (m *mockSwapService) Reject(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error) {
	if m.RejectFunc == nil {
		panic("unexpected Reject")
	}
	return m.RejectFunc(ctx, id, actorID)
}

func (m *mockSwapService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("unexpected Delete")
	}
	return m.DeleteFunc(ctx, id, actorID)
}

func (m *mockSwapService) Complete(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error) {
	if m.CompleteFunc == nil {
		panic("unexpected Complete")
	}
	return m.CompleteFunc(ctx, id, actorID)
}

func (m *mockSwapService) Rate(ctx context.Context, id, actorID uuid.UUID, rating int) (*models.SwapRequest, error) {
	if m.RateFunc == nil {
		panic("unexpected Rate")
	}
	return m.RateFunc(ctx, id, actorID, rating)
}

func (m *mockSwapService) ListForViewer(ctx context.Context, viewerID uuid.UUID, direction models.SwapDirection) ([]models.SwapRequest, error) {
	if m.ListForViewerFunc == nil {
		panic("unexpected ListForViewer")
	}
	return m.ListForViewerFunc(ctx, viewerID, direction)
}

func (m *mockSwapService) CountByDirection(ctx context.Context, viewerID uuid.UUID) (*models.SwapCounts, error) {
	if m.CountByDirectionFunc == nil {
		panic("unexpected CountByDirection")
	}
	return m.CountByDirectionFunc(ctx, viewerID)
}
