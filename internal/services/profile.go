package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/davidmorel/skillswap/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

const userColumns = `id, email, password_hash, display_name, location, avatar_url, availability, bio,
	 skills_offered, skills_wanted, rating, completed_swaps, created_at, updated_at`

// ProfileService is the member directory: account records plus the public
// profile projection other members browse and swap against.
type ProfileService struct {
	db DB
}

func NewProfileService(db DB) *ProfileService {
	return &ProfileService{db: db}
}

func scanUser(row Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName,
		&user.Location, &user.AvatarURL, &user.Availability, &user.Bio,
		&user.SkillsOffered, &user.SkillsWanted, &user.Rating, &user.CompletedSwaps,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if user.SkillsOffered == nil {
		user.SkillsOffered = []string{}
	}
	if user.SkillsWanted == nil {
		user.SkillsWanted = []string{}
	}
	return user, nil
}

func (s *ProfileService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", params.Email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	user, err := scanUser(s.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, display_name)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		params.Email, params.PasswordHash, params.DisplayName,
	))
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}

	return user, nil
}

func (s *ProfileService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return user, nil
}

// GetProfile resolves a user id to its public directory entry.
func (s *ProfileService) GetProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.PublicProfile(), nil
}

// SkillsOffered is the projection swap validation runs against.
func (s *ProfileService) SkillsOffered(ctx context.Context, id uuid.UUID) ([]string, error) {
	var skills []string
	err := s.db.QueryRow(ctx,
		`SELECT skills_offered FROM users WHERE id = $1`,
		id,
	).Scan(&skills)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting offered skills: %w", err)
	}
	if skills == nil {
		skills = []string{}
	}
	return skills, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, params models.UpdateProfileParams) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if params.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*params.DisplayName)
	}
	if params.Location != nil {
		user.Location = strings.TrimSpace(*params.Location)
	}
	if params.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*params.AvatarURL)
	}
	if params.Availability != nil {
		user.Availability = strings.TrimSpace(*params.Availability)
	}
	if params.Bio != nil {
		user.Bio = *params.Bio
	}
	if params.SkillsOffered != nil {
		user.SkillsOffered = normalizeSkills(params.SkillsOffered)
	}
	if params.SkillsWanted != nil {
		user.SkillsWanted = normalizeSkills(params.SkillsWanted)
	}

	updated, err := scanUser(s.db.QueryRow(ctx,
		`UPDATE users
		 SET display_name = $1, location = $2, avatar_url = $3, availability = $4, bio = $5,
		     skills_offered = $6, skills_wanted = $7, updated_at = NOW()
		 WHERE id = $8
		 RETURNING `+userColumns,
		user.DisplayName, user.Location, user.AvatarURL, user.Availability, user.Bio,
		user.SkillsOffered, user.SkillsWanted, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return updated, nil
}

// Browse lists public profiles other than the viewer's, optionally filtered
// to users offering the given skill.
func (s *ProfileService) Browse(ctx context.Context, viewerID uuid.UUID, skill string) ([]models.PublicProfile, error) {
	query := `SELECT id, display_name, location, avatar_url, availability, bio,
	       skills_offered, skills_wanted, rating, completed_swaps
	 FROM users
	 WHERE id != $1`
	args := []any{viewerID}

	skill = strings.TrimSpace(skill)
	if skill != "" {
		query += ` AND $2 = ANY(skills_offered)`
		args = append(args, skill)
	}
	query += ` ORDER BY rating DESC, completed_swaps DESC LIMIT 50`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("browsing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.PublicProfile
	for rows.Next() {
		var p models.PublicProfile
		if err := rows.Scan(
			&p.ID, &p.DisplayName, &p.Location, &p.AvatarURL, &p.Availability, &p.Bio,
			&p.SkillsOffered, &p.SkillsWanted, &p.Rating, &p.CompletedSwaps,
		); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		if p.SkillsOffered == nil {
			p.SkillsOffered = []string{}
		}
		if p.SkillsWanted == nil {
			p.SkillsWanted = []string{}
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("browsing profiles: %w", err)
	}

	if profiles == nil {
		profiles = []models.PublicProfile{}
	}
	return profiles, nil
}

// normalizeSkills trims entries and drops empties and duplicates while
// preserving order.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		out = append(out, skill)
	}
	return out
}
