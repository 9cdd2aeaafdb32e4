package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	DisplayName    string    `json:"display_name"`
	Location       string    `json:"location"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Availability   string    `json:"availability"`
	Bio            string    `json:"bio"`
	SkillsOffered  []string  `json:"skills_offered"`
	SkillsWanted   []string  `json:"skills_wanted"`
	Rating         float64   `json:"rating"`
	CompletedSwaps int       `json:"completed_swaps"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	DisplayName  string
}

type UpdateProfileParams struct {
	DisplayName   *string
	Location      *string
	AvatarURL     *string
	Availability  *string
	Bio           *string
	SkillsOffered []string
	SkillsWanted  []string
}

// PublicProfile is the directory view of a user: everything another member
// may see when browsing or receiving a swap request.
type PublicProfile struct {
	ID             uuid.UUID `json:"id"`
	DisplayName    string    `json:"display_name"`
	Location       string    `json:"location"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Availability   string    `json:"availability"`
	Bio            string    `json:"bio"`
	SkillsOffered  []string  `json:"skills_offered"`
	SkillsWanted   []string  `json:"skills_wanted"`
	Rating         float64   `json:"rating"`
	CompletedSwaps int       `json:"completed_swaps"`
}

// PublicProfile strips the private fields from a full user record.
func (u *User) PublicProfile() *PublicProfile {
	return &PublicProfile{
		ID:             u.ID,
		DisplayName:    u.DisplayName,
		Location:       u.Location,
		AvatarURL:      u.AvatarURL,
		Availability:   u.Availability,
		Bio:            u.Bio,
		SkillsOffered:  u.SkillsOffered,
		SkillsWanted:   u.SkillsWanted,
		Rating:         u.Rating,
		CompletedSwaps: u.CompletedSwaps,
	}
}
