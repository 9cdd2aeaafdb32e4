package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/davidmorel/skillswap/internal/models"
)

const (
	bcryptCost       = 12
	sessionDuration  = 30 * 24 * time.Hour
	sessionKeyPrefix = "session:"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrPasswordTooLong    = errors.New("password too long")
)

// SessionStore is the slice of the redis client sessions need.
type SessionStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// RedisAdapter wraps a go-redis client behind SessionStore.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (a *RedisAdapter) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return a.client.Set(ctx, key, value, ttl).Err()
}

func (a *RedisAdapter) Get(ctx context.Context, key string) (string, error) {
	value, err := a.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	return value, err
}

func (a *RedisAdapter) Del(ctx context.Context, key string) error {
	return a.client.Del(ctx, key).Err()
}

func (a *RedisAdapter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return a.client.Expire(ctx, key, ttl).Err()
}

type AuthService struct {
	db       DB
	sessions SessionStore
}

func NewAuthService(db DB, sessions SessionStore) *AuthService {
	return &AuthService{db: db, sessions: sessions}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	if len(password) > 72 {
		// bcrypt silently truncates beyond 72 bytes
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AuthService) GenerateSessionToken() (token string, hash string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("generating random bytes: %w", err)
	}
	token = hex.EncodeToString(bytes)
	return token, hashToken(token), nil
}

func hashToken(token string) string {
	hashBytes := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hashBytes[:])
}

func (s *AuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	token, tokenHash, err := s.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	if err := s.sessions.Set(ctx, sessionKeyPrefix+tokenHash, userID.String(), sessionDuration); err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}

	return token, nil
}

func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	key := sessionKeyPrefix + hashToken(token)

	userIDStr, err := s.sessions.Get(ctx, key)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up session: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("parsing session user id: %w", err)
	}

	// Sliding expiry: each authenticated request extends the session.
	_ = s.sessions.Expire(ctx, key, sessionDuration)

	user, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("loading session user: %w", err)
	}

	return user, nil
}

func (s *AuthService) DeleteSession(ctx context.Context, token string) error {
	if err := s.sessions.Del(ctx, sessionKeyPrefix+hashToken(token)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
