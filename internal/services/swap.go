package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/davidmorel/skillswap/internal/models"
)

var (
	ErrSwapNotFound       = errors.New("swap request not found")
	ErrCannotSwapSelf     = errors.New("cannot send a swap request to yourself")
	ErrSkillMissing       = errors.New("both an offered and a wanted skill are required")
	ErrSkillsEqual        = errors.New("offered and wanted skills must differ")
	ErrSkillNotOffered    = errors.New("target user does not offer that skill")
	ErrSkillNotYours      = errors.New("you do not offer that skill")
	ErrNotSwapTarget      = errors.New("only the target user can do that")
	ErrNotSwapRequester   = errors.New("only the requester can do that")
	ErrNotSwapParticipant = errors.New("only a participant can do that")
	ErrSwapNotPending     = errors.New("swap request is not pending")
	ErrSwapNotAccepted    = errors.New("swap request is not accepted")
	ErrSwapNotCompleted   = errors.New("swap request is not completed")
	ErrSwapAlreadyRated   = errors.New("swap request is already rated")
	ErrRatingOutOfRange   = errors.New("rating must be between 1 and 5")
	ErrUnknownDirection   = errors.New("direction must be received or sent")
)

const swapColumns = `id, requester_id, target_id, skill_offered, skill_wanted, message, status, rating, created_at, updated_at`

// Directory is the read-only profile lookup the ledger validates against.
type Directory interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error)
	SkillsOffered(ctx context.Context, id uuid.UUID) ([]string, error)
}

// SwapService owns the swap request collection and its state machine.
// Every transition is a compare-and-set on (id, expected status) so two
// racing actors cannot both move the same request.
type SwapService struct {
	db        DB
	directory Directory

	// strictOffered additionally requires the offered skill to be in the
	// requester's own offered set. Off by default: the original client
	// never enforced it.
	strictOffered bool
}

func NewSwapService(db DB, directory Directory, strictOffered bool) *SwapService {
	return &SwapService{db: db, directory: directory, strictOffered: strictOffered}
}

func scanSwap(row Row) (*models.SwapRequest, error) {
	swap := &models.SwapRequest{}
	err := row.Scan(
		&swap.ID, &swap.RequesterID, &swap.TargetID,
		&swap.SkillOffered, &swap.SkillWanted, &swap.Message,
		&swap.Status, &swap.Rating, &swap.CreatedAt, &swap.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return swap, nil
}

func (s *SwapService) Create(ctx context.Context, params models.CreateSwapParams) (*models.SwapRequest, error) {
	skillOffered := strings.TrimSpace(params.SkillOffered)
	skillWanted := strings.TrimSpace(params.SkillWanted)

	if skillOffered == "" || skillWanted == "" {
		return nil, ErrSkillMissing
	}
	if skillOffered == skillWanted {
		return nil, ErrSkillsEqual
	}
	if params.RequesterID == params.TargetID {
		return nil, ErrCannotSwapSelf
	}

	// Validation happens once, against the target's offered set as it is
	// right now. Later profile edits do not retroactively invalidate
	// existing requests.
	targetSkills, err := s.directory.SkillsOffered(ctx, params.TargetID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(targetSkills, skillWanted) {
		return nil, ErrSkillNotOffered
	}

	if s.strictOffered {
		ownSkills, err := s.directory.SkillsOffered(ctx, params.RequesterID)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(ownSkills, skillOffered) {
			return nil, ErrSkillNotYours
		}
	}

	swap, err := scanSwap(s.db.QueryRow(ctx,
		`INSERT INTO swap_requests (requester_id, target_id, skill_offered, skill_wanted, message, status)
		 VALUES ($1, $2, $3, $4, $5, 'pending')
		 RETURNING `+swapColumns,
		params.RequesterID, params.TargetID, skillOffered, skillWanted, strings.TrimSpace(params.Message),
	))
	if err != nil {
		return nil, fmt.Errorf("creating swap request: %w", err)
	}

	return swap, nil
}

func (s *SwapService) GetByID(ctx context.Context, id uuid.UUID) (*models.SwapRequest, error) {
	swap, err := scanSwap(s.db.QueryRow(ctx,
		`SELECT `+swapColumns+` FROM swap_requests WHERE id = $1`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSwapNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting swap request: %w", err)
	}
	return swap, nil
}

// Accept moves a pending request to accepted. Target only.
func (s *SwapService) Accept(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error) {
	return s.resolvePending(ctx, id, actorID, models.SwapStatusAccepted)
}

// Reject moves a pending request to rejected. Target only.
func (s *SwapService) Reject(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error) {
	return s.resolvePending(ctx, id, actorID, models.SwapStatusRejected)
}

func (s *SwapService) resolvePending(ctx context.Context, id, actorID uuid.UUID, to models.SwapStatus) (*models.SwapRequest, error) {
	swap, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap.TargetID != actorID {
		return nil, ErrNotSwapTarget
	}
	if swap.Status != models.SwapStatusPending {
		return nil, ErrSwapNotPending
	}

	updated, err := scanSwap(s.db.QueryRow(ctx,
		`UPDATE swap_requests
		 SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND status = 'pending'
		 RETURNING `+swapColumns,
		to, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		// Lost the race: someone else already resolved it.
		return nil, ErrSwapNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("updating swap status: %w", err)
	}

	return updated, nil
}

// Delete removes a request outright. Requester only, and only while the
// request is still pending.
func (s *SwapService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	swap, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if swap.RequesterID != actorID {
		return ErrNotSwapRequester
	}
	if swap.Status != models.SwapStatusPending {
		return ErrSwapNotPending
	}

	result, err := s.db.Exec(ctx,
		`DELETE FROM swap_requests WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting swap request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSwapNotPending
	}
	return nil
}

// Complete moves an accepted request to completed and credits both parties'
// completed-swap counters in the same transaction.
func (s *SwapService) Complete(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error) {
	swap, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID != swap.RequesterID && actorID != swap.TargetID {
		return nil, ErrNotSwapParticipant
	}
	if swap.Status != models.SwapStatusAccepted {
		return nil, ErrSwapNotAccepted
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin complete transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	updated, err := scanSwap(tx.QueryRow(ctx,
		`UPDATE swap_requests
		 SET status = 'completed', updated_at = NOW()
		 WHERE id = $1 AND status = 'accepted'
		 RETURNING `+swapColumns,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSwapNotAccepted
	}
	if err != nil {
		return nil, fmt.Errorf("completing swap request: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET completed_swaps = completed_swaps + 1, updated_at = NOW()
		 WHERE id = ANY($1)`,
		[]uuid.UUID{updated.RequesterID, updated.TargetID},
	)
	if err != nil {
		return nil, fmt.Errorf("updating completed counters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit complete: %w", err)
	}
	committed = true

	return updated, nil
}

// Rate records the requester's 1-5 rating of a completed swap and folds it
// into the target's average.
func (s *SwapService) Rate(ctx context.Context, id, actorID uuid.UUID, rating int) (*models.SwapRequest, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrRatingOutOfRange
	}

	swap, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap.RequesterID != actorID {
		return nil, ErrNotSwapRequester
	}
	if swap.Status != models.SwapStatusCompleted {
		return nil, ErrSwapNotCompleted
	}
	if swap.Rating != nil {
		return nil, ErrSwapAlreadyRated
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin rate transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	updated, err := scanSwap(tx.QueryRow(ctx,
		`UPDATE swap_requests
		 SET rating = $1, updated_at = NOW()
		 WHERE id = $2 AND status = 'completed' AND rating IS NULL
		 RETURNING `+swapColumns,
		rating, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSwapAlreadyRated
	}
	if err != nil {
		return nil, fmt.Errorf("rating swap request: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users
		 SET rating = (SELECT COALESCE(AVG(rating), 0)
		               FROM swap_requests
		               WHERE target_id = $1 AND rating IS NOT NULL),
		     updated_at = NOW()
		 WHERE id = $1`,
		updated.TargetID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating target rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit rate: %w", err)
	}
	committed = true

	return updated, nil
}

// ListForViewer returns the viewer's requests for one tab, newest first,
// with the counterpart profiles attached.
func (s *SwapService) ListForViewer(ctx context.Context, viewerID uuid.UUID, direction models.SwapDirection) ([]models.SwapRequest, error) {
	var column string
	switch direction {
	case models.SwapDirectionReceived:
		column = "target_id"
	case models.SwapDirectionSent:
		column = "requester_id"
	default:
		return nil, ErrUnknownDirection
	}

	rows, err := s.db.Query(ctx,
		`SELECT `+swapColumns+` FROM swap_requests
		 WHERE `+column+` = $1
		 ORDER BY created_at DESC`,
		viewerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing swap requests: %w", err)
	}
	defer rows.Close()

	var swaps []models.SwapRequest
	for rows.Next() {
		swap := &models.SwapRequest{}
		if err := rows.Scan(
			&swap.ID, &swap.RequesterID, &swap.TargetID,
			&swap.SkillOffered, &swap.SkillWanted, &swap.Message,
			&swap.Status, &swap.Rating, &swap.CreatedAt, &swap.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning swap request: %w", err)
		}
		swaps = append(swaps, *swap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing swap requests: %w", err)
	}

	if swaps == nil {
		return []models.SwapRequest{}, nil
	}

	// Hydrate counterpart profiles, one directory lookup per distinct user.
	profiles := make(map[uuid.UUID]*models.PublicProfile)
	for i := range swaps {
		for _, userID := range []uuid.UUID{swaps[i].RequesterID, swaps[i].TargetID} {
			if _, ok := profiles[userID]; ok {
				continue
			}
			profile, err := s.directory.GetProfile(ctx, userID)
			if errors.Is(err, ErrUserNotFound) {
				profiles[userID] = nil
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("loading profile: %w", err)
			}
			profiles[userID] = profile
		}
		swaps[i].Requester = profiles[swaps[i].RequesterID]
		swaps[i].Target = profiles[swaps[i].TargetID]
	}

	return swaps, nil
}

// CountByDirection returns the received/sent totals for badge display.
func (s *SwapService) CountByDirection(ctx context.Context, viewerID uuid.UUID) (*models.SwapCounts, error) {
	counts := &models.SwapCounts{}
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE target_id = $1),
		        COUNT(*) FILTER (WHERE requester_id = $1)
		 FROM swap_requests
		 WHERE target_id = $1 OR requester_id = $1`,
		viewerID,
	).Scan(&counts.Received, &counts.Sent)
	if err != nil {
		return nil, fmt.Errorf("counting swap requests: %w", err)
	}
	return counts, nil
}
