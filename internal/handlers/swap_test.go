package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/davidmorel/skillswap/internal/models"
	"github.com/davidmorel/skillswap/internal/services"
	"github.com/davidmorel/skillswap/internal/testutil"
)

func authedRequest(t *testing.T, user *models.User, method, path string, body any) *http.Request {
	t.Helper()
	req := testutil.NewTestRequestWithJSON(t, method, path, body)
	return req.WithContext(SetUserInContext(req.Context(), user))
}

func testUser() *models.User {
	return &models.User{ID: uuid.New(), Email: "me@example.com", DisplayName: "Me"}
}

func TestSwapHandler_Create_Unauthenticated(t *testing.T) {
	h := NewSwapHandler(&mockSwapService{})
	req := testutil.NewTestRequestWithJSON(t, http.MethodPost, "/api/swaps", CreateSwapRequest{})
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusUnauthorized)
}

func TestSwapHandler_Create_InvalidTargetID(t *testing.T) {
	h := NewSwapHandler(&mockSwapService{})
	req := authedRequest(t, testUser(), http.MethodPost, "/api/swaps", CreateSwapRequest{
		TargetID:     "not-a-uuid",
		SkillOffered: "Photoshop",
		SkillWanted:  "Excel",
	})
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusBadRequest)
}

func TestSwapHandler_Create_Success(t *testing.T) {
	user := testUser()
	targetID := uuid.New()
	svc := &mockSwapService{
		CreateFunc: func(ctx context.Context, params models.CreateSwapParams) (*models.SwapRequest, error) {
			if params.RequesterID != user.ID {
				t.Fatalf("expected requester %v, got %v", user.ID, params.RequesterID)
			}
			if params.TargetID != targetID {
				t.Fatalf("expected target %v, got %v", targetID, params.TargetID)
			}
			return &models.SwapRequest{
				ID:          uuid.New(),
				RequesterID: params.RequesterID,
				TargetID:    params.TargetID,
				Status:      models.SwapStatusPending,
			}, nil
		},
	}

	h := NewSwapHandler(svc)
	req := authedRequest(t, user, http.MethodPost, "/api/swaps", CreateSwapRequest{
		TargetID:     targetID.String(),
		SkillOffered: "Photoshop",
		SkillWanted:  "Excel",
		Message:      "hi",
	})
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusCreated)
}

func TestSwapHandler_Create_SkillNotOffered(t *testing.T) {
	svc := &mockSwapService{
		CreateFunc: func(ctx context.Context, params models.CreateSwapParams) (*models.SwapRequest, error) {
			return nil, services.ErrSkillNotOffered
		},
	}

	h := NewSwapHandler(svc)
	req := authedRequest(t, testUser(), http.MethodPost, "/api/swaps", CreateSwapRequest{
		TargetID:     uuid.New().String(),
		SkillOffered: "Machine Learning",
		SkillWanted:  "React",
	})
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusBadRequest)
}

func TestSwapHandler_Create_TargetNotFound(t *testing.T) {
	svc := &mockSwapService{
		CreateFunc: func(ctx context.Context, params models.CreateSwapParams) (*models.SwapRequest, error) {
			return nil, services.ErrUserNotFound
		},
	}

	h := NewSwapHandler(svc)
	req := authedRequest(t, testUser(), http.MethodPost, "/api/swaps", CreateSwapRequest{
		TargetID:     uuid.New().String(),
		SkillOffered: "Photoshop",
		SkillWanted:  "Excel",
	})
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusNotFound)
}

func TestSwapHandler_List_DefaultsToReceived(t *testing.T) {
	var gotDirection models.SwapDirection
	svc := &mockSwapService{
		ListForViewerFunc: func(ctx context.Context, viewerID uuid.UUID, direction models.SwapDirection) ([]models.SwapRequest, error) {
			gotDirection = direction
			return []models.SwapRequest{}, nil
		},
	}

	h := NewSwapHandler(svc)
	req := authedRequest(t, testUser(), http.MethodGet, "/api/swaps", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusOK)
	if gotDirection != models.SwapDirectionReceived {
		t.Fatalf("expected received direction, got %q", gotDirection)
	}
}

func TestSwapHandler_List_SentDirection(t *testing.T) {
	var gotDirection models.SwapDirection
	svc := &mockSwapService{
		ListForViewerFunc: func(ctx context.Context, viewerID uuid.UUID, direction models.SwapDirection) ([]models.SwapRequest, error) {
			gotDirection = direction
			return []models.SwapRequest{{ID: uuid.New()}}, nil
		},
	}

	h := NewSwapHandler(svc)
	req := authedRequest(t, testUser(), http.MethodGet, "/api/swaps?direction=sent", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusOK)
	if gotDirection != models.SwapDirectionSent {
		t.Fatalf("expected sent direction, got %q", gotDirection)
	}
	body := testutil.ParseJSONResponse(t, rr.Body.Bytes())
	if body["count"] != float64(1) {
		t.Fatalf("expected count 1, got %v", body["count"])
	}
}

func TestSwapHandler_List_UnknownDirection(t *testing.T) {
	svc := &mockSwapService{
		ListForViewerFunc: func(ctx context.Context, viewerID uuid.UUID, direction models.SwapDirection) ([]models.SwapRequest, error) {
			return nil, services.ErrUnknownDirection
		},
	}

	h := NewSwapHandler(svc)
	req := authedRequest(t, testUser(), http.MethodGet, "/api/swaps?direction=sideways", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusBadRequest)
}

func TestSwapHandler_Counts(t *testing.T) {
	svc := &mockSwapService{
		CountByDirectionFunc: func(ctx context.Context, viewerID uuid.UUID) (*models.SwapCounts, error) {
			return &models.SwapCounts{Received: 3, Sent: 1}, nil
		},
	}

	h := NewSwapHandler(svc)
	req := authedRequest(t, testUser(), http.MethodGet, "/api/swaps/counts", nil)
	rr := httptest.NewRecorder()

	h.Counts(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusOK)
	testutil.AssertJSONContains(t, rr.Body.Bytes(), "received", float64(3))
	testutil.AssertJSONContains(t, rr.Body.Bytes(), "sent", float64(1))
}

func TestSwapHandler_Accept_Success(t *testing.T) {
	user := testUser()
	swapID := uuid.New()
	svc := &mockSwapService{
		AcceptFunc: func(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error) {
			if id != swapID || actorID != user.ID {
				t.Fatalf("unexpected args: %v %v", id, actorID)
			}
			return &models.SwapRequest{ID: id, Status: models.SwapStatusAccepted}, nil
		},
	}

	h := NewSwapHandler(svc)
	req := authedRequest(t, user, http.MethodPut, "/api/swaps/"+swapID.String()+"/accept", nil)
	req.SetPathValue("id", swapID.String())
	rr := httptest.NewRecorder()

	h.Accept(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusOK)
}

func TestSwapHandler_Accept_InvalidID(t *testing.T) {
	h := NewSwapHandler(&mockSwapService{})
	req := authedRequest(t, testUser(), http.MethodPut, "/api/swaps/nope/accept", nil)
	req.SetPathValue("id", "nope")
	rr := httptest.NewRecorder()

	h.Accept(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusBadRequest)
}

func TestSwapHandler_Accept_NotTarget(t *testing.T) {
	svc := &mockSwapService{
		AcceptFunc: func(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error) {
			return nil, services.ErrNotSwapTarget
		},
	}

	h := NewSwapHandler(svc)
	swapID := uuid.New()
	req := authedRequest(t, testUser(), http.MethodPut, "/api/swaps/"+swapID.String()+"/accept", nil)
	req.SetPathValue("id", swapID.String())
	rr := httptest.NewRecorder()

	h.Accept(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusForbidden)
}

func TestSwapHandler_Accept_NotPending(t *testing.T) {
	svc := &mockSwapService{
		AcceptFunc: func(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error) {
			return nil, services.ErrSwapNotPending
		},
	}

	h := NewSwapHandler(svc)
	swapID := uuid.New()
	req := authedRequest(t, testUser(), http.MethodPut, "/api/swaps/"+swapID.String()+"/accept", nil)
	req.SetPathValue("id", swapID.String())
	rr := httptest.NewRecorder()

	h.Accept(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusConflict)
}

func TestSwapHandler_Reject_NotFound(t *testing.T) {
	svc := &mockSwapService{
		RejectFunc: func(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error) {
			return nil, services.ErrSwapNotFound
		},
	}

	h := NewSwapHandler(svc)
	swapID := uuid.New()
	req := authedRequest(t, testUser(), http.MethodPut, "/api/swaps/"+swapID.String()+"/reject", nil)
	req.SetPathValue("id", swapID.String())
	rr := httptest.NewRecorder()

	h.Reject(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusNotFound)
}

func TestSwapHandler_Complete_NotAccepted(t *testing.T) {
	svc := &mockSwapService{
		CompleteFunc: func(ctx context.Context, id, actorID uuid.UUID) (*models.SwapRequest, error) {
			return nil, services.ErrSwapNotAccepted
		},
	}

	h := NewSwapHandler(svc)
	swapID := uuid.New()
	req := authedRequest(t, testUser(), http.MethodPut, "/api/swaps/"+swapID.String()+"/complete", nil)
	req.SetPathValue("id", swapID.String())
	rr := httptest.NewRecorder()

	h.Complete(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusConflict)
}

func TestSwapHandler_Delete_Success(t *testing.T) {
	user := testUser()
	swapID := uuid.New()
	svc := &mockSwapService{
		DeleteFunc: func(ctx context.Context, id, actorID uuid.UUID) error {
			if id != swapID || actorID != user.ID {
				t.Fatalf("unexpected args: %v %v", id, actorID)
			}
			return nil
		},
	}

	h := NewSwapHandler(svc)
	req := authedRequest(t, user, http.MethodDelete, "/api/swaps/"+swapID.String(), nil)
	req.SetPathValue("id", swapID.String())
	rr := httptest.NewRecorder()

	h.Delete(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusOK)
}

func TestSwapHandler_Delete_NotRequester(t *testing.T) {
	svc := &mockSwapService{
		DeleteFunc: func(ctx context.Context, id, actorID uuid.UUID) error {
			return services.ErrNotSwapRequester
		},
	}

	h := NewSwapHandler(svc)
	swapID := uuid.New()
	req := authedRequest(t, testUser(), http.MethodDelete, "/api/swaps/"+swapID.String(), nil)
	req.SetPathValue("id", swapID.String())
	rr := httptest.NewRecorder()

	h.Delete(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusForbidden)
}

func TestSwapHandler_Rate_Success(t *testing.T) {
	user := testUser()
	swapID := uuid.New()
	svc := &mockSwapService{
		RateFunc: func(ctx context.Context, id, actorID uuid.UUID, rating int) (*models.SwapRequest, error) {
			if rating != 5 {
				t.Fatalf("expected rating 5, got %d", rating)
			}
			r := rating
			return &models.SwapRequest{ID: id, Status: models.SwapStatusCompleted, Rating: &r}, nil
		},
	}

	h := NewSwapHandler(svc)
	req := authedRequest(t, user, http.MethodPost, "/api/swaps/"+swapID.String()+"/rating", RateSwapRequest{Rating: 5})
	req.SetPathValue("id", swapID.String())
	rr := httptest.NewRecorder()

	h.Rate(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusOK)
}

func TestSwapHandler_Rate_OutOfRange(t *testing.T) {
	svc := &mockSwapService{
		RateFunc: func(ctx context.Context, id, actorID uuid.UUID, rating int) (*models.SwapRequest, error) {
			return nil, services.ErrRatingOutOfRange
		},
	}

	h := NewSwapHandler(svc)
	swapID := uuid.New()
	req := authedRequest(t, testUser(), http.MethodPost, "/api/swaps/"+swapID.String()+"/rating", RateSwapRequest{Rating: 9})
	req.SetPathValue("id", swapID.String())
	rr := httptest.NewRecorder()

	h.Rate(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusBadRequest)
}

func TestSwapHandler_Rate_AlreadyRated(t *testing.T) {
	svc := &mockSwapService{
		RateFunc: func(ctx context.Context, id, actorID uuid.UUID, rating int) (*models.SwapRequest, error) {
			return nil, services.ErrSwapAlreadyRated
		},
	}

	h := NewSwapHandler(svc)
	swapID := uuid.New()
	req := authedRequest(t, testUser(), http.MethodPost, "/api/swaps/"+swapID.String()+"/rating", RateSwapRequest{Rating: 4})
	req.SetPathValue("id", swapID.String())
	rr := httptest.NewRecorder()

	h.Rate(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusConflict)
}
