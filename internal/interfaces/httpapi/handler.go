package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/pitchside/matchsync/internal/usecase"
)

// matchSyncRunner is the slice of MatchSyncService the handler needs.
type matchSyncRunner interface {
	SyncMatch(ctx context.Context, providerMatchID int64) (usecase.SyncResult, error)
}

// resultReader exposes the poller's cached per-match outcomes.
type resultReader interface {
	Track(providerMatchID int64)
	LastResult(ctx context.Context, providerMatchID int64) (usecase.SyncResult, bool)
}

type Handler struct {
	syncService matchSyncRunner
	poller      resultReader
	logger      *slog.Logger
	validator   *validator.Validate
}

func NewHandler(syncService matchSyncRunner, poller resultReader, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		syncService: syncService,
		poller:      poller,
		logger:      logger,
		validator:   validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// RunSyncMatchJob triggers one full reconciliation for a single provider
// match and returns the outcome. With track=true the match also joins the
// polling set for follow-up syncs.
func (h *Handler) RunSyncMatchJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncMatchJob")
	defer span.End()

	var req syncMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SyncMatch(ctx, req.ProviderMatchID)
	if err != nil {
		h.logger.WarnContext(ctx, "sync match job failed", "provider_match_id", req.ProviderMatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if req.Track && h.poller != nil {
		h.poller.Track(req.ProviderMatchID)
	}

	writeSuccess(ctx, w, http.StatusOK, syncResultToDTO(result))
}

// GetSyncResult returns the most recent cached outcome for one match.
func (h *Handler) GetSyncResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSyncResult")
	defer span.End()

	providerMatchID, err := strconv.ParseInt(r.PathValue("matchID"), 10, 64)
	if err != nil || providerMatchID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: match id must be a positive integer", usecase.ErrInvalidInput))
		return
	}
	if h.poller == nil {
		writeError(ctx, w, fmt.Errorf("%w: poller is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, ok := h.poller.LastResult(ctx, providerMatchID)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no sync result retained for match %d", usecase.ErrNotFound, providerMatchID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncResultToDTO(result))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type syncMatchRequest struct {
	ProviderMatchID int64 `json:"providerMatchId" validate:"required,gt=0"`
	Track           bool  `json:"track"`
}

type reconcileCountsDTO struct {
	Created  int `json:"created"`
	Retained int `json:"retained"`
	Deleted  int `json:"deleted"`
}

type syncResultDTO struct {
	ProviderMatchID int64              `json:"providerMatchId"`
	Status          string             `json:"status"`
	Success         bool               `json:"success"`
	FailureReason   string             `json:"failureReason,omitempty"`
	Participants    reconcileCountsDTO `json:"participants"`
	Events          reconcileCountsDTO `json:"events"`
	TeamStats       reconcileCountsDTO `json:"teamStats"`
	PlayerStats     reconcileCountsDTO `json:"playerStats"`
	SyncedAtUTC     string             `json:"syncedAtUtc"`
}

func syncResultToDTO(result usecase.SyncResult) syncResultDTO {
	return syncResultDTO{
		ProviderMatchID: result.ProviderMatchID,
		Status:          result.Status,
		Success:         result.Success,
		FailureReason:   result.FailureReason,
		Participants:    reconcileCountsDTO(result.Participants),
		Events:          reconcileCountsDTO(result.Events),
		TeamStats:       reconcileCountsDTO(result.TeamStats),
		PlayerStats:     reconcileCountsDTO(result.PlayerStats),
		SyncedAtUTC:     result.SyncedAt.UTC().Format(time.RFC3339),
	}
}
