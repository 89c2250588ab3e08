// internal/adapters/rest/handlers.go
package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/application"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/logger"
)

type Handler struct {
	store    *application.UserStore
	auth     *application.AuthService
	progress *application.ProgressService
	log      logger.Logger
	ready    func(ctx context.Context) error
}

func NewHandler(store *application.UserStore, authService *application.AuthService, progress *application.ProgressService, log logger.Logger) *Handler {
	return &Handler{store: store, auth: authService, progress: progress, log: log}
}

// WithReadiness sets the check behind GET /readyz.
func (h *Handler) WithReadiness(check func(ctx context.Context) error) *Handler {
	h.ready = check
	return h
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type targetRequest struct {
	DailyTarget *int `json:"daily_target" binding:"required"`
}

type startRequest struct {
	Payload string `json:"payload" binding:"required"`
}

type completeRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

func badJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Failure(http.StatusBadRequest, "Invalid JSON: "+err.Error()))
}

func (h *Handler) Signup(c *gin.Context) {
	var req application.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	user, err := h.auth.Signup(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, h.log, err, "Signup failed")
		return
	}
	HandleSuccess(c, http.StatusCreated, user, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		HandleError(c, h.log, err, "Login failed")
		return
	}
	HandleSuccess(c, http.StatusOK, gin.H{
		"token_type":   "Bearer",
		"access_token": token,
		"expires_in":   int64(h.auth.TokenTTL() / time.Second),
		"user":         user,
	}, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), claimsOf(c)); err != nil {
		HandleError(c, h.log, err, "Logout failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.store.GetUser(c.Request.Context(), claimsOf(c).UserID)
	if err != nil {
		HandleError(c, h.log, err, "Failed to fetch profile")
		return
	}
	HandleSuccess(c, http.StatusOK, user, nil)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req application.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	user, err := h.auth.UpdateProfile(c.Request.Context(), claimsOf(c).UserID, &req)
	if err != nil {
		HandleError(c, h.log, err, "Failed to update profile")
		return
	}
	HandleSuccess(c, http.StatusOK, user, nil)
}

func (h *Handler) UpdateDailyTarget(c *gin.Context) {
	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	ctx := c.Request.Context()
	userID := claimsOf(c).UserID
	if err := h.store.UpdateDailyTarget(ctx, userID, *req.DailyTarget); err != nil {
		HandleError(c, h.log, err, "Failed to update daily target")
		return
	}
	user, err := h.store.GetUser(ctx, userID)
	if err != nil {
		HandleError(c, h.log, err, "Failed to fetch profile")
		return
	}
	HandleSuccess(c, http.StatusOK, user, nil)
}

func (h *Handler) StartDelivery(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	d, err := h.store.StartDelivery(c.Request.Context(), claimsOf(c).UserID, req.Payload)
	if err != nil {
		HandleError(c, h.log, err, "Failed to start delivery")
		return
	}
	HandleSuccess(c, http.StatusCreated, d, nil)
}

func (h *Handler) CompleteDelivery(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := h.store.OwnedDelivery(ctx, claimsOf(c).UserID, c.Param("id")); err != nil {
		HandleError(c, h.log, err, "Failed to complete delivery")
		return
	}
	d, err := h.store.CompleteDelivery(ctx, c.Param("id"), req.Confirmation)
	if err != nil {
		HandleError(c, h.log, err, "Failed to complete delivery")
		return
	}
	HandleSuccess(c, http.StatusOK, d, nil)
}

func (h *Handler) CancelDelivery(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.store.OwnedDelivery(ctx, claimsOf(c).UserID, c.Param("id")); err != nil {
		HandleError(c, h.log, err, "Failed to cancel delivery")
		return
	}
	d, err := h.store.CancelDelivery(ctx, c.Param("id"))
	if err != nil {
		HandleError(c, h.log, err, "Failed to cancel delivery")
		return
	}
	HandleSuccess(c, http.StatusOK, d, nil)
}

func (h *Handler) GetDelivery(c *gin.Context) {
	d, err := h.store.OwnedDelivery(c.Request.Context(), claimsOf(c).UserID, c.Param("id"))
	if err != nil {
		HandleError(c, h.log, err, "Failed to fetch delivery")
		return
	}
	HandleSuccess(c, http.StatusOK, d, nil)
}

// queryInt returns 0 for a missing or malformed value.
func queryInt(c *gin.Context, key string) int64 {
	n, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ListDeliveries pages through the history, or returns one day's deliveries
// when ?date=YYYY-MM-DD is given.
func (h *Handler) ListDeliveries(c *gin.Context) {
	if c.Query("date") != "" {
		h.DeliveriesOnDate(c)
		return
	}
	all, err := h.store.DeliveryHistory(c.Request.Context(), claimsOf(c).UserID)
	if err != nil {
		HandleError(c, h.log, err, "Failed to fetch deliveries")
		return
	}
	p := domain.Paginate(int64(len(all)), queryInt(c, "page"), queryInt(c, "limit"))

	HandleSuccess(c, http.StatusOK, all[p.Start:p.End], map[string]any{
		"total":        p.Total,
		"current_page": p.Number,
		"per_page":     p.Size,
		"last_page":    p.LastPage,
	})
}

func (h *Handler) DeliveriesOnDate(c *gin.Context) {
	date, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		HandleError(c, h.log, domain.NewValidationError("date", "must be YYYY-MM-DD"), "Invalid date")
		return
	}
	deliveries, err := h.store.DeliveriesOnDate(c.Request.Context(), claimsOf(c).UserID, date)
	if err != nil {
		HandleError(c, h.log, err, "Failed to fetch deliveries")
		return
	}
	HandleSuccess(c, http.StatusOK, deliveries, map[string]any{"total": len(deliveries)})
}

func (h *Handler) GetProgress(c *gin.Context) {
	summary, err := h.progress.Summary(c.Request.Context(), claimsOf(c).UserID)
	if err != nil {
		HandleError(c, h.log, err, "Failed to compute progress")
		return
	}
	HandleSuccess(c, http.StatusOK, summary, nil)
}

func (h *Handler) ListAchievements(c *gin.Context) {
	labels, err := h.store.Achievements(c.Request.Context(), claimsOf(c).UserID)
	if err != nil {
		HandleError(c, h.log, err, "Failed to fetch achievements")
		return
	}
	HandleSuccess(c, http.StatusOK, labels, nil)
}

// MarkAchievement answers 201 on a first unlock and 200 when the rider
// already held the label.
func (h *Handler) MarkAchievement(c *gin.Context) {
	var req application.AchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	fresh, err := h.store.ClaimAchievement(c.Request.Context(), claimsOf(c).UserID, &req)
	if err != nil {
		HandleError(c, h.log, err, "Failed to unlock achievement")
		return
	}
	code := http.StatusOK
	if fresh {
		code = http.StatusCreated
	}
	HandleSuccess(c, code, gin.H{"label": strings.TrimSpace(req.Label), "newly_unlocked": fresh}, nil)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Ready(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(c.Request.Context()); err != nil {
			h.log.Warnf("readiness check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
