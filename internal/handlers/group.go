package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ajoapp/backend/internal/ajo"
	"github.com/ajoapp/backend/internal/middleware"
)

// GroupHandler serves the group lifecycle operations. All state changes
// go through the registry; the authenticated caller's user id is the
// member identity.
type GroupHandler struct {
	registry *ajo.Registry
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(registry *ajo.Registry) *GroupHandler {
	return &GroupHandler{registry: registry}
}

type createGroupRequest struct {
	ContributionAmount int64 `json:"contribution_amount"`
	CycleDuration      int64 `json:"cycle_duration"`
	MaxMembers         int   `json:"max_members"`
}

type metadataRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rules       string `json:"rules"`
}

func groupID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return 0, false
	}
	return id, true
}

// CreateGroup creates a new group with the caller as creator and first
// member in rotation.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.registry.CreateGroup(c.Request.Context(), middleware.UserID(c),
		req.ContributionAmount, req.CycleDuration, req.MaxMembers)
	if err != nil {
		fail(c, err)
		return
	}

	group, err := h.registry.Group(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// JoinGroup adds the caller to the group.
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	if err := h.registry.JoinGroup(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "joined group"})
}

// Contribute records the caller's contribution for the current cycle,
// moving funds from their escrow account into the group pool.
func (h *GroupHandler) Contribute(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	if err := h.registry.Contribute(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contribution recorded"})
}

// ExecutePayout distributes the cycle pool to the rotation recipient and
// advances the cycle.
func (h *GroupHandler) ExecutePayout(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	if err := h.registry.ExecutePayout(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	status, err := h.registry.GroupStatus(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payout executed", "status": status})
}

// CancelGroup cancels the group before its first payout, refunding the
// current cycle's contributors. Creator only.
func (h *GroupHandler) CancelGroup(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	if err := h.registry.CancelGroup(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "group cancelled"})
}

// GetGroup returns the group record.
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	group, err := h.registry.Group(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// GetStatus returns the composite point-in-time snapshot of the group.
func (h *GroupHandler) GetStatus(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	status, err := h.registry.GroupStatus(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// ListMembers returns the member list in rotation order.
func (h *GroupHandler) ListMembers(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	members, err := h.registry.ListMembers(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// ListContributions returns per-member contribution flags for a cycle
// (default: the current cycle).
func (h *GroupHandler) ListContributions(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	cycle := 0
	if raw := c.Query("cycle"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cycle"})
			return
		}
		cycle = n
	}
	if cycle == 0 {
		group, err := h.registry.Group(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		cycle = group.CurrentCycle
	}

	status, err := h.registry.ContributionStatus(c.Request.Context(), id, cycle)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycle": cycle, "contributions": status})
}

// ListPayouts returns the group's payout audit trail.
func (h *GroupHandler) ListPayouts(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	payouts, err := h.registry.Payouts(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payouts": payouts})
}

// SetMetadata sets or updates the group's display metadata. Creator only.
func (h *GroupHandler) SetMetadata(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	var req metadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.registry.SetMetadata(c.Request.Context(), id, middleware.UserID(c),
		req.Name, req.Description, req.Rules)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "metadata updated"})
}

// GetMetadata returns the group's display metadata.
func (h *GroupHandler) GetMetadata(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	meta, err := h.registry.Metadata(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"metadata": meta})
}
