package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/louisbranch/omerta/internal/engine"
	"github.com/louisbranch/omerta/internal/engine/role"
	"github.com/louisbranch/omerta/internal/storage"
)

type playerRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Name     string `json:"name"`
}

type voteRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Target   int    `json:"target" binding:"required"`
}

type verdictRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Verdict  *bool  `json:"verdict" binding:"required"`
}

type actionRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
	Target   int    `json:"target" binding:"required"`
}

type cancelRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	// Target scopes the cancellation to activity aimed at one player.
	// Zero cancels everything.
	Target int `json:"target"`
}

type buyRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Item     int    `json:"item" binding:"required"`
}

func startMatch(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := match.RequestStart(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

func stopMatch(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := match.RequestStop(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

func advanceMatch(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := match.AdvanceCollecting(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

func joinMatch(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req playerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		name := req.Name
		if name == "" {
			name = req.PlayerID
		}
		if err := match.Join(c.Request.Context(), req.PlayerID, name); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

func leaveMatch(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req playerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		if err := match.Leave(c.Request.Context(), req.PlayerID); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

func dayVote(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req voteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		if err := match.SubmitVote(c.Request.Context(), req.PlayerID, req.Target); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

func eveningVote(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verdictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		if err := match.SubmitVerdict(c.Request.Context(), req.PlayerID, *req.Verdict); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

// actions the dispatcher may submit on a player's behalf.
var knownActions = map[string]role.Action{
	string(role.ActionKill):     role.ActionKill,
	string(role.ActionHeal):     role.ActionHeal,
	string(role.ActionCheck):    role.ActionCheck,
	string(role.ActionVisit):    role.ActionVisit,
	string(role.ActionBlock):    role.ActionBlock,
	string(role.ActionCurse):    role.ActionCurse,
	string(role.ActionJustify):  role.ActionJustify,
	string(role.ActionImprison): role.ActionImprison,
	string(role.ActionDestroy):  role.ActionDestroy,
	string(role.ActionGo):       role.ActionGo,
}

func roleAction(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req actionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		action, ok := knownActions[req.Action]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"code": "UNKNOWN_ACTION", "message": "unknown action"})
			return
		}
		if err := match.SubmitRoleAction(c.Request.Context(), req.PlayerID, action, req.Target); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

func skipTurn(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req playerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		if err := match.SubmitSkip(c.Request.Context(), req.PlayerID); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

func cancelVote(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cancelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		if err := match.SubmitCancel(c.Request.Context(), req.PlayerID, req.Target); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

func buyItem(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req buyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		if err := match.BuyItem(c.Request.Context(), req.PlayerID, req.Item); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

func matchState(match *engine.Match) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := match.Snapshot(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

func recalculateRatings(store storage.PlayerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			respondOK(c)
			return
		}
		if err := store.RecalculateRatings(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c)
	}
}

func leaderboard(store storage.PlayerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusOK, []storage.PlayerRecord{})
			return
		}
		field := c.DefaultQuery("by", "total_points")
		limit := 10
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		records, err := store.TopPlayers(c.Request.Context(), field, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		if records == nil {
			records = []storage.PlayerRecord{}
		}
		c.JSON(http.StatusOK, records)
	}
}
