// Package api exposes the match engine to an external dispatcher over HTTP
// plus a websocket event feed. The dispatcher owns presentation; this layer
// only translates requests into engine calls and rejections into status
// codes.
package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/louisbranch/omerta/internal/engine"
	"github.com/louisbranch/omerta/internal/errors"
	"github.com/louisbranch/omerta/internal/storage"
)

// NewRouter wires all dispatcher routes.
func NewRouter(match *engine.Match, store storage.PlayerStore, feed *Feed) *gin.Engine {
	r := gin.Default()

	r.POST("/match/start", startMatch(match))
	r.POST("/match/stop", stopMatch(match))
	r.POST("/match/advance", advanceMatch(match))
	r.POST("/match/join", joinMatch(match))
	r.POST("/match/leave", leaveMatch(match))
	r.POST("/match/votes/day", dayVote(match))
	r.POST("/match/votes/evening", eveningVote(match))
	r.POST("/match/actions", roleAction(match))
	r.POST("/match/skip", skipTurn(match))
	r.POST("/match/cancel", cancelVote(match))
	r.POST("/match/items/buy", buyItem(match))
	r.GET("/match/state", matchState(match))
	r.GET("/leaderboard", leaderboard(store))
	r.POST("/leaderboard/recalculate", recalculateRatings(store))
	r.GET("/events", func(c *gin.Context) {
		feed.Serve(c.Writer, c.Request)
	})

	return r
}

// respondError maps domain rejections onto HTTP statuses; anything without
// a code is a 500.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	message := err.Error()
	var domainErr *errors.Error
	if stderrors.As(err, &domainErr) {
		message = domainErr.Message
	}
	c.JSON(code.HTTPStatus(), gin.H{
		"code":    code,
		"message": message,
	})
}

func respondOK(c *gin.Context) {
	c.Status(http.StatusOK)
}
