package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"library-circulation/internal/pkg/config"
	"library-circulation/internal/usecase/queries"
	"library-circulation/internal/usecase/shared"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
)

const defaultHeartbeat = 25 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ChangesHandler struct {
	changeQueries queries.ChangeQueries
	heartbeat     time.Duration
}

func NewChangesHandler(changeQueries queries.ChangeQueries, cfg config.Config) *ChangesHandler {
	heartbeat := cfg.ChangeFeed.Heartbeat
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &ChangesHandler{
		changeQueries: changeQueries,
		heartbeat:     heartbeat,
	}
}

// @Summary Stream inventory changes
// @Description Server-Sent Events, one per committed transition. General users only receive checkout events for their own checkouts.
// @Tags changes
// @Security BearerAuth
// @Produce text/event-stream
// @Success 200 {object} shared.ChangeEvent
// @Failure 401 {object} httperr.Response
// @Router /changes [get]
func (h *ChangesHandler) Stream(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	events, err := h.changeQueries.Subscribe(ctx, identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			seq++
			if err := writeEvent(c.Writer, seq, ev); err != nil {
				slog.Debug("change stream closed", "error", err.Error())
				return
			}
			c.Writer.Flush()
		case <-ticker.C:
			if _, err := io.WriteString(c.Writer, ": heartbeat\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}

func writeEvent(w io.Writer, seq uint64, ev shared.ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return sse.Encode(w, sse.Event{
		Id:    strconv.FormatUint(seq, 10),
		Event: string(ev.Kind),
		Data:  string(payload),
	})
}
