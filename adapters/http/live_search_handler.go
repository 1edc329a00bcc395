package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	searchUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/search"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

// LiveSearchHandler upgrades a connection to WebSocket and drives one search
// session per connection: keystrokes come in as messages, debounced result
// snapshots go out.
type LiveSearchHandler struct {
	searchUseCase *searchUC.UnifiedSearchUseCase
	debounceDelay time.Duration
	upgrader      websocket.Upgrader
	logger        logger.Logger
}

func NewLiveSearchHandler(uc *searchUC.UnifiedSearchUseCase, debounceDelay time.Duration, log logger.Logger) *LiveSearchHandler {
	return &LiveSearchHandler{
		searchUseCase: uc,
		debounceDelay: debounceDelay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: log,
	}
}

type liveSearchMessage struct {
	Type      string  `json:"type"`
	Term      string  `json:"term,omitempty"`
	Province  string  `json:"province,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
}

const (
	liveMsgTypeUpdate  = "update"
	liveMsgTypeFilters = "filters"
	liveMsgTypeClear   = "clear"
)

type LiveSearchSnapshotDTO struct {
	State   string                `json:"state"`
	Results UnifiedSearchResponse `json:"results"`
	Error   string                `json:"error,omitempty"`
}

func toLiveSearchSnapshotDTO(snap searchUC.Snapshot) LiveSearchSnapshotDTO {
	return LiveSearchSnapshotDTO{
		State:   snap.State.String(),
		Results: ToUnifiedSearchResponse(snap.Results),
		Error:   snap.Error,
	}
}

func (h *LiveSearchHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", err)
		return
	}
	defer conn.Close()

	// Latest-wins buffer: when the client falls behind, stale snapshots
	// are discarded rather than queued.
	snapshots := make(chan searchUC.Snapshot, 8)
	session := searchUC.NewSession(h.searchUseCase, h.debounceDelay, func(snap searchUC.Snapshot) {
		for {
			select {
			case snapshots <- snap:
				return
			default:
				select {
				case <-snapshots:
				default:
				}
			}
		}
	})
	defer session.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case snap := <-snapshots:
				if err := conn.WriteJSON(toLiveSearchSnapshotDTO(snap)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		var msg liveSearchMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("live search connection closed", zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case liveMsgTypeUpdate:
			session.Update(msg.Term)
		case liveMsgTypeFilters:
			session.SetFilters(course.Filters{Province: msg.Province, MinRating: msg.MinRating})
		case liveMsgTypeClear:
			session.Clear()
		}
	}
}
