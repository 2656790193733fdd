package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = 54 * time.Second

	// The console never sends payloads, only control frames.
	maxMessageSize = 512
)

// liveHandler streams dashboard metrics over a websocket, recomputed for every
// snapshot the live service delivers.
type liveHandler struct {
	liveService      portssvc.LiveSvc
	analyticsService portssvc.AnalyticsSvc
	upgrader         websocket.Upgrader
}

func registerLiveRoutes(rg *gin.RouterGroup, liveService portssvc.LiveSvc, analyticsService portssvc.AnalyticsSvc, allowedOrigins []string) {
	h := &liveHandler{
		liveService:      liveService,
		analyticsService: analyticsService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
	rg.GET("/live/dashboard", h.dashboard)
}

// originChecker accepts requests without an Origin header and origins starting with
// one of allowed. An empty allow list accepts everything.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if strings.HasPrefix(origin, a) {
				return true
			}
		}
		return false
	}
}

// dashboard godoc
// @Summary Live dashboard stream
// @Description Upgrades to a websocket that receives a dto.DashboardResponse now and after every change to the record store. Browsers pass the token as access_token.
// @Tags live
// @Param access_token query string false "JWT for clients that cannot set headers"
// @Param buildingId query string false "Building ID"
// @Param workerId query string false "Worker user ID"
// @Param clientId query string false "Client user ID"
// @Success 101 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Live updates unavailable"
// @Security BearerAuth
// @Router /live/dashboard [get]
func (h *liveHandler) dashboard(c *gin.Context) {
	logger := loggerFor(c)
	q, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	snaps, err := h.liveService.Subscribe(ctx, nil)
	if err != nil {
		logger.Warn("Live subscription failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Live updates unavailable"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already answered the client.
		logger.Warn("Failed to upgrade websocket", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()
	logger.Info("Live dashboard connected")

	go readPump(conn, cancel, logger)
	h.writePump(ctx, conn, snaps, q, logger)
	logger.Info("Live dashboard disconnected")
}

// readPump discards client frames so pongs and close frames are processed.
// It cancels the subscription once the connection is gone.
func readPump(conn *websocket.Conn, cancel context.CancelFunc, logger *slog.Logger) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseNoStatusReceived,
			) {
				logger.Warn("Websocket read error", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (h *liveHandler) writePump(ctx context.Context, conn *websocket.Conn, snaps <-chan domain.Snapshot, q dto.AnalyticsQuery, logger *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snaps:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "live updates stopped"))
				return
			}
			resp, err := h.analyticsService.DashboardFromSnapshot(snap, q)
			if err != nil {
				logger.Warn("Failed to compute live dashboard", slog.String("error", err.Error()))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
				return
			}
			if err := conn.WriteJSON(resp); err != nil {
				logger.Warn("Failed to send live dashboard", slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
