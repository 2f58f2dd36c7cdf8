// Package ws streams the current sky over WebSocket.
package ws

import (
	"context"
	"net/http"
	"time"

	"AstroInsight/internal/domain/models"
	"AstroInsight/internal/usecase"
	applogger "AstroInsight/pkg/logger"
	"AstroInsight/pkg/util"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 25 * time.Second
	minInterval  = time.Second
)

// Message is one frame of the stream.
type Message struct {
	Type  string            `json:"type"`
	Data  *models.SkyResult `json:"data,omitempty"`
	Error string            `json:"error,omitempty"`
}

// Frame types.
const (
	TypeSky   = "sky"
	TypeError = "error"
)

// SkyStream pushes the sky to every connected client at a fixed interval.
// Clients may ask for a slower or faster cadence with ?interval=<seconds>.
type SkyStream struct {
	charts   *usecase.ChartService
	interval time.Duration
	logger   *applogger.Logger
	upgrader websocket.Upgrader
}

func NewSkyStream(charts *usecase.ChartService, interval time.Duration, logger *applogger.Logger) *SkyStream {
	return &SkyStream{
		charts:   charts,
		interval: interval,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// CORS middleware already applies to the upgrade request
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *SkyStream) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/sky", s.Stream)
}

func (s *SkyStream) Stream(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already answered the client
		s.logger.Warn("ws upgrade failed", applogger.Error(err))
		return nil
	}
	defer conn.Close()

	interval := util.ParseSecondsDefault(c.QueryParam("interval"), s.interval)
	if interval < minInterval {
		interval = minInterval
	}
	l := s.logger.WithContext(c.Request().Context()).With(applogger.String("remote", c.RealIP()))
	l.Info("ws client connected", applogger.Duration("interval_ms", interval))

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	go readLoop(conn, cancel)
	go pingLoop(ctx, conn)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := s.push(ctx, conn); err != nil {
			l.Info("ws client gone", applogger.Error(err))
			return nil
		}
		select {
		case <-ctx.Done():
			l.Info("ws client disconnected")
			return nil
		case <-ticker.C:
		}
	}
}

// push writes one frame. Ephemeris failures are reported to the client and
// keep the stream open; only write errors end it.
func (s *SkyStream) push(ctx context.Context, conn *websocket.Conn) error {
	msg := Message{Type: TypeSky}
	sky, err := s.charts.Today(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("ws sky failed", applogger.Error(err))
		msg = Message{Type: TypeError, Error: "sky unavailable"}
	} else {
		msg.Data = &sky
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

// readLoop drains client frames so control messages are processed, and
// cancels the stream once the connection is closed.
func readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
