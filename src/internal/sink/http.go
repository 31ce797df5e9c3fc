// FILE: logsift/src/internal/sink/http.go
package sink

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"logsift/src/internal/config"
	"logsift/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/lixenwraith/log/compat"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// HTTPSink replays formatted lines to Server-Sent-Events clients. Lines
// are kept in arrival order; every client sees the full output from the
// beginning, then live updates.
type HTTPSink struct {
	// Configuration reference (NOT a copy)
	config *config.ServeConfig

	// Runtime
	server        *fasthttp.Server
	done          chan struct{}
	wg            sync.WaitGroup
	logger        *log.Logger
	activeClients atomic.Int64

	// Replay buffer and client registry share one lock so a connecting
	// client never misses or duplicates a line
	mu           sync.Mutex
	lines        [][]byte
	clients      map[uint64]chan []byte
	nextClientID atomic.Uint64

	// Per-client request limiting
	limiters sync.Map // remote IP -> *rate.Limiter

	// Statistics
	totalWritten  atomic.Uint64
	startTime     time.Time
	lastWrite     atomic.Value // time.Time
	limitedCount  atomic.Uint64
	totalSessions atomic.Uint64
}

// NewHTTPSink creates a new HTTP streaming sink
func NewHTTPSink(opts *config.ServeConfig, logger *log.Logger) (*HTTPSink, error) {
	if opts == nil {
		return nil, fmt.Errorf("serve options cannot be nil")
	}

	h := &HTTPSink{
		config:    opts,
		done:      make(chan struct{}),
		logger:    logger,
		clients:   make(map[uint64]chan []byte),
		startTime: time.Now(),
	}
	h.lastWrite.Store(time.Time{})

	return h, nil
}

// Write records one line and broadcasts it to connected clients.
func (h *HTTPSink) Write(line []byte) error {
	stored := make([]byte, len(line))
	copy(stored, line)

	h.mu.Lock()
	h.lines = append(h.lines, stored)
	for id, ch := range h.clients {
		select {
		case ch <- stored:
		default:
			// Client buffer full, it will miss this line
			h.logger.Debug("msg", "Dropped line for slow client",
				"component", "http_sink",
				"client_id", id)
		}
	}
	h.mu.Unlock()

	h.totalWritten.Add(1)
	h.lastWrite.Store(time.Now())
	return nil
}

// Start boots the HTTP server.
func (h *HTTPSink) Start(ctx context.Context) error {
	fasthttpLogger := compat.NewFastHTTPAdapter(h.logger)

	h.server = &fasthttp.Server{
		Name:              fmt.Sprintf("logsift/%s", version.Short()),
		Handler:           h.requestHandler,
		DisableKeepalive:  false,
		StreamRequestBody: true,
		Logger:            fasthttpLogger,
	}

	addr := fmt.Sprintf("%s:%d", h.config.Host, h.config.Port)

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("msg", "HTTP server started",
			"component", "http_sink",
			"host", h.config.Host,
			"port", h.config.Port,
			"stream_path", h.config.StreamPath,
			"status_path", h.config.StatusPath)

		if err := h.server.ListenAndServe(addr); err != nil {
			errChan <- err
		}
	}()

	go func() {
		<-ctx.Done()
		if h.server != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			h.server.ShutdownWithContext(shutdownCtx)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Close shuts down the server and disconnects all clients.
func (h *HTTPSink) Close() error {
	h.logger.Info("msg", "Stopping HTTP sink")

	close(h.done)

	if h.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		h.server.ShutdownWithContext(ctx)
	}

	h.wg.Wait()

	h.mu.Lock()
	for _, ch := range h.clients {
		close(ch)
	}
	h.clients = make(map[uint64]chan []byte)
	h.mu.Unlock()

	h.logger.Info("msg", "HTTP sink stopped")
	return nil
}

// GetStats returns sink statistics.
func (h *HTTPSink) GetStats() SinkStats {
	lastWrite, _ := h.lastWrite.Load().(time.Time)

	return SinkStats{
		Type:              "http",
		TotalWritten:      h.totalWritten.Load(),
		ActiveConnections: h.activeClients.Load(),
		StartTime:         h.startTime,
		LastWrite:         lastWrite,
		Details: map[string]any{
			"port":        h.config.Port,
			"buffer_size": h.config.BufferSize,
			"endpoints": map[string]string{
				"stream": h.config.StreamPath,
				"status": h.config.StatusPath,
			},
			"rate_limited":   h.limitedCount.Load(),
			"total_sessions": h.totalSessions.Load(),
		},
	}
}

func (h *HTTPSink) requestHandler(ctx *fasthttp.RequestCtx) {
	remoteIP := ctx.RemoteIP().String()

	if h.config.RateLimit > 0 && !h.getLimiter(remoteIP).Allow() {
		h.limitedCount.Add(1)
		h.logger.Warn("msg", "Request rate limited",
			"component", "http_sink",
			"remote_ip", remoteIP)
		ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
		ctx.SetContentType("application/json")
		json.NewEncoder(ctx).Encode(map[string]any{
			"error": "Too many requests",
		})
		return
	}

	switch string(ctx.Path()) {
	case h.config.StreamPath:
		h.handleStream(ctx)
	case h.config.StatusPath:
		h.handleStatus(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetContentType("application/json")
		json.NewEncoder(ctx).Encode(map[string]any{
			"error": "Not Found",
		})
	}
}

// getLimiter returns the request limiter for a client IP.
func (h *HTTPSink) getLimiter(remoteIP string) *rate.Limiter {
	if val, ok := h.limiters.Load(remoteIP); ok {
		return val.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rate.Limit(h.config.RateLimit), int(h.config.RateBurst))
	actual, _ := h.limiters.LoadOrStore(remoteIP, limiter)
	return actual.(*rate.Limiter)
}

func (h *HTTPSink) handleStream(ctx *fasthttp.RequestCtx) {
	remoteAddr := ctx.RemoteAddr().String()

	// SSE headers
	ctx.Response.Header.Set("Content-Type", "text/event-stream")
	ctx.Response.Header.Set("Cache-Control", "no-cache")
	ctx.Response.Header.Set("Connection", "keep-alive")
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("X-Accel-Buffering", "no")

	clientID := h.nextClientID.Add(1)
	h.totalSessions.Add(1)

	// Snapshot the replay buffer and register for live updates in one
	// critical section
	clientChan := make(chan []byte, h.config.BufferSize)
	h.mu.Lock()
	replay := h.lines[:len(h.lines):len(h.lines)]
	h.clients[clientID] = clientChan
	h.mu.Unlock()

	unregister := func() {
		h.mu.Lock()
		if ch, exists := h.clients[clientID]; exists {
			delete(h.clients, clientID)
			close(ch)
		}
		h.mu.Unlock()
	}

	streamFunc := func(w *bufio.Writer) {
		connectCount := h.activeClients.Add(1)
		h.logger.Debug("msg", "HTTP client connected",
			"component", "http_sink",
			"remote_addr", remoteAddr,
			"client_id", clientID,
			"active_clients", connectCount)

		h.wg.Add(1)
		defer func() {
			disconnectCount := h.activeClients.Add(-1)
			h.logger.Debug("msg", "HTTP client disconnected",
				"component", "http_sink",
				"remote_addr", remoteAddr,
				"client_id", clientID,
				"active_clients", disconnectCount)

			unregister()
			h.wg.Done()
		}()

		// Initial connected event
		connectionInfo := map[string]any{
			"client_id":    fmt.Sprintf("%d", clientID),
			"stream_path":  h.config.StreamPath,
			"status_path":  h.config.StatusPath,
			"replay_lines": len(replay),
		}
		data, _ := json.Marshal(connectionInfo)
		fmt.Fprintf(w, "event: connected\ndata: %s\n\n", data)
		if err := w.Flush(); err != nil {
			return
		}

		// Replay everything formatted so far, in order
		for _, line := range replay {
			if err := writeSSE(w, line); err != nil {
				return
			}
		}
		if err := w.Flush(); err != nil {
			return
		}

		var ticker *time.Ticker
		var tickerChan <-chan time.Time
		if h.config.Heartbeat.Enabled {
			ticker = time.NewTicker(time.Duration(h.config.Heartbeat.IntervalSeconds) * time.Second)
			tickerChan = ticker.C
			defer ticker.Stop()
		}

		for {
			select {
			case line, ok := <-clientChan:
				if !ok {
					return
				}
				if err := writeSSE(w, line); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}

			case <-tickerChan:
				heartbeat := map[string]any{
					"type":           "heartbeat",
					"lines_total":    h.totalWritten.Load(),
					"uptime_seconds": int(time.Since(h.startTime).Seconds()),
				}
				hbData, _ := json.Marshal(heartbeat)
				fmt.Fprintf(w, "event: heartbeat\ndata: %s\n\n", hbData)
				if err := w.Flush(); err != nil {
					return
				}

			case <-h.done:
				fmt.Fprintf(w, "event: disconnect\ndata: {\"reason\":\"server_shutdown\"}\n\n")
				w.Flush()
				return
			}
		}
	}

	ctx.SetBodyStreamWriter(streamFunc)
}

// writeSSE emits one formatted line as an SSE data event.
func writeSSE(w *bufio.Writer, line []byte) error {
	line = bytes.TrimSuffix(line, []byte{'\n'})

	// SSE needs "data: " prefix for each line based on W3C spec
	for _, part := range bytes.Split(line, []byte{'\n'}) {
		if _, err := fmt.Fprintf(w, "data: %s\n", part); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n")
	return err
}

func (h *HTTPSink) handleStatus(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json")

	status := map[string]any{
		"service": "logsift",
		"version": version.Short(),
		"server": map[string]any{
			"type":           "http",
			"port":           h.config.Port,
			"active_clients": h.activeClients.Load(),
			"buffer_size":    h.config.BufferSize,
			"uptime_seconds": int(time.Since(h.startTime).Seconds()),
		},
		"endpoints": map[string]string{
			"stream": h.config.StreamPath,
			"status": h.config.StatusPath,
		},
		"features": map[string]any{
			"heartbeat": map[string]any{
				"enabled":  h.config.Heartbeat.Enabled,
				"interval": h.config.Heartbeat.IntervalSeconds,
			},
			"rate_limit": map[string]any{
				"enabled":        h.config.RateLimit > 0,
				"requests_per_s": h.config.RateLimit,
				"burst":          h.config.RateBurst,
				"total_limited":  h.limitedCount.Load(),
			},
		},
		"statistics": map[string]any{
			"lines_total":    h.totalWritten.Load(),
			"total_sessions": h.totalSessions.Load(),
		},
	}

	data, _ := json.Marshal(status)
	ctx.SetBody(data)
}

// GetActiveConnections returns the current number of connected clients
func (h *HTTPSink) GetActiveConnections() int64 {
	return h.activeClients.Load()
}
