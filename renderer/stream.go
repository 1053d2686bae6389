package renderer

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/achilleasa/kifs-explorer/log"
	"github.com/achilleasa/kifs-explorer/scene"
)

const (
	// Frames queued per client before new frames get dropped.
	clientQueueLen = 4

	// Max time allowed for writing a single frame to a client.
	writeTimeout = 5 * time.Second
)

var streamLogger = log.New("stream")

// StreamOptions configures a StreamServer.
type StreamOptions struct {
	// Accepted origin patterns for cross-origin websocket clients.
	OriginPatterns []string

	// Size of the input queue shared by all clients.
	InputQueueLen int

	// Discard client input. Used when frames are mirrored from a
	// controller driven by another input source.
	IgnoreInput bool
}

// StreamServer exposes a scene controller over websockets. Clients send JSON
// encoded scene.Input frames and receive JSON encoded scene.RenderParams for
// every published frame.
type StreamServer struct {
	opts   StreamOptions
	inputs chan scene.Input

	mu      sync.Mutex
	clients map[*streamClient]struct{}
	closed  bool

	srv *http.Server
}

type streamClient struct {
	frames chan scene.RenderParams
}

// NewStreamServer creates a new stream server.
func NewStreamServer(opts StreamOptions) *StreamServer {
	if opts.InputQueueLen <= 0 {
		opts.InputQueueLen = 64
	}
	return &StreamServer{
		opts:    opts,
		inputs:  make(chan scene.Input, opts.InputQueueLen),
		clients: make(map[*streamClient]struct{}),
	}
}

// Handler returns the http handler serving the /ws endpoint.
func (s *StreamServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// Serve accepts connections on l until ctx is cancelled or Close is called.
func (s *StreamServer) Serve(ctx context.Context, l net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrServerClosed
	}
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	srv := s.srv
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	streamLogger.Noticef("listening on ws://%s/ws", l.Addr())
	err := srv.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// ListenAndServe listens on addr and calls Serve.
func (s *StreamServer) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Close shuts down the http server and disconnects all clients.
func (s *StreamServer) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for c := range s.clients {
		close(c.frames)
		delete(s.clients, c)
	}
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// Publish broadcasts a frame to all connected clients. Frames are dropped for
// clients that cannot keep up.
func (s *StreamServer) Publish(params scene.RenderParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrServerClosed
	}
	for c := range s.clients {
		select {
		case c.frames <- params:
		default:
			streamLogger.Debugf("dropping frame %d for slow client", params.Frame)
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (s *StreamServer) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Input drains all pending client input into a single frame. Mouse deltas are
// summed, keys are or-ed together and the most recent viewport wins.
func (s *StreamServer) Input() scene.Input {
	var merged scene.Input
	for {
		select {
		case in := <-s.inputs:
			merged.MouseX += in.MouseX
			merged.MouseY += in.MouseY
			merged.Left = merged.Left || in.Left
			merged.Right = merged.Right || in.Right
			merged.Forward = merged.Forward || in.Forward
			merged.Backward = merged.Backward || in.Backward
			merged.Randomize = merged.Randomize || in.Randomize
			if in.Viewport[0] > 0 && in.Viewport[1] > 0 {
				merged.Viewport = in.Viewport
			}
		default:
			return merged
		}
	}
}

func (s *StreamServer) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.opts.OriginPatterns,
	})
	if err != nil {
		streamLogger.Warningf("websocket handshake failed: %s", err)
		return
	}
	defer conn.CloseNow()

	client := &streamClient{frames: make(chan scene.RenderParams, clientQueueLen)}
	if !s.register(client) {
		conn.Close(websocket.StatusGoingAway, "server closed")
		return
	}
	defer s.unregister(client)
	streamLogger.Infof("client connected from %s", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.readInput(ctx, cancel, conn)

	for {
		select {
		case <-ctx.Done():
			streamLogger.Infof("client %s disconnected", r.RemoteAddr)
			return
		case params, ok := <-client.frames:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server closed")
				return
			}
			writeCtx, writeCancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, params)
			writeCancel()
			if err != nil {
				streamLogger.Debugf("write to %s failed: %s", r.RemoteAddr, err)
				return
			}
		}
	}
}

func (s *StreamServer) readInput(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn) {
	defer cancel()
	for {
		var in scene.Input
		if err := wsjson.Read(ctx, conn, &in); err != nil {
			return
		}
		if s.opts.IgnoreInput {
			continue
		}

		select {
		case s.inputs <- in:
		default:
			streamLogger.Debug("input queue full; dropping client input")
		}
	}
}

func (s *StreamServer) register(c *streamClient) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.clients[c] = struct{}{}
	return true
}

func (s *StreamServer) unregister(c *streamClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.frames)
	}
}
