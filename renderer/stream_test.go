package renderer

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/achilleasa/kifs-explorer/scene"
)

func dialStream(t *testing.T, srv *httptest.Server) *websocket.Conn {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	return conn
}

func waitFor(t *testing.T, what string, cond func() bool) {
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamServerRoundTrip(t *testing.T) {
	s := NewStreamServer(StreamOptions{})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	defer s.Close()

	conn := dialStream(t, srv)
	defer conn.CloseNow()
	waitFor(t, "client registration", func() bool { return s.Clients() == 1 })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Input from the client is merged into a single frame
	for _, in := range []scene.Input{
		{MouseX: 1, Forward: true, Viewport: [2]int{100, 50}},
		{MouseX: 2, Randomize: true},
	} {
		if err := wsjson.Write(ctx, conn, in); err != nil {
			t.Fatal(err)
		}
	}

	var merged scene.Input
	waitFor(t, "client input", func() bool {
		in := s.Input()
		merged.MouseX += in.MouseX
		merged.Forward = merged.Forward || in.Forward
		merged.Randomize = merged.Randomize || in.Randomize
		if in.Viewport[0] != 0 {
			merged.Viewport = in.Viewport
		}
		return merged.MouseX == 3
	})
	if !merged.Forward || !merged.Randomize || merged.Viewport != [2]int{100, 50} {
		t.Fatalf("unexpected merged input %+v", merged)
	}

	// Published frames reach the client
	exp := scene.RenderParams{Frame: 42, FractalIter: 17, Resolution: [2]int{100, 50}}
	if err := s.Publish(exp); err != nil {
		t.Fatal(err)
	}

	var got scene.RenderParams
	if err := wsjson.Read(ctx, conn, &got); err != nil {
		t.Fatal(err)
	}
	if got.Frame != exp.Frame || got.FractalIter != exp.FractalIter || got.Resolution != exp.Resolution {
		t.Fatalf("expected to receive %+v; got %+v", exp, got)
	}
}

func TestStreamServerIgnoreInput(t *testing.T) {
	s := NewStreamServer(StreamOptions{InputQueueLen: 2, IgnoreInput: true})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	defer s.Close()

	conn := dialStream(t, srv)
	waitFor(t, "client registration", func() bool { return s.Clients() == 1 })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := 0; i < 5; i++ {
		if err := wsjson.Write(ctx, conn, scene.Input{MouseX: 1, Forward: true}); err != nil {
			t.Fatal(err)
		}
	}

	// The server reads messages in order so once it notices the close
	// frame every input message has been consumed.
	conn.Close(websocket.StatusNormalClosure, "")
	waitFor(t, "client removal", func() bool { return s.Clients() == 0 })

	if in := s.Input(); in != (scene.Input{}) {
		t.Fatalf("expected client input to be discarded; got %+v", in)
	}
}

func TestStreamServerDisconnect(t *testing.T) {
	s := NewStreamServer(StreamOptions{})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	defer s.Close()

	conn := dialStream(t, srv)
	waitFor(t, "client registration", func() bool { return s.Clients() == 1 })

	conn.Close(websocket.StatusNormalClosure, "")
	waitFor(t, "client removal", func() bool { return s.Clients() == 0 })
}

func TestStreamServerClose(t *testing.T) {
	s := NewStreamServer(StreamOptions{})
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Publish(scene.RenderParams{}); err != ErrServerClosed {
		t.Fatalf("expected ErrServerClosed; got %v", err)
	}
	if in := s.Input(); in != (scene.Input{}) {
		t.Fatalf("expected empty input; got %+v", in)
	}
}
