package remote

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pthm-cable/orbis/globe"
	"github.com/pthm-cable/orbis/scene"
)

func startTestServer(t *testing.T, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(opts)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server, s *Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for s.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestCommandsQueuedInOrder(t *testing.T) {
	s, ts := startTestServer(t, Options{CommandRate: 100, CommandBurst: 10})
	conn := dial(t, ts, s)

	cmds := []Command{
		{Op: OpScene, ID: "earth"},
		{Op: OpFlyTo, Name: "Lagos"},
		{Op: OpZoom, Percent: 50},
	}
	for _, cmd := range cmds {
		if err := conn.WriteJSON(cmd); err != nil {
			t.Fatal(err)
		}
		if msg := readMessage(t, conn); msg.Type != "ack" || msg.Op != cmd.Op {
			t.Fatalf("expected ack for %s, got %+v", cmd.Op, msg)
		}
	}

	var got []Command
	if n := s.Drain(func(c Command) { got = append(got, c) }); n != 3 {
		t.Fatalf("expected 3 drained, got %d", n)
	}
	for i := range cmds {
		if got[i] != cmds[i] {
			t.Errorf("command %d: expected %+v, got %+v", i, cmds[i], got[i])
		}
	}
	if s.Drain(func(Command) {}) != 0 {
		t.Error("expected queue empty after drain")
	}
}

func TestInvalidCommandsRejected(t *testing.T) {
	s, ts := startTestServer(t, Options{CommandRate: 100, CommandBurst: 10})
	conn := dial(t, ts, s)

	tests := []struct {
		name    string
		payload string
	}{
		{"unknown op", `{"op":"spin"}`},
		{"missing name", `{"op":"fly_to"}`},
		{"zoom out of range", `{"op":"zoom","percent":140}`},
		{"malformed", `{"op":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.payload)); err != nil {
				t.Fatal(err)
			}
			if msg := readMessage(t, conn); msg.Type != "error" {
				t.Errorf("expected error reply, got %+v", msg)
			}
		})
	}
	if n := s.Drain(func(Command) {}); n != 0 {
		t.Errorf("expected nothing queued, got %d", n)
	}
}

func TestRateLimitPerConnection(t *testing.T) {
	s, ts := startTestServer(t, Options{CommandRate: 0.001, CommandBurst: 2})
	conn := dial(t, ts, s)

	var acks, limited int
	for i := 0; i < 5; i++ {
		if err := conn.WriteJSON(Command{Op: OpZoom, Percent: 10}); err != nil {
			t.Fatal(err)
		}
		switch msg := readMessage(t, conn); {
		case msg.Type == "ack":
			acks++
		case msg.Error == "rate limited":
			limited++
		}
	}
	if acks != 2 || limited != 3 {
		t.Errorf("expected 2 acks and 3 rate limited, got %d and %d", acks, limited)
	}
}

func TestQueueFull(t *testing.T) {
	s, ts := startTestServer(t, Options{CommandRate: 100, CommandBurst: 10, QueueSize: 1})
	conn := dial(t, ts, s)

	conn.WriteJSON(Command{Op: OpZoom, Percent: 1})
	if msg := readMessage(t, conn); msg.Type != "ack" {
		t.Fatalf("expected ack, got %+v", msg)
	}
	conn.WriteJSON(Command{Op: OpZoom, Percent: 2})
	if msg := readMessage(t, conn); msg.Error != "queue full" {
		t.Errorf("expected queue full, got %+v", msg)
	}
}

func TestEventsBroadcast(t *testing.T) {
	s, ts := startTestServer(t, Options{CommandRate: 1, CommandBurst: 1})
	a := dial(t, ts, s)
	b := dial(t, ts, s)
	for s.Clients() < 2 {
		time.Sleep(5 * time.Millisecond)
	}

	ev := globe.Event{Kind: globe.EventActivate, Point: scene.Point{Name: "Lagos"}, Scene: "earth", Mode: scene.Planet}
	ev.Rotation.Yaw = -3.4
	s.Observe(ev)

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		if msg.Type != "event" || msg.Event == nil {
			t.Fatalf("expected event, got %+v", msg)
		}
		if msg.Event.Kind != "activate" || msg.Event.Point != "Lagos" || msg.Event.Yaw != -3.4 {
			t.Errorf("unexpected event %+v", msg.Event)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "orbis_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	_, ts := startTestServer(t, Options{Gatherer: reg})
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "orbis_test_total 1") {
		t.Errorf("unexpected /metrics response %d:\n%s", resp.StatusCode, body)
	}
}

func TestMetricsDisabledWithoutGatherer(t *testing.T) {
	_, ts := startTestServer(t, Options{})
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

type fakeTarget struct {
	points  map[string]bool
	flown   string
	zoom    float64
	sel     string
	scene   string
	sceneOK bool
}

func (f *fakeTarget) FlyToName(name string) bool {
	f.flown = name
	return f.points[name]
}

func (f *fakeTarget) SetZoomPercent(p float64) { f.zoom = p }

func (f *fakeTarget) Select(name string) bool {
	f.sel = name
	return f.points[name]
}

func (f *fakeTarget) SwitchScene(id string) error {
	if !f.sceneOK {
		return errors.New("unknown scene")
	}
	f.scene = id
	return nil
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		wantErr error
	}{
		{"fly to known", Command{Op: OpFlyTo, Name: "Lagos"}, nil},
		{"fly to unknown", Command{Op: OpFlyTo, Name: "Atlantis"}, ErrRejected},
		{"zoom", Command{Op: OpZoom, Percent: 30}, nil},
		{"select unknown", Command{Op: OpSelect, Name: "Atlantis"}, ErrRejected},
		{"scene rejected", Command{Op: OpScene, ID: "pluto"}, ErrRejected},
		{"unknown op", Command{Op: "spin"}, ErrUnknownOp},
		{"missing id", Command{Op: OpScene}, ErrMissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &fakeTarget{points: map[string]bool{"Lagos": true}}
			err := Apply(tt.cmd, target)
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	target := &fakeTarget{sceneOK: true}
	if err := Apply(Command{Op: OpScene, ID: "mars"}, target); err != nil || target.scene != "mars" {
		t.Errorf("expected scene switch, got %v %q", err, target.scene)
	}
	Apply(Command{Op: OpZoom, Percent: 30}, target)
	if target.zoom != 30 {
		t.Errorf("expected zoom 30, got %v", target.zoom)
	}
}
