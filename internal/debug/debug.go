// Package debug traces bmpkit's drawing, layout and encoding pipeline.
//
// Tracing is off unless BMPKIT_DEBUG=1 or --debug turns it on. A disabled
// build pays one atomic load per session; every Emit on a nil *Session
// returns immediately. Events are JSON Lines by default with an optional
// human-readable format.
package debug

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"sync/atomic"
	"time"
)

// enabled is the global debug flag, set once at startup.
var enabled atomic.Bool

// SetEnabled configures debug mode globally.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled returns true if debug mode is active.
func Enabled() bool {
	return enabled.Load()
}

// InitFromEnv initialises debug settings from environment variables.
// Recognised variables:
//   - BMPKIT_DEBUG=1: Enable debug mode
//
// It reports whether BMPKIT_DEBUG_PRETTY=1 asks for the pretty format.
func InitFromEnv() (pretty bool) {
	if os.Getenv("BMPKIT_DEBUG") == "1" {
		SetEnabled(true)
	}
	return os.Getenv("BMPKIT_DEBUG_PRETTY") == "1"
}

// Session scopes the events of one image. It is not safe for concurrent use;
// give each goroutine its own image and session.
type Session struct {
	sessionID string
	sink      Sink
	startTime time.Time
	seq       int
}

// NewSession creates a new debug session with the provided sink.
// Returns nil if debug mode is not enabled or sink is nil.
func NewSession(sink Sink) *Session {
	if !Enabled() || sink == nil {
		return nil
	}

	s := &Session{
		sessionID: generateSessionID(),
		sink:      sink,
		startTime: time.Now(),
	}

	s.Emit("session", "Start", map[string]interface{}{
		"version": "1.0",
	})

	return s
}

// SessionID returns the unique identifier for this session.
func (s *Session) SessionID() string {
	if s == nil {
		return ""
	}
	return s.sessionID
}

// Emit sends an event to the sink. It is a no-op on a nil session.
func (s *Session) Emit(phase, event string, data interface{}) {
	if s == nil {
		return
	}

	s.seq++
	evt := Event{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		SessionID: s.sessionID,
		Seq:       s.seq,
		Phase:     phase,
		Event:     event,
		Data:      data,
	}

	//nolint:errcheck // Debug sink errors are non-critical
	s.sink.Write(evt)
}

// Close emits session/End and closes the sink.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}

	s.Emit("session", "End", map[string]int64{
		"elapsed_ms": time.Since(s.startTime).Milliseconds(),
		"events":     int64(s.seq + 1),
	})

	return s.sink.Close()
}

// generateSessionID creates a unique session identifier.
func generateSessionID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		now := time.Now().UnixNano()
		return hex.EncodeToString([]byte{
			byte(now >> 24), byte(now >> 16), byte(now >> 8), byte(now),
		})
	}
	return hex.EncodeToString(b)
}

// Event is the base envelope for all debug events.
type Event struct {
	Timestamp string      `json:"ts"`
	SessionID string      `json:"session_id"`
	Seq       int         `json:"seq"`
	Phase     string      `json:"phase"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
}
