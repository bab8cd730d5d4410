package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MaxLogEntries caps the journal. Older entries are evicted first.
const MaxLogEntries = 50

// journalTimeFormat matches the ISO timestamps the dashboard renders.
const journalTimeFormat = "2006-01-02T15:04:05.000Z"

// State holds the application's mutable context: the current session and the
// diagnostic journal. Both are loaded from the key-value store when the State is
// created and written through on every change. Each application (or test) owns
// its own State.
type State struct {
	kv     KeyValue
	clock  Clock
	idgen  IDGenerator
	logger Logger

	mu   sync.Mutex
	user *User
	logs []SystemLog
}

// NewState loads the session and journal from kv. Unparseable values are treated
// as absent, the same as a fresh install.
func NewState(ctx context.Context, kv KeyValue, clock Clock, idgen IDGenerator, logger Logger) (*State, error) {
	s := &State{
		kv:     kv,
		clock:  clock,
		idgen:  idgen,
		logger: logger,
	}

	raw, err := kv.Get(ctx, KeyUser)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if raw != nil {
		var u User
		if err := json.Unmarshal(raw, &u); err != nil {
			logger.Warn("discarding unreadable session", "error", err)
		} else {
			s.user = &u
		}
	}

	raw, err = kv.Get(ctx, KeyLogs)
	if err != nil {
		return nil, fmt.Errorf("loading journal: %w", err)
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &s.logs); err != nil {
			logger.Warn("discarding unreadable journal", "error", err)
			s.logs = nil
		}
		if len(s.logs) > MaxLogEntries {
			s.logs = s.logs[:MaxLogEntries]
		}
	}

	return s, nil
}

// User returns a copy of the session record, or nil when nobody is signed in.
func (s *State) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// setUser persists u as the session record; nil clears the session.
// The in-memory session only changes once the write succeeded.
func (s *State) setUser(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u == nil {
		if err := s.kv.Delete(ctx, KeyUser); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		s.user = nil
		return nil
	}

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.kv.Set(ctx, KeyUser, data); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	cp := *u
	s.user = &cp
	return nil
}

// AppendLog prepends a journal entry and persists the truncated journal.
// Persistence is best-effort: callers never depend on journal delivery.
func (s *State) AppendLog(ctx context.Context, message string, level LogLevel) SystemLog {
	if level == "" {
		level = LevelInfo
	}
	entry := SystemLog{
		ID:        s.idgen.New(),
		Timestamp: s.clock.Now().UTC().Format(journalTimeFormat),
		Level:     level,
		Message:   message,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]SystemLog, 0, min(len(s.logs)+1, MaxLogEntries))
	logs = append(logs, entry)
	logs = append(logs, s.logs...)
	if len(logs) > MaxLogEntries {
		logs = logs[:MaxLogEntries]
	}
	s.logs = logs

	data, err := json.Marshal(logs)
	if err != nil {
		s.logger.Warn("encoding journal", "error", err)
		return entry
	}
	if err := s.kv.Set(ctx, KeyLogs, data); err != nil {
		s.logger.Warn("persisting journal", "error", err)
	}
	return entry
}

// Logs returns a snapshot of the journal, newest first.
func (s *State) Logs() []SystemLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SystemLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// seeded reports whether Init has already populated the store.
func (s *State) seeded(ctx context.Context) (bool, error) {
	raw, err := s.kv.Get(ctx, KeySeeded)
	if err != nil {
		return false, fmt.Errorf("reading seed marker: %w", err)
	}
	return raw != nil, nil
}

// markSeeded records that Init has populated the store.
func (s *State) markSeeded(ctx context.Context) error {
	stamp := s.clock.Now().UTC().Format(journalTimeFormat)
	if err := s.kv.Set(ctx, KeySeeded, []byte(stamp)); err != nil {
		return fmt.Errorf("writing seed marker: %w", err)
	}
	return nil
}
