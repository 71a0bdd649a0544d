package services

import (
	"sync"
	"time"

	"github.com/buildmaster/storefront/pkg/cache"
)

// Chat conversation state. A session is FREE until the user expresses
// build intent, then walks ASK_BUDGET -> ASK_USAGE and returns to FREE
// after a recommendation.
const (
	ChatStateFree      = "FREE"
	ChatStateAskBudget = "ASK_BUDGET"
	ChatStateAskUsage  = "ASK_USAGE"
)

// chatSessionTTL bounds how long an idle conversation survives. Every
// message refreshes the TTL.
const chatSessionTTL = 30 * time.Minute

// ChatSession is the per-visitor conversation state. Sessions are keyed by
// the auth user ID or, for guests, the session cookie ID.
type ChatSession struct {
	ID      string       `json:"id"`
	State   string       `json:"state"`
	Budget  float64      `json:"budget"`
	History []LLMMessage `json:"history"`
}

// Mode reports FREE or GUIDED for metrics and replies.
func (s *ChatSession) Mode() string {
	if s.State == ChatStateFree {
		return "FREE"
	}
	return "GUIDED"
}

// maxHistoryTurns caps how much conversation is replayed to the model.
const maxHistoryTurns = 10

// Remember appends a turn to the conversation history, trimming the oldest
// turns beyond the cap.
func (s *ChatSession) Remember(role, content string) {
	s.History = append(s.History, LLMMessage{Role: role, Content: content})
	if len(s.History) > maxHistoryTurns {
		s.History = s.History[len(s.History)-maxHistoryTurns:]
	}
}

// chatSessionStore persists sessions in Redis with a sliding TTL. When
// Redis is unavailable it falls back to process memory so the assistant
// keeps working on a single node.
type chatSessionStore struct {
	mu       sync.Mutex
	fallback map[string]*ChatSession
}

func newChatSessionStore() *chatSessionStore {
	return &chatSessionStore{fallback: map[string]*ChatSession{}}
}

func chatSessionKey(id string) string { return "storefront:chat:session:" + id }

// Load returns the session for id, creating a fresh FREE session if none
// exists or it has expired.
func (st *chatSessionStore) Load(id string) *ChatSession {
	var sess ChatSession
	if cache.Get(chatSessionKey(id), &sess) {
		return &sess
	}

	if cache.RDB == nil {
		st.mu.Lock()
		defer st.mu.Unlock()
		if s, ok := st.fallback[id]; ok {
			return s
		}
		s := &ChatSession{ID: id, State: ChatStateFree}
		st.fallback[id] = s
		return s
	}

	return &ChatSession{ID: id, State: ChatStateFree}
}

// Save persists the session and refreshes its TTL.
func (st *chatSessionStore) Save(sess *ChatSession) {
	if cache.RDB == nil {
		st.mu.Lock()
		st.fallback[sess.ID] = sess
		st.mu.Unlock()
		return
	}
	cache.Set(chatSessionKey(sess.ID), sess, chatSessionTTL) //nolint:errcheck
}
