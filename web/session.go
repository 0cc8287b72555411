package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pevans/detikscraper"
	"github.com/pevans/detikscraper/export"
	"github.com/pevans/detikscraper/logger"
)

// SessionCookie is the name of the cookie that carries the session ID.
const SessionCookie = "detikscraper_session"

// Session is the form state of one browser: the last submitted inputs and the
// last finished scrape.
type Session struct {
	ID      uuid.UUID
	Keyword string
	Pages   int
	Format  export.Format
	Outcome *detikscraper.Outcome

	lastSeen time.Time
}

// SessionStore keeps sessions in memory and drops them after ttl of
// inactivity.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	defaults Session
	now      func() time.Time
}

// NewSessionStore creates a store whose new sessions start with the given
// page count and format.
func NewSessionStore(ttl time.Duration, pages int, format export.Format) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		defaults: Session{Pages: pages, Format: format},
		now:      time.Now,
	}
}

// Get returns a copy of the session named by the request cookie, creating a
// new session when there is none or it expired. The cookie is set on every
// call so its lifetime follows the session's idle timeout.
func (s *SessionStore) Get(c *gin.Context) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(cookie); err == nil {
			if session, ok := s.sessions[id]; ok && now.Sub(session.lastSeen) < s.ttl {
				session.lastSeen = now
				s.setCookie(c, id)
				return *session
			}
		}
	}

	s.expire(now)

	session := s.defaults
	session.ID = uuid.New()
	session.lastSeen = now
	s.sessions[session.ID] = &session

	s.setCookie(c, session.ID)

	return session
}

func (s *SessionStore) setCookie(c *gin.Context, id uuid.UUID) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id.String(), int(s.ttl.Seconds()), "/", "", false, true)
}

// Save stores session, replacing the previous state for its ID.
func (s *SessionStore) Save(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.lastSeen = s.now()
	s.sessions[session.ID] = &session
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// expire removes idle sessions. The caller holds s.mu.
func (s *SessionStore) expire(now time.Time) {
	for id, session := range s.sessions {
		if now.Sub(session.lastSeen) >= s.ttl {
			delete(s.sessions, id)
			logger.Log.Debugf("Expired session %s", id)
		}
	}
}
