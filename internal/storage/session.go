package storage

import (
	"sync"

	"github.com/aliskhannn/surah-reader-bot/internal/domain/entities"
)

// Screen is the screen a chat currently shows.
type Screen int

const (
	ScreenCatalog Screen = iota
	ScreenDetail
)

func (s Screen) String() string {
	if s == ScreenDetail {
		return "detail"
	}
	return "catalog"
}

// Session is a snapshot of one chat's navigation state.
type Session struct {
	Screen      Screen
	Chapter     int  // selected chapter, set only on the detail screen
	CatalogPage int  // catalog page to return to
	Generation  uint64
	Loading     bool // verses are being loaded for the detail screen
	Verses      *entities.ChapterVerseSet
}

// SessionStorage keeps per-chat navigation state in memory.
//
// Every transition bumps the chat's generation. A load started for one
// generation can only be applied while the chat is still on that generation,
// so results arriving after the user went back are dropped.
type SessionStorage struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*Session),
	}
}

func (s *SessionStorage) get(chatID int64) *Session {
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &Session{Screen: ScreenCatalog}
		s.sessions[chatID] = sess
	}
	return sess
}

// Get returns a copy of the chat's current state.
func (s *SessionStorage) Get(chatID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.get(chatID)
}

// Select moves the chat from the catalog to the detail screen of chapter.
// It returns the generation the load must be completed with, or false when
// the chat is not on the catalog.
func (s *SessionStorage) Select(chatID int64, chapter, catalogPage int) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess.Screen != ScreenCatalog {
		return 0, false
	}

	sess.Screen = ScreenDetail
	sess.Chapter = chapter
	sess.CatalogPage = catalogPage
	sess.Generation++
	sess.Loading = true
	sess.Verses = nil

	return sess.Generation, true
}

// Complete stores the loaded verses if the chat is still waiting for them.
// It reports false for stale results, which the caller must discard.
func (s *SessionStorage) Complete(chatID int64, generation uint64, verses *entities.ChapterVerseSet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess.Screen != ScreenDetail || sess.Generation != generation || !sess.Loading {
		return false
	}

	sess.Loading = false
	sess.Verses = verses

	return true
}

// Back returns the chat from the detail screen to the catalog and discards
// its verses. It reports the catalog page to show, or false when the chat is
// not on a detail screen.
func (s *SessionStorage) Back(chatID int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess.Screen != ScreenDetail {
		return 0, false
	}

	page := sess.CatalogPage
	s.toCatalog(sess, page)

	return page, true
}

// Reset shows the catalog from its first page whatever the current screen.
func (s *SessionStorage) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toCatalog(s.get(chatID), 0)
}

// SetCatalogPage records the catalog page while browsing the catalog.
func (s *SessionStorage) SetCatalogPage(chatID int64, page int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess.Screen != ScreenCatalog {
		return false
	}
	sess.CatalogPage = page
	return true
}

// Verses returns the verses loaded for chapter if the chat is viewing it.
func (s *SessionStorage) Verses(chatID int64, chapter int) (*entities.ChapterVerseSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess.Screen != ScreenDetail || sess.Chapter != chapter || sess.Loading {
		return nil, false
	}
	return sess.Verses, true
}

func (s *SessionStorage) toCatalog(sess *Session, page int) {
	sess.Screen = ScreenCatalog
	sess.Chapter = 0
	sess.CatalogPage = page
	sess.Generation++
	sess.Loading = false
	sess.Verses = nil
}
