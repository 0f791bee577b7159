package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"scriptgen/internal/artifacts"
	"scriptgen/internal/generator"
)

// MappingInput — одна форма связывания UI↔API, заполненная пользователем
type MappingInput struct {
	APIKeyword string `json:"api_keyword"`
	DOMKeyword string `json:"dom_keyword"`
}

// Session хранит накопленное состояние одной пользовательской сессии
// веб-интерфейса. Создается при входе, очищается при завершении —
// глобального изменяемого состояния нет.
type Session struct {
	ID         string
	StartTime  time.Time
	LastActive time.Time

	// Собранные артефакты
	StepDefinitions    string
	UIFlowJSON         string
	CustomInstructions string
	DOMSnapshots       []string
	HARRaw             string

	// Разобранные данные
	UIData  []artifacts.Element
	APIData []artifacts.APIEntry

	// Связывания и результаты
	Mappings    []MappingInput
	MappingJSON string
	LastResult  *generator.Result

	mutex sync.RWMutex
}

// Touch обновляет отметку активности сессии
func (s *Session) Touch() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.LastActive = time.Now()
}

// Update выполняет изменение состояния под блокировкой
func (s *Session) Update(fn func(*Session)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.LastActive = time.Now()
	fn(s)
}

// View выполняет чтение состояния под блокировкой
func (s *Session) View(fn func(*Session)) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	fn(s)
}

// Manager управляет активными сессиями веб-интерфейса
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// CreateSession создает новую сессию с уникальным идентификатором
func (m *Manager) CreateSession() *Session {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	s := &Session{
		ID:         uuid.NewString(),
		StartTime:  time.Now(),
		LastActive: time.Now(),
	}
	m.sessions[s.ID] = s

	log.Printf("🆕 Created web session %s", s.ID)
	return s
}

// GetSession возвращает сессию по идентификатору или nil
func (m *Manager) GetSession(id string) *Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.sessions[id]
}

// EndSession завершает сессию и освобождает ее состояние
func (m *Manager) EndSession(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return fmt.Errorf("session %s not found", id)
	}
	delete(m.sessions, id)
	log.Printf("🏁 Ended web session %s", id)
	return nil
}

// GetActiveSessions возвращает число активных сессий
func (m *Manager) GetActiveSessions() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

// CleanupExpired удаляет сессии, неактивные дольше maxAge
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	removed := 0
	cutoff := time.Now().Add(-maxAge)
	for id, s := range m.sessions {
		s.mutex.RLock()
		expired := s.LastActive.Before(cutoff)
		s.mutex.RUnlock()
		if expired {
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		log.Printf("🧹 Cleaned up %d expired web sessions", removed)
	}
	return removed
}
