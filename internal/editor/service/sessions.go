package service

import (
	"log"
	"sync"

	"indoor-editor/internal/editor/interaction"
	"indoor-editor/internal/editor/store"

	"github.com/google/uuid"
)

// ============================================================
// Session Manager
// ============================================================

// Workspace объединяет одну сессию редактора и её контроллер.
// Session и Controller не потокобезопасны, доступ только через Do.
type Workspace struct {
	ID string

	mu         sync.Mutex
	controller *interaction.Controller
}

// Do runs fn with exclusive access to the workspace.
func (w *Workspace) Do(fn func(ctrl *interaction.Controller) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(w.controller)
}

type SessionManager struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace // token -> workspace

	storeOpts store.Options
	ctrlOpts  interaction.Options
}

func NewSessionManager(storeOpts store.Options, ctrlOpts interaction.Options) *SessionManager {
	return &SessionManager{
		workspaces: make(map[string]*Workspace),
		storeOpts:  storeOpts,
		ctrlOpts:   ctrlOpts,
	}
}

// Issue открывает новую сессию редактора и возвращает её.
func (m *SessionManager) Issue() *Workspace {
	session := store.New(m.storeOpts)
	w := &Workspace{
		ID:         uuid.NewString(),
		controller: interaction.NewController(session, m.ctrlOpts),
	}

	m.mu.Lock()
	m.workspaces[w.ID] = w
	m.mu.Unlock()

	log.Printf("[EDITOR] Session %s opened", w.ID)
	return w
}

func (m *SessionManager) Resolve(token string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.workspaces[token]
	return w, ok
}

// Close drops the session. Unknown tokens report false.
func (m *SessionManager) Close(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.workspaces[token]; !ok {
		return false
	}
	delete(m.workspaces, token)
	log.Printf("[EDITOR] Session %s closed", token)
	return true
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}
