package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"car-collection/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrNoSession         = errors.New("no session")
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrRevoke: el proveedor no pudo invalidar el token. La sesión local
	// ya quedó terminada igual; single attempt, sin retry.
	ErrRevoke = errors.New("provider revoke failed")
)

const eventBuffer = 8

// Manager lleva el registro de sesiones y aplica la máquina de estados.
// Las notificaciones de cambio salen por canales de Subscribe.
type Manager struct {
	provider auth.Provider
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	subs     map[int]chan Event
	nextSub  int
}

func NewManager(provider auth.Provider) *Manager {
	return &Manager{
		provider: provider,
		now:      time.Now,
		sessions: make(map[string]*Session),
		subs:     make(map[int]chan Event),
	}
}

// BeginSignIn crea una sesión Pending y devuelve su id junto con la URL
// de redirect del proveedor. El id de sesión viaja como state OAuth para
// que el callback la referencie.
func (m *Manager) BeginSignIn() (sessionID, redirectURL string, err error) {
	sid := uuid.NewString()

	m.mu.Lock()
	m.sessions[sid] = &Session{ID: sid, State: StatePending}
	m.notifyLocked(Event{SessionID: sid, State: StatePending})
	m.mu.Unlock()

	return sid, m.provider.AuthorizeURL(sid), nil
}

// CompleteSignIn canjea el código del callback y pasa la sesión a
// Authenticated. Si el intercambio falla, la sesión Pending se descarta
// (vuelve a no existir; el usuario reinicia el flujo).
func (m *Manager) CompleteSignIn(ctx context.Context, sessionID, code string) (Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return Session{}, ErrNoSession
	}
	if s.State != StatePending {
		m.mu.Unlock()
		return Session{}, fmt.Errorf("%w: %s -> authenticated", ErrInvalidTransition, s.State)
	}
	m.mu.Unlock()

	// Intercambio por red fuera del lock.
	claims, token, err := m.provider.Exchange(ctx, code)
	if err != nil {
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.notifyLocked(Event{SessionID: sessionID, State: StateUnauthenticated})
		m.mu.Unlock()
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok = m.sessions[sessionID]
	if !ok || s.State != StatePending {
		return Session{}, ErrInvalidTransition
	}

	s.State = StateAuthenticated
	s.UserID = claims.UserID
	s.Email = claims.Email
	s.Name = claims.Name
	s.AccessToken = token.AccessToken
	s.ExpiresAt = token.ExpiresAt

	m.notifyLocked(Event{SessionID: sessionID, State: StateAuthenticated})
	return *s, nil
}

// Get devuelve la sesión actual. La expiración se observa acá, de forma
// perezosa: si el token venció, la sesión transiciona a Unauthenticated
// en esta misma llamada (no hay sweeper de fondo).
func (m *Manager) Get(sessionID string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, ErrNoSession
	}

	if s.State == StateAuthenticated && !s.ExpiresAt.IsZero() && m.now().After(s.ExpiresAt) {
		m.expireLocked(s)
	}

	return *s, nil
}

// SignOut termina la sesión localmente y después intenta revocar el
// token en el proveedor (un intento). La falla de revocación no
// resucita la sesión: se reporta como ErrRevoke.
func (m *Manager) SignOut(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok || s.State != StateAuthenticated {
		m.mu.Unlock()
		return ErrNoSession
	}

	token := s.AccessToken
	s.State = StateUnauthenticated
	s.UserID = ""
	s.Email = ""
	s.Name = ""
	s.AccessToken = ""
	s.ExpiresAt = time.Time{}
	m.notifyLocked(Event{SessionID: sessionID, State: StateUnauthenticated})
	m.mu.Unlock()

	if err := m.provider.Revoke(ctx, token); err != nil {
		return fmt.Errorf("%w: %v", ErrRevoke, err)
	}
	return nil
}

// Subscribe registra un canal de eventos de sesión. El cancel devuelto
// des-registra y cierra el canal. Si el suscriptor no drena, los
// eventos excedentes se descartan (nunca bloquea al Manager).
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++

	ch := make(chan Event, eventBuffer)
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if c, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (m *Manager) expireLocked(s *Session) {
	s.State = StateUnauthenticated
	s.UserID = ""
	s.Email = ""
	s.Name = ""
	s.AccessToken = ""
	s.ExpiresAt = time.Time{}
	m.notifyLocked(Event{SessionID: s.ID, State: StateUnauthenticated})
}

func (m *Manager) notifyLocked(e Event) {
	for _, ch := range m.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
