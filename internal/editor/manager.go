package editor

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"resumeforge/internal/database"
	"resumeforge/internal/resume"
)

// ErrSessionNotFound 表示会话不存在或不属于请求的用户。
var ErrSessionNotFound = errors.New("editor session not found")

// Manager 管理进程内的编辑会话，按会话标识索引并做属主校验。
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store    database.ResumeStore
	exporter ExportRequester
}

// NewManager 构造会话管理器。
func NewManager(store database.ResumeStore, exporter ExportRequester) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		exporter: exporter,
	}
}

// Open 为用户新建一个编辑会话：空白文档、第一步、清空的技能暂存区。
func (m *Manager) Open(ownerID uint) *Session {
	session := &Session{
		id:                 uuid.NewString(),
		ownerID:            ownerID,
		doc:                resume.NewDocument(),
		step:               Steps[0],
		skillDraftCategory: resume.SkillTechnical,
		store:              m.store,
		exporter:           m.exporter,
	}

	m.mu.Lock()
	m.sessions[session.id] = session
	m.mu.Unlock()
	return session
}

// Get 按标识取会话，属主不匹配时视同不存在。
func (m *Manager) Get(sessionID string, ownerID uint) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok || session.OwnerID() != ownerID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close 丢弃会话，未保存的修改随之丢失。
func (m *Manager) Close(sessionID string, ownerID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok || session.OwnerID() != ownerID {
		return ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}
