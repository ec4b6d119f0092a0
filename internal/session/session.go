// Package session persists the signed-in user's access token and profile between runs.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"wellvantage/fitness-app/internal/domain"
)

// Store keeps the bearer token and the cached user.
type Store interface {
	Token() (string, error)
	SaveToken(token string) error
	ClearToken() error
	User() (*domain.User, error)
	SaveUser(user domain.User) error
	ClearUser() error
}

// Clear removes everything a store holds.
func Clear(s Store) error {
	return errors.Join(s.ClearToken(), s.ClearUser())
}

type data struct {
	Token string       `yaml:"token,omitempty"`
	User  *domain.User `yaml:"user,omitempty"`
}

// FileStore keeps the session in a YAML file readable only by its owner.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.read()
	if err != nil {
		return "", err
	}
	return d.Token, nil
}

func (s *FileStore) SaveToken(token string) error {
	return s.update(func(d *data) { d.Token = token })
}

func (s *FileStore) ClearToken() error {
	return s.update(func(d *data) { d.Token = "" })
}

func (s *FileStore) User() (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.read()
	if err != nil {
		return nil, err
	}
	return d.User, nil
}

func (s *FileStore) SaveUser(user domain.User) error {
	return s.update(func(d *data) { d.User = &user })
}

func (s *FileStore) ClearUser() error {
	return s.update(func(d *data) { d.User = nil })
}

func (s *FileStore) update(fn func(*data)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.read()
	if err != nil {
		return err
	}
	fn(&d)
	return s.write(d)
}

func (s *FileStore) read() (data, error) {
	var d data
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return d, fmt.Errorf("read session: %w", err)
	}
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return d, fmt.Errorf("parse session %s: %w", s.path, err)
	}
	return d, nil
}

func (s *FileStore) write(d data) error {
	if d.Token == "" && d.User == nil {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove session: %w", err)
		}
		return nil
	}
	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  *domain.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) ClearToken() error {
	return s.SaveToken("")
}

func (s *MemoryStore) User() (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}
	u := *s.user
	return &u, nil
}

func (s *MemoryStore) SaveUser(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	return nil
}

func (s *MemoryStore) ClearUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}
