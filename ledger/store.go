package ledger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Store persists ledger snapshots by session key.
type Store interface {
	Load(ctx context.Context, key string) (Snapshot, bool, error)
	Save(ctx context.Context, key string, s Snapshot) error
	Delete(ctx context.Context, key string) error
}

// FileStore keeps every snapshot in <dataDir>/ledgers.json.
type FileStore struct {
	mu      sync.RWMutex
	ledgers map[string]Snapshot
	dataDir string
}

func NewFileStore(dataDir string) *FileStore {
	if dataDir == "" {
		dataDir = "data"
	}
	s := &FileStore{
		ledgers: make(map[string]Snapshot),
		dataDir: dataDir,
	}
	s.load()
	return s
}

func (s *FileStore) path() string {
	return filepath.Join(s.dataDir, "ledgers.json")
}

type storedEntry struct {
	Key    string   `json:"key"`
	Ledger Snapshot `json:"ledger"`
}

func (s *FileStore) load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("ledger store: read %s: %v", s.path(), err)
		}
		return
	}
	var list []storedEntry
	if err := json.Unmarshal(data, &list); err != nil {
		log.Warnf("ledger store: decode %s: %v", s.path(), err)
		return
	}
	for _, e := range list {
		if e.Key != "" {
			s.ledgers[e.Key] = e.Ledger
		}
	}
}

// saveLocked writes the store to a temp file and renames it over
// ledgers.json, so a crash mid-write leaves the previous file intact.
// Caller must hold s.mu.
func (s *FileStore) saveLocked() error {
	list := make([]storedEntry, 0, len(s.ledgers))
	for k, l := range s.ledgers {
		list = append(list, storedEntry{Key: k, Ledger: l})
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dataDir, "ledgers-*.json.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path())
}

func (s *FileStore) Load(_ context.Context, key string) (Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.ledgers[key]
	return snap, ok, nil
}

// Save stores the snapshot under key, overwriting any previous one.
func (s *FileStore) Save(_ context.Context, key string, snap Snapshot) error {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers[key] = snap
	return s.saveLocked()
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ledgers[key]; !ok {
		return nil
	}
	delete(s.ledgers, key)
	return s.saveLocked()
}
