package store

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

const tmpSuffix = ".tmp"

// DefaultQuotaBytes mirrors the 5 MiB limit of the browser store the
// system was designed around.
const DefaultQuotaBytes int64 = 5 * 1024 * 1024

// FileStore keeps one file per key under a store directory shared by
// every process of the same deployment. Writes are atomic
// (write-to-temp, rename) so another context's watcher never observes
// a half-written value.
type FileStore struct {
	dir    string
	quota  int64
	logger *zap.Logger

	mu       sync.Mutex
	selfHash map[string]string // key -> hash of the value this process wrote last
}

// NewFileStore opens (creating if needed) a file store rooted at dir.
// quota <= 0 selects DefaultQuotaBytes.
func NewFileStore(dir string, quota int64, logger *zap.Logger) (*FileStore, error) {
	if quota <= 0 {
		quota = DefaultQuotaBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{
		dir:      dir,
		quota:    quota,
		logger:   logger,
		selfHash: make(map[string]string),
	}, nil
}

// Dir returns the store directory, which defines the store's scope:
// processes pointed at the same directory share state.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads the current value of key. The second return value is false
// when the key is absent.
func (s *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes key to value, failing with a CAPACITY_EXCEEDED domain
// error when the store's total size would exceed the quota.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(key, value)
}

// SetWithRecovery applies the store's documented recovery policy: on
// a capacity failure the entire store is cleared and the single write
// retried once. A second failure is returned to the caller.
func (s *FileStore) SetWithRecovery(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.set(key, value)
	if err == nil {
		return nil
	}
	if !shared.ErrCapacityExceeded.Is(err) {
		return err
	}

	s.logger.Warn("store capacity exceeded, clearing store and retrying write",
		zap.String("key", key),
		zap.Int("value_bytes", len(value)),
	)
	s.clear()
	return s.set(key, value)
}

// Remove deletes the key. Removing an absent key is a no-op.
func (s *FileStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.path(key))
	delete(s.selfHash, key)
}

// Clear removes every key in the store.
func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

// IsOwnWrite reports whether value at key matches the last value this
// process wrote there. The cross-context watcher uses it to keep the
// platform semantics of change notifications firing only in contexts
// that did not perform the write.
func (s *FileStore) IsOwnWrite(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.selfHash[key]
	return ok && h == hashValue(value)
}

func (s *FileStore) set(key, value string) error {
	usage, err := s.usageExcluding(key)
	if err != nil {
		return err
	}
	if usage+int64(len(value)) > s.quota {
		return shared.ErrCapacityExceeded
	}

	target := s.path(key)
	tmp := target + tmpSuffix
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	s.selfHash[key] = hashValue(value)
	return nil
}

func (s *FileStore) clear() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), tmpSuffix) {
			continue
		}
		_ = os.Remove(filepath.Join(s.dir, e.Name()))
	}
	s.selfHash = make(map[string]string)
}

// usageExcluding sums the sizes of all stored values except the one
// being replaced.
func (s *FileStore) usageExcluding(key string) (int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	skip := filenameForKey(key)
	var total int64
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), tmpSuffix) || e.Name() == skip {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, filenameForKey(key))
}

func filenameForKey(key string) string {
	return url.PathEscape(key)
}

func keyForFilename(name string) (string, bool) {
	if strings.HasSuffix(name, tmpSuffix) {
		return "", false
	}
	key, err := url.PathUnescape(name)
	if err != nil {
		return "", false
	}
	return key, true
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

var _ Store = (*FileStore)(nil)
