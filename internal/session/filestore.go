package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/flexfitapp/flexfit/internal/errors"
	"github.com/flexfitapp/flexfit/internal/log"
)

const (
	sessionFileName = "session.flexfit"
	keyFileName     = "session.key"
	pendingFileName = "pending_signup.json"
)

// FileStore persists the session as a single encrypted record under the
// FlexFit home directory. The record is sealed with XChaCha20-Poly1305 using
// a machine-local random key, so a bearer token at rest is neither readable
// nor silently modifiable; any AEAD failure is indistinguishable from
// corruption and maps to "absent".
type FileStore struct {
	dir         string
	fingerprint string
	logger      *log.Logger
}

// NewFileStore creates a store rooted at dir. fingerprint is the expected
// API fingerprint (session.Fingerprint of the configured base URL); loaded
// records bound to a different API are treated as absent.
func NewFileStore(dir, fingerprint string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &FileStore{dir: dir, fingerprint: fingerprint, logger: logger}
}

// Save atomically replaces the persisted session record.
func (fs *FileStore) Save(s Session) error {
	if !s.Valid() {
		return errors.New(errors.ErrCodeSessionInvalid, "refusing to persist a partial session")
	}

	if err := os.MkdirAll(fs.dir, 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to create session directory", err)
	}

	key, err := fs.loadOrCreateKey()
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to encode session", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to initialize cipher", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to generate nonce", err)
	}
	sealed := aead.Seal(nonce, nonce, plaintext, nil)

	// Write-then-rename keeps the replacement atomic: a reader sees either
	// the old record or the new one, never a torn write.
	tmp, err := os.CreateTemp(fs.dir, ".session-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to create temp file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to write session record", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to set session file mode", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to close session record", err)
	}
	if err := os.Rename(tmpName, fs.sessionPath()); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to replace session record", err)
	}

	return nil
}

// Load returns the current session, or (nil, nil) when absent.
// Corruption of any kind downgrades to absent rather than failing the caller.
func (fs *FileStore) Load() (*Session, error) {
	sealed, err := os.ReadFile(fs.sessionPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, "failed to read session record", err)
	}

	key, err := fs.loadKey()
	if err != nil {
		fs.logger.WithError(err).Warn("session key unreadable, treating session as absent")
		return nil, nil
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		fs.logger.WithError(err).Warn("cipher init failed, treating session as absent")
		return nil, nil
	}

	if len(sealed) < aead.NonceSize() {
		fs.logger.Warn("session record truncated, treating session as absent")
		return nil, nil
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		fs.logger.WithError(errors.NewStoreCorruptError(err)).Warn("session record failed authentication, treating session as absent")
		return nil, nil
	}

	var s Session
	if err := json.Unmarshal(plaintext, &s); err != nil {
		fs.logger.WithError(errors.NewStoreCorruptError(err)).Warn("session record unparseable, treating session as absent")
		return nil, nil
	}

	if !s.Valid() {
		fs.logger.Warn("session record missing required fields, treating session as absent")
		return nil, nil
	}
	if fs.fingerprint != "" && s.APIFingerprint != fs.fingerprint {
		fs.logger.Warn("session was issued for a different API, treating session as absent",
			"session_api", s.APIFingerprint, "configured_api", fs.fingerprint)
		return nil, nil
	}

	return &s, nil
}

// Clear removes the session unconditionally. Clearing an absent session is a no-op.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.sessionPath()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to remove session record", err)
	}
	return nil
}

type pendingSignup struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SavePendingSignup remembers the email submitted at signup so the verify
// step can default to it.
func (fs *FileStore) SavePendingSignup(email string) error {
	if err := os.MkdirAll(fs.dir, 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to create session directory", err)
	}
	data, err := json.Marshal(pendingSignup{Email: email, CreatedAt: time.Now()})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to encode pending signup", err)
	}
	if err := os.WriteFile(fs.pendingPath(), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to write pending signup", err)
	}
	return nil
}

// LoadPendingSignup returns the remembered signup email, or "" when none.
func (fs *FileStore) LoadPendingSignup() (string, error) {
	data, err := os.ReadFile(fs.pendingPath())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStoreRead, "failed to read pending signup", err)
	}
	var p pendingSignup
	if err := json.Unmarshal(data, &p); err != nil {
		return "", nil
	}
	return p.Email, nil
}

// ClearPendingSignup forgets the remembered signup email; idempotent.
func (fs *FileStore) ClearPendingSignup() error {
	if err := os.Remove(fs.pendingPath()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to remove pending signup", err)
	}
	return nil
}

func (fs *FileStore) sessionPath() string {
	return filepath.Join(fs.dir, sessionFileName)
}

func (fs *FileStore) pendingPath() string {
	return filepath.Join(fs.dir, pendingFileName)
}

func (fs *FileStore) keyPath() string {
	return filepath.Join(fs.dir, keyFileName)
}

func (fs *FileStore) loadKey() ([]byte, error) {
	encoded, err := os.ReadFile(fs.keyPath())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, "failed to read session key", err)
	}
	key, err := hex.DecodeString(string(encoded))
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, errors.New(errors.ErrCodeStoreCorrupt, "session key is malformed")
	}
	return key, nil
}

func (fs *FileStore) loadOrCreateKey() ([]byte, error) {
	if key, err := fs.loadKey(); err == nil {
		return key, nil
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreWrite, "failed to generate session key", err)
	}
	if err := os.WriteFile(fs.keyPath(), []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreWrite, "failed to write session key", err)
	}
	return key, nil
}

var _ Store = (*FileStore)(nil)
