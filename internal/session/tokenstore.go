package session

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// TokenKey is the fixed name the credential is persisted under.
const TokenKey = "token"

// TokenStore persists the bearer credential between runs or requests. Load
// returns "" when nothing is stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	return s.Save("")
}

// FileTokenStore keeps the token in <dir>/token, readable by the owner only.
type FileTokenStore struct {
	dir string
}

func NewFileTokenStore(dir string) *FileTokenStore {
	return &FileTokenStore{dir: dir}
}

func (s *FileTokenStore) Path() string {
	return filepath.Join(s.dir, TokenKey)
}

func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path(), []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// CookieSealer encrypts the credential before it is handed to the browser.
type CookieSealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

type CookieOptions struct {
	Secure bool
	TTL    time.Duration
	// Sealer is optional. Without it the cookie carries the bare token.
	Sealer CookieSealer
}

// CookieTokenStore reads the credential from the incoming request and writes
// changes as Set-Cookie headers on the response.
type CookieTokenStore struct {
	w     http.ResponseWriter
	value string
	opts  CookieOptions
}

func NewCookieTokenStore(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieTokenStore {
	s := &CookieTokenStore{w: w, opts: opts}
	if c, err := r.Cookie(TokenKey); err == nil {
		s.value = c.Value
	}
	return s
}

func (s *CookieTokenStore) Load() (string, error) {
	if s.value == "" || s.opts.Sealer == nil {
		return s.value, nil
	}
	return s.opts.Sealer.Open(s.value)
}

func (s *CookieTokenStore) Save(token string) error {
	value := token
	if s.opts.Sealer != nil {
		sealed, err := s.opts.Sealer.Seal(token)
		if err != nil {
			return err
		}
		value = sealed
	}

	s.value = value
	http.SetCookie(s.w, &http.Cookie{
		Name:     TokenKey,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieTokenStore) Clear() error {
	if s.value == "" {
		return nil
	}
	s.value = ""
	http.SetCookie(s.w, &http.Cookie{
		Name:     TokenKey,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
