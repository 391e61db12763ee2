package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/smartdrive/internal/filex"
)

const sessionFileName = "session.json"

type session struct {
	UserName    string `json:"username"`
	AccessToken string `json:"access_token"`
}

// sessionStore keeps the current login in TokenDir between runs.
type sessionStore struct {
	path string
}

func newSessionStore(dir string) (*sessionStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("token dir: %w", err)
	}
	return &sessionStore{path: filepath.Join(abs, sessionFileName)}, nil
}

// Load returns the saved session or nil when nobody is logged in.
func (s *sessionStore) Load() (*session, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var sess session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", s.path, err)
	}
	if sess.AccessToken == "" {
		return nil, nil
	}
	return &sess, nil
}

func (s *sessionStore) Save(sess *session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return filex.WriteFileAtomic(s.path, b, 0o600)
}

func (s *sessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
