// Package profile persists named connection profiles (server URL, admin
// token, target UID). Tokens are sealed with a key held by the keyring
// package; the rest of the file is plain TOML.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/AzureXuanVerse/Nebula-Tools/pkg/profile/encryption"
)

// FileName is the store file inside the config directory.
const FileName = "profiles.toml"

// DefaultName is used when a profile name is left empty.
const DefaultName = "default"

var (
	ErrNotFound    = errors.New("profile not found")
	ErrEmptyServer = errors.New("profile server URL cannot be empty")
	ErrInvalidName = errors.New("profile name may only contain letters, digits, '-', '_' and '.'")
)

// Profile is a saved connection.
type Profile struct {
	Name      string
	ServerURL string
	Token     string
	TargetUID string
}

type record struct {
	ServerURL string `toml:"server_url"`
	Token     string `toml:"token"`
	TargetUID string `toml:"target_uid,omitempty"`
}

type document struct {
	Profiles map[string]record `toml:"profiles"`
}

// Store reads and writes the profile file. It is safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
	key  []byte
	doc  document
}

// Open loads dir/profiles.toml from fs, creating an empty store when the file
// does not exist. key seals and unseals tokens.
func Open(fs afero.Fs, dir string, key []byte) (*Store, error) {
	s := &Store{
		fs:   fs,
		path: filepath.Join(dir, FileName),
		key:  key,
		doc:  document{Profiles: map[string]record{}},
	}
	data, err := afero.ReadFile(fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	if err := toml.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if s.doc.Profiles == nil {
		s.doc.Profiles = map[string]record{}
	}
	return s, nil
}

// Exists reports whether dir holds a profile file.
func Exists(fs afero.Fs, dir string) (bool, error) {
	ok, err := afero.Exists(fs, filepath.Join(dir, FileName))
	if err != nil {
		return false, fmt.Errorf("stat profiles: %w", err)
	}
	return ok, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName, nil
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return "", ErrInvalidName
		}
	}
	return name, nil
}

// Save creates or replaces a profile and writes the file.
func (s *Store) Save(p Profile) error {
	name, err := normalizeName(p.Name)
	if err != nil {
		return err
	}
	server := strings.TrimSpace(p.ServerURL)
	if server == "" {
		return ErrEmptyServer
	}
	sealed, err := encryption.Seal(p.Token, s.key)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Profiles[name] = record{
		ServerURL: server,
		Token:     sealed,
		TargetUID: strings.TrimSpace(p.TargetUID),
	}
	return s.flush()
}

// Get returns the named profile with its token unsealed.
func (s *Store) Get(name string) (*Profile, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	rec, ok := s.doc.Profiles[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	token, err := encryption.Open(rec.Token, s.key)
	if err != nil {
		return nil, fmt.Errorf("unseal token for %s: %w", name, err)
	}
	return &Profile{
		Name:      name,
		ServerURL: rec.ServerURL,
		Token:     token,
		TargetUID: rec.TargetUID,
	}, nil
}

// Names lists saved profile names in order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.doc.Profiles))
	for n := range s.doc.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Remove deletes a profile and writes the file.
func (s *Store) Remove(name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doc.Profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(s.doc.Profiles, name)
	return s.flush()
}

func (s *Store) flush() error {
	data, err := toml.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0600); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	return nil
}
