package filestore

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

var sealedMagic = []byte("PSB1")

const (
	saltSize  = 16
	nonceSize = 24
)

var ErrSealed = errors.New("slot file is sealed; a passphrase is required")
var ErrWrongPassphrase = errors.New("slot file could not be opened with this passphrase")

// Store keeps all slots in one JSON document on disk, optionally sealed
// with a passphrase (argon2id key, secretbox).
type Store struct {
	path       string
	passphrase []byte

	mu      sync.Mutex
	keySalt []byte
	key     *[32]byte
}

// New returns a store backed by path. An empty passphrase stores plain JSON.
func New(path, passphrase string) *Store {
	s := &Store{path: path}
	if passphrase != "" {
		s.passphrase = []byte(passphrase)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := slots[key]
	return value, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}
	slots[key] = value
	return s.save(slots)
}

// Delete is a no-op when the slot or the file is missing.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := slots[key]; !ok {
		return nil
	}
	delete(slots, key)
	return s.save(slots)
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot file: %w", err)
	}

	if bytes.HasPrefix(data, sealedMagic) {
		if s.passphrase == nil {
			return nil, ErrSealed
		}
		data, err = s.open(data[len(sealedMagic):])
		if err != nil {
			return nil, err
		}
	}

	slots := make(map[string]string)
	if len(bytes.TrimSpace(data)) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("slot file is corrupt: %w", err)
	}
	return slots, nil
}

func (s *Store) save(slots map[string]string) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	if s.passphrase != nil {
		if data, err = s.seal(data); err != nil {
			return err
		}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create slot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".slots-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write slot file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *Store) seal(plain []byte) ([]byte, error) {
	if s.key == nil {
		salt := make([]byte, saltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, fmt.Errorf("failed to generate salt: %w", err)
		}
		s.deriveKey(salt)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, len(sealedMagic)+saltSize+nonceSize+len(plain)+secretbox.Overhead)
	out = append(out, sealedMagic...)
	out = append(out, s.keySalt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plain, &nonce, s.key), nil
}

func (s *Store) open(body []byte) ([]byte, error) {
	if len(body) < saltSize+nonceSize+secretbox.Overhead {
		return nil, ErrWrongPassphrase
	}
	salt := body[:saltSize]
	if s.key == nil || !bytes.Equal(salt, s.keySalt) {
		s.deriveKey(salt)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], body[saltSize:saltSize+nonceSize])
	plain, ok := secretbox.Open(nil, body[saltSize+nonceSize:], &nonce, s.key)
	if !ok {
		return nil, ErrWrongPassphrase
	}
	return plain, nil
}

func (s *Store) deriveKey(salt []byte) {
	derived := argon2.IDKey(s.passphrase, salt, 1, 64*1024, 4, 32)
	var key [32]byte
	copy(key[:], derived)
	s.keySalt = append([]byte(nil), salt...)
	s.key = &key
}
