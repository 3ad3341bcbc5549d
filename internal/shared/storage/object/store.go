// Package object abstracts where uploaded resume files live. Keys are
// built here so the local and S3 backends lay objects out identically:
// sha256(userId)/randomhex_filename.
package object

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// NewKey builds the storage key for an upload. The user ID is hashed so
// keys stay filesystem- and URL-safe whatever the identity provider puts
// in it, and a random prefix keeps repeated uploads of the same file name
// from colliding.
func NewKey(userId, fileName string) (string, error) {
	name, err := cleanFileName(fileName)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(userId))
	return hex.EncodeToString(sum[:]) + "/" + randomHex() + "_" + name, nil
}

func cleanFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

func randomHex() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
