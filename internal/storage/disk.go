// Package storage keeps uploaded blobs on local disk and hands out signed,
// short-lived URLs for writing and reading them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrBlobNotFound  = errors.New("blob not found")
	ErrBlobExists    = errors.New("blob already uploaded")
	ErrInvalidTicket = errors.New("invalid or expired storage token")
)

const (
	purposeUpload   = "upload"
	purposeDownload = "download"
)

type Config struct {
	Dir         string
	Secret      string
	BaseURL     string // API origin the signed URLs point at
	UploadTTL   time.Duration
	DownloadTTL time.Duration
}

// DiskStore stores one file per storage id under Dir.
type DiskStore struct {
	dir         string
	secret      []byte
	baseURL     string
	uploadTTL   time.Duration
	downloadTTL time.Duration
	now         func() time.Time
}

type blobClaims struct {
	StorageID string `json:"sid"`
	Purpose   string `json:"purpose"`
	jwt.RegisteredClaims
}

func NewDiskStore(cfg Config) (*DiskStore, error) {
	if cfg.Secret == "" {
		return nil, errors.New("storage secret is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &DiskStore{
		dir:         cfg.Dir,
		secret:      []byte(cfg.Secret),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		uploadTTL:   cfg.UploadTTL,
		downloadTTL: cfg.DownloadTTL,
		now:         time.Now,
	}, nil
}

// WithClock replaces the store's time source. Used by tests.
func (s *DiskStore) WithClock(now func() time.Time) *DiskStore {
	s.now = now
	return s
}

// NewUpload allocates a storage id and returns a URL that accepts exactly
// one PUT of the blob body before it expires.
func (s *DiskStore) NewUpload(ctx context.Context) (string, string, time.Time, error) {
	storageID := uuid.NewString()
	expiresAt := s.now().Add(s.uploadTTL)

	token, err := s.sign(storageID, purposeUpload, expiresAt)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return storageID, s.baseURL + "/storage/upload?token=" + url.QueryEscape(token), expiresAt, nil
}

// Put writes the body for the storage id named by an upload token. A second
// upload to the same id fails with ErrBlobExists.
func (s *DiskStore) Put(ctx context.Context, token string, body io.Reader) (string, error) {
	storageID, err := s.verify(token, purposeUpload)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(s.path(storageID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if errors.Is(err, os.ErrExist) {
		return "", ErrBlobExists
	}
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return storageID, nil
}

// Exists reports whether a blob was uploaded for the storage id.
func (s *DiskStore) Exists(ctx context.Context, storageID string) (bool, error) {
	if !validID(storageID) {
		return false, nil
	}
	_, err := os.Stat(s.path(storageID))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// URL returns a time-boxed read URL for an existing blob.
func (s *DiskStore) URL(ctx context.Context, storageID string) (string, error) {
	ok, err := s.Exists(ctx, storageID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrBlobNotFound
	}

	token, err := s.sign(storageID, purposeDownload, s.now().Add(s.downloadTTL))
	if err != nil {
		return "", err
	}
	return s.baseURL + "/storage/blob?token=" + url.QueryEscape(token), nil
}

// Open resolves a read token to the blob file. The caller closes it.
func (s *DiskStore) Open(ctx context.Context, token string) (*os.File, error) {
	storageID, err := s.verify(token, purposeDownload)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(s.path(storageID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	return f, err
}

// Delete removes the blob. Deleting a missing blob is not an error.
func (s *DiskStore) Delete(ctx context.Context, storageID string) error {
	if !validID(storageID) {
		return nil
	}
	err := os.Remove(s.path(storageID))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *DiskStore) path(storageID string) string {
	return filepath.Join(s.dir, storageID)
}

func (s *DiskStore) sign(storageID, purpose string, expiresAt time.Time) (string, error) {
	claims := blobClaims{
		StorageID: storageID,
		Purpose:   purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *DiskStore) verify(token, purpose string) (string, error) {
	claims := &blobClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidTicket
	}
	if claims.Purpose != purpose || !validID(claims.StorageID) {
		return "", ErrInvalidTicket
	}
	return claims.StorageID, nil
}

// validID keeps storage ids to canonical uuids so they are always safe path
// components.
func validID(storageID string) bool {
	id, err := uuid.Parse(storageID)
	return err == nil && id.String() == storageID
}
