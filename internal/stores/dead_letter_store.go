package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/filestorages"
)

var (
	ErrDeadLetterAlreadyExist = errors.New("dead letter already exists")
	ErrDeadLetterNotFound     = errors.New("dead letter not found")
)

// DeadLetterStore keeps messages that exhausted redelivery, one file per message
// id. Put is create-if-not-exists: a second dead letter for the same id is
// rejected with ErrDeadLetterAlreadyExist and the first one is kept.
//
//go:generate mockgen -source=dead_letter_store.go -destination=./mocks/dead_letter_store_mock.go -package=mocks
type DeadLetterStore interface {
	Put(ctx context.Context, deadLetter *models.DeadLetter) error
	List(ctx context.Context) ([]*models.DeadLetter, error)
	Delete(ctx context.Context, messageID string) error
}

type deadLetterStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewDeadLetterStore(fileStorage filestorages.FileStorage) DeadLetterStore {
	return &deadLetterStore{fileStorage: fileStorage, dir: "dead-letters"}
}

func (s *deadLetterStore) Put(ctx context.Context, deadLetter *models.DeadLetter) error {
	jsonData, err := json.Marshal(deadLetter)
	if err != nil {
		return fmt.Errorf("failed to marshal dead letter: %w", err)
	}

	_, err = s.fileStorage.Put(ctx, s.getKey(deadLetter.MessageID), bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrDeadLetterAlreadyExist
		}
		return fmt.Errorf("failed to put dead letter: %w", err)
	}
	metricDeadLettersTotal.WithLabelValues("put").Inc()
	return nil
}

// List returns dead letters ordered by key.
func (s *deadLetterStore) List(ctx context.Context) ([]*models.DeadLetter, error) {
	keys, err := s.fileStorage.List(ctx, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list dead letters: %w", err)
	}

	deadLetters := make([]*models.DeadLetter, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		deadLetter, err := s.get(ctx, key)
		if err != nil {
			if errors.Is(err, filestorages.ErrFileNotFound) {
				// removed by a concurrent Delete
				continue
			}
			return nil, err
		}
		deadLetters = append(deadLetters, deadLetter)
	}
	return deadLetters, nil
}

func (s *deadLetterStore) Delete(ctx context.Context, messageID string) error {
	if err := s.fileStorage.Delete(ctx, s.getKey(messageID)); err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return ErrDeadLetterNotFound
		}
		return fmt.Errorf("failed to delete dead letter: %w", err)
	}
	metricDeadLettersTotal.WithLabelValues("delete").Inc()
	return nil
}

func (s *deadLetterStore) get(ctx context.Context, key string) (*models.DeadLetter, error) {
	readCloser, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get dead letter %s: %w", key, err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read dead letter %s: %w", key, err)
	}
	var deadLetter models.DeadLetter
	if err := json.Unmarshal(data, &deadLetter); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dead letter %s: %w", key, err)
	}
	return &deadLetter, nil
}

// getKey escapes the id so it always names a single file under dir.
func (s *deadLetterStore) getKey(messageID string) string {
	return fmt.Sprintf("%s/%s.json", s.dir, url.PathEscape(messageID))
}
