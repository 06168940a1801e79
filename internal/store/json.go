package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/models"
	"github.com/bank-statementer/statementer/internal/normalizer"
)

// DefaultTagsFile is the store location when none is configured.
const DefaultTagsFile = "tags.json"

// JSONTagStore keeps tags as a JSON array of {description, category}
// objects. Every change rewrites the whole file through a temp file and a
// rename. Writers are not coordinated: the last writer wins.
type JSONTagStore struct {
	path       string
	normalizer *normalizer.Normalizer
	logger     logging.Logger
}

// NewJSONTagStore returns a store backed by path. A nil normalizer or
// logger selects the defaults.
func NewJSONTagStore(path string, n *normalizer.Normalizer, logger logging.Logger) *JSONTagStore {
	if path == "" {
		path = DefaultTagsFile
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &JSONTagStore{
		path:       path,
		normalizer: normalizerOrDefault(n),
		logger:     logger.WithField(logging.FieldFile, path),
	}
}

// Path is the backing file.
func (s *JSONTagStore) Path() string {
	return s.path
}

// LoadTags never fails: a missing file or an unreadable, corrupt one is
// treated as an empty store. A corrupt file is replaced on the next write.
func (s *JSONTagStore) LoadTags(_ context.Context) ([]models.Tag, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Tag store not found, starting empty")
		} else {
			s.logger.WithError(err).Warn("Failed to read tag store, treating as empty")
		}
		return []models.Tag{}, nil
	}

	var tags []models.Tag
	if err := json.Unmarshal(data, &tags); err != nil {
		s.logger.WithError(err).Warn("Tag store is corrupt, treating as empty")
		return []models.Tag{}, nil
	}
	if tags == nil {
		tags = []models.Tag{}
	}

	s.logger.Debug("Loaded tags", logging.F(logging.FieldTagCount, len(tags)))
	return tags, nil
}

func (s *JSONTagStore) AppendIfNew(ctx context.Context, tag models.Tag) (bool, error) {
	tags, err := s.LoadTags(ctx)
	if err != nil {
		return false, err
	}
	if containsEquivalent(s.normalizer, tags, tag) {
		return false, nil
	}

	tags = append(tags, tag)
	if err := s.save(tags); err != nil {
		return false, err
	}

	s.logger.Info("Tag added",
		logging.F(logging.FieldDescription, tag.Description),
		logging.F(logging.FieldCategory, tag.Category),
		logging.F(logging.FieldTagCount, len(tags)))
	return true, nil
}

func (s *JSONTagStore) save(tags []models.Tag) error {
	data, err := json.MarshalIndent(tags, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding tags: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating tag store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary tag file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing tags: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error syncing tags: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing temporary tag file: %w", err)
	}
	if err := os.Chmod(tmpName, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error setting tag file permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("error replacing tag store: %w", err)
	}
	return nil
}
