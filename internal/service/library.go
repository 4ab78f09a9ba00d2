package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"wordreader/internal/domain"
	"wordreader/internal/repository"
)

// TableKeyPrefix prefixes every saved table key
const TableKeyPrefix = "tableLibrary_"

// LibraryService stores named table snapshots
type LibraryService struct {
	repo   repository.KeyValueRepository
	logger *zap.Logger
}

// NewLibraryService creates a new library service
func NewLibraryService(repo repository.KeyValueRepository, logger *zap.Logger) *LibraryService {
	return &LibraryService{
		repo:   repo,
		logger: logger,
	}
}

// Save stores rows under name, overwriting any table with the same name.
// Cells are stored trimmed.
func (s *LibraryService) Save(name string, rows [][]string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrNameRequired
	}

	data := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		data[i] = cells
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	if err := s.repo.Set(TableKeyPrefix+name, string(encoded)); err != nil {
		s.logger.Error("Failed to save table", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("failed to save table: %w", err)
	}
	return nil
}

// Load returns the rows saved under name
func (s *LibraryService) Load(name string) ([][]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	value, ok, err := s.repo.Get(TableKeyPrefix + name)
	if err != nil {
		s.logger.Error("Failed to load table", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to load table: %w", err)
	}
	if !ok {
		return nil, domain.ErrTableNotFound
	}

	var rows [][]string
	if err := json.Unmarshal([]byte(value), &rows); err != nil {
		return nil, fmt.Errorf("failed to decode table %q: %w", name, err)
	}
	return rows, nil
}

// List returns the names of all saved tables, sorted
func (s *LibraryService) List() ([]string, error) {
	keys, err := s.repo.Keys(TableKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, strings.TrimPrefix(key, TableKeyPrefix))
	}
	sort.Strings(names)
	return names, nil
}
