package media

import (
	"context"
	"fmt"
	"path"

	"go.uber.org/zap"
)

// RefLister reports every image URL still referenced by the catalog.
type RefLister interface {
	ListImageURLs(ctx context.Context) ([]string, error)
}

// Janitor sweeps the upload directory and removes files no product
// references anymore.
type Janitor struct {
	store  *Store
	refs   RefLister
	logger *zap.Logger
}

type SweepResult struct {
	Removed int      `json:"removed"`
	Errors  int      `json:"errors"`
	Orphans []string `json:"orphans,omitempty"`
}

func NewJanitor(store *Store, refs RefLister, logger *zap.Logger) *Janitor {
	return &Janitor{store: store, refs: refs, logger: logger}
}

func (j *Janitor) Sweep(ctx context.Context) (*SweepResult, error) {
	urls, err := j.refs.ListImageURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list image refs: %w", err)
	}

	inUse := make(map[string]bool, len(urls))
	for _, u := range urls {
		inUse[path.Base(u)] = true
	}

	files, err := j.store.ListFiles()
	if err != nil {
		return nil, fmt.Errorf("list stored files: %w", err)
	}

	result := &SweepResult{}
	for _, name := range files {
		if inUse[name] {
			continue
		}
		result.Orphans = append(result.Orphans, name)
		if err := j.store.Remove(name); err != nil {
			result.Errors++
			j.logger.Warn("failed to remove orphan file",
				zap.String("file", name),
				zap.Error(err))
			continue
		}
		result.Removed++
	}

	j.logger.Info("media sweep finished",
		zap.Int("removed", result.Removed),
		zap.Int("errors", result.Errors))
	return result, nil
}
