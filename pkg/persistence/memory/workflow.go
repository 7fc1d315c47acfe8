package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/dukex/flowsmith/pkg/persistence"
)

// WorkflowRepository keeps generated workflows keyed by id.
type WorkflowRepository struct {
	mu      sync.RWMutex
	lastID  atomic.Int64
	records map[int64]*models.Workflow
	now     func() time.Time
}

// NewWorkflowRepository creates an empty workflow repository.
func NewWorkflowRepository(now func() time.Time) *WorkflowRepository {
	return &WorkflowRepository{
		records: make(map[int64]*models.Workflow),
		now:     now,
	}
}

func (r *WorkflowRepository) Create(_ context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow == nil {
		return nil, persistence.NewWorkflowError("Create", 0, persistence.ErrNilRecord)
	}

	stored := workflow.Clone()
	stored.ID = r.lastID.Add(1)
	stored.CreatedAt = r.now()

	r.mu.Lock()
	r.records[stored.ID] = stored
	r.mu.Unlock()

	return stored.Clone(), nil
}

func (r *WorkflowRepository) GetByID(_ context.Context, id int64) (*models.Workflow, error) {
	r.mu.RLock()
	stored, ok := r.records[id]
	r.mu.RUnlock()

	if !ok {
		return nil, persistence.NewWorkflowError("GetByID", id, persistence.ErrWorkflowNotFound)
	}

	return stored.Clone(), nil
}

func (r *WorkflowRepository) ListRecent(_ context.Context, limit int) ([]*models.Workflow, error) {
	if limit <= 0 {
		limit = persistence.DefaultRecentLimit
	}

	r.mu.RLock()
	all := make([]*models.Workflow, 0, len(r.records))
	for _, stored := range r.records {
		all = append(all, stored)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}

		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if len(all) > limit {
		all = all[:limit]
	}

	result := make([]*models.Workflow, len(all))
	for i, stored := range all {
		result[i] = stored.Clone()
	}

	return result, nil
}
