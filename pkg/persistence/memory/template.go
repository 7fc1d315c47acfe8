package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/dukex/flowsmith/pkg/persistence"
)

// TemplateRepository serves seeded templates in id order.
type TemplateRepository struct {
	mu      sync.RWMutex
	lastID  atomic.Int64
	ordered []*models.Template
	byID    map[int64]*models.Template
}

// NewTemplateRepository creates an empty template repository.
func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{byID: make(map[int64]*models.Template)}
}

func (r *TemplateRepository) Seed(_ context.Context, templates []models.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range templates {
		stored := templates[i].Clone()
		stored.ID = r.lastID.Add(1)

		if stored.NodeCount == 0 {
			stored.NodeCount = len(stored.N8nJSON.Nodes)
		}

		r.ordered = append(r.ordered, stored)
		r.byID[stored.ID] = stored
	}

	return nil
}

func (r *TemplateRepository) List(_ context.Context) ([]*models.Template, error) {
	return r.collect(func(*models.Template) bool { return true }), nil
}

func (r *TemplateRepository) GetByID(_ context.Context, id int64) (*models.Template, error) {
	r.mu.RLock()
	stored, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return nil, persistence.NewTemplateError("GetByID", id, persistence.ErrTemplateNotFound)
	}

	return stored.Clone(), nil
}

func (r *TemplateRepository) ListByCategory(_ context.Context, category string) ([]*models.Template, error) {
	return r.collect(func(t *models.Template) bool { return t.Category == category }), nil
}

func (r *TemplateRepository) collect(keep func(*models.Template) bool) []*models.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Template, 0, len(r.ordered))

	for _, stored := range r.ordered {
		if keep(stored) {
			out = append(out, stored.Clone())
		}
	}

	return out
}
