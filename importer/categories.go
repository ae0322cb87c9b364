package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
)

// CategoryStore is the category persistence the resolver needs.
type CategoryStore interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
}

// CategoryResolver maps free-text category names to ids for one import run,
// creating categories the first time a name is seen. It is not safe for
// concurrent use; every run builds its own.
type CategoryResolver struct {
	store   CategoryStore
	ids     map[string]uint
	created []string
}

// NewCategoryResolver seeds a resolver with every existing category.
func NewCategoryResolver(ctx context.Context, store CategoryStore) (*CategoryResolver, error) {
	existing, err := store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	r := &CategoryResolver{store: store, ids: make(map[string]uint, len(existing))}
	for _, c := range existing {
		r.ids[categoryKey(c.Name)] = c.ID
	}
	return r, nil
}

// Resolve returns the id for a category name, or nil for a blank name.
func (r *CategoryResolver) Resolve(ctx context.Context, name string) (*uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	key := categoryKey(name)
	if id, ok := r.ids[key]; ok {
		return &id, nil
	}

	category := &models.Category{Name: name}
	if err := r.store.Create(ctx, category); err != nil {
		// Another writer may have created it since the cache was seeded.
		found, findErr := r.store.FindByName(ctx, name)
		if findErr != nil || found == nil {
			return nil, err
		}
		category = found
	} else {
		r.created = append(r.created, name)
	}

	r.ids[key] = category.ID
	id := category.ID
	return &id, nil
}

// Created lists the category names inserted during this run.
func (r *CategoryResolver) Created() []string {
	return r.created
}

func categoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
