package coffees

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personal/coffee-catalog-backend/pkg/db/models"
	"github.com/personal/coffee-catalog-backend/pkg/pagination"
)

// Repository wires coffee persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new coffee row.
func (r *Repository) Create(ctx context.Context, coffee *models.Coffee) (*models.Coffee, error) {
	if err := r.db.WithContext(ctx).Create(coffee).Error; err != nil {
		return nil, err
	}
	return coffee, nil
}

// FindByID loads a coffee by its UUID regardless of the active flag.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Coffee, error) {
	var coffee models.Coffee
	if err := r.db.WithContext(ctx).First(&coffee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &coffee, nil
}

// Save persists all fields of an already-loaded coffee row.
func (r *Repository) Save(ctx context.Context, coffee *models.Coffee) (*models.Coffee, error) {
	if err := r.db.WithContext(ctx).Save(coffee).Error; err != nil {
		return nil, err
	}
	return coffee, nil
}

// Delete permanently removes the row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Coffee{}, "id = ?", id).Error
}

// ListActive returns one page of active coffees matching the filters, plus
// the total match count. LOWER(...) LIKE keeps the name search
// case-insensitive on both postgres and sqlite.
func (r *Repository) ListActive(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Coffee, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Coffee{}).
		Where("is_active = ?", true)

	if name := strings.TrimSpace(filters.Name); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if filters.OriginCountry != "" {
		query = query.Where("origin_country = ?", filters.OriginCountry)
	}
	if filters.RoastLevel != "" {
		query = query.Where("roast_level = ?", filters.RoastLevel)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", filters.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := pagination.NormalizePage(params.Page)
	size := pagination.NormalizeSize(params.Size)

	var items []models.Coffee
	if err := query.
		Order(params.Sort.OrderClause()).
		Offset(page * size).
		Limit(size).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
