package coffees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/personal/coffee-catalog-backend/pkg/db"
	"github.com/personal/coffee-catalog-backend/pkg/db/models"
	pkgerrors "github.com/personal/coffee-catalog-backend/pkg/errors"
	"github.com/personal/coffee-catalog-backend/pkg/pagination"
)

// SortableFields maps the API's sort field names onto column names. Sorting
// is only ever built from this map, never from raw request input.
var SortableFields = map[string]string{
	"id":            "id",
	"name":          "name",
	"price":         "price",
	"roastLevel":    "roast_level",
	"originCountry": "origin_country",
	"createdAt":     "created_at",
}

// DefaultSortField orders pages by id ascending when no sort is supplied.
const DefaultSortField = "id"

// Service exposes catalog management operations.
type Service interface {
	List(ctx context.Context, input ListInput) (*pagination.Page[CoffeeDTO], error)
	Get(ctx context.Context, id uuid.UUID) (*CoffeeDTO, error)
	Create(ctx context.Context, req CreateCoffeeRequest) (*CoffeeDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCoffeeRequest) (*CoffeeDTO, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*CoffeeDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*CoffeeDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coffee repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*pagination.Page[CoffeeDTO], error) {
	if input.Pagination.Sort.Column == "" {
		input.Pagination.Sort = pagination.Sort{Column: SortableFields[DefaultSortField]}
	}
	items, total, err := s.repo.ListActive(ctx, input.Filters, input.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list coffees")
	}
	return pagination.NewPage(fromModels(items), input.Pagination, total), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CoffeeDTO, error) {
	coffee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coffee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load coffee")
	}
	// inactive rows are invisible to single-item lookup, same as to list
	if !coffee.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coffee not found")
	}
	return FromModel(coffee), nil
}

func (s *service) Create(ctx context.Context, req CreateCoffeeRequest) (*CoffeeDTO, error) {
	name := strings.TrimSpace(req.Name)
	country := strings.TrimSpace(req.OriginCountry)
	roast := strings.TrimSpace(req.RoastLevel)

	fieldErrs := map[string]string{}
	if name == "" {
		fieldErrs["name"] = "must not be blank"
	}
	if country == "" {
		fieldErrs["originCountry"] = "must not be blank"
	}
	if roast == "" {
		fieldErrs["roastLevel"] = "must not be blank"
	}
	if len(fieldErrs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithFieldErrors(fieldErrs)
	}

	price, err := normalizePrice(req.Price)
	if err != nil {
		return nil, err
	}

	coffee := &models.Coffee{
		Name:          name,
		OriginCountry: country,
		OriginRegion:  req.OriginRegion,
		RoastLevel:    roast,
		Price:         price,
		Acidity:       req.Acidity,
		Sweetness:     req.Sweetness,
		Bitterness:    req.Bitterness,
		// caller input never decides the initial active state
		IsActive: true,
	}
	created, err := s.repo.Create(ctx, coffee)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create coffee")
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateCoffeeRequest) (*CoffeeDTO, error) {
	var updated *models.Coffee
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		coffee, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "coffee not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load coffee")
		}

		if err := applyPartialUpdate(coffee, req); err != nil {
			return err
		}

		updated, err = repo.Save(ctx, coffee)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save coffee")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) (*CoffeeDTO, error) {
	inactive := false
	return s.Update(ctx, id, UpdateCoffeeRequest{IsActive: &inactive})
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (*CoffeeDTO, error) {
	var removed *models.Coffee
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		coffee, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "coffee not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load coffee")
		}

		if err := repo.Delete(ctx, coffee.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete coffee")
		}
		removed = coffee
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(removed), nil
}

// applyPartialUpdate mutates the loaded row field by field. Each rule is
// spelled out per field: required strings reject blank values, the optional
// origin region accepts them, price must stay strictly positive.
func applyPartialUpdate(coffee *models.Coffee, req UpdateCoffeeRequest) error {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return blankFieldError("name")
		}
		coffee.Name = trimmed
	}
	if req.OriginCountry != nil {
		trimmed := strings.TrimSpace(*req.OriginCountry)
		if trimmed == "" {
			return blankFieldError("originCountry")
		}
		coffee.OriginCountry = trimmed
	}
	if req.OriginRegion != nil {
		// blank is allowed here, the field is optional
		region := *req.OriginRegion
		coffee.OriginRegion = &region
	}
	if req.RoastLevel != nil {
		trimmed := strings.TrimSpace(*req.RoastLevel)
		if trimmed == "" {
			return blankFieldError("roastLevel")
		}
		coffee.RoastLevel = trimmed
	}
	if req.Price != nil {
		price, err := normalizePrice(*req.Price)
		if err != nil {
			return err
		}
		coffee.Price = price
	}
	if req.Acidity != nil {
		coffee.Acidity = req.Acidity
	}
	if req.Sweetness != nil {
		coffee.Sweetness = req.Sweetness
	}
	if req.Bitterness != nil {
		coffee.Bitterness = req.Bitterness
	}
	if req.IsActive != nil {
		coffee.IsActive = *req.IsActive
	}
	return nil
}

// normalizePrice enforces a strictly positive price and stores it with two
// fractional digits, rounding half-up.
func normalizePrice(price decimal.Decimal) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithFieldError("price", "must be greater than zero")
	}
	return price.Round(2), nil
}

func blankFieldError(field string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithFieldError(field, "must not be blank")
}
