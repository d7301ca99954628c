package coffees

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal/coffee-catalog-backend/pkg/db/models"
	"github.com/personal/coffee-catalog-backend/pkg/pagination"
)

// CoffeeDTO is the transport shape of a catalog item.
type CoffeeDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	OriginCountry string          `json:"originCountry"`
	OriginRegion  *string         `json:"originRegion,omitempty"`
	RoastLevel    string          `json:"roastLevel"`
	Price         decimal.Decimal `json:"price"`
	Acidity       *int            `json:"acidity,omitempty"`
	Sweetness     *int            `json:"sweetness,omitempty"`
	Bitterness    *int            `json:"bitterness,omitempty"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CreateCoffeeRequest is the payload for adding a catalog item. Any supplied
// isActive value is ignored, creation always yields an active coffee.
type CreateCoffeeRequest struct {
	Name          string          `json:"name" validate:"required"`
	OriginCountry string          `json:"originCountry" validate:"required"`
	OriginRegion  *string         `json:"originRegion,omitempty"`
	RoastLevel    string          `json:"roastLevel" validate:"required"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	Acidity       *int            `json:"acidity,omitempty" validate:"omitempty,min=0,max=10"`
	Sweetness     *int            `json:"sweetness,omitempty" validate:"omitempty,min=0,max=10"`
	Bitterness    *int            `json:"bitterness,omitempty" validate:"omitempty,min=0,max=10"`
	IsActive      *bool           `json:"isActive,omitempty"`
}

// UpdateCoffeeRequest holds optional mutation values. Absent fields keep
// their stored value; each supplied field is validated on its own rules.
type UpdateCoffeeRequest struct {
	Name          *string          `json:"name,omitempty"`
	OriginCountry *string          `json:"originCountry,omitempty"`
	OriginRegion  *string          `json:"originRegion,omitempty"`
	RoastLevel    *string          `json:"roastLevel,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Acidity       *int             `json:"acidity,omitempty" validate:"omitempty,min=0,max=10"`
	Sweetness     *int             `json:"sweetness,omitempty" validate:"omitempty,min=0,max=10"`
	Bitterness    *int             `json:"bitterness,omitempty" validate:"omitempty,min=0,max=10"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

// ListInput captures the pagination and filter knobs for the browse endpoint.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

// ListFilters describe the supported filter knobs. Name matches as a
// case-insensitive substring, country and roast level match exactly.
type ListFilters struct {
	Name          string
	OriginCountry string
	RoastLevel    string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
}

func FromModel(c *models.Coffee) *CoffeeDTO {
	if c == nil {
		return nil
	}

	return &CoffeeDTO{
		ID:            c.ID,
		Name:          c.Name,
		OriginCountry: c.OriginCountry,
		OriginRegion:  c.OriginRegion,
		RoastLevel:    c.RoastLevel,
		Price:         c.Price,
		Acidity:       c.Acidity,
		Sweetness:     c.Sweetness,
		Bitterness:    c.Bitterness,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func fromModels(items []models.Coffee) []CoffeeDTO {
	dtos := make([]CoffeeDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *FromModel(&items[i]))
	}
	return dtos
}
