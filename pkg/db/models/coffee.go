package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coffee represents a catalog item. OriginRegion is the only optional string
// field; the sensory levels are optional integers. Price is stored normalized
// to two fractional digits.
type Coffee struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	OriginCountry string          `gorm:"column:origin_country;not null"`
	OriginRegion  *string         `gorm:"column:origin_region"`
	RoastLevel    string          `gorm:"column:roast_level;not null"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Acidity       *int            `gorm:"column:acidity"`
	Sweetness     *int            `gorm:"column:sweetness"`
	Bitterness    *int            `gorm:"column:bitterness"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key client-side so the model works on both
// postgres and sqlite.
func (c *Coffee) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
