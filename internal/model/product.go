package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the only entity of the catalog. Its primary key is assigned by
// the database on insert.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null" json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}

// ProductDTO is the request body accepted on create and update.
//
// Every field is optional. A nil field means "not sent" and is skipped by
// ApplyTo, so a partial update keeps the stored values of absent fields.
// An explicit JSON null decodes to nil and is skipped the same way.
// There is no id field: the key of a product can never be rewritten
// through a payload.
type ProductDTO struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
}

// ApplyTo copies every field present in the DTO onto p.
// The copy is shallow and by name; no validation is applied.
func (d ProductDTO) ApplyTo(p *Product) {
	if d.Name != nil {
		p.Name = *d.Name
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.Price != nil {
		p.Price = *d.Price
	}
	if d.Stock != nil {
		p.Stock = *d.Stock
	}
}

// NewProduct builds a fresh, unsaved Product from the DTO.
func (d ProductDTO) NewProduct() Product {
	var p Product
	d.ApplyTo(&p)
	return p
}
