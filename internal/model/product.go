package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ProductStatus describes the catalog state of a product.
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusInactive   ProductStatus = "inactive"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// Product represents a catalog item as served by the backend data service.
type Product struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Images          []string      `json:"images"`
	OriginalPrice   float64       `json:"original_price"`
	DiscountedPrice *float64      `json:"discounted_price,omitempty"`
	CategoryID      string        `json:"category_id"`
	Stock           int           `json:"stock"`
	Status          ProductStatus `json:"status"`
	IsVisible       bool          `json:"is_visible"`
	Tags            []string      `json:"tags"`
}

// Validate checks the product fields before it is accepted locally.
func (p Product) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.OriginalPrice, validation.Min(0.0)),
		validation.Field(&p.Stock, validation.Min(0)),
		validation.Field(&p.Status, validation.Required, validation.In(
			ProductStatusActive, ProductStatusInactive, ProductStatusOutOfStock)),
	)
}

// ProductPatch holds a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name            *string        `json:"name,omitempty"`
	Images          *[]string      `json:"images,omitempty"`
	OriginalPrice   *float64       `json:"original_price,omitempty"`
	DiscountedPrice *float64       `json:"discounted_price,omitempty"`
	CategoryID      *string        `json:"category_id,omitempty"`
	Stock           *int           `json:"stock,omitempty"`
	Status          *ProductStatus `json:"status,omitempty"`
	IsVisible       *bool          `json:"is_visible,omitempty"`
	Tags            *[]string      `json:"tags,omitempty"`
}

// Apply merges the non-nil patch fields into the product.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Images != nil {
		p.Images = *pp.Images
	}
	if pp.OriginalPrice != nil {
		p.OriginalPrice = *pp.OriginalPrice
	}
	if pp.DiscountedPrice != nil {
		p.DiscountedPrice = pp.DiscountedPrice
	}
	if pp.CategoryID != nil {
		p.CategoryID = *pp.CategoryID
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.IsVisible != nil {
		p.IsVisible = *pp.IsVisible
	}
	if pp.Tags != nil {
		p.Tags = *pp.Tags
	}
}
