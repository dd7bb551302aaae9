package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category represents a catalog category. ParentID links to another
// category, forming a tree.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	IsVisible   bool    `json:"is_visible"`
	ParentID    *string `json:"parent_id,omitempty"`
}

// Validate checks the category fields before it is accepted locally.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.Slug, validation.Required),
	)
}

// CategoryPatch holds a partial category update. Nil fields are left untouched.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	IsVisible   *bool   `json:"is_visible,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
}

// Apply merges the non-nil patch fields into the category.
func (cp CategoryPatch) Apply(c *Category) {
	if cp.Name != nil {
		c.Name = *cp.Name
	}
	if cp.Slug != nil {
		c.Slug = *cp.Slug
	}
	if cp.Description != nil {
		c.Description = cp.Description
	}
	if cp.Image != nil {
		c.Image = cp.Image
	}
	if cp.IsVisible != nil {
		c.IsVisible = *cp.IsVisible
	}
	if cp.ParentID != nil {
		c.ParentID = cp.ParentID
	}
}
