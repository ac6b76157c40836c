package models

import "gorm.io/gorm"

// Product represents a product in the store. The client treats products as
// immutable: they are fetched, never mutated locally.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string  `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageURL    string  `json:"imageUrl" gorm:"type:varchar(255)" validate:"omitempty,url"`
	Category    string  `json:"category" gorm:"index;type:varchar(100)"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Category is read-only reference data used to group products.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Slug        string `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required"`
	Description string `json:"description" gorm:"type:varchar(500)"`
	IconURL     string `json:"iconUrl" gorm:"type:varchar(255)"`
}

// ProductPage is the response shape of GET /products: one page of the
// catalog plus pagination metadata.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
}

// SearchResult is the response shape of GET /products/search.
type SearchResult struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
}

// ProductQuery carries the supported list parameters. Zero values mean
// "not set" and are omitted from the request. Category and Search are
// forwarded independently; keeping them mutually exclusive is caller
// discipline, not a constraint of this layer.
type ProductQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
}
