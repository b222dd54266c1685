package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Brand is one of the brands the store sells.
type Brand string

const (
	BrandApple   Brand = "Apple"
	BrandSamsung Brand = "Samsung"
	BrandLenovo  Brand = "Lenovo"
)

// Color is one of the product colors the store sells.
type Color string

const (
	ColorBlack Color = "Black"
	ColorBrown Color = "Brown"
	ColorRed   Color = "Red"
)

// Product represents an item of the catalogue.
type Product struct {
	ID          bson.ObjectID  `bson:"_id,omitempty"      json:"id"`
	Title       string         `bson:"title"              json:"title"`
	Slug        string         `bson:"slug"               json:"slug"`
	Description string         `bson:"description"        json:"description"`
	Price       float64        `bson:"price"              json:"price"`
	Brand       Brand          `bson:"brand,omitempty"    json:"brand,omitempty"`
	Category    *bson.ObjectID `bson:"category,omitempty" json:"category,omitempty"`
	Quantity    int            `bson:"quantity"           json:"quantity"`
	Sold        int            `bson:"sold"               json:"sold"`
	Images      []string       `bson:"images,omitempty"   json:"images,omitempty"`
	Color       Color          `bson:"color,omitempty"    json:"color,omitempty"`
	Ratings     float64        `bson:"ratings"            json:"ratings"`
	CreatedAt   time.Time      `bson:"created_at"         json:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at"         json:"updated_at"`
}
