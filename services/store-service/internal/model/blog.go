package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultAuthor is attributed to blogs created without an explicit author.
const DefaultAuthor = "Admin"

// Blog represents a long-form blog entry.
type Blog struct {
	ID          bson.ObjectID `bson:"_id,omitempty"   json:"id"`
	Title       string        `bson:"title"           json:"title"`
	Description string        `bson:"description"     json:"description"`
	Category    string        `bson:"category"        json:"category"`
	Author      string        `bson:"author"          json:"author"`
	Image       string        `bson:"image,omitempty" json:"image,omitempty"`
	NumViews    int64         `bson:"num_views"       json:"num_views"`
	CreatedAt   time.Time     `bson:"created_at"      json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"      json:"updated_at"`
}
