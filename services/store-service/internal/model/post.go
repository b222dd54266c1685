package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post represents a short news post.
type Post struct {
	ID        bson.ObjectID `bson:"_id,omitempty"  json:"id"`
	Title     string        `bson:"title"          json:"title"`
	Content   string        `bson:"content"        json:"content"`
	Category  string        `bson:"category"       json:"category"`
	Author    string        `bson:"author"         json:"author"`
	Tags      []string      `bson:"tags,omitempty" json:"tags,omitempty"`
	NumViews  int64         `bson:"num_views"      json:"num_views"`
	CreatedAt time.Time     `bson:"created_at"     json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"     json:"updated_at"`
}
