package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SourceName identifies the origin of every stored article
const SourceName = "TRT Haber"

// Article is the persisted news record. It is built once all required
// fields passed the ingestion gates and is never updated afterwards.
type Article struct {
	Title           string    `json:"title" bson:"title" validate:"required"`
	URL             string    `json:"url" bson:"url" validate:"required"`
	Content         string    `json:"content" bson:"content" validate:"required"`
	ImageURL        string    `json:"image_url" bson:"image_url" validate:"required"`
	PublishDateStr  *string   `json:"publish_date_str" bson:"publish_date_str"`
	Category        string    `json:"category" bson:"category" validate:"required"`
	Cities          []string  `json:"cities" bson:"cities"`
	SourceName      string    `json:"source_name" bson:"source_name" validate:"required"`
	CreatedAtServer time.Time `json:"created_at_server" bson:"created_at_server" validate:"required"`
}

// Key returns the dedup key of the article
func (a *Article) Key() string {
	return TitleKey(a.Title)
}

// TitleKey generates a SHA-256 hex digest of a normalized title. Cache
// keys, file names and object keys are derived from it.
func TitleKey(title string) string {
	sum := sha256.Sum256([]byte(title))
	return hex.EncodeToString(sum[:])
}
