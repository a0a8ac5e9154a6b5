package models

import "time"

// Asset is the stored-asset descriptor returned by the image host after an upload.
type Asset struct {
	PublicID         string    `bson:"public_id" json:"public_id"`
	Version          int       `bson:"version,omitempty" json:"version,omitempty"`
	VersionID        string    `bson:"version_id,omitempty" json:"version_id,omitempty"`
	Signature        string    `bson:"signature,omitempty" json:"signature,omitempty"`
	Width            int       `bson:"width,omitempty" json:"width,omitempty"`
	Height           int       `bson:"height,omitempty" json:"height,omitempty"`
	Format           string    `bson:"format,omitempty" json:"format,omitempty"`
	ResourceType     string    `bson:"resource_type,omitempty" json:"resource_type,omitempty"`
	CreatedAt        time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	Bytes            int       `bson:"bytes,omitempty" json:"bytes,omitempty"`
	Type             string    `bson:"type,omitempty" json:"type,omitempty"`
	Etag             string    `bson:"etag,omitempty" json:"etag,omitempty"`
	URL              string    `bson:"url" json:"url"`
	SecureURL        string    `bson:"secure_url" json:"secure_url"`
	Folder           string    `bson:"folder,omitempty" json:"folder,omitempty"`
	OriginalFilename string    `bson:"original_filename,omitempty" json:"original_filename,omitempty"`
}
