package models

import "time"

// CollectionDocument stores one whole collection (products, users, orders)
// as a serialized JSON array in a single row.
type CollectionDocument struct {
	Name      string `gorm:"primaryKey;size:64"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (CollectionDocument) TableName() string {
	return "collections"
}
