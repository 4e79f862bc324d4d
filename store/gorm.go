package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/infpro/storefront-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCollection keeps a collection as one JSON document row in the
// "collections" table, keyed by name.
type GormCollection[T any] struct {
	db   *gorm.DB
	name string
}

func NewGormCollection[T any](db *gorm.DB, name string) *GormCollection[T] {
	return &GormCollection[T]{db: db, name: name}
}

func (g *GormCollection[T]) Load(ctx context.Context) ([]T, error) {
	var doc models.CollectionDocument
	err := g.db.WithContext(ctx).First(&doc, "name = ?", g.name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load collection %s: %w", g.name, err)
	}

	var items []T
	if err := json.Unmarshal(doc.Data, &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", g.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (g *GormCollection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", g.name, err)
	}

	doc := models.CollectionDocument{
		Name:      g.name,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	err = g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("save collection %s: %w", g.name, err)
	}
	return nil
}

func (g *GormCollection[T]) Exists(ctx context.Context) (bool, error) {
	var n int64
	if err := g.db.WithContext(ctx).Model(&models.CollectionDocument{}).Where("name = ?", g.name).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count collection %s: %w", g.name, err)
	}
	return n > 0, nil
}

// OpenGorm migrates the collections table and returns a Store over db.
func OpenGorm(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.CollectionDocument{}); err != nil {
		return nil, fmt.Errorf("migrate collections: %w", err)
	}
	return &Store{
		Products: NewGormCollection[models.Product](db, ProductsCollection),
		Users:    NewGormCollection[models.User](db, UsersCollection),
		Orders:   NewGormCollection[models.Order](db, OrdersCollection),
	}, nil
}

// OpenPostgres connects with a DATABASE_URL style DSN and opens the store.
func OpenPostgres(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return OpenGorm(db)
}
