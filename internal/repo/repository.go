package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/autoworks/workshop-backend/pkg/db"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/autoworks/workshop-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Entity is any persisted model with an integer surrogate key.
type Entity interface {
	GetID() int64
}

// Repository provides uniform CRUD over a single entity type. Lookups on a
// missing id return (nil, nil); callers distinguish "not found" by null check,
// not by error type.
type Repository[T Entity] struct {
	conn     *gorm.DB
	preloads []string
}

// NewRepository builds a repository for T bound to the provided GORM DB.
// Any preload names given are applied to every read.
func NewRepository[T Entity](conn *gorm.DB, preloads ...string) *Repository[T] {
	return &Repository[T]{conn: conn, preloads: preloads}
}

// session binds the connection to the caller's context.
func (r *Repository[T]) session(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return r.conn
	}
	return r.conn.WithContext(ctx)
}

func (r *Repository[T]) withPreloads(tx *gorm.DB) *gorm.DB {
	for _, assoc := range r.preloads {
		tx = tx.Preload(assoc)
	}
	return tx
}

var schemaCache = &sync.Map{}

// Create inserts the record and returns it with id and created_at populated.
// Unique constraint violations surface as CONFLICT errors.
func (r *Repository[T]) Create(ctx context.Context, record *T) (*T, error) {
	if err := r.session(ctx).Create(record).Error; err != nil {
		return nil, translateWriteError(err)
	}
	return record, nil
}

// CreateMany inserts all records in one transaction; any failure rolls the
// whole batch back.
func (r *Repository[T]) CreateMany(ctx context.Context, records []T) ([]T, error) {
	if len(records) == 0 {
		return records, nil
	}
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	return records, nil
}

// FindByID returns the record, or (nil, nil) when it does not exist.
func (r *Repository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var record T
	if err := r.withPreloads(r.session(ctx)).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindByIDs returns the subset of ids that exist, ordered by id. Missing ids
// are omitted silently.
func (r *Repository[T]) FindByIDs(ctx context.Context, ids []int64) ([]T, error) {
	records := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return records, nil
	}
	if err := r.withPreloads(r.session(ctx)).Where("id IN ?", ids).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// List returns one page of records ordered by id ascending, optionally
// filtered by a case-insensitive substring match on a single column.
func (r *Repository[T]) List(ctx context.Context, params pagination.Params) (*pagination.Page[T], error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.session(ctx).Model(new(T))
	if params.SearchBy != "" {
		column, err := r.searchColumn(params.SearchBy)
		if err != nil {
			return nil, err
		}
		if params.SearchQuery != "" {
			pattern := "%" + params.SearchQuery + "%"
			query = query.Where(fmt.Sprintf("LOWER(CAST(%s AS TEXT)) LIKE LOWER(?)", column), pattern)
		}
	}

	// reusable for both the count and the page query
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := pagination.TotalPages(total, limit)
	page := pagination.ClampPage(params.Page, totalPages)

	result := &pagination.Page[T]{
		CurrentPage:  page,
		Limit:        limit,
		TotalPages:   totalPages,
		TotalRecords: total,
		Records:      []T{},
	}
	if total == 0 {
		return result, nil
	}

	var records []T
	if err := r.withPreloads(query).
		Order("id ASC").
		Limit(limit).
		Offset(pagination.Offset(page, limit)).
		Find(&records).Error; err != nil {
		return nil, err
	}

	result.Records = records
	if len(records) > 0 {
		lastID := records[len(records)-1].GetID()
		result.NextRecordID = pagination.NextRecordID(page, limit, total, lastID)
	}
	result.PreviousRecordID = pagination.PreviousRecordID(page, limit)
	return result, nil
}

// UpdateByID applies only the provided column changes, stamps updated_at and
// returns the refreshed row, or (nil, nil) when the id does not exist.
func (r *Repository[T]) UpdateByID(ctx context.Context, id int64, changes map[string]any) (*T, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	patch := make(map[string]any, len(changes)+1)
	for k, v := range changes {
		patch[k] = v
	}
	delete(patch, "id")
	patch["updated_at"] = time.Now().UTC()

	if err := r.session(ctx).Model(existing).Updates(patch).Error; err != nil {
		return nil, translateWriteError(err)
	}
	return r.FindByID(ctx, id)
}

// UpdateManyByIDs applies changes[i] to ids[i] inside one transaction.
func (r *Repository[T]) UpdateManyByIDs(ctx context.Context, ids []int64, changes []map[string]any) ([]T, error) {
	if len(ids) != len(changes) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ids and changes must have the same length")
	}

	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := &Repository[T]{conn: tx, preloads: r.preloads}
		for i, id := range ids {
			if _, err := scoped.UpdateByID(ctx, id, changes[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByIDs(ctx, ids)
}

// DeleteByID removes the row and returns the pre-deletion snapshot, or
// (nil, nil) when the id does not exist.
func (r *Repository[T]) DeleteByID(ctx context.Context, id int64) (*T, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	if err := r.session(ctx).Delete(new(T), "id = ?", id).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteManyByIDs removes every existing row among ids in one transaction and
// reports how many were deleted.
func (r *Repository[T]) DeleteManyByIDs(ctx context.Context, ids []int64) (int, error) {
	records, err := r.FindByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	err = r.session(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if err := tx.Delete(new(T), "id = ?", record.GetID()).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// searchColumn validates a caller-supplied column name against the parsed
// model schema so it can be interpolated safely.
func (r *Repository[T]) searchColumn(name string) (string, error) {
	var model T
	parsed, err := schema.Parse(&model, schemaCache, schema.NamingStrategy{})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse model schema")
	}
	if _, ok := parsed.FieldsByDBName[name]; !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Invalid search column")
	}
	return name, nil
}

func translateWriteError(err error) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "record violates a unique constraint")
	}
	return err
}
