package orderarchive

import (
	"context"
	"errors"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderArchive implements ports.OrderArchive using GORM.
type GormOrderArchive struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records which orders a unit of work wrote.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderArchive creates a new GORM order archive.
func NewGormOrderArchive(db *gorm.DB, tracker aggregateTracker) *GormOrderArchive {
	return &GormOrderArchive{
		db:      db,
		tracker: tracker,
	}
}

// Save inserts the order, or updates the state of an already archived one.
// Line items and the ordered-at time never change once written.
func (r *GormOrderArchive) Save(ctx context.Context, o order.Order, state order.State) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.IsPlaced() {
		return errs.NewValueIsRequiredError("order id")
	}
	if err := state.Validate(); err != nil {
		return err
	}

	dto := fromDomain(o, state)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "archived_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(o.ID(), o)
	return nil
}

// Get retrieves an archived order by id.
func (r *GormOrderArchive) Get(ctx context.Context, orderID int64) (order.Order, order.State, error) {
	var dto ArchivedOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.Order{}, order.Unknown, errs.NewObjectNotFoundError("archived order", orderID)
		}
		return order.Order{}, order.Unknown, err
	}

	return toDomain(dto)
}

// States returns the archived state of every order.
func (r *GormOrderArchive) States(ctx context.Context) (map[int64]order.State, error) {
	var rows []struct {
		ID    int64
		State string
	}
	if err := r.db.WithContext(ctx).Model(&ArchivedOrderDTO{}).Select("id", "state").Find(&rows).Error; err != nil {
		return nil, err
	}

	states := make(map[int64]order.State, len(rows))
	for _, row := range rows {
		state, err := order.ParseState(row.State)
		if err != nil {
			return nil, err
		}
		states[row.ID] = state
	}

	return states, nil
}
