package records

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stake-plus/nameguard/src/logging"
)

// Store persists ConfigRecords.
type Store interface {
	// AddRecords inserts each record independently. Records already present
	// are skipped without error. It returns how many rows were created.
	AddRecords(ctx context.Context, recs []ConfigRecord) (int, error)
	// RemoveRecord deletes the record matching the triple. Removing an
	// absent record is not an error.
	RemoveRecord(ctx context.Context, t ObjectType, objectID, serverID string) error
	ListByTypeAndServer(ctx context.Context, t ObjectType, serverID string) ([]ConfigRecord, error)
}

// GormStore is the Store backed by any gorm dialect.
type GormStore struct {
	db     *gorm.DB
	logger *logging.Logger
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB, logger *logging.Logger) *GormStore {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &GormStore{db: db, logger: logger.Named("records")}
}

// Migrate creates or updates the config_records table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ConfigRecord{})
}

func (s *GormStore) AddRecords(ctx context.Context, recs []ConfigRecord) (int, error) {
	log := s.logger.WithContext(ctx)

	var (
		added int
		errs  []error
	)
	for i := range recs {
		rec := recs[i]
		rec.ID = 0
		if err := rec.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}

		fields := []zap.Field{
			zap.String("object_type", rec.ObjectType.String()),
			zap.String("object_id", rec.DiscordObjectID),
			zap.String("server_id", rec.DiscordServerID),
		}

		res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
		switch {
		case errors.Is(res.Error, gorm.ErrDuplicatedKey), res.Error == nil && res.RowsAffected == 0:
			log.Info("record already configured", fields...)
		case res.Error != nil:
			log.Error("failed to add record", append(fields, zap.Error(res.Error))...)
			errs = append(errs, fmt.Errorf("record %d: %w", i, res.Error))
		default:
			added++
			log.Info("record added", fields...)
		}
	}
	return added, errors.Join(errs...)
}

func (s *GormStore) RemoveRecord(ctx context.Context, t ObjectType, objectID, serverID string) error {
	if !t.Valid() {
		return ErrUnknownObjectType
	}
	res := s.db.WithContext(ctx).
		Where("object_type = ? AND discord_object_id = ? AND discord_server_id = ?", t, objectID, serverID).
		Delete(&ConfigRecord{})
	if res.Error != nil {
		return fmt.Errorf("records: remove %s %s: %w", t, objectID, res.Error)
	}
	if res.RowsAffected == 0 {
		s.logger.WithContext(ctx).Debug("record not present",
			zap.String("object_type", t.String()),
			zap.String("object_id", objectID),
			zap.String("server_id", serverID),
		)
	}
	return nil
}

func (s *GormStore) ListByTypeAndServer(ctx context.Context, t ObjectType, serverID string) ([]ConfigRecord, error) {
	if !t.Valid() {
		return nil, ErrUnknownObjectType
	}
	var recs []ConfigRecord
	err := s.db.WithContext(ctx).
		Where("object_type = ? AND discord_server_id = ?", t, serverID).
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("records: list %s for %s: %w", t, serverID, err)
	}
	return recs, nil
}
