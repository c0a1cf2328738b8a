package records

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stake-plus/nameguard/src/logging"
)

// legacyTypes maps every spelling seen in older deployments, squashed to
// lower case without separators, onto the canonical type. "high ranking role"
// predates the protected-role naming and means the same thing.
var legacyTypes = map[string]ObjectType{
	"protectedrole":   ProtectedRole,
	"highrankingrole": ProtectedRole,
	"allowlistrole":   AllowlistRole,
	"allowlistedrole": AllowlistRole,
	"whitelistrole":   AllowlistRole,
	"allowlistuser":   AllowlistUser,
	"allowlisteduser": AllowlistUser,
	"whitelistuser":   AllowlistUser,
}

// ParseObjectType accepts canonical values and legacy spellings such as
// HIGH_RANKING_ROLE or AllowlistUser.
func ParseObjectType(s string) (ObjectType, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '.':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))

	if t, ok := legacyTypes[key]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownObjectType, s)
}

// MigrateLegacyTypes rewrites rows stored under a legacy type name. A row
// whose canonical twin already exists is dropped. It returns the number of
// rows rewritten or dropped.
func MigrateLegacyTypes(ctx context.Context, db *gorm.DB, logger *logging.Logger) (int, error) {
	var legacy []ConfigRecord
	if err := db.WithContext(ctx).Where("object_type NOT IN ?", ObjectTypes).Find(&legacy).Error; err != nil {
		return 0, fmt.Errorf("records: find legacy rows: %w", err)
	}

	migrated := 0
	for _, row := range legacy {
		canonical, err := ParseObjectType(string(row.ObjectType))
		if err != nil {
			logger.Warn("skipping config record with unknown type",
				zap.Uint64("id", row.ID),
				zap.String("object_type", string(row.ObjectType)),
			)
			continue
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			replacement := row
			replacement.ID = 0
			replacement.ObjectType = canonical
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&replacement).Error; err != nil {
				return err
			}
			return tx.Delete(&ConfigRecord{}, row.ID).Error
		})
		if err != nil {
			return migrated, fmt.Errorf("records: migrate row %d: %w", row.ID, err)
		}
		migrated++
	}

	if migrated > 0 {
		logger.Info("migrated legacy config records", zap.Int("count", migrated))
	}
	return migrated, nil
}
