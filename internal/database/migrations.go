package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds lookup indexes that are not expressed as struct tags.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Active invite link lookup per organization
		{"organization_invite_links", "idx_invite_links_org_active", "organization_id, deactivated_at, expires_at"},

		// Membership listing ordered by join date
		{"organization_memberships", "idx_memberships_org_created", "organization_id, created_at"},

		// Subscriptions for the billing page
		{"subscriptions", "idx_subscriptions_org_updated", "organization_id, updated_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}
