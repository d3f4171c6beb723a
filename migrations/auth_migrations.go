package migrations

import "gorm.io/gorm"

func GetAuthMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_01_000000_create_users_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS users (
						id SERIAL PRIMARY KEY,
						email VARCHAR(255) UNIQUE NOT NULL,
						password VARCHAR(255) NOT NULL,
						username VARCHAR(255) UNIQUE,
						enabled BOOLEAN DEFAULT true,
						last_login TIMESTAMP NULL,
						roles JSONB DEFAULT '["user"]'::jsonb,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
					CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON users(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_users_roles ON users USING GIN (roles);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS users CASCADE").Error
			},
		},
	}
}
