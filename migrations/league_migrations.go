package migrations

import "gorm.io/gorm"

func GetLeagueMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_02_000000_create_league_tables",
			Up: func(db *gorm.DB) error {
				// Squads with lifetime goal tallies
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						team VARCHAR(10) NOT NULL,
						goals INT DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_players_name_team ON players(name, team);
					CREATE INDEX IF NOT EXISTS idx_players_deleted_at ON players(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_players_goals ON players(goals);
				`).Error; err != nil {
					return err
				}

				// Match results with computed prize columns
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id BIGSERIAL PRIMARY KEY,
						date VARCHAR(10) NOT NULL,
						goals_aek INT NOT NULL DEFAULT 0,
						goals_real INT NOT NULL DEFAULT 0,
						scorers_aek JSONB DEFAULT '[]'::jsonb,
						scorers_real JSONB DEFAULT '[]'::jsonb,
						yellow_aek INT NOT NULL DEFAULT 0,
						red_aek INT NOT NULL DEFAULT 0,
						yellow_real INT NOT NULL DEFAULT 0,
						red_real INT NOT NULL DEFAULT 0,
						man_of_the_match VARCHAR(255) DEFAULT '',
						man_of_the_match_team VARCHAR(10) DEFAULT '',
						prize_aek INT NOT NULL DEFAULT 0,
						prize_real INT NOT NULL DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(date);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
				`).Error; err != nil {
					return err
				}

				// One finance row per club
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS finances (
						id BIGSERIAL PRIMARY KEY,
						team VARCHAR(10) NOT NULL,
						balance INT NOT NULL DEFAULT 0,
						debt INT NOT NULL DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_finances_team ON finances(team);
				`).Error; err != nil {
					return err
				}

				// Player of the match counters
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS spieler_des_spiels (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						team VARCHAR(10) NOT NULL,
						count INT NOT NULL DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_sds_name_team ON spieler_des_spiels(name, team);
				`).Error; err != nil {
					return err
				}

				// Transaction ledger, rows linked to matches are hard-deleted on reversal
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS transactions (
						id BIGSERIAL PRIMARY KEY,
						date VARCHAR(10) NOT NULL,
						type VARCHAR(50) NOT NULL,
						team VARCHAR(10) NOT NULL,
						amount INT NOT NULL,
						match_id BIGINT NULL,
						info VARCHAR(255) DEFAULT '',
						created_at TIMESTAMP DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_transactions_match_id ON transactions(match_id);
					CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
					CREATE INDEX IF NOT EXISTS idx_transactions_team ON transactions(team);
				`).Error; err != nil {
					return err
				}

				// Suspensions
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS bans (
						id BIGSERIAL PRIMARY KEY,
						player_name VARCHAR(255) NOT NULL,
						team VARCHAR(10) NOT NULL,
						reason VARCHAR(255) DEFAULT '',
						total_matches INT NOT NULL,
						matches_served INT NOT NULL DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_bans_deleted_at ON bans(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_bans_team ON bans(team);
				`).Error; err != nil {
					return err
				}

				return nil
			},
			Down: func(db *gorm.DB) error {
				for _, table := range []string{"bans", "transactions", "spieler_des_spiels", "finances", "matches", "players"} {
					if err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE").Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Name: "2025_01_03_000000_seed_finances",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					INSERT INTO finances (team, balance, debt)
					VALUES ('AEK', 0, 0), ('Real', 0, 0)
					ON CONFLICT DO NOTHING;
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DELETE FROM finances WHERE team IN ('AEK', 'Real')").Error
			},
		},
	}
}
