package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_02_000000_create_pools_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS pools (
						id SERIAL PRIMARY KEY,
						name VARCHAR(100) NOT NULL,
						description VARCHAR(500) NULL,
						creator_id INTEGER NOT NULL REFERENCES users(id),
						status VARCHAR(20) DEFAULT 'draft',
						invite_code VARCHAR(8) UNIQUE NOT NULL,
						max_participants INTEGER NULL,
						prize_amount DECIMAL(10,2) NULL,
						scoring_rules JSONB NOT NULL,
						participant_count INTEGER DEFAULT 0,
						start_date TIMESTAMP NULL,
						end_date TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_pools_creator_id ON pools(creator_id);
					CREATE INDEX IF NOT EXISTS idx_pools_status ON pools(status);
					CREATE INDEX IF NOT EXISTS idx_pools_deleted_at ON pools(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS pools CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000001_create_pool_participants_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS pool_participants (
						id SERIAL PRIMARY KEY,
						pool_id INTEGER NOT NULL REFERENCES pools(id) ON DELETE CASCADE,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						joined_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_pool_participants_pool_user ON pool_participants(pool_id, user_id);
					CREATE INDEX IF NOT EXISTS idx_pool_participants_user_id ON pool_participants(user_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS pool_participants CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000002_create_matches_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id SERIAL PRIMARY KEY,
						pool_id INTEGER NOT NULL REFERENCES pools(id) ON DELETE CASCADE,
						home_team VARCHAR(50) NOT NULL,
						away_team VARCHAR(50) NOT NULL,
						match_date TIMESTAMP NOT NULL,
						home_score INTEGER NULL,
						away_score INTEGER NULL,
						status VARCHAR(20) DEFAULT 'scheduled',
						scored_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_matches_pool_id ON matches(pool_id);
					CREATE INDEX IF NOT EXISTS idx_matches_match_date ON matches(match_date);
					CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS matches CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000003_create_user_bets_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS user_bets (
						id SERIAL PRIMARY KEY,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						home_score_prediction INTEGER NOT NULL,
						away_score_prediction INTEGER NOT NULL,
						points_earned INTEGER DEFAULT 0,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_user_bets_user_match ON user_bets(user_id, match_id);
					CREATE INDEX IF NOT EXISTS idx_user_bets_match_id ON user_bets(match_id);
					CREATE INDEX IF NOT EXISTS idx_user_bets_deleted_at ON user_bets(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS user_bets CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000004_create_polls_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS polls (
						id SERIAL PRIMARY KEY,
						title VARCHAR(200) NOT NULL,
						description VARCHAR(500) NULL,
						creator_id INTEGER NOT NULL REFERENCES users(id),
						status VARCHAR(20) DEFAULT 'draft',
						start_date TIMESTAMP NULL,
						end_date TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_polls_status ON polls(status);
					CREATE INDEX IF NOT EXISTS idx_polls_deleted_at ON polls(deleted_at);

					CREATE TABLE IF NOT EXISTS poll_options (
						id SERIAL PRIMARY KEY,
						poll_id INTEGER NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
						text VARCHAR(100) NOT NULL,
						votes_count INTEGER DEFAULT 0,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_poll_options_poll_id ON poll_options(poll_id);

					CREATE TABLE IF NOT EXISTS user_poll_votes (
						id SERIAL PRIMARY KEY,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						poll_id INTEGER NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
						option_id INTEGER NOT NULL REFERENCES poll_options(id) ON DELETE CASCADE,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_user_poll_votes_user_poll ON user_poll_votes(user_id, poll_id);
					CREATE INDEX IF NOT EXISTS idx_user_poll_votes_option_id ON user_poll_votes(option_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS user_poll_votes CASCADE;
					DROP TABLE IF EXISTS poll_options CASCADE;
					DROP TABLE IF EXISTS polls CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_01_02_000005_create_activities_and_notifications_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS activities (
						id SERIAL PRIMARY KEY,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						type VARCHAR(30) NOT NULL,
						description VARCHAR(255) NOT NULL,
						data JSONB NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_activities_user_id ON activities(user_id);
					CREATE INDEX IF NOT EXISTS idx_activities_type ON activities(type);
					CREATE INDEX IF NOT EXISTS idx_activities_created_at ON activities(created_at);

					CREATE TABLE IF NOT EXISTS notifications (
						id SERIAL PRIMARY KEY,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						title VARCHAR(100) NOT NULL,
						message VARCHAR(500) NOT NULL,
						type VARCHAR(30) NOT NULL,
						read BOOLEAN DEFAULT false,
						data JSONB NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
					CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(read);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS notifications CASCADE;
					DROP TABLE IF EXISTS activities CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_01_02_000006_create_ranking_snapshots_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS ranking_snapshots (
						id SERIAL PRIMARY KEY,
						scope VARCHAR(10) NOT NULL,
						pool_id INTEGER NULL REFERENCES pools(id) ON DELETE CASCADE,
						entries JSONB NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_ranking_snapshots_scope ON ranking_snapshots(scope, pool_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS ranking_snapshots CASCADE").Error
			},
		},
	}
}
