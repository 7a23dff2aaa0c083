package database

import (
	"fees-api/internal/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

func NewMySQL(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", cfg.GetMySQLDSN())
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	db.SetMaxOpenConns(cfg.MySQLMaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQLMaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQLConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// migrate creates the schema when it does not exist yet. The unique index on
// users.email backs the duplicate-email Conflict contract.
func migrate(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT UNSIGNED NOT NULL AUTO_INCREMENT,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			age INT NOT NULL DEFAULT 0,
			password VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_users_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id INT UNSIGNED NOT NULL AUTO_INCREMENT,
			user_id INT NOT NULL,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_posts_user_id (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS fees_data (
			id INT UNSIGNED NOT NULL AUTO_INCREMENT,
			sr INT NULL,
			date DATE NULL,
			academic_year VARCHAR(50) NULL,
			session VARCHAR(50) NULL,
			alloted_category VARCHAR(200) NULL,
			voucher_type VARCHAR(50) NULL,
			voucher_no VARCHAR(50) NULL,
			roll_no VARCHAR(100) NULL,
			admno_uniqueid VARCHAR(100) NULL,
			status VARCHAR(50) NULL,
			fee_category VARCHAR(150) NULL,
			faculty VARCHAR(200) NULL,
			program VARCHAR(200) NULL,
			department VARCHAR(200) NULL,
			batch VARCHAR(200) NULL,
			receipt_no VARCHAR(100) NULL,
			fee_head VARCHAR(150) NULL,
			due_amount DECIMAL(12,2) NULL,
			paid_amount DECIMAL(12,2) NULL,
			concession_amount DECIMAL(12,2) NULL,
			scholarship_amount DECIMAL(12,2) NULL,
			reverse_concession_amount DECIMAL(12,2) NULL,
			write_off_amount DECIMAL(12,2) NULL,
			adjusted_amount DECIMAL(12,2) NULL,
			refund_amount DECIMAL(12,2) NULL,
			fund_trancfer_amount DECIMAL(12,2) NULL,
			remarks TEXT NULL,
			PRIMARY KEY (id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
