package migrations

import (
	"database/sql"
	"fmt"
)

var db *sql.DB

// Init sets the DB connection used by Migrate and the seed helpers.
func Init(database *sql.DB) {
	db = database
}

// Migrate creates the required tables if they do not exist.
func Migrate() error {
	if db == nil {
		return fmt.Errorf("db is not initialized")
	}
	createDisciplines := `
	CREATE TABLE IF NOT EXISTS disciplines (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`
	if _, err := db.Exec(createDisciplines); err != nil {
		return err
	}

	createMembers := `
	CREATE TABLE IF NOT EXISTS members (
		id INT AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		birthdate DATE NOT NULL,
		gender VARCHAR(1) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		emergency_phone VARCHAR(20) NOT NULL,
		email VARCHAR(191) NOT NULL,
		discipline_id INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (discipline_id) REFERENCES disciplines(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`
	if _, err := db.Exec(createMembers); err != nil {
		return err
	}

	createPlans := `
	CREATE TABLE IF NOT EXISTS subscription_plans (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		type VARCHAR(20) NOT NULL DEFAULT 'yearly',
		season_label VARCHAR(50) NOT NULL DEFAULT '',
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		discipline_id INT NOT NULL,
		age_group VARCHAR(10) NOT NULL DEFAULT '',
		active TINYINT(1) NOT NULL DEFAULT 1,
		FOREIGN KEY (discipline_id) REFERENCES disciplines(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`
	if _, err := db.Exec(createPlans); err != nil {
		return err
	}

	createSubs := `
	CREATE TABLE IF NOT EXISTS subscriptions (
		id INT AUTO_INCREMENT PRIMARY KEY,
		member_id INT NOT NULL,
		plan_id INT NOT NULL,
		season_label VARCHAR(50) NOT NULL DEFAULT '',
		type VARCHAR(20) NOT NULL DEFAULT 'yearly',
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		payment_status VARCHAR(10) NOT NULL DEFAULT 'pending',
		payment_method VARCHAR(20) NOT NULL DEFAULT '',
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		idempotency_key VARCHAR(64) NULL,
		stripe_session_id VARCHAR(191) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_subscriptions_idempotency (idempotency_key),
		FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE,
		FOREIGN KEY (plan_id) REFERENCES subscription_plans(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`
	if _, err := db.Exec(createSubs); err != nil {
		return err
	}
	return nil
}

// SeedDisciplines inserts the default sports if the table is empty.
func SeedDisciplines() error {
	if db == nil {
		return fmt.Errorf("db is not initialized")
	}
	var count int
	if err := db.QueryRow("SELECT COUNT(1) FROM disciplines").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range []string{"Football", "Basketball", "Judo", "Swimming"} {
		if _, err := db.Exec("INSERT INTO disciplines (name, active) VALUES (?, 1)", name); err != nil {
			return err
		}
	}
	return nil
}

// SeedDefaultPlans inserts one plan per (discipline, age group) if no plans exist.
func SeedDefaultPlans() error {
	if db == nil {
		return fmt.Errorf("db is not initialized")
	}
	var count int
	if err := db.QueryRow("SELECT COUNT(1) FROM subscription_plans").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	const season = "2026/2027"
	groups := []struct {
		group string
		label string
		price float64
	}{
		{"child", "Kids", 120.00},
		{"teen", "Teens", 160.00},
		{"adult", "Adult", 220.00},
	}
	rows, err := db.Query("SELECT id, name FROM disciplines WHERE active = 1")
	if err != nil {
		return err
	}
	defer rows.Close()
	type disc struct {
		id   int
		name string
	}
	var discs []disc
	for rows.Next() {
		var d disc
		if err := rows.Scan(&d.id, &d.name); err != nil {
			return err
		}
		discs = append(discs, d)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, d := range discs {
		for _, g := range groups {
			name := fmt.Sprintf("%s %s %s", d.name, g.label, season)
			if _, err := db.Exec(
				`INSERT INTO subscription_plans (name, type, season_label, price, discipline_id, age_group, active)
				 VALUES (?, 'yearly', ?, ?, ?, ?, 1)`,
				name, season, g.price, d.id, g.group,
			); err != nil {
				return err
			}
		}
	}
	return nil
}
