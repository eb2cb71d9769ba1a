package database

import (
	"database/sql"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// schemaStatements is the full schema in creation order. Every statement is
// idempotent so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username VARCHAR(100) UNIQUE NOT NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL DEFAULT '',
			role VARCHAR(20) NOT NULL DEFAULT 'staff',
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			last_login TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS classrooms (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) NOT NULL,
			section VARCHAR(50) NOT NULL DEFAULT '',
			capacity INT NOT NULL DEFAULT 30,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (name, section)
	)`,

	`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			date_of_birth DATE NOT NULL,
			admission_date DATE,
			roll_number VARCHAR(50) NOT NULL,
			classroom_id UUID NOT NULL REFERENCES classrooms(id) ON DELETE RESTRICT,
			father_name VARCHAR(200) NOT NULL DEFAULT '',
			contact_email VARCHAR(255) NOT NULL DEFAULT '',
			contact_phone VARCHAR(50) NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (roll_number, classroom_id)
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			fee_type VARCHAR(100) NOT NULL,
			total_fee NUMERIC(10,2) NOT NULL,
			total_paid NUMERIC(10,2) NOT NULL DEFAULT 0,
			payment_date DATE NOT NULL,
			due_date DATE,
			payment_method VARCHAR(20) NOT NULL DEFAULT 'cash',
			receipt_number VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS grades (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			subject VARCHAR(100) NOT NULL,
			term VARCHAR(50) NOT NULL,
			score NUMERIC(6,2) NOT NULL,
			max_score NUMERIC(6,2) NOT NULL DEFAULT 100,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, subject, term)
	)`,

	`CREATE TABLE IF NOT EXISTS attendance (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'present',
			notes VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_students_classroom ON students(classroom_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_student ON payments(student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_due_date ON payments(due_date)`,
	`CREATE INDEX IF NOT EXISTS idx_grades_student ON grades(student_id)`,
}

// RunMigrations creates the schema if it does not exist and seeds the
// default admin account.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	if err := seedAdminUser(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// seedAdminUser creates the initial admin account once, so a fresh install
// can log in. Password should be changed immediately after setup.
func seedAdminUser(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = 'admin'`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), 14)
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO users (username, email, password, first_name, last_name, role, status)
		VALUES ('admin', 'admin@school.com', $1, 'Admin', 'User', 'admin', 'active')`, string(hashed))
	if err != nil {
		return err
	}
	log.Println("Seeded default admin user (username: admin)")
	return nil
}
