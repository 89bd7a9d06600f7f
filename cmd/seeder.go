package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with roles, departments, leave types and sample users for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"audit_logs", "sessions", "leave_requests", "leave_balances", "users", "leave_types", "departments", "roles"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		roles := []string{"admin", "employee", "manager"}
		for _, name := range roles {
			var exists int
			if err := db.Raw("SELECT 1 FROM roles WHERE role_name = ?", name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO roles (role_name, created_at) VALUES (?, now())", name).Error; err != nil {
				log.Fatalf("failed to insert role %s: %v", name, err)
			}
			fmt.Println("Seeded role:", name)
		}

		departments := []string{"Engineering", "Human Resources", "Finance", "Operations"}
		for _, name := range departments {
			var exists int
			if err := db.Raw("SELECT 1 FROM departments WHERE department_name = ?", name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO departments (department_name, status, created_at) VALUES (?, 'active', now())", name).Error; err != nil {
				log.Fatalf("failed to insert department %s: %v", name, err)
			}
			fmt.Println("Seeded department:", name)
		}

		leaveTypes := []struct {
			Name      string
			Desc      string
			MaxDays   int
			ColorCode string
		}{
			{"Annual Leave", "Paid vacation days", cfg.Leave.DefaultAnnualDays, "#1E88E5"},
			{"Sick Leave", "Illness and medical appointments", 14, "#E53935"},
			{"Personal Leave", "Personal matters", 5, "#8E24AA"},
			{"Maternity Leave", "Maternity leave", 90, "#43A047"},
		}
		for _, lt := range leaveTypes {
			var exists int
			if err := db.Raw("SELECT 1 FROM leave_types WHERE leave_name = ?", lt.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO leave_types (leave_name, description, max_days_per_year, color_code, status, created_at, updated_at) VALUES (?, ?, ?, ?, 'active', now(), now())",
				lt.Name, lt.Desc, lt.MaxDays, lt.ColorCode).Error; err != nil {
				log.Fatalf("failed to insert leave type %s: %v", lt.Name, err)
			}
			fmt.Println("Seeded leave type:", lt.Name)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		users := []struct {
			Username  string
			Email     string
			FirstName string
			LastName  string
			Code      string
			Role      string
			Dept      string
		}{
			{"admin", "admin@example.com", "System", "Admin", "EMP001", "admin", "Human Resources"},
			{"jdoe", "jdoe@example.com", "Jane", "Doe", "EMP002", "employee", "Engineering"},
		}
		for _, u := range users {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE username = ?", u.Username).Row().Scan(&exists); err == nil {
				fmt.Printf("user %s already exists\n", u.Username)
				continue
			}
			if err := db.Exec(`
				INSERT INTO users (username, email, password_hash, first_name, last_name, employee_code, role_id, department_id, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?,
					(SELECT id FROM roles WHERE role_name = ?),
					(SELECT id FROM departments WHERE department_name = ?),
					'active', now(), now())`,
				u.Username, u.Email, string(hash), u.FirstName, u.LastName, u.Code, u.Role, u.Dept).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Println("Seeded user:", u.Username)
		}

		// Seed current-year balances for every user and active leave type.
		month, day, err := cfg.Leave.FinancialYearBoundary()
		if err != nil {
			log.Fatalf("invalid financial year config: %v", err)
		}
		year := leave.FinancialYear(time.Now(), month, day)

		if err := db.Exec(`
			INSERT INTO leave_balances (user_id, leave_type_id, year, total_days, used_days, created_at, updated_at)
			SELECT u.id, lt.id, ?, lt.max_days_per_year, 0, now(), now()
			FROM users u
			CROSS JOIN leave_types lt
			WHERE lt.status = 'active'
			  AND NOT EXISTS (
				SELECT 1 FROM leave_balances lb
				WHERE lb.user_id = u.id AND lb.leave_type_id = lt.id AND lb.year = ?
			  )`, year, year).Error; err != nil {
			log.Fatalf("failed to seed balances: %v", err)
		}

		fmt.Printf("Seeded leave balances for financial year %d\n", year)
		fmt.Println("Database seeded successfully")
	},
}
