package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{
				"audit_entries", "order_items", "orders", "employee_allowances",
				"menu_items", "menus", "users", "allowance_groups", "branches",
			} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		groups := []struct {
			Name   string
			Amount int64
		}{
			{"Standard", 150000},
			{"Premium", 300000},
		}
		for _, g := range groups {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM allowance_groups WHERE name = $1", g.Name).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO allowance_groups (name, monthly_allowance_cents, created_at, updated_at) VALUES ($1, $2, now(), now())",
				g.Name, g.Amount); err != nil {
				log.Fatalf("failed to insert group %s: %v", g.Name, err)
			}
			fmt.Println("Seeded allowance group:", g.Name)
		}

		branches := []struct {
			Name     string
			Location string
		}{
			{"Bole Branch", "Addis Ababa"},
			{"Jimma Branch", "Jimma"},
		}
		for _, b := range branches {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM branches WHERE name = $1", b.Name).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO branches (name, location, created_at, updated_at) VALUES ($1, $2, now(), now())",
				b.Name, b.Location); err != nil {
				log.Fatalf("failed to insert branch %s: %v", b.Name, err)
			}
			fmt.Println("Seeded branch:", b.Name)
		}

		var standardGroupID int64
		if err := db.QueryRow("SELECT id FROM allowance_groups WHERE name = $1", "Standard").Scan(&standardGroupID); err != nil {
			log.Fatalf("failed to look up standard group: %v", err)
		}

		users := []struct {
			FullName string
			Email    string
			Role     string
			GroupID  *int64
		}{
			{"System Admin", "admin@example.com", "ADMIN", nil},
			{"Finance Officer", "finance@example.com", "FINANCE", nil},
			{"Abebe Kebede", "abebe@example.com", "EMPLOYEE", &standardGroupID},
			{"Marta Haile", "marta@example.com", "EMPLOYEE", &standardGroupID},
		}
		for _, u := range users {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", u.Email).Scan(&exists); err == nil {
				fmt.Println("user already exists:", u.Email)
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO users (full_name, email, password_hash, role, verified, employee_allowance_group_id, created_at, updated_at) VALUES ($1, $2, $3, $4, true, $5, now(), now())",
				u.FullName, u.Email, string(hash), u.Role, u.GroupID); err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		fmt.Println("Seeding complete. Default password for all users: password")
	},
}
