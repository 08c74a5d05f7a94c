package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"resto-backend/internal/config"
	"resto-backend/internal/db"

	"github.com/jackc/pgx/v5"
)

// Clears sales data for a fresh test run. Menu items survive unless -all is
// given; -seed loads a small demo floor plan and menu afterwards.
func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to YAML config file")
	all := flag.Bool("all", false, "Also delete menu items")
	seed := flag.Bool("seed", false, "Insert demo tables and menu items")
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL BILLS AND TABLES!")
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL(), 2)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	tables := []string{"bill_items", "bills", "restaurant_tables"}
	if *all {
		tables = append(tables, "menu_items")
	}

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, table := range tables {
			if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
				return fmt.Errorf("truncate %s: %w", table, err)
			}
			fmt.Printf("  cleared %s\n", table)
		}
		if *seed {
			return seedDemo(ctx, tx)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Reset failed: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Database reset successful.")
}

func seedDemo(ctx context.Context, tx pgx.Tx) error {
	floor := []struct{ name, section string }{
		{"T1", "Main Hall"}, {"T2", "Main Hall"}, {"T3", "Main Hall"},
		{"P1", "Patio"}, {"P2", "Patio"},
	}
	for _, t := range floor {
		if _, err := tx.Exec(ctx,
			`INSERT INTO restaurant_tables (name, section, status) VALUES ($1, $2, 'blank')`,
			t.name, t.section); err != nil {
			return fmt.Errorf("seed table %s: %w", t.name, err)
		}
	}
	fmt.Println("  seeded tables")

	menu := []struct{ name, category, price string }{
		{"Masala Dosa", "South Indian", "80.00"},
		{"Paneer Tikka", "Starters", "220.00"},
		{"Butter Naan", "Breads", "45.00"},
		{"Dal Makhani", "Mains", "180.00"},
		{"Mango Lassi", "Beverages", "70.00"},
		{"Gulab Jamun", "Desserts", "60.00"},
	}
	for _, m := range menu {
		if _, err := tx.Exec(ctx,
			`INSERT INTO menu_items (name, category, price) VALUES ($1, $2, $3::numeric)`,
			m.name, m.category, m.price); err != nil {
			return fmt.Errorf("seed menu item %s: %w", m.name, err)
		}
	}
	fmt.Println("  seeded menu items")
	return nil
}
