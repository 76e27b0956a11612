package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/locvowork/empdept/internal/bootstrap"
	"github.com/locvowork/empdept/internal/database"
	"github.com/locvowork/empdept/internal/domain"
	"github.com/locvowork/empdept/internal/fixture"
	"github.com/locvowork/empdept/internal/logger"
)

// seeder is the part of database.DataSeeder the actions use.
type seeder interface {
	SeedData(ctx context.Context, src domain.DataSource) error
	ClearData(ctx context.Context) error
}

func main() {
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	fixturePath := flag.String("fixture", "", "YAML dataset to seed (defaults to the embedded SCOTT fixture)")
	yes := flag.Bool("yes", false, "Skip the confirmation prompt for clear")

	flag.Parse()

	ctx := context.Background()
	if err := run(ctx, *action, *fixturePath, *yes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nDone!")
}

// run returns instead of exiting so the database pool is always closed.
func run(ctx context.Context, action, fixturePath string, yes bool) error {
	if action != "seed" && action != "clear" {
		flag.PrintDefaults()
		return fmt.Errorf("unknown action: %s", action)
	}

	fmt.Println("SCOTT Data Seeder")
	fmt.Println(strings.Repeat("=", 50))

	app := bootstrap.NewApp()
	if err := app.LoadConfig(ctx); err != nil {
		return err
	}

	db, err := app.OpenDB(ctx)
	if err != nil {
		logger.ErrorLog(ctx, "Failed to connect to database: %v", err)
		return err
	}
	defer app.Close()

	s := database.NewDataSeeder(db)
	if action == "seed" {
		return performSeed(ctx, s, fixturePath, os.Stdout)
	}
	return performClear(ctx, s, yes, os.Stdin, os.Stdout)
}

func loadSource(path string) (domain.DataSource, error) {
	if path == "" {
		return fixture.Default(), nil
	}
	ds, err := fixture.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading fixture failed: %w", err)
	}
	return ds, nil
}

func performSeed(ctx context.Context, s seeder, path string, out io.Writer) error {
	src, err := loadSource(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seeding %d departments, %d employees, %d salary grades\n",
		len(src.Depts()), len(src.Emps()), len(src.Salgrades()))

	if err := s.SeedData(ctx, src); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	return nil
}

func performClear(ctx context.Context, s seeder, yes bool, in io.Reader, out io.Writer) error {
	if !yes {
		fmt.Fprintln(out, "This will delete every row of emp, dept and salgrade!")
		fmt.Fprint(out, "Continue? (yes/no): ")

		response, _ := bufio.NewReader(in).ReadString('\n')
		if strings.TrimSpace(response) != "yes" {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := s.ClearData(ctx); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	return nil
}
