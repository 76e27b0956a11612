// Package main provides the report CLI: list the report catalog, run a
// report to the terminal, or export it to a spreadsheet.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/locvowork/empdept/internal/bootstrap"
	"github.com/locvowork/empdept/internal/service"
)

func main() {
	rootCmd := newRootCmd(loadService)
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadService builds the report service from the environment configuration.
func loadService(ctx context.Context) (*service.EmployeeService, error) {
	app := bootstrap.NewApp()
	if err := app.InitializeData(ctx); err != nil {
		return nil, err
	}
	// the dataset is in memory once loaded
	if err := app.Close(); err != nil {
		return nil, err
	}
	return app.Service, nil
}
