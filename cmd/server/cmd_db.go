package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikhilmekle/mern-ecommerce-app/database/seeders"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := boot(); err != nil {
			return err
		}
		// boot already runs migrations; reaching here means they passed.
		fmt.Println("Migrations complete.")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the admin account and starter catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := boot()
		if err != nil {
			return err
		}
		if err := seeders.RunAll(db); err != nil {
			return err
		}
		fmt.Println("Seeding complete.")
		return nil
	},
}
