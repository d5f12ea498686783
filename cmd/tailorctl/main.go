package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"tailorshop/internal/config"
	"tailorshop/internal/db"
	"tailorshop/internal/logger"
	"tailorshop/internal/model"
	"tailorshop/internal/repository"
	"tailorshop/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tailorctl",
		Short:         "Operator commands for the tailor shop backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newRoleCmd())
	return root
}

// openDB loads configuration and connects to the configured database.
func openDB() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.New(cfg.IsProduction())
	return db.Open(cfg)
}

func newMigrateCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := openDB()
			if err != nil {
				return err
			}
			if err := db.Migrate(gormDB, reset); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop all tables first")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo tailors, customers, services and bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := openDB()
			if err != nil {
				return err
			}
			if err := db.Migrate(gormDB, false); err != nil {
				return err
			}
			seeder := service.NewSeedService(
				repository.NewUserRepository(gormDB),
				repository.NewBookingRepository(gormDB),
				repository.NewServiceRepository(gormDB),
				nil,
			)
			res, err := seeder.Seed(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Seed completed successfully!")
			fmt.Fprintf(out, "  - Tailors created: %d\n", res.Tailors)
			fmt.Fprintf(out, "  - Customers created: %d\n", res.Customers)
			fmt.Fprintf(out, "  - Services created: %d\n", res.Services)
			fmt.Fprintf(out, "  - Bookings created: %d\n", res.Bookings)
			fmt.Fprintf(out, "All accounts use the password %q\n", service.SeedPassword)
			return nil
		},
	}
}

func newRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "role <email> <admin|customer|tailor>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := openDB()
			if err != nil {
				return err
			}
			return setRole(cmd.Context(), repository.NewUserRepository(gormDB), repository.NewBookingRepository(gormDB),
				args[0], model.Role(strings.ToLower(args[1])), cmd)
		},
	}
}

func setRole(ctx context.Context, users repository.UserRepository, bookings repository.BookingRepository, email string, role model.Role, cmd *cobra.Command) error {
	user, err := users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("find %s: %w", email, err)
	}
	updated, err := service.NewAdminService(users, bookings).UpdateRole(ctx, user.ID, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", updated.Email, updated.Role)
	return nil
}
