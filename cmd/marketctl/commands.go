package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"adboard/internal/config"
	"adboard/internal/db"
	"adboard/internal/images"
	"adboard/internal/logging"
	"adboard/internal/models"
	"adboard/internal/repository"
)

// env is filled by the root command before any subcommand runs.
type env struct {
	cfg *config.Config
	log *logrus.Logger
	db  *gorm.DB
}

// opener connects to the configured database; tests swap it.
var opener = func() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogLevel, cfg.Environment())
	gdb, err := db.Open(cfg.DBDriver, cfg.DBDSN, logger)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: logger, db: gdb}, nil
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "marketctl",
		Short:         "Maintenance commands for the classifieds marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opened, err := opener()
			if err != nil {
				return err
			}
			*e = *opened
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if e.db == nil {
				return nil
			}
			return db.Close(e.db)
		},
	}
	root.AddCommand(newMigrateCmd(e), newCategoriesCmd(e), newUsersCmd(e))
	return root
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.Migrate(e.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func newCategoriesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage listing categories",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "seed [name...]",
		Short: "Create categories; without arguments DEFAULT_CATEGORIES is used",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = e.cfg.DefaultCategories
			}
			added, err := repository.NewCategories(e.db, e.log).Ensure(cmd.Context(), names...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d categories added\n", added)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := repository.NewCategories(e.db, e.log).List(cmd.Context())
			if err != nil {
				return err
			}
			for _, cat := range cats {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", cat.ID, cat.Name)
			}
			return nil
		},
	})
	return cmd
}

func newUsersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	var demote bool
	promote := &cobra.Command{
		Use:   "promote <email>",
		Short: "Give a user the admin role (moderation access)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := models.RoleAdmin
			if demote {
				role = models.RoleUser
			}
			u, err := repository.NewUsers(e.db, e.log).SetRole(cmd.Context(), args[0], role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", u.Email, role)
			return nil
		},
	}
	promote.Flags().BoolVar(&demote, "demote", false, "take the admin role away instead")
	cmd.AddCommand(promote, newUsersRemoveCmd(e))
	return cmd
}

// newUsersRemoveCmd deletes an account. The database drops the user's
// products; their image files are released afterwards.
func newUsersRemoveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <email>",
		Short: "Delete a user together with their ads and ad images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := images.New(e.cfg.UploadDir, "/uploads", e.log)
			if err != nil {
				return err
			}
			users := repository.NewUsers(e.db, e.log)
			u, err := users.FindByEmail(ctx, args[0])
			if err != nil {
				return err
			}
			items, err := repository.NewProducts(e.db, e.log).ListByOwner(ctx, u.ID)
			if err != nil {
				return err
			}
			if err := users.Remove(ctx, u); err != nil {
				return err
			}
			for i := range items {
				if err := items[i].DeleteImage(store); err != nil {
					e.log.WithError(err).Warnf("Could not remove image of product %d", items[i].ID)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s removed with %d ads\n", u.Email, len(items))
			return nil
		},
	}
}
