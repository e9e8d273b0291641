package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/kutbudev/tododeck/internal/api"
	"github.com/kutbudev/tododeck/internal/config"
	"github.com/kutbudev/tododeck/internal/repository"
	"github.com/kutbudev/tododeck/internal/service"
)

// Version will be set during build with ldflags
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "tododeck",
		Short:   "Todo tracking web application",
		Version: Version,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := repository.NewDatabase(cfg)
			if err != nil {
				return err
			}
			defer repository.Close(db)
			log.Println("Database connection established successfully")

			files := service.NewFileService(db, cfg.Uploads.Dir, cfg.Uploads.URL)
			if err := files.EnsureDir(); err != nil {
				return err
			}
			todos := service.NewTodoService(db, files)

			r := api.NewRouter(cfg, todos, files)
			log.Printf("Listening on %s", cfg.Server.Addr())
			return r.Run(cfg.Server.Addr())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run schema migration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := repository.NewDatabase(cfg)
			if err != nil {
				return err
			}
			defer repository.Close(db)

			log.Println("Migration complete")
			return nil
		},
	}
}
