package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"contractorpm/collections"
	"contractorpm/commands"
	"contractorpm/config"
	"contractorpm/handlers"
)

func main() {
	cfgPath := os.Getenv("CPM_CONFIG")
	if cfgPath == "" {
		cfgPath = "cpm.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := pocketbase.New()

	// Create collections once the database is open, for the server and
	// every subcommand alike.
	app.OnBootstrap().BindFunc(func(e *core.BootstrapEvent) error {
		if err := e.Next(); err != nil {
			return err
		}
		return collections.Setup(e.App)
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if cfg.ApplyMail(app.Settings()) {
			if err := app.Save(app.Settings()); err != nil {
				log.Printf("Warning: could not persist mail settings: %v", err)
			}
		}

		handlers.RegisterRoutes(se, cfg)
		return se.Next()
	})

	app.RootCmd.AddCommand(
		commands.NewOfferCommand(app, cfg.OfferOptions()),
		commands.NewSeedDemoCommand(app),
	)

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
