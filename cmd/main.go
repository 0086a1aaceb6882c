package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-donation-tracker/cmd/config"
	"food-donation-tracker/cmd/database/migrate"
	"food-donation-tracker/cmd/database/seed"
	"food-donation-tracker/internal/utils"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/pkg/organization"

	flag "github.com/spf13/pflag"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.StringP("config", "c", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	seedOnly := flag.Bool("seed", false, "seed sample organizations and exit")
	flag.Parse()

	if err := utils.LoadConfigFile(*configPath); err != nil {
		if !os.IsNotExist(err) {
			os.Stderr.WriteString("error loading config: " + err.Error() + "\n")
			os.Exit(1)
		}
	}

	log := logger.NewLogger(utils.GetConfig("LOG_LEVEL"), utils.GetConfig("LOG_FORMAT"), os.Stdout)

	var db *gorm.DB
	if utils.GetConfig("STORAGE_DRIVER") == "postgres" {
		var err error
		db, err = config.ConnectDB()
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
		if err := migration.Migrate(db); err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
		log.Infof("database migration complete")
	} else if *migrateOnly || *seedOnly {
		log.Errorf("--migrate and --seed need STORAGE_DRIVER=postgres")
		os.Exit(1)
	}

	if *migrateOnly {
		return
	}
	if *seedOnly {
		added, err := seed.Seed(context.Background(), organization.NewOrganizationRepository(db))
		if err != nil {
			log.Errorf("seed failed: %v", err)
			os.Exit(1)
		}
		log.Infof("seeded %d organizations", added)
		return
	}

	app, err := config.NewApp(db, log)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	addr := ":" + utils.GetConfig("APP_PORT")
	log.WithFields(map[string]interface{}{
		"addr":    addr,
		"storage": utils.GetConfig("STORAGE_DRIVER"),
	}).Infof("starting server")
	if err := app.Listen(addr); err != nil {
		log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
