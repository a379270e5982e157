package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/router"
	"fintrack/service"

	"github.com/joho/godotenv"
)

// @title Finance Tracker API
// @version 1.0
// @description Personal finance tracker: income, expense and cash-account records, business configuration, Google Sheets backup
// @host localhost:8080
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "path to an external config file (optional)")
	flag.StringVar(&configFile, "c", "", "path to an external config file (shorthand)")
	flag.StringVar(&port, "port", "", "listen port, e.g. 8080 or :8080")
	flag.StringVar(&port, "p", "", "listen port (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&showVersion, "v", false, "print version (shorthand)")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("fintrack v1.0.0")
		return
	}

	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("port overridden on the command line: %s", port)
	}

	config.PrintConfig()

	// An unconfigured database is not fatal: data routes answer 503
	// until it is set up.
	if cfg.Database.Host == "" {
		log.Println("database not configured, data routes will answer 503")
	} else if err := database.Init(cfg); err != nil {
		log.Fatalf("init database: %v", err)
	}

	middleware.InitAuth(cfg)

	ctx := context.Background()
	var sheets service.SheetWriter
	if gs, err := service.NewGoogleSheets(ctx, &cfg.Sheets); err != nil {
		log.Printf("sheets backup not configured: %v", err)
	} else {
		sheets = gs
	}
	notifier := service.NewNotifier(&cfg.Email)

	r := router.SetupRouter(cfg, sheets, notifier)

	log.Printf("==========================================")
	log.Printf("  finance tracker listening on %s", cfg.Server.Port)
	log.Printf("  swagger: http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
