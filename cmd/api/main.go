package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yigit/campusbuzz/internal/bootstrap"
	"github.com/yigit/campusbuzz/internal/pkg/logger"
	"github.com/yigit/campusbuzz/internal/server"
)

// @title Campus Buzz API
// @version 1.0
// @description API for the Campus Buzz university social platform

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token from POST /session

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "path to the YAML config file",
	Value:   filepath.Join("configs", "config.yaml"),
	EnvVars: []string{"CONFIG_PATH"},
}

func main() {
	app := &cli.App{
		Name:  "campusbuzz",
		Usage: "in-memory campus social platform",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP and WebSocket server",
				Flags:  []cli.Flag{configFlag},
				Action: serve,
			},
			{
				Name:   "seed",
				Usage:  "validate the seed fixture and print what it contains",
				Flags:  []cli.Flag{configFlag},
				Action: inspectSeed,
			},
		},
		// no subcommand means serve
		Flags:  []cli.Flag{configFlag},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	srv, err := server.NewServer(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Run(); err != nil {
		return err
	}

	logger.Info().Msg("Application finished gracefully.")
	return nil
}

func inspectSeed(c *cli.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return err
	}

	st, err := bootstrap.SetupStore(cfg, lgr)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"currentUserId": st.CurrentUserID(),
		"counts":        st.Counts(),
		"loadedAt":      time.Now().Format(time.RFC3339),
	})
}
