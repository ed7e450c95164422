package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/salesguard/internal/api"
	"github.com/salesguard/internal/config"
)

// APICommand returns the CLI command for starting the API server
func APICommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Start the SalesGuard API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server (overrides configuration)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if c.IsSet("port") {
				cfg.Server.Port = c.Int("port")
			}
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			server, err := api.NewServer(cfg)
			if err != nil {
				return err
			}

			fmt.Printf("Starting SalesGuard API server on port %d...\n", cfg.Server.Port)
			return server.Start()
		},
	}
}
