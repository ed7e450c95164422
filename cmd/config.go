package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/salesguard/internal/config"
)

// ConfigCommand returns the config command
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Initialize a new configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "salesguard.toml",
					},
				},
				Action: runConfigInit,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration file",
				Action: runConfigValidate,
			},
			{
				Name:   "show",
				Usage:  "Show the effective configuration (secrets masked)",
				Action: runConfigShow,
			},
		},
	}
}

func runConfigInit(c *cli.Context) error {
	outputPath := c.String("output")

	if err := config.InitConfig(outputPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Created configuration file at %s\n", outputPath)
	return nil
}

func runConfigValidate(c *cli.Context) error {
	configPath := c.String("config")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Println("Configuration is valid")
	return nil
}

func runConfigShow(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("server.port                       = %d\n", cfg.Server.Port)
	fmt.Printf("provider.base_url                 = %s\n", cfg.Provider.BaseURL)
	fmt.Printf("provider.combat_key               = %s\n", maskSecret(cfg.Provider.CombatKey))
	fmt.Printf("provider.review_key               = %s\n", maskSecret(cfg.Provider.ReviewKey))
	fmt.Printf("provider.combat_timeout_seconds   = %d\n", cfg.Provider.CombatTimeoutSeconds)
	fmt.Printf("provider.review_timeout_seconds   = %d\n", cfg.Provider.ReviewTimeoutSeconds)
	fmt.Printf("provider.requests_per_second      = %g\n", cfg.Provider.RequestsPerSecond)
	fmt.Printf("extract.repair                    = %t\n", cfg.Extract.Repair)
	fmt.Printf("stages.path                       = %s\n", cfg.Stages.Path)
	return nil
}

// maskSecret shows just enough of a key to recognize it
func maskSecret(value string) string {
	if value == "" {
		return "(not set)"
	}
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "..." + value[len(value)-4:]
}
