package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/AmmarNaser/ui-engineering-notes/internal"
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
	pkgconfig "github.com/AmmarNaser/ui-engineering-notes/pkg/config"
)

var version = "dev"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	read, err := pkgconfig.LoadOptional(configPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if !read {
		slog.Debug("config file not found, using defaults", slog.String("path", configPath))
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("watch") {
		cfg.Watch.Enabled = cmd.Bool("watch")
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg), internal.WithVersion(version)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func categoryArg(cmd *cli.Command) (models.Category, error) {
	if cmd.Args().Len() < 1 {
		return "", fmt.Errorf("category is required (log or snippet)")
	}
	return models.ParseCategory(cmd.Args().Get(0))
}

func list(ctx context.Context, cmd *cli.Command) error {
	category, err := categoryArg(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.List(ctx, os.Stdout, category, internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
}

func show(ctx context.Context, cmd *cli.Command) error {
	category, err := categoryArg(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("slug is required")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := internal.ShowOptions{
		Width: int(cmd.Int("width")),
		Style: cmd.String("style"),
		Raw:   cmd.Bool("raw"),
	}
	return internal.Show(ctx, os.Stdout, category, cmd.Args().Get(1), opts,
		internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.ServeMCP(ctx,
		internal.WithConfig(cfg),
		internal.WithVersion(version),
		internal.WithLogOutput(os.Stderr))
}

func main() {
	cmd := &cli.Command{
		Name:    "notes",
		Usage:   "Serve a personal engineering log and snippet collection written in Markdown",
		Version: version,
		Action:  serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Reload pages in the browser when content files change",
				Sources: cli.EnvVars("APP_WATCH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server",
				Action: serve,
			},
			{
				Name:      "list",
				Usage:     "Print the index of a category, newest first",
				ArgsUsage: "<log|snippet>",
				Action:    list,
			},
			{
				Name:      "show",
				Usage:     "Print one document rendered for the terminal",
				ArgsUsage: "<log|snippet> <slug>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "width", Value: 80, Usage: "Wrap width"},
					&cli.StringFlag{Name: "style", Usage: "Glamour style (dark, light, notty); empty detects the terminal"},
					&cli.BoolFlag{Name: "raw", Usage: "Print the Markdown source"},
				},
				Action: show,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio",
				Action: mcp,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
