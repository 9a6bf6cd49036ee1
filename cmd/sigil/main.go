package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/sigil/internal"
	pkgconfig "github.com/starford/sigil/pkg/config"
)

// runTask loads the configuration named by --config and runs task.
func runTask(ctx context.Context, cmd *cli.Command, task internal.Task) error {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if err := internal.Run(ctx, task, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func filesCommand(name, usage string, task func([]string) internal.Task) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<files...>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("%s: at least one file is required", name)
			}
			return runTask(ctx, cmd, task(paths))
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "sigil",
		Usage: "Extract decisions, action items and risks from meeting notes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (defaults apply when it does not exist)",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("SIGIL_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			filesCommand("extract", "Extract signals from notes and print the documents as JSON", internal.Extract),
			filesCommand("classify", "Print the best matching meeting template for each note", internal.Classify),
			filesCommand("merge", "Fold notes and stored .json bags into one meeting, in order", internal.Merge),
			{
				Name:      "watch",
				Usage:     "Re-extract notes under a directory as they change, one JSON event per line",
				ArgsUsage: "<dir>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("watch: exactly one directory is required")
					}
					return runTask(ctx, cmd, internal.Watch(cmd.Args().First()))
				},
			},
			{
				Name:  "mcp",
				Usage: "Serve the extraction tools over MCP stdio",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runTask(ctx, cmd, internal.ServeMCP())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
