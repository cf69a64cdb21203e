package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/cmq/internal/config"
	"github.com/standardbeagle/cmq/internal/debug"
	"github.com/standardbeagle/cmq/internal/mcp"
	"github.com/standardbeagle/cmq/internal/version"
)

const defaultConfigPath = ".cmq.kdl"

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")

	// If root is specified and config path is default, look for config in root directory
	if rootFlag := c.String("root"); rootFlag != "" && configPath == defaultConfigPath {
		configPath = filepath.Join(rootFlag, defaultConfigPath)
	}

	// Fall back to the TOML spelling when the default KDL file is absent
	if filepath.Base(configPath) == defaultConfigPath {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			tomlPath := filepath.Join(filepath.Dir(configPath), ".cmq.toml")
			if _, err := os.Stat(tomlPath); err == nil {
				configPath = tomlPath
			}
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if rootFlag := c.String("root"); rootFlag != "" {
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", rootFlag, err)
		}
		cfg.Project.Root = absRoot
	}
	if buildFlag := c.String("build-dir"); buildFlag != "" {
		cfg.Build.Dir = buildFlag
	}

	if err := config.NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:                   "cmq",
		Usage:                  "CMake project intelligence for AI assistants",
		Version:                version.FullInfo(),
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   defaultConfigPath,
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory (overrides config)",
			},
			&cli.StringFlag{
				Name:    "build-dir",
				Aliases: []string{"b"},
				Usage:   "CMake build directory, absolute or relative to the project root (overrides config)",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Write debug logs to a file under the system temp directory",
			},
		},
		Before: func(c *cli.Context) error {
			if !c.Bool("debug") {
				return nil
			}
			debug.EnableDebug = "true"
			logPath, err := debug.InitDebugLogFile()
			if err != nil {
				return fmt.Errorf("failed to initialize debug log: %w", err)
			}
			// The mcp command owns stdio; announce the log path elsewhere only.
			if c.Args().First() != "mcp" {
				fmt.Fprintf(os.Stderr, "Debug log: %s\n", logPath)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Run the MCP server over stdio",
				Action: mcpCommand,
			},
			{
				Name:      "cache",
				Usage:     "Look up cache variables: exact name, wildcard pattern, or all",
				ArgsUsage: "[name-or-pattern]",
				Action:    cacheCommand,
			},
			{
				Name:   "targets",
				Usage:  "List build targets from the file-api reply",
				Action: targetsCommand,
			},
			{
				Name:      "owner",
				Usage:     "Determine which target(s) own a source file",
				ArgsUsage: "<path>",
				Action:    ownerCommand,
			},
			{
				Name:   "status",
				Usage:  "Show project snapshot status",
				Action: statusCommand,
			},
			{
				Name:   "query",
				Usage:  "Write the file-api query so the next configure produces a reply",
				Action: queryCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// mcpCommand runs the stdio MCP server until the client disconnects or a
// signal arrives. All diagnostics are suppressed from stdio in this mode.
func mcpCommand(c *cli.Context) error {
	debug.SetMCPMode(true)

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcp.NewServer(cfg).Run(ctx)
}
