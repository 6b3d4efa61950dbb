// serviceform - interactive laundry service catalog form
//
// Usage:
//
//	serviceform add [--variant multi|single] [--output json|form|pretty] [--out file]
//	serviceform catalog [--format yaml|json]
//	serviceform schema
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-serviceform/internal/config"
	"github.com/goliatone/go-serviceform/internal/logging"
	"github.com/goliatone/go-serviceform/pkg/catalog"
	"github.com/goliatone/go-serviceform/pkg/form"
	"github.com/goliatone/go-serviceform/pkg/notify"
	"github.com/goliatone/go-serviceform/pkg/render"
	"github.com/goliatone/go-serviceform/pkg/renderers/tui"
)

var (
	version = "dev"
	commit  = "none"
)

// addOptions are applied after the defaults built by the add command.
var addOptions []tui.Option

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "serviceform",
		Usage:   "Compose laundry services and their priced sub-services",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{"SERVICEFORM_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (json, console)",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "Path to a catalog overlay (YAML or JSON)",
			},
		},
		Commands: []*cli.Command{
			addCommand(),
			catalogCommand(),
			schemaCommand(),
		},
	}
}

// runtime bundles what every command needs after configuration is resolved.
type runtime struct {
	cfg     config.Config
	log     *zap.Logger
	catalog catalog.Catalog
}

func loadRuntime(c *cli.Context, overrides map[string]string) (*runtime, error) {
	if overrides == nil {
		overrides = make(map[string]string)
	}
	overrides[config.KeyLogLevel] = c.String("log-level")
	overrides[config.KeyLogFormat] = c.String("log-format")
	overrides[config.KeyCatalogPath] = c.String("catalog")

	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	options, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	log.Debug("configuration loaded",
		zap.String("variant", cfg.Variant),
		zap.String("output", cfg.Output),
		zap.String("catalog", cfg.CatalogPath),
	)
	return &runtime{cfg: cfg, log: log, catalog: options}, nil
}

// =============================================================================
// ADD COMMAND
// =============================================================================

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a service and its sub-services interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "variant",
				Usage: "Form layout (multi, single)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format (json, form, pretty)",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Output file (stdout if empty)",
			},
		},
		Action: runAdd,
	}
}

func runAdd(c *cli.Context) error {
	rt, err := loadRuntime(c, map[string]string{
		config.KeyVariant: c.String("variant"),
		config.KeyOutput:  c.String("output"),
	})
	if err != nil {
		return err
	}
	defer rt.log.Sync() //nolint:errcheck

	options := []tui.Option{
		tui.WithOutputFormat(rt.cfg.OutputFormat()),
		tui.WithLogger(rt.log),
		tui.WithNotifier(notify.NewLogger(rt.log)),
		tui.WithSessionOptions(
			form.WithVariant(rt.cfg.FormVariant()),
			form.WithCatalog(rt.catalog),
			form.WithOnSave(func(_ context.Context, service string, saved form.SavedSubService) {
				rt.log.Info("sub-service saved",
					zap.String("service", service),
					zap.String("subService", saved.SubServiceName),
					zap.String("id", saved.ID),
				)
			}),
		),
	}
	renderer, err := tui.New(append(options, addOptions...)...)
	if err != nil {
		return err
	}

	out, err := renderer.Render(c.Context)
	switch {
	case errors.Is(err, tui.ErrDiscarded):
		fmt.Fprintln(c.App.Writer, "Service discarded.")
		return nil
	case errors.Is(err, tui.ErrAborted):
		return cli.Exit("aborted", 130)
	case err != nil:
		return err
	}

	if path := c.String("out"); path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "Service written to %s\n", path)
		return nil
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}

// =============================================================================
// CATALOG COMMAND
// =============================================================================

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Print the active service, sub-service and clothing type options",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "yaml",
				Usage:   "Output format (yaml, json)",
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := loadRuntime(c, nil)
			if err != nil {
				return err
			}

			var out []byte
			switch c.String("format") {
			case "json":
				out, err = json.MarshalIndent(rt.catalog, "", "  ")
			case "yaml":
				out, err = yaml.Marshal(rt.catalog)
			default:
				return fmt.Errorf("unknown format %q", c.String("format"))
			}
			if err != nil {
				return fmt.Errorf("encode catalog: %w", err)
			}
			_, err = c.App.Writer.Write(out)
			return err
		},
	}
}

// =============================================================================
// SCHEMA COMMAND
// =============================================================================

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the OpenAPI schema of the JSON payload written by add",
		Action: func(c *cli.Context) error {
			rt, err := loadRuntime(c, nil)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(render.PayloadSchema(rt.catalog), "", "  ")
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			fmt.Fprintln(c.App.Writer, string(out))
			return nil
		},
	}
}
