package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kcz17/clockface/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		at         string
		once       bool
	)
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "clockface",
		Short:         "Show the time as an analogue, binary or seven-segment clock",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ReadConfig(v, configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s\nCheck your configuration and try again.\n", err)
				return err
			}

			opts := &runOptions{Once: once}
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					err = fmt.Errorf("expected --at to be an RFC 3339 time; got %q", at)
					fmt.Fprintln(os.Stderr, err)
					return err
				}
				opts.At = &t
			}

			app, err := newApplication(cfg, opts)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return app.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to a config.yaml; defaults to ./config.yaml or /app/config.yaml if present")
	flags.String("interface", "analogue", "clock face to show: analogue, binary or digital")
	flags.String("led-colour", "red", "LED colour of the binary and digital faces, as a colour name or #rgb/#rrggbb")
	flags.String("output", "", "write every frame to this image file")
	flags.String("format", "png", "image format of --output: png or svg")
	flags.String("http", "", "serve the clock over HTTP on this address, e.g. :8080")
	flags.Float64("width", 0, "surface width; 0 uses the clock face's design size")
	flags.Float64("height", 0, "surface height; 0 uses the clock face's design size")
	flags.Bool("fit", false, "scale the binary and digital faces to the surface")
	flags.String("log", "noop", "logging driver: noop, stdout or influxdb")
	flags.StringVar(&at, "at", "", "show a fixed RFC 3339 time instead of the current time")
	flags.BoolVar(&once, "once", false, "render a single frame to --output and exit")

	for key, flag := range map[string]string{
		"clock.interface": "interface",
		"clock.ledColour": "led-colour",
		"output.path":     "output",
		"output.format":   "format",
		"http.addr":       "http",
		"surface.width":   "width",
		"surface.height":  "height",
		"surface.fit":     "fit",
		"logging.driver":  "log",
	} {
		// Lookup never fails for flags defined above.
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}
