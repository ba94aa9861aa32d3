package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"scenyx-cli/internal/api"
	"scenyx-cli/internal/config"
)

func pingMain(args []string) {
	if err := runPing(args, os.Stdout); err != nil {
		log.Fatalf("ping failed: %v", err)
	}
}

func runPing(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfgPath string
	var timeoutSeconds int
	var withAuth bool
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.scenyx/config.toml)")
	fs.IntVar(&timeoutSeconds, "timeout", 10, "Timeout in seconds")
	fs.BoolVar(&withAuth, "auth", false, "Also verify the token by fetching the scene history")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	start := time.Now()
	if err := api.CheckBaseURLReachable(ctx, cfg.URL); err != nil {
		return err
	}
	fmt.Fprintf(out, "reachable: %s (%s)\n", cfg.URL, time.Since(start).Round(time.Millisecond))

	if !withAuth {
		return nil
	}
	client, _ := newClient(cfg)
	scenes, err := client.History(ctx)
	if err != nil {
		return fmt.Errorf("authenticated check: %w", err)
	}
	fmt.Fprintf(out, "authenticated: %d scenes in history\n", len(scenes))
	return nil
}
