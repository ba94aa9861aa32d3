package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"scenyx-cli/internal/api"
	"scenyx-cli/internal/auth"
	"scenyx-cli/internal/config"
	"scenyx-cli/internal/logger"
	"scenyx-cli/internal/tui"
)

var log = logger.Named("cli")

func main() {
	logger.Configure()
	if logFile, _, err := logger.SetupFile(logger.DefaultLogPath); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}

	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "login":
			loginMain(args[1:])
			return
		case "logout":
			logoutMain(args[1:])
			return
		case "ping":
			pingMain(args[1:])
			return
		}
	}
	galleryMain(args)
}

func galleryMain(args []string) {
	fs := flag.NewFlagSet("scenyx-cli", flag.ExitOnError)
	var cfgPath string
	var pageSize int
	var artist string
	var overrides stringSlice
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.scenyx/config.toml)")
	fs.IntVar(&pageSize, "page-size", 0, "Cards per page: 5, 10, 20, 35 or 50 (default from config)")
	fs.StringVar(&artist, "artist", "", "Artist name attached to scenes you create")
	fs.Var(&overrides, "c", "Config override key=value (repeatable: url, token, page_size)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse args: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg = config.ApplyKVOverrides(cfg, overrides)
	if pageSize > 0 {
		cfg.PageSize = pageSize
	}

	client, token := newClient(cfg)
	if err := tui.Run(tui.Options{
		Service:    client,
		PageSize:   cfg.PageSize,
		ArtistName: artist,
		UserID:     auth.Subject(token),
	}); err != nil {
		log.Fatalf("ui error: %v", err)
	}
}

// newClient wires config, stored credentials and the refresh flow into an API
// client. The config token wins when set; otherwise the login credentials are
// used, refreshed up front when already expired.
func newClient(cfg config.Config) (*api.Client, string) {
	if strings.TrimSpace(cfg.URL) == "" {
		log.Fatalf("missing url: set SCENYX_BASE_URL or configure url in ~/.scenyx/config.toml")
	}

	creds, err := auth.Load()
	if err != nil {
		log.Warnf("failed to load stored credentials: %v", err)
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		token = creds.AccessToken
	}
	if token == "" {
		log.Fatalf("missing token: run `scenyx-cli login` or set SCENYX_AUTH_TOKEN")
	}

	refresh := func(ctx context.Context) (string, error) {
		stored, err := auth.Load()
		if err != nil {
			return "", err
		}
		access, refreshToken, err := api.RefreshAccessToken(ctx, nil, cfg.URL, stored.RefreshToken)
		if err != nil {
			return "", err
		}
		if err := auth.Save(auth.Credentials{AccessToken: access, RefreshToken: refreshToken}); err != nil {
			log.Warnf("failed to persist refreshed credentials: %v", err)
		}
		return access, nil
	}

	if auth.Expired(token, time.Now()) && creds.RefreshToken != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		fresh, err := refresh(ctx)
		cancel()
		if err != nil {
			log.Warnf("token refresh failed, continuing with stored token: %v", err)
		} else {
			token = fresh
		}
	}

	client, err := api.New(api.Options{
		BaseURL:      cfg.URL,
		Token:        token,
		RefreshToken: refresh,
		Retries:      2,
		HTTPClient:   &http.Client{},
	})
	if err != nil {
		log.Fatalf("api client: %v", err)
	}
	return client, token
}

// stringSlice collects repeatable flag values.
type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}
