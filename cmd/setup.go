package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/AzureXuanVerse/Nebula-Tools/internal/api"
	"github.com/AzureXuanVerse/Nebula-Tools/internal/config"
	"github.com/AzureXuanVerse/Nebula-Tools/internal/history"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/opener"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/profile"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/profile/keyring"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/rawhttp"
)

const envFile = ".env"

// Global flag destinations.
var (
	configPath string
	debugMode  bool
)

// Seams replaced by tests.
var (
	newOpener     = opener.New
	openHistory   = history.Open
	appFs         = afero.NewOsFs()
	systemKeyring = func() keyring.KeyStore { return keyring.NewSystemKeyring() }
)

// loadConfig resolves .env, the config file and the environment.
func loadConfig() (config.Config, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if debugMode {
		cfg.Debug = true
	}
	return cfg, nil
}

func newLogger(cfg config.Config) logger.Logger {
	return logger.New(os.Stderr, cfg.Debug)
}

// newApi builds the facade. History is opened when withHistory is set; a
// history that cannot be opened is reported and left out.
func newApi(cfg config.Config, l logger.Logger, withHistory bool) (*api.Api, error) {
	client, err := rawhttp.NewClient(&rawhttp.ClientOpts{
		Timeout:  cfg.Timeout,
		ProxyURL: cfg.Proxy,
		Logger:   l,
	})
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}
	var h *history.Store
	if withHistory {
		h, err = openHistory(cfg.HistoryPath())
		if err != nil {
			l.Warning("history disabled: %v", err)
			h = nil
		}
	}
	return api.NewApi(l, client, newOpener(l), h)
}

func openProfiles(cfg config.Config, l logger.Logger) (*profile.Store, error) {
	key, err := keyring.Load(systemKeyring(), keyring.NewFileKeyStore(appFs, cfg.Dir), l)
	if err != nil {
		return nil, fmt.Errorf("profile key: %w", err)
	}
	return profile.Open(appFs, cfg.Dir, key)
}

// savedProfiles opens the store only when a profile file exists, so that
// reading never creates a key. It returns nil when nothing is saved.
func savedProfiles(cfg config.Config, l logger.Logger) (*profile.Store, error) {
	ok, err := profile.Exists(appFs, cfg.Dir)
	if err != nil || !ok {
		return nil, err
	}
	return openProfiles(cfg, l)
}

// getProfile is Store.Get over savedProfiles.
func getProfile(cfg config.Config, l logger.Logger, name string) (*profile.Profile, error) {
	store, err := savedProfiles(cfg, l)
	if err != nil {
		return nil, err
	}
	if store == nil {
		if strings.TrimSpace(name) == "" {
			name = profile.DefaultName
		}
		return nil, fmt.Errorf("%w: %s", profile.ErrNotFound, strings.TrimSpace(name))
	}
	return store.Get(name)
}

// connection is where a command goes.
type connection struct {
	ServerURL string
	Token     string
	TargetUID string
}

// resolveConnection layers config < profile < flags. The default profile
// is consulted implicitly only when no server URL is configured at all.
func resolveConnection(cfg config.Config, l logger.Logger, profileName string, flags connection) (connection, error) {
	conn := connection{ServerURL: cfg.ServerURL, Token: cfg.Token}

	name := strings.TrimSpace(profileName)
	implicit := name == "" && conn.ServerURL == "" && flags.ServerURL == ""
	if name != "" || implicit {
		p, err := getProfile(cfg, l, name)
		switch {
		case err == nil:
			conn = connection{ServerURL: p.ServerURL, Token: p.Token, TargetUID: p.TargetUID}
		case implicit && errors.Is(err, profile.ErrNotFound):
			// no default profile saved; fall through to flags
		default:
			return conn, err
		}
	}

	if flags.ServerURL != "" {
		conn.ServerURL = flags.ServerURL
	}
	if flags.Token != "" {
		conn.Token = flags.Token
	}
	if flags.TargetUID != "" {
		conn.TargetUID = flags.TargetUID
	}
	if strings.TrimSpace(conn.ServerURL) == "" {
		return conn, errNoServer
	}
	return conn, nil
}
