package cmd

import (
	"github.com/urfave/cli"

	"github.com/AzureXuanVerse/Nebula-Tools/internal/config"
	"github.com/AzureXuanVerse/Nebula-Tools/internal/server"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
)

var (
	serveListen    string
	serveSecret    string
	serveNoHistory bool
	serveLogFile   string

	serveFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "listen, l",
			Usage:       "address to listen on (default: from config, 127.0.0.1:3850)",
			Destination: &serveListen,
		},
		cli.StringFlag{
			Name:        "secret",
			Usage:       "bearer token required by /jsonrpc (default: NEBULA_RPC_SECRET)",
			Destination: &serveSecret,
		},
		cli.StringFlag{
			Name:        "log-file",
			Usage:       "also append the daemon log to this file",
			Destination: &serveLogFile,
		},
		cli.BoolFlag{
			Name:        "no-history",
			Usage:       "do not record proxied commands",
			Destination: &serveNoHistory,
		},
	}
)

func serve(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.RPCListen = serveListen
	}
	if serveSecret != "" {
		cfg.RPCSecret = serveSecret
	}
	l, err := serveLogger(cfg)
	if err != nil {
		return err
	}
	defer l.Close()

	a, err := newApi(cfg, l, !serveNoHistory)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := server.NewServer(l, a, &server.RPCConfig{
		Secret:    cfg.RPCSecret,
		Version:   currentBuild.Version,
		Commit:    currentBuild.Commit,
		BuildType: currentBuild.BuildType,
	}, cfg.RPCListen)

	sctx, stop := signalContext()
	defer stop()
	return srv.Start(sctx)
}

// serveLogger writes to stderr and, with --log-file, to that file as well.
func serveLogger(cfg config.Config) (logger.Logger, error) {
	l := newLogger(cfg)
	if serveLogFile == "" {
		return l, nil
	}
	fl, err := logger.OpenFile(serveLogFile, cfg.Debug)
	if err != nil {
		return nil, err
	}
	return logger.NewMultiLogger(l, fl), nil
}
