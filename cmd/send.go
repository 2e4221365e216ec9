package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/AzureXuanVerse/Nebula-Tools/cmd/common"
	nebcommon "github.com/AzureXuanVerse/Nebula-Tools/common"
	"github.com/AzureXuanVerse/Nebula-Tools/internal/api"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/rawhttp"
)

var (
	errNoServer  = errors.New("no server URL: use --server, a profile, " + nebcommon.ServerURLEnv + " or the config file")
	errNoCommand = errors.New("missing remote command")
)

var (
	sendServer  string
	sendToken   string
	sendProfile string
	sendUID     string
	sendRawURL  bool
	sendJSON    bool
	sendTimeout time.Duration

	sendFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "server, s",
			Usage:       "admin server URL, e.g. http://10.0.0.5:8080",
			Destination: &sendServer,
		},
		cli.StringFlag{
			Name:        "token, t",
			Usage:       "admin token",
			Destination: &sendToken,
		},
		cli.StringFlag{
			Name:        "profile, p",
			Usage:       "use a saved connection profile",
			Destination: &sendProfile,
		},
		cli.StringFlag{
			Name:        "uid, u",
			Usage:       "target player UID, appended as @UID (not for ban/unban)",
			Destination: &sendUID,
		},
		cli.BoolFlag{
			Name:        "raw-url",
			Usage:       "send to the server URL as given, without appending /api/command",
			Destination: &sendRawURL,
		},
		cli.BoolFlag{
			Name:        "json, j",
			Usage:       "print the raw response body instead of the parsed message",
			Destination: &sendJSON,
		},
		cli.DurationFlag{
			Name:        "timeout",
			Usage:       "give up after this long (default: from config, 30s)",
			Destination: &sendTimeout,
		},
	}
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// signalContext is cancelled by Ctrl-C or SIGTERM, so a hung exchange can be
// abandoned and the daemon can stop cleanly.
var signalContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), shutdownSignals...)
}

func send(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	raw := strings.TrimSpace(strings.Join(ctx.Args(), " "))
	if raw == "" {
		return common.PrintErrWithCmdHelp(ctx, errNoCommand)
	}
	return dispatch(raw)
}

// dispatch resolves the connection from the send flags, targets the
// command and prints the reply.
func dispatch(raw string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if sendTimeout != 0 {
		cfg.Timeout = sendTimeout
	}
	l := newLogger(cfg)

	conn, err := resolveConnection(cfg, l, sendProfile, connection{
		ServerURL: sendServer,
		Token:     sendToken,
		TargetUID: sendUID,
	})
	if err != nil {
		return err
	}
	serverURL := conn.ServerURL
	if !sendRawURL {
		serverURL = api.CommandURL(serverURL)
	}
	remoteCmd := api.WithTarget(raw, conn.TargetUID)

	a, err := newApi(cfg, l, true)
	if err != nil {
		return err
	}
	defer a.Close()

	sctx, cancel := signalContext()
	defer cancel()

	stop := common.StartSpinner("sending " + common.Truncate(remoteCmd, 32))
	body, err := a.RemoteProxy(sctx, &nebcommon.RemoteParams{
		ServerURL: serverURL,
		Token:     conn.Token,
		Command:   remoteCmd,
	})
	stop()
	if rawhttp.IsConnectionError(err) {
		return fmt.Errorf("send: cannot reach %s: %w", serverURL, err)
	}
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	if sendJSON {
		fmt.Println(body)
		return nil
	}
	res := api.ParseResult(body)
	if !res.OK() {
		return fmt.Errorf("command failed (Code %d): %s", res.Code, res.Msg)
	}
	if strings.TrimSpace(res.Msg) == "" {
		fmt.Println("OK")
		return nil
	}
	fmt.Println(res.Msg)
	return nil
}
