// Package cmd is the nebula command-line interface.
package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/AzureXuanVerse/Nebula-Tools/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

var currentBuild BuildArgs

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "config, c",
		Usage:       "config file (default: ~/.config/nebula/config.toml)",
		Destination: &configPath,
	},
	cli.BoolFlag{
		Name:        "debug",
		Usage:       "log debug output to stderr",
		Destination: &debugMode,
	},
}

func Execute(args []string, bArgs BuildArgs) error {
	currentBuild = bArgs
	app := cli.App{
		Name:                  "nebula",
		HelpName:              "nebula",
		Usage:                 "Remote command client for game-server admin endpoints.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "nebula [global options] <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Flags:                 globalFlags,
		Commands: []cli.Command{
			{
				Name:                   "send",
				Usage:                  "send a remote command",
				UsageText:              "send [flags] <command...>",
				Description:            SendDescription,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				OnUsageError:           common.UsageErrorCallback,
				Action:                 send,
				Flags:                  sendFlags,
				UseShortOptionHandling: true,
			},
			{
				Name:        "gm",
				Usage:       "generate and send a game-master command",
				Description: GMDescription,
				Subcommands: gmCommands,
			},
			{
				Name:               "open",
				Usage:              "open a URL with the system handler",
				UsageText:          "open <url>",
				Description:        OpenDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             open,
			},
			{
				Name:               "serve",
				Usage:              "run the local JSON-RPC daemon",
				Description:        ServeDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             serve,
				Flags:              serveFlags,
			},
			{
				Name:        "profile",
				Usage:       "manage saved connection profiles",
				Description: ProfileDescription,
				Subcommands: []cli.Command{
					{
						Name:         "save",
						Usage:        "create or replace a profile",
						OnUsageError: common.UsageErrorCallback,
						Action:       profileSave,
						Flags:        profSaveFlags,
					},
					{
						Name:      "show",
						Usage:     "show a profile",
						UsageText: "profile show [--reveal] [name]",
						Action:    profileShow,
						Flags:     profShowFlags,
					},
					{
						Name:    "list",
						Aliases: []string{"ls"},
						Usage:   "list saved profiles",
						Action:  profileList,
					},
					{
						Name:      "remove",
						Aliases:   []string{"rm"},
						Usage:     "delete a profile",
						UsageText: "profile remove [--force] <name>",
						Action:    profileRemove,
						Flags:     profRemoveFlags,
					},
				},
			},
			{
				Name:               "history",
				Usage:              "list recently sent commands",
				Description:        HistoryDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             historyList,
				Flags:              histFlags,
				Subcommands: []cli.Command{
					{
						Name:   "flush",
						Usage:  "delete the command history",
						Action: historyFlush,
						Flags:  histFlushFlags,
					},
				},
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of nebula",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:      common.Help,
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
