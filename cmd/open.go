package cmd

import (
	"github.com/urfave/cli"

	"github.com/AzureXuanVerse/Nebula-Tools/cmd/common"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/opener"
)

func open(ctx *cli.Context) error {
	url := ctx.Args().First()
	if url == "" {
		return common.PrintErrWithCmdHelp(ctx, opener.ErrEmptyURL)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return newOpener(newLogger(cfg))(url)
}
