package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"

	"github.com/AzureXuanVerse/Nebula-Tools/cmd/common"
)

var (
	histLimit int
	histForce bool

	histFlags = []cli.Flag{
		cli.IntFlag{
			Name:        "limit, n",
			Usage:       "show at most this many entries (0: all)",
			Value:       20,
			Destination: &histLimit,
		},
	}
	histFlushFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "force, f",
			Usage:       "do not ask for confirmation",
			Destination: &histForce,
		},
	}
)

func historyList(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := openHistory(cfg.HistoryPath())
	if err != nil {
		return err
	}
	defer h.Close()

	entries, err := h.List(context.Background(), histLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("nebula: no commands sent yet")
		return nil
	}
	var b strings.Builder
	b.WriteString("Recent commands:\n")
	for i, e := range entries {
		status := "ok"
		if !e.OK {
			status = "failed"
		}
		fmt.Fprintf(&b, "\n%3d. %-32s %-6s %s", i+1, common.Truncate(e.Command, 32), status, humanize.Time(e.CreatedAt))
		fmt.Fprintf(&b, "\n     %s", e.Server)
		if e.OK {
			fmt.Fprintf(&b, " (%s)", humanize.Bytes(uint64(e.BodySize)))
		} else if e.Error != "" {
			fmt.Fprintf(&b, "\n     %s", e.Error)
		}
	}
	fmt.Println(b.String())
	return nil
}

func historyFlush(ctx *cli.Context) error {
	if !confirm(command("history flush"), histForce) {
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := openHistory(cfg.HistoryPath())
	if err != nil {
		return err
	}
	defer h.Close()

	n, err := h.Flush(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Flushed %s from history\n", humanize.Comma(n)+" "+plural(n, "entry", "entries"))
	return nil
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
