package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/AzureXuanVerse/Nebula-Tools/cmd/common"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/profile"
)

var (
	profName   string
	profServer string
	profToken  string
	profUID    string
	profReveal bool
	profForce  bool

	profSaveFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "name, n",
			Usage:       "profile name (default: default)",
			Destination: &profName,
		},
		cli.StringFlag{
			Name:        "server, s",
			Usage:       "admin server URL (default: from config)",
			Destination: &profServer,
		},
		cli.StringFlag{
			Name:        "token, t",
			Usage:       "admin token (default: from config)",
			Destination: &profToken,
		},
		cli.StringFlag{
			Name:        "uid, u",
			Usage:       "default target player UID",
			Destination: &profUID,
		},
	}
	profShowFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "reveal",
			Usage:       "print the token in clear text",
			Destination: &profReveal,
		},
	}
	profRemoveFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "force, f",
			Usage:       "do not ask for confirmation",
			Destination: &profForce,
		},
	}
)

func profileSave(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l := newLogger(cfg)
	store, err := openProfiles(cfg, l)
	if err != nil {
		return err
	}
	p := profile.Profile{
		Name:      profName,
		ServerURL: firstNonEmpty(profServer, cfg.ServerURL),
		Token:     firstNonEmpty(profToken, cfg.Token),
		TargetUID: profUID,
	}
	if err := store.Save(p); err != nil {
		return err
	}
	name := strings.TrimSpace(profName)
	if name == "" {
		name = profile.DefaultName
	}
	fmt.Printf("Saved profile %q\n", name)
	return nil
}

func profileShow(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := getProfile(cfg, newLogger(cfg), ctx.Args().First())
	if err != nil {
		return err
	}
	token := maskToken(p.Token)
	if profReveal {
		token = p.Token
	}
	fmt.Printf("Name:   %s\nServer: %s\nToken:  %s\n", p.Name, p.ServerURL, token)
	if p.TargetUID != "" {
		fmt.Printf("UID:    %s\n", p.TargetUID)
	}
	return nil
}

func profileList(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := savedProfiles(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	var names []string
	if store != nil {
		names = store.Names()
	}
	if len(names) == 0 {
		fmt.Println("nebula: no saved profiles")
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func profileRemove(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return common.PrintErrWithCmdHelp(ctx, fmt.Errorf("missing profile name"))
	}
	if !confirm(command("profile remove"), profForce) {
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := savedProfiles(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("%w: %s", profile.ErrNotFound, name)
	}
	if err := store.Remove(name); err != nil {
		return err
	}
	fmt.Printf("Removed profile %q\n", name)
	return nil
}

// maskToken keeps the first two characters.
func maskToken(t string) string {
	r := []rune(t)
	if len(r) <= 2 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:2]) + strings.Repeat("*", len(r)-2)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
