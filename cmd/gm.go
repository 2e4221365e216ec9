package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/AzureXuanVerse/Nebula-Tools/internal/gm"
)

var errIncomplete = errors.New("incomplete command")

var gmPrint bool

var gmPrintFlag = cli.BoolFlag{
	Name:        "print",
	Usage:       "print the generated command instead of sending it",
	Destination: &gmPrint,
}

// gmFlags returns own followed by --print and the send flags.
func gmFlags(own ...cli.Flag) []cli.Flag {
	flags := make([]cli.Flag, 0, len(own)+1+len(sendFlags))
	flags = append(flags, own...)
	flags = append(flags, gmPrintFlag)
	return append(flags, sendFlags...)
}

func intFlag(name, usage string) cli.IntFlag {
	return cli.IntFlag{Name: name, Usage: usage}
}

var gmCommands = []cli.Command{
	{
		Name:      "character",
		Usage:     "grant or upgrade characters",
		UsageText: "gm character [flags] <id...>",
		Action:    gmAction(gmCharacter),
		Flags: gmFlags(
			intFlag("level", "character level"),
			intFlag("ascension", "ascension stage"),
			intFlag("skill", "skill level"),
			intFlag("talent", "talent level"),
			intFlag("favor", "favor level"),
		),
	},
	{
		Name:      "disc",
		Usage:     "grant or upgrade discs",
		UsageText: "gm disc [flags] <id...>",
		Action:    gmAction(gmDisc),
		Flags: gmFlags(
			intFlag("level", "disc level"),
			intFlag("ascension", "ascension stage"),
			intFlag("crescendo", "crescendo level"),
		),
	},
	{
		Name:      "give",
		Usage:     "give an item (quantity 1-999, default 1)",
		UsageText: "gm give [flags] <item> [quantity]",
		Action:    gmAction(gmGive),
		Flags:     gmFlags(),
	},
	{
		Name:      "giveall",
		Usage:     "give every character, disc, skin or material",
		UsageText: "gm giveall [flags] <characters|discs|skins|materials>",
		Action:    gmAction(gmGiveAll),
		Flags: gmFlags(
			intFlag("level", "level for characters or discs"),
			intFlag("ascension", "disc ascension stage"),
			intFlag("crescendo", "disc crescendo level"),
			intFlag("skill", "character skill level"),
			intFlag("talent", "character talent level"),
			intFlag("favor", "character favor level"),
		),
	},
	{
		Name:      "level",
		Usage:     "set the player level (1-90)",
		UsageText: "gm level [flags] <level>",
		Action:    gmAction(gmLevel),
		Flags:     gmFlags(),
	},
	{
		Name:      "battlepass",
		Usage:     "set the battle pass mode and level (0-50)",
		UsageText: "gm battlepass [flags] [free|premium]",
		Action:    gmAction(gmBattlePass),
		Flags:     gmFlags(intFlag("level", "battle pass level")),
	},
	{
		Name:      "build",
		Usage:     "create a star tower build",
		UsageText: "gm build [flags]",
		Action:    gmAction(gmBuild),
		Flags: gmFlags(
			cli.IntSliceFlag{Name: "char", Usage: "character id (repeatable)"},
			cli.IntSliceFlag{Name: "disc", Usage: "disc id (repeatable)"},
			cli.StringSliceFlag{Name: "potential", Usage: "potential as id:level (repeatable)"},
			cli.StringSliceFlag{Name: "melody", Usage: "melody as id:level (repeatable)"},
		),
	},
	{
		Name:      "mail",
		Usage:     "send a mail with optional attachments",
		UsageText: "gm mail --subject <text> --body <text> [--item id:quantity...]",
		Action:    gmAction(gmMail),
		Flags: gmFlags(
			cli.StringFlag{Name: "subject", Usage: "mail subject"},
			cli.StringFlag{Name: "body", Usage: "mail body"},
			cli.StringSliceFlag{Name: "item", Usage: "attachment as id:quantity (repeatable)"},
		),
	},
	{
		Name:      "clean",
		Usage:     "remove items or resources",
		UsageText: "gm clean [flags] [id...]",
		Action:    gmAction(gmClean),
		Flags: gmFlags(
			cli.BoolFlag{Name: "all", Usage: "clean everything"},
			cli.StringFlag{Name: "type", Usage: "items or resources"},
		),
	},
	{
		Name:      "ban",
		Usage:     "ban a uid, an ip or both",
		UsageText: "gm ban [flags] <uid|ip|all> [target]",
		Action:    gmAction(gmBan(false)),
		Flags: gmFlags(
			cli.Int64Flag{Name: "until", Usage: "unix timestamp the ban ends at (default: permanent)"},
			cli.StringFlag{Name: "reason", Usage: "reason shown to the player"},
		),
	},
	{
		Name:      "unban",
		Usage:     "lift a ban",
		UsageText: "gm unban [flags] <uid|ip|all> [target]",
		Action:    gmAction(gmBan(true)),
		Flags:     gmFlags(),
	},
}

// gmAction sends, or with --print prints, the command build produces.
func gmAction(build func(ctx *cli.Context) (string, error)) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		raw, err := build(ctx)
		if err != nil {
			return fmt.Errorf("gm %s: %w", ctx.Command.Name, err)
		}
		if raw == "" {
			return fmt.Errorf("gm %s: %w", ctx.Command.Name, errIncomplete)
		}
		if gmPrint {
			fmt.Println(raw)
			return nil
		}
		return dispatch(raw)
	}
}

func gmCharacter(ctx *cli.Context) (string, error) {
	ids, err := intArgs(ctx.Args())
	if err != nil {
		return "", err
	}
	return gm.Character(gm.CharacterParams{
		Characters: ids,
		Level:      ctx.Int("level"),
		Ascension:  ctx.Int("ascension"),
		Skill:      ctx.Int("skill"),
		Talent:     ctx.Int("talent"),
		Favor:      ctx.Int("favor"),
	}), nil
}

func gmDisc(ctx *cli.Context) (string, error) {
	ids, err := intArgs(ctx.Args())
	if err != nil {
		return "", err
	}
	return gm.Disc(gm.DiscParams{
		Discs:     ids,
		Level:     ctx.Int("level"),
		Ascension: ctx.Int("ascension"),
		Crescendo: ctx.Int("crescendo"),
	}), nil
}

func gmGive(ctx *cli.Context) (string, error) {
	args := ctx.Args()
	if len(args) == 0 || len(args) > 2 {
		return "", errors.New("want <item> [quantity]")
	}
	nums, err := intArgs(args)
	if err != nil {
		return "", err
	}
	quantity := 1
	if len(nums) == 2 {
		quantity = nums[1]
	}
	return gm.Give(nums[0], quantity), nil
}

func gmGiveAll(ctx *cli.Context) (string, error) {
	kind := ctx.Args().First()
	switch kind {
	case gm.AllCharacters, gm.AllDiscs, gm.AllSkins, gm.AllMaterials:
	default:
		return "", fmt.Errorf("unknown kind %q", kind)
	}
	return gm.GiveAll(gm.GiveAllParams{
		Kind:      kind,
		Level:     ctx.Int("level"),
		Talent:    ctx.Int("talent"),
		Skill:     ctx.Int("skill"),
		Crescendo: ctx.Int("crescendo"),
		Ascension: ctx.Int("ascension"),
		Favor:     ctx.Int("favor"),
	}), nil
}

func gmLevel(ctx *cli.Context) (string, error) {
	n, err := strconv.Atoi(ctx.Args().First())
	if err != nil {
		return "", fmt.Errorf("invalid level %q", ctx.Args().First())
	}
	return gm.Level(n), nil
}

func gmBattlePass(ctx *cli.Context) (string, error) {
	p := gm.BattlePassParams{Mode: ctx.Args().First()}
	switch p.Mode {
	case "", gm.PassFree, gm.PassPremium:
	default:
		return "", fmt.Errorf("unknown mode %q", p.Mode)
	}
	if ctx.IsSet("level") {
		lv := ctx.Int("level")
		p.Level = &lv
	}
	return gm.BattlePass(p), nil
}

func gmBuild(ctx *cli.Context) (string, error) {
	potentials, err := leveledIDs(ctx.StringSlice("potential"))
	if err != nil {
		return "", err
	}
	melodies, err := leveledIDs(ctx.StringSlice("melody"))
	if err != nil {
		return "", err
	}
	return gm.Build(gm.BuildParams{
		Characters: ctx.IntSlice("char"),
		Discs:      ctx.IntSlice("disc"),
		Potentials: potentials,
		Melodies:   melodies,
	}), nil
}

func gmMail(ctx *cli.Context) (string, error) {
	pairs, err := leveledIDs(ctx.StringSlice("item"))
	if err != nil {
		return "", err
	}
	items := make([]gm.Attachment, len(pairs))
	for i, p := range pairs {
		items[i] = gm.Attachment{ItemID: p.ID, Quantity: p.Level}
	}
	return gm.Mail(gm.MailParams{
		Subject:     ctx.String("subject"),
		Body:        ctx.String("body"),
		Attachments: items,
	}), nil
}

func gmClean(ctx *cli.Context) (string, error) {
	ids, err := intArgs(ctx.Args())
	if err != nil {
		return "", err
	}
	kind := ctx.String("type")
	switch kind {
	case "", gm.CleanItems, gm.CleanResources:
	default:
		return "", fmt.Errorf("unknown type %q", kind)
	}
	return gm.Clean(gm.CleanParams{All: ctx.Bool("all"), IDs: ids, Type: kind}), nil
}

func gmBan(unban bool) func(*cli.Context) (string, error) {
	return func(ctx *cli.Context) (string, error) {
		scope := ctx.Args().First()
		switch scope {
		case gm.ScopeUID, gm.ScopeIP, gm.ScopeAll:
		default:
			return "", fmt.Errorf("scope must be uid, ip or all, got %q", scope)
		}
		p := gm.BanParams{Unban: unban, Scope: scope}
		if scope == gm.ScopeIP {
			p.IP = ctx.Args().Get(1)
		} else {
			p.UID = ctx.Args().Get(1)
		}
		if !unban {
			p.Until = ctx.Int64("until")
			p.Reason = ctx.String("reason")
		}
		return gm.Ban(p), nil
	}
}

func intArgs(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", a)
		}
		out = append(out, n)
	}
	return out, nil
}

// leveledIDs parses "id:n" pairs.
func leveledIDs(pairs []string) ([]gm.LeveledID, error) {
	out := make([]gm.LeveledID, 0, len(pairs))
	for _, p := range pairs {
		id, n, ok := strings.Cut(p, ":")
		if !ok {
			return nil, fmt.Errorf("want id:n, got %q", p)
		}
		a, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", id)
		}
		b, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", n)
		}
		out = append(out, gm.LeveledID{ID: a, Level: b})
	}
	return out, nil
}
