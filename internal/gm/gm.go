// Package gm builds the admin command strings understood by the game
// server's command endpoint.
//
// Every builder returns the empty string when its parameters do not make a
// complete command (no ids, a level out of range, ...). Callers treat that
// as "nothing to send".
package gm

import (
	"strconv"
	"strings"
)

const (
	MinQuantity = 1
	MaxQuantity = 999

	MinPlayerLevel = 1
	MaxPlayerLevel = 90

	MaxBattlePassLevel = 50
)

// CharacterParams grants or upgrades characters. Zero upgrade fields are
// left out.
type CharacterParams struct {
	Characters []int
	Level      int
	Ascension  int
	Skill      int
	Talent     int
	Favor      int
}

// Character renders "character <ids...> [lvN] [aN] [sN] [tN] [fN]".
func Character(p CharacterParams) string {
	if len(p.Characters) == 0 {
		return ""
	}
	parts := []string{"character", joinInts(p.Characters)}
	parts = appendStat(parts, "lv", p.Level)
	parts = appendStat(parts, "a", p.Ascension)
	parts = appendStat(parts, "s", p.Skill)
	parts = appendStat(parts, "t", p.Talent)
	parts = appendStat(parts, "f", p.Favor)
	return strings.Join(parts, " ")
}

type DiscParams struct {
	Discs     []int
	Level     int
	Ascension int
	Crescendo int
}

// Disc renders "disc <ids...> [lvN] [aN] [cN]".
func Disc(p DiscParams) string {
	if len(p.Discs) == 0 {
		return ""
	}
	parts := []string{"disc", joinInts(p.Discs)}
	parts = appendStat(parts, "lv", p.Level)
	parts = appendStat(parts, "a", p.Ascension)
	parts = appendStat(parts, "c", p.Crescendo)
	return strings.Join(parts, " ")
}

// Give renders "give <item> x<quantity>" with the quantity clamped to
// [MinQuantity, MaxQuantity]. A zero item id yields "".
func Give(itemID, quantity int) string {
	if itemID == 0 {
		return ""
	}
	return "give " + itemQuantity(itemID, quantity)
}

// GiveAll kinds.
const (
	AllCharacters = "characters"
	AllDiscs      = "discs"
	AllSkins      = "skins"
	AllMaterials  = "materials"
)

type GiveAllParams struct {
	Kind      string
	Level     int
	Talent    int
	Skill     int
	Crescendo int
	Ascension int
	Favor     int
}

// GiveAll grants a whole category. Characters and discs take the same
// upgrade stats as Character and Disc; skins take none; any other kind
// means materials.
func GiveAll(p GiveAllParams) string {
	switch p.Kind {
	case AllCharacters:
		parts := []string{"character", "all"}
		parts = appendStat(parts, "lv", p.Level)
		parts = appendStat(parts, "s", p.Skill)
		parts = appendStat(parts, "t", p.Talent)
		parts = appendStat(parts, "f", p.Favor)
		return strings.Join(parts, " ")
	case AllDiscs:
		parts := []string{"disc", "all"}
		parts = appendStat(parts, "lv", p.Level)
		parts = appendStat(parts, "a", p.Ascension)
		parts = appendStat(parts, "c", p.Crescendo)
		return strings.Join(parts, " ")
	case AllSkins:
		return "giveall skins"
	default:
		return "give materials"
	}
}

// Level sets the player level; outside [MinPlayerLevel, MaxPlayerLevel]
// it yields "".
func Level(level int) string {
	if level < MinPlayerLevel || level > MaxPlayerLevel {
		return ""
	}
	return "level " + strconv.Itoa(level)
}

// Battle pass modes.
const (
	PassFree    = "free"
	PassPremium = "premium"
)

type BattlePassParams struct {
	Mode string
	// Level is ignored when nil or outside [0, MaxBattlePassLevel].
	Level *int
}

// BattlePass renders "battlepass [mode] [lvN]", or "" when neither part
// applies.
func BattlePass(p BattlePassParams) string {
	parts := []string{"battlepass"}
	if p.Mode != "" {
		parts = append(parts, p.Mode)
	}
	if p.Level != nil && *p.Level >= 0 && *p.Level <= MaxBattlePassLevel {
		parts = append(parts, "lv"+strconv.Itoa(*p.Level))
	}
	if len(parts) == 1 {
		return ""
	}
	return strings.Join(parts, " ")
}

// LeveledID is an id:level pair.
type LeveledID struct {
	ID    int
	Level int
}

type BuildParams struct {
	Characters []int
	Discs      []int
	Potentials []LeveledID
	Melodies   []LeveledID
}

// Build renders a star tower build. Character and disc ids drop
// non-positive values and duplicates, keeping first occurrence order.
// Potentials and melodies with a non-positive id are dropped.
func Build(p BuildParams) string {
	parts := []string{"build"}
	parts = append(parts, uniquePositive(p.Characters)...)
	parts = append(parts, uniquePositive(p.Discs)...)
	parts = append(parts, leveled(p.Potentials)...)
	parts = append(parts, leveled(p.Melodies)...)
	return strings.Join(parts, " ")
}

// Attachment is an item sent with a mail.
type Attachment struct {
	ItemID   int
	Quantity int
}

type MailParams struct {
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mail renders `mail "<subject>" "<body>" [<item> x<q>...]`. Subject and
// body are required and inserted verbatim between the quotes.
func Mail(p MailParams) string {
	if p.Subject == "" || p.Body == "" {
		return ""
	}
	parts := []string{"mail", `"` + p.Subject + `"`, `"` + p.Body + `"`}
	for _, a := range p.Attachments {
		parts = append(parts, itemQuantity(a.ItemID, a.Quantity))
	}
	return strings.Join(parts, " ")
}

// Clean types.
const (
	CleanItems     = "items"
	CleanResources = "resources"
)

type CleanParams struct {
	All bool
	IDs []int
	// Type narrows the clean; any value other than CleanResources means
	// items.
	Type string
}

// Clean renders "clean [all | ids...] [items|resources]". All wins over IDs.
func Clean(p CleanParams) string {
	parts := []string{"clean"}
	if p.All {
		parts = append(parts, "all")
	} else if len(p.IDs) > 0 {
		parts = append(parts, joinInts(p.IDs))
	}
	if p.Type != "" {
		if p.Type == CleanResources {
			parts = append(parts, CleanResources)
		} else {
			parts = append(parts, CleanItems)
		}
	}
	return strings.Join(parts, " ")
}

// Ban scopes.
const (
	ScopeUID = "uid"
	ScopeIP  = "ip"
	ScopeAll = "all"
)

type BanParams struct {
	// Unban lifts a ban instead of issuing one.
	Unban bool
	// Scope is one of the Scope constants; anything else means ScopeUID.
	Scope string
	UID   string
	IP    string
	// Until is a unix timestamp; zero or negative means permanent.
	Until  int64
	Reason string
}

// Ban renders "ban <scope> [uid|ip] [until] [reason]" or
// "unban <scope> [uid|ip]". The uid goes with the uid and all scopes, the
// ip with the ip scope.
func Ban(p BanParams) string {
	scope := p.Scope
	switch scope {
	case ScopeUID, ScopeIP, ScopeAll:
	default:
		scope = ScopeUID
	}
	verb := "ban"
	if p.Unban {
		verb = "unban"
	}
	parts := []string{verb, scope}
	who := strings.TrimSpace(p.UID)
	if scope == ScopeIP {
		who = strings.TrimSpace(p.IP)
	}
	if who != "" {
		parts = append(parts, who)
	}
	if p.Unban {
		return strings.Join(parts, " ")
	}
	if p.Until > 0 {
		parts = append(parts, strconv.FormatInt(p.Until, 10))
	}
	if r := strings.TrimSpace(p.Reason); r != "" {
		parts = append(parts, r)
	}
	return strings.Join(parts, " ")
}

// clampQuantity bounds q to [MinQuantity, MaxQuantity].
func clampQuantity(q int) int {
	return max(MinQuantity, min(MaxQuantity, q))
}

func itemQuantity(id, q int) string {
	return strconv.Itoa(id) + " x" + strconv.Itoa(clampQuantity(q))
}

func appendStat(parts []string, prefix string, v int) []string {
	if v == 0 {
		return parts
	}
	return append(parts, prefix+strconv.Itoa(v))
}

func joinInts(ids []int) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(id)
	}
	return strings.Join(s, " ")
}

func uniquePositive(ids []int) []string {
	seen := make(map[int]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, strconv.Itoa(id))
	}
	return out
}

func leveled(pairs []LeveledID) []string {
	var out []string
	for _, p := range pairs {
		if p.ID <= 0 {
			continue
		}
		out = append(out, strconv.Itoa(p.ID)+":"+strconv.Itoa(p.Level))
	}
	return out
}
