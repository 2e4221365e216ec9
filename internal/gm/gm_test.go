package gm

import "testing"

func intp(v int) *int { return &v }

func TestCharacter(t *testing.T) {
	tests := []struct {
		name string
		p    CharacterParams
		want string
	}{
		{"no ids", CharacterParams{Level: 90}, ""},
		{"ids only", CharacterParams{Characters: []int{103, 107}}, "character 103 107"},
		{"all stats", CharacterParams{Characters: []int{103}, Level: 90, Ascension: 8, Skill: 10, Talent: 5, Favor: 20}, "character 103 lv90 a8 s10 t5 f20"},
		{"some stats", CharacterParams{Characters: []int{103}, Skill: 3}, "character 103 s3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Character(tt.p); got != tt.want {
				t.Errorf("Character() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisc(t *testing.T) {
	tests := []struct {
		name string
		p    DiscParams
		want string
	}{
		{"no ids", DiscParams{Level: 1}, ""},
		{"ids only", DiscParams{Discs: []int{211001}}, "disc 211001"},
		{"all stats", DiscParams{Discs: []int{211001, 211002}, Level: 60, Ascension: 6, Crescendo: 5}, "disc 211001 211002 lv60 a6 c5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Disc(tt.p); got != tt.want {
				t.Errorf("Disc() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGive(t *testing.T) {
	tests := []struct {
		item, quantity int
		want           string
	}{
		{0, 10, ""},
		{1001, 10, "give 1001 x10"},
		{1001, 0, "give 1001 x1"},
		{1001, -5, "give 1001 x1"},
		{1001, 999, "give 1001 x999"},
		{1001, 5000, "give 1001 x999"},
	}
	for _, tt := range tests {
		if got := Give(tt.item, tt.quantity); got != tt.want {
			t.Errorf("Give(%d, %d) = %q, want %q", tt.item, tt.quantity, got, tt.want)
		}
	}
}

func TestGiveAll(t *testing.T) {
	tests := []struct {
		name string
		p    GiveAllParams
		want string
	}{
		{"characters", GiveAllParams{Kind: AllCharacters}, "character all"},
		{"characters with stats", GiveAllParams{Kind: AllCharacters, Level: 90, Skill: 10, Talent: 5, Favor: 20, Ascension: 8, Crescendo: 3}, "character all lv90 s10 t5 f20"},
		{"discs with stats", GiveAllParams{Kind: AllDiscs, Level: 60, Ascension: 6, Crescendo: 5, Talent: 1}, "disc all lv60 a6 c5"},
		{"skins ignore stats", GiveAllParams{Kind: AllSkins, Level: 9}, "giveall skins"},
		{"materials", GiveAllParams{Kind: AllMaterials}, "give materials"},
		{"unknown kind", GiveAllParams{Kind: "pets"}, "give materials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GiveAll(tt.p); got != tt.want {
				t.Errorf("GiveAll() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	tests := map[int]string{
		0:  "",
		-1: "",
		1:  "level 1",
		45: "level 45",
		90: "level 90",
		91: "",
	}
	for in, want := range tests {
		if got := Level(in); got != want {
			t.Errorf("Level(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestBattlePass(t *testing.T) {
	tests := []struct {
		name string
		p    BattlePassParams
		want string
	}{
		{"empty", BattlePassParams{}, ""},
		{"mode only", BattlePassParams{Mode: PassPremium}, "battlepass premium"},
		{"level zero", BattlePassParams{Level: intp(0)}, "battlepass lv0"},
		{"mode and level", BattlePassParams{Mode: PassFree, Level: intp(50)}, "battlepass free lv50"},
		{"level too high", BattlePassParams{Mode: PassFree, Level: intp(51)}, "battlepass free"},
		{"negative level only", BattlePassParams{Level: intp(-1)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BattlePass(tt.p); got != tt.want {
				t.Errorf("BattlePass() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		p    BuildParams
		want string
	}{
		{"empty", BuildParams{}, "build"},
		{
			"dedup and drop non-positive",
			BuildParams{Characters: []int{103, 0, 107, 103, -2}, Discs: []int{211001, 211001}},
			"build 103 107 211001",
		},
		{
			"leveled pairs",
			BuildParams{
				Characters: []int{103},
				Potentials: []LeveledID{{ID: 510301, Level: 2}, {ID: 0, Level: 9}, {ID: 510301, Level: 3}},
				Melodies:   []LeveledID{{ID: 90011, Level: 1}, {ID: -1, Level: 1}},
			},
			"build 103 510301:2 510301:3 90011:1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.p); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMail(t *testing.T) {
	tests := []struct {
		name string
		p    MailParams
		want string
	}{
		{"missing subject", MailParams{Body: "b"}, ""},
		{"missing body", MailParams{Subject: "s"}, ""},
		{"no attachments", MailParams{Subject: "Hello", Body: "Welcome back"}, `mail "Hello" "Welcome back"`},
		{
			"clamped attachments",
			MailParams{Subject: "Gift", Body: "Enjoy", Attachments: []Attachment{{ItemID: 1001, Quantity: 10}, {ItemID: 2002, Quantity: 0}, {ItemID: 3003, Quantity: 1200}}},
			`mail "Gift" "Enjoy" 1001 x10 2002 x1 3003 x999`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mail(tt.p); got != tt.want {
				t.Errorf("Mail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		p    CleanParams
		want string
	}{
		{"bare", CleanParams{}, "clean"},
		{"all wins over ids", CleanParams{All: true, IDs: []int{1}}, "clean all"},
		{"ids", CleanParams{IDs: []int{1001, 1002}}, "clean 1001 1002"},
		{"resources", CleanParams{All: true, Type: CleanResources}, "clean all resources"},
		{"items", CleanParams{IDs: []int{5}, Type: CleanItems}, "clean 5 items"},
		{"unknown type means items", CleanParams{Type: "junk"}, "clean items"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.p); got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBan(t *testing.T) {
	tests := []struct {
		name string
		p    BanParams
		want string
	}{
		{"uid", BanParams{Scope: ScopeUID, UID: " 12345 "}, "ban uid 12345"},
		{"uid with until and reason", BanParams{Scope: ScopeUID, UID: "12345", Until: 1893456000, Reason: " cheating "}, "ban uid 12345 1893456000 cheating"},
		{"ip", BanParams{Scope: ScopeIP, UID: "12345", IP: "10.0.0.9"}, "ban ip 10.0.0.9"},
		{"all takes uid", BanParams{Scope: ScopeAll, UID: "12345", IP: "10.0.0.9"}, "ban all 12345"},
		{"unknown scope means uid", BanParams{Scope: "mac", UID: "7"}, "ban uid 7"},
		{"blank target", BanParams{Scope: ScopeUID, UID: "  ", Until: -1, Reason: " "}, "ban uid"},
		{"unban drops until and reason", BanParams{Unban: true, Scope: ScopeUID, UID: "12345", Until: 99, Reason: "x"}, "unban uid 12345"},
		{"unban ip", BanParams{Unban: true, Scope: ScopeIP, IP: "10.0.0.9"}, "unban ip 10.0.0.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ban(tt.p); got != tt.want {
				t.Errorf("Ban() = %q, want %q", got, tt.want)
			}
		})
	}
}
