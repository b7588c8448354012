package folders

import "strings"

// Token is a symbolic base folder that may appear as %token% in a search term.
type Token string

const (
	LocalAppData     Token = "local-app-data"
	RoamingAppData   Token = "roaming-app-data"
	ProgramFiles     Token = "program-files"
	ProgramFilesX86  Token = "program-files-x86"
	WindowsDirectory Token = "windows-directory"
	HomePath         Token = "home-path"
	TempDirectory    Token = "temp-directory"
	PersonalDropbox  Token = "personal-dropbox"
	BusinessDropbox  Token = "business-dropbox"
)

// short forms that were used by earlier releases
var aliases = map[string]Token{
	"localappdata":    LocalAppData,
	"appdata":         RoamingAppData,
	"programfiles":    ProgramFiles,
	"programfilesx86": ProgramFilesX86,
	"windir":          WindowsDirectory,
	"homepath":        HomePath,
	"temp":            TempDirectory,
	"personaldropbox": PersonalDropbox,
	"businessdropbox": BusinessDropbox,
}

// environment variables tried in order for each token
var envNames = map[Token][]string{
	LocalAppData:     {"LOCALAPPDATA"},
	RoamingAppData:   {"APPDATA"},
	ProgramFiles:     {"ProgramFiles"},
	ProgramFilesX86:  {"ProgramFiles(x86)"},
	WindowsDirectory: {"WINDIR"},
	HomePath:         {"USERPROFILE", "HOME"},
	TempDirectory:    {"TEMP", "TMPDIR"},
}

func Tokens() []Token {
	return []Token{
		LocalAppData,
		RoamingAppData,
		ProgramFiles,
		ProgramFilesX86,
		WindowsDirectory,
		HomePath,
		TempDirectory,
		PersonalDropbox,
		BusinessDropbox,
	}
}

// ParseToken matches case-insensitively against the token names and their short forms.
func ParseToken(s string) (Token, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range Tokens() {
		if string(t) == s {
			return t, true
		}
	}
	t, ok := aliases[s]
	return t, ok
}

func (t Token) isDropbox() bool {
	return t == PersonalDropbox || t == BusinessDropbox
}
