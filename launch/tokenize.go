package launch

import (
	"strings"
	"unicode"
)

// Tokenize splits a parameter string into arguments.
// Single and double quotes group text and are removed. Inside a quoted section the other
// quote character is literal. Backslashes are always literal, Windows paths survive as they are.
// A missing closing quote extends the quoted section to the end of the input.
func Tokenize(params string) []string {
	var (
		tokens  = []string{}
		current strings.Builder
		quote   rune
		started bool
	)

	for _, r := range params {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			started = true
		case unicode.IsSpace(r):
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if started {
		tokens = append(tokens, current.String())
	}
	return tokens
}
