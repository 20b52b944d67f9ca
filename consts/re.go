package consts

import "regexp"

const (
	// StampReStr matches the first line of emitted output:
	// `// sjsc <version> <md5>`.
	StampReStr = `^// sjsc (\S+) ([0-9a-f]{32})`

	// DirectiveReStr matches REPL directives such as `:keeplines on`.
	DirectiveReStr = `^:([a-z]+)\s*(.*)$`
)

var (
	StampRe     = _re(StampReStr)
	DirectiveRe = _re(DirectiveReStr)
)

func _re(s string) *regexp.Regexp {
	return regexp.MustCompile(s)
}
