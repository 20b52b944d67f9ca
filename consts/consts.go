package consts

import "os"

const (
	VERSION = "0.1.0"

	// SrcExt is the extension of dialect source files,
	// CompiledExt the extension of emitted output.
	SrcExt      = ".sjs"
	CompiledExt = ".js"

	// ConfigFile holds per-project compile defaults.
	ConfigFile = "sjs.json"

	ReleaseApiUrl = "https://api.github.com/repos/elbow-jason/stratifiedjs/releases/latest"
)

var (
	// SjsPath is the directory holding the extracted built-in modules.
	SjsPath = os.Getenv("SJS_PATH")

	// Debug turns on logger output.
	Debug = os.Getenv("SJS_DEBUG") != ""
)
