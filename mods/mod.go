// Package mods ships the built-in dialect modules and keeps an
// extracted, pre-translated copy under SJS_PATH.
package mods

import (
	"embed"
	"os"
	"path"
	"strings"

	"github.com/elbow-jason/stratifiedjs/compiler"
	"github.com/elbow-jason/stratifiedjs/consts"
	. "github.com/elbow-jason/stratifiedjs/json"
	"github.com/elbow-jason/stratifiedjs/term"
	"github.com/elbow-jason/stratifiedjs/utils"
	"github.com/tidwall/gjson"
)

var (
	//go:embed index.json files
	ModFiles embed.FS

	indexFilePath    = path.Join(consts.SjsPath, "index.json")
	builtInIndexPath = "index.json"
	builtInFilesPath = "files"
)

func init() {
	if consts.SjsPath == "" {
		term.Warn("env SJS_PATH not set.\nCan't use built-in modules.")
	}
}

// Setup extracts the built-in modules into SJS_PATH, unless the copy
// on disk is from this compiler version and at least as new.
func Setup() {
	if consts.SjsPath == "" {
		return
	}
	if utils.Exist(indexFilePath) {
		indexBytes, err := os.ReadFile(indexFilePath)
		if err != nil {
			term.Fatal("[mods] can't read index.json: %v", err)
		}
		index := gjson.ParseBytes(indexBytes).Map()
		sameCompiler := index["compiler"].String() == consts.VERSION
		version := index["version"].Int()
		builtInIndexBytes, err := ModFiles.ReadFile(builtInIndexPath)
		if err != nil {
			term.Fatal("[mods] can't read built-in index.json: %v", err)
		}
		builtInIndex := gjson.ParseBytes(builtInIndexBytes).Map()
		builtInVersion := builtInIndex["version"].Int()
		if version >= builtInVersion && sameCompiler {
			return
		}
	}
	extract()
}

func extract() {
	sp := term.NewSpinner()
	sp.SetString("Extracting built-in modules...")

	indexBytes, err := ModFiles.ReadFile(builtInIndexPath)
	if err != nil {
		term.Fatal("[mods] can't read index.json: %v", err)
	}
	version := gjson.ParseBytes(indexBytes).Map()["version"].Int()
	index, err := Json.Marshal(map[string]any{
		"compiler": consts.VERSION,
		"version":  version,
	})
	if err != nil {
		term.Fatal("[mods] marshal index failed: %v", err)
	}
	if err := os.WriteFile(indexFilePath, index, 0644); err != nil {
		term.Fatal("[mods] can't write index.json: %v", err)
	}

	files, err := ModFiles.ReadDir(builtInFilesPath)
	if err != nil {
		term.Fatal("[mods] can't read files: %v", err)
	}
	for idx := range files {
		if files[idx].IsDir() {
			continue
		}
		name := files[idx].Name()
		data, err := ModFiles.ReadFile(path.Join(builtInFilesPath, name))
		if err != nil {
			term.Fatal("[mods] can't read file: %v", err)
		}
		if err := os.WriteFile(path.Join(consts.SjsPath, name), data, 0644); err != nil {
			term.Fatal("[mods] can't write file: %v", err)
		}
		if strings.HasSuffix(name, consts.SrcExt) {
			sp.SetString("Translating " + name + "...")
			translate(name, data)
		}
	}

	sp.Stop(true)
	term.Suc("[mods] extracted to %s", consts.SjsPath)
}

// translate lowers a built-in module so the runtime can load the js
// form without compiling at import time.
func translate(name string, data []byte) {
	out, err := compiler.Translate(string(data), compiler.Settings{
		Filename: name,
	})
	if err != nil {
		term.Fatal("[mods] %v", err)
	}
	dst := strings.TrimSuffix(name, consts.SrcExt) + consts.CompiledExt
	out = "// sjsc " + consts.VERSION + " " + utils.Md5(data) + "\n" + out
	if err := os.WriteFile(path.Join(consts.SjsPath, dst), []byte(out), 0644); err != nil {
		term.Fatal("[mods] can't write file: %v", err)
	}
}
