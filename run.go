package main

import (
	"flag"
	"os"
	"strings"

	glc "git.lolli.tech/lollipopkit/go_lru_cacher"
	"github.com/elbow-jason/stratifiedjs/compiler"
	"github.com/elbow-jason/stratifiedjs/consts"
	. "github.com/elbow-jason/stratifiedjs/json"
	"github.com/elbow-jason/stratifiedjs/logger"
	"github.com/elbow-jason/stratifiedjs/term"
	"github.com/elbow-jason/stratifiedjs/utils"
	"github.com/tidwall/gjson"
)

var (
	// Keyed by source md5 plus the settings that shape the output.
	compileCache = glc.NewCacher(32)
)

func compilePath(src string) {
	if !strings.HasSuffix(src, consts.SrcExt) {
		term.Warn("[compile] skip %s: not a %s file", src, consts.SrcExt)
		return
	}
	if !utils.Exist(src) {
		term.Fatal("[compile] file not found: %s", src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		term.Fatal("[compile] can't read file: %v", err)
	}

	dst := *outPath
	if dst == "" {
		dst = strings.TrimSuffix(src, consts.SrcExt) + consts.CompiledExt
	}

	hash := utils.Md5(data)
	if dst != "-" && !*noCache && !*keeplines && outputFresh(dst, hash) {
		logger.I("[compile] %s is fresh", dst)
		return
	}

	out, cerr := cachedCompile(string(data), hash, settings(src))
	if cerr != nil {
		fatalCompileErr(src, cerr)
	}

	// The stamp line would shift every line number down by one.
	if !*keeplines {
		out = stamp(hash) + out
	}

	if dst == "-" {
		os.Stdout.WriteString(out)
		return
	}
	if utils.Exist(dst) && !*force && !outputOurs(dst) {
		if !term.Confirm("[compile] overwrite "+dst+"?", false) {
			term.Info("[compile] skip %s", dst)
			return
		}
	}
	if err := os.WriteFile(dst, []byte(out), 0644); err != nil {
		term.Fatal("[compile] write file failed: %v", err)
	}
	term.Suc("[compile] %s -> %s", src, dst)
}

// fatalCompileErr reports a failed compile and exits non-zero. With
// -json the report is one machine readable object per error.
func fatalCompileErr(src string, err error) {
	ce, ok := err.(*compiler.CompileError)
	if *jsonErrors && ok {
		data, jerr := Json.Marshal(map[string]any{
			"file": src,
			"line": ce.Line,
			"kind": compiler.KindName(ce.Kind),
			"msg":  ce.RawMsg,
		})
		if jerr == nil {
			os.Stdout.WriteString(string(data) + "\n")
			os.Exit(1)
		}
	}
	term.Fatal("[compile] %v", err)
}

func cachedCompile(src, hash string, st compiler.Settings) (string, error) {
	key := hash + "|" + st.Kernel
	if st.Keeplines {
		key += "|kl"
	}
	if st.GlobalReturn {
		key += "|gr"
	}
	if cached, ok := compileCache.Get(key); ok {
		if out, ok := cached.(string); ok {
			return out, nil
		}
	}
	out, err := compiler.Compile(src, st)
	if err != nil {
		return "", err
	}
	compileCache.Set(key, out)
	return out, nil
}

func settings(path string) compiler.Settings {
	return compiler.Settings{
		Filename:     path,
		Keeplines:    *keeplines,
		GlobalReturn: *globalReturn,
		Kernel:       *kernelName,
	}
}

func stamp(hash string) string {
	return "// sjsc " + consts.VERSION + " " + hash + "\n"
}

func outputStamp(dst string) []string {
	data, err := os.ReadFile(dst)
	if err != nil {
		return nil
	}
	line := string(data)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	return consts.StampRe.FindStringSubmatch(line)
}

// outputFresh reports whether dst was emitted by this version from
// the same source bytes.
func outputFresh(dst, hash string) bool {
	m := outputStamp(dst)
	return m != nil && m[1] == consts.VERSION && m[2] == hash
}

// outputOurs reports whether dst carries a stamp at all, ours or from
// another version. Unstamped files need a confirm before overwriting.
func outputOurs(dst string) bool {
	return outputStamp(dst) != nil
}

// loadConfig applies sjs.json defaults for flags not given on the
// command line.
func loadConfig() {
	if !utils.Exist(consts.ConfigFile) {
		return
	}
	data, err := os.ReadFile(consts.ConfigFile)
	if err != nil {
		term.Warn("[config] can't read %s: %v", consts.ConfigFile, err)
		return
	}

	given := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		given[f.Name] = true
	})

	conf := gjson.ParseBytes(data).Map()
	if v, ok := conf["kernel"]; ok && !given["kernel"] {
		*kernelName = v.String()
	}
	if v, ok := conf["keeplines"]; ok && !given["keeplines"] {
		*keeplines = v.Bool()
	}
	if v, ok := conf["globalreturn"]; ok && !given["globalreturn"] {
		*globalReturn = v.Bool()
	}
}
