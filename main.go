package main

import (
	"flag"
	"fmt"
	"sync"

	"github.com/elbow-jason/stratifiedjs/consts"
	"github.com/elbow-jason/stratifiedjs/mods"
	"github.com/elbow-jason/stratifiedjs/repl"
	"github.com/elbow-jason/stratifiedjs/utils"
)

var (
	kernelName   = flag.String("kernel", "runtime", "output kernel: runtime / stringify / minify / sexp")
	keeplines    = flag.Bool("keeplines", false, "keep source line numbers in the output")
	globalReturn = flag.Bool("globalreturn", false, "allow return at top level")
	outPath      = flag.String("o", "", "output path, - for stdout")
	force        = flag.Bool("f", false, "overwrite outputs without asking")
	noCache      = flag.Bool("nocache", false, "recompile even if the output is fresh")
	jsonErrors   = flag.Bool("json", false, "report compile errors as JSON on stdout")
	showVersion  = flag.Bool("v", false, "print version and exit")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println("sjsc v" + consts.VERSION)
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go utils.CheckUpgrade(&wg)

	mods.Setup()
	loadConfig()

	args := flag.Args()
	switch {
	case len(args) == 0:
		repl.Repl(&wg)
	case args[0] == "explore":
		explore(args[1:])
	default:
		for idx := range args {
			compilePath(args[idx])
		}
	}
	wg.Wait()
}

func usage() {
	fmt.Println("sjsc v" + consts.VERSION)
	fmt.Println()
	fmt.Println("usage:")
	fmt.Println("  sjsc                    start the REPL")
	fmt.Println("  sjsc [flags] file...    compile each file")
	fmt.Println("  sjsc explore [dir]      browse a source tree")
	fmt.Println()
	fmt.Println("flags:")
	flag.PrintDefaults()
}
