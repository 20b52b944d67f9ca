// Package repl compiles blocks typed on stdin and prints the output
// of the active kernel, keeping history across runs.
package repl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"atomicgo.dev/keyboard/keys"
	"github.com/elbow-jason/stratifiedjs/compiler"
	"github.com/elbow-jason/stratifiedjs/consts"
	. "github.com/elbow-jason/stratifiedjs/json"
	"github.com/elbow-jason/stratifiedjs/term"
	"github.com/elbow-jason/stratifiedjs/utils"
)

var (
	linesHistory = []string{}
	helpMsgs     = []string{
		"`Esc`: Exit REPL",
		"`Tab`: Add 2 spaces",
		"`Ctrl + a`: Clear REPL history",
		"",
		"`:kernel <name>`: Switch the output kernel",
		"`:keeplines on|off`: Keep source line numbers",
		"`:clear`: Drop the pending block",
		"`:help`: Show this help",
	}
	historyPath = filepath.Join(os.Getenv("HOME"), ".config", "sjs_history.json")
	blockLines  = []string{}

	replSettings = compiler.Settings{
		Filename: "stdin",
		Kernel:   "runtime",
	}
)

func Repl(wg *sync.WaitGroup) {
	wg.Wait()

	fmt.Printf(
		"sjsc (v%s) - %s for help\n",
		term.CYAN+consts.VERSION+term.NOCOLOR,
		term.GREEN+"`:help`"+term.NOCOLOR,
	)

	loadHistory()

	for {
		line := term.ReadLine(term.ReadLineConfig{
			History: linesHistory,
			KeyFunc: handleKeyboard,
		})
		if line == "" {
			continue
		}

		if len(blockLines) == 0 && directive(line) {
			updateHistory(line)
			continue
		}

		blockLines = append(blockLines, line)
		blockStr := strings.Join(blockLines, "\n")
		if _blockNotEndCount(blockStr) != 0 {
			continue
		}

		compileBlock(blockStr)

		blockLines = []string{}
	}
}

// directive handles `:name arg` lines between blocks.
func directive(line string) bool {
	m := consts.DirectiveRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	switch m[1] {
	case "help":
		fmt.Println(strings.Join(helpMsgs, "\n"))
	case "clear":
		blockLines = []string{}
	case "kernel":
		if m[2] == "" {
			term.Info("[REPL] kernel: %s", replSettings.Kernel)
			break
		}
		replSettings.Kernel = m[2]
	case "keeplines":
		replSettings.Keeplines = m[2] == "on"
	default:
		term.Warn("[REPL] unknown directive: %s", m[1])
	}
	return true
}

func compileBlock(src string) {
	out, err := compiler.Compile(src, replSettings)
	if err != nil {
		term.Warn("[REPL] %v", err)
		return
	}
	fmt.Println(out)
	updateHistory(src)
}

func handleKeyboard(key keys.Key, rs *[]rune, rIdx *int, lIdx *int) (bool, bool, error) {
	switch key.Code {
	case keys.Esc:
		os.Exit(0)
	case keys.CtrlA:
		linesHistory = []string{}
		writeHistory()
	}
	return false, false, nil
}

func _updateHistory(str string) {
	idx := -1
	for i := range linesHistory {
		if linesHistory[i] == str {
			idx = i
			break
		}
	}
	if idx != -1 {
		linesHistory = append(linesHistory[:idx], linesHistory[idx+1:]...)
	}
	linesHistory = append(linesHistory, str)
}

func updateHistory(str string) {
	str = strings.Trim(str, "\n")
	strs := strings.Split(str, "\n")
	for idx := range strs {
		_updateHistory(strs[idx])
	}
	writeHistory()
}

// _blockNotEndCount counts unbalanced braces outside string literals.
// Zero means the pending lines form a complete block.
func _blockNotEndCount(block string) int {
	start := 0
	end := 0
	inStr := false
	var lastPairChar rune
	for idx, c := range block {
		switch c {
		case '{':
			if inStr {
				continue
			}
			start++
		case '}':
			if inStr {
				continue
			}
			end++
		case '\'', '"', '`':
			if idx == 0 || block[idx-1] != '\\' {
				if lastPairChar == c {
					inStr = !inStr
				} else if !inStr {
					inStr = true
					lastPairChar = c
				}
			}
		}
	}
	return start - end
}

func writeHistory() {
	data, err := Json.MarshalIndent(linesHistory, "", "  ")
	if err != nil {
		term.Warn("[REPL] marshal history failed: %v", err)
	}
	if err := os.WriteFile(historyPath, data, 0644); err != nil {
		term.Warn("[REPL] write history failed: %v", err)
	}
}

func loadHistory() {
	if utils.Exist(historyPath) {
		data, err := os.ReadFile(historyPath)
		if err != nil {
			term.Warn("[REPL] read history failed: %v", err)
		}
		err = Json.Unmarshal(data, &linesHistory)
		if err != nil {
			term.Warn("[REPL] unmarshal history failed: %v", err)
		}
	} else {
		writeHistory()
	}
}
