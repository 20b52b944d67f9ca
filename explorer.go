package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/elbow-jason/stratifiedjs/consts"
	"github.com/elbow-jason/stratifiedjs/term"
	"github.com/elbow-jason/stratifiedjs/utils"
)

var exploreKernels = []string{"runtime", "stringify", "minify", "sexp"}

func nextKernel(name string) string {
	for idx := range exploreKernels {
		if exploreKernels[idx] == name {
			return exploreKernels[(idx+1)%len(exploreKernels)]
		}
	}
	return exploreKernels[0]
}

// explore opens a two pane browser: dialect sources on the left, the
// output of the active kernel for the selected one on the right.
// m cycles the kernel, l toggles keeplines, r re-renders, q quits.
func explore(args []string) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	rootNode := tview.NewTreeNode(root).
		SetReference(root).
		SetColor(tcell.ColorYellow)
	addChildren(rootNode, root)

	tree := tview.NewTreeView().
		SetRoot(rootNode).
		SetCurrentNode(rootNode)
	tree.SetBorder(true).SetTitle(" sources ")

	preview := tview.NewTextView().
		SetDynamicColors(false).
		SetWrap(false)
	preview.SetBorder(true)

	status := tview.NewTextView().SetDynamicColors(false)

	current := ""
	refresh := func() {
		preview.SetTitle(" " + *kernelName + " ")
		kl := "off"
		if *keeplines {
			kl = "on"
		}
		status.SetText(" m: kernel (" + *kernelName + ")  l: keeplines (" + kl + ")  r: render  q: quit")
		if current != "" {
			preview.SetText(compilePreview(current))
		}
	}
	refresh()

	tree.SetSelectedFunc(func(node *tview.TreeNode) {
		ref, ok := node.GetReference().(string)
		if !ok {
			return
		}
		info, err := os.Stat(ref)
		if err != nil {
			preview.SetText(err.Error())
			return
		}
		if info.IsDir() {
			if len(node.GetChildren()) == 0 {
				addChildren(node, ref)
			}
			node.SetExpanded(!node.IsExpanded())
			return
		}
		current = ref
		refresh()
	})

	body := tview.NewFlex().
		AddItem(tree, 0, 1, true).
		AddItem(preview, 0, 2, false)
	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(status, 1, 0, false)

	app := tview.NewApplication().SetRoot(layout, true)
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q':
			app.Stop()
			return nil
		case 'm':
			*kernelName = nextKernel(*kernelName)
			refresh()
			return nil
		case 'l':
			*keeplines = !*keeplines
			refresh()
			return nil
		case 'r':
			refresh()
			return nil
		}
		return event
	})
	if err := app.Run(); err != nil {
		term.Fatal("[explore] %v", err)
	}
}

// addChildren lists dir into node in name order. Files other than
// dialect sources are left out.
func addChildren(node *tview.TreeNode, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for idx := range entries {
		name := entries[idx].Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)
		if entries[idx].IsDir() {
			node.AddChild(tview.NewTreeNode(name + "/").
				SetReference(full).
				SetColor(tcell.ColorGreen).
				SetExpanded(false))
			continue
		}
		if !strings.HasSuffix(name, consts.SrcExt) {
			continue
		}
		node.AddChild(tview.NewTreeNode(name).SetReference(full))
	}
}

func compilePreview(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return err.Error()
	}
	out, cerr := cachedCompile(string(data), utils.Md5(data), settings(path))
	if cerr != nil {
		return cerr.Error()
	}
	return out
}
