package main

import (
	"os"
	"strings"
	"testing"

	"github.com/elbow-jason/stratifiedjs/compiler"
	"github.com/elbow-jason/stratifiedjs/consts"
)

const (
	file = "test/basic"
)

func TestMain(m *testing.M) {
	files, err := os.ReadDir("test")
	if err != nil {
		panic(err)
	}
	for idx := range files {
		name := files[idx].Name()
		if files[idx].IsDir() || !strings.HasSuffix(name, consts.SrcExt) {
			continue
		}
		println("=== " + name + " ===")
		compilePath("test/" + name)
		println()
	}
	os.Exit(m.Run())
}

func load(b *testing.B) string {
	data, err := os.ReadFile(file + consts.SrcExt)
	if err != nil {
		b.Fatal(err)
	}
	return string(data)
}

func BenchmarkCompile(b *testing.B) {
	src := load(b)
	for i := 0; i < b.N; i++ {
		if _, err := compiler.Compile(src, compiler.Settings{Kernel: "runtime"}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMinify(b *testing.B) {
	src := load(b)
	for i := 0; i < b.N; i++ {
		if _, err := compiler.Minify(src, compiler.Settings{}); err != nil {
			b.Fatal(err)
		}
	}
}
