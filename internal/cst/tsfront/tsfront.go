// Package tsfront is a C++ front end for the normalization engine, built on
// tree-sitter. It parses source text with the tree-sitter-cpp grammar and
// materializes the parse tree into cst.Node cursors, synthesizing the
// capabilities the grammar does not provide natively (unique symbol
// references, definition lookup, member access tracking).
//
// The adapter is an approximation of a semantic front end: symbol references
// are resolved lexically within one translation unit, and type spellings are
// taken from the source text rather than a type checker.
package tsfront

import (
	"fmt"
	"os"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"

	"github.com/cppbonsai/cppbonsai/internal/cst"
)

var (
	cppOnce sync.Once
	cppLang *tree_sitter.Language
	pool    *sync.Pool
)

func initLanguage() {
	cppOnce.Do(func() {
		cppLang = tree_sitter.NewLanguage(tree_sitter_cpp.Language())
		pool = &sync.Pool{
			New: func() any {
				p := tree_sitter.NewParser()
				if err := p.SetLanguage(cppLang); err != nil {
					panic(fmt.Sprintf("set language: %v", err))
				}
				return p
			},
		}
	})
}

// Unit is one parsed translation unit: the materialized cursor tree plus
// any syntax diagnostics the parser reported. Diagnostics are warnings, not
// errors — a partially broken file still yields a usable tree.
type Unit struct {
	Name     string
	Root     cst.Cursor
	Warnings []string
}

// ParseFile reads and parses one C++ source file.
func ParseFile(path string) (*Unit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Parse(path, source)
}

// Parse parses C++ source text. name identifies the translation unit and is
// used as the location file for every cursor. Parsers are pooled to avoid
// per-call allocation.
func Parse(name string, source []byte) (*Unit, error) {
	initLanguage()

	p, _ := pool.Get().(*tree_sitter.Parser)
	if p == nil {
		return nil, fmt.Errorf("parser pool exhausted")
	}
	tree := p.Parse(source, nil)
	pool.Put(p)
	if tree == nil {
		return nil, fmt.Errorf("parse failed for %s", name)
	}
	defer tree.Close()

	conv := newConverter(name, source)
	root := conv.translationUnit(tree.RootNode())
	conv.resolvePending()

	return &Unit{
		Name:     name,
		Root:     root,
		Warnings: conv.warnings,
	}, nil
}
