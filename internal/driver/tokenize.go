package driver

import (
	"fmt"

	"ro/internal/diag"
	"ro/internal/lexer"
	"ro/internal/source"
	"ro/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  token.List
	Bag     *diag.Bag
}

// Tokenize loads a file and tokenizes it. With raw set the block-comment
// markers and the tokens between them are kept.
func Tokenize(path string, maxDiagnostics int, raw bool) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	opts := lexer.Options{Reporter: diag.BagReporter{Bag: bag}}

	var tokens token.List
	if raw {
		tokens = lexer.TokenizeWithComments(file, opts)
	} else {
		tokens = lexer.Tokenize(file, opts)
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
