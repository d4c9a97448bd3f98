package driver

import (
	"fmt"

	"crypt/internal/diag"
	"crypt/internal/lexer"
	"crypt/internal/source"
	"crypt/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and tokenizes it. A scan error is returned together
// with the result so the caller can still print the collected diagnostics.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokens, err := lexer.Tokenize(file, lexer.Options{
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
	})

	res := &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
	if err != nil {
		return res, fmt.Errorf("%s: %w", file.Path, err)
	}
	return res, nil
}

// loadError keeps both the io class and the underlying os error matchable.
func loadError(path string, err error) error {
	return fmt.Errorf("load %s: %w: %w", path, diag.ErrIO, err)
}
