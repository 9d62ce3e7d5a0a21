package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/frontend"
)

// LoadProgram reads a program from disk: .json files hold ESTree, .js files
// hold ES5 source.
func LoadProgram(path string) (*ast.Program, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("program: open %s: %w", path, err)
		}
		defer file.Close()
		program, err := frontend.DecodeESTree(file)
		if err != nil {
			return nil, fmt.Errorf("program: %s: %w", path, err)
		}
		return program, nil
	case ".js":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("program: read %s: %w", path, err)
		}
		return frontend.ParseSource(path, string(data))
	default:
		return nil, fmt.Errorf("program: unsupported file type %q for %s", ext, path)
	}
}

// LoadProgramSource parses ES5 source held in memory.
func LoadProgramSource(src string) (*ast.Program, error) {
	return frontend.ParseSource("<input>", src)
}
