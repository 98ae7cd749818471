package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"runtime"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax

// ErrNotFound is returned when a function's declaration cannot be located.
var ErrNotFound = errors.New("function declaration not found")

// Locate returns the runtime name, file and line of fn.
func Locate(fn any) (name, file string, line int, err error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "", "", 0, fmt.Errorf("expected a non-nil func, got %T", fn)
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return "", "", 0, fmt.Errorf("%w: no runtime information for %s", ErrNotFound, v.Type())
	}

	file, line = rf.FileLine(rf.Entry())

	return rf.Name(), file, line, nil
}

// LoadFunc loads the package declaring fn and returns its parameters as written.
func LoadFunc(fn any) (*FuncInfo, error) {
	name, file, line, err := Locate(fn)
	if err != nil {
		return nil, err
	}

	arity := reflect.TypeOf(fn).NumIn()

	cfg := &packages.Config{
		Mode:  LoadMode,
		Dir:   filepath.Dir(file),
		Tests: true,
	}

	pkgs, err := packages.Load(cfg, "file="+file)
	if err != nil {
		return nil, fmt.Errorf("failed to load package of %s: %w", file, err)
	}

	for _, pkg := range pkgs {
		if params, ok := findParams(pkg, file, line, arity); ok {
			return &FuncInfo{Name: name, File: file, Line: line, Params: params}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s at %s:%d", ErrNotFound, name, file, line)
}

// findParams searches the syntax of pkg for a function or function literal
// starting at line in file with the given number of parameters.
func findParams(pkg *packages.Package, file string, line, arity int) ([]Param, bool) {
	for _, f := range pkg.Syntax {
		if !samePath(pkg.Fset.File(f.Pos()).Name(), file) {
			continue
		}

		var found []Param

		ast.Inspect(f, func(n ast.Node) bool {
			if found != nil {
				return false
			}

			var ft *ast.FuncType
			switch nn := n.(type) {
			case *ast.FuncDecl:
				ft = nn.Type
			case *ast.FuncLit:
				ft = nn.Type
			default:
				return true
			}

			if lineOf(pkg.Fset, ft.Func) != line {
				return true
			}

			if params := paramsOf(ft); len(params) == arity {
				found = params
				return false
			}

			return true
		})

		if found != nil {
			return found, true
		}
	}

	return nil, false
}

func paramsOf(ft *ast.FuncType) []Param {
	params := []Param{}
	if ft.Params == nil {
		return params
	}

	for _, field := range ft.Params.List {
		typ := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			params = append(params, Param{Type: typ})
			continue
		}

		for _, n := range field.Names {
			name := n.Name
			if name == "_" {
				name = ""
			}

			params = append(params, Param{Name: name, Type: typ})
		}
	}

	return params
}

func lineOf(fset *token.FileSet, pos token.Pos) int {
	if !pos.IsValid() {
		return 0
	}

	return fset.Position(pos).Line
}

func samePath(a, b string) bool {
	if a == b {
		return true
	}

	ea, errA := filepath.EvalSymlinks(a)
	eb, errB := filepath.EvalSymlinks(b)

	return errA == nil && errB == nil && ea == eb
}
