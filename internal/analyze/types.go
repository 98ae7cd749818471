package analyze

// Param describes one formal parameter as written in source.
type Param struct {
	Name string // "" for unnamed or blank parameters
	Type string // type expression as written, e.g. "*testing.T"
}

// FuncInfo describes a function located in source.
type FuncInfo struct {
	Name   string  // runtime name, e.g. "autoparam/theory.TestFoo.func1"
	File   string  // absolute path of the declaring file
	Line   int     // line of the func keyword
	Params []Param // parameters in declaration order
}

// Names returns the parameter names starting at position skip.
func (f *FuncInfo) Names(skip int) []string {
	if skip >= len(f.Params) {
		return []string{}
	}

	names := make([]string, 0, len(f.Params)-skip)
	for _, p := range f.Params[skip:] {
		names = append(names, p.Name)
	}

	return names
}
