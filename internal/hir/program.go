package hir

// Function is a parsed fn block.
type Function struct {
	Sig   FuncSig
	Calls []Call
}

// Result is a parsed result block with the functions that implement it.
type Result struct {
	Sig   ResultSig
	Funcs []Function
}

// Program is the artifact handed to the backend.
type Program struct {
	Funcs   []Function
	Results []Result
}

// Result returns the first result-group with the given name.
func (p *Program) Result(name string) (*Result, bool) {
	for i := range p.Results {
		if p.Results[i].Sig.Name == name {
			return &p.Results[i], true
		}
	}
	return nil, false
}

// Func returns the first top-level function with the given name.
func (p *Program) Func(name string) (*Function, bool) {
	for i := range p.Funcs {
		if p.Funcs[i].Sig.Name == name {
			return &p.Funcs[i], true
		}
	}
	return nil, false
}

// FuncCount returns the number of functions, including result members.
func (p *Program) FuncCount() int {
	n := len(p.Funcs)
	for i := range p.Results {
		n += len(p.Results[i].Funcs)
	}
	return n
}
