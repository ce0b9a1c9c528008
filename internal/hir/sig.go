package hir

// Param is one "name : type" entry of a parameter list.
type Param struct {
	Name string
	Type string
}

// Params is an ordered mapping from parameter name to type. Names are unique.
//
// A nil Params means the header had no parameter list at all; a non-nil empty
// Params means an empty list "()".
type Params []Param

// Set inserts or overwrites the type of name. A duplicate name keeps the
// position of its first occurrence and takes the type of the last one
// (last-write-wins).
func (p *Params) Set(name, typ string) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Type = typ
			return
		}
	}
	*p = append(*p, Param{Name: name, Type: typ})
}

// Lookup returns the type of the named parameter.
func (p Params) Lookup(name string) (string, bool) {
	for _, prm := range p {
		if prm.Name == name {
			return prm.Type, true
		}
	}
	return "", false
}

// Len returns the number of parameters.
func (p Params) Len() int { return len(p) }

// Map returns the parameters as a plain map.
func (p Params) Map() map[string]string {
	if p == nil {
		return nil
	}
	m := make(map[string]string, len(p))
	for _, prm := range p {
		m[prm.Name] = prm.Type
	}
	return m
}

// FuncSig describes a function header. Empty strings mean "absent": tokens are
// never empty, so no real name, type or owner can collide with that.
type FuncSig struct {
	Name       string
	Params     Params // nil — списка параметров нет
	ReturnType string
	Owner      string // result-группа, указанная через =>
}

// HasParams reports whether the header carried a parameter list, possibly empty.
func (s FuncSig) HasParams() bool { return s.Params != nil }

// IsAnonymous reports whether the function has no name.
func (s FuncSig) IsAnonymous() bool { return s.Name == "" }

// ResultSig describes a result-group header. Name is always set.
type ResultSig struct {
	Name       string
	Params     Params
	ReturnType string
}
