package diagfmt

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"ro/internal/hir"
)

// FileOutput is the serialized outcome of parsing one file.
type FileOutput struct {
	File        string           `json:"file" yaml:"file"`
	Cached      bool             `json:"cached,omitempty" yaml:"cached,omitempty"`
	Program     *ProgramOutput   `json:"program,omitempty" yaml:"program,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

type ProgramOutput struct {
	Funcs   []FuncOutput   `json:"funcs" yaml:"funcs"`
	Results []ResultOutput `json:"results" yaml:"results"`
}

type ParamOutput struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// FuncOutput is one function. Params is nil when the header has no parameter list at all.
type FuncOutput struct {
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Params     *[]ParamOutput `json:"params,omitempty" yaml:"params,omitempty"`
	ReturnType string         `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Owner      string         `json:"owner,omitempty" yaml:"owner,omitempty"`
	Calls      []CallOutput   `json:"calls" yaml:"calls"`
}

type ResultOutput struct {
	Name       string        `json:"name" yaml:"name"`
	Params     []ParamOutput `json:"params" yaml:"params"`
	ReturnType string        `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Funcs      []FuncOutput  `json:"funcs" yaml:"funcs"`
}

// CallOutput carries only the fields of its kind.
type CallOutput struct {
	Kind  string   `json:"kind" yaml:"kind"`
	Value string   `json:"value,omitempty" yaml:"value,omitempty"`
	Name  string   `json:"name,omitempty" yaml:"name,omitempty"`
	Dest  string   `json:"dest,omitempty" yaml:"dest,omitempty"`
	Src   string   `json:"src,omitempty" yaml:"src,omitempty"`
	LHS   string   `json:"lhs,omitempty" yaml:"lhs,omitempty"`
	Op    string   `json:"op,omitempty" yaml:"op,omitempty"`
	RHS   string   `json:"rhs,omitempty" yaml:"rhs,omitempty"`
	Func  string   `json:"func,omitempty" yaml:"func,omitempty"`
	Args  []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// BuildProgramOutput converts a program into its serializable form.
func BuildProgramOutput(prog *hir.Program) *ProgramOutput {
	if prog == nil {
		return nil
	}
	out := &ProgramOutput{
		Funcs:   make([]FuncOutput, 0, len(prog.Funcs)),
		Results: make([]ResultOutput, 0, len(prog.Results)),
	}
	for i := range prog.Funcs {
		out.Funcs = append(out.Funcs, funcOutput(&prog.Funcs[i]))
	}
	for i := range prog.Results {
		r := &prog.Results[i]
		res := ResultOutput{
			Name:       r.Sig.Name,
			Params:     paramsOutput(r.Sig.Params),
			ReturnType: r.Sig.ReturnType,
			Funcs:      make([]FuncOutput, 0, len(r.Funcs)),
		}
		for j := range r.Funcs {
			res.Funcs = append(res.Funcs, funcOutput(&r.Funcs[j]))
		}
		out.Results = append(out.Results, res)
	}
	return out
}

func funcOutput(fn *hir.Function) FuncOutput {
	fo := FuncOutput{
		Name:       fn.Sig.Name,
		ReturnType: fn.Sig.ReturnType,
		Owner:      fn.Sig.Owner,
		Calls:      make([]CallOutput, 0, len(fn.Calls)),
	}
	if fn.Sig.HasParams() {
		params := paramsOutput(fn.Sig.Params)
		fo.Params = &params
	}
	for _, c := range fn.Calls {
		fo.Calls = append(fo.Calls, callOutput(c))
	}
	return fo
}

func paramsOutput(params hir.Params) []ParamOutput {
	out := make([]ParamOutput, 0, len(params))
	for _, p := range params {
		out = append(out, ParamOutput{Name: p.Name, Type: p.Type})
	}
	return out
}

func callOutput(c hir.Call) CallOutput {
	out := CallOutput{Kind: c.Kind.String()}
	switch data := c.Data.(type) {
	case hir.ReturnData:
		out.Value = data.Value
	case hir.DeclareVarData:
		out.Name = data.Name
	case hir.MoveData:
		out.Dest, out.Src = data.Dest, data.Src
	case hir.OperateData:
		out.Dest, out.LHS, out.Op, out.RHS = data.Dest, data.LHS, data.Op.String(), data.RHS
	case hir.InvokeData:
		out.Func, out.Args = data.Func, data.Args
	default:
		panic(fmt.Sprintf("diagfmt: unexpected call data %T", c.Data))
	}
	return out
}

// FormatProgramsJSON writes the outputs as an indented JSON array.
func FormatProgramsJSON(w io.Writer, files []FileOutput) error {
	return writeJSON(w, files)
}

// FormatProgramsYAML writes the outputs as a YAML sequence.
func FormatProgramsYAML(w io.Writer, files []FileOutput) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(files); err != nil {
		return err
	}
	return enc.Close()
}
