package driver

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ro/internal/diag"
	"ro/internal/hir"
	"ro/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores assembled programs on disk, keyed by the SHA-256 of the
// normalized source. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the msgpack form of a parsed file: the program plus the
// warnings produced while parsing it. Spans keep offsets only; the file ID
// is restored on load.
type DiskPayload struct {
	Schema  uint16
	Path    string
	Funcs   []FuncPayload
	Results []ResultPayload
	Diags   []DiagPayload
}

type ParamPayload struct {
	Name string
	Type string
}

type FuncPayload struct {
	Name       string
	HasParams  bool
	Params     []ParamPayload
	ReturnType string
	Owner      string
	Calls      []CallPayload
}

type ResultPayload struct {
	Name       string
	Params     []ParamPayload
	ReturnType string
	Funcs      []FuncPayload
}

// CallPayload flattens a hir.Call. Operands by kind:
// Return [value], DeclareVar [name], Move [dest src], Operate [dest lhs rhs] + Op,
// Invoke [func args...].
type CallPayload struct {
	Kind     uint8
	Op       uint8
	Operands []string
	Start    uint32
	End      uint32
}

type DiagPayload struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
}

// OpenDiskCache initializes a disk cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a disk cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key [32]byte) string {
	// подкаталог "progs" — чтобы проще чистить
	return filepath.Join(c.dir, "progs", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // после Rename файла уже нет

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload. A missing entry is (false, nil).
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим, чтобы параллельный процесс не увидел полузачищенный кэш
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// StoreProgram caches prog and its warnings under the file's content hash.
func (c *DiskCache) StoreProgram(file *source.File, prog *hir.Program, warnings []*diag.Diagnostic) error {
	payload := programToPayload(prog)
	payload.Path = file.Path
	for _, d := range warnings {
		payload.Diags = append(payload.Diags, DiagPayload{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	return c.Put(file.Hash, payload)
}

// LoadProgram looks the file up by content hash. On a hit the cached warnings
// are replayed into bag.
func (c *DiskCache) LoadProgram(file *source.File, bag *diag.Bag) (*hir.Program, bool, error) {
	var payload DiskPayload
	ok, err := c.Get(file.Hash, &payload)
	if err != nil || !ok {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	prog, err := payloadToProgram(&payload, file.ID)
	if err != nil {
		return nil, false, err
	}
	for _, d := range payload.Diags {
		bag.Add(diag.New(diag.Severity(d.Severity), diag.Code(d.Code),
			source.Span{File: file.ID, Start: d.Start, End: d.End}, d.Message))
	}
	return prog, true, nil
}

// MarshalProgram encodes a program as msgpack.
func MarshalProgram(prog *hir.Program) ([]byte, error) {
	return msgpack.Marshal(programToPayload(prog))
}

// UnmarshalProgram decodes MarshalProgram output; spans get the given file ID.
func UnmarshalProgram(data []byte, file source.FileID) (*hir.Program, error) {
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, fmt.Errorf("unsupported program schema %d", payload.Schema)
	}
	return payloadToProgram(&payload, file)
}

func programToPayload(prog *hir.Program) *DiskPayload {
	payload := &DiskPayload{
		Schema:  diskCacheSchemaVersion,
		Funcs:   make([]FuncPayload, len(prog.Funcs)),
		Results: make([]ResultPayload, len(prog.Results)),
	}
	for i := range prog.Funcs {
		payload.Funcs[i] = funcToPayload(&prog.Funcs[i])
	}
	for i := range prog.Results {
		r := &prog.Results[i]
		rp := ResultPayload{
			Name:       r.Sig.Name,
			Params:     paramsToPayload(r.Sig.Params),
			ReturnType: r.Sig.ReturnType,
			Funcs:      make([]FuncPayload, len(r.Funcs)),
		}
		for j := range r.Funcs {
			rp.Funcs[j] = funcToPayload(&r.Funcs[j])
		}
		payload.Results[i] = rp
	}
	return payload
}

func funcToPayload(fn *hir.Function) FuncPayload {
	fp := FuncPayload{
		Name:       fn.Sig.Name,
		HasParams:  fn.Sig.HasParams(),
		Params:     paramsToPayload(fn.Sig.Params),
		ReturnType: fn.Sig.ReturnType,
		Owner:      fn.Sig.Owner,
		Calls:      make([]CallPayload, len(fn.Calls)),
	}
	for i, c := range fn.Calls {
		fp.Calls[i] = callToPayload(c)
	}
	return fp
}

func paramsToPayload(params hir.Params) []ParamPayload {
	out := make([]ParamPayload, len(params))
	for i, p := range params {
		out[i] = ParamPayload{Name: p.Name, Type: p.Type}
	}
	return out
}

func callToPayload(c hir.Call) CallPayload {
	cp := CallPayload{Kind: uint8(c.Kind), Start: c.Span.Start, End: c.Span.End}
	switch data := c.Data.(type) {
	case hir.ReturnData:
		cp.Operands = []string{data.Value}
	case hir.DeclareVarData:
		cp.Operands = []string{data.Name}
	case hir.MoveData:
		cp.Operands = []string{data.Dest, data.Src}
	case hir.OperateData:
		cp.Operands = []string{data.Dest, data.LHS, data.RHS}
		cp.Op = uint8(data.Op)
	case hir.InvokeData:
		cp.Operands = append([]string{data.Func}, data.Args...)
	default:
		panic(fmt.Sprintf("driver: unexpected call data %T", c.Data))
	}
	return cp
}

func payloadToProgram(payload *DiskPayload, file source.FileID) (*hir.Program, error) {
	prog := &hir.Program{
		Results: make([]hir.Result, len(payload.Results)),
	}
	for i := range payload.Funcs {
		fn, err := payloadToFunc(&payload.Funcs[i], file)
		if err != nil {
			return nil, err
		}
		prog.Funcs = append(prog.Funcs, fn)
	}
	for i := range payload.Results {
		rp := &payload.Results[i]
		res := hir.Result{Sig: hir.ResultSig{
			Name:       rp.Name,
			Params:     payloadToParams(rp.Params, true),
			ReturnType: rp.ReturnType,
		}}
		for j := range rp.Funcs {
			fn, err := payloadToFunc(&rp.Funcs[j], file)
			if err != nil {
				return nil, fmt.Errorf("result %q: %w", rp.Name, err)
			}
			res.Funcs = append(res.Funcs, fn)
		}
		prog.Results[i] = res
	}
	return prog, nil
}

func payloadToFunc(fp *FuncPayload, file source.FileID) (hir.Function, error) {
	fn := hir.Function{Sig: hir.FuncSig{
		Name:       fp.Name,
		Params:     payloadToParams(fp.Params, fp.HasParams),
		ReturnType: fp.ReturnType,
		Owner:      fp.Owner,
	}}
	for _, cp := range fp.Calls {
		call, err := payloadToCall(cp, file)
		if err != nil {
			return hir.Function{}, err
		}
		fn.Calls = append(fn.Calls, call)
	}
	return fn, nil
}

func payloadToParams(ps []ParamPayload, present bool) hir.Params {
	if !present {
		return nil
	}
	out := make(hir.Params, len(ps))
	for i, p := range ps {
		out[i] = hir.Param{Name: p.Name, Type: p.Type}
	}
	return out
}

func payloadToCall(cp CallPayload, file source.FileID) (hir.Call, error) {
	sp := source.Span{File: file, Start: cp.Start, End: cp.End}
	ops := cp.Operands
	want := map[hir.CallKind]int{
		hir.CallReturn:     1,
		hir.CallDeclareVar: 1,
		hir.CallMove:       2,
		hir.CallOperate:    3,
	}
	kind := hir.CallKind(cp.Kind)
	if n, ok := want[kind]; ok && len(ops) != n {
		return hir.Call{}, fmt.Errorf("cached %s call has %d operands, want %d", kind, len(ops), n)
	}
	switch kind {
	case hir.CallReturn:
		return hir.NewReturn(sp, ops[0]), nil
	case hir.CallDeclareVar:
		return hir.NewDeclareVar(sp, ops[0]), nil
	case hir.CallMove:
		return hir.NewMove(sp, ops[0], ops[1]), nil
	case hir.CallOperate:
		if cp.Op > uint8(hir.OpMod) {
			return hir.Call{}, fmt.Errorf("cached operation %d is out of range", cp.Op)
		}
		return hir.NewOperate(sp, ops[0], ops[1], hir.Operation(cp.Op), ops[2]), nil
	case hir.CallInvoke:
		if len(ops) == 0 {
			return hir.Call{}, errors.New("cached invoke call has no function name")
		}
		return hir.NewInvoke(sp, ops[0], append([]string{}, ops[1:]...)), nil
	default:
		return hir.Call{}, fmt.Errorf("cached call has unknown kind %d", cp.Kind)
	}
}
