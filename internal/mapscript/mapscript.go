// Package mapscript applies an optional user-supplied Lua transform to each
// row before encoding. Scripts run in a minimal sandbox: base, string, table
// and math libraries only, with a hard timeout per record.
package mapscript

import (
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const scriptTimeout = time.Second

// Mapper runs one script per record. The script sees the globals `label`
// and `payload`; it returns nil to keep the record unchanged or a table
// {label=..., payload=...} overriding either field.
type Mapper struct {
	code string
}

// Load reads the script from path. The script is not parsed until first use
// so load errors stay fatal while script errors stay row-scoped.
func Load(path string) (*Mapper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map script: %w", err)
	}
	return &Mapper{code: string(data)}, nil
}

// NewInline wraps a script given as a string.
func NewInline(code string) *Mapper {
	return &Mapper{code: code}
}

// Apply transforms one record. Each call uses a fresh Lua state so records
// can be mapped from parallel workers without shared state.
func (m *Mapper) Apply(label, payload string) (string, string, error) {
	L := newSandboxState()
	defer L.Close()

	L.SetGlobal("label", lua.LString(label))
	L.SetGlobal("payload", lua.LString(payload))

	fn, err := L.LoadString(m.code)
	if err != nil {
		return "", "", fmt.Errorf("map script: %v", err)
	}
	L.Push(fn)

	done := make(chan error, 1)
	go func() { done <- L.PCall(0, 1, nil) }()
	select {
	case err := <-done:
		if err != nil {
			return "", "", fmt.Errorf("map script: %v", err)
		}
	case <-time.After(scriptTimeout):
		return "", "", fmt.Errorf("map script: timeout after %s", scriptTimeout)
	}

	ret := L.Get(-1)
	L.Pop(1)
	if ret == lua.LNil {
		return label, payload, nil
	}
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return "", "", fmt.Errorf("map script: expected table or nil, got %s", ret.Type())
	}

	outLabel, err := stringField(tbl, "label", label)
	if err != nil {
		return "", "", err
	}
	outPayload, err := stringField(tbl, "payload", payload)
	if err != nil {
		return "", "", err
	}
	return outLabel, outPayload, nil
}

func stringField(tbl *lua.LTable, name, fallback string) (string, error) {
	v := tbl.RawGetString(name)
	if v == lua.LNil {
		return fallback, nil
	}
	s, ok := v.(lua.LString)
	if !ok {
		return "", fmt.Errorf("map script: %s must be a string, got %s", name, v.Type())
	}
	return string(s), nil
}

func newSandboxState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	openLib("base", lua.OpenBase)
	openLib("string", lua.OpenString)
	openLib("table", lua.OpenTable)
	openLib("math", lua.OpenMath)
	return L
}
