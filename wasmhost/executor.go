// Package wasmhost runs WASM integration plugins. A guest module exports
// command descriptors plus parse and run entry points; the host adapts them
// into dispatchable commands.
package wasmhost

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// hostModuleName is the import namespace guests use for host functions.
const hostModuleName = "prunekit"

// Executor owns the WASM runtime that integration plugins run in.
type Executor struct {
	runtime wazero.Runtime
	cache   wazero.CompilationCache
	logger  *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithCompilationCache reuses compiled modules across executors.
func WithCompilationCache(cache wazero.CompilationCache) Option {
	return func(e *Executor) { e.cache = cache }
}

// WithLogger sets the logger guest log records are forwarded to.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// NewExecutor creates a WASM executor and registers the host functions.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}

	cfg := wazero.NewRuntimeConfig()
	if e.cache != nil {
		cfg = cfg.WithCompilationCache(e.cache)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, cfg)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	_, err := rt.NewHostModuleBuilder(hostModuleName).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.logMessage),
			[]api.ValueType{api.ValueTypeI64},
			nil).
		Export("log_message").
		Instantiate(ctx)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("register host functions: %w", err)
	}

	return e, nil
}

// Close releases the runtime and all loaded instances.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Instance is one instantiated integration plugin.
type Instance struct {
	module api.Module
}

// Load instantiates a guest module from its binary.
func (e *Executor) Load(ctx context.Context, wasmBytes []byte) (*Instance, error) {
	mod, err := e.runtime.Instantiate(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			return nil, fmt.Errorf("initialize module: %w", err)
		}
	}

	return &Instance{module: mod}, nil
}

// call invokes a guest export with a JSON payload and decodes the JSON reply.
func (i *Instance) call(ctx context.Context, name string, input []byte, out any) error {
	fn := i.module.ExportedFunction(name)
	if fn == nil {
		return fmt.Errorf("guest does not export %q", name)
	}

	var packedInput uint64
	if len(input) > 0 {
		allocate := i.module.ExportedFunction("allocate")
		if allocate == nil {
			return fmt.Errorf("guest does not export %q", "allocate")
		}
		res, err := allocate.Call(ctx, uint64(len(input)))
		if err != nil {
			return fmt.Errorf("guest allocate: %w", err)
		}
		ptr := res[0]
		if !i.module.Memory().Write(uint32(ptr), input) {
			return fmt.Errorf("write input to guest memory")
		}
		packedInput = packPtrLen(uint32(ptr), uint32(len(input)))
	}

	res, err := fn.Call(ctx, packedInput)
	if err != nil {
		return fmt.Errorf("guest %s: %w", name, err)
	}

	ptr, length := unpackPtrLen(res[0])
	if length == 0 {
		return nil
	}
	data, ok := i.module.Memory().Read(ptr, length)
	if !ok {
		return fmt.Errorf("read %s result from guest memory", name)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s result: %w", name, err)
	}
	return nil
}

// Guest pointers and lengths are 32-bit; exports exchange them packed into
// one uint64 as (ptr << 32) | len.
func packPtrLen(ptr, length uint32) uint64 {
	return uint64(ptr)<<32 | uint64(length)
}

func unpackPtrLen(packed uint64) (ptr, length uint32) {
	//nolint:gosec // truncation is the unpacking
	return uint32(packed >> 32), uint32(packed)
}
