// Package mathlib is a small stand-in for the native routine library: plain
// per-element Go routines, the catalog describing them and the generated
// vector entry points.
package mathlib

//go:generate go run github.com/roach88/vecwrap/cmd/vecwrap generate . --pkg mathlib -o vectorize_gen.go

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/roach88/vecwrap/internal/compiler"
	"github.com/roach88/vecwrap/internal/ir"
	"github.com/roach88/vecwrap/internal/registry"
	"github.com/roach88/vecwrap/internal/vector"
)

//go:embed catalog.cue
var catalogSource []byte

var loadCatalog = sync.OnceValues(func() (*ir.Catalog, error) {
	return compiler.CompileSource(catalogSource, "catalog.cue")
})

// Catalog returns the compiled routine catalog.
func Catalog() (*ir.Catalog, error) {
	return loadCatalog()
}

// CatalogSource returns the embedded CUE source.
func CatalogSource() []byte {
	return catalogSource
}

// Vectors returns the generated vector entry point of every vectorized
// routine.
func Vectors() map[string]vector.Func {
	fns := make(map[string]vector.Func)
	registerVectorized(func(name string, fn vector.Func) {
		fns[name] = fn
	})
	return fns
}

// scalars are the single-item forms of routines with no vector form.
var scalars = map[string]vector.Func{
	"bodn2c": func(args []any) ([]any, error) {
		in, err := vector.NewInputs("bodn2c", args, 1)
		if err != nil {
			return nil, err
		}
		name, err := in.String(0)
		if err != nil {
			return nil, err
		}
		code, found := bodn2c(name)
		return []any{code, found}, nil
	},
	"bodc2n": func(args []any) ([]any, error) {
		in, err := vector.NewInputs("bodc2n", args, 1)
		if err != nil {
			return nil, err
		}
		code, err := in.Int(0)
		if err != nil {
			return nil, err
		}
		name, found := bodc2n(code)
		return []any{name, found}, nil
	},
	"rpd": func(args []any) ([]any, error) {
		if _, err := vector.NewInputs("rpd", args, 0); err != nil {
			return nil, err
		}
		return []any{rpd()}, nil
	},
}

// Register adds every catalog routine to reg. The caller builds reg.
func Register(reg *registry.Registry) error {
	cat, err := Catalog()
	if err != nil {
		return fmt.Errorf("mathlib catalog: %w", err)
	}
	vecs := Vectors()
	for _, spec := range cat.Routines {
		if err := reg.Add(spec, scalars[spec.Name], vecs[spec.Name]); err != nil {
			return fmt.Errorf("mathlib: %w", err)
		}
	}
	return nil
}

// NewRegistry returns a built registry holding every catalog routine.
func NewRegistry(opts ...registry.Option) (*registry.Registry, error) {
	reg := registry.New(opts...)
	if err := Register(reg); err != nil {
		return nil, err
	}
	if err := reg.Build(); err != nil {
		return nil, err
	}
	return reg, nil
}
