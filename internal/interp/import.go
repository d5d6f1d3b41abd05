package interp

import (
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/parse"
	"github.com/mikenno/modelgen/internal/token"
	"github.com/mikenno/modelgen/internal/value"
)

// importCacheKey is a fixed, all-zero HighwayHash key: the hash here is a
// belt-and-suspenders collision check over the resolved absolute path, not
// a security boundary, so a static key (rather than a per-process random
// one) keeps cache keys reproducible across runs for debugging.
var importCacheKey = make([]byte, 32)

// hashImportPath returns a hex-encoded HighwayHash of the module's resolved
// filesystem path. The dotted import name remains the primary cache key
// (§4.12 preserves that visible semantic); this is an auxiliary check
// alongside it so two different import names that resolve to the same
// underlying file are caught rather than silently double-loaded.
func hashImportPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := highwayhash.Sum([]byte(path), importCacheKey)
	return hex.EncodeToString(sum[:])
}

// execImport implements `import a, b as c, ...` (§4.12): each item binds
// the loaded module, under its alias if any, into the current module's
// globals.
func (it *Interp) execImport(n *ast.Node) error {
	for _, item := range n.Children {
		nameNode, alias := item, item.Ident
		if item.Kind == ast.As {
			nameNode = item.Children[0]
		} else {
			alias = lastDottedComponent(item.Ident)
		}
		mod, err := it.loadModule(nameNode.Ident, nameNode.Token.Begin)
		if err != nil {
			return err
		}
		it.inst.TopFrame.Module.Globals.Set(alias, mod)
	}
	return nil
}

// execImportFrom implements `from a import x, y as z` and `from a import *`
// (§4.12).
func (it *Interp) execImportFrom(n *ast.Node) error {
	modNode := n.Children[0]
	mod, err := it.loadModule(modNode.Ident, modNode.Token.Begin)
	if err != nil {
		return err
	}
	items := n.Children[1:]
	if len(items) == 1 && items[0].Ident == "*" {
		for _, k := range mod.Globals.Keys() {
			v, _ := mod.Globals.Get(k)
			it.inst.TopFrame.Module.Globals.Set(k, v)
		}
		return nil
	}
	for _, item := range items {
		nameNode, alias := item, item.Ident
		if item.Kind == ast.As {
			nameNode = item.Children[0]
		}
		v, ok := mod.Globals.Get(nameNode.Ident)
		if !ok {
			return it.newError(nameNode.Token.Begin, "module %q has no attribute %q", mod.Name, nameNode.Ident)
		}
		it.inst.TopFrame.Module.Globals.Set(alias, v)
	}
	return nil
}

func lastDottedComponent(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// loadModule resolves and, if needed, loads and interprets the module
// named by a dotted import path (§4.12): a statically registered module
// (list, map, math) is checked first, then the cache keyed by import
// name, then the filesystem search path with `a.b` translated to `a/b.mg`
// via an afero.Fs so the lookup is testable against an in-memory
// filesystem without touching disk.
func (it *Interp) loadModule(name string, pos token.Position) (*value.Module, error) {
	if mod, ok := it.inst.StaticModules[name]; ok {
		return mod, nil
	}
	if mod, ok := it.inst.ModulesByName[name]; ok {
		return mod, nil
	}

	relPath := strings.ReplaceAll(name, ".", "/") + ".mg"
	path, src, err := readModuleSource(it.inst.FS, it.inst.SearchPaths, relPath)
	if err != nil {
		return nil, it.newError(pos, "cannot import %q: %s", name, err)
	}

	hash := hashImportPath(path)
	if existing, ok := it.inst.ModulesByHash[hash]; ok {
		it.inst.ModulesByName[name] = existing
		return existing, nil
	}

	root, err := parse.ParseString(path, src)
	if err != nil {
		return nil, it.newError(pos, "cannot import %q: %s", name, err)
	}

	mod := value.NewModule(name, path, root, it.inst)
	value.Retain(mod)
	it.inst.ModulesByName[name] = mod
	it.inst.ModulesByHash[hash] = mod

	sub := New(it.inst, mod)
	if err := sub.Run(root); err != nil {
		return nil, err
	}
	return mod, nil
}

// readModuleSource tries relPath under each search path in order, using fs
// (an afero.Fs — afero.NewOsFs() in production, an in-memory fs in tests).
func readModuleSource(fs afero.Fs, searchPaths []string, relPath string) (path string, src string, err error) {
	for _, dir := range searchPaths {
		full := dir + "/" + relPath
		exists, err := afero.Exists(fs, full)
		if err != nil {
			return "", "", errors.Wrapf(err, "searching %s", full)
		}
		if !exists {
			continue
		}
		data, err := afero.ReadFile(fs, full)
		if err != nil {
			return "", "", errors.Wrapf(err, "reading %s", full)
		}
		return full, string(data), nil
	}
	return "", "", errors.Errorf("module not found: %s", relPath)
}
