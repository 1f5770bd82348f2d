// Package codegen discovers handler units on disk and generates the Go code
// that registers them, routes identifiers to them and embeds their schemas.
//
// Generation is a pure function of an fs.FS listing plus configuration: the
// same tree always renders byte-identical output. Nothing is written until
// every file has rendered successfully.
package codegen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"connector/internal/dispatch"
	"connector/internal/schema"
)

// Convention describes the on-disk layout of one handler kind.
type Convention struct {
	Kind       dispatch.Kind
	ImplFile   string
	EntryFunc  string
	InputFile  string
	OutputFile string
	// Optional roots may be absent; the kind then has no units.
	Optional bool
}

var (
	ActionConvention = Convention{
		Kind:       dispatch.KindAction,
		ImplFile:   "action.go",
		EntryFunc:  "Execute",
		InputFile:  "base_input_schema.json",
		OutputFile: "base_output_schema.json",
	}
	TriggerConvention = Convention{
		Kind:       dispatch.KindTrigger,
		ImplFile:   "fetch_events.go",
		EntryFunc:  "FetchEvents",
		InputFile:  "input_schema.json",
		OutputFile: "output_schema.json",
		Optional:   true,
	}
)

// Names of the optional per-unit schema override functions.
const (
	InputSchemaFunc  = "InputSchema"
	OutputSchemaFunc = "OutputSchema"
)

// Unit is a registered handler unit.
type Unit struct {
	Kind dispatch.Kind
	Name string
	// Dir is the unit directory, slash-separated, relative to the listing root.
	Dir string
	// InputSchema and OutputSchema are schema file paths, empty when absent.
	InputSchema  string
	OutputSchema string
	// HasInputSchemaFunc and HasOutputSchemaFunc report exported overrides in
	// the unit package.
	HasInputSchemaFunc  bool
	HasOutputSchemaFunc bool
}

// SchemaKey returns the bundle key for direction ("input" or "output").
func (u Unit) SchemaKey(direction string) string {
	return schema.Key(u.Name, direction)
}

// RoutingTable is the sorted list of registered units of one kind.
type RoutingTable struct {
	Convention Convention
	Root       string
	Units      []Unit
}

// Names returns the registered identifiers in table order.
func (t *RoutingTable) Names() []string {
	names := make([]string, len(t.Units))
	for i, u := range t.Units {
		names[i] = u.Name
	}
	return names
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Discover lists the immediate subdirectories of root and returns the units
// whose implementation file exists, sorted by name.
func Discover(fsys fs.FS, root string, conv Convention) (*RoutingTable, error) {
	table := &RoutingTable{Convention: conv, Root: root, Units: []Unit{}}

	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		if conv.Optional && errors.Is(err, fs.ErrNotExist) {
			return table, nil
		}
		return nil, buildErr(IoError, fmt.Sprintf("reading %s directory %s", conv.Kind, root), err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || ignoredDir(entry.Name()) {
			continue
		}

		dir := path.Join(root, entry.Name())
		if !utf8.ValidString(entry.Name()) {
			return nil, buildErr(InvalidName, dir, fmt.Errorf("directory name %q is not valid UTF-8", entry.Name()))
		}

		unit, ok, err := inspectUnit(fsys, dir, entry.Name(), conv)
		if err != nil {
			return nil, err
		}
		if ok {
			table.Units = append(table.Units, unit)
		}
	}

	sort.Slice(table.Units, func(i, j int) bool {
		return table.Units[i].Name < table.Units[j].Name
	})
	return table, nil
}

// ignoredDir reports directories the go tool never builds.
func ignoredDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata"
}

func validIdent(name string) bool {
	return identRe.MatchString(name) && !token.IsKeyword(name)
}

func inspectUnit(fsys fs.FS, dir, name string, conv Convention) (Unit, bool, error) {
	impl := path.Join(dir, conv.ImplFile)
	if ok, err := fileExists(fsys, impl); err != nil || !ok {
		return Unit{}, false, err
	}
	if !validIdent(name) {
		return Unit{}, false, buildErr(InvalidName, dir, fmt.Errorf("directory name %q is not a valid identifier", name))
	}

	funcs, err := exportedFuncs(fsys, dir)
	if err != nil {
		return Unit{}, false, err
	}
	if !funcs[conv.EntryFunc] {
		return Unit{}, false, buildErr(InvalidUnit, dir, fmt.Errorf("package does not declare func %s", conv.EntryFunc))
	}

	unit := Unit{
		Kind:                conv.Kind,
		Name:                name,
		Dir:                 dir,
		HasInputSchemaFunc:  funcs[InputSchemaFunc],
		HasOutputSchemaFunc: funcs[OutputSchemaFunc],
	}

	for file, dst := range map[string]*string{
		conv.InputFile:  &unit.InputSchema,
		conv.OutputFile: &unit.OutputSchema,
	} {
		p := path.Join(dir, file)
		ok, err := fileExists(fsys, p)
		if err != nil {
			return Unit{}, false, err
		}
		if ok {
			*dst = p
		}
	}

	return unit, true, nil
}

func fileExists(fsys fs.FS, p string) (bool, error) {
	info, err := fs.Stat(fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, buildErr(IoError, "stat "+p, err)
	}
	return !info.IsDir(), nil
}

// exportedFuncs parses the non-test Go files of a unit package and returns
// the names of its package-level functions.
func exportedFuncs(fsys fs.FS, dir string) (map[string]bool, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, buildErr(IoError, "reading "+dir, err)
	}

	funcs := make(map[string]bool)
	fset := token.NewFileSet()
	for _, entry := range entries {
		fname := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(fname, ".go") || strings.HasSuffix(fname, "_test.go") {
			continue
		}

		p := path.Join(dir, fname)
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, buildErr(IoError, "reading "+p, err)
		}

		file, err := parser.ParseFile(fset, p, src, parser.SkipObjectResolution)
		if err != nil {
			return nil, buildErr(InvalidUnit, p, err)
		}
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if ok && fn.Recv == nil && fn.Name.IsExported() {
				funcs[fn.Name.Name] = true
			}
		}
	}
	return funcs, nil
}
