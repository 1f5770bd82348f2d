package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"text/template"
	"text/template/parse"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// Template file names, looked up in the embedded defaults or in the
// configured override directory.
const (
	ModulesTemplate = "modules.go.tmpl"
	RoutingTemplate = "routing.go.tmpl"
	SchemasTemplate = "schemas.go.tmpl"
)

// requiredFields lists the placeholders each template must reference. A
// template that never mentions one of them would silently drop part of the
// generated code.
var requiredFields = map[string][]string{
	ModulesTemplate: {"Package", "DispatchImport", "TypesImport", "Imports", "Handlers", "Units", "Alias", "Entry", "Key"},
	RoutingTemplate: {"Package", "DispatchImport", "Actions", "Triggers", "Identifiers", "Names", "Table", "Handlers"},
	SchemasTemplate: {"Package", "SchemaImport", "Payload"},
}

// TemplateSource resolves template text by file name.
type TemplateSource struct {
	fsys fs.FS
	dir  string
}

// DefaultTemplates serves the templates compiled into the generator.
func DefaultTemplates() TemplateSource {
	return TemplateSource{fsys: defaultTemplates, dir: "templates"}
}

// TemplatesFrom serves templates from dir inside fsys. Every template must
// be present there; there is no per-file fallback to the defaults.
func TemplatesFrom(fsys fs.FS, dir string) TemplateSource {
	return TemplateSource{fsys: fsys, dir: dir}
}

func (s TemplateSource) load(name string) (*template.Template, error) {
	p := path.Join(s.dir, name)
	text, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return nil, buildErr(TemplateError, "reading template "+p, err)
	}

	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(funcMap()).
		Parse(string(text))
	if err != nil {
		return nil, buildErr(TemplateError, "parsing template "+p, err)
	}

	if missing := missingFields(tmpl, requiredFields[name]); len(missing) > 0 {
		return nil, buildErr(TemplateError, "validating template "+p, fmt.Errorf("placeholders never referenced: %v", missing))
	}
	return tmpl, nil
}

// render executes a template and gofmt-formats the result.
func (s TemplateSource) render(name string, data any) ([]byte, error) {
	tmpl, err := s.load(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, buildErr(TemplateError, "executing template "+name, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, buildErr(TemplateError, "formatting output of "+name, err)
	}
	return formatted, nil
}

func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["goquote"] = strconv.Quote
	return funcs
}

// missingFields walks every parse tree of tmpl and reports which of the
// required field names are never referenced.
func missingFields(tmpl *template.Template, required []string) []string {
	seen := make(map[string]bool)
	for _, t := range tmpl.Templates() {
		if t.Tree != nil {
			collectFields(t.Tree.Root, seen)
		}
	}

	var missing []string
	for _, field := range required {
		if !seen[field] {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing
}

func collectFields(node parse.Node, seen map[string]bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			collectFields(child, seen)
		}
	case *parse.ActionNode:
		collectFields(n.Pipe, seen)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			collectFields(cmd, seen)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			collectFields(arg, seen)
		}
	case *parse.FieldNode:
		for _, ident := range n.Ident {
			seen[ident] = true
		}
	case *parse.ChainNode:
		for _, ident := range n.Field {
			seen[ident] = true
		}
		collectFields(n.Node, seen)
	case *parse.IfNode:
		collectBranch(&n.BranchNode, seen)
	case *parse.RangeNode:
		collectBranch(&n.BranchNode, seen)
	case *parse.WithNode:
		collectBranch(&n.BranchNode, seen)
	case *parse.TemplateNode:
		collectFields(n.Pipe, seen)
	}
}

func collectBranch(b *parse.BranchNode, seen map[string]bool) {
	collectFields(b.Pipe, seen)
	collectFields(b.List, seen)
	collectFields(b.ElseList, seen)
}
