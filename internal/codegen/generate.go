package codegen

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"connector/internal/config"
	"connector/internal/dispatch"
	"connector/internal/logging"
)

// Generated file names inside the output directory.
const (
	ActionsFile  = "actions_gen.go"
	TriggersFile = "triggers_gen.go"
	RoutingFile  = "routing_gen.go"
	SchemasFile  = "schemas_gen.go"
)

// File is one rendered output, addressed relative to the project root.
type File struct {
	Path    string
	Content []byte
}

// Plan is the outcome of one discovery pass: both routing tables, the
// schema bundle built from them, and every rendered file.
type Plan struct {
	Actions  *RoutingTable
	Triggers *RoutingTable
	Bundle   Bundle
	Files    []File
}

// Generator runs discovery and rendering over a project tree.
type Generator struct {
	Config    *config.Config
	FS        fs.FS
	Templates TemplateSource
	Logger    *slog.Logger
}

// New creates a generator over fsys. Templates come from cfg.TemplatesDir
// inside fsys when set, else from the embedded defaults.
func New(cfg *config.Config, fsys fs.FS) *Generator {
	templates := DefaultTemplates()
	if cfg.TemplatesDir != "" {
		templates = TemplatesFrom(fsys, cfg.TemplatesDir)
	}
	return &Generator{
		Config:    cfg,
		FS:        fsys,
		Templates: templates,
		Logger:    logging.Discard(),
	}
}

// Plan discovers units and renders all generated files in memory. Nothing
// is written; any error aborts the whole plan.
func (g *Generator) Plan() (*Plan, error) {
	actions, err := Discover(g.FS, g.Config.ActionsDir, ActionConvention)
	if err != nil {
		return nil, err
	}
	triggers, err := Discover(g.FS, g.Config.TriggersDir, TriggerConvention)
	if err != nil {
		return nil, err
	}
	if err := checkDisjoint(actions, triggers); err != nil {
		return nil, err
	}
	g.Logger.Debug("Discovered handler units", "actions", actions.Names(), "triggers", triggers.Names())

	bundle, err := BuildBundle(g.FS, actions, triggers)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Actions: actions, Triggers: triggers, Bundle: bundle}

	for _, step := range []struct {
		file   string
		render func() ([]byte, error)
	}{
		{ActionsFile, func() ([]byte, error) { return g.renderModules(actions) }},
		{TriggersFile, func() ([]byte, error) { return g.renderModules(triggers) }},
		{RoutingFile, func() ([]byte, error) { return g.renderRouting(actions, triggers) }},
		{SchemasFile, func() ([]byte, error) { return g.renderSchemas(bundle) }},
	} {
		content, err := step.render()
		if err != nil {
			return nil, err
		}
		plan.Files = append(plan.Files, File{
			Path:    path.Join(g.Config.OutputDir, step.file),
			Content: content,
		})
	}
	return plan, nil
}

// Generate plans and writes in one step, logging every rewritten file.
func (g *Generator) Generate(root string) (*Plan, error) {
	plan, err := g.Plan()
	if err != nil {
		return nil, err
	}
	written, err := WriteFiles(root, plan.Files)
	if err != nil {
		return nil, err
	}
	for _, p := range written {
		g.Logger.Info("Wrote generated file", "path", p)
	}
	if len(written) == 0 {
		g.Logger.Info("Generated files up to date", "actions", len(plan.Actions.Units), "triggers", len(plan.Triggers.Units))
	}
	return plan, nil
}

// Schema keys are shared between kinds, so an action and a trigger may not
// share a name.
func checkDisjoint(actions, triggers *RoutingTable) error {
	seen := make(map[string]bool, len(actions.Units))
	for _, u := range actions.Units {
		seen[u.Name] = true
	}
	for _, u := range triggers.Units {
		if seen[u.Name] {
			return buildErr(InvalidName, u.Dir, fmt.Errorf("%q is registered as both an action and a trigger", u.Name))
		}
	}
	return nil
}

type importSpec struct {
	Alias string
	Path  string
}

type schemaData struct {
	ContextType string
	Key         string
	// Func is the qualified override function, empty for static schemas.
	Func string
}

type unitData struct {
	Name   string
	Alias  string
	Entry  string
	Input  *schemaData
	Output *schemaData
}

type modulesData struct {
	Package        string
	DispatchImport string
	TypesImport    string
	Kind           dispatch.Kind
	Root           string
	Handlers       string
	ContextType    string
	ResultType     string
	Imports        []importSpec
	Units          []unitData
}

type kindRouting struct {
	Kind        dispatch.Kind
	KindConst   string
	Identifiers string
	Table       string
	Handlers    string
	Names       []string
}

type routingData struct {
	Package        string
	DispatchImport string
	Name           string
	Version        string
	Actions        kindRouting
	Triggers       kindRouting
}

type schemasData struct {
	Package      string
	SchemaImport string
	Keys         []string
	Payload      string
}

// kindNames holds the Go names used for one kind in generated code.
type kindNames struct {
	alias       string
	handlers    string
	identifiers string
	table       string
	kindConst   string
	contextType string
	resultType  string
}

func namesFor(kind dispatch.Kind) kindNames {
	if kind == dispatch.KindTrigger {
		return kindNames{
			alias:       "trigger_",
			handlers:    "triggerHandlers",
			identifiers: "triggerIdentifiers",
			table:       "Triggers",
			kindConst:   "KindTrigger",
			contextType: "*types.TriggerContext",
			resultType:  "*types.TriggerResponse",
		}
	}
	return kindNames{
		alias:       "action_",
		handlers:    "actionHandlers",
		identifiers: "actionIdentifiers",
		table:       "Actions",
		kindConst:   "KindAction",
		contextType: "*types.ActionContext",
		resultType:  "any",
	}
}

func (g *Generator) runtimeImport(pkg string) string {
	return g.Config.ImportPath(path.Join("internal", pkg))
}

func (g *Generator) renderModules(table *RoutingTable) ([]byte, error) {
	names := namesFor(table.Convention.Kind)
	data := modulesData{
		Package:        g.Config.Package,
		DispatchImport: g.runtimeImport("dispatch"),
		TypesImport:    g.runtimeImport("types"),
		Kind:           table.Convention.Kind,
		Root:           table.Root,
		Handlers:       names.handlers,
		ContextType:    names.contextType,
		ResultType:     names.resultType,
	}

	for _, u := range table.Units {
		alias := names.alias + u.Name
		data.Imports = append(data.Imports, importSpec{Alias: alias, Path: g.Config.ImportPath(u.Dir)})

		ud := unitData{Name: u.Name, Alias: alias, Entry: table.Convention.EntryFunc}
		ud.Input = schemaFor(u.InputSchema != "", u.HasInputSchemaFunc, names.contextType, u.SchemaKey("input"), alias+"."+InputSchemaFunc)
		ud.Output = schemaFor(u.OutputSchema != "", u.HasOutputSchemaFunc, names.contextType, u.SchemaKey("output"), alias+"."+OutputSchemaFunc)
		data.Units = append(data.Units, ud)
	}

	return g.Templates.render(ModulesTemplate, data)
}

func schemaFor(hasFile, hasFunc bool, contextType, key, fn string) *schemaData {
	switch {
	case hasFunc:
		return &schemaData{ContextType: contextType, Key: key, Func: fn}
	case hasFile:
		return &schemaData{ContextType: contextType, Key: key}
	default:
		return nil
	}
}

func (g *Generator) renderRouting(actions, triggers *RoutingTable) ([]byte, error) {
	routing := func(table *RoutingTable) kindRouting {
		names := namesFor(table.Convention.Kind)
		return kindRouting{
			Kind:        table.Convention.Kind,
			KindConst:   names.kindConst,
			Identifiers: names.identifiers,
			Table:       names.table,
			Handlers:    names.handlers,
			Names:       table.Names(),
		}
	}

	return g.Templates.render(RoutingTemplate, routingData{
		Package:        g.Config.Package,
		DispatchImport: g.runtimeImport("dispatch"),
		Name:           g.Config.Name,
		Version:        g.Config.Version,
		Actions:        routing(actions),
		Triggers:       routing(triggers),
	})
}

func (g *Generator) renderSchemas(bundle Bundle) ([]byte, error) {
	payload, err := bundle.Encode()
	if err != nil {
		return nil, err
	}
	return g.Templates.render(SchemasTemplate, schemasData{
		Package:      g.Config.Package,
		SchemaImport: g.runtimeImport("schema"),
		Keys:         bundle.Keys(),
		Payload:      string(payload),
	})
}
