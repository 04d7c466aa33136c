package internal

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"
	"text/template"
)

const fileTemplate = `{{.Generated}}
{{range .Header}}{{.}}
{{end}}
{{if .BuildTags}}//go:build {{.BuildTags}}

{{end}}package {{.Package}}

import (
{{range .Imports}}	{{if .Name}}{{.Name}} {{end}}{{printf "%q" .Path}}
{{end}})
{{range .Types}}
// {{.Doc}}
func {{.Signature}} {
	return {{.Body}}
}
{{end}}`

var fileTmpl = template.Must(template.New("parsely").Parse(fileTemplate))

type fileData struct {
	Generated string
	Header    []string
	BuildTags string
	Package   string
	Imports   []ImportSpec
	Types     []typeData
}

type typeData struct {
	Doc       string
	Signature string
	Body      string
}

// emitter renders Go source for a PackageSpec
type emitter struct {
	ref string // qualifier of the parsely runtime package
}

// Render produces the gofmt-formatted source of the generated file
func Render(pkg *PackageSpec, cfg GeneratorConfig) ([]byte, error) {
	e := &emitter{ref: pkg.ParselyRef}
	if e.ref == "" {
		e.ref = DefaultImportName
	}

	data := fileData{
		Generated: GeneratedHeader,
		BuildTags: cfg.BuildTags,
		Package:   pkg.Name,
		Imports:   e.imports(pkg, cfg),
	}
	if cfg.Header != "" {
		for _, line := range strings.Split(strings.TrimRight(cfg.Header, "\n"), "\n") {
			data.Header = append(data.Header, "// "+line)
		}
	}
	for _, t := range pkg.Types {
		td, err := e.typeData(t)
		if err != nil {
			return nil, err
		}
		data.Types = append(data.Types, td)
	}

	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return nil, NewGenerateError(ErrMsgRenderFailed, token.Position{Filename: pkg.Dir}, pkg.Name, err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, NewGenerateError(ErrMsgFormatFailed, token.Position{Filename: pkg.Dir}, pkg.Name, err)
	}
	return out, nil
}

func (e *emitter) imports(pkg *PackageSpec, cfg GeneratorConfig) []ImportSpec {
	parsely := ImportSpec{Path: cfg.ImportPath}
	if e.ref != guessPackageName(cfg.ImportPath) {
		parsely.Name = e.ref
	}
	out := []ImportSpec{parsely}
	for _, imp := range pkg.Imports {
		if imp.Path != cfg.ImportPath {
			out = append(out, imp)
		}
	}
	return out
}

func (e *emitter) typeData(t TypeSpec) (typeData, error) {
	td := typeData{
		Doc:       fmt.Sprintf("Parser returns the parser for %s.", t.Name),
		Signature: fmt.Sprintf("(%s) Parser() %s.Parser[%s]", t.Name, e.ref, t.Name),
	}
	switch t.Shape {
	case ShapeRecord:
		td.Body = e.record(t)
	case ShapeUnit:
		td.Body = e.affix(fmt.Sprintf("%s.Unit(%s, %s{})", e.ref, quote(t.Literal), t.Name), t.Affixes)
	case ShapeNewtype:
		td.Body = e.affix(fmt.Sprintf("%s.Map(%s, func(v %s) %s { return %s(v) })",
			e.ref, t.Underlying.Parser, t.Underlying.Expr, t.Name, t.Name), t.Affixes)
	case ShapeEnum:
		td.Body = e.affix(e.sum(t, e.enumVariant), t.Affixes)
	case ShapeInterface:
		td.Doc = fmt.Sprintf("%sParser returns the parser for %s.", t.Name, t.Name)
		td.Signature = fmt.Sprintf("%sParser() %s.Parser[%s]", t.Name, e.ref, t.Name)
		td.Body = e.affix(e.sum(t, e.interfaceVariant), t.Affixes)
	default:
		return td, NewGenerateError(ErrMsgUnsupportedType, t.Position, t.Name, nil)
	}
	return td, nil
}

func (e *emitter) record(t TypeSpec) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s.Record(\n%s.RecordConfig{", e.ref, e.ref)
	if !t.Affixes.IsZero() {
		fmt.Fprintf(&sb, "Affixes: %s, ", e.affixes(t.Affixes))
	}
	fmt.Fprintf(&sb, "Separator: %s},\n", quote(t.Separator))
	for _, f := range t.Fields {
		fmt.Fprintf(&sb, "%s.Field(func(dst *%s, v %s) { dst.%s = v }, %s, %s),\n",
			e.ref, t.Name, f.Type.Expr, f.Name, f.Type.Parser, e.affixes(f.Affixes))
	}
	sb.WriteString(")")
	return sb.String()
}

func (e *emitter) sum(t TypeSpec, variant func(TypeSpec, VariantSpec) string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s.Sum(%s,\n", e.ref, quote(t.Name))
	for _, v := range t.Variants {
		sb.WriteString(e.affix(variant(t, v), v.Affixes))
		sb.WriteString(",\n")
	}
	sb.WriteString(")")
	return sb.String()
}

func (e *emitter) enumVariant(_ TypeSpec, v VariantSpec) string {
	return fmt.Sprintf("%s.UnitVariant(%s, %s)", e.ref, quote(v.Literal), v.Name)
}

func (e *emitter) interfaceVariant(t TypeSpec, v VariantSpec) string {
	if v.Kind == VariantUnit {
		return fmt.Sprintf("%s.UnitVariant[%s](%s, %s{})", e.ref, t.Name, quote(v.Literal), v.Name)
	}
	wrap := fmt.Sprintf("%s(v)", v.Name)
	if v.Field != "" {
		wrap = fmt.Sprintf("%s{%s: v}", v.Name, v.Field)
	}
	return fmt.Sprintf("%s.PayloadVariant(%s, func(v %s) %s { return %s })",
		e.ref, v.Payload.Parser, v.Payload.Expr, t.Name, wrap)
}

func (e *emitter) affix(expr string, a Affixes) string {
	if a.IsZero() {
		return expr
	}
	return fmt.Sprintf("%s.Affix(%s, %s)", e.ref, expr, e.affixes(a))
}

func (e *emitter) affixes(a Affixes) string {
	var parts []string
	if a.Before != "" {
		parts = append(parts, "Before: "+quote(a.Before))
	}
	if a.After != "" {
		parts = append(parts, "After: "+quote(a.After))
	}
	return fmt.Sprintf("%s.Affixes{%s}", e.ref, strings.Join(parts, ", "))
}

func quote(s string) string {
	return strconv.Quote(s)
}
