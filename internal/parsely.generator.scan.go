package internal

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// SourceFile is one Go file of a package
type SourceFile struct {
	Name    string
	Content []byte
}

// rawPayload is an annotation payload before its context is known
type rawPayload struct {
	text string
	pos  token.Position
}

// directives are the //parsely: comments attached to one item
type directives struct {
	derive    bool
	variantOf string
	payload   *rawPayload
}

type typeDecl struct {
	name string
	spec *ast.TypeSpec
	file *ast.File
	dirs directives
}

type constDecl struct {
	name string
	dirs directives
	pos  token.Position
}

// scanner collects the derived types of one package
type scanner struct {
	fset       *token.FileSet
	cfg        GeneratorConfig
	logger     *zap.Logger
	files      []*ast.File
	imports    map[*ast.File]map[string]ImportSpec
	parselyRef string
	types      map[string]*typeDecl
	typeOrder  []*typeDecl
	consts     map[string][]constDecl
	used       map[string]ImportSpec
}

// ScanSources parses the given files of one package and returns the
// description of every derived type, in source order. Files are processed
// sorted by name.
func ScanSources(dir string, files []SourceFile, cfg GeneratorConfig, logger *zap.Logger) (*PackageSpec, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &scanner{
		fset:    token.NewFileSet(),
		cfg:     cfg,
		logger:  logger,
		imports: make(map[*ast.File]map[string]ImportSpec),
		types:   make(map[string]*typeDecl),
		consts:  make(map[string][]constDecl),
		used:    make(map[string]ImportSpec),
	}
	logger.Debug(LogMsgScanStart, zap.String(LogFieldDir, dir), zap.Int(LogFieldTypes, len(files)))

	sorted := append([]SourceFile(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	pkg := &PackageSpec{Dir: dir}
	for _, sf := range sorted {
		f, err := parser.ParseFile(s.fset, filepath.Join(dir, sf.Name), sf.Content, parser.ParseComments)
		if err != nil {
			return nil, NewGenerateError(ErrMsgParseSourceFailed, token.Position{Filename: sf.Name}, "", err)
		}
		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		} else if pkg.Name != f.Name.Name {
			return nil, NewGenerateError(ErrMsgMixedPackages, s.fset.Position(f.Name.Pos()), f.Name.Name, nil)
		}
		s.files = append(s.files, f)
		s.imports[f] = fileImports(f)
	}

	s.parselyRef = s.findParselyRef()
	pkg.ParselyRef = s.parselyRef

	if err := s.collect(); err != nil {
		return nil, err
	}
	for _, decl := range s.typeOrder {
		if decl.dirs.variantOf != "" && !s.isDerivedInterface(decl.dirs.variantOf) {
			return nil, NewGenerateError(ErrMsgVariantTargetUnknown, s.fset.Position(decl.spec.Pos()), decl.dirs.variantOf, nil)
		}
	}

	for _, decl := range s.typeOrder {
		if !decl.dirs.derive {
			continue
		}
		spec, err := s.deriveType(decl)
		if err != nil {
			return nil, err
		}
		s.logger.Debug(LogMsgTypeDerived,
			zap.String(LogFieldType, spec.Name),
			zap.String(LogFieldShape, string(spec.Shape)))
		pkg.Types = append(pkg.Types, *spec)
	}

	pkg.Imports = lo.Values(s.used)
	sort.Slice(pkg.Imports, func(i, j int) bool { return pkg.Imports[i].Path < pkg.Imports[j].Path })
	logger.Debug(LogMsgScanEnd,
		zap.String(LogFieldPackage, pkg.Name),
		zap.Int(LogFieldTypes, len(pkg.Types)))
	return pkg, nil
}

// collect gathers type and constant declarations with their directives
func (s *scanner) collect() error {
	for _, f := range s.files {
		for _, d := range f.Decls {
			gen, ok := d.(*ast.GenDecl)
			if !ok {
				continue
			}
			switch gen.Tok {
			case token.TYPE:
				if err := s.collectTypes(gen, f); err != nil {
					return err
				}
			case token.CONST:
				if err := s.collectConsts(gen); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *scanner) collectTypes(gen *ast.GenDecl, f *ast.File) error {
	for _, sp := range gen.Specs {
		ts := sp.(*ast.TypeSpec)
		doc := ts.Doc
		if !gen.Lparen.IsValid() {
			doc = gen.Doc
		}
		dirs, err := s.readDirectives(doc, ts.Comment)
		if err != nil {
			return err
		}
		decl := &typeDecl{name: ts.Name.Name, spec: ts, file: f, dirs: dirs}
		if dirs.payload != nil && !dirs.derive && dirs.variantOf == "" {
			return NewAnnotationError(ErrMsgAnnotationOrphan, dirs.payload.pos, "")
		}
		s.types[decl.name] = decl
		s.typeOrder = append(s.typeOrder, decl)
	}
	return nil
}

func (s *scanner) collectConsts(gen *ast.GenDecl) error {
	current := ""
	for _, sp := range gen.Specs {
		vs := sp.(*ast.ValueSpec)
		switch {
		case vs.Type != nil:
			current = identName(vs.Type)
		case len(vs.Values) > 0:
			current = conversionTarget(vs.Values[0])
		}
		doc := vs.Doc
		if !gen.Lparen.IsValid() {
			doc = gen.Doc
		}
		dirs, err := s.readDirectives(doc, vs.Comment)
		if err != nil {
			return err
		}
		if dirs.derive || dirs.variantOf != "" {
			return NewGenerateError(ErrMsgUnknownDirective, s.fset.Position(vs.Pos()), vs.Names[0].Name, nil)
		}
		if current == "" {
			continue
		}
		for _, n := range vs.Names {
			if n.Name == "_" {
				continue
			}
			s.consts[current] = append(s.consts[current], constDecl{
				name: n.Name,
				dirs: dirs,
				pos:  s.fset.Position(n.Pos()),
			})
		}
	}
	return nil
}

// readDirectives extracts //parsely: lines from the comment groups.
// At most one annotation payload is allowed per item.
func (s *scanner) readDirectives(groups ...*ast.CommentGroup) (directives, error) {
	var d directives
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			rest, ok := strings.CutPrefix(c.Text, DirectivePrefix)
			if !ok {
				continue
			}
			pos := s.fset.Position(c.Slash)
			switch {
			case rest == DirectiveDerive:
				d.derive = true
			case strings.HasPrefix(rest, DirectiveVariant):
				target := strings.Fields(strings.TrimPrefix(rest, DirectiveVariant))
				if len(target) != 1 {
					return d, NewGenerateError(ErrMsgVariantTargetMissing, pos, rest, nil)
				}
				d.variantOf = target[0]
			case strings.HasPrefix(rest, DirectivePayload):
				if d.payload != nil {
					return d, NewAnnotationError(ErrMsgDuplicateAnnotation, pos, "")
				}
				base := pos
				base.Offset += len(DirectivePrefix)
				base.Column += len(DirectivePrefix)
				d.payload = &rawPayload{text: rest, pos: base}
			default:
				return d, NewGenerateError(ErrMsgUnknownDirective, pos, rest, nil)
			}
		}
	}
	return d, nil
}

func (s *scanner) annotation(d directives, ctx AnnotationContext) (*Annotation, error) {
	if d.payload == nil {
		return nil, nil
	}
	return ReadAnnotation(d.payload.text, ctx, d.payload.pos, s.logger)
}

// deriveType resolves the shape of a derived type
func (s *scanner) deriveType(decl *typeDecl) (*TypeSpec, error) {
	ts := decl.spec
	pos := s.fset.Position(ts.Pos())
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return nil, NewGenerateError(ErrMsgGenericType, pos, decl.name, nil)
	}
	if ts.Assign.IsValid() {
		return nil, NewGenerateError(ErrMsgUnsupportedType, pos, decl.name, nil)
	}

	ctx := ContextContainer
	if decl.dirs.variantOf != "" {
		// a derived variant type keeps its single payload for the variant
		ctx = ContextVariant
	}
	var ann *Annotation
	if ctx == ContextContainer {
		var err error
		if ann, err = s.annotation(decl.dirs, ctx); err != nil {
			return nil, err
		}
	}

	spec := &TypeSpec{
		Name:     decl.name,
		Affixes:  Affixes{Before: ann.Lookup(KeywordBefore), After: ann.Lookup(KeywordAfter)},
		Position: pos,
	}

	switch t := unparen(ts.Type).(type) {
	case *ast.StructType:
		if t.Fields == nil || len(t.Fields.List) == 0 {
			spec.Shape = ShapeUnit
			if err := rejectKeywords(ann, KeywordSepBy); err != nil {
				return nil, err
			}
			spec.Literal = DefaultLiteral("", decl.name)
			if lit, ok := ann.Get(KeywordString); ok {
				spec.Literal = lit
			}
			return spec, nil
		}
		spec.Shape = ShapeRecord
		if err := rejectKeywords(ann, KeywordString); err != nil {
			return nil, err
		}
		spec.Separator = DefaultSeparator
		if sep, ok := ann.Get(KeywordSepBy); ok {
			spec.Separator = sep
		}
		fields, err := s.recordFields(decl, t)
		if err != nil {
			return nil, err
		}
		spec.Fields = fields
		return spec, nil

	case *ast.InterfaceType:
		spec.Shape = ShapeInterface
		if err := rejectKeywords(ann, KeywordSepBy, KeywordString); err != nil {
			return nil, err
		}
		variants, err := s.interfaceVariants(decl)
		if err != nil {
			return nil, err
		}
		spec.Variants = variants
		return spec, nil

	case *ast.Ident:
		if consts := s.consts[decl.name]; len(consts) > 0 && builtinScalars[t.Name] {
			spec.Shape = ShapeEnum
			if err := rejectKeywords(ann, KeywordSepBy, KeywordString); err != nil {
				return nil, err
			}
			variants, err := s.enumVariants(decl, consts)
			if err != nil {
				return nil, err
			}
			spec.Variants = variants
			return spec, nil
		}
	}

	spec.Shape = ShapeNewtype
	if err := rejectKeywords(ann, KeywordSepBy, KeywordString); err != nil {
		return nil, err
	}
	ref, err := s.typeRef(ts.Type, decl.file, pos, decl.name)
	if err != nil {
		return nil, err
	}
	spec.Underlying = ref
	return spec, nil
}

func (s *scanner) recordFields(decl *typeDecl, st *ast.StructType) ([]FieldSpec, error) {
	var fields []FieldSpec
	for _, field := range st.Fields.List {
		dirs, err := s.readDirectives(field.Doc, field.Comment)
		if err != nil {
			return nil, err
		}
		pos := s.fset.Position(field.Pos())
		if dirs.derive || dirs.variantOf != "" {
			return nil, NewGenerateError(ErrMsgUnknownDirective, pos, decl.name, nil)
		}
		ann, err := s.annotation(dirs, ContextField)
		if err != nil {
			return nil, err
		}
		ref, err := s.typeRef(field.Type, decl.file, pos, decl.name)
		if err != nil {
			return nil, err
		}
		affixes := Affixes{Before: ann.Lookup(KeywordBefore), After: ann.Lookup(KeywordAfter)}

		names := lo.Map(field.Names, func(n *ast.Ident, _ int) string { return n.Name })
		if len(names) == 0 {
			names = []string{embeddedName(field.Type)}
		}
		for _, name := range names {
			fields = append(fields, FieldSpec{Name: name, Type: ref, Affixes: affixes, Position: pos})
		}
	}
	return fields, nil
}

func (s *scanner) enumVariants(decl *typeDecl, consts []constDecl) ([]VariantSpec, error) {
	variants := make([]VariantSpec, 0, len(consts))
	for _, c := range consts {
		ann, err := s.annotation(c.dirs, ContextVariant)
		if err != nil {
			return nil, err
		}
		lit := DefaultLiteral(decl.name, c.name)
		if v, ok := ann.Get(KeywordString); ok {
			lit = v
		}
		variants = append(variants, VariantSpec{
			Name:     c.name,
			Kind:     VariantUnit,
			Literal:  lit,
			Affixes:  Affixes{Before: ann.Lookup(KeywordBefore), After: ann.Lookup(KeywordAfter)},
			Position: c.pos,
		})
	}
	return variants, nil
}

func (s *scanner) interfaceVariants(decl *typeDecl) ([]VariantSpec, error) {
	var variants []VariantSpec
	for _, v := range s.typeOrder {
		if v.dirs.variantOf != decl.name {
			continue
		}
		vs, err := s.variant(decl, v)
		if err != nil {
			return nil, err
		}
		variants = append(variants, *vs)
	}
	if len(variants) == 0 {
		return nil, NewGenerateError(ErrMsgEmptySum, s.fset.Position(decl.spec.Pos()), decl.name, nil)
	}
	return variants, nil
}

func (s *scanner) variant(owner, v *typeDecl) (*VariantSpec, error) {
	pos := s.fset.Position(v.spec.Pos())
	if v.spec.TypeParams != nil && len(v.spec.TypeParams.List) > 0 {
		return nil, NewGenerateError(ErrMsgGenericType, pos, v.name, nil)
	}
	ann, err := s.annotation(v.dirs, ContextVariant)
	if err != nil {
		return nil, err
	}
	spec := &VariantSpec{
		Name:     v.name,
		Affixes:  Affixes{Before: ann.Lookup(KeywordBefore), After: ann.Lookup(KeywordAfter)},
		Position: pos,
	}

	switch t := unparen(v.spec.Type).(type) {
	case *ast.StructType:
		fieldCount := 0
		for _, f := range t.Fields.List {
			fieldCount += max(1, len(f.Names))
		}
		switch {
		case fieldCount == 0:
			spec.Kind = VariantUnit
			spec.Literal = DefaultLiteral(owner.name, v.name)
			if lit, ok := ann.Get(KeywordString); ok {
				spec.Literal = lit
			}
			return spec, nil
		case fieldCount > 1:
			return nil, NewGenerateError(ErrMsgVariantTooManyFields, pos, v.name, nil)
		}
		f := t.Fields.List[0]
		spec.Field = embeddedName(f.Type)
		if len(f.Names) == 1 {
			spec.Field = f.Names[0].Name
		}
		if spec.Payload, err = s.typeRef(f.Type, v.file, pos, v.name); err != nil {
			return nil, err
		}
	case *ast.InterfaceType:
		return nil, NewGenerateError(ErrMsgVariantNamedUnsupport, pos, v.name, nil)
	default:
		if spec.Payload, err = s.typeRef(v.spec.Type, v.file, pos, v.name); err != nil {
			return nil, err
		}
	}

	spec.Kind = VariantPayload
	if err := rejectKeywords(ann, KeywordString); err != nil {
		return nil, err
	}
	return spec, nil
}

// typeRef resolves the parser expression for a field or payload type
func (s *scanner) typeRef(expr ast.Expr, file *ast.File, pos token.Position, item string) (TypeRef, error) {
	expr = unparen(expr)
	if err := s.checkSupported(expr, pos, item); err != nil {
		return TypeRef{}, err
	}
	parser, err := s.parserExpr(expr, pos, item)
	if err != nil {
		return TypeRef{}, err
	}
	ref := TypeRef{Expr: types.ExprString(expr), Parser: parser}
	ref.Imports = s.useImports(expr, file)
	return ref, nil
}

// parserExpr returns the expression building the parser of expr. Derived
// interfaces have no usable zero value, so they and every List nesting them
// are built explicitly; everything else goes through Of.
func (s *scanner) parserExpr(expr ast.Expr, pos token.Position, item string) (string, error) {
	expr = unparen(expr)
	ofExpr := s.parselyRef + ".Of[" + types.ExprString(expr) + "]()"

	switch t := expr.(type) {
	case *ast.Ident:
		if s.isDerivedInterface(t.Name) {
			return t.Name + "Parser()", nil
		}
		if d, ok := s.types[t.Name]; ok {
			if _, isIface := unparen(d.spec.Type).(*ast.InterfaceType); isIface {
				return "", NewGenerateError(ErrMsgUnsupportedFieldType, pos, item, nil)
			}
		}
	case *ast.IndexListExpr:
		if !s.isListType(t.X) || len(t.Indices) != 2 {
			break
		}
		elem, err := s.parserExpr(t.Indices[0], pos, item)
		if err != nil {
			return "", err
		}
		if elem != s.parselyRef+".Of["+types.ExprString(unparen(t.Indices[0]))+"]()" {
			return s.parselyRef + ".ListOf[" + types.ExprString(t.Indices[0]) + ", " +
				types.ExprString(t.Indices[1]) + "](" + elem + ")", nil
		}
	}
	return ofExpr, nil
}

// checkSupported rejects type expressions that cannot have a parser
func (s *scanner) checkSupported(expr ast.Expr, pos token.Position, item string) error {
	var bad bool
	ast.Inspect(expr, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.StarExpr, *ast.ArrayType, *ast.MapType, *ast.ChanType,
			*ast.FuncType, *ast.StructType, *ast.InterfaceType, *ast.Ellipsis:
			bad = true
			return false
		}
		return true
	})
	if bad {
		return NewGenerateError(ErrMsgUnsupportedFieldType, pos, item, nil)
	}
	return nil
}

func (s *scanner) isDerivedInterface(name string) bool {
	d, ok := s.types[name]
	if !ok || !d.dirs.derive {
		return false
	}
	_, isIface := unparen(d.spec.Type).(*ast.InterfaceType)
	return isIface
}

func (s *scanner) isListType(x ast.Expr) bool {
	sel, ok := x.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == s.parselyRef && sel.Sel.Name == "List"
}

// useImports records the imports referenced by expr and returns their paths
func (s *scanner) useImports(expr ast.Expr, file *ast.File) []string {
	var paths []string
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if pkg, ok := sel.X.(*ast.Ident); ok {
			if imp, ok := s.imports[file][pkg.Name]; ok {
				s.used[imp.Path] = imp
				paths = append(paths, imp.Path)
			}
		}
		return true
	})
	return lo.Uniq(paths)
}

// findParselyRef returns the identifier under which the package imports
// the parsely runtime.
func (s *scanner) findParselyRef() string {
	for _, f := range s.files {
		for name, imp := range s.imports[f] {
			if imp.Path == s.cfg.ImportPath {
				return name
			}
		}
	}
	return DefaultImportName
}

// fileImports maps the identifier each import is referred by to its spec
func fileImports(f *ast.File) map[string]ImportSpec {
	out := make(map[string]ImportSpec)
	for _, is := range f.Imports {
		p, err := strconv.Unquote(is.Path.Value)
		if err != nil {
			continue
		}
		spec := ImportSpec{Path: p}
		name := guessPackageName(p)
		if is.Name != nil {
			if is.Name.Name == "_" || is.Name.Name == "." {
				continue
			}
			spec.Name = is.Name.Name
			name = is.Name.Name
		}
		out[name] = spec
	}
	return out
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// guessPackageName derives the package name from an import path the way
// the go tool's conventions usually make it: gopkg.in/yaml.v3 -> yaml,
// github.com/x/go-foo/v2 -> foo.
func guessPackageName(importPath string) string {
	parts := strings.Split(importPath, "/")
	name := parts[len(parts)-1]
	if majorVersion.MatchString(name) && len(parts) > 1 {
		name = parts[len(parts)-2]
	}
	if i := strings.Index(name, ".v"); i > 0 {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")
	return strings.ReplaceAll(name, "-", "")
}

func rejectKeywords(ann *Annotation, keywords ...string) error {
	for _, k := range keywords {
		if e, ok := ann.Entry(k); ok {
			return NewAnnotationError(ErrMsgKeywordNotApplicable, e.Position, k)
		}
	}
	return nil
}

func unparen(e ast.Expr) ast.Expr {
	for {
		p, ok := e.(*ast.ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}

func identName(e ast.Expr) string {
	if id, ok := unparen(e).(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

// conversionTarget returns T for a constant initialised as T(x)
func conversionTarget(e ast.Expr) string {
	if call, ok := unparen(e).(*ast.CallExpr); ok && len(call.Args) == 1 {
		return identName(call.Fun)
	}
	return ""
}

// embeddedName returns the field name of an embedded field
func embeddedName(e ast.Expr) string {
	switch t := unparen(e).(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	}
	return ""
}
