package provider

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"

	"github.com/broady/stubkit/stubgen/model"
)

// DirectivePrefix starts every stubgen directive comment.
//
// Directives are line comments directly above a type declaration:
//
//	//stubgen:stub
//	//stubgen:stub name=FakeStore&strict=true&reserved=Reset
//
// The stub directive requests a stub of the declared type. Its optional
// argument uses the query syntax of ParseStubRef.
const DirectivePrefix = "//stubgen:"

// DirectiveKind is the type of a directive.
type DirectiveKind string

const (
	DirectiveStub DirectiveKind = "stub"
)

// Directive is a parsed stubgen directive.
type Directive struct {
	Kind     DirectiveKind
	TypeName string         // the declared type the directive precedes
	Options  string         // raw argument, in query syntax
	Pos      token.Position // source location
}

// Stub returns the stub request of a stub directive.
func (d Directive) Stub() (model.StubRequest, error) {
	ref := d.TypeName
	if d.Options != "" {
		ref += "?" + d.Options
	}
	stub, err := ParseStubRef(ref)
	if err != nil {
		return model.StubRequest{}, errors.Wrapf(err, "%s", d.Pos)
	}
	return stub, nil
}

// ScanDirectives returns the directives of every file in pkgs, in file
// and declaration order. Packages must be loaded with syntax.
func ScanDirectives(pkgs []*packages.Package) ([]Directive, error) {
	var out []Directive
	for _, pkg := range pkgs {
		for _, f := range pkg.Syntax {
			directives, err := parseFile(pkg.Fset, f)
			if err != nil {
				return nil, err
			}
			out = append(out, directives...)
		}
	}
	return out, nil
}

// parseFile extracts directives from a single file.
func parseFile(fset *token.FileSet, f *ast.File) ([]Directive, error) {
	var directives []Directive

	// Directives keyed by the end of their comment group, matched below to
	// the type declaration that the group documents.
	type pending struct {
		kind    DirectiveKind
		options string
		pos     token.Position
	}
	commentToDirective := make(map[token.Pos]pending)

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, DirectivePrefix) {
				continue
			}

			text := strings.TrimPrefix(c.Text, DirectivePrefix)
			parts := strings.Fields(text)
			if len(parts) == 0 {
				continue
			}

			pos := fset.Position(c.Pos())
			switch DirectiveKind(parts[0]) {
			case DirectiveStub:
				if len(parts) > 2 {
					return nil, errors.Newf("%s: %sstub takes at most one argument", pos, DirectivePrefix)
				}
				p := pending{kind: DirectiveStub, pos: pos}
				if len(parts) == 2 {
					p.options = parts[1]
				}
				commentToDirective[cg.End()] = p
			default:
				return nil, errors.Newf("%s: unknown directive %s%s", pos, DirectivePrefix, parts[0])
			}
		}
	}

	// Match directives to type declarations. A lone type is documented by
	// its declaration; grouped types carry their own doc comments.
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			if doc == nil {
				continue
			}
			if p, ok := commentToDirective[doc.End()]; ok {
				directives = append(directives, Directive{
					Kind:     p.kind,
					TypeName: ts.Name.Name,
					Options:  p.options,
					Pos:      p.pos,
				})
				delete(commentToDirective, doc.End())
			}
		}
	}

	// Check for unmatched directives
	for _, p := range commentToDirective {
		return nil, errors.Newf("%s: %s%s directive must be followed by a type declaration", p.pos, DirectivePrefix, p.kind)
	}

	return directives, nil
}
