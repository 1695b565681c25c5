package provider

import (
	"bytes"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"gopkg.in/yaml.v3"

	"github.com/broady/stubkit/stubgen/model"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(false)
}

// ErrInvalidManifest is returned when a manifest cannot be decoded or fails
// validation.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest is the on-disk form of a generation request. Stubs may be
// listed in full or as references (see ParseStubRef).
type Manifest struct {
	Contracts []model.ContractDescriptor `json:"contracts" yaml:"contracts" validate:"dive"`
	Stubs     []model.StubRequest        `json:"stubs" yaml:"stubs" validate:"dive"`
	Refs      []string                   `json:"refs" yaml:"refs" validate:"dive,required"`
}

// Request returns the generation request described by m: Stubs followed by
// the stubs parsed from Refs.
func (m *Manifest) Request() (*model.Request, error) {
	req := &model.Request{
		Contracts: m.Contracts,
		Stubs:     append([]model.StubRequest(nil), m.Stubs...),
	}
	for _, ref := range m.Refs {
		stub, err := ParseStubRef(ref)
		if err != nil {
			return nil, err
		}
		req.Stubs = append(req.Stubs, stub)
	}
	return req, nil
}

// LoadManifest reads a YAML or JSON manifest from path. The format is
// chosen by extension; anything other than .json is read as YAML.
func LoadManifest(path string) (*model.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}
	req, err := ParseManifest(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}
	return req, nil
}

// ParseManifest decodes and validates a manifest. Unknown fields are
// rejected in both formats.
func ParseManifest(data []byte, isJSON bool) (*model.Request, error) {
	var m Manifest
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decoding JSON"), ErrInvalidManifest)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decoding YAML"), ErrInvalidManifest)
		}
	}

	if err := validate.Struct(&m); err != nil {
		return nil, validationError(err)
	}
	return m.Request()
}

// validationError converts validator errors into a single error listing
// every failing field.
func validationError(err error) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return errors.Mark(errors.Wrap(err, "validating manifest"), ErrInvalidManifest)
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Namespace()+": "+formatValidationError(ve))
	}
	return errors.WithHint(
		errors.Mark(errors.Newf("manifest is invalid: %s", strings.Join(messages, "; ")), ErrInvalidManifest),
		"every contract, member and stub needs a name, and every stub at least one target")
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return "must have at least " + ve.Param() + " entries"
	default:
		return "failed " + ve.Tag() + " validation"
	}
}

// stubRefOptions are the query options of a stub reference.
type stubRefOptions struct {
	Name       string   `schema:"name"`
	Strict     bool     `schema:"strict"`
	Reserved   []string `schema:"reserved"`
	TypeParams []string `schema:"typeParam"`
}

// ParseStubRef parses a compact stub reference of the form
//
//	Target[,Target...][?name=Name&strict=true&reserved=A&reserved=B&typeParam=T]
//
// When name is omitted the stub is named after the first target: "Fake"
// followed by the target with a leading interface "I" removed.
func ParseStubRef(ref string) (model.StubRequest, error) {
	targets, query, _ := strings.Cut(strings.TrimSpace(ref), "?")

	values, err := url.ParseQuery(query)
	if err != nil {
		return model.StubRequest{}, errors.Mark(errors.Wrapf(err, "stub reference %q", ref), ErrInvalidManifest)
	}
	var opts stubRefOptions
	if err := schemaDecoder.Decode(&opts, values); err != nil {
		return model.StubRequest{}, errors.WithHint(
			errors.Mark(errors.Wrapf(err, "stub reference %q", ref), ErrInvalidManifest),
			"supported options are name, strict, reserved and typeParam")
	}

	stub := model.StubRequest{
		Name:     opts.Name,
		Strict:   opts.Strict,
		Reserved: opts.Reserved,
	}
	for _, id := range strings.Split(targets, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		stub.Targets = append(stub.Targets, model.ContractRef{ID: id})
	}
	if len(stub.Targets) == 0 {
		return model.StubRequest{}, errors.Mark(errors.Newf("stub reference %q has no targets", ref), ErrInvalidManifest)
	}
	for _, tp := range opts.TypeParams {
		stub.TypeParams = append(stub.TypeParams, model.TypeParam{Name: tp})
	}
	if stub.Name == "" {
		stub.Name = DefaultStubName(stub.Targets[0].ID)
	}
	return stub, nil
}

// DefaultStubName returns the stub name used for a contract when none is
// given: "IRepository" and "Repository" both become "FakeRepository".
func DefaultStubName(contract string) string {
	runes := []rune(contract)
	if len(runes) > 1 && runes[0] == 'I' && unicode.IsUpper(runes[1]) {
		contract = string(runes[1:])
	}
	return "Fake" + contract
}
