package compiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/domain"
)

// Supported definition formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var (
	// ErrUnsupportedFormat is returned for formats other than YAML and JSON.
	ErrUnsupportedFormat = errors.New("unsupported definition format")

	// ErrMalformed wraps every structural problem found while decoding.
	ErrMalformed = errors.New("malformed machine definition")
)

var textUnmarshaler = reflect.TypeOf((*interface{ UnmarshalText([]byte) error })(nil)).Elem()

// Parser converts raw definition documents into domain definitions.
// It only checks structure; semantic validation belongs to package dsl.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads a definition from disk. Files ending in .json are read as
// JSON, anything else as YAML.
func (p *Parser) ParseFile(path string) (*domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine definition: %w", err)
	}

	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}

	def, err := p.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// Parse decodes data in the given format ("yaml" when empty).
func (p *Parser) Parse(data []byte, format string) (*domain.Definition, error) {
	var raw any
	switch strings.ToLower(format) {
	case "", FormatYAML, "yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		raw = plain(&node)
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document must be a mapping", ErrMalformed)
	}

	var file dto.MachineFile
	if err := decode(doc, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return toDefinition(&file)
}

func decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			scalarToText,
			mapstructure.TextUnmarshallerHookFunc(),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// scalarToText turns numbers into strings when the target decodes from text,
// so a JSON `0` becomes the symbol Zero instead of the integer 0.
func scalarToText(from reflect.Type, to reflect.Type, data any) (any, error) {
	if !reflect.PointerTo(to).Implements(textUnmarshaler) {
		return data, nil
	}
	switch v := data.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	}
	return data, nil
}

// plain converts a YAML node tree into maps, slices and strings. Scalars keep
// their source text so that tapes like 000001 are not read as octal numbers.
func plain(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return plain(n.Content[0])
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			out[n.Content[i].Value] = plain(n.Content[i+1])
		}
		return out
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			out = append(out, plain(c))
		}
		return out
	case yaml.AliasNode:
		return plain(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err == nil {
				return b
			}
		}
		return n.Value
	}
	return nil
}

func toDefinition(file *dto.MachineFile) (*domain.Definition, error) {
	def := &domain.Definition{
		Name:        file.Name,
		Description: file.Description,
		Tape:        file.Tape,
		Expect:      file.Expect,
		Hints:       file.Hints,
		Solution:    file.Solution,
	}

	for i, item := range file.States {
		switch v := item.(type) {
		case string:
			def.States = append(def.States, domain.StateDecl{Name: v})
		case map[string]any:
			var entry dto.StateEntry
			if err := decode(v, &entry); err != nil {
				return nil, fmt.Errorf("%w: state %d: %v", ErrMalformed, i, err)
			}
			if entry.Name == "" {
				return nil, fmt.Errorf("%w: state %d has no name", ErrMalformed, i)
			}
			def.States = append(def.States, domain.StateDecl(entry))
		default:
			return nil, fmt.Errorf("%w: state %d: invalid type %T", ErrMalformed, i, v)
		}
	}

	for i, entry := range file.Rules {
		r, err := toRule(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrMalformed, i, err)
		}
		def.Rules = append(def.Rules, r)
	}
	return def, nil
}

func toRule(e dto.RuleEntry) (domain.Rule, error) {
	from := first(e.From, e.If)
	to := first(e.To, e.GoTo)
	write := e.Write
	if write == nil {
		write = e.Replace
	}

	switch {
	case from == "":
		return domain.Rule{}, errors.New("missing from state")
	case to == "":
		return domain.Rule{}, errors.New("missing to state")
	case e.Read == nil:
		return domain.Rule{}, errors.New("missing read symbol")
	case write == nil:
		return domain.Rule{}, errors.New("missing write symbol")
	case e.Move == nil:
		return domain.Rule{}, errors.New("missing move")
	}

	return domain.Rule{
		From:  domain.State(from),
		Read:  *e.Read,
		To:    domain.State(to),
		Write: *write,
		Move:  *e.Move,
	}, nil
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
