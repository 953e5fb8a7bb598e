package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/swisseph-wasm/errors"
)

// Signature is the expected shape of one native export. Params and Results
// use WIT types for readability; pointers are written as string (char*) or
// list<T> (T*), both of which lower to a single i32.
type Signature struct {
	Name    string
	Params  []wit.Type
	Results []wit.Type
}

var funcPattern = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)\s*:\s*func\s*\(([^)]*)\)(?:\s*->\s*([^;]+))?`)

// ParseSignatures reads a signature table in WIT function syntax:
//
//	swe_julday: func(year: s32, month: s32, day: s32, hour: f64, gregflag: s32) -> f64;
//
// Lines starting with // are comments.
func ParseSignatures(src string) ([]Signature, error) {
	var sigs []Signature
	seen := make(map[string]bool)

	for lineNo, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		match := funcPattern.FindStringSubmatch(line)
		if match == nil {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Value(line).
				Detail("line %d: expected name: func(...)", lineNo+1).
				Build()
		}

		sig := Signature{Name: match[1]}
		if seen[sig.Name] {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Func(sig.Name).
				Detail("line %d: duplicate signature", lineNo+1).
				Build()
		}
		seen[sig.Name] = true

		for _, p := range splitParams(match[2]) {
			typStr := p
			if idx := strings.Index(p, ":"); idx != -1 {
				typStr = p[idx+1:]
			}
			t, err := parseWitType(typStr)
			if err != nil {
				return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
					Func(sig.Name).
					Cause(err).
					Detail("line %d: param type %s", lineNo+1, strings.TrimSpace(typStr)).
					Build()
			}
			sig.Params = append(sig.Params, t)
		}

		if res := strings.TrimSpace(match[3]); res != "" && res != "()" {
			t, err := parseWitType(res)
			if err != nil {
				return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
					Func(sig.Name).
					Cause(err).
					Detail("line %d: result type %s", lineNo+1, res).
					Build()
			}
			sig.Results = []wit.Type{t}
		}

		sigs = append(sigs, sig)
	}

	if len(sigs) == 0 {
		return nil, errors.InvalidInput(errors.PhaseParse, "no functions found in signature table")
	}
	return sigs, nil
}

// splitParams splits a parameter list, keeping list<...> intact.
func splitParams(s string) []string {
	var result []string
	var current strings.Builder
	depth := 0

	for _, ch := range s {
		switch ch {
		case '<':
			depth++
			current.WriteRune(ch)
		case '>':
			depth--
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				if str := strings.TrimSpace(current.String()); str != "" {
					result = append(result, str)
				}
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}

	if str := strings.TrimSpace(current.String()); str != "" {
		result = append(result, str)
	}
	return result
}

func parseWitType(s string) (wit.Type, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "list<") && strings.HasSuffix(s, ">") {
		elem, err := parseWitType(s[len("list<") : len(s)-1])
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.List{Type: elem}}, nil
	}
	return wit.ParseType(s)
}

// CoreType returns the wasm32 value type a WIT type lowers to at the C ABI.
func CoreType(t wit.Type) (api.ValueType, error) {
	switch t := t.(type) {
	case wit.Bool, wit.U8, wit.S8, wit.U16, wit.S16, wit.U32, wit.S32, wit.Char:
		return api.ValueTypeI32, nil
	case wit.U64, wit.S64:
		return api.ValueTypeI64, nil
	case wit.F32:
		return api.ValueTypeF32, nil
	case wit.F64:
		return api.ValueTypeF64, nil
	case wit.String:
		return api.ValueTypeI32, nil
	case *wit.TypeDef:
		if _, ok := t.Kind.(*wit.List); ok {
			return api.ValueTypeI32, nil
		}
	}
	return 0, errors.New(errors.PhaseValidate, errors.KindUnsupported).
		Value(t).
		Detail("no C ABI lowering for %T", t).
		Build()
}

// CoreParams lowers the parameter list.
func (s Signature) CoreParams() ([]api.ValueType, error) {
	return coreTypes(s.Params)
}

// CoreResults lowers the result list.
func (s Signature) CoreResults() ([]api.ValueType, error) {
	return coreTypes(s.Results)
}

func coreTypes(ts []wit.Type) ([]api.ValueType, error) {
	out := make([]api.ValueType, 0, len(ts))
	for _, t := range ts {
		vt, err := CoreType(t)
		if err != nil {
			return nil, err
		}
		out = append(out, vt)
	}
	return out, nil
}

// ValidateExports checks every signature against the compiled module's
// exports and reports all problems at once.
func ValidateExports(compiled wazero.CompiledModule, sigs []Signature) error {
	exported := compiled.ExportedFunctions()
	problems := make(map[string]string)

	for _, sig := range sigs {
		def, ok := exported[sig.Name]
		if !ok {
			problems[sig.Name] = "missing"
			continue
		}
		wantParams, err := sig.CoreParams()
		if err != nil {
			return err
		}
		wantResults, err := sig.CoreResults()
		if err != nil {
			return err
		}
		if !sameTypes(def.ParamTypes(), wantParams) || !sameTypes(def.ResultTypes(), wantResults) {
			problems[sig.Name] = fmt.Sprintf("has %s want %s",
				formatCore(def.ParamTypes(), def.ResultTypes()),
				formatCore(wantParams, wantResults))
		}
	}

	if len(problems) > 0 {
		return errors.New(errors.PhaseValidate, errors.KindSignature).
			Detail("%d export(s) do not match", len(problems)).
			Cause(errors.NewExportsError(problems)).
			Build()
	}
	return nil
}

func sameTypes(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatCore(params, results []api.ValueType) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(api.ValueTypeName(p))
	}
	b.WriteByte(')')
	if len(results) > 0 {
		b.WriteString(" -> ")
		b.WriteString(api.ValueTypeName(results[0]))
	}
	return b.String()
}
