// ABOUTME: Code analysis tools: structural complexity metrics and pattern counts.
// ABOUTME: Complexity parses Go source; pattern counts are language-agnostic heuristics.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"regexp"
	"strings"

	"github.com/beaconlabs/beacon-gateway/internal/capability"
)

// codeHandlers implements the code analysis tools.
type codeHandlers struct {
	logger *slog.Logger
}

// CodeSources returns the code-analysis capability sources.
func CodeSources(logger *slog.Logger) []capability.Source {
	h := &codeHandlers{logger: logger.With("tool", "code-analysis")}

	return []capability.Source{
		{
			Name: "code_complexity",
			Build: func() (capability.Descriptor, capability.Invoker, error) {
				desc := capability.Descriptor{
					Name:        "code_complexity",
					Category:    capability.CategoryCodeAnalysis,
					Description: "Analyze structural complexity of Go source code",
					InputSchema: `{"type":"object","properties":{"code":{"type":"string"}},"required":["code"]}`,
				}
				return desc, capability.InvokerFunc(h.Complexity), nil
			},
		},
		{
			Name: "code_patterns",
			Build: func() (capability.Descriptor, capability.Invoker, error) {
				desc := capability.Descriptor{
					Name:        "code_patterns",
					Category:    capability.CategoryCodeAnalysis,
					Description: "Count common code patterns and potential issues",
					InputSchema: `{"type":"object","properties":{"code":{"type":"string"}},"required":["code"]}`,
				}
				return desc, capability.InvokerFunc(h.Patterns), nil
			},
		},
	}
}

type codeInput struct {
	Code string `json:"code"`
}

// complexityMetrics are the structural metrics for one source unit.
type complexityMetrics struct {
	NumFunctions    int      `json:"num_functions"`
	NumTypes        int      `json:"num_types"`
	LinesOfCode     int      `json:"lines_of_code"`
	ComplexityScore int      `json:"complexity_score"`
	Imports         []string `json:"imports"`
	FunctionNames   []string `json:"function_names"`
	TypeNames       []string `json:"type_names"`
}

// Complexity parses the source and reports structural metrics. Sources
// without a package clause are wrapped so snippets parse too.
func (h *codeHandlers) Complexity(_ context.Context, _ string, payload json.RawMessage) (json.RawMessage, error) {
	var in codeInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	if in.Code == "" {
		return nil, fmt.Errorf("code is required")
	}

	src := in.Code
	if !strings.Contains(src, "package ") {
		src = "package snippet\n\n" + src
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "input.go", src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing code: %w", err)
	}

	metrics := complexityMetrics{
		LinesOfCode:   len(strings.Split(in.Code, "\n")),
		Imports:       []string{},
		FunctionNames: []string{},
		TypeNames:     []string{},
	}

	for _, imp := range file.Imports {
		metrics.Imports = append(metrics.Imports, strings.Trim(imp.Path.Value, `"`))
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.FuncDecl:
			metrics.NumFunctions++
			metrics.FunctionNames = append(metrics.FunctionNames, node.Name.Name)
		case *ast.TypeSpec:
			metrics.NumTypes++
			metrics.TypeNames = append(metrics.TypeNames, node.Name.Name)
		case *ast.IfStmt, *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt,
			*ast.TypeSwitchStmt, *ast.SelectStmt, *ast.CaseClause:
			metrics.ComplexityScore++
		}
		return true
	})

	h.logger.Debug("complexity analyzed",
		"functions", metrics.NumFunctions,
		"types", metrics.NumTypes,
		"score", metrics.ComplexityScore,
	)

	return json.Marshal(metrics)
}

// patternCounters are regex heuristics over arbitrary source text.
var patternCounters = []struct {
	name string
	re   *regexp.Regexp
}{
	{"error_handling", regexp.MustCompile(`if err != nil|errors\.|\brecover\(`)},
	{"concurrency", regexp.MustCompile(`\bgo func\b|\bchan\b|sync\.|<-`)},
	{"comments", regexp.MustCompile(`(?m)^\s*//`)},
	{"todo_comments", regexp.MustCompile(`//\s*(TODO|FIXME)`)},
	{"magic_numbers", regexp.MustCompile(`\b\d{2,}\b`)},
	{"logging", regexp.MustCompile(`slog\.|log\.|logger\.`)},
}

// Patterns counts occurrences of common code patterns in the source text.
func (h *codeHandlers) Patterns(_ context.Context, _ string, payload json.RawMessage) (json.RawMessage, error) {
	var in codeInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	if in.Code == "" {
		return nil, fmt.Errorf("code is required")
	}

	counts := make(map[string]int, len(patternCounters))
	for _, pc := range patternCounters {
		counts[pc.name] = len(pc.re.FindAllStringIndex(in.Code, -1))
	}

	return json.Marshal(map[string]any{"patterns": counts})
}
