package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/njchilds90/solvecheck/classify"
	"github.com/njchilds90/solvecheck/solution"
	"github.com/njchilds90/solvecheck/symbolic"
	"github.com/njchilds90/solvecheck/verify"
)

// ============================================================
// Tool interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// ToolResponse carries a tool result. Error is set only when the tool
// could not run; an incorrect claim is a successful call whose Result says
// so. Kind classifies Error when it comes from the expression engine.
type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
	Kind   string      `json:"kind,omitempty"`
}

type params map[string]interface{}

func (p params) str(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("missing param: %s", key)
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("param %s must be a string", key)
}

func (p params) optStr(key, def string) (string, error) {
	if _, ok := p[key]; !ok {
		return def, nil
	}
	return p.str(key)
}

func (p params) strs(key string) ([]string, error) {
	v, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("missing param: %s", key)
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("param %s must be array", key)
	}
	result := make([]string, len(raw))
	for i, r := range raw {
		s, err := params{"v": r}.str("v")
		if err != nil {
			return nil, fmt.Errorf("param %s[%d] must be string", key, i)
		}
		result[i] = s
	}
	return result, nil
}

func (p params) strMap(key string) (map[string]string, error) {
	v, ok := p[key]
	if !ok {
		return map[string]string{}, nil
	}
	raw, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("param %s must be object", key)
	}
	out := make(map[string]string, len(raw))
	for name, val := range raw {
		s, err := params{"v": val}.str("v")
		if err != nil {
			return nil, fmt.Errorf("param %s.%s must be string or number", key, name)
		}
		out[name] = s
	}
	return out, nil
}

func failed(err error) ToolResponse {
	resp := ToolResponse{Error: err.Error()}
	if k := symbolic.KindOf(err); k != 0 {
		resp.Kind = k.String()
	}
	return resp
}

func respondExpr(e symbolic.Expr) ToolResponse {
	return ToolResponse{Result: e.String(), String: e.String(), LaTeX: e.LaTeX()}
}

func respondResult(r verify.Result) ToolResponse {
	resp := ToolResponse{Result: r, String: r.Actual, LaTeX: r.ActualLaTeX}
	if r.Cause != nil {
		resp.Kind = r.Kind().String()
	}
	if !r.Verified {
		resp.Error = r.Error
	}
	return resp
}

// HandleToolCall dispatches one tool call. Unknown tools and bad params are
// reported in the response, never as a panic.
func (a *Analyzer) HandleToolCall(ctx context.Context, req ToolRequest) ToolResponse {
	p := params(req.Params)
	v := a.verifier

	switch req.Tool {
	case "normalize":
		text, err := p.str("text")
		if err != nil {
			return failed(err)
		}
		out, ok := symbolic.Normalize(text)
		if !ok {
			return failed(&symbolic.Error{Kind: symbolic.ParseFailure, Op: "normalize", Msg: "empty input"})
		}
		return ToolResponse{Result: out, String: out}

	case "parse":
		text, err := p.str("text")
		if err != nil {
			return failed(err)
		}
		var extra []string
		if _, ok := p["symbols"]; ok {
			if extra, err = p.strs("symbols"); err != nil {
				return failed(err)
			}
		}
		e, err := v.Parse(text, extra...)
		if err != nil {
			return failed(err)
		}
		return respondExpr(e)

	case "simplify":
		expr, err := p.str("expr")
		if err != nil {
			return failed(err)
		}
		r := v.Simplify(expr)
		resp := respondResult(r)
		resp.String = r.Simplified
		return resp

	case "evaluate":
		expr, err := p.str("expr")
		if err != nil {
			return failed(err)
		}
		vars, err := p.strMap("vars")
		if err != nil {
			return failed(err)
		}
		return respondResult(v.Evaluate(expr, vars))

	case "verify_arithmetic":
		expr, err := p.str("expression")
		if err != nil {
			return failed(err)
		}
		claimed, err := p.str("claimed")
		if err != nil {
			return failed(err)
		}
		return respondResult(v.Arithmetic(expr, claimed))

	case "verify_equation":
		eq, err := p.str("equation")
		if err != nil {
			return failed(err)
		}
		name, err := p.optStr("var", "x")
		if err != nil {
			return failed(err)
		}
		claimed, err := p.str("claimed")
		if err != nil {
			return failed(err)
		}
		return respondResult(v.Equation(eq, name, claimed))

	case "verify_derivative", "verify_integral":
		fn, err := p.str("function")
		if err != nil {
			return failed(err)
		}
		name, err := p.optStr("var", "x")
		if err != nil {
			return failed(err)
		}
		claimed, err := p.str("claimed")
		if err != nil {
			return failed(err)
		}
		if req.Tool == "verify_derivative" {
			return respondResult(v.Derivative(fn, name, claimed))
		}
		return respondResult(v.Integral(fn, name, claimed))

	case "check_quadratic":
		coeffs := make([]string, 3)
		for i, key := range []string{"a", "b", "c"} {
			s, err := p.str(key)
			if err != nil {
				return failed(err)
			}
			coeffs[i] = s
		}
		claims, err := p.strs("claimed")
		if err != nil {
			return failed(err)
		}
		return respondResult(v.Quadratic(coeffs[0], coeffs[1], coeffs[2], claims))

	case "scan":
		text, err := p.str("text")
		if err != nil {
			return failed(err)
		}
		rep, err := a.scanner.Scan(ctx, text)
		if err != nil {
			return failed(err)
		}
		return ToolResponse{Result: rep, String: rep.Render()}

	case "classify":
		text, err := p.str("text")
		if err != nil {
			return failed(err)
		}
		hint, err := p.optStr("hint", string(classify.Auto))
		if err != nil {
			return failed(err)
		}
		d := classify.Decide(text, classify.ProblemType(hint))
		return ToolResponse{Result: d, String: string(d.Type)}

	case "parse_solution":
		text, err := p.str("text")
		if err != nil {
			return failed(err)
		}
		pt, err := p.optStr("problem_type", string(classify.General))
		if err != nil {
			return failed(err)
		}
		doc := solution.Parse(text, classify.ProblemType(pt))
		return ToolResponse{Result: doc, String: doc.Explanation}

	case "analyze":
		problem, err := p.str("problem_text")
		if err != nil {
			return failed(err)
		}
		sol, err := p.optStr("solution_text", "")
		if err != nil {
			return failed(err)
		}
		hint, err := p.optStr("hint", string(classify.Auto))
		if err != nil {
			return failed(err)
		}
		out, err := a.Analyze(ctx, Request{ProblemText: problem, SolutionText: sol, Hint: classify.ProblemType(hint)})
		if err != nil {
			return failed(err)
		}
		return ToolResponse{Result: out, String: out.ReportText}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	tools := []map[string]interface{}{
		ts("normalize", "Rewrite OCR or handwritten-style math text (x², √, ×, ÷, π, full-width digits) into parser syntax", []string{"text"}, map[string]string{"text": "string"}),
		ts("parse", "Parse math text into a canonical expression. Optional symbols (string[]) are kept as multi-letter names", []string{"text"}, map[string]string{"text": "string", "symbols": "array"}),
		ts("simplify", "Simplify an expression and report whether it changed", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("evaluate", "Substitute vars (name -> value) and evaluate", []string{"expr"}, map[string]string{"expr": "string", "vars": "object"}),
		ts("verify_arithmetic", "Check that expression evaluates to claimed", []string{"expression", "claimed"}, map[string]string{"expression": "string", "claimed": "string"}),
		ts("verify_equation", "Check that claimed solves equation (one '=') for var (default x)", []string{"equation", "claimed"}, map[string]string{"equation": "string", "var": "string", "claimed": "string"}),
		ts("verify_derivative", "Check claimed against d(function)/d(var)", []string{"function", "claimed"}, map[string]string{"function": "string", "var": "string", "claimed": "string"}),
		ts("verify_integral", "Check claimed antiderivative of function; any constant of integration is accepted", []string{"function", "claimed"}, map[string]string{"function": "string", "var": "string", "claimed": "string"}),
		ts("check_quadratic", "Compute roots of a*x**2 + b*x + c and check each claimed root", []string{"a", "b", "c", "claimed"}, map[string]string{"a": "string", "b": "string", "c": "string", "claimed": "array"}),
		ts("scan", "Find and verify calculations in free solution text; returns a Markdown report", []string{"text"}, map[string]string{"text": "string"}),
		ts("classify", "Tag problem text as math, physics, chemistry, word_problem or general", []string{"text"}, map[string]string{"text": "string", "hint": "string"}),
		ts("parse_solution", "Split solution text into sections and numbered steps", []string{"text"}, map[string]string{"text": "string", "problem_type": "string"}),
		ts("analyze", "Classify, parse the solution and scan it in one call", []string{"problem_text"}, map[string]string{"problem_text": "string", "solution_text": "string", "hint": "string"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

// ToolNames lists the tools MCPToolSpec describes, sorted.
func ToolNames() []string {
	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	_ = json.Unmarshal([]byte(MCPToolSpec()), &spec)
	names := make([]string, len(spec.Tools))
	for i, t := range spec.Tools {
		names[i] = t.Name
	}
	sort.Strings(names)
	return names
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
