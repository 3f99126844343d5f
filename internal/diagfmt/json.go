package diagfmt

import (
	"encoding/json"
	"io"

	"zenc/internal/diag"
)

type jsonNote struct {
	Line    uint32 `json:"line"`
	Col     uint32 `json:"col"`
	Message string `json:"message"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Line     uint32     `json:"line"`
	Col      uint32     `json:"col"`
	Message  string     `json:"message"`
	Notes    []jsonNote `json:"notes,omitempty"`
	Hints    []string   `json:"hints,omitempty"`
}

// JSON writes items as a JSON array of diagnostics.
func JSON(w io.Writer, items []*diag.Diagnostic) error {
	out := make([]jsonDiagnostic, 0, len(items))
	for _, d := range items {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Line:     d.Primary.Line,
			Col:      d.Primary.Col,
			Message:  d.Message,
			Hints:    d.Hints,
		}
		for _, n := range d.Notes {
			jd.Notes = append(jd.Notes, jsonNote{Line: n.Pos.Line, Col: n.Pos.Col, Message: n.Msg})
		}
		out = append(out, jd)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
