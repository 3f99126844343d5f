package driver

import (
	"zenc/internal/diag"
	"zenc/internal/source"
)

func toCached(d *diag.Diagnostic) cachedDiagnostic {
	return cachedDiagnostic{
		Code:    uint16(d.Code),
		Line:    d.Primary.Line,
		Col:     d.Primary.Col,
		Message: d.Message,
	}
}

func fromCached(c cachedDiagnostic) *diag.Diagnostic {
	return &diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.Code(c.Code),
		Message:  c.Message,
		Primary:  source.Pos{Line: c.Line, Col: c.Col},
	}
}
