package dispatcher

import "strings"

// Mode is the delivery strategy for a job
type Mode string

const (
	// ModeRaw streams the file bytes to the spooler unchanged
	ModeRaw Mode = "raw"
	// ModeExternal hands the file to the external PDF helper
	ModeExternal Mode = "external"
)

// DefaultPDFExtension selects the external helper
const DefaultPDFExtension = "pdf"

// ModePolicy decides which sender handles an extension
type ModePolicy struct {
	// PDFExtension is the extension routed to the external helper
	PDFExtension string
	// CaseSensitive compares extensions byte for byte when true
	CaseSensitive bool
}

// DefaultModePolicy routes any-case "pdf" to the external helper
func DefaultModePolicy() ModePolicy {
	return ModePolicy{PDFExtension: DefaultPDFExtension}
}

// Select returns ModeExternal for the PDF extension and ModeRaw for
// everything else, including the empty extension.
func (p ModePolicy) Select(extension string) Mode {
	pdf := p.PDFExtension
	if pdf == "" {
		pdf = DefaultPDFExtension
	}
	if extension == "" {
		return ModeRaw
	}
	if p.CaseSensitive {
		if extension == pdf {
			return ModeExternal
		}
		return ModeRaw
	}
	if strings.EqualFold(extension, pdf) {
		return ModeExternal
	}
	return ModeRaw
}
