package domain

import (
	"fmt"
	"strings"
)

// DiagnosticCode classifies a scan anomaly.
type DiagnosticCode string

const (
	// CodeUnexpectedToken reports a token that does not fit the current scanner state.
	CodeUnexpectedToken DiagnosticCode = "unexpected_token"
	// CodeMultipleInheritance reports a class extending more than one type.
	CodeMultipleInheritance DiagnosticCode = "multiple_inheritance"
	// CodeNoDeclarations reports a source file without any class or interface.
	CodeNoDeclarations DiagnosticCode = "no_declarations"
	// CodeMultipleDefinitions reports a file declaring more than one type.
	CodeMultipleDefinitions DiagnosticCode = "multiple_definitions"
	// CodeDuplicateInFile reports a type declared twice in the same file.
	CodeDuplicateInFile DiagnosticCode = "duplicate_in_file"
	// CodeAmbiguousName reports a type declared in more than one file.
	CodeAmbiguousName DiagnosticCode = "ambiguous_name"
	// CodeFilenameMismatch reports a class whose file is not named after it.
	CodeFilenameMismatch DiagnosticCode = "filename_mismatch"
	// CodeMissingSuperclass reports a class without a superclass in a folder that requires one.
	CodeMissingSuperclass DiagnosticCode = "missing_superclass"
	// CodeMissingCommentBlock reports a file that does not start with a doc comment.
	CodeMissingCommentBlock DiagnosticCode = "missing_comment_block"
	// CodeUnexpectedExtension reports a file with an extension that is not tolerated.
	CodeUnexpectedExtension DiagnosticCode = "unexpected_extension"
	// CodeInvalidSetting reports an unknown key in an override file.
	CodeInvalidSetting DiagnosticCode = "invalid_setting"
	// CodeDeprecatedOverride reports a legacy override file name.
	CodeDeprecatedOverride DiagnosticCode = "deprecated_override"
	// CodeUnreadable reports a file or folder that could not be read.
	CodeUnreadable DiagnosticCode = "unreadable"
	// CodeMissingSupertype reports a class whose supertype is neither indexed nor materialized.
	CodeMissingSupertype DiagnosticCode = "missing_supertype"
	// CodeMissingInterface reports a class whose interface is neither indexed nor materialized.
	CodeMissingInterface DiagnosticCode = "missing_interface"
	// CodeKindMismatch reports a class extending an interface, or a type
	// implementing or extending a class where an interface is required.
	CodeKindMismatch DiagnosticCode = "kind_mismatch"
)

// Diagnostic is a non-fatal anomaly found while indexing or validating.
type Diagnostic struct {
	Code    DiagnosticCode
	Message string
	File    string
	Line    int
	Context map[string]any
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Message)
	if d.File != "" {
		b.WriteString(" in ")
		b.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
		}
	}
	return b.String()
}

// WithFile returns a copy of the diagnostic attributed to file.
func (d Diagnostic) WithFile(file string) Diagnostic {
	d.File = file
	return d
}
