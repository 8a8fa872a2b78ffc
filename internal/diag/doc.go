// Package diag holds the diagnostics model shared by the lexer, parser and driver.
//
// Phases never print; they call Reporter.Report (usually through ReportBuilder)
// and the outer layer decides how to render. A comment parse never fails, so
// everything the parser emits is SevWarning or SevInfo; SevError is reserved
// for I/O and configuration problems in the driver.
package diag
