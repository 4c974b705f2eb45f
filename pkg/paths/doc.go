// Package paths resolves the files printdispatch reads and writes.
//
// The classic deployment keeps everything beside the executable:
//
//	<exe-dir>/printdispatch.exe
//	<exe-dir>/config.txt          rule table
//	<exe-dir>/printdispatch.toml  optional behaviour settings
//	<exe-dir>/PDFtoPrinter.exe    external PDF helper
//	<exe-dir>/printing.flag       busy flag while the helper runs
//
// The executable directory is captured once and passed around as an
// explicit value; nothing in the module reads it from global state after
// construction. PRINTDISPATCH_HOME replaces the executable directory, which
// is how tests and portable installs point the tool at another folder.
package paths
