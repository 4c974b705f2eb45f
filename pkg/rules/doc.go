// Package rules loads the printer routing table.
//
// The table is a plain text file, one rule per line:
//
//	\.pdf$|LaserJet
//	invoice.*|ReceiptPrinter
//	^label_|\\printsrv\Zebra
//
// Everything before the first separator (default "|") is a regular
// expression, everything after it is the destination printer name, kept
// byte for byte. Lines without a separator are dropped and reported in
// Table.Skipped. Blank lines are ignored.
//
// # Matching
//
// Patterns are compiled once at load time in Go RE2 syntax with the (?i)
// flag, and matched as a substring search: `invoice` matches
// "2024_invoice_final.txt" and needs no surrounding `.*`. Anchor with ^ and
// $ for whole-name matches.
//
// # Rule Priority
//
// Rules are evaluated in file order and the first match wins. A later rule
// is never consulted once an earlier one matched, even if it is more
// specific.
//
// # Invalid Patterns
//
// With PolicyAbort (the default) the first pattern that fails to compile
// stops the load with an INVALID_PATTERN error naming the line. PolicySkip
// records the line in Table.Skipped and keeps going.
package rules
