// Package dbfconv reads dBASE III (DBF version 3) tables and converts
// them to CSV. The reader parses the fixed 32-byte file header and the
// field-descriptor table into a schema, then streams fixed-width records,
// skipping soft-deleted rows. The converter writes one CSV header row of
// field names followed by one row per live record.
package dbfconv

import "errors"

const (
	SPACE = 0x20
	EOF   = 0x1A
	NUL   = 0x00

	// DeletedFlag marks a soft-deleted record in its leading status byte.
	DeletedFlag = '*'

	headerSize      = 32
	descriptorSize  = 32
	fieldTerminator = 0x0D
)

// DefaultEncoding is the charset used when none is configured. DBF v3
// stores text in a single-byte code page.
const DefaultEncoding = "latin1"

var (
	// ErrMalformedHeader reports a file too short to hold the fixed
	// 32-byte header.
	ErrMalformedHeader = errors.New("dbfconv: malformed header")

	// ErrInputNotFound reports a missing input file, detected before the
	// output file is touched.
	ErrInputNotFound = errors.New("dbfconv: input file not found")
)
