package dbfconv

// Header is the fixed 32-byte header at the start of every DBF file.
// NumRecords is a declared count, not an authoritative one: a truncated
// file may hold fewer full records. HeaderLength is the absolute offset
// at which record data begins.
type Header struct {
	Version         byte
	LastUpdateYear  byte
	LastUpdateMonth byte
	LastUpdateDay   byte
	NumRecords      uint32
	HeaderLength    uint16
	RecordLength    uint16
	Reserved        [2]byte
	TransactionFlag byte
	EncryptFlag     byte
	Reserved2       [12]byte
	MDXFlag         byte
	LanguageDriver  byte
	Reserved3       [2]byte
}

// descriptor is the raw 32-byte field descriptor as stored on disk.
type descriptor struct {
	Name       [11]byte
	Type       byte
	Reserved1  [4]byte
	Length     byte
	Decimal    byte
	Reserved2  [2]byte
	WorkAreaID byte
	Reserved3  [10]byte
	Flag       byte
}

// FieldDescriptor describes one column of the table. Descriptor order is
// fixed at parse time and defines column order in all output. Decimal is
// parsed for completeness and debug logging but plays no part in
// conversion: values are emitted as their fixed-width text slices.
type FieldDescriptor struct {
	Name    string
	Type    byte
	Length  byte
	Decimal byte
}
