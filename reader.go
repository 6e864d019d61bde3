package dbfconv

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/axgle/mahonia"
)

// Reader parses a DBF v3 stream: the header and field-descriptor table
// once at construction, then records one at a time via Next. It owns the
// stream cursor and is not restartable.
type Reader struct {
	r       io.ReadSeeker
	decoder mahonia.Decoder

	header  Header
	fields  []FieldDescriptor
	scanned uint32

	recordSize int
	buf        []byte
}

// NewReader parses the header and schema from r and positions the cursor
// at the start of record data. An empty encoding selects DefaultEncoding.
// It returns ErrMalformedHeader when r holds fewer than 32 header bytes.
func NewReader(r io.ReadSeeker, encoding string) (*Reader, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	decoder := mahonia.NewDecoder(encoding)
	if decoder == nil {
		return nil, fmt.Errorf("dbfconv: unknown encoding %q", encoding)
	}
	rd := &Reader{r: r, decoder: decoder}
	if err := rd.init(); err != nil {
		return nil, err
	}
	return rd, nil
}

func (rd *Reader) init() error {
	if err := binary.Read(rd.r, binary.LittleEndian, &rd.header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrMalformedHeader
		}
		return fmt.Errorf("read header: %w", err)
	}
	if err := rd.readFields(); err != nil {
		return err
	}
	// Record data starts at HeaderLength regardless of any padding
	// between the descriptor terminator and the first record.
	if _, err := rd.r.Seek(int64(rd.header.HeaderLength), io.SeekStart); err != nil {
		return fmt.Errorf("seek to record data: %w", err)
	}
	rd.recordSize = 1 // deletion flag
	for _, f := range rd.fields {
		rd.recordSize += int(f.Length)
	}
	rd.buf = make([]byte, rd.recordSize)
	return nil
}

// readFields consumes 32-byte descriptor blocks until the 0x0D terminator
// or the end of the stream.
func (rd *Reader) readFields() error {
	block := make([]byte, descriptorSize)
	for {
		if _, err := io.ReadFull(rd.r, block[:1]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read field descriptor: %w", err)
		}
		if block[0] == fieldTerminator {
			return nil
		}
		if _, err := io.ReadFull(rd.r, block[1:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("read field descriptor: %w", err)
		}
		var d descriptor
		if err := binary.Read(bytes.NewReader(block), binary.LittleEndian, &d); err != nil {
			return fmt.Errorf("decode field descriptor: %w", err)
		}
		name := d.Name[:]
		if i := bytes.IndexByte(name, NUL); i >= 0 {
			name = name[:i]
		}
		rd.fields = append(rd.fields, FieldDescriptor{
			Name:    rd.decoder.ConvertString(string(name)),
			Type:    d.Type,
			Length:  d.Length,
			Decimal: d.Decimal,
		})
	}
}

// Header returns the parsed file header.
func (rd *Reader) Header() Header {
	return rd.header
}

// Fields returns the field descriptors in schema order.
func (rd *Reader) Fields() []FieldDescriptor {
	return rd.fields
}

// FieldNames returns the decoded field names in schema order.
func (rd *Reader) FieldNames() []string {
	names := make([]string, len(rd.fields))
	for i, f := range rd.fields {
		names[i] = f.Name
	}
	return names
}

// Next returns the next live record as trimmed values in schema order.
// Soft-deleted records are skipped. Next returns io.EOF once the declared
// record count is reached or the stream runs out of full record blocks;
// a truncated file is normal termination, not an error.
func (rd *Reader) Next() ([]string, error) {
	for rd.scanned < rd.header.NumRecords {
		rd.scanned++
		if _, err := io.ReadFull(rd.r, rd.buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// A partial trailing block cannot be sliced into
				// field-sized chunks; treat it like an empty read.
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read record: %w", err)
		}
		if rd.buf[0] == DeletedFlag {
			continue
		}
		values := make([]string, len(rd.fields))
		pos := 1
		for i, f := range rd.fields {
			next := pos + int(f.Length)
			values[i] = strings.TrimSpace(rd.decoder.ConvertString(string(rd.buf[pos:next])))
			pos = next
		}
		return values, nil
	}
	return nil, io.EOF
}
