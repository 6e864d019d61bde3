package dbfconv

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/axgle/mahonia"
)

// Writer builds a DBF v3 file: header and descriptor table up front,
// space-padded fixed-width records on Append, EOF marker and record-count
// fixup on Close.
type Writer struct {
	ws      io.WriteSeeker
	encoder mahonia.Encoder
	fields  []FieldDescriptor

	recordSize int
	count      uint32
	closed     bool
}

// NewWriter writes a v3 header and the descriptor table for fields to ws
// and returns a Writer positioned for appending records. Field names
// longer than 10 bytes are rejected.
func NewWriter(ws io.WriteSeeker, fields []FieldDescriptor, encoding string) (*Writer, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	encoder := mahonia.NewEncoder(encoding)
	if encoder == nil {
		return nil, fmt.Errorf("dbfconv: unknown encoding %q", encoding)
	}

	recordSize := 1
	for _, f := range fields {
		if len(f.Name) > 10 {
			return nil, fmt.Errorf("dbfconv: field name %q exceeds 10 bytes", f.Name)
		}
		recordSize += int(f.Length)
	}

	now := time.Now()
	year, month, day := now.Date()
	header := Header{
		Version:         0x03,
		LastUpdateYear:  byte(year - 1900),
		LastUpdateMonth: byte(month),
		LastUpdateDay:   byte(day),
		HeaderLength:    uint16(headerSize + descriptorSize*len(fields) + 1),
		RecordLength:    uint16(recordSize),
	}
	if err := binary.Write(ws, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, f := range fields {
		var d descriptor
		copy(d.Name[:], encoder.ConvertString(f.Name))
		d.Type = f.Type
		d.Length = f.Length
		d.Decimal = f.Decimal
		if err := binary.Write(ws, binary.LittleEndian, &d); err != nil {
			return nil, fmt.Errorf("write field descriptor: %w", err)
		}
	}
	if _, err := ws.Write([]byte{fieldTerminator}); err != nil {
		return nil, fmt.Errorf("write descriptor terminator: %w", err)
	}

	return &Writer{
		ws:         ws,
		encoder:    encoder,
		fields:     append([]FieldDescriptor(nil), fields...),
		recordSize: recordSize,
	}, nil
}

// Append writes one live record. Values are encoded, placed at their
// field offsets and truncated to the field width; short values are
// space-padded like the original format expects.
func (w *Writer) Append(values []string) error {
	return w.append(values, SPACE)
}

// AppendDeleted writes a record pre-marked as soft-deleted. Deleted rows
// still count toward the declared record count.
func (w *Writer) AppendDeleted(values []string) error {
	return w.append(values, DeletedFlag)
}

func (w *Writer) append(values []string, flag byte) error {
	if w.closed {
		return fmt.Errorf("dbfconv: append on closed writer")
	}
	if len(values) != len(w.fields) {
		return fmt.Errorf("dbfconv: record has %d values, schema has %d fields", len(values), len(w.fields))
	}
	buf := bytes.Repeat([]byte{SPACE}, w.recordSize)
	buf[0] = flag
	pos := 1
	for i, f := range w.fields {
		next := pos + int(f.Length)
		copy(buf[pos:next], w.encoder.ConvertString(values[i]))
		pos = next
	}
	if _, err := w.ws.Write(buf); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.count++
	return nil
}

// Close writes the EOF marker and seeks back to fix up the record count
// in the header. The underlying stream is left open.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if _, err := w.ws.Write([]byte{EOF}); err != nil {
		return fmt.Errorf("write eof marker: %w", err)
	}
	if _, err := w.ws.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("seek to record count: %w", err)
	}
	if err := binary.Write(w.ws, binary.LittleEndian, w.count); err != nil {
		return fmt.Errorf("write record count: %w", err)
	}
	return nil
}
