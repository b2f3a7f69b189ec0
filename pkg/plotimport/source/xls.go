package source

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// BIFF8 record identifiers.
const (
	recFormula    = 0x0006
	recEOF        = 0x000A
	recFilePass   = 0x002F
	recContinue   = 0x003C
	recBoundSheet = 0x0085
	recMulRK      = 0x00BD
	recSST        = 0x00FC
	recLabelSST   = 0x00FD
	recNumber     = 0x0203
	recLabel      = 0x0204
	recBoolErr    = 0x0205
	recString     = 0x0207
	recRK         = 0x027E
	recBOF        = 0x0809
)

const (
	biff8Version  = 0x0600
	sheetTypeWork = 0x00
	// maxColumns is the BIFF8 column limit (IV).
	maxColumns = 256
)

var errTruncated = errors.New("truncated record")

var errColumnRange = errors.New("column out of range")

// readXLS reads a sheet of a legacy BIFF8 workbook stored in an OLE2
// compound file.
func readXLS(path string, opts Options) ([][]models.Cell, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	stream, err := workbookStream(file)
	if err != nil {
		return nil, "", err
	}
	return ParseWorkbookStream(stream, opts.Sheet)
}

// workbookStream returns the contents of the Workbook stream.
func workbookStream(r io.ReaderAt) ([]byte, error) {
	doc, err := mscfb.New(r)
	if err != nil {
		return nil, err
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "Workbook":
			return io.ReadAll(entry)
		case "Book":
			return nil, fmt.Errorf("%w: BIFF5 workbook", ErrUnsupportedWorkbook)
		}
	}
	return nil, fmt.Errorf("%w: no Workbook stream", ErrUnsupportedWorkbook)
}

type biffRecord struct {
	id   uint16
	data []byte
}

// recordAt reads the record starting at pos and returns it with the
// position of the next record.
func recordAt(stream []byte, pos int) (biffRecord, int, error) {
	if pos+4 > len(stream) {
		return biffRecord{}, 0, errTruncated
	}
	id := binary.LittleEndian.Uint16(stream[pos:])
	size := int(binary.LittleEndian.Uint16(stream[pos+2:]))
	end := pos + 4 + size
	if end > len(stream) {
		return biffRecord{}, 0, errTruncated
	}
	return biffRecord{id: id, data: stream[pos+4 : end]}, end, nil
}

type boundSheet struct {
	name   string
	offset int
	kind   byte
}

// ParseWorkbookStream decodes a BIFF8 Workbook stream and returns the
// cells of the named sheet, or of the first worksheet when sheet is empty.
func ParseWorkbookStream(stream []byte, sheet string) ([][]models.Cell, string, error) {
	sheets, sst, err := parseGlobals(stream)
	if err != nil {
		return nil, "", err
	}

	names := make([]string, 0, len(sheets))
	byName := make(map[string]boundSheet, len(sheets))
	for _, s := range sheets {
		if s.kind != sheetTypeWork {
			continue
		}
		names = append(names, s.name)
		byName[s.name] = s
	}

	name, err := pickSheet(names, sheet)
	if err != nil {
		return nil, "", err
	}

	grid, err := parseSheet(stream, byName[name].offset, sst)
	if err != nil {
		return nil, "", fmt.Errorf("sheet %q: %w", name, err)
	}
	return grid, name, nil
}

// parseGlobals reads the workbook globals substream: sheet directory and
// shared string table.
func parseGlobals(stream []byte) ([]boundSheet, []string, error) {
	rec, pos, err := recordAt(stream, 0)
	if err != nil {
		return nil, nil, err
	}
	if rec.id != recBOF || len(rec.data) < 2 {
		return nil, nil, fmt.Errorf("%w: missing BOF record", ErrUnsupportedWorkbook)
	}
	if v := binary.LittleEndian.Uint16(rec.data); v != biff8Version {
		return nil, nil, fmt.Errorf("%w: BIFF version 0x%04X", ErrUnsupportedWorkbook, v)
	}

	var (
		sheets []boundSheet
		sst    []string
	)
	for pos < len(stream) {
		rec, next, err := recordAt(stream, pos)
		if err != nil {
			return nil, nil, err
		}

		switch rec.id {
		case recEOF:
			return sheets, sst, nil
		case recFilePass:
			return nil, nil, fmt.Errorf("%w: encrypted workbook", ErrUnsupportedWorkbook)
		case recBoundSheet:
			s, err := parseBoundSheet(rec.data)
			if err != nil {
				return nil, nil, err
			}
			sheets = append(sheets, s)
		case recSST:
			segments := [][]byte{rec.data}
			for next < len(stream) {
				cont, after, err := recordAt(stream, next)
				if err != nil || cont.id != recContinue {
					break
				}
				segments = append(segments, cont.data)
				next = after
			}
			if sst, err = parseSST(segments); err != nil {
				return nil, nil, fmt.Errorf("shared strings: %w", err)
			}
		}
		pos = next
	}
	return sheets, sst, nil
}

func parseBoundSheet(data []byte) (boundSheet, error) {
	if len(data) < 8 {
		return boundSheet{}, errTruncated
	}
	s := boundSheet{
		offset: int(binary.LittleEndian.Uint32(data)),
		kind:   data[5],
	}
	cch := int(data[6])
	name, _, err := decodeChars(data[8:], cch, data[7]&0x01 != 0)
	if err != nil {
		return boundSheet{}, err
	}
	s.name = name
	return s, nil
}

// parseSheet reads cell records of the worksheet substream at offset.
func parseSheet(stream []byte, offset int, sst []string) ([][]models.Cell, error) {
	rec, pos, err := recordAt(stream, offset)
	if err != nil {
		return nil, err
	}
	if rec.id != recBOF {
		return nil, fmt.Errorf("%w: sheet does not start with BOF", ErrUnsupportedWorkbook)
	}

	var (
		grid          [][]models.Cell
		pendingRow    = -1
		pendingCol    = -1
		pendingString bool
	)
	set := func(row, col int, c models.Cell) error {
		if col >= maxColumns {
			return fmt.Errorf("%w: row %d column %d", errColumnRange, row, col)
		}
		for len(grid) <= row {
			grid = append(grid, nil)
		}
		for len(grid[row]) <= col {
			grid[row] = append(grid[row], models.Missing)
		}
		grid[row][col] = c
		return nil
	}

	for pos < len(stream) {
		rec, next, err := recordAt(stream, pos)
		if err != nil {
			return nil, err
		}
		pos = next
		d := rec.data

		switch rec.id {
		case recEOF:
			return grid, nil
		case recLabelSST:
			if len(d) < 10 {
				return nil, errTruncated
			}
			idx := int(binary.LittleEndian.Uint32(d[6:]))
			if idx < len(sst) {
				if err := set(cellPos(d), cellCol(d), models.TextCell(sst[idx])); err != nil {
					return nil, err
				}
			}
		case recLabel:
			if len(d) < 9 {
				return nil, errTruncated
			}
			s, err := decodeXLUnicodeString(d[6:])
			if err != nil {
				return nil, err
			}
			if err := set(cellPos(d), cellCol(d), models.TextCell(s)); err != nil {
				return nil, err
			}
		case recNumber:
			if len(d) < 14 {
				return nil, errTruncated
			}
			v := math.Float64frombits(binary.LittleEndian.Uint64(d[6:]))
			if err := set(cellPos(d), cellCol(d), numberCell(v)); err != nil {
				return nil, err
			}
		case recRK:
			if len(d) < 10 {
				return nil, errTruncated
			}
			if err := set(cellPos(d), cellCol(d), numberCell(decodeRK(binary.LittleEndian.Uint32(d[6:])))); err != nil {
				return nil, err
			}
		case recMulRK:
			if len(d) < 6 {
				return nil, errTruncated
			}
			row := cellPos(d)
			col := cellCol(d)
			// rgrkrec entries of 6 bytes, then the last column index
			for p := 4; p+6 <= len(d)-2; p += 6 {
				if err := set(row, col, numberCell(decodeRK(binary.LittleEndian.Uint32(d[p+2:])))); err != nil {
					return nil, err
				}
				col++
			}
		case recBoolErr:
			if len(d) < 8 {
				return nil, errTruncated
			}
			if d[7] == 0 {
				if err := set(cellPos(d), cellCol(d), boolCell(d[6] != 0)); err != nil {
					return nil, err
				}
			}
		case recFormula:
			if len(d) < 14 {
				return nil, errTruncated
			}
			row, col := cellPos(d), cellCol(d)
			v := d[6:14]
			if v[6] != 0xFF || v[7] != 0xFF {
				if err := set(row, col, numberCell(math.Float64frombits(binary.LittleEndian.Uint64(v)))); err != nil {
					return nil, err
				}
				continue
			}
			switch v[0] {
			case 0x00:
				pendingRow, pendingCol, pendingString = row, col, true
			case 0x01:
				if err := set(row, col, boolCell(v[2] != 0)); err != nil {
					return nil, err
				}
			}
		case recString:
			if !pendingString {
				continue
			}
			s, err := decodeXLUnicodeString(d)
			if err != nil {
				return nil, err
			}
			if err := set(pendingRow, pendingCol, models.TextCell(s)); err != nil {
				return nil, err
			}
			pendingString = false
		}
	}
	return grid, nil
}

func cellPos(d []byte) int { return int(binary.LittleEndian.Uint16(d)) }
func cellCol(d []byte) int { return int(binary.LittleEndian.Uint16(d[2:])) }

func boolCell(b bool) models.Cell {
	if b {
		return models.Cell{Kind: models.CellBool, Text: "TRUE"}
	}
	return models.Cell{Kind: models.CellBool, Text: "FALSE"}
}

// decodeRK expands an RK-encoded number.
func decodeRK(rk uint32) float64 {
	var v float64
	if rk&0x02 != 0 {
		v = float64(int32(rk) >> 2)
	} else {
		v = math.Float64frombits(uint64(rk&0xFFFFFFFC) << 32)
	}
	if rk&0x01 != 0 {
		v /= 100
	}
	return v
}

// decodeXLUnicodeString reads a 16-bit length prefixed string.
func decodeXLUnicodeString(d []byte) (string, error) {
	if len(d) < 3 {
		return "", errTruncated
	}
	cch := int(binary.LittleEndian.Uint16(d))
	s, _, err := decodeChars(d[3:], cch, d[2]&0x01 != 0)
	return s, err
}

// decodeChars reads cch characters, either compressed (one byte each) or
// UTF-16LE, and returns the string with the number of bytes consumed.
func decodeChars(d []byte, cch int, high bool) (string, int, error) {
	if !high {
		if len(d) < cch {
			return "", 0, errTruncated
		}
		return latin1(d[:cch]), cch, nil
	}
	if len(d) < cch*2 {
		return "", 0, errTruncated
	}
	return utf16le(d[:cch*2]), cch * 2, nil
}

func latin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

func utf16le(b []byte) string {
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(units))
}

// sstReader reads across an SST record and its CONTINUE records.
type sstReader struct {
	segments [][]byte
	seg      int
	pos      int
}

// next moves to the following segment when the current one is exhausted.
func (r *sstReader) next() error {
	for r.seg < len(r.segments) && r.pos >= len(r.segments[r.seg]) {
		r.seg++
		r.pos = 0
	}
	if r.seg >= len(r.segments) {
		return errTruncated
	}
	return nil
}

func (r *sstReader) bytes(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		if err := r.next(); err != nil {
			return nil, err
		}
		seg := r.segments[r.seg]
		take := min(n-len(out), len(seg)-r.pos)
		out = append(out, seg[r.pos:r.pos+take]...)
		r.pos += take
	}
	return out, nil
}

// skip advances past n bytes without copying them.
func (r *sstReader) skip(n int) error {
	for n > 0 {
		if err := r.next(); err != nil {
			return err
		}
		take := min(n, len(r.segments[r.seg])-r.pos)
		r.pos += take
		n -= take
	}
	return nil
}

func (r *sstReader) uint16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *sstReader) uint32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// chars reads cch characters. When the character array continues into a
// new segment, that segment starts with a fresh option byte.
func (r *sstReader) chars(cch int, high bool) (string, error) {
	var runes []rune
	for cch > 0 {
		if r.pos >= len(r.segments[r.seg]) {
			r.seg++
			r.pos = 0
			if r.seg >= len(r.segments) || len(r.segments[r.seg]) == 0 {
				return "", errTruncated
			}
			high = r.segments[r.seg][0]&0x01 != 0
			r.pos = 1
		}
		seg := r.segments[r.seg]
		width := 1
		if high {
			width = 2
		}
		take := min(cch, (len(seg)-r.pos)/width)
		if take == 0 {
			return "", errTruncated
		}
		chunk := seg[r.pos : r.pos+take*width]
		if high {
			runes = append(runes, []rune(utf16le(chunk))...)
		} else {
			runes = append(runes, []rune(latin1(chunk))...)
		}
		r.pos += take * width
		cch -= take
	}
	return string(runes), nil
}

// parseSST decodes the shared string table.
func parseSST(segments [][]byte) ([]string, error) {
	r := &sstReader{segments: segments}
	if _, err := r.uint32(); err != nil { // total references
		return nil, err
	}
	unique, err := r.uint32()
	if err != nil {
		return nil, err
	}

	// Each entry takes at least three bytes, so the declared count is
	// capped by the data actually present.
	size := 0
	for _, seg := range segments {
		size += len(seg)
	}
	strs := make([]string, 0, min(int(unique), size/3))
	for i := uint32(0); i < unique; i++ {
		cch, err := r.uint16()
		if err != nil {
			return nil, err
		}
		flags, err := r.bytes(1)
		if err != nil {
			return nil, err
		}

		var runs, ext int
		if flags[0]&0x08 != 0 {
			n, err := r.uint16()
			if err != nil {
				return nil, err
			}
			runs = int(n)
		}
		if flags[0]&0x04 != 0 {
			n, err := r.uint32()
			if err != nil {
				return nil, err
			}
			ext = int(n)
		}

		s, err := r.chars(int(cch), flags[0]&0x01 != 0)
		if err != nil {
			return nil, err
		}
		if err := r.skip(runs*4 + ext); err != nil {
			return nil, err
		}
		strs = append(strs, s)
	}
	return strs, nil
}
