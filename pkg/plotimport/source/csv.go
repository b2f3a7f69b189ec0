package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// ErrInvalidEncoding indicates delimited text that is not valid in the
// configured encoding.
var ErrInvalidEncoding = errors.New("invalid text encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV reads a delimited text file.
func readCSV(path string, opts Options) ([][]models.Cell, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	text, err := decodeText(raw, opts.encoding())
	if err != nil {
		return nil, "", err
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = opts.delimiter()
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var grid [][]models.Cell
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", err
		}
		cells := make([]models.Cell, len(record))
		for i, v := range record {
			cells[i] = models.TextCell(v)
		}
		grid = append(grid, cells)
	}

	return grid, "", nil
}

// decodeText converts raw bytes in the named encoding to UTF-8.
// UTF-8 input must be valid; a leading byte order mark is dropped.
func decodeText(raw []byte, label string) ([]byte, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown encoding %q", ErrInvalidEncoding, label)
	}

	name, _ := htmlindex.Name(enc)
	if strings.EqualFold(name, "utf-8") {
		raw = bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("%w: input is not valid utf-8", ErrInvalidEncoding)
		}
		return raw, nil
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return bytes.TrimPrefix(decoded, utf8BOM), nil
}
