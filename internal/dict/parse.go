// Package dict parses the fixed-column name dictionary into an in-memory index.
package dict

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/unicode/norm"

	"github.com/kamusis/gendex/internal/gender"
)

var plusVariants = []string{"", "-", " "}

// Parse reads a dictionary from r and builds an Index.
//
// No index is returned on error.
func Parse(r io.Reader, opts Options) (*Index, error) {
	customFold := opts.Fold != nil
	opts = opts.withDefaults()

	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	idx := newIndex(opts, customFold)

	scanner := bufio.NewScanner(enc.NewDecoder().Reader(r))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if err := idx.eatLine(lineNo, line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read dictionary: %w", err)
	}
	return idx, nil
}

func (x *Index) eatLine(lineNo int, line string) error {
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "=") {
		return nil
	}
	if strings.TrimSpace(line) == "" {
		return nil
	}

	parts := strings.Fields(line)
	g, err := gender.ParseCode(parts[0])
	if err != nil {
		return &MalformedRecordError{Line: lineNo, Token: parts[0], Reason: "unrecognized gender code"}
	}
	if len(parts) < 2 {
		return &MalformedRecordError{Line: lineNo, Token: line, Reason: "missing name"}
	}

	var row Row
	if rs := []rune(line); len(rs) > RowOffset {
		row = Row(rs[RowOffset:])
	}

	name := norm.NFC.String(parts[1])
	if !x.caseSensitive {
		name = x.fold(name)
	}

	if strings.Contains(name, "+") {
		for _, rep := range plusVariants {
			x.set(strings.ReplaceAll(name, "+", rep), g, row)
		}
	} else {
		x.set(name, g, row)
	}
	x.records++
	return nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown dictionary encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported dictionary encoding %q", name)
	}
	return enc, nil
}
