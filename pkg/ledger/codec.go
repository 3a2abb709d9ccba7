package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineSize bounds a single stored line.
const maxLineSize = 1 << 20

// Decode reads an account in its stored form:
//
//	<name>;<can overdraw: true|false>;<description>
//	<transaction line>
//	...
//
// Blank lines are skipped. Once every line is read the recurring templates
// are caught up and their occurrences appended after the stored entries,
// so the returned account already reflects every occurrence due before
// today.
func Decode(r io.Reader, opts ...Option) (*Account, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var a *Account
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if a == nil {
			header, err := parseHeader(line, opts)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			a = header
			continue
		}

		t, err := ParseTransaction(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		a.append(t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read account: %w", ErrStorageFailure, err)
	}

	if a == nil {
		return nil, fmt.Errorf("%w: missing account header", ErrMalformedRecord)
	}

	a.CatchUp()
	return a, nil
}

// Encode writes the account in the form read by Decode: the header followed
// by one line per transaction in ledger order.
func (a *Account) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s;%s;%s\n", sanitize(a.Name), strconv.FormatBool(a.CanOverdraw), singleLine(a.Description))
	for _, t := range a.transactions {
		bw.WriteString(t.Serialize())
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: failed to write account %q: %w", ErrStorageFailure, a.Name, err)
	}
	return nil
}

func parseHeader(line string, opts []Option) (*Account, error) {
	fields := strings.SplitN(line, ";", 3)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: account header needs 3 fields, got %d", ErrMalformedRecord, len(fields))
	}

	name := strings.TrimSpace(fields[0])
	if name == "" {
		return nil, fmt.Errorf("%w: account header has an empty name", ErrMalformedRecord)
	}

	canOverdraw, err := strconv.ParseBool(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: overdraw flag must be true or false, got %q", ErrMalformedRecord, fields[1])
	}

	return New(name, strings.TrimSpace(fields[2]), canOverdraw, opts...), nil
}
