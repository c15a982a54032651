// Package dictfile reads and writes steno dictionary files: a single JSON
// object mapping "STROKE/STROKE" spellings to translation text.
//
// Files are written one entry per line in the order given, with ": "
// between key and value and non-ASCII text left unescaped, so that sorted
// dictionaries diff cleanly.
package dictfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/heartmarshall/melani-orthography/internal/domain"
)

// Decode reads one JSON object of string values, keeping the file order.
// A key that appears twice is rejected with domain.ErrDuplicateFragment.
func Decode(r io.Reader) ([]domain.Fragment, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode dictionary: expected object, got %v", tok)
	}

	var out []domain.Fragment
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode dictionary: %w", err)
		}
		key := tok.(string)

		var text string
		if err := dec.Decode(&text); err != nil {
			return nil, fmt.Errorf("decode dictionary: entry %q: %w", key, err)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("decode dictionary: entry %q: %w", key, domain.ErrDuplicateFragment)
		}
		seen[key] = struct{}{}
		out = append(out, domain.Fragment{Steno: key, Text: text})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode dictionary: trailing data after object")
	}

	return out, nil
}

// ReadFile decodes the dictionary stored at path.
func ReadFile(path string) ([]domain.Fragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Encode writes entries as a JSON object, one entry per line, in order.
func Encode(w io.Writer, entries []domain.Fragment) error {
	bw := bufio.NewWriter(w)

	if len(entries) == 0 {
		bw.WriteString("{}\n")
		return bw.Flush()
	}

	bw.WriteString("{\n")
	for i, e := range entries {
		key, err := quote(e.Steno)
		if err != nil {
			return err
		}
		val, err := quote(e.Text)
		if err != nil {
			return err
		}
		bw.Write(key)
		bw.WriteString(": ")
		bw.Write(val)
		if i < len(entries)-1 {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("}\n")

	return bw.Flush()
}

// WriteFile replaces path with the encoded entries. The new content is
// written to a temporary file in the same directory and renamed over path.
func WriteFile(path string, entries []domain.Fragment) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, entries); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func quote(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
