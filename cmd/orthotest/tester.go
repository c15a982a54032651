package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/heartmarshall/melani-orthography/internal/plugin"
	"github.com/heartmarshall/melani-orthography/internal/steno"
	"github.com/heartmarshall/melani-orthography/internal/theory"
)

// stenoMarker introduces steno arguments on the command line and steno
// lines in interactive mode.
const stenoMarker = "/"

type tester struct {
	dict    *plugin.Dictionary
	spacing theory.Spacing
	out     io.Writer
}

// run handles one command line. Results of all arguments are printed on a
// single line.
func (t *tester) run(args []string) {
	if len(args) > 0 && args[0] == stenoMarker {
		for _, seq := range args[1:] {
			fmt.Fprint(t.out, t.text(seq))
		}
	} else {
		for _, text := range args {
			fmt.Fprint(t.out, t.steno(text))
		}
	}
	fmt.Fprintln(t.out)
}

// text renders a "/"-joined stroke sequence. Sequences that do not parse or
// translate are echoed back unchanged.
func (t *tester) text(seq string) string {
	th := t.dict.Theory()
	strokes, err := th.Layout().ParseSequence(seq)
	if err != nil {
		return seq
	}
	text, err := th.StrokesToTextSpacing(strokes, t.spacing)
	if err != nil {
		return seq
	}
	return text
}

// steno returns the canonical strokes for text, or "" when text cannot be
// written with the fragments.
func (t *tester) steno(text string) string {
	strokes, err := t.dict.Theory().StrokesFromText(text)
	if err != nil {
		return ""
	}
	return steno.JoinSequence(strokes)
}

// interactive reads lines until EOF or cancellation. A line starting with
// "/" is steno, anything else is text.
func (t *tester) interactive(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, stenoMarker); ok {
			t.run(append([]string{stenoMarker}, strings.Fields(rest)...))
			continue
		}
		t.run([]string{line})
	}
	return sc.Err()
}
