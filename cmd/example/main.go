// Command example drives a zedit document from the command line: it loads a
// file or generates lorem ipsum text, highlights it, applies a few edits and
// prints the resulting change events.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	lorem "github.com/drhodes/golorem"
	"go.uber.org/zap"

	zedit "github.com/rasteric/zedit-buffer"
	"github.com/rasteric/zedit-buffer/syntax"
)

type options struct {
	file   string
	lines  int
	edits  int
	search string
	lang   string
	theme  string
	blend  string
	seed   int64
	debug  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	var log *zap.Logger
	var err error
	if opts.debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	config := zedit.NewConfig()
	config.Logger = log
	if opts.blend != "" {
		mode, err := zedit.ParseBlendMode(opts.blend)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		config.BlendFG, config.BlendBG = mode, mode
	}

	doc, err := load(opts, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("loaded %d runes in %d paragraphs\n", doc.Length(), doc.LineCount())

	queue := zedit.NewChangeQueue(doc)
	defer queue.Close()
	doc.Ranges().OnChange(func(c zedit.RangeChange) {
		fmt.Printf("ranges %v: %d\n", c.Kind, len(c.IDs))
	})

	if opts.lang != "" {
		h := syntax.New(opts.lang, opts.theme)
		h.SetLogger(log)
		ranges, err := h.Compute(context.Background(), doc.Snapshot().String())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := h.Apply(doc, ranges); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		printEvents("syntax", queue)
	}

	if opts.search != "" {
		if err := highlightMatches(doc, opts.search); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		printEvents("search", queue)
	}

	rnd := rand.New(rand.NewSource(opts.seed))
	for i := 0; i < opts.edits; i++ {
		if err := randomEdit(doc, rnd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: edit %d: %v\n", i, err)
			return 1
		}
		printEvents(fmt.Sprintf("edit %d", i), queue)
	}

	styled := 0
	for line := 0; line < doc.LineCount(); line++ {
		row, err := doc.TextGridRow(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		for _, cell := range row.Cells {
			if cell.Style != nil {
				styled++
			}
		}
	}
	fmt.Printf("final: %d runes, %d paragraphs, %d ranges, %d styled cells\n",
		doc.Length(), doc.LineCount(), doc.Ranges().Len(), styled)
	return 0
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.file, "file", "", "File to load (default: generated text)")
	flag.IntVar(&opts.lines, "lines", 100, "Number of generated lines")
	flag.IntVar(&opts.edits, "edits", 10, "Number of random edits")
	flag.StringVar(&opts.search, "search", "", "Word to highlight")
	flag.StringVar(&opts.lang, "lang", "", "Language for syntax highlighting")
	flag.StringVar(&opts.theme, "theme", "monokai", "Syntax highlighting theme")
	flag.StringVar(&opts.blend, "blend", "", "Blend mode for overlapping highlights")
	flag.Int64Var(&opts.seed, "seed", 1, "Random seed for edits")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.Parse()
	return opts
}

func load(opts options, config *zedit.Config) (*zedit.Document, error) {
	if opts.file == "" {
		lines := make([]string, max(opts.lines, 0))
		for i := range lines {
			lines[i] = lorem.Sentence(5, 30)
		}
		return zedit.NewFromString(strings.Join(lines, "\n"), config), nil
	}
	f, err := os.Open(opts.file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return zedit.NewFromReader(f, config)
}

func highlightMatches(doc *zedit.Document, word string) error {
	style, err := zedit.NewStyle("search", "", "#ffff00")
	if err != nil {
		return err
	}
	text := []rune(doc.Text())
	needle := []rune(word)
	var ranges []zedit.HighlightRange
	for i := 0; i+len(needle) <= len(text); i++ {
		if string(text[i:i+len(needle)]) == word {
			ranges = append(ranges, zedit.HighlightRange{Start: i, End: i + len(needle), Style: style})
		}
	}
	_, err = doc.Ranges().AddAll(ranges...)
	return err
}

func randomEdit(doc *zedit.Document, rnd *rand.Rand) error {
	pos := rnd.Intn(doc.Length() + 1)
	if rnd.Intn(2) == 0 || doc.Length() == 0 {
		text := lorem.Word(2, 8)
		if rnd.Intn(3) == 0 {
			text += "\n"
		}
		return doc.Insert(pos, text)
	}
	end := min(doc.Length(), pos+rnd.Intn(20))
	return doc.Delete(pos, end)
}

func printEvents(label string, queue *zedit.ChangeQueue) {
	for _, c := range queue.Drain() {
		fmt.Printf("%s: %v\n", label, c)
	}
}
