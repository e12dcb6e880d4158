// Package syntax produces highlight ranges for a zedit document with chroma
// lexers and styles.
//
// Tokenising can be slow for big documents, so it runs on a text snapshot in
// the background and the results are handed back to the goroutine that owns
// the document, as the document itself is not safe for concurrent use.
package syntax

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"go.uber.org/zap"

	zedit "github.com/rasteric/zedit-buffer"
)

// checkEvery is how many tokens Compute processes between context checks.
const checkEvery = 256

// Highlighter turns chroma tokens into highlight ranges owned by a single
// OwnerID, so that its ranges can be replaced without touching anyone else's.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
	owner zedit.OwnerID
	log   *zap.Logger

	mu     sync.Mutex
	styles map[chroma.TokenType]*zedit.Style // nil entry: token type is not colored
}

// New creates a highlighter for the given chroma language and theme names.
// Unknown languages fall back to plain text, unknown themes to chroma's fallback style.
func New(language string, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	return &Highlighter{
		lexer:  lexer,
		style:  styles.Get(theme),
		owner:  zedit.NewOwnerID(),
		log:    zap.NewNop(),
		styles: make(map[chroma.TokenType]*zedit.Style),
	}
}

// SetLogger sets the logger for background failures.
func (h *Highlighter) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	h.log = log
}

// Owner returns the owner tag of all ranges this highlighter produces.
func (h *Highlighter) Owner() zedit.OwnerID {
	return h.owner
}

// styleFor returns the shared style of a token type. Styles are cached so that
// ranges from different runs compare equal.
func (h *Highlighter) styleFor(tt chroma.TokenType) *zedit.Style {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.styles[tt]; ok {
		return s
	}
	var s *zedit.Style
	entry := h.style.Get(tt)
	if entry.Colour.IsSet() {
		var err error
		s, err = zedit.NewStyle(tt.String(), entry.Colour.String(), "")
		if err != nil {
			h.log.Warn("unusable chroma colour", zap.Stringer("token", tt), zap.Error(err))
			s = nil
		}
	}
	h.styles[tt] = s
	return s
}

// Compute tokenises text and returns one range per colored, non-blank token.
// It may be called from any goroutine and returns ctx.Err() when cancelled.
func (h *Highlighter) Compute(ctx context.Context, text string) ([]zedit.HighlightRange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenising: %w", err)
	}
	total := len([]rune(text))
	var ranges []zedit.HighlightRange
	offset := 0
	for i, token := range it.Tokens() {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		n := len([]rune(token.Value))
		start, end := offset, min(offset+n, total)
		offset += n
		if start >= end || strings.TrimFunc(token.Value, unicode.IsSpace) == "" {
			continue
		}
		style := h.styleFor(token.Type)
		if style == nil {
			continue
		}
		ranges = append(ranges, zedit.HighlightRange{
			Start: start,
			End:   end,
			Style: style,
			Owner: h.owner,
		})
	}
	return ranges, nil
}

type rangeKey struct {
	start, end int
	style      zedit.Highlight
}

// Apply replaces the highlighter's ranges in doc with ranges. Ranges already
// present are kept and out-of-bounds ranges are dropped, so a result computed
// from a stale snapshot is still safe to apply. It must be called from the
// goroutine that owns doc.
func (h *Highlighter) Apply(doc *zedit.Document, ranges []zedit.HighlightRange) error {
	coll := doc.Ranges()
	wanted := make(map[rangeKey]bool, len(ranges))
	for _, r := range ranges {
		if r.Start < 0 || r.Start > r.End || r.End > doc.Length() {
			continue
		}
		wanted[rangeKey{r.Start, r.End, r.Style}] = true
	}

	var stale []zedit.RangeID
	for _, id := range coll.Owned(h.owner) {
		r, _ := coll.Range(id)
		k := rangeKey{r.Start, r.End, r.Style}
		if wanted[k] {
			delete(wanted, k)
			continue
		}
		stale = append(stale, id)
	}
	coll.RemoveAll(stale...)

	fresh := make([]zedit.HighlightRange, 0, len(wanted))
	for _, r := range ranges {
		k := rangeKey{r.Start, r.End, r.Style}
		if !wanted[k] {
			continue
		}
		delete(wanted, k)
		r.Owner = h.owner
		fresh = append(fresh, r)
	}
	if _, err := coll.AddAll(fresh...); err != nil {
		return fmt.Errorf("applying %d syntax ranges: %w", len(fresh), err)
	}
	h.log.Debug("syntax ranges applied", zap.Int("removed", len(stale)), zap.Int("added", len(fresh)))
	return nil
}

// Attach keeps doc highlighted. After every edit, and once right away, it
// waits for delay without further edits, snapshots the text, computes ranges
// on a new goroutine and applies them through post, which must run its
// argument on the goroutine that owns doc (e.g. fyne.Do). A newer run cancels
// an older one. Attach itself must be called on the owning goroutine; the
// returned function stops highlighting but leaves existing ranges in place.
func (h *Highlighter) Attach(doc *zedit.Document, post func(func()), delay time.Duration) (detach func()) {
	var (
		timer    *time.Timer
		cancel   context.CancelFunc
		detached bool
	)

	run := func() {
		if detached {
			return
		}
		if cancel != nil {
			cancel()
		}
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		text := doc.Snapshot().String()
		go func() {
			ranges, err := h.Compute(ctx, text)
			if err != nil {
				if ctx.Err() == nil {
					h.log.Error("syntax highlighting failed", zap.Error(err))
				}
				return
			}
			post(func() {
				if detached || ctx.Err() != nil {
					return
				}
				if err := h.Apply(doc, ranges); err != nil {
					h.log.Error("applying syntax ranges", zap.Error(err))
				}
			})
		}()
	}

	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() { post(run) })
	}

	// Edits, not change events: Apply itself emits change events.
	stop := doc.OnEdit(func(zedit.Edit) {
		if cancel != nil {
			cancel()
		}
		schedule()
	})
	schedule()

	return func() {
		detached = true
		stop()
		if timer != nil {
			timer.Stop()
		}
		if cancel != nil {
			cancel()
		}
	}
}
