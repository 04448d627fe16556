package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/bstree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// Config holds the parameters for printing a tree.
type Config struct {
	LineWidth  int            // maximum width of an output line in fixed-width positions
	Indent     int            // indentation per tree level; 0 means 2
	ShowValues bool           // print "key: value" instead of just the key
	Ellipsis   string         // marker for cut labels; empty means "…"
	Context    *uax11.Context // width context; nil means uax11.LatinContext
	Palette    []*color.Color // colors by depth (cycling); nil means a default palette
}

var setupGraphemes sync.Once

// Print outputs a tree to stdout.
//
// If parameter config is nil, a heuristic will create a config from the
// current terminal's properties (if stdout is interactive). Config.Context
// will then be created based on heuristics from the user environment.
func Print[K, V any](t *bstree.Tree[K, V], config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return Fprint(os.Stdout, t, config)
}

// Fprint outputs a tree to w, one node per line, in reverse in-order.
func Fprint[K, V any](w io.Writer, t *bstree.Tree[K, V], config *Config) error {
	if config == nil {
		config = &Config{LineWidth: 65}
	}
	cfg := config.normalized()
	for e := range t.All(bstree.InOrder, bstree.Reverse) {
		indent := cfg.Indent * e.Depth()
		if _, err := io.WriteString(w, strings.Repeat(" ", indent)); err != nil {
			return err
		}
		var label string
		if cfg.ShowValues {
			label = fmt.Sprintf("%v: %v", e.Key(), e.Value())
		} else {
			label = fmt.Sprintf("%v", e.Key())
		}
		label = cfg.fit(label, cfg.LineWidth-indent)
		c := cfg.Palette[e.Depth()%len(cfg.Palette)]
		if _, err := c.Fprint(w, label); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (config *Config) normalized() Config {
	cfg := *config
	if cfg.Indent <= 0 {
		cfg.Indent = 2
	}
	if cfg.Ellipsis == "" {
		cfg.Ellipsis = "…"
	}
	if cfg.Context == nil {
		cfg.Context = uax11.LatinContext
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = makeDefaultPalette()
	}
	return cfg
}

func makeDefaultPalette() []*color.Color {
	return []*color.Color{
		color.New(color.FgRed, color.Bold),
		color.New(color.FgBlue),
		color.New(color.FgGreen),
		color.New(color.FgMagenta),
		color.New(color.FgCyan),
		color.New(color.FgYellow),
	}
}

// width measures s in fixed-width positions, grapheme by grapheme.
// uax11 classifies ASCII digits as emoji (keycap bases) and measures them
// as wide, so graphemes starting with an ASCII character count as 1.
func (config *Config) width(s string) int {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(s)
	w := 0
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		if g == "" {
			continue
		}
		if g[0] < 0x80 {
			w++
			continue
		}
		w += uax11.Width([]byte(g), config.Context)
	}
	return w
}

// fit cuts label to at most avail positions, marking a cut with the
// ellipsis. Labels are cut at rune boundaries; if not even the ellipsis
// fits, the result is empty.
func (config *Config) fit(label string, avail int) string {
	if avail <= 0 {
		return ""
	}
	if config.width(label) <= avail {
		return label
	}
	runes := []rune(label)
	for n := len(runes) - 1; n >= 0; n-- {
		cut := string(runes[:n]) + config.Ellipsis
		if config.width(cut) <= avail {
			return cut
		}
	}
	return ""
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a printing Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's
// width and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		w, _, err := term.GetSize(fd)
		if err != nil {
			config.LineWidth = 65
		} else if w > 10 {
			config.LineWidth = w - 1
		} else {
			config.LineWidth = 10
		}
	} else {
		config.LineWidth = 65
	}
	T().P("print", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}
