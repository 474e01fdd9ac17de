// Package render writes council output to a terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"hf-council/internal/service"
)

const ruleWidth = 60

var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorError   = lipgloss.Color("#f7768e")
	colorTextDim = lipgloss.Color("#565f89")
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	askingStyle  = lipgloss.NewStyle().Foreground(colorTextDim)
	speakerStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	ruleStyle    = lipgloss.NewStyle().Foreground(colorTextDim)
)

// Options configures a Printer.
type Options struct {
	// Markdown renders answers through glamour instead of printing them verbatim.
	Markdown bool
	// Width is the wrap width for markdown; zero detects the terminal width.
	Width int
}

// Printer writes banners and answers to w. It implements service.Reporter.
type Printer struct {
	w        io.Writer
	opts     Options
	renderer *glamour.TermRenderer
}

// NewPrinter creates a Printer. A markdown renderer that cannot be built
// falls back to plain output.
func NewPrinter(w io.Writer, opts Options) *Printer {
	p := &Printer{w: w, opts: opts}
	if opts.Markdown {
		width := opts.Width
		if width <= 0 {
			width = terminalWidth()
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
			glamour.WithEmoji(),
		)
		if err == nil {
			p.renderer = r
		}
	}
	return p
}

// Convening prints the council header.
func (p *Printer) Convening(prompt string, members []string) {
	fmt.Fprintf(p.w, "\n%s\n", titleStyle.Render("🏛️  THE COUNCIL IS CONVENING"))
	fmt.Fprintf(p.w, "❓  Question: %s\n\n", prompt)
	fmt.Fprintln(p.w, ruleStyle.Render(strings.Repeat("=", ruleWidth)))
}

// Asking announces the member about to be queried.
func (p *Printer) Asking(model string) {
	fmt.Fprintln(p.w, askingStyle.Render(fmt.Sprintf("👉  Asking: %s...", model)))
}

// Verdict prints one member's answer or error banner, then a separator.
func (p *Printer) Verdict(v service.Verdict) {
	if v.Failed() {
		p.Failure(v)
	} else {
		fmt.Fprintf(p.w, "\n%s\n\n", speakerStyle.Render(fmt.Sprintf("💬  %s SAYS:", v.Model)))
		fmt.Fprintln(p.w, p.body(v.Answer))
	}
	fmt.Fprintf(p.w, "\n%s\n\n", ruleStyle.Render(strings.Repeat("-", ruleWidth)))
}

// Failure prints the error banner followed by the failure as reported.
func (p *Printer) Failure(v service.Verdict) {
	fmt.Fprintf(p.w, "\n%s\n", errorStyle.Render(fmt.Sprintf("⚠️  ERROR with %s:", v.Model)))
	fmt.Fprintln(p.w, v.Detail())
}

// Answer prints a single-query result: the message role and content, or the error banner.
func (p *Printer) Answer(v service.Verdict) {
	if v.Failed() {
		p.Failure(v)
		return
	}
	role := v.Role
	if role == "" {
		role = "assistant"
	}
	fmt.Fprintf(p.w, "%s\n", speakerStyle.Render(fmt.Sprintf("%s (%s):", role, v.Model)))
	fmt.Fprintln(p.w, p.body(v.Answer))
}

// History prints one line per stored run.
func (p *Printer) History(sessions []service.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(p.w, "No runs recorded yet.")
		return
	}
	for _, s := range sessions {
		fmt.Fprintf(p.w, "%s  %-7s  %s  %s\n",
			s.RunID, s.Kind, s.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(s.Prompt, 60))
	}
}

// Session replays a stored run in the same layout it was first printed in.
func (p *Printer) Session(s service.Session) {
	fmt.Fprintln(p.w, askingStyle.Render(fmt.Sprintf("Run %s (%s, %s)", s.RunID, s.Kind, s.CreatedAt.Local().Format("2006-01-02 15:04:05"))))
	p.Convening(s.Prompt, nil)
	for _, v := range s.Verdicts {
		p.Asking(v.Model)
		p.Verdict(v)
	}
}

func (p *Printer) body(text string) string {
	if p.renderer == nil {
		return text
	}
	out, err := p.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

var _ service.Reporter = (*Printer)(nil)
