package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/snapsearch"
	"github.com/fwojciec/snapsearch/fs"
	snaphtml "github.com/fwojciec/snapsearch/html"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	var w io.Writer = deps.Stdout
	var file *fs.AtomicFile
	if c.Out != "" {
		f, err := fs.CreateFile(c.Out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Abort() }()
		w, file = f, f
	}

	if err := c.render(deps, w); err != nil {
		return err
	}

	if file != nil {
		if err := file.Commit(); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		fmt.Fprintf(deps.Stderr, "Wrote %s\n", c.Out)
	}
	return nil
}

func (c *SearchCmd) render(deps *Dependencies, w io.Writer) error {
	msgs := snapsearch.DefaultMessages()

	var view snapsearch.ResultsView
	var page *snaphtml.View
	var md *markdownView
	switch c.Format {
	case "html":
		page = snaphtml.NewView(snaphtml.WithMessages(msgs))
		view = page
	case "markdown":
		md = &markdownView{textView: textView{w: w, msgs: msgs}, conv: deps.Converter}
		view = md
	default:
		view = &textView{w: w, msgs: msgs}
	}

	_, _, err := deps.Searcher.Search(deps.Ctx, c.Query, view)
	if err != nil && snapsearch.ErrorCode(err) != snapsearch.EEMPTYQUERY {
		fmt.Fprintf(deps.Stderr, "error: %s\n", snapsearch.ErrorMessage(err))
		return err
	}

	if md != nil && md.err != nil {
		return fmt.Errorf("convert record: %w", md.err)
	}
	if page != nil {
		return page.Render(w)
	}
	return nil
}

// textView streams a search to a terminal: one numbered block per match.
type textView struct {
	w    io.Writer
	msgs snapsearch.Messages
	n    int
}

func (v *textView) SetHeading(text string) { fmt.Fprintln(v.w, text) }

func (v *textView) SetStatus(text string) { fmt.Fprintln(v.w, text) }

func (v *textView) AppendResult(r snapsearch.ListingRecord) {
	v.n++
	fmt.Fprintf(v.w, "\n%d. %s\n", v.n, r.Title)

	meta := r.Company
	for _, s := range []string{r.Place, r.PostedAt} {
		if s == "" {
			continue
		}
		if meta != "" {
			meta += " · "
		}
		meta += s
	}
	if meta != "" {
		fmt.Fprintf(v.w, "   %s\n", meta)
	}
	fmt.Fprintf(v.w, "   [%s] %s\n", r.SourceRegionSlug, r.URL)
}

func (v *textView) ShowNoResults() { fmt.Fprintln(v.w, v.msgs.NoResults) }

func (v *textView) HasDetail() bool { return false }

func (v *textView) SetActive(string, bool) {}

func (v *textView) ShowDetail(snapsearch.ListingRecord) {}

// markdownView streams a search as a Markdown document.
type markdownView struct {
	textView
	conv snapsearch.Converter
	err  error
}

func (v *markdownView) SetHeading(text string) { fmt.Fprintf(v.w, "# %s\n\n", text) }

func (v *markdownView) SetStatus(text string) { fmt.Fprintf(v.w, "_%s_\n\n", text) }

func (v *markdownView) AppendResult(r snapsearch.ListingRecord) {
	if v.err != nil {
		return
	}
	out, err := v.conv.ConvertRecord(r)
	if err != nil {
		v.err = err
		return
	}
	fmt.Fprintf(v.w, "%s\n\n", out)
}

func (v *markdownView) ShowNoResults() { fmt.Fprintf(v.w, "%s\n\n", v.msgs.NoResults) }
