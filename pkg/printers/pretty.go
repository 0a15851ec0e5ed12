package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/nestlist/pkg/tree"
)

const indent = "  "

type PrettyPrint struct {
	ShowID bool
	// Width truncates names to this many cells. Zero means no limit.
	Width int
	Out   io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

func (pp *PrettyPrint) name(n string) string {
	if pp.Width <= 0 {
		return n
	}
	return truncate.StringWithTail(n, uint(pp.Width), "…")
}

// Document prints a titled tree.
func (pp *PrettyPrint) Document(name string, entries []tree.Entry, active int) {
	pp.TitleWithCount(name, len(entries))
	pp.Tree(entries, active)
}

// Tree prints one line per entry, indented by depth. The entry at active is
// highlighted.
func (pp *PrettyPrint) Tree(entries []tree.Entry, active int) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " empty\n")
		return
	}

	t := color.New()
	a := color.New(color.FgHiCyan, color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for i, e := range entries {
		p := t
		marker := "  "
		if i == active {
			p = a
			marker = "> "
		}
		_, _ = p.Fprint(pp.out(), marker+strings.Repeat(indent, e.Depth)+pp.name(e.Item.Name))
		if pp.ShowID {
			_, _ = y.Fprintf(pp.out(), " (ID: %d)", e.Item.ID)
		}
		_, _ = fmt.Fprintln(pp.out())
	}
}

// Table prints the flattened view with its ids, parents, orders and kinds.
func (pp *PrettyPrint) Table(entries []tree.Entry, active int) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", "POS", "ID", "PARENT", "ORDER", "KIND", "NAME")
	for i, e := range entries {
		marker := ""
		if i == active {
			marker = ">"
		}
		parent := "-"
		if e.Item.ParentID != tree.NoParent {
			parent = strconv.Itoa(e.Item.ParentID)
		}
		tbl.AddRow(marker, i, e.Item.ID, parent, e.Item.Order, e.Item.Kind,
			strings.Repeat(indent, e.Depth)+pp.name(e.Item.Name))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
