// Package export contains the runner for `nestlist export`.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/tree"
)

// Export writes the stored document, including the flattened view.
type Export struct {
	// Format is json or yaml.
	Format string

	Document string
	Service  *app.Service
	Out      io.Writer
}

type row struct {
	Index    int       `json:"index" yaml:"index"`
	ID       int       `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Depth    int       `json:"depth" yaml:"depth"`
	ParentID int       `json:"parentId" yaml:"parentId"`
	Kind     tree.Kind `json:"kind" yaml:"kind"`
}

type exported struct {
	Name        string `json:"name" yaml:"name"`
	ActiveIndex int    `json:"activeIndex" yaml:"activeIndex"`
	NextID      int    `json:"nextId" yaml:"nextId"`
	Flattened   []row  `json:"flattened" yaml:"flattened"`
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	sess, err := n.Service.Open(ctx, n.Document)
	if err != nil {
		return err
	}

	out := exported{
		Name:        sess.Name,
		ActiveIndex: sess.ActiveIndex,
		NextID:      sess.Tree.NextID(),
		Flattened:   []row{},
	}
	for i, e := range sess.Entries() {
		out.Flattened = append(out.Flattened, row{
			Index:    i,
			ID:       e.Item.ID,
			Name:     e.Item.Name,
			Depth:    e.Depth,
			ParentID: e.Item.ParentID,
			Kind:     e.Item.Kind,
		})
	}

	w := n.Out
	if w == nil {
		w = os.Stdout
	}
	switch n.Format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", n.Format)
	}
}
