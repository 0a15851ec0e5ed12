package snake

import (
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/tree"
)

// Choice is one row of an item picker.
type Choice struct {
	ID     int
	Name   string
	Indent string
}

// ParentChoices lists the root followed by every folder that may become the
// parent of id. id and its descendants are left out, as are leaves. Pass -1
// to keep every folder.
func ParentChoices(entries []tree.Entry, id int) []Choice {
	choices := []Choice{{ID: tree.NoParent, Name: "(root)"}}
	skipDepth := -1
	for _, e := range entries {
		if skipDepth >= 0 {
			if e.Depth > skipDepth {
				continue
			}
			skipDepth = -1
		}
		if e.Item.ID == id {
			skipDepth = e.Depth
			continue
		}
		if e.Item.Kind == tree.Leaf {
			continue
		}
		choices = append(choices, Choice{
			ID:     e.Item.ID,
			Name:   e.Item.Name,
			Indent: strings.Repeat("  ", e.Depth+1),
		})
	}
	return choices
}

// MovementChoices labels the movements offered for one step. The Choice ID
// indexes into moves.
func MovementChoices(s *tree.Store, moves []tree.Movement) []Choice {
	choices := make([]Choice, 0, len(moves))
	for i, m := range moves {
		name := m.Action.String()
		if target, ok := s.ItemByID(m.TargetID); ok {
			name += " " + target.Name
		}
		choices = append(choices, Choice{ID: i, Name: name})
	}
	return choices
}

// PromptChoice lets the user pick from choices and returns the chosen id.
func PromptChoice(cmd *cobra.Command, label string, choices []Choice) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜ {{ .Indent }}{{ .Name | bold }} {{ .ID | faint }}",
		Inactive: "  {{ .Indent }}{{ .Name }} {{ .ID | faint }}",
		Selected: "{{ .Name | bold }}",
	}

	searcher := func(input string, index int) bool {
		name := strings.ReplaceAll(strings.ToLower(choices[index].Name), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     choices,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return choices[i].ID, nil
}
