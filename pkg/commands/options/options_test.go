package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/nestlist/pkg/tree"
)

func TestParseParent(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    int
		wantErr bool
	}{
		"empty":    {in: "", want: tree.NoParent},
		"root":     {in: "Root", want: tree.NoParent},
		"sentinel": {in: "-1", want: tree.NoParent},
		"id":       {in: " 12 ", want: 12},
		"negative": {in: "-4", wantErr: true},
		"word":     {in: "groceries", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseParent(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExportValidate(t *testing.T) {
	o := &ExportOptions{Format: "YAML"}
	require.NoError(t, o.Validate())
	assert.Equal(t, "yaml", o.Format)

	o.Format = "toml"
	assert.Error(t, o.Validate())
}
