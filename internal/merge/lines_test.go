package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendLines(t *testing.T) {
	planned := []byte("node_modules/\nbower_components/\ndist/\n")

	tests := []struct {
		name      string
		existing  string
		want      string
		wantAdded []string
	}{
		{
			name:      "empty file",
			existing:  "",
			want:      "node_modules/\nbower_components/\ndist/\n",
			wantAdded: []string{"node_modules/", "bower_components/", "dist/"},
		},
		{
			name:      "keeps user lines",
			existing:  ".env\nnode_modules/\n",
			want:      ".env\nnode_modules/\nbower_components/\ndist/\n",
			wantAdded: []string{"bower_components/", "dist/"},
		},
		{
			name:      "missing trailing newline",
			existing:  ".env",
			want:      ".env\nnode_modules/\nbower_components/\ndist/\n",
			wantAdded: []string{"node_modules/", "bower_components/", "dist/"},
		},
		{
			name:     "already complete",
			existing: "dist/\n  node_modules/  \nbower_components/\n",
			want:     "dist/\n  node_modules/  \nbower_components/\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, added := appendLines([]byte(tt.existing), planned)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.wantAdded, added)
		})
	}
}
