package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my-id_path/name!.png", "myidpathnamepng"},
		{"myidpathname.png", "myidpathnamepng"},
		{"keep inner spaces", "keep inner spaces"},
		{"trailing spaces   ", "trailing spaces"},
		{"  leading kept", "  leading kept"},
		{"tab\tand\nnewline", "tabandnewline"},
		{"Привет_мир", "Приветмир"},
		{"E=mc²", "Emc²"},
		{"H₂O ① ❶", "H₂O ① ❶"},
		{"٣_४", "٣४"},
		{"½ ⑩ Ⅻ", ""},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	assert.Equal(t, "run1Emc²0101aaajpg", BuildFilename("run1", "E=mc²-01-01", "aaa.jpg"))
	assert.Equal(t, "run1SampleArticle0101aaajpg", BuildFilename("run1", "Sample-Article-01-01", "aaa.jpg"))
	assert.Equal(t, "run1SampleArticle0101bbbpng", BuildFilename("run1", "Sample-Article-01-01", "bbb.png"))
	assert.Equal(t, "my run", BuildFilename("my run", "", " "))
}

func TestBuildFilenameCollapse(t *testing.T) {
	// dropped separators make these collide; this is kept as-is
	assert.Equal(t, BuildFilename("a", "b", "c.jpg"), BuildFilename("ab", "", "cjpg"))
}
