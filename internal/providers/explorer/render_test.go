package explorer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/dired/backend/internal/vfs"
)

func TestFormatLong(t *testing.T) {
	mod := time.Date(2026, time.March, 7, 9, 30, 0, 0, time.UTC)
	snap := &Snapshot{
		Path: "/dir",
		Entries: []Entry{
			{Name: "a.txt", Kind: vfs.KindFile, Size: 1536, Mode: 0o644, OwnerID: 1000, ModTime: mod},
		},
	}

	lines := FormatLong(snap)
	assert.Equal(t, []string{"-rw-r--r--   1000    1.5KB Mar  7 09:30 a.txt"}, lines)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "0B", humanSize(0))
	assert.Equal(t, "512B", humanSize(512))
	assert.Equal(t, "1.0KB", humanSize(1024))
	assert.Equal(t, "1.5KB", humanSize(1536))
	assert.Equal(t, "2.0MB", humanSize(2<<20))
	assert.Equal(t, "1.0GB", humanSize(1<<30))
}
