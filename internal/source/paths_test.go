package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPath(t *testing.T) {
	fs := NewFileSetWithBase("/home/user/project")
	id := fs.AddVirtual("/home/user/project/src/main.zc", nil)
	f := fs.Get(id)

	assert.Equal(t, "/home/user/project/src/main.zc", f.FormatPath(PathAbsolute, ""))
	assert.Equal(t, "src/main.zc", f.FormatPath(PathRelative, fs.BaseDir()))
	assert.Equal(t, "main.zc", f.FormatPath(PathBasename, ""))
	assert.Equal(t, "/home/user/project/src/main.zc", f.FormatPath(PathAsIs, ""))
	assert.Equal(t, "/home/user/project/src/main.zc", f.FormatPath(PathAuto, ""))
}

func TestFormatPathAutoShortensLongAbsolute(t *testing.T) {
	fs := NewFileSet()
	long := fs.Get(fs.AddVirtual("/very/long/absolute/path/to/some/nested/directory/file.zc", nil))
	short := fs.Get(fs.AddVirtual("lib/io.zc", nil))

	assert.Equal(t, "file.zc", long.FormatPath(PathAuto, ""))
	assert.Equal(t, "lib/io.zc", short.FormatPath(PathAuto, ""))
}
