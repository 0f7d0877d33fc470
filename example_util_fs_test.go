package lantern_test

import (
	"testing/fstest"
	"time"
)

// templateFS builds an in-memory fs.FS from file names and their contents.
// Normally you'd use something like embed.FS or os.DirFS for this.
func templateFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, contents := range files {
		fsys[name] = &fstest.MapFile{
			Data:    []byte(contents),
			Mode:    0444,
			ModTime: time.Now(),
		}
	}
	return fsys
}
