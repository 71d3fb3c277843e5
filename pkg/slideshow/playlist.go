package slideshow

import (
	"math/rand"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/tauraamui/photoframed/internal/xerror"
)

var supportedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".gif":  {},
	".webp": {},
	".tiff": {},
}

var shuffler = rand.New(rand.NewSource(time.Now().UnixNano()))

// Playlist is the ordered set of image paths for one
// orientation's folder, with the cursor into it. Owned
// exclusively by the slideshow driver.
type Playlist struct {
	entries []string
	index   int
}

// LoadPlaylist enumerates supported image files in the folder,
// sorted by name or shuffled when requested.
func LoadPlaylist(fs afero.Fs, folder string, shuffle bool) (*Playlist, error) {
	if len(folder) == 0 {
		return nil, xerror.New("no image folder configured").ToError()
	}

	infos, err := afero.ReadDir(fs, folder)
	if err != nil {
		return nil, xerror.Errorf("unable to read image folder %s: %w", folder, err).ToError()
	}

	entries := []string{}
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(info.Name()))
		if _, ok := supportedImageExtensions[ext]; !ok {
			continue
		}
		entries = append(entries, filepath.Join(folder, info.Name()))
	}

	sort.Strings(entries)
	if shuffle {
		shuffler.Shuffle(len(entries), func(i, j int) {
			entries[i], entries[j] = entries[j], entries[i]
		})
	}

	return &Playlist{entries: entries}, nil
}

func (p *Playlist) Len() int {
	return len(p.entries)
}

func (p *Playlist) Index() int {
	return p.index
}

// Current returns the path under the cursor, or false for an
// empty playlist.
func (p *Playlist) Current() (string, bool) {
	if len(p.entries) == 0 {
		return "", false
	}
	return p.entries[p.index], true
}

// Advance moves the cursor forward, wrapping modulo length.
func (p *Playlist) Advance() {
	if len(p.entries) == 0 {
		return
	}
	p.index = (p.index + 1) % len(p.entries)
}

// Retreat moves the cursor backward, wrapping modulo length.
func (p *Playlist) Retreat() {
	if len(p.entries) == 0 {
		return
	}
	p.index = (p.index - 1 + len(p.entries)) % len(p.entries)
}
