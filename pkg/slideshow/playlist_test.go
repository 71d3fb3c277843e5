package slideshow

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populatedPhotoFs(t *testing.T) afero.Fs {
	t.Helper()
	tfs := afero.NewMemMapFs()
	for _, name := range []string{
		"b.jpg", "a.png", "C.JPEG", "d.webp", "e.tiff", "notes.txt", "clip.mp4",
	} {
		require.NoError(t, afero.WriteFile(tfs, "/photos/"+name, []byte{0}, 0o644))
	}
	require.NoError(t, tfs.MkdirAll("/photos/nested.jpg", 0o755))
	return tfs
}

func TestLoadPlaylistFiltersAndSortsSupportedImages(t *testing.T) {
	is := is.New(t)

	playlist, err := LoadPlaylist(populatedPhotoFs(t), "/photos", false)
	is.NoErr(err)
	is.Equal(playlist.entries, []string{
		"/photos/C.JPEG", "/photos/a.png", "/photos/b.jpg", "/photos/d.webp", "/photos/e.tiff",
	})
}

func TestLoadPlaylistShuffleKeepsSameEntries(t *testing.T) {
	oldShuffler := shuffler
	shuffler = rand.New(rand.NewSource(1))
	defer func() { shuffler = oldShuffler }()

	tfs := populatedPhotoFs(t)

	sorted, err := LoadPlaylist(tfs, "/photos", false)
	require.NoError(t, err)
	shuffled, err := LoadPlaylist(tfs, "/photos", true)
	require.NoError(t, err)

	assert.ElementsMatch(t, sorted.entries, shuffled.entries)
}

func TestLoadPlaylistMissingFolderErrors(t *testing.T) {
	is := is.New(t)

	_, err := LoadPlaylist(afero.NewMemMapFs(), "/absent", false)
	is.True(err != nil)

	_, err = LoadPlaylist(afero.NewMemMapFs(), "", false)
	is.True(err != nil)
}

func TestPlaylistCursorWrapsModuloLength(t *testing.T) {
	is := is.New(t)

	playlist := Playlist{entries: []string{"a", "b", "c"}}

	for n := 1; n <= 7; n++ {
		playlist.Advance()
		is.Equal(playlist.Index(), n%3)
	}

	playlist = Playlist{entries: []string{"a", "b", "c"}}
	playlist.Retreat()
	is.Equal(playlist.Index(), 2)
}

func TestEmptyPlaylistOperations(t *testing.T) {
	is := is.New(t)

	playlist := Playlist{}
	playlist.Advance()
	playlist.Retreat()
	is.Equal(playlist.Index(), 0)

	_, ok := playlist.Current()
	is.True(!ok)
}
