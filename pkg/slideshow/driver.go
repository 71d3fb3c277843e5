package slideshow

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/spf13/afero"
	"github.com/tauraamui/photoframed/internal/xerror"
	"github.com/tauraamui/photoframed/pkg/configdef"
	"github.com/tauraamui/photoframed/pkg/display"
	"github.com/tauraamui/photoframed/pkg/frame"
	"github.com/tauraamui/photoframed/pkg/log"
)

var fs = afero.NewOsFs()

const stopJoinTimeout = 3 * time.Second

type command int

const (
	cmdNext command = iota
	cmdPrevious
	cmdShowNow
	cmdSwitchOrientation
)

// FolderRecorder is notified whenever a playlist is loaded from
// a folder, for recent-folder bookkeeping.
type FolderRecorder interface {
	RecordUse(folder string, orientation string) error
}

// Driver owns the playlist and the background tick loop which
// renders and transmits a frame per interval. Manual commands
// arrive over a queue consumed between render steps so user
// navigation and the autonomous tick never race.
type Driver struct {
	mu        sync.Mutex
	running   int32
	sink      display.Sink
	resolver  configdef.Resolver
	recorder  FolderRecorder
	cfg       configdef.Values
	resolved  configdef.Values
	playlist  *Playlist
	cache     *ristretto.Cache
	commands  chan command
	ctx       context.Context
	ctxCancel context.CancelFunc
	stopped   chan struct{}
}

// New allocates a stopped driver. The recorder may be nil.
func New(sink display.Sink, resolver configdef.Resolver, recorder FolderRecorder) *Driver {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1000,
		MaxCost:     40,
		BufferItems: 64,
	})
	if err != nil {
		log.Error("unable to initialise composed frame cache: %v...", err)
	}

	return &Driver{
		sink:     sink,
		resolver: resolver,
		recorder: recorder,
		cache:    cache,
		commands: make(chan command, 16),
	}
}

func (d *Driver) IsRunning() bool {
	return atomic.LoadInt32(&d.running) != 0
}

// Start loads the playlist for the active orientation's folder
// and begins the tick loop. Fails without a sink or with an
// empty playlist, leaving the driver stopped.
func (d *Driver) Start() error {
	if d.sink == nil {
		return xerror.New("no display attached").ToError()
	}
	if d.IsRunning() {
		return xerror.New("slideshow already running").ToError()
	}

	cfg, err := d.resolver.Resolve()
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.cfg = cfg
	d.resolved = cfg
	err = d.reloadPlaylistLocked()
	empty := err == nil && d.playlist.Len() == 0
	d.mu.Unlock()

	if err != nil {
		return err
	}
	if empty {
		return xerror.New("no images found").ToError()
	}

	d.ctx, d.ctxCancel = context.WithCancel(context.Background())
	d.stopped = make(chan struct{})
	atomic.StoreInt32(&d.running, 1)

	go d.run(d.ctx, d.stopped)

	log.Info("slideshow started with %d images", d.Len())
	return nil
}

// Stop signals the tick loop to exit and joins it with a
// bounded timeout.
func (d *Driver) Stop() {
	if !d.IsRunning() {
		return
	}

	atomic.StoreInt32(&d.running, 0)
	d.ctxCancel()

	select {
	case <-d.stopped:
	case <-time.After(stopJoinTimeout):
		log.Warn("timed out waiting for slideshow loop to stop")
	}
	log.Info("slideshow stopped")
}

// Next moves the cursor forward without rendering; the change
// shows on the next tick unless ShowNow is requested.
func (d *Driver) Next() { d.enqueue(cmdNext) }

// Previous moves the cursor backward without rendering.
func (d *Driver) Previous() { d.enqueue(cmdPrevious) }

// ShowNow renders the image under the cursor immediately.
func (d *Driver) ShowNow() { d.enqueue(cmdShowNow) }

// SwitchOrientation flips the active orientation, reloads the
// playlist from the other folder and redraws immediately.
func (d *Driver) SwitchOrientation() { d.enqueue(cmdSwitchOrientation) }

func (d *Driver) Index() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.playlist == nil {
		return 0
	}
	return d.playlist.Index()
}

func (d *Driver) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.playlist == nil {
		return 0
	}
	return d.playlist.Len()
}

func (d *Driver) enqueue(cmd command) {
	if !d.IsRunning() {
		return
	}
	select {
	case d.commands <- cmd:
	default:
		log.Warn("slideshow command queue full, dropping command")
	}
}

func (d *Driver) run(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)

	for {
		d.tick()

		timer := time.NewTimer(d.interval())
	waiting:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case cmd := <-d.commands:
				d.apply(cmd)
			case <-timer.C:
				break waiting
			}
		}
	}
}

// tick runs one slideshow cycle: pick up config changes from
// disk, render and transmit the current image, advance the
// cursor. A failed frame is logged and skipped, never fatal.
func (d *Driver) tick() {
	d.maybeReloadConfig()

	d.mu.Lock()
	path, ok := d.playlist.Current()
	d.mu.Unlock()

	if !ok {
		log.Debug("playlist empty, nothing to show")
		return
	}

	if err := d.render(path); err != nil {
		log.Error("unable to display %s: %v", path, err)
	}

	d.mu.Lock()
	d.playlist.Advance()
	d.mu.Unlock()
}

func (d *Driver) apply(cmd command) {
	switch cmd {
	case cmdNext:
		d.mu.Lock()
		d.playlist.Advance()
		d.mu.Unlock()
	case cmdPrevious:
		d.mu.Lock()
		d.playlist.Retreat()
		d.mu.Unlock()
	case cmdShowNow:
		d.showCurrent()
	case cmdSwitchOrientation:
		d.mu.Lock()
		d.cfg.Photos.Orientation = d.cfg.Photos.Orientation.Flipped()
		if err := d.reloadPlaylistLocked(); err != nil {
			log.Error("unable to reload playlist after orientation switch: %v", err)
		}
		d.mu.Unlock()
		d.showCurrent()
	}
}

func (d *Driver) showCurrent() {
	d.mu.Lock()
	path, ok := d.playlist.Current()
	d.mu.Unlock()

	if !ok {
		return
	}
	if err := d.render(path); err != nil {
		log.Error("unable to display %s: %v", path, err)
	}
}

// maybeReloadConfig re-reads the config from disk and reloads
// the playlist only when the orientation or active folder
// actually changed since the last read; the cursor resets to
// the start of the new folder. Comparing against the last
// resolved values rather than the effective ones keeps a manual
// orientation switch alive across ticks until the config on
// disk itself changes.
func (d *Driver) maybeReloadConfig() {
	fresh, err := d.resolver.Resolve()
	if err != nil {
		log.Error("unable to re-read config during slideshow loop: %v", err)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	changed := fresh.Photos.Orientation != d.resolved.Photos.Orientation ||
		fresh.Photos.PortraitFolder != d.resolved.Photos.PortraitFolder ||
		fresh.Photos.LandscapeFolder != d.resolved.Photos.LandscapeFolder

	d.resolved = fresh

	if !changed {
		override := d.cfg.Photos.Orientation
		d.cfg = fresh
		d.cfg.Photos.Orientation = override
		return
	}

	d.cfg = fresh
	log.Info("config change detected, reloading playlist")
	if err := d.reloadPlaylistLocked(); err != nil {
		log.Error("unable to reload playlist after config change: %v", err)
	}
}

// reloadPlaylistLocked rebuilds the playlist for the active
// folder. A missing folder leaves an empty playlist behind so
// the loop idles rather than crashing.
func (d *Driver) reloadPlaylistLocked() error {
	folder := d.cfg.ActiveFolder()
	playlist, err := LoadPlaylist(fs, folder, d.cfg.Slideshow.Shuffle)
	if err != nil {
		d.playlist = &Playlist{}
		log.Error("unable to load playlist: %v", err)
		return nil
	}

	d.playlist = playlist

	if d.recorder != nil && playlist.Len() > 0 {
		if err := d.recorder.RecordUse(folder, string(d.cfg.Photos.Orientation)); err != nil {
			log.Error("unable to record folder use: %v", err)
		}
	}
	return nil
}

func (d *Driver) interval() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	secs := d.cfg.Slideshow.Interval
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}

// render composes the image for the panel geometry, applies the
// overlay and transmits the result.
func (d *Driver) render(path string) error {
	d.mu.Lock()
	cfg := d.cfg
	index, count := d.playlist.Index(), d.playlist.Len()
	d.mu.Unlock()

	geom := frame.GeometryFor(
		cfg.Photos.Orientation, cfg.Display.Inverse, d.sink.Width(), d.sink.Height(),
	)

	base, err := d.composeCached(path, geom)
	if err != nil {
		return err
	}

	lines := []string{}
	if cfg.Slideshow.ShowTime {
		lines = append(lines, frame.Clock())
	}
	if cfg.Slideshow.ShowCounter && count > 0 {
		lines = append(lines, fmt.Sprintf("[%d/%d]", index+1, count))
	}

	return display.Transmit(d.sink, frame.ApplyOverlay(base, lines, cfg.Photos.Orientation))
}

// composeCached keeps recently composed base frames around so a
// manual back-and-forth doesn't re-decode the same photo.
func (d *Driver) composeCached(path string, geom frame.Geometry) (image.Image, error) {
	key := path + "|" + geom.String()
	if d.cache != nil {
		if entry, ok := d.cache.Get(key); ok {
			if img, ok := entry.(image.Image); ok {
				return img, nil
			}
		}
	}

	img, err := frame.Compose(path, geom, true)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		d.cache.Set(key, img, 1)
	}
	return img, nil
}
