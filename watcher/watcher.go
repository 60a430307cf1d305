package watcher

// Watches a userdata directory while the game runs, and reports achievements and minigames as the
// game records them.

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/fsnotify/fsnotify"

	"pvzedit/profile"
	"pvzedit/tables"
	"pvzedit/types"
	"pvzedit/users"
)

type Category string

const (
	CatAchievement Category = "Achievement"
	CatMinigame    Category = "Minigame"
)

// Unlock is something a profile has that it didn't have the last time its file was read.
type Unlock struct {
	Profile  string
	Category Category
	Name     string
}

var userFile = regexp.MustCompile(`^user(\d+)\.dat$`)

type Watcher struct {
	dir string

	// Settle is how long to wait after a write before reading the file, so the game can finish
	// with it.
	Settle time.Duration

	watcher *fsnotify.Watcher
	seen    map[string]*types.Profile // by file path
}

func New(dir string) *Watcher {
	return &Watcher{dir: dir, Settle: 2 * time.Second, seen: map[string]*types.Profile{}}
}

// Start reads every user file as it is now, then reports anything newly unlocked on out until
// Stop is called.
func (w *Watcher) Start(out chan<- Unlock) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = fw

	matches, _ := filepath.Glob(filepath.Join(w.dir, "user*.dat"))
	for _, path := range matches {
		if p, err := w.read(path); err == nil {
			w.seen[path] = p
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if userFile.MatchString(filepath.Base(event.Name)) {
						w.handleFile(event.Name, out)
					}
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Println("watcher:", err)
			}
		}
	}()

	err = fw.Add(w.dir)
	if err != nil {
		fw.Close()
	}
	return err
}

func (w *Watcher) Stop() {
	if w.watcher != nil {
		w.watcher.Close()
	}
}

// read decodes one user file, named from users.dat if it is listed there.
func (w *Watcher) read(path string) (*types.Profile, error) {
	m := userFile.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return nil, os.ErrInvalid
	}
	index, _ := strconv.ParseUint(m[1], 10, 32)
	handle := types.NewHandle(w.dir, filepath.Base(path), 0, uint32(index))

	handles, _ := users.Load(w.dir)
	for _, h := range handles {
		if h.UserIndex == handle.UserIndex {
			handle = h
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return profile.Decode(data, handle)
}

func (w *Watcher) handleFile(path string, out chan<- Unlock) {
	time.Sleep(w.Settle)

	p, err := w.read(path)
	if err != nil {
		log.Println("watcher: failed to read", path, "-", err)
		return
	}

	before, ok := w.seen[path]
	w.seen[path] = p
	if !ok {
		// A new profile.  Everything it has is news.
		before = &types.Profile{}
	}
	for _, u := range Newly(before, p) {
		out <- u
	}
}

// Newly lists what after has unlocked that before hadn't.
func Newly(before *types.Profile, after *types.Profile) []Unlock {
	out := []Unlock{}
	name := after.General.Name

	was, is := before.Achievements.Flags(), after.Achievements.Flags()
	for i := range is {
		if *is[i] && !*was[i] {
			out = append(out, Unlock{name, CatAchievement, tables.Achievements[i]})
		}
	}

	was, is = before.Challenges.Minigames.Flags(), after.Challenges.Minigames.Flags()
	for i := range is {
		if *is[i] && !*was[i] {
			out = append(out, Unlock{name, CatMinigame, tables.Minigames[i]})
		}
	}

	return out
}
