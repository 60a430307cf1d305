package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pvzedit/profile"
	"pvzedit/types"
	"pvzedit/writers"
)

// writeUser writes a user file with no plants and the given achievements and minigames set.
func writeUser(t *testing.T, path string, achievements []int, minigames []int) {
	t.Helper()
	b := make([]byte, profile.MinFileSize(0))
	for _, a := range achievements {
		writers.PutU16(b, profile.AchievementOffset(0)+2*a, 1)
	}
	for _, m := range minigames {
		writers.PutU32(b, 0x04C+4*m, 1)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewly(t *testing.T) {
	before := &types.Profile{}
	after := &types.Profile{}
	after.General.Name = "Tester"
	after.Achievements.Immortal = true
	after.Achievements.Grounded = true
	before.Achievements.Grounded = true
	after.Challenges.Minigames.PogoParty = true

	got := Newly(before, after)
	want := []Unlock{
		{"Tester", CatAchievement, "Immortal"},
		{"Tester", CatMinigame, "Pogo Party"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%v: got %v, want %v", i, got[i], want[i])
		}
	}

	// Losing things is not news
	if lost := Newly(after, before); len(lost) != 0 {
		t.Errorf("got %v", lost)
	}
}

func TestHandleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user2.dat")
	writeUser(t, path, []int{0}, nil)

	w := New(dir)
	w.Settle = 0
	p, err := w.read(path)
	if err != nil {
		t.Fatal(err)
	}
	w.seen[path] = p

	writeUser(t, path, []int{0, 19}, []int{3})
	out := make(chan Unlock, 10)
	w.handleFile(path, out)
	close(out)

	got := []Unlock{}
	for u := range out {
		got = append(got, u)
	}
	if len(got) != 2 || got[0].Name != "Mustache Mode" || got[1].Name != "It's Raining Seeds" {
		t.Errorf("got %v", got)
	}
	if got[0].Profile != "user2.dat" {
		t.Errorf("unlisted profile named %q", got[0].Profile)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user1.dat")
	writeUser(t, path, nil, nil)

	w := New(dir)
	w.Settle = 10 * time.Millisecond
	out := make(chan Unlock, 10)
	if err := w.Start(out); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	writeUser(t, path, []int{9}, nil)

	select {
	case u := <-out:
		if u.Name != "Grounded" || u.Category != CatAchievement {
			t.Errorf("got %v", u)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no unlock reported")
	}
}
