package session

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"pvzedit/profile"
	"pvzedit/types"
	"pvzedit/writers"
)

// userFile is a plausible user file with two plants and some junk in the unknown areas.
func userFile(t *testing.T) []byte {
	t.Helper()
	b := make([]byte, profile.MinFileSize(2)+12)
	for i := range b {
		b[i] = byte(i * 7)
	}
	for at, v := range map[int]uint32{
		profile.OffsetPlantCount:       2,
		0x008:                          50,
		0x1F4:                          1,
		profile.PlantOffset(0):         38,
		profile.PlantOffset(1):         1,
		profile.PlantOffset(1) + 0x04:  uint32(types.LocWheelBarrow),
		profile.AchievementOffset(2):   1,
		profile.ZombatarOffset(2) + 40: 1,
	} {
		if err := writers.PutU32(b, at, v); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

func setup(t *testing.T) (*Session, []byte) {
	t.Helper()
	dir := t.TempDir()
	data := userFile(t)
	handle := types.NewHandle(dir, "Tester", 0, 1)
	if err := os.WriteFile(handle.FilePath, data, 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(handle)
	if err != nil {
		t.Fatal(err)
	}
	return s, data
}

func TestDirtyAndRevert(t *testing.T) {
	s, _ := setup(t)
	if s.Dirty() {
		t.Fatal("fresh session is dirty")
	}

	s.Current.ZenGarden.Plants[0].Column = 3
	if !s.Dirty() {
		t.Fatal("plant edit not noticed")
	}
	if s.Saved.ZenGarden.Plants[0].Column == 3 {
		t.Fatal("edit leaked into the snapshot")
	}

	s.Revert()
	if s.Dirty() {
		t.Fatal("dirty after revert")
	}

	// Back to the same value is not an edit
	s.Current.General.Level++
	s.Current.General.Level--
	if s.Dirty() {
		t.Error("dirty after undoing an edit by hand")
	}

	s.Current.ZenGarden.Plants = s.Current.ZenGarden.Plants[:1]
	if !s.Dirty() {
		t.Error("plant removal not noticed")
	}
}

func TestSave(t *testing.T) {
	s, original := setup(t)
	s.Current.General.Money = 12345
	s.Current.Achievements.Immortal = true
	if err := s.Current.ZenGarden.RemovePlant(0); err != nil {
		t.Fatal(err)
	}

	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("dirty after save")
	}

	backup, err := os.ReadFile(BackupName(s.Handle.FilePath))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(backup, original) {
		t.Error("backup is not the original file")
	}

	written, err := os.ReadFile(s.Handle.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(written, s.Original) {
		t.Error("session does not hold what was written")
	}
	p, err := profile.Decode(written, s.Handle)
	if err != nil {
		t.Fatal(err)
	}
	if p.General.Money != 12340 || !p.Achievements.Immortal || !p.Achievements.HomeLawnSecurity {
		t.Errorf("saved profile: %+v %+v", p.General, p.Achievements)
	}
	if len(p.ZenGarden.Plants) != 1 || p.ZenGarden.Plants[0].Location != types.LocWheelBarrow {
		t.Errorf("saved plants: %+v", p.ZenGarden.Plants)
	}
	if !p.Zombatar.CreatedBefore {
		t.Error("zombatar flag lost")
	}
	if s.Current.General.Money != 12340 {
		t.Errorf("session money is %v after save", s.Current.General.Money)
	}

	entries, _ := os.ReadDir(filepath.Dir(s.Handle.FilePath))
	if len(entries) != 2 {
		t.Errorf("expected the file and its backup, found %v entries", len(entries))
	}
}

func TestSaveFailureLeavesFileAlone(t *testing.T) {
	s, original := setup(t)
	s.Current.General.Shop.Slots = 2

	err := s.Save()
	if !errors.Is(err, profile.ErrValueOutOfRange) {
		t.Fatalf("expected ErrValueOutOfRange, got %v", err)
	}

	data, err := os.ReadFile(s.Handle.FilePath)
	if err != nil || !bytes.Equal(data, original) {
		t.Error("file changed by a failed save")
	}
	entries, _ := os.ReadDir(filepath.Dir(s.Handle.FilePath))
	if len(entries) != 1 {
		t.Errorf("failed save left %v files behind", len(entries))
	}
}

func TestStash(t *testing.T) {
	s, _ := setup(t)
	stash := filepath.Join(t.TempDir(), "pvzedit.tmp")

	if _, err := Retrieve(stash); !errors.Is(err, ErrNoStash) {
		t.Errorf("expected ErrNoStash, got %v", err)
	}

	s.Current.ZenGarden.Glove = true
	s.Current.ZenGarden.Plants[1].Column = 4
	if err := s.Stash(stash); err != nil {
		t.Fatal(err)
	}

	again, err := Retrieve(stash)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Dirty() {
		t.Error("edits lost in the stash")
	}
	if !again.Current.ZenGarden.Glove || again.Current.ZenGarden.Plants[1].Column != 4 {
		t.Errorf("stashed profile: %+v", again.Current.ZenGarden)
	}
	if again.Saved.ZenGarden.Glove {
		t.Error("snapshot picked up an edit")
	}
	if again.Handle != s.Handle {
		t.Errorf("handle %+v != %+v", again.Handle, s.Handle)
	}

	a, _ := s.Encode()
	b, _ := again.Encode()
	if !bytes.Equal(a, b) {
		t.Error("stashed session would save something else")
	}
}

func TestReload(t *testing.T) {
	s, _ := setup(t)
	s.Current.General.Level = 30
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() || s.Current.General.Level == 30 {
		t.Error("reload kept edits")
	}
}

func TestBackupName(t *testing.T) {
	if got := BackupName(filepath.Join("a", "user3.dat")); got != filepath.Join("a", "user3.old") {
		t.Error(got)
	}
}

func TestSaveRestoresBackupWhenReplaceFails(t *testing.T) {
	s, original := setup(t)
	path := s.Handle.FilePath
	s.Current.General.Level = 12

	defer func() { rename = os.Rename }()
	rename = func(from, to string) error {
		if to == path && from != BackupName(path) {
			return os.ErrPermission
		}
		return os.Rename(from, to)
	}

	if err := s.Save(); !errors.Is(err, os.ErrPermission) {
		t.Fatalf("expected the rename failure, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(data, original) {
		t.Fatalf("%v not restored (%v)", path, err)
	}
	if _, err := os.Stat(BackupName(path)); !os.IsNotExist(err) {
		t.Error("backup left behind after restoring it")
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("%v files left behind", len(entries))
	}
	if !s.Dirty() {
		t.Error("a failed save should keep the edits")
	}
}
