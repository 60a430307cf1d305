package main

// Save file editor for Plants vs. Zombies
//
// example usage:
//
// pvzedit list
// pvzedit load Alice
// pvzedit set money 99990
// pvzedit set achievements.immortal yes
// pvzedit set fertilizer 20
// pvzedit addplant marigold location=zen column=3 row=1 color=pink
// pvzedit delplant 0
// pvzedit status
// pvzedit save
//
// Edits made between load and save are kept in pvzedit.tmp.

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"pvzedit/config"
	"pvzedit/profile"
	"pvzedit/render"
	"pvzedit/session"
	"pvzedit/tables"
	"pvzedit/types"
	"pvzedit/users"
	"pvzedit/utils"
	"pvzedit/watcher"
)

const stashFile = "pvzedit.tmp"

var helpText = []string{
	"Plants vs. Zombies Save File Editor",
	"",
	"Usage: pvzedit [--dir userdata_dir] command [args]",
	"",
	"Commands:",
	"help: display this text",
	"dir: show which userdata directory is in use",
	"setdir (dir): remember a userdata directory",
	"list: list the profiles in users.dat",
	"load (name): start editing a profile",
	"get (what): display a field, or every field under a prefix such as \"general\"",
	"set (what) (to): change a field",
	"summary: show the profile at a glance",
	"achievements (all|none|invert): set every achievement at once",
	"plants: list the zen garden plants",
	"addplant (type) [field=value...]: add a plant",
	"setplant (n) (field) (to): change plant n",
	"delplant (n): remove plant n",
	"dump: show the whole profile",
	"hex (offset) (length): show raw bytes of the file as it would be saved",
	"status: show what has been changed",
	"revert: throw away all changes",
	"save: write the changes back (the old file is kept as userN.old)",
	"export [file]: write the profile as YAML",
	"import (file): replace the profile with an edited YAML export",
	"watch: report achievements and minigames as the game unlocks them",
	"render (file.png): draw the zen garden",
	"",
	"Notes:",
	"   Field names need not be typed in full: \"money\" finds \"general.money\".",
	"   Booleans take yes/no, dates take YYYY-MM-DD or \"never\", and",
	"fertilizer/bug spray take a number of uses or \"none\".",
}

func main() {
	err := main2(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func main2(args []string) error {
	flagDir := ""
	if len(args) > 1 && args[0] == "--dir" {
		flagDir = args[1]
		args = args[2:]
	}

	cmd := "help"
	if len(args) < 1 {
		fmt.Println("No args detected - falling back to \"help\", since you clearly need it...")
	} else {
		cmd = args[0]
		args = args[1:]
	}
	dir := config.Dir(flagDir, config.FileName)

	switch cmd {
	case "help":
		for _, line := range helpText {
			fmt.Println(line)
		}

	case "dir":
		fmt.Println(dir)

	case "setdir":
		if len(args) < 1 {
			return errors.New("Set the directory to what?")
		}
		if err := config.SetDir(config.FileName, args[0]); err != nil {
			return err
		}
		fmt.Println("Userdata directory set to", args[0])

	case "list":
		handles, err := users.Load(dir)
		if err != nil {
			return err
		}
		if len(handles) == 0 {
			fmt.Println("No profiles in", dir)
		}
		for _, h := range handles {
			fmt.Printf("%-12v %v\n", types.FileName(h.UserIndex), h.Name)
		}

	case "load":
		if len(args) < 1 {
			return errors.New("Load what?  Profile name expected.")
		}
		handles, err := users.Load(dir)
		if err != nil {
			return err
		}
		handle, err := users.Find(handles, args[0])
		if err != nil {
			return err
		}
		s, err := session.Open(handle)
		if err != nil {
			return err
		}
		fmt.Println("Loaded", handle.Name, "from", handle.FilePath)
		return s.Stash(stashFile)

	case "get":
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		if len(args) < 1 {
			return errors.New("Get what?  Gettables are:\n" + fieldList())
		}
		fields, err := findFields(args[0])
		if err != nil {
			return err
		}
		for _, f := range fields {
			fmt.Printf("%v: %v\n", f.Name, f.Show(s.Current))
		}

	case "set":
		if len(args) < 2 {
			return errors.New("Usage: set (what) (to).  Settables are:\n" + fieldList())
		}
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		f, err := findField(args[0])
		if err != nil {
			return err
		}
		if err := f.Set(s.Current, args[1]); err != nil {
			return err
		}
		fmt.Println(f.Name, "set to", f.Show(s.Current))
		return s.Stash(stashFile)

	case "summary":
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		fmt.Print(summary(s.Current))

	case "achievements":
		if len(args) < 1 {
			return errors.New("Usage: achievements (all|none|invert)")
		}
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		a := &s.Current.Achievements
		switch args[0] {
		case "all":
			a.SetAll(true)
		case "none":
			a.SetAll(false)
		case "invert":
			a.Invert()
		default:
			return errors.Errorf("%q: expected all, none or invert", args[0])
		}
		fmt.Printf("%v of %v achievements now earned\n", a.Count(), len(tables.Achievements))
		return s.Stash(stashFile)

	case "plants":
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		if len(s.Current.ZenGarden.Plants) == 0 {
			fmt.Println("No plants")
		}
		for i, pl := range s.Current.ZenGarden.Plants {
			fmt.Println(describePlant(i, &pl))
		}

	case "addplant":
		if len(args) < 1 {
			return errors.New("Add what?  e.g. addplant marigold location=zen column=0 row=0")
		}
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		pl := types.Plant{}
		if err := profile.SetPlantField(&pl, "type", args[0]); err != nil {
			return err
		}
		for _, arg := range args[1:] {
			k, v, ok := strings.Cut(arg, "=")
			if !ok {
				return errors.Errorf("expected field=value, got %q.  Plant fields are: %v", arg, strings.Join(profile.PlantFieldNames(), ", "))
			}
			if err := profile.SetPlantField(&pl, k, v); err != nil {
				return err
			}
		}
		s.Current.ZenGarden.Plants = append(s.Current.ZenGarden.Plants, pl)
		fmt.Println("Added", describePlant(len(s.Current.ZenGarden.Plants)-1, &pl))
		return s.Stash(stashFile)

	case "setplant":
		if len(args) < 3 {
			return errors.New("Usage: setplant (n) (field) (to).  Plant fields are: " + strings.Join(profile.PlantFieldNames(), ", "))
		}
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		pl, err := plantArg(s, args[0])
		if err != nil {
			return err
		}
		if err := profile.SetPlantField(pl, args[1], args[2]); err != nil {
			return err
		}
		fmt.Println(describePlant(mustAtoi(args[0]), pl))
		return s.Stash(stashFile)

	case "delplant":
		if len(args) < 1 {
			return errors.New("Delete which plant?")
		}
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		pl, err := plantArg(s, args[0])
		if err != nil {
			return err
		}
		fmt.Println("Removing", describePlant(mustAtoi(args[0]), pl))
		if err := s.Current.ZenGarden.RemovePlant(mustAtoi(args[0])); err != nil {
			return err
		}
		return s.Stash(stashFile)

	case "dump":
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		fmt.Print(utils.SDump(s.Current))

	case "hex":
		if len(args) < 2 {
			return errors.New("Usage: hex (offset) (length), e.g. hex 0x330 16")
		}
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		data, err := s.Encode()
		if err != nil {
			return err
		}
		offset, err1 := strconv.ParseInt(args[0], 0, 64)
		length, err2 := strconv.ParseInt(args[1], 0, 64)
		if err1 != nil || err2 != nil || offset < 0 || length < 0 || offset+length > int64(len(data)) {
			return errors.Errorf("%v bytes at %v is not inside the %v byte file", args[1], args[0], len(data))
		}
		fmt.Printf("%#x: %v\n", offset, utils.HexLine(data[offset:offset+length]))

	case "status":
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		fmt.Println(s.Describe())
		for _, f := range profile.Fields {
			was, is := f.Show(s.Saved), f.Show(s.Current)
			if was != is {
				fmt.Printf("   %v: %v -> %v\n", f.Name, was, is)
			}
		}
		if before, after := len(s.Saved.ZenGarden.Plants), len(s.Current.ZenGarden.Plants); before != after {
			fmt.Printf("   plants: %v -> %v\n", before, after)
		}

	case "revert":
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		s.Revert()
		fmt.Println("All changes to", s.Handle.Name, "thrown away")
		return s.Stash(stashFile)

	case "save":
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		if !s.Dirty() {
			fmt.Println("Nothing to save")
			return nil
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println(s.Handle.FilePath, "written; the previous version is", session.BackupName(s.Handle.FilePath))
		if err := os.Remove(stashFile); err != nil {
			return err
		}
		fmt.Println("Temporary data cleaned up")

	case "export":
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(s.Current)
		if err != nil {
			return err
		}
		if len(args) < 1 {
			fmt.Print(string(out))
			return nil
		}
		return os.WriteFile(args[0], out, 0644)

	case "import":
		if len(args) < 1 {
			return errors.New("Import what?  YAML filename expected.")
		}
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := importYAML(s, data); err != nil {
			return errors.Wrap(err, args[0])
		}
		fmt.Println("Imported", args[0])
		return s.Stash(stashFile)

	case "watch":
		w := watcher.New(dir)
		unlocks := make(chan watcher.Unlock)
		if err := w.Start(unlocks); err != nil {
			return err
		}
		defer w.Stop()
		fmt.Println("Watching", dir, "- press Ctrl-C to stop")

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		for {
			select {
			case u := <-unlocks:
				fmt.Printf("%v: %v unlocked - %v\n", u.Profile, u.Category, u.Name)
			case <-interrupt:
				return nil
			}
		}

	case "render":
		if len(args) < 1 {
			return errors.New("Render to where?  PNG filename expected.")
		}
		s, err := session.Retrieve(stashFile)
		if err != nil {
			return err
		}
		style, err := config.LoadRender(config.FileName)
		if err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		if err := render.WritePNG(f, s.Current, style); err != nil {
			return err
		}
		fmt.Println("Garden drawn to", args[0])

	default:
		return errors.Errorf("Unknown command %q; try \"help\"", cmd)
	}

	return nil
}

func fieldNames() []string {
	out := make([]string, len(profile.Fields))
	for i := range profile.Fields {
		out[i] = profile.Fields[i].Name
	}
	return out
}

func fieldList() string {
	return "   " + strings.Join(fieldNames(), "\n   ")
}

// findField resolves a (possibly abbreviated) field name.
func findField(what string) (*profile.Field, error) {
	if f, ok := profile.FieldByName(what); ok {
		return f, nil
	}
	_, name, err := tables.Lookup(fieldNames(), what, "field")
	if err != nil {
		return nil, err
	}
	f, _ := profile.FieldByName(name)
	return f, nil
}

// findFields is findField, except that a group prefix ("general", "zen_garden.snail") gives every
// field in the group.
func findFields(what string) ([]*profile.Field, error) {
	group := []*profile.Field{}
	for i := range profile.Fields {
		if strings.HasPrefix(profile.Fields[i].Name, what+".") {
			group = append(group, &profile.Fields[i])
		}
	}
	if len(group) > 0 {
		return group, nil
	}
	f, err := findField(what)
	if err != nil {
		return nil, err
	}
	return []*profile.Field{f}, nil
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func plantArg(s *session.Session, arg string) (*types.Plant, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n >= len(s.Current.ZenGarden.Plants) {
		return nil, errors.Errorf("%q is not a plant number (0 to %v)", arg, len(s.Current.ZenGarden.Plants)-1)
	}
	return &s.Current.ZenGarden.Plants[n], nil
}

func describePlant(i int, pl *types.Plant) string {
	out := fmt.Sprintf("%3d: %v, %v (%v, %v), %v", i, pl.Type, pl.Location, pl.Column, pl.Row, pl.Direction)
	if pl.Color > 1 {
		out += ", " + pl.Color.String()
	}
	if pl.HappinessNeed != 0 {
		out += ", wants " + pl.HappinessNeed.String()
	}
	return out
}

func summary(p *types.Profile) string {
	snail := "not purchased"
	if p.ZenGarden.Snail.Purchased() {
		snail = "last awoken " + p.ZenGarden.Snail.LastAwoken.String()
	}
	lines := []string{
		"Name: " + p.General.Name,
		"Adventure: level " + p.General.LevelName() + fmt.Sprintf(", completed %v times", p.General.Completed),
		fmt.Sprintf("Money: $%v", p.General.Money),
		fmt.Sprintf("Achievements: %v of %v", p.Achievements.Count(), len(tables.Achievements)),
		fmt.Sprintf("Zen garden: %v plants", len(p.ZenGarden.Plants)),
		"Stinky the snail: " + snail,
	}
	return strings.Join(lines, "\n") + "\n"
}

// importYAML replaces the session's profile with an exported one.  Plants keep the unknown bytes
// of whatever plant was at the same position before.
func importYAML(s *session.Session, data []byte) error {
	p := &types.Profile{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return err
	}
	p.Handle = s.Handle
	p.General.Name = s.Handle.Name
	p.ZenGarden.Tree = types.Tree{}
	p.Zombatar.Zombatars = []types.ZombatarEntry{}
	for i := range p.ZenGarden.Plants {
		if i < len(s.Current.ZenGarden.Plants) {
			p.ZenGarden.Plants[i].Raw = s.Current.ZenGarden.Plants[i].Raw
		}
	}
	if _, err := profile.Encode(s.Original, p); err != nil {
		return err
	}
	s.Current = p
	return nil
}
