package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"

	"cavedelve/assets"
	"cavedelve/pkg/engine/input"
	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/config"
	"cavedelve/pkg/game/devtools"
	"cavedelve/pkg/game/gameplay"
	"cavedelve/pkg/game/loot"
	"cavedelve/pkg/game/renderer"
	"cavedelve/pkg/game/save"
	"cavedelve/pkg/game/state"
)

// turnDuration is how much run time one command takes in interactive play.
const turnDuration = 500 * time.Millisecond

func initGettext(cfg config.Config) {
	gotext.Configure(cfg.LocaleDir, cfg.Locale, "default")
}

func loadCatalog(cfg config.Config) (*loot.Catalog, error) {
	if cfg.CatalogPath != "" {
		return loot.LoadCatalog(cfg.CatalogPath)
	}
	return loot.ParseCatalog(assets.Items)
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// dive confirms the loadout and loads the floor, starting a new game first when
// there is no run. A rejected loadout falls back to going in empty-handed.
func dive(s *gameplay.Session, loadout []string) (*gameplay.Floor, error) {
	if s.Phase() == state.NoRun {
		if err := s.NewGame(); err != nil {
			log.Printf("new game: %v", err)
		}
	}
	if err := s.ConfirmLoadout(loadout); err != nil {
		if errors.Is(err, gameplay.ErrNoRun) {
			return nil, err
		}
		log.Printf("loadout rejected, going in empty-handed: %v", err)
		if err := s.ConfirmLoadout(nil); err != nil && errors.Is(err, gameplay.ErrNoRun) {
			return nil, err
		}
	}
	return s.LoadFloor()
}

// start resumes the saved run when asked to and one exists, otherwise dives into a new one.
func start(s *gameplay.Session, resume, fresh bool, loadout []string) (*gameplay.Floor, error) {
	if resume && !fresh && s.CanContinue() {
		if err := s.ContinueGame(); err != nil {
			return nil, err
		}
		return s.LoadFloor()
	}
	if fresh {
		if err := s.NewGame(); err != nil {
			log.Printf("new game: %v", err)
		}
	}
	return dive(s, loadout)
}

func gotoFloor(s *gameplay.Session, floor int) (*gameplay.Floor, error) {
	if _, changed, err := s.ChangeFloor(floor - s.Run().CurrentFloor); err != nil || !changed {
		return s.Floor(), err
	}
	return s.LoadFloor()
}

func printPreview(s *gameplay.Session, player world.Point) {
	renderer.PrintMap(s, player)
	renderer.PrintStatusBar(s)
	renderer.PrintMessagesPane(s)
}

func main() {
	fresh := flag.Bool("new", false, "discard any saved run and start a new one")
	resume := flag.Bool("continue", true, "resume the saved run if there is one")
	floor := flag.Int("floor", 0, "jump to this floor after loading (for developer testing)")
	seed := flag.Int64("seed", 0, "pin the base seed (0 picks one at random)")
	loadout := flag.String("loadout", "", "comma-separated owned item ids to take into a new run")
	dump := flag.Bool("dump", false, "write a debug dump of the floor to map.txt")
	play := flag.Bool("play", false, "play interactively in the terminal")
	dataDir := flag.String("data", "", "directory for save files (overrides CAVEDELVE_DATA_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Cannot load configuration: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	initGettext(cfg)
	renderer.InitColors()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.Fatalf("Cannot load item catalog: %v", err)
	}

	s := gameplay.NewSession(cfg, catalog, save.NewStore(cfg.DataDir))

	f, err := start(s, *resume, *fresh, splitIDs(*loadout))
	if err != nil {
		log.Fatalf("Cannot start run: %v", err)
	}
	if *floor > 0 {
		if f, err = gotoFloor(s, *floor); err != nil {
			log.Printf("change floor: %v", err)
		}
	}
	if f == nil {
		log.Fatalf("No floor loaded")
	}

	if *dump {
		path, err := devtools.DumpFloorToFile(s, f.Spawn.Position, ".")
		if err != nil {
			log.Fatalf("Cannot dump floor: %v", err)
		}
		fmt.Println("Floor dump written to", path)
	}

	if !*play {
		printPreview(s, f.Spawn.Position)
		return
	}

	if err := mainLoop(s, f.Spawn.Position, input.NewReader(os.Stdin), splitIDs(*loadout)); err != nil {
		log.Fatalf("%v", err)
	}
}

// mainLoop runs interactive play: one command per turn, each advancing the run
// timer and the stair and treasure holds by turnDuration.
func mainLoop(s *gameplay.Session, player world.Point, in *input.Reader, loadout []string) error {
	for {
		renderer.Clear()
		printPreview(s, player)
		renderer.PrintPossibleActions()
		fmt.Print("\n> ")

		intent, err := in.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		f := s.Floor()
		moved := false
		switch intent.Action {
		case input.ActionMoveNorth, input.ActionMoveSouth, input.ActionMoveWest, input.ActionMoveEast:
			next := player.Add(moveDirection(intent.Action).Offset())
			if f.Grid.IsFloor(next) {
				player = next
				moved = true
			}
		case input.ActionInteract:
			if _, err := s.OpenNearbyChest(player); err != nil {
				log.Printf("open chest: %v", err)
			}
		case input.ActionDump:
			if _, err := devtools.DumpFloorToFile(s, player, "."); err != nil {
				log.Printf("dump floor: %v", err)
			}
		case input.ActionQuit:
			return nil
		}

		if moved && touchesEnemy(f, player) {
			out, err := s.OnPlayerDied()
			if err != nil {
				log.Printf("death: %v", err)
			}
			if out.Reset {
				log.Printf("death limit reached, progress reset")
			}
			if f, err = dive(s, loadout); err != nil {
				return err
			}
			player = f.Spawn.Position
			continue
		}

		s.Tick(turnDuration)
		if _, err := s.UpdateTreasureHold(player, turnDuration); err != nil {
			log.Printf("treasure: %v", err)
		}
		out, err := s.UpdateStairHold(player, turnDuration)
		if err != nil {
			log.Printf("stairs: %v", err)
		}
		switch out.Action {
		case gameplay.StairMoved:
			if out.Floor != nil {
				player = out.Floor.Spawn.Position
			}
		case gameplay.StairEscaped:
			if f, err = dive(s, loadout); err != nil {
				return err
			}
			player = f.Spawn.Position
		}
	}
}

func moveDirection(a input.Action) world.Direction {
	switch a {
	case input.ActionMoveSouth:
		return world.South
	case input.ActionMoveWest:
		return world.West
	case input.ActionMoveEast:
		return world.East
	default:
		return world.North
	}
}

func touchesEnemy(f *gameplay.Floor, p world.Point) bool {
	for _, e := range f.Enemies {
		if e == p {
			return true
		}
	}
	return false
}
