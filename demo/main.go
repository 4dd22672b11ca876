// This file is part of Saveport.
//
// Saveport is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Saveport is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Saveport.  If not, see <https://www.gnu.org/licenses/>.

// The demo command shows the saveport package hosting a scripted engine. The
// engine becomes ready a few seconds after startup so that the automatic
// restore, and its retry machinery, can be watched in the log.
//
// Keys: s saves, n saves into a new slot, l loads the most recent save,
// i lists the known saves, q quits (capturing a final autosave).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jetsetilly/saveport"
	"github.com/jetsetilly/saveport/cartridge"
	"github.com/jetsetilly/saveport/engine"
	"github.com/jetsetilly/saveport/logger"
	"github.com/jetsetilly/saveport/metadata"
	"github.com/jetsetilly/saveport/modalflag"
	"github.com/jetsetilly/saveport/statsview"
	"github.com/jetsetilly/saveport/store"
	"github.com/jetsetilly/saveport/version"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

func main() {
	vrsn, _, _ := version.Version()
	fmt.Printf("%s (%s)\n", version.ApplicationName, vrsn)

	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()

	rom := md.AddString("rom", "", "ROM file to derive the persistence identity from")
	dir := md.AddString("dir", ".saveport-demo", "directory for the file-backed store")
	meta := md.AddBool("metadata", false, "look the ROM up on the metadata server")
	stats := md.AddBool("statsview", false, "launch the runtime statistics server")
	ready := md.AddDuration("ready", 3*time.Second, "delay before the engine becomes ready")
	log := md.AddBool("log", true, "echo debugging log to stdout")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("! statsview not compiled in. build with the statsview tag")
		}
	}

	err = run(*rom, *dir, *meta, *ready)
	if err != nil {
		fmt.Printf("* error: %v\n", err)
		os.Exit(20)
	}
}

func run(rom string, dir string, meta bool, ready time.Duration) error {
	if rom == "" {
		return fmt.Errorf("a ROM file is required (-rom)")
	}

	cl := cartridge.NewLoader(rom)
	if err := cl.Load(); err != nil {
		return err
	}
	fmt.Printf("! loaded %s (%s)\n", cl.ShortName(), cl.Hash)

	identity := cl.Identity("")

	// extend the identity with whatever the metadata server knows
	if meta {
		sess, err := metadata.NewSession()
		if err != nil {
			return err
		}
		res, err := sess.Lookup(cl.Hash)
		if err != nil {
			logger.Logf(logger.Allow, "demo", "metadata: %v", err)
		} else if res.Name != "" {
			fmt.Printf("! metadata server knows this ROM as %s\n", res.Name)
			identity.Alternates = append(identity.Alternates, res.IDs...)
		}
	}

	adapter := store.NewAdapter(&fileConnector{root: dir})

	eng := &demoEngine{}
	hooks := engine.NewHooks()

	// the host's own ready behaviour. the saveport instance wraps this and
	// must keep invoking it
	hooks.Set(engine.OnReady, func() {
		fmt.Println("\r! engine: ready")
	})

	per := saveport.NewPersistence(identity, adapter,
		func() engine.Engine { return eng }, hooks)
	defer per.Destroy()

	eng.start(ready, hooks)

	return interact(per, eng)
}

// interact reads single keypresses until q is pressed.
func interact(per *saveport.Persistence, eng *demoEngine) error {
	// put the terminal into cbreak mode so keypresses arrive without a
	// newline. restore the original attributes on the way out
	var canAttr unix.Termios
	if err := termios.Tcgetattr(os.Stdin.Fd(), &canAttr); err != nil {
		return err
	}

	var cbreakAttr unix.Termios
	termios.Cfmakecbreak(&cbreakAttr)
	if err := termios.Tcsetattr(os.Stdin.Fd(), termios.TCIFLUSH, &cbreakAttr); err != nil {
		return err
	}
	defer termios.Tcsetattr(os.Stdin.Fd(), termios.TCIFLUSH, &canAttr)

	fmt.Println("! keys: [s]ave, [n]ew slot, [l]oad latest, l[i]st, [q]uit")

	b := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(b)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}

		switch b[0] {
		case 's':
			if gs, ok := eng.GameState().(*demoState); ok {
				gs.advance()
			}
			if per.PersistSave(false) {
				fmt.Println("\r! saved")
			} else {
				fmt.Println("\r! nothing to save")
			}

		case 'n':
			if gs, ok := eng.GameState().(*demoState); ok {
				gs.advance()
			}
			if per.PersistSave(true) {
				fmt.Println("\r! saved to new slot")
			} else {
				fmt.Println("\r! nothing to save")
			}

		case 'l':
			if per.LoadLatestSave() {
				fmt.Println("\r! loaded")
			} else {
				fmt.Println("\r! nothing loaded (a retry may be pending)")
			}

		case 'i':
			lst := per.ListSaves()
			if len(lst) == 0 {
				fmt.Println("\r! no saves")
			}
			for _, s := range lst {
				marker := ""
				if s.IsAutoSave {
					marker = " (autosave)"
				}
				fmt.Printf("\r!   %s  %s%s\n", s.FormattedTimestamp, s.Checksum, marker)
			}

		case 'q':
			fmt.Println("\r! quitting")
			return nil
		}
	}
}
