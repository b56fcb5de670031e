/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"github.com/raoe/engine/engine"
	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/testbed"
)

func main() {
	defer core.InstallPanicHandler()

	tb := testbed.NewTestGame()

	eng, err := engine.New(tb.Game)
	if err != nil {
		core.Panicf("engine construction failed: %v", err)
	}
	tb.Attach(eng)

	if err := eng.Initialize(); err != nil {
		core.Panicf("engine initialization failed: %v", err)
	}

	// Run drives the startup pipeline, then ticks until the window closes.
	if err := eng.Run(); err != nil {
		core.Panicf("engine run failed: %v", err)
	}
}
