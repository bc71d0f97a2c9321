// Command oxy runs the Sokoban sample on the oxy-gl scene graph. It takes no flags: settings come
// from oxy.yaml in the working directory, and defaults apply when the file is absent.
//
// Arrow keys move the player, R resets the level, WASD pans and Q/E zooms the camera. L cycles the
// window mode and keys 1 and 2 switch the docking layout, both of which restart the application;
// 3 saves the active layout.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"go.uber.org/zap"
)

// configPath is the engine configuration file read at startup.
const configPath = "oxy.yaml"

func init() {
	// GLFW and the GL context must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(context.Background(), Options{ConfigPath: configPath}))
}

// run runs the application until it exits without requesting a restart. It returns 0 on a clean
// exit and 1 on any failure.
func run(ctx context.Context, opts Options) int {
	for {
		restart, err := runOnce(ctx, opts)
		if err != nil {
			log, lerr := logger.New(logger.Config{})
			if lerr != nil {
				fmt.Fprintln(os.Stderr, "oxy:", err)
				return 1
			}
			log.Error("oxy failed", zap.Error(err))
			_ = log.Sync()
			return 1
		}
		if !restart {
			return 0
		}
	}
}

// runOnce builds the application graph, runs the loop and tears everything down.
func runOnce(ctx context.Context, opts Options) (bool, error) {
	app, cleanup, err := initializeApp(ctx, opts)
	if err != nil {
		return false, err
	}
	defer cleanup()

	app.Logger.Info("starting", zap.String("title", app.Config.Window.Title))
	if err := app.Engine.Run(); err != nil {
		return false, err
	}
	if err := app.Game.savePreferences(); err != nil {
		app.Logger.Warn("save editor config", zap.Error(err))
	}
	restart := app.Engine.RestartRequested()
	if restart {
		app.Logger.Info("restarting")
	}
	return restart, nil
}
