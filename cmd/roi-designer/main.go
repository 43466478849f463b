// Command roi-designer is an immediate-mode design panel: capture a region
// on a top-down site view, tune the panel array and export the layout.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Faultbox/solar-roi/internal/config"
	"github.com/Faultbox/solar-roi/internal/logger"
)

func init() {
	// SDL and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	flags := config.BindFlags(pflag.CommandLine)
	pflag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Options()); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start designer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
}
