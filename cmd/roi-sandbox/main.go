// Command roi-sandbox is an interactive viewer for capturing a region of
// interest and laying out a panel array over it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Faultbox/solar-roi/internal/config"
	"github.com/Faultbox/solar-roi/internal/logger"
)

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

	logger.Info("=== Solar ROI sandbox ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := newApp(cfg)
	if err != nil {
		logger.Error("failed to start sandbox", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("sandbox error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("sandbox closed normally")
}
