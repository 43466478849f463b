package main

import (
	"fmt"
	"io"

	"github.com/Faultbox/solar-roi/internal/designer"
	"github.com/Faultbox/solar-roi/internal/export"
	"github.com/Faultbox/solar-roi/internal/logger"
	"github.com/Faultbox/solar-roi/internal/script"
)

// replay loads and plays a script against a fresh headless session.
// Designer messages go to out.
func replay(path string, sink export.Sink, out io.Writer) (*script.Session, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, err
	}

	notify := designer.NotifierFunc(func(msg string) {
		fmt.Fprintln(out, msg)
	})
	sess := script.NewSession(cfg, s, sink, notify, logger.Log)
	if err := sess.Play(s); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	if _, ok := sess.Designer.Region(); !ok {
		return nil, fmt.Errorf("%s: %w", s.Name, designer.ErrNoRegion)
	}
	return sess, nil
}
