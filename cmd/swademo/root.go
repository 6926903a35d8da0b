// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swa-go/swa/internal/config"
	"github.com/swa-go/swa/logging"
)

// app holds what the subcommands share.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("SWA")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "swademo",
		Short:         "Demonstrate native windows and buffer surfaces",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML configuration file")
	pf.String("backend", "", "backend: auto, x11, glfw or headless")
	pf.Int("log-level", 0, "highest log verbosity written")
	pf.String("log-backend", "", "log backend: zap, zerolog, logrus, gokit or discard")
	a.v.BindPFlag("backend", pf.Lookup("backend"))
	a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	a.v.BindPFlag("log.backend", pf.Lookup("log-backend"))

	root.AddCommand(a.newRunCmd(), a.newCapsCmd(), a.newConfigCmd())
	return root
}

// config returns the file configuration with flag and environment
// overrides applied.
func (a *app) config() (config.Config, error) {
	c := config.Default()
	if a.cfgFile != "" {
		var err error
		if c, err = config.Load(a.cfgFile); err != nil {
			return config.Config{}, err
		}
	}
	if a.v.IsSet("backend") {
		c.Backend = a.v.GetString("backend")
	}
	if a.v.IsSet("log.level") {
		c.Log.Level = a.v.GetInt("log.level")
	}
	if a.v.IsSet("log.backend") {
		c.Log.Backend = a.v.GetString("log.backend")
	}
	if a.v.IsSet("inspect.addr") {
		c.Inspect.Addr = a.v.GetString("inspect.addr")
	}
	if err := c.Validate(); err != nil {
		return config.Config{}, err
	}
	return c, nil
}

func newLogger(c *config.Config, w io.Writer) (logr.Logger, error) {
	return logging.New(c.Logging(w))
}
