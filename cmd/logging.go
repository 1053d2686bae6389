package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/achilleasa/kifs-explorer/log"
)

var logger = log.New("kifs-explorer")

func setupLogging(ctx *cli.Context) {
	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			logger.Warningf("%s; using default level", err)
		} else {
			log.SetLevel(level)
		}
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	for _, entry := range ctx.GlobalStringSlice("module-level") {
		module, level, err := parseModuleLevel(entry)
		if err != nil {
			logger.Warningf("%s; ignoring module level override", err)
			continue
		}
		log.SetModuleLevel(module, level)
	}
}

// Parse a module=level override such as "quality=debug".
func parseModuleLevel(entry string) (string, log.Level, error) {
	module, name, ok := strings.Cut(entry, "=")
	module = strings.TrimSpace(module)
	if !ok || module == "" {
		return "", log.Notice, fmt.Errorf("invalid module level %q; expected module=level", entry)
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return "", log.Notice, err
	}
	return module, level, nil
}
