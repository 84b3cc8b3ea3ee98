package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kingrea/rollup/internal/config"
	"github.com/kingrea/rollup/internal/logging"
	"github.com/kingrea/rollup/internal/module"
	"github.com/kingrea/rollup/manifest"
	"gopkg.in/yaml.v3"
)

func main() {
	projectDir := flag.String("project", "", "path to the project directory (defaults to cwd)")
	moduleID := flag.String("module", "", "print one module's effective export set instead of the aggregate")
	format := flag.String("format", "list", "output format: list or yaml")
	flag.Parse()

	project := *projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			die("determine working directory: %v", err)
		}
	}
	absoluteProject, err := filepath.Abs(project)
	if err != nil {
		die("resolve project dir: %v", err)
	}
	if err := config.InitRollupDir(absoluteProject); err != nil {
		die("init .rollup: %v", err)
	}
	cfg, err := config.NewConfig(absoluteProject)
	if err != nil {
		die("load config: %v", err)
	}
	logger, err := logging.New(absoluteProject)
	if err == nil {
		defer logger.Close()
	}

	reg := module.NewRegistry()
	if err := manifest.RegisterModules(reg, cfg); err != nil {
		die("load manifests: %v", err)
	}

	names, label, err := resolveNames(reg, *moduleID)
	if err != nil {
		die("%v", err)
	}
	logger.Printf("%s: %d names from %d modules", label, len(names), len(reg.IDs()))

	output, err := renderNames(names, *format)
	if err != nil {
		die("%v", err)
	}
	fmt.Print(output)
}

func resolveNames(reg *module.Registry, moduleID string) ([]string, string, error) {
	id := strings.TrimSpace(moduleID)
	if id == "" {
		return reg.ExportList(), "aggregate", nil
	}
	mod, ok := reg.Lookup(id)
	if !ok {
		return nil, "", fmt.Errorf("unknown module %s (known: %s)", id, strings.Join(reg.IDs(), ", "))
	}
	return mod.Exports().Effective(), id, nil
}

func renderNames(names []string, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "list":
		if len(names) == 0 {
			return "", nil
		}
		return strings.Join(names, "\n") + "\n", nil
	case "yaml":
		out := names
		if out == nil {
			out = []string{}
		}
		data, err := yaml.Marshal(out)
		if err != nil {
			return "", fmt.Errorf("encode names: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown format %q (expected list or yaml)", format)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
