package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/honeybbq/runconfig/domain/biaffine"
	"github.com/honeybbq/runconfig/pkg/export"
	"github.com/honeybbq/runconfig/pkg/rcerrors"
	"github.com/honeybbq/runconfig/pkg/runconfig"
	"github.com/honeybbq/runconfig/pkg/snapshot"
)

func main() {
	var (
		mode        = flag.String("mode", "resolve", "operation mode: resolve | get | validate | diff | watch")
		configPath  = flag.String("config", "", "run configuration file (INI)")
		outputPath  = flag.String("output", "", "output path (default: stdout)")
		format      = flag.String("format", "ini", "output format in resolve mode (ini|json|yaml)")
		keySpec     = flag.String("key", "", "Section.key to read in get mode")
		valueType   = flag.String("type", "string", "coercion in get mode: string | int | float | bool")
		againstPath = flag.String("against", "", "second configuration file in diff mode")
		listFormats = flag.Bool("list-formats", false, "list supported output formats")
	)
	var sets multiFlag
	var extras multiFlag
	flag.Var(&sets, "set", "override as Section.key=value (repeatable)")
	flag.Var(&extras, "extra", "override layer file merged onto the base config (repeatable)")
	flag.Parse()

	if *listFormats {
		printFormats()
		return
	}

	if *configPath == "" {
		exitWithError(errors.New("config file is required (use -config)"))
	}

	cfg, err := loadConfig(*configPath, extras, sets)
	if err != nil {
		exitWithError(err)
	}

	switch strings.ToLower(*mode) {
	case "resolve":
		exporter, err := export.ByName(strings.ToLower(*format))
		if err != nil {
			exitWithError(err)
		}
		doc, err := cfg.Resolved()
		if err != nil {
			exitWithError(fmt.Errorf("resolve: %w", err))
		}
		payload, err := exporter.Export(doc)
		if err != nil {
			exitWithError(fmt.Errorf("export: %w", err))
		}
		if err := writeOutput(*outputPath, payload); err != nil {
			exitWithError(fmt.Errorf("write output: %w", err))
		}

	case "get":
		section, key, ok := strings.Cut(*keySpec, ".")
		if !ok || section == "" || key == "" {
			exitWithError(errors.New("get mode requires -key Section.key"))
		}
		value, err := getTyped(cfg, section, key, strings.ToLower(*valueType))
		if err != nil {
			exitWithError(err)
		}
		if err := writeOutput(*outputPath, []byte(value+"\n")); err != nil {
			exitWithError(fmt.Errorf("write output: %w", err))
		}

	case "validate":
		if _, err := biaffine.FromConfig(cfg); err != nil {
			exitWithError(fmt.Errorf("validate %s: %w", *configPath, err))
		}
		fmt.Fprintf(os.Stderr, "%s: ok\n", *configPath)

	case "diff":
		if *againstPath == "" {
			exitWithError(errors.New("diff mode requires -against"))
		}
		other, err := loadConfig(*againstPath, nil, nil)
		if err != nil {
			exitWithError(err)
		}
		if err := printDiff(cfg, other, *configPath, *againstPath); err != nil {
			exitWithError(err)
		}

	case "watch":
		if err := watchConfig(*configPath, extras, sets); err != nil {
			exitWithError(err)
		}

	default:
		exitWithError(fmt.Errorf("unknown mode %q (use resolve|get|validate|diff|watch)", *mode))
	}
}

func loadConfig(path string, extras, sets []string) (*runconfig.Config, error) {
	overrides := make(map[string]string, len(sets))
	for _, set := range sets {
		spec, value, ok := strings.Cut(set, "=")
		if !ok {
			return nil, rcerrors.New(rcerrors.KindValidation,
				fmt.Errorf("override %q: want Section.key=value", set))
		}
		overrides[strings.TrimSpace(spec)] = value
	}
	return runconfig.Load(path, runconfig.LoadOptions{
		Extra:     extras,
		Overrides: overrides,
	})
}

func getTyped(cfg *runconfig.Config, section, key, valueType string) (string, error) {
	switch valueType {
	case "string":
		return cfg.Get(section, key)
	case "int":
		n, err := cfg.GetInt(section, key)
		return fmt.Sprintf("%d", n), err
	case "float":
		f, err := cfg.GetFloat(section, key)
		return fmt.Sprintf("%g", f), err
	case "bool":
		b, err := cfg.GetBool(section, key)
		return fmt.Sprintf("%t", b), err
	}
	return "", fmt.Errorf("unknown type %q (use string|int|float|bool)", valueType)
}

func printDiff(base, target *runconfig.Config, basePath, targetPath string) error {
	baseSnap, err := snapshot.Take(base)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", basePath, err)
	}
	targetSnap, err := snapshot.Take(target)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", targetPath, err)
	}

	diff := snapshot.Diff(baseSnap, targetSnap)
	if diff.Empty() {
		fmt.Printf("configs resolve identically (checksum %s)\n", baseSnap.Checksum)
		return nil
	}
	for _, key := range sortedDiffKeys(diff.Removed) {
		fmt.Printf("- %s = %s\n", key, diff.Removed[key])
	}
	for _, key := range sortedDiffKeys(diff.Added) {
		fmt.Printf("+ %s = %s\n", key, diff.Added[key])
	}
	changed := make([]string, 0, len(diff.Changed))
	for key := range diff.Changed {
		changed = append(changed, key)
	}
	sort.Strings(changed)
	for _, key := range changed {
		pair := diff.Changed[key]
		fmt.Printf("~ %s = %s -> %s\n", key, pair[0], pair[1])
	}
	return nil
}

func sortedDiffKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func printFormats() {
	fmt.Println("Supported formats:")
	for _, exporter := range export.All() {
		fmt.Printf("  - %s\n", exporter.Name())
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		if err == nil && (len(data) == 0 || data[len(data)-1] != '\n') {
			_, err = fmt.Fprintln(os.Stdout)
		}
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// multiFlag 收集可重复出现的命令行参数。
type multiFlag []string

func (f *multiFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *multiFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}
