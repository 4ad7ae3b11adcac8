// Command vortaro queries the dictionary from a terminal.
//
//	vortaro [-config file] [-no-color] search [-scope eo|en|both] [-limit n] [-no-fold] PATTERN
//	vortaro [-config file] show [-lang en|eo] WORD
//	vortaro analyze [-lang en|eo] WORD...
//	vortaro [-config file] extract -out DIR
//
// Sources come from the config file, or from VORTARO_* variables when no
// file is given (VORTARO_ESPDIC=path is enough).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"

	"github.com/sagerenn/vortaro/internal/config"
	"github.com/sagerenn/vortaro/internal/describe"
	"github.com/sagerenn/vortaro/internal/dict/loader"
	"github.com/sagerenn/vortaro/internal/dict/registry"
	"github.com/sagerenn/vortaro/internal/morph"
	"github.com/sagerenn/vortaro/internal/observability"
	"github.com/sagerenn/vortaro/internal/search"
	"github.com/sagerenn/vortaro/internal/service"
)

var errNoSources = errors.New("no source loaded; set -config or VORTARO_ESPDIC")

type app struct {
	cfgPath string
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vortaro", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "path to YAML or JSON config")
	noColor := fs.Bool("no-color", false, "disable colored output")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: vortaro [flags] search|show|analyze|extract [args]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *noColor {
		color.Enable = false
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	a := &app{cfgPath: *cfgPath, stdout: stdout, stderr: stderr}
	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	var err error
	switch cmd {
	case "search":
		err = a.search(cmdArgs)
	case "show":
		err = a.show(cmdArgs)
	case "analyze":
		err = a.analyze(cmdArgs)
	case "extract":
		err = a.extract(cmdArgs)
	default:
		fmt.Fprintf(stderr, "vortaro: unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "vortaro: "+err.Error())
		return 1
	}
	return 0
}

// open loads the configured sources and indexes them. Source problems are
// logged to stderr; only a configuration without any usable source fails.
func (a *app) open(fold bool) (*service.Service, error) {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return nil, err
	}
	log := observability.NewWithWriter(a.stderr, cfg.Log.Level)
	res := loader.LoadAll(cfg.AllSources())
	for _, e := range res.Errs {
		log.Error("source load error", "error", e)
	}
	if len(res.Sources) == 0 {
		return nil, errNoSources
	}
	for _, s := range res.Sources {
		log.LogSkipped(s.ID(), s.Skipped())
	}
	reg := registry.New()
	if err := reg.MustAddAll(res.Sources); err != nil {
		return nil, err
	}
	return service.New(reg, service.Options{
		Fold:         fold && !cfg.Search.DisableFolding,
		DefaultLimit: cfg.Search.DefaultLimit,
		MemoSize:     cfg.Analysis.MemoSize,
	}), nil
}

func (a *app) search(args []string) error {
	fs := a.flags("search")
	scopeName := fs.String("scope", "both", "eo, en or both")
	limit := fs.Int("limit", 0, "maximum number of results (config default when 0)")
	noFold := fs.Bool("no-fold", false, "match c g h j s u literally")
	if err := fs.Parse(args); err != nil {
		return err
	}
	scope, err := search.ParseScope(*scopeName)
	if err != nil {
		return err
	}
	svc, err := a.open(!*noFold)
	if err != nil {
		return err
	}
	res := svc.Search(strings.Join(fs.Args(), " "), scope, *limit)
	if res.Invalid {
		return fmt.Errorf("invalid pattern %q", res.Query)
	}
	printHits(a.stdout, res)
	return nil
}

func (a *app) show(args []string) error {
	fs := a.flags("show")
	lang := fs.String("lang", "en", "label language, en or eo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("show: missing word")
	}
	svc, err := a.open(true)
	if err != nil {
		return err
	}
	word := strings.Join(fs.Args(), " ")
	d, ok := svc.Describe(word, describe.MatchLanguage(*lang))
	if !ok {
		return fmt.Errorf("no entry for %q", word)
	}
	printDescription(a.stdout, d)
	return nil
}

// analyze needs no dictionary: the analyzer works on any word.
func (a *app) analyze(args []string) error {
	fs := a.flags("analyze")
	lang := fs.String("lang", "en", "label language, en or eo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("analyze: missing word")
	}
	tag := describe.MatchLanguage(*lang)
	for _, w := range fs.Args() {
		an := morph.Analyze(w)
		printAnalysis(a.stdout, an, describe.ClassName(an.Class, tag))
	}
	return nil
}

func (a *app) extract(args []string) error {
	fs := a.flags("extract")
	out := fs.String("out", "", "directory receiving the artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("extract: -out is required")
	}
	svc, err := a.open(true)
	if err != nil {
		return err
	}
	ix := svc.Index()
	if err := ix.WriteArtifacts(*out); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "wrote %d entries, %d glosses to %s\n", ix.Len(), len(ix.EnWords()), *out)
	return nil
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}
