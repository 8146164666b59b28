package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/config"
	gen "github.com/reoring/goform/internal/gen"
	"github.com/reoring/goform/log"
	"github.com/reoring/goform/openapi"
	"github.com/reoring/goform/sanitize"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "decode":
		err = decodeCmd(ctx, os.Args[2:], os.Stdout)
	case "schema":
		err = schemaCmd(os.Args[2:], os.Stdout)
	case "gen":
		err = genCmd(os.Args[2:], os.Stdout)
	case "openapi":
		err = openapiCmd(ctx, os.Args[2:], os.Stdout)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatalf("%v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `goform CLI

Usage:
  goform decode  -config form.yaml [-boundary B] [-sanitize] [-v] body...
  goform schema  -config form.yaml
  goform gen     -config form.yaml -type Name [-pkg main] [-o out.go]
  goform openapi -spec api.yaml -op operationId

Notes:
  - decode reads raw multipart bodies (one per file) and prints the decoded
    trees as JSON keyed by file. Bodies are decoded concurrently with one form.
  - Without -boundary the boundary is taken from each body's first line.`)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("missing -config")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return config.Load(f)
}

func decodeCmd(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	var cfgPath, boundary string
	var verbose, clean bool
	fs.StringVar(&cfgPath, "config", "", "form declaration (YAML)")
	fs.StringVar(&boundary, "boundary", "", "multipart boundary shared by all bodies")
	fs.BoolVar(&clean, "sanitize", false, "strip markup from text fields")
	fs.BoolVar(&verbose, "v", false, "enable debug logs")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no bodies given")
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	opts := []goform.Option{}
	if verbose {
		sl := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, goform.WithLogger(&log.Default{Slog: sl}))
	}
	if clean {
		opts = append(opts, goform.WithTextFilter(sanitize.Strict()))
	}
	form, err := cfg.Form(opts...)
	if err != nil {
		return err
	}

	results := make([]goform.Map, fs.NArg())
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range fs.Args() {
		g.Go(func() error {
			m, err := decodeFile(ctx, path, boundary, form)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	byFile := make(map[string]goform.Map, len(results))
	for i, path := range fs.Args() {
		byFile[filepath.Base(path)] = results[i]
	}
	return writeJSON(out, byFile)
}

func decodeFile(ctx context.Context, path, boundary string, form *goform.Form) (goform.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	br := bufio.NewReader(f)
	if boundary == "" {
		if boundary, err = sniffBoundary(br); err != nil {
			return nil, err
		}
	}
	return goform.Decode(ctx, multipart.NewReader(br, boundary), form)
}

// sniffBoundary reads the boundary from the first delimiter line without
// consuming it.
func sniffBoundary(br *bufio.Reader) (string, error) {
	head, _ := br.Peek(256)
	line, _, _ := bytes.Cut(head, []byte("\n"))
	line = bytes.TrimRight(line, "\r")
	if !bytes.HasPrefix(line, []byte("--")) || len(line) == 2 {
		return "", fmt.Errorf("cannot detect boundary; pass -boundary")
	}
	return string(line[2:]), nil
}

func schemaCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	var cfgPath string
	fs.StringVar(&cfgPath, "config", "", "form declaration (YAML)")
	_ = fs.Parse(args)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	root, err := cfg.Root(nil)
	if err != nil {
		return err
	}
	s, err := root.JSONSchema()
	if err != nil {
		return err
	}
	return writeJSON(out, s)
}

func genCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	var cfgPath, typeName, pkg, outPath string
	fs.StringVar(&cfgPath, "config", "", "form declaration (YAML)")
	fs.StringVar(&typeName, "type", "", "name of the generated struct")
	fs.StringVar(&pkg, "pkg", "main", "package of the generated file")
	fs.StringVar(&outPath, "o", "", "output filename (stdout when empty)")
	_ = fs.Parse(args)
	if typeName == "" {
		fs.Usage()
		return fmt.Errorf("missing -type")
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	root, err := cfg.Root(nil)
	if err != nil {
		return err
	}
	s, err := root.JSONSchema()
	if err != nil {
		return err
	}
	code, err := gen.RenderFile(gen.File{Package: pkg, Types: []gen.TypeDef{{Name: typeName, Schema: s}}})
	if err != nil {
		return err
	}
	if outPath == "" {
		_, err = out.Write(code)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	return os.WriteFile(outPath, code, 0o644)
}

func openapiCmd(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("openapi", flag.ExitOnError)
	var specPath, opID string
	fs.StringVar(&specPath, "spec", "", "OpenAPI 3 document (YAML or JSON)")
	fs.StringVar(&opID, "op", "", "operationId whose multipart body to import")
	_ = fs.Parse(args)
	if specPath == "" || opID == "" {
		fs.Usage()
		return fmt.Errorf("missing -spec or -op")
	}
	data, err := os.ReadFile(specPath)
	if err != nil {
		return err
	}
	doc, err := openapi.Load(ctx, data)
	if err != nil {
		return err
	}
	root, err := openapi.FromOperation(doc, opID, nil)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, root)
	return err
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "goform: "+strings.TrimSuffix(format, "\n")+"\n", a...)
	os.Exit(1)
}
