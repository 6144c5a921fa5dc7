// Command tsstatus reports translation progress and integrity problems of TS files.
//
//	tsstatus -in i18n/chessx_it.ts -in i18n/chessx_de.ts -out status.md -check
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"tscat/internal/logger"
	"tscat/internal/report"
	"tscat/internal/service"
	"tscat/internal/ts"
	"tscat/internal/validate"
)

type fileList []string

func (f *fileList) String() string { return strings.Join(*f, ",") }

func (f *fileList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

type options struct {
	inputs    []string
	out       string
	jsonOut   string
	check     bool
	roundtrip bool
	language  string
	rules     []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	level := slog.LevelWarn
	if v := os.Getenv("TSCAT_LOG_LEVEL"); v != "" {
		level = logger.ParseLevel(v)
	}
	slog.SetDefault(logger.New(stderr, level, "text"))

	var (
		reports []report.Report
		failed  bool
	)
	for _, path := range opts.inputs {
		doc, err := ts.ParseFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		rep := report.Build(service.CatalogName(path), doc)
		reports = append(reports, rep)
		logger.Debug("catalog read", "module", "tsstatus", "action", "read", "resource", "catalog", "result", "ok",
			"file", path, "messages", rep.Counts.Total, "completion", rep.Counts.Completion)

		if opts.check {
			issues := validate.Check(doc, validate.Options{Language: opts.language, Rules: opts.rules})
			for _, is := range issues {
				fmt.Fprintf(stderr, "%s: %s %s [%s] %q: %s\n", path, is.Severity, is.Rule, is.Context, is.Source, is.Detail)
			}
			if validate.HasErrors(issues) {
				failed = true
			}
		}
		if opts.roundtrip {
			same, err := roundTrips(path, doc)
			if err != nil {
				fmt.Fprintf(stderr, "%s: %v\n", path, err)
				failed = true
			} else if !same {
				fmt.Fprintf(stderr, "%s: re-encoding changes the file\n", path)
				failed = true
			}
		}
	}

	if err := writeOutputs(opts, reports, stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if failed {
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("tsstatus", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		inputs fileList
		opts   options
		rules  string
	)
	fs.Var(&inputs, "in", "TS file to read (repeatable; positional arguments are added too)")
	fs.StringVar(&opts.out, "out", "-", "markdown report path, - for stdout, empty to skip")
	fs.StringVar(&opts.jsonOut, "json-out", "", "JSON report path")
	fs.BoolVar(&opts.check, "check", false, "run validation and exit 1 on errors")
	fs.BoolVar(&opts.roundtrip, "roundtrip", false, "exit 1 when re-encoding changes a file")
	fs.StringVar(&opts.language, "lang", "", "language used for numerus checks instead of the file's")
	fs.StringVar(&rules, "rules", "", "comma separated validation rules (default all)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.inputs = append(inputs, fs.Args()...)
	if len(opts.inputs) == 0 {
		fmt.Fprintln(stderr, "tsstatus: no input files")
		fs.Usage()
		return options{}, flag.ErrHelp
	}
	if rules != "" {
		for _, r := range strings.Split(rules, ",") {
			r = strings.TrimSpace(r)
			if !slices.Contains(validate.Rules, r) {
				fmt.Fprintf(stderr, "tsstatus: unknown rule %q (known: %s)\n", r, strings.Join(validate.Rules, ", "))
				return options{}, flag.ErrHelp
			}
			opts.rules = append(opts.rules, r)
		}
	}
	return opts, nil
}

func roundTrips(path string, doc *ts.Document) (bool, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	encoded, err := ts.Marshal(doc)
	if err != nil {
		return false, err
	}
	return bytes.Equal(original, encoded), nil
}

func writeOutputs(opts options, reports []report.Report, stdout io.Writer) error {
	switch opts.out {
	case "":
	case "-":
		if err := report.WriteMarkdown(stdout, reports...); err != nil {
			return err
		}
	default:
		if err := writeFile(opts.out, func(w io.Writer) error { return report.WriteMarkdown(w, reports...) }); err != nil {
			return err
		}
	}
	if opts.jsonOut != "" {
		return writeFile(opts.jsonOut, func(w io.Writer) error { return report.WriteJSON(w, reports...) })
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
