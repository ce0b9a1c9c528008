package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"ro/internal/diag"
	"ro/internal/diagfmt"
	"ro/internal/driver"
	"ro/internal/hir"
	"ro/internal/observ"
	"ro/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [file.ro|directory]",
	Short: "Parse ro sources and print the program",
	Long: `Parse a ro source file or every *.ro file of a directory and print the
resulting program. Without an argument the sources of the nearest ro.toml are used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	addParseFlags(parseCmd)
}

func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse parsed programs from the disk cache")
}

// parsedFile is one file's outcome, whatever way it was parsed.
type parsedFile struct {
	path    string
	fileID  source.FileID
	program *hir.Program
	bag     *diag.Bag
	cached  bool
	timing  observ.Report
}

type parseSettings struct {
	format         string
	jobs           int
	ui             uiMode
	cache          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readParseSettings(cmd *cobra.Command, manifest *projectManifest) (parseSettings, error) {
	var (
		s   parseSettings
		err error
	)
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if s.format, err = flags.GetString("format"); err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiValue); err != nil {
		return s, err
	}
	if s.cache, err = flags.GetBool("cache"); err != nil {
		return s, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	// флаги командной строки сильнее манифеста
	if manifest != nil {
		if !flags.Changed("format") && manifest.Config.Build.Format != "" {
			s.format = manifest.Config.Build.Format
		}
		if !flags.Changed("cache") {
			s.cache = manifest.Config.Build.Cache
		}
	}
	if !outputFormats[s.format] {
		return s, fmt.Errorf("unknown format: %s", s.format)
	}
	if s.jobs <= 0 {
		s.jobs = runtime.GOMAXPROCS(0)
	}
	return s, nil
}

func settingsOptions(s parseSettings) driver.ParseOptions {
	return driver.ParseOptions{MaxDiagnostics: s.maxDiagnostics}
}

func runParse(cmd *cobra.Command, args []string) error {
	var (
		target   string
		manifest *projectManifest
	)
	if len(args) == 1 {
		target = args[0]
	} else {
		m, ok, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s", noManifestMessage)
		}
		manifest = m
		target = m.sourcesPath()
	}

	settings, err := readParseSettings(cmd, manifest)
	if err != nil {
		return err
	}

	opts := settingsOptions(settings)
	if settings.cache {
		cache, cacheErr := driver.OpenDiskCache("ro")
		if cacheErr != nil {
			return fmt.Errorf("failed to open cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fs    *source.FileSet
		files []parsedFile
	)
	if st.IsDir() {
		fs, files, err = parseDirectory(cmd, target, opts, settings)
	} else {
		fs, files, err = parseSingle(cmd, target, opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if err := writeParseOutput(cmd, fs, files, settings); err != nil {
		return err
	}

	if settings.timings {
		for _, f := range files {
			printTimings(cmd.ErrOrStderr(), f.path, f.timing, f.cached)
		}
	}

	failed := 0
	for _, f := range files {
		if f.bag.HasErrors() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to parse", failed, len(files))
	}
	return nil
}

func parseSingle(cmd *cobra.Command, path string, opts driver.ParseOptions) (*source.FileSet, []parsedFile, error) {
	res, err := driver.Parse(cmd.Context(), path, opts)
	if err != nil {
		return nil, nil, err
	}
	return res.FileSet, []parsedFile{{
		path:    path,
		fileID:  res.File.ID,
		program: res.Program,
		bag:     res.Bag,
		cached:  res.Cached,
		timing:  res.Timing,
	}}, nil
}

func parseDirectory(cmd *cobra.Command, dir string, opts driver.ParseOptions, settings parseSettings) (*source.FileSet, []parsedFile, error) {
	var (
		fs      *source.FileSet
		results []driver.ParseDirResult
		err     error
	)
	if shouldUseTUI(settings.ui, settings.quiet) {
		files, listErr := driver.ListSourceFiles(dir)
		if listErr != nil {
			return nil, nil, listErr
		}
		fs, results, err = runParseDirWithUI(cmd.Context(), "ro parse "+filepath.Base(dir), dir, files, opts, settings.jobs)
	} else {
		fs, results, err = driver.ParseDir(cmd.Context(), dir, opts, settings.jobs)
	}
	if err != nil {
		return nil, nil, err
	}
	out := make([]parsedFile, 0, len(results))
	for _, r := range results {
		out = append(out, parsedFile{
			path:    r.Path,
			fileID:  r.FileID,
			program: r.Program,
			bag:     r.Bag,
			cached:  r.Cached,
			timing:  r.Timing,
		})
	}
	return fs, out, nil
}

func writeParseOutput(cmd *cobra.Command, fs *source.FileSet, files []parsedFile, settings parseSettings) error {
	out := cmd.OutOrStdout()
	switch settings.format {
	case "json", "yaml":
		outputs := make([]diagfmt.FileOutput, 0, len(files))
		for _, f := range files {
			f.bag.Sort()
			f.bag.Dedup()
			fo := diagfmt.FileOutput{
				File:    displayPath(fs, f),
				Cached:  f.cached,
				Program: diagfmt.BuildProgramOutput(f.program),
			}
			if f.bag.Len() > 0 {
				fo.Diagnostics = diagfmt.BuildDiagnosticsOutput(f.bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}).Diagnostics
			}
			outputs = append(outputs, fo)
		}
		if settings.format == "json" {
			return diagfmt.FormatProgramsJSON(out, outputs)
		}
		return diagfmt.FormatProgramsYAML(out, outputs)

	case "msgpack":
		if err := printDiagnostics(cmd, fs, files, settings.quiet); err != nil {
			return err
		}
		for _, f := range files {
			if f.program == nil {
				continue
			}
			data, err := driver.MarshalProgram(f.program)
			if err != nil {
				return fmt.Errorf("%s: %w", f.path, err)
			}
			if _, err := out.Write(data); err != nil {
				return err
			}
		}
		return nil

	default:
		if err := printDiagnostics(cmd, fs, files, settings.quiet); err != nil {
			return err
		}
		return writePretty(out, fs, files, settings.quiet)
	}
}

func writePretty(out io.Writer, fs *source.FileSet, files []parsedFile, quiet bool) error {
	headers := len(files) > 1 && !quiet
	for idx, f := range files {
		if headers {
			if _, err := fmt.Fprintf(out, "== %s ==\n", displayPath(fs, f)); err != nil {
				return err
			}
		}
		if f.program != nil {
			if err := hir.Dump(out, f.program); err != nil {
				return err
			}
		}
		if headers && idx < len(files)-1 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
	}
	return nil
}

// printDiagnostics renders every bag to stderr; with --quiet one line per
// diagnostic and no snippets.
func printDiagnostics(cmd *cobra.Command, fs *source.FileSet, files []parsedFile, quiet bool) error {
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	opts := diagfmt.PrettyOpts{Color: color, Context: 2, ShowNotes: true}
	out := &stickyWriter{w: cmd.ErrOrStderr()}
	for _, f := range files {
		if f.bag.Len() == 0 {
			continue
		}
		f.bag.Sort()
		f.bag.Dedup()
		if quiet {
			fmt.Fprintln(out, diag.FormatShortDiagnostics(f.bag.Items(), fs, false))
		} else {
			diagfmt.Pretty(out, f.bag, fs, opts)
		}
		if out.err != nil {
			return out.err
		}
	}
	return nil
}

// stickyWriter remembers the first write error; later writes are dropped.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	s.err = err
	return n, err
}

func displayPath(fs *source.FileSet, f parsedFile) string {
	if file := fs.Get(f.fileID); file != nil {
		return file.FormatPath("auto", fs.BaseDir())
	}
	return f.path
}
