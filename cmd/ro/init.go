package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new ro project",
	Long: `Initialize a new ro project by creating a project manifest (ro.toml)
and an example source file (main.ro). If [path|name] is omitted, initializes
the current directory. A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit writes ro.toml and main.ro into the target directory. It refuses to
// overwrite an existing manifest and keeps an existing main.ro.
func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, statErr := os.Stat(target); statErr != nil {
		if !errors.Is(statErr, os.ErrNotExist) {
			return statErr
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "ro-project"
	}

	manifestPath := filepath.Join(target, manifestName)
	if _, err = os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err = os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "main.ro")
	createdMain := false
	if _, err = os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err = os.WriteFile(mainPath, []byte(defaultMainRo), 0o600); err != nil {
			return fmt.Errorf("failed to write main.ro: %w", err)
		}
		createdMain = true
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return nil
	}
	rel := target
	if r, relErr := filepath.Rel(wd, target); relErr == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized ro project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", manifestName)
	if createdMain {
		fmt.Fprintf(out, "  - main.ro\n")
	} else {
		fmt.Fprintf(out, "  - main.ro (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal manifest that parses every *.ro file
// under the project root.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# ro project manifest
[package]
name = %q
version = "0.1.0"

[build]
sources = "."
cache = false
format = "pretty"
`, name)
}

const defaultMainRo = `// result-группа и её реализации
result add(one: float, two: float): float {
    fn add_plain {
        var sum
        sum = one + two
        return sum
    }
}

fn add_owned(one: float, two: float) => add {
    ret one
}

fn main {
    var x
    x = 1 + 2
    print(x)
    ret x
}
`
