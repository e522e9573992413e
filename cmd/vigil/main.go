package main

import (
	"os"
	"strings"

	"vigil/internal/cli"
	"vigil/internal/debuglog"
)

var subcommands = map[string]bool{
	"present":    true,
	"web":        true,
	"groups":     true,
	"link":       true,
	"history":    true,
	"docs":       true,
	"help":       true,
	"completion": true,
	// cobra's hidden completion entry points.
	"__complete":        true,
	"__completeNoDesc": true,
}

func rewriteDirectSelectionArgs(argv []string) []string {
	// Convenience: `vigil angelus-vespers` works like `vigil present --p angelus-vespers`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `vigil --deck x.yaml a-b`), so we look for the first
	// positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--deck":   true,
		"--format": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "present", "--p")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && !subcommands[argv[i+1]] {
				return append(append(append([]string{}, argv[:i]...), "present", "--p"), argv[i+1:]...)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if subcommands[a] {
			return argv
		}
		return rewrite(i)
	}

	return argv
}

func main() {
	os.Args = rewriteDirectSelectionArgs(os.Args)
	defer debuglog.Close()

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		debuglog.Close()
		os.Exit(1)
	}
}
