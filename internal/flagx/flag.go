package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
func FilterArgs(args []string, allowedFlags []string) []string {
	return FilterFlags(args, allowedFlags, nil)
}

// FilterFlags is FilterArgs with an extra set of boolean flags. A boolean
// flag never consumes the following argument, so "-reset -a :80" keeps
// ":80" paired with "-a". Booleans may still be given as "-reset=false".
func FilterFlags(args []string, valueFlags []string, boolFlags []string) []string {
	valued := toSet(valueFlags)
	boolean := toSet(boolFlags)

	// always non-nil so callers can range over it
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := valued[name]; ok {
				filtered = append(filtered, arg)
			} else if _, ok := boolean[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := boolean[arg]; ok {
			filtered = append(filtered, arg)
			continue
		}

		if _, ok := valued[arg]; ok {
			filtered = append(filtered, arg)
			// the next token is the value unless it looks like another flag
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// ConfigFileFlag extracts the config file path given via -c or -config.
// Only these flags are parsed; everything else on the command line is
// ignored, so it can run before the main flag set is built.
//
// An empty string means no config file was requested.
func ConfigFileFlag() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file (.json, .yaml or .yml)")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
