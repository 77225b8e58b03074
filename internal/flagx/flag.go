// Package flagx lets several loaders share os.Args without tripping over
// each other's flags.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps only the flags named in allowed, together with their
// values. Both "-f value" and "-f=value" forms are recognised. A value is
// taken from the next argument only when it does not itself start with "-".
// The result is never nil.
func FilterArgs(args []string, allowed []string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		known[f] = struct{}{}
	}

	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := known[name]; keep {
				out = append(out, arg)
			}
			continue
		}

		if _, keep := known[arg]; !keep {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// ConfigFiles holds the optional file locations passed on the command line.
type ConfigFiles struct {
	// JSON is set by -c or -config.
	JSON string
	// Env is set by -env and points at a dotenv file.
	Env string
}

// ConfigFileFlags extracts -c/-config and -env from args (usually
// os.Args[1:]). Unknown flags are ignored so that other loaders can parse
// their own.
func ConfigFileFlags(args []string) ConfigFiles {
	var files ConfigFiles

	filtered := FilterArgs(args, []string{"-c", "-config", "-env"})

	fs := flag.NewFlagSet("files", flag.ContinueOnError)
	fs.StringVar(&files.JSON, "config", "", "path to JSON config file")
	fs.StringVar(&files.JSON, "c", "", "path to JSON config file (short)")
	fs.StringVar(&files.Env, "env", "", "path to .env file")
	_ = fs.Parse(filtered)

	return files
}
