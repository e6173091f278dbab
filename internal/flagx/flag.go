package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args that belongs to the allowed flags,
// values included. Two spellings are recognized: a value in the following
// argument ("-c conf.json", unless the follower itself looks like a flag)
// and a value combined with '=' ("-c=conf.json", "--config=conf.json").
// Everything else, positionals included, is dropped, so each package can
// parse its own flag subset without tripping over flags registered elsewhere.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]bool, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = true
	}

	keep := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		name, _, combined := strings.Cut(args[i], "=")
		if !allowed[name] {
			continue
		}
		keep = append(keep, args[i])
		if combined {
			continue
		}
		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			keep = append(keep, args[next])
			i = next
		}
	}
	return keep
}

// JsonConfigFlags inspects command-line arguments and extracts the config file
// path provided via the -c or -config flags. Only these flags are parsed;
// other arguments are ignored. If neither is present, an empty string is
// returned.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
