package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/cmq/internal/cachefile"
	"github.com/standardbeagle/cmq/internal/fileapi"
	"github.com/standardbeagle/cmq/internal/namematch"
)

// cacheCommand prints cache variables. Without an argument it lists every
// variable; with a wildcard it lists the matching subset; with a plain name
// it prints that variable or suggests the closest known one.
func cacheCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	text, err := fileapi.LoadCache(cfg.CachePath())
	if err != nil {
		return err
	}
	snapshot := cachefile.Parse(text)

	request := c.Args().First()
	switch {
	case request == "":
		for _, name := range snapshot.Names() {
			printVariable(snapshot[name])
		}

	case namematch.IsPattern(request):
		matches := namematch.Expand(request, snapshot.Names())
		if len(matches) == 0 {
			fmt.Printf("No cache variables match %s\n", request)
			return nil
		}
		if len(matches) > cfg.Query.MaxWildcardResults {
			matches = matches[:cfg.Query.MaxWildcardResults]
			fmt.Printf("(showing first %d matches)\n", len(matches))
		}
		for _, name := range matches {
			printVariable(snapshot[name])
		}

	default:
		if v, ok := snapshot[request]; ok {
			printVariable(v)
			return nil
		}
		fmt.Printf("%s is not in the cache", request)
		if suggestion, ok := namematch.Nearest(request, snapshot.Names()); ok {
			fmt.Printf("; closest known variable is %s", suggestion)
		}
		fmt.Println()
	}

	return nil
}

func printVariable(v cachefile.Variable) {
	if v.Documentation != "" {
		fmt.Printf("// %s\n", v.Documentation)
	}
	fmt.Printf("%s:%s=%s\n", v.Name, v.Type, v.Value)
}
