package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/cmq/internal/cachefile"
	"github.com/standardbeagle/cmq/internal/fileapi"
)

// statusCommand reports what project metadata is currently available.
func statusCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	fmt.Printf("Project:   %s\n", cfg.Project.Name)
	fmt.Printf("Root:      %s\n", cfg.Project.Root)
	fmt.Printf("Build dir: %s\n", cfg.BuildDir())

	if text, err := fileapi.LoadCache(cfg.CachePath()); err != nil {
		fmt.Printf("Cache:     unavailable (%v)\n", err)
	} else {
		snapshot := cachefile.Parse(text)
		fmt.Printf("Cache:     %d variables, fingerprint %016x\n",
			len(snapshot), snapshot.Fingerprint())
	}

	if model, err := fileapi.LoadCodemodel(c.Context, cfg.BuildDir(), cfg.Query.ExcludeSources); err != nil {
		fmt.Printf("Codemodel: unavailable (%v)\n", err)
	} else {
		catalog := model.Flatten()
		fmt.Printf("Codemodel: %d configuration(s), %d target(s)\n",
			len(model.Configurations), len(catalog))
	}

	return nil
}

// queryCommand writes the file-api query file into the build directory.
func queryCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	if err := fileapi.WriteQuery(cfg.BuildDir()); err != nil {
		return err
	}
	fmt.Printf("Wrote codemodel-v2 query under %s\n", cfg.BuildDir())
	fmt.Println("Re-run the CMake configure step to produce the reply")
	return nil
}
