package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/cmq/internal/fileapi"
	"github.com/standardbeagle/cmq/internal/ownership"
)

// targetsCommand lists the flattened target catalog.
func targetsCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	model, err := fileapi.LoadCodemodel(c.Context, cfg.BuildDir(), cfg.Query.ExcludeSources)
	if err != nil {
		return err
	}

	for _, target := range model.Flatten() {
		sources := 0
		for _, group := range target.FileGroups {
			sources += len(group.Sources)
		}
		fmt.Printf("%-30s %-18s %s (%d sources)\n",
			target.Name, target.Kind.Title(), target.SourceDirectory, sources)
	}
	return nil
}

// ownerCommand resolves file ownership for one path.
func ownerCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: cmq owner <path>")
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	model, err := fileapi.LoadCodemodel(c.Context, cfg.BuildDir(), cfg.Query.ExcludeSources)
	if err != nil {
		return err
	}

	path := c.Args().First()
	result := ownership.Resolve(path, cfg.Project.Root, model.Flatten())

	switch result.Kind {
	case ownership.Direct:
		fmt.Printf("%s is a source of %s (%s)\n", path, result.Target.Name, result.Target.Kind.Title())
	case ownership.DirectMultiple:
		fmt.Printf("%s is a source of %d targets:\n", path, len(result.Targets))
		for _, t := range result.Targets {
			fmt.Printf("  %s (%s)\n", t.Name, t.Kind.Title())
		}
	case ownership.IncludeReachable:
		if result.Likely != nil {
			fmt.Printf("%s most likely belongs to %s\n", path, result.Likely.Name)
		} else {
			fmt.Printf("%s is visible through include paths of:\n", path)
		}
		for _, t := range result.Candidates {
			fmt.Printf("  %s (%s)\n", t.Name, t.Kind.Title())
		}
	case ownership.DirectoryContained:
		fmt.Printf("%s sits in the source directory of %s\n", path, result.Target.Name)
	default:
		fmt.Printf("Ownership of %s could not be determined from the build metadata\n", path)
	}
	return nil
}
