package mcp

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/cmq/internal/codemodel"
	"github.com/standardbeagle/cmq/internal/ownership"
)

// renderOwnership turns a structured ownership result into the tool response,
// including a one-line human summary. The resolver itself never produces
// prose; that is this layer's job.
func renderOwnership(queryPath string, result ownership.Result) FileOwnerResponse {
	response := FileOwnerResponse{
		Path:       queryPath,
		Resolution: string(result.Kind),
	}

	switch result.Kind {
	case ownership.Direct:
		entry := targetEntry(*result.Target)
		response.Owner = &entry
		response.Summary = fmt.Sprintf("%s is a source of %s (%s)",
			queryPath, result.Target.Name, result.Target.Kind.Title())

	case ownership.DirectMultiple:
		for _, t := range result.Targets {
			response.Owners = append(response.Owners, targetEntry(t))
		}
		response.Summary = fmt.Sprintf("%s is a source of %d targets: %s",
			queryPath, len(result.Targets), joinTargetNames(result.Targets))

	case ownership.IncludeReachable:
		for _, t := range result.Candidates {
			response.Candidates = append(response.Candidates, targetEntry(t))
		}
		if result.Likely != nil {
			entry := targetEntry(*result.Likely)
			response.Likely = &entry
			response.Summary = fmt.Sprintf("%s most likely belongs to %s (include path inside its source directory)",
				queryPath, result.Likely.Name)
		} else {
			response.Summary = fmt.Sprintf("%s is visible through the include paths of: %s",
				queryPath, joinTargetNames(result.Candidates))
		}

	case ownership.DirectoryContained:
		entry := targetEntry(*result.Target)
		response.Owner = &entry
		response.Summary = fmt.Sprintf("%s sits in the source directory of %s",
			queryPath, result.Target.Name)

	default:
		response.Summary = fmt.Sprintf("ownership of %s could not be determined from the build metadata; the file may still be used through mechanisms the file-api does not record", queryPath)
	}

	return response
}

func joinTargetNames(targets []codemodel.BuildTarget) string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
