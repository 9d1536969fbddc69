package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mxtools/mxexport/internal/model"
)

// ReadToken reads the repository access token from its plain-text file.
//
// The token must be present and non-empty; otherwise the run aborts
// before any external system is contacted. Both failure modes return a
// CLIError with ExitConfigError carrying a remediation message, since a
// missing token is an operator setup problem, not a runtime fault.
func ReadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", model.WrapCLIError(
				model.ExitConfigError,
				fmt.Sprintf("token file not found: %s — create it and paste your model repository personal access token into it", path),
				err,
			)
		}
		return "", model.WrapCLIError(
			model.ExitConfigError,
			fmt.Sprintf("failed to read token file %s", path),
			err,
		)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", model.NewCLIError(
			model.ExitConfigError,
			fmt.Sprintf("token file %s is empty — paste your model repository personal access token into it", path),
		)
	}
	return token, nil
}
