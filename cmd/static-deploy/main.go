package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/avkozyr/static-deploy/internal/cli"
	"github.com/avkozyr/static-deploy/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if stderrors.As(err, &exitErr) {
			// The run already printed its report; only the code matters.
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(cli.ExitTotalFailure)
	}
}
