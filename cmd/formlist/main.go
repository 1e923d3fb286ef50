package main

import (
	"io"
	"os"

	"github.com/goliatone/go-formlist/internal/prompt"
)

func main() {
	root := newRootCmd(func(out io.Writer) prompt.Driver {
		return prompt.NewSurvey(out)
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
