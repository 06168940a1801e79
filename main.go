package main

import (
	"fmt"
	"os"

	"github.com/bank-statementer/statementer/cmd/categorize"
	"github.com/bank-statementer/statementer/cmd/root"
	"github.com/bank-statementer/statementer/cmd/serve"
	"github.com/bank-statementer/statementer/cmd/tags"
	"github.com/bank-statementer/statementer/cmd/version"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(tags.Cmd)
	root.Cmd.AddCommand(version.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
