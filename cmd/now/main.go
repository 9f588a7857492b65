// now is the command-line client for the Now deployment platform.
//
// Usage:
//
//	now domains add <domain> <project> [--force]
//	now domains ls
//	now domains rm <domain> [--yes]
//
// Configuration is read from NOW_TOKEN, a project-local now.yaml, or the
// global ~/.now/config.yaml.
package main

import (
	"os"

	"github.com/nowhq/now-cli/api"
	"github.com/nowhq/now-cli/cmd"
	"github.com/nowhq/now-cli/config"
	"github.com/nowhq/now-cli/domains"
	"github.com/nowhq/now-cli/output"
	"github.com/nowhq/now-cli/scope"
)

func main() {
	// The printer and transport need the debug setting before cobra has
	// parsed anything, so scan for the flag up front.
	printer := output.New(os.Stdout, os.Stderr, hasDebugFlag(os.Args[1:]))

	cfg, err := config.Load()
	if err != nil {
		printer.Error("%s", err)
		os.Exit(1)
	}

	client := api.New(api.Config{
		Endpoint: cfg.Endpoint,
		Token:    cfg.Token,
		TeamID:   cfg.Team,
		Printer:  printer,
	})
	resolver := scope.NewResolver(client, cfg.Team)
	svc := domains.NewService(client, resolver, printer)

	root := cmd.NewRootCommand("now", "Command-line client for the Now deployment platform")
	root.AddCommand(cmd.NewDomainsCommand(svc, svc, svc))

	if err := root.Execute(); err != nil {
		printer.Error("%s", err)
		os.Exit(1)
	}
}

func hasDebugFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			return true
		}
	}
	return false
}
