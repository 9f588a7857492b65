package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nowhq/now-cli/domains"
	"github.com/nowhq/now-cli/output"
)

// NewDomainsCommand creates the `domains` command group.
func NewDomainsCommand(adder DomainAdder, lister DomainLister, remover DomainRemover) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "Manage domains under the current scope",
	}
	cmd.AddCommand(NewDomainsAddCommand(adder))
	cmd.AddCommand(NewDomainsListCommand(lister))
	cmd.AddCommand(NewDomainsRemoveCommand(remover))
	return cmd
}

// NewDomainsAddCommand creates the `domains add` command that uses the
// provided DomainAdder.
func NewDomainsAddCommand(adder DomainAdder) *cobra.Command {
	var opts domains.AddOptions

	cmd := &cobra.Command{
		Use:   "add <domain> <project>",
		Short: "Add a domain to a project",
		Long: `Add attaches a custom domain to a project.

After the domain is attached its verification state is reported: domains
pending verification get nameserver and TXT record instructions, verified
domains are pointed at the latest production deployment automatically.

If the domain already belongs to another project, pass --force to remove
the existing binding and reassign it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			return adder.Add(ctx, args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Reassign the domain if it belongs to another project")

	return cmd
}

// NewDomainsListCommand creates the `domains ls` command that uses the
// provided DomainLister.
func NewDomainsListCommand(lister DomainLister) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List domains under the current scope",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			list, err := lister.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list domains: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "> %d domain(s) found\n", len(list))
			if len(list) == 0 {
				return nil
			}

			now := time.Now()
			rows := make([][]string, 0, len(list))
			for _, d := range list {
				verified := "no"
				if d.Verified {
					verified = "yes"
				}
				rows = append(rows, []string{
					d.Name,
					verified,
					output.Age(time.UnixMilli(d.CreatedAt), now),
				})
			}
			_, _ = fmt.Fprint(out, output.Table([]string{"Domain", "Verified", "Age"}, rows))
			return nil
		},
	}
	return cmd
}

// NewDomainsRemoveCommand creates the `domains rm` command that uses the
// provided DomainRemover.
func NewDomainsRemoveCommand(remover DomainRemover) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <domain>",
		Aliases: []string{"remove"},
		Short:   "Remove a domain from the current scope",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if !yes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "? Remove %s and all of its bindings? [y/N] ", args[0])
				reader := bufio.NewReader(cmd.InOrStdin())
				line, _ := reader.ReadString('\n')
				answer := strings.ToLower(strings.TrimSpace(line))
				if answer != "y" && answer != "yes" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "> Aborted.")
					return nil
				}
			}

			if err := remover.Remove(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to remove domain: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
