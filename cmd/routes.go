package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"chatfront/internal/app/devproxy"
	"chatfront/internal/app/views"
	"chatfront/internal/configs"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the view and proxy tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configs.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			var rules []devproxy.Rule
			if cfg.UseProxy() {
				proxy, err := devproxy.New(devproxy.DefaultRules(cfg.AdminAPIURL, cfg.GatewayAPIURL))
				if err != nil {
					return err
				}
				rules = proxy.Rules()
			}

			return printRoutes(cmd.OutOrStdout(), rules)
		},
	}
}

func printRoutes(out io.Writer, rules []devproxy.Rule) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "VIEW\tPATH")
	for _, r := range views.Routes {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Path)
	}

	fmt.Fprintln(tw)
	if len(rules) == 0 {
		fmt.Fprintln(tw, "PROXY\t(disabled)")
		return tw.Flush()
	}

	fmt.Fprintln(tw, "PROXY\tTARGET")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\n", r.Prefix, r.Target)
	}

	return tw.Flush()
}
