package cmd

import "fmt"

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Show the autobind CLI version and build time.",
		Usage: "autobind version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}

func printVersion() {
	fmt.Fprintf(stdout, "autobind CLI version %s (built %s)\n", Version, BuildTime)
}
