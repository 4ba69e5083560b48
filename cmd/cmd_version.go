package cmd

import (
	"fmt"

	"github.com/runeforge-network/launchpad/modules/launchpad"
	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show launchpad version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(launchpad.Version)
		},
	}
}
