package root

import (
	"github.com/flarebyte/seshat-glyphs/cmd/seshat/generate"
	"github.com/flarebyte/seshat-glyphs/cmd/seshat/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for seshat.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seshat",
		Short: "CLI: bulk-generate QR Code images from delimited (label, payload) files",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Subcommands
	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(generate.Cmd)

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
