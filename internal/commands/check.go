package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/linkage"
	"github.com/finbook-dev/finbook/internal/model"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <document.json>",
		Short: "Audit a finbook document for consistency violations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}

	return cmd
}

func runCheck(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}
	doc.Normalize()

	violations := linkage.Check(doc)
	if len(violations) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "OK: no violations found")
		return nil
	}

	for _, v := range violations {
		fmt.Fprintln(cmd.OutOrStdout(), v.Error())
	}
	return fmt.Errorf("%d violation(s) found", len(violations))
}
