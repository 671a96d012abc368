package main

import (
	"context"
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/mark3labs/onboard/internal/outbox"
	"github.com/mark3labs/onboard/internal/tui/theme"
)

var invitesFlags struct {
	company string
}

var invitesCmd = &cobra.Command{
	Use:   "invites",
	Short: "List team invites held in the outbox",
	Long: `List the team invites queued during signup.

Invites are only held when invite_outbox is enabled. Each signup queues its
invites under the new company's ID.`,
	RunE: runInvites,
}

func init() {
	invitesCmd.Flags().StringVarP(&invitesFlags.company, "company", "c", "", "Only list invites for this company ID")
}

func runInvites(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	ob, err := outbox.Open(ctx, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open invite outbox: %w", err)
	}
	defer func() { _ = ob.Close() }()

	entries, err := ob.List(ctx, invitesFlags.company)
	if err != nil {
		return fmt.Errorf("failed to list invites: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No invites queued.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderInvites(entries))
	return nil
}

func renderInvites(entries []outbox.Entry) string {
	t := theme.Current()
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Primary)).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.BorderFocused))).
		Headers("Company", "Email", "Name", "Role", "Queued").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, e := range entries {
		tbl.Row(e.Company, e.Email, e.Name, string(e.Role), e.QueuedAt.Local().Format("2006-01-02 15:04"))
	}
	return tbl.String()
}
