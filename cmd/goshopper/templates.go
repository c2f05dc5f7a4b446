package main

import (
	"github.com/spf13/cobra"
)

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect shop extraction templates",
	}

	cmd.AddCommand(templatesListCmd())
	cmd.AddCommand(templatesShowCmd())

	return cmd
}

func templatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stored templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			templates, err := store.GetAllTemplates(ctx)
			if err != nil {
				return err
			}
			return printJSON(templates)
		},
	}
}

func templatesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <shop-id>",
		Short: "Show one shop's template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			template, err := store.GetTemplate(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(template)
		},
	}
}
