package cli

import (
	"github.com/spf13/cobra"

	"pet-catalog/internal/domain/catalog"
)

func deleteMatchingCmd(s *session) *cobra.Command {
	var f formFlags

	cmd := &cobra.Command{
		Use:   "delete-matching",
		Short: "Delete the pets whose fields match the given values",
		Long: `Deletes every pet matching the non-empty name, breed and weight flags
plus the gender (unknown when omitted). A single match is deleted by id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := f.form()
			if err != nil {
				return err
			}
			out, err := s.catalog.DeleteMatching(cmd.Context(), form)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case out.Kind == catalog.DeleteNone || out.Count == 0:
				warnColor.Fprintln(w, "Error with deleting pet")
			case out.Kind == catalog.DeleteSingle:
				okColor.Fprintf(w, "✓ Pet %d deleted\n", out.ID)
			default:
				okColor.Fprintf(w, "✓ %d pets deleted\n", out.Count)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func deleteAllCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every pet in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := s.catalog.DeleteAll(cmd.Context())
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "✓ %d pets deleted\n", n)
			return nil
		},
	}
}

func sampleCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Insert the sample pet (Toto, Terrier, male, 7)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			saved, err := s.catalog.InsertSample(cmd.Context())
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "✓ Pet saved: %d (%s)\n", saved.ID, saved.URI)
			return nil
		},
	}
}
