package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pet-catalog/internal/domain/catalog"
	"pet-catalog/internal/domain/pets"
)

// formFlags son los campos del editor como flags de texto.
type formFlags struct {
	name, breed, weight, gender string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "pet name")
	cmd.Flags().StringVar(&f.breed, "breed", "", "pet breed")
	cmd.Flags().StringVar(&f.weight, "weight", "", "pet weight")
	cmd.Flags().StringVar(&f.gender, "gender", "", "unknown, male or female")
}

func (f *formFlags) form() (catalog.Form, error) {
	g, err := pets.ParseGender(f.gender)
	if err != nil {
		return catalog.Form{}, err
	}
	return catalog.Form{Name: f.name, Breed: f.breed, Weight: f.weight, Gender: g}, nil
}

func listCmd(s *session) *cobra.Command {
	var (
		filters      formFlags
		sort, fields string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pets, optionally filtered by exact field values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			where := &catalog.Conjunction{}
			if cmd.Flags().Changed("name") {
				where.Add(pets.ColName, filters.name)
			}
			if cmd.Flags().Changed("breed") {
				where.Add(pets.ColBreed, filters.breed)
			}
			if cmd.Flags().Changed("gender") {
				g, err := pets.ParseGender(filters.gender)
				if err != nil {
					return err
				}
				where.Add(pets.ColGender, int64(g))
			}
			if cmd.Flags().Changed("weight") {
				n, err := strconv.ParseInt(strings.TrimSpace(filters.weight), 10, 64)
				if err != nil {
					return fmt.Errorf("%w: weight must be an integer", pets.ErrInvalidArgument)
				}
				where.Add(pets.ColWeight, n)
			}

			opts := pets.QueryOptions{
				Columns: splitFlag(fields),
				OrderBy: splitFlag(sort),
			}
			if where.Len() > 0 {
				opts.Where = where
			}

			c, err := s.pets.Query(cmd.Context(), pets.CollectionURI, opts)
			if err != nil {
				return err
			}
			list := s.pets.Drain(pets.CollectionURI, c)
			printPets(cmd.OutOrStdout(), c.Columns(), list)
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVar(&sort, "sort", pets.ColID+" ASC", `comma separated "column [ASC|DESC]" terms`)
	cmd.Flags().StringVar(&fields, "fields", "", "comma separated columns to show (default all)")
	return cmd
}

func addCmd(s *session) *cobra.Command {
	var f formFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pet (name and weight are required)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := f.form()
			if err != nil {
				return err
			}
			saved, err := s.catalog.Save(cmd.Context(), form)
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "✓ Pet saved: %d (%s)\n", saved.ID, saved.URI)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func updateCmd(s *session) *cobra.Command {
	var f formFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of one pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			// Solo se mandan los flags presentes.
			values := pets.Values{}
			if cmd.Flags().Changed("name") {
				values[pets.ColName] = f.name
			}
			if cmd.Flags().Changed("breed") {
				values[pets.ColBreed] = f.breed
			}
			if cmd.Flags().Changed("weight") {
				values[pets.ColWeight] = f.weight
			}
			if cmd.Flags().Changed("gender") {
				g, err := pets.ParseGender(f.gender)
				if err != nil {
					return err
				}
				values[pets.ColGender] = g
			}

			n, err := s.pets.Update(cmd.Context(), pets.ItemURI(id), values, nil)
			if err != nil {
				return err
			}
			if n == 0 {
				warnColor.Fprintf(cmd.OutOrStdout(), "No pet updated\n")
				return nil
			}
			okColor.Fprintf(cmd.OutOrStdout(), "✓ Pet %d updated\n", id)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func deleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one pet by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := s.pets.Delete(cmd.Context(), pets.ItemURI(id), nil)
			if err != nil {
				return err
			}
			if n == 0 {
				warnColor.Fprintf(cmd.OutOrStdout(), "Error with deleting pet\n")
				return nil
			}
			okColor.Fprintf(cmd.OutOrStdout(), "✓ Pet deleted\n")
			return nil
		},
	}
}

func typeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "type <address>",
		Short: "Print the resource type of a catalog address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.pets.Type(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: id must be a non-negative integer", pets.ErrInvalidArgument)
	}
	return id, nil
}

func splitFlag(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
