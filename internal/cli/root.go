// Package cli es la consola del catálogo: los flujos de lista y editor como
// subcomandos cobra sobre el store local.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pet-catalog/internal/adapters/storage"
	"pet-catalog/internal/domain/catalog"
	"pet-catalog/internal/domain/pets"
	"pet-catalog/internal/platform/config"
	"pet-catalog/internal/platform/logger"
)

// session vive lo que dura un comando: se abre en PersistentPreRunE y Run
// la cierra al terminar, aunque el comando falle.
type session struct {
	store   storage.Store
	pets    *pets.Service
	catalog *catalog.Service
}

func (s *session) close() error {
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

func newRootCmd(s *session) *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:           "petctl",
		Short:         "Manage the local pet catalog",
		Long:          "petctl lists, adds, edits and deletes pets in the local catalog store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}

			// Los logs van a stderr; stdout queda para la salida del comando.
			log := logger.NewFromConfig(cfg, cmd.ErrOrStderr())

			st, err := storage.Open(cmd.Context(), cfg, log)
			if err != nil {
				return fmt.Errorf("failed to open catalog: %w", err)
			}
			s.store = st
			s.pets = pets.NewService(st, log)
			s.catalog = catalog.NewService(s.pets, log)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite file (default $PETS_DB_PATH or shelter.db)")

	root.AddCommand(listCmd(s))
	root.AddCommand(addCmd(s))
	root.AddCommand(updateCmd(s))
	root.AddCommand(deleteCmd(s))
	root.AddCommand(deleteMatchingCmd(s))
	root.AddCommand(deleteAllCmd(s))
	root.AddCommand(sampleCmd(s))
	root.AddCommand(typeCmd(s))

	return root
}

// Run ejecuta petctl con args y cierra el store al final.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var s session
	root := newRootCmd(&s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := s.close(); err == nil {
		err = cerr
	}
	return err
}

// Execute corre petctl con os.Args y devuelve el exit code.
func Execute() int {
	if err := Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		errorColor.Fprintln(os.Stderr, "✗ "+err.Error())
		return 1
	}
	return 0
}
