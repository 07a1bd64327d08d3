package pets

import (
	"context"
	"fmt"
	"strings"

	"pet-catalog/internal/platform/logger"

	sq "github.com/Masterminds/squirrel"
)

// Service es el gateway de acceso: enruta cada operación por dirección,
// valida el payload y delega en el Repository.
//
// Política de errores:
//   - direcciones y payloads inválidos siempre fallan (sin tocar el store);
//   - fallas del store en Query/Delete se loguean y degradan a "sin resultado";
//     en lecturas eso incluye errores al recorrer el cursor (ver Drain);
//   - fallas del store en Insert/Update se propagan.
type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "pets.gateway"}),
	}
}

// QueryOptions: Columns vacío = todas; Where nil = sin filtro; OrderBy son
// términos "columna [ASC|DESC]".
type QueryOptions struct {
	Columns []string
	Where   sq.Sqlizer
	OrderBy []string
}

func (s *Service) Query(ctx context.Context, address string, opts QueryOptions) (*Cursor, error) {
	route, err := Match(address)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot query %q", ErrUnsupportedOperation, address)
	}

	cols, err := projection(opts.Columns)
	if err != nil {
		return nil, err
	}
	order, err := sortOrder(opts.OrderBy)
	if err != nil {
		return nil, err
	}

	where := opts.Where
	if route.Kind == RouteItem {
		where = byID(route.ID)
	}

	rows, err := s.repo.Query(ctx, cols, where, order)
	if err != nil {
		s.log.Error("query failed", map[string]any{"address": address, "error": err.Error()})
		return &Cursor{}, nil
	}
	c, err := newCursor(rows)
	if err != nil {
		s.log.Error("query failed", map[string]any{"address": address, "error": err.Error()})
		return &Cursor{}, nil
	}
	return c, nil
}

// Drain lee y cierra el cursor de Query. Un error a mitad de lectura se
// loguea y se devuelven las filas leídas hasta ese punto.
func (s *Service) Drain(address string, c *Cursor) []Pet {
	out, err := Collect(c)
	if err != nil {
		s.log.Error("reading rows failed", map[string]any{"address": address, "rows": len(out), "error": err.Error()})
	}
	return out
}

// Insert solo acepta la dirección de colección y devuelve la dirección del
// item creado.
func (s *Service) Insert(ctx context.Context, address string, values Values) (string, error) {
	route, err := Match(address)
	if err != nil {
		return "", err
	}
	if route.Kind != RouteCollection {
		return "", fmt.Errorf("%w: insertion is not supported for %q", ErrUnsupportedOperation, address)
	}

	clean, err := validateInsert(values)
	if err != nil {
		return "", err
	}

	id, err := s.repo.Insert(ctx, clean)
	if err != nil {
		return "", fmt.Errorf("insert pet: %w", err)
	}
	if id <= 0 {
		s.log.Error("store returned no row id", map[string]any{"address": address, "id": id})
		return "", fmt.Errorf("%w: store returned id %d", ErrInsertFailed, id)
	}

	s.log.Debug("pet inserted", map[string]any{"id": id})
	return ItemURI(id), nil
}

func (s *Service) Update(ctx context.Context, address string, values Values, where sq.Sqlizer) (int64, error) {
	route, err := Match(address)
	if err != nil {
		return 0, err
	}
	if route.Kind == RouteItem {
		where = byID(route.ID)
	}

	clean, err := validateUpdate(values)
	if err != nil {
		return 0, err
	}
	if len(clean) == 0 {
		return 0, nil
	}

	n, err := s.repo.Update(ctx, clean, where)
	if err != nil {
		return 0, fmt.Errorf("update pets: %w", err)
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, address string, where sq.Sqlizer) (int64, error) {
	route, err := Match(address)
	if err != nil {
		return 0, err
	}
	if route.Kind == RouteItem {
		where = byID(route.ID)
	}

	n, err := s.repo.Delete(ctx, where)
	if err != nil {
		fields := map[string]any{"address": address, "error": err.Error()}
		if where != nil {
			if clause, _, serr := where.ToSql(); serr == nil {
				fields["selection"] = clause
			}
		}
		s.log.Error("delete failed", fields)
		return 0, nil
	}
	return n, nil
}

// Type devuelve el tipo de recurso de la dirección.
func (s *Service) Type(address string) (string, error) {
	route, err := Match(address)
	if err != nil {
		return "", err
	}
	switch route.Kind {
	case RouteCollection:
		return TypeCollection, nil
	case RouteItem:
		return TypeItem, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownResource, address)
	}
}

func byID(id int64) sq.Sqlizer {
	return sq.Eq{ColID: id}
}

func projection(cols []string) ([]string, error) {
	if len(cols) == 0 {
		return append([]string(nil), Columns...), nil
	}
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		c = strings.TrimSpace(c)
		if !isColumn(c) {
			return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidArgument, c)
		}
		out = append(out, c)
	}
	return out, nil
}

// sortOrder valida cada término contra el esquema para que el ORDER BY nunca
// lleve texto arbitrario.
func sortOrder(terms []string) ([]string, error) {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		fields := strings.Fields(t)
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 2 || !isColumn(fields[0]) {
			return nil, fmt.Errorf("%w: invalid sort term %q", ErrInvalidArgument, t)
		}
		term := fields[0]
		if len(fields) == 2 {
			dir := strings.ToUpper(fields[1])
			if dir != "ASC" && dir != "DESC" {
				return nil, fmt.Errorf("%w: invalid sort term %q", ErrInvalidArgument, t)
			}
			term += " " + dir
		}
		out = append(out, term)
	}
	return out, nil
}
