// Package catalog contiene los flujos de las pantallas (lista y editor) sin
// la parte visual: guardar, borrar por atributos, datos de ejemplo.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pet-catalog/internal/domain/pets"
	"pet-catalog/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Form son los campos tal como los escribe el usuario en el editor.
type Form struct {
	Name   string
	Breed  string
	Weight string
	Gender pets.Gender
}

type normalizedForm struct {
	name      string
	breed     string
	weight    int64
	hasWeight bool
	gender    pets.Gender
}

func (f Form) normalize() (normalizedForm, error) {
	out := normalizedForm{
		name:   strings.TrimSpace(f.Name),
		breed:  strings.TrimSpace(f.Breed),
		gender: f.Gender,
	}
	if !f.Gender.Valid() {
		return normalizedForm{}, fmt.Errorf("%w: gender must be unknown, male or female", ErrInvalidInput)
	}
	if w := strings.TrimSpace(f.Weight); w != "" {
		n, err := strconv.ParseInt(w, 10, 64)
		if err != nil {
			return normalizedForm{}, fmt.Errorf("%w: weight must be a number", ErrInvalidInput)
		}
		out.weight = n
		out.hasWeight = true
	}
	return out, nil
}

type DeleteKind string

const (
	DeleteNone   DeleteKind = "none"
	DeleteSingle DeleteKind = "single"
	DeleteBulk   DeleteKind = "bulk"
)

type DeleteOutcome struct {
	Kind  DeleteKind
	Count int64
	// ID de la fila cuando Kind == DeleteSingle.
	ID int64
}

type Saved struct {
	ID  int64
	URI string
}

type Service struct {
	pets *pets.Service
	log  logger.Logger
}

func NewService(petsSvc *pets.Service, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		pets: petsSvc,
		log:  log.With(map[string]any{"component": "catalog"}),
	}
}

// List devuelve todas las mascotas para la vista de lista.
func (s *Service) List(ctx context.Context) ([]pets.Pet, error) {
	c, err := s.pets.Query(ctx, pets.CollectionURI, pets.QueryOptions{OrderBy: []string{pets.ColID + " ASC"}})
	if err != nil {
		return nil, err
	}
	return s.pets.Drain(pets.CollectionURI, c), nil
}

// Save inserta lo que hay en el editor. Name y weight son obligatorios.
func (s *Service) Save(ctx context.Context, f Form) (Saved, error) {
	in, err := f.normalize()
	if err != nil {
		return Saved{}, err
	}
	if in.name == "" {
		return Saved{}, fmt.Errorf("%w: need to enter name", ErrInvalidInput)
	}
	if !in.hasWeight {
		return Saved{}, fmt.Errorf("%w: need to enter weight", ErrInvalidInput)
	}

	uri, err := s.pets.Insert(ctx, pets.CollectionURI, pets.Values{
		pets.ColName:   in.name,
		pets.ColBreed:  in.breed,
		pets.ColGender: in.gender,
		pets.ColWeight: in.weight,
	})
	if err != nil {
		return Saved{}, err
	}

	r, err := pets.Match(uri)
	if err != nil {
		return Saved{}, err
	}
	s.log.Info("pet saved", map[string]any{"id": r.ID})
	return Saved{ID: r.ID, URI: uri}, nil
}

// DeleteMatching borra las mascotas que coinciden con el formulario:
//   - 1 coincidencia: se borra por su dirección de item (por _id);
//   - varias: un solo delete sobre la colección con el mismo filtro;
//   - ninguna: no se toca nada.
func (s *Service) DeleteMatching(ctx context.Context, f Form) (DeleteOutcome, error) {
	where, err := MatchPredicate(f)
	if err != nil {
		return DeleteOutcome{}, err
	}

	c, err := s.pets.Query(ctx, pets.CollectionURI, pets.QueryOptions{
		Columns: []string{pets.ColID},
		Where:   where,
	})
	if err != nil {
		return DeleteOutcome{}, err
	}
	// El cursor se drena y se cierra antes de borrar.
	matches, err := pets.Collect(c)
	if err != nil {
		return DeleteOutcome{}, err
	}

	switch {
	case len(matches) == 1:
		id := matches[0].ID
		n, err := s.pets.Delete(ctx, pets.ItemURI(id), nil)
		if err != nil {
			return DeleteOutcome{}, err
		}
		s.logDelete(DeleteSingle, n, 1)
		return DeleteOutcome{Kind: DeleteSingle, Count: n, ID: id}, nil

	case len(matches) > 1:
		n, err := s.pets.Delete(ctx, pets.CollectionURI, where)
		if err != nil {
			return DeleteOutcome{}, err
		}
		s.logDelete(DeleteBulk, n, len(matches))
		return DeleteOutcome{Kind: DeleteBulk, Count: n}, nil

	default:
		s.logDelete(DeleteNone, 0, 0)
		return DeleteOutcome{Kind: DeleteNone}, nil
	}
}

// InsertSample carga la mascota de ejemplo del menú de la lista.
func (s *Service) InsertSample(ctx context.Context) (Saved, error) {
	return s.Save(ctx, Form{Name: "Toto", Breed: "Terrier", Weight: "7", Gender: pets.GenderMale})
}

// DeleteAll vacía el catálogo.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.pets.Delete(ctx, pets.CollectionURI, nil)
	if err != nil {
		return 0, err
	}
	s.log.Info("catalog cleared", map[string]any{"deleted": n})
	return n, nil
}

func (s *Service) logDelete(kind DeleteKind, deleted int64, matched int) {
	fields := map[string]any{"kind": string(kind), "deleted": deleted, "matched": matched}
	if deleted == 0 || deleted != int64(matched) {
		s.log.Warn("pets could not be deleted", fields)
		return
	}
	s.log.Info("pets deleted", fields)
}
