package pets

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrUnknownResource      = errors.New("unknown resource")
	ErrInsertFailed         = errors.New("insert failed")
)

// validateInsert exige name, gender y weight, en ese orden.
// Devuelve los valores normalizados que se persisten.
func validateInsert(in Values) (Values, error) {
	out := Values{}

	name, ok := in.String(ColName)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: pet requires a name", ErrInvalidArgument)
	}
	out[ColName] = name

	g, err := genderOf(in)
	if err != nil {
		return nil, err
	}
	out[ColGender] = int64(g)

	w, err := weightOf(in)
	if err != nil {
		return nil, err
	}
	out[ColWeight] = w

	if in.Has(ColBreed) {
		out[ColBreed] = breedOf(in)
	}

	if err := checkKeys(in); err != nil {
		return nil, err
	}
	return out, nil
}

// validateUpdate aplica las mismas reglas que insert, pero solo a las keys
// presentes.
func validateUpdate(in Values) (Values, error) {
	out := Values{}

	if in.Has(ColName) {
		name, ok := in.String(ColName)
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: pet requires a name", ErrInvalidArgument)
		}
		out[ColName] = name
	}

	if in.Has(ColGender) {
		g, err := genderOf(in)
		if err != nil {
			return nil, err
		}
		out[ColGender] = int64(g)
	}

	if in.Has(ColWeight) {
		w, err := weightOf(in)
		if err != nil {
			return nil, err
		}
		out[ColWeight] = w
	}

	if in.Has(ColBreed) {
		out[ColBreed] = breedOf(in)
	}

	if err := checkKeys(in); err != nil {
		return nil, err
	}
	return out, nil
}

func genderOf(in Values) (Gender, error) {
	n, err := in.Int(ColGender)
	if err != nil {
		return GenderUnknown, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	g := Gender(n)
	if !g.Valid() {
		return GenderUnknown, fmt.Errorf("%w: gender must be unknown, male or female", ErrInvalidArgument)
	}
	return g, nil
}

func weightOf(in Values) (int64, error) {
	w, err := in.Int(ColWeight)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if w < 0 {
		return 0, fmt.Errorf("%w: pet needs a positive weight", ErrInvalidArgument)
	}
	return w, nil
}

// breed es opcional: nil se guarda como NULL.
func breedOf(in Values) any {
	s, ok := in.String(ColBreed)
	if !ok {
		return nil
	}
	return s
}

// checkKeys rechaza columnas desconocidas y el _id (asignado por el store).
func checkKeys(in Values) error {
	for k := range in {
		if k == ColID {
			return fmt.Errorf("%w: %s is assigned by the store", ErrInvalidArgument, ColID)
		}
		if !isColumn(k) {
			return fmt.Errorf("%w: unknown column %q", ErrInvalidArgument, k)
		}
	}
	return nil
}
