package pets

import (
	"fmt"
	"strconv"
	"strings"
)

// Tabla y columnas del catálogo. Los nombres de columna son también las keys
// válidas de Values.
const (
	Table = "pets"

	ColID     = "_id"
	ColName   = "name"
	ColBreed  = "breed"
	ColGender = "gender"
	ColWeight = "weight"
)

// Columns lista las columnas en el orden de la tabla (proyección por defecto).
var Columns = []string{ColID, ColName, ColBreed, ColGender, ColWeight}

// Gender es el dominio enumerado del sexo de la mascota.
// @Enum 0=unknown, 1=male, 2=female
type Gender int

const (
	GenderUnknown Gender = 0
	GenderMale    Gender = 1
	GenderFemale  Gender = 2
)

func (g Gender) Valid() bool {
	return g >= GenderUnknown && g <= GenderFemale
}

func (g Gender) String() string {
	switch g {
	case GenderUnknown:
		return "unknown"
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "gender(" + strconv.Itoa(int(g)) + ")"
	}
}

// ParseGender acepta el nombre (unknown|male|female) o la forma numérica.
// "" se interpreta como unknown, igual que el selector del editor.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown":
		return GenderUnknown, nil
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !Gender(n).Valid() {
		return GenderUnknown, fmt.Errorf("%w: gender must be unknown, male or female", ErrInvalidArgument)
	}
	return Gender(n), nil
}

// Pet es una fila de la tabla pets.
type Pet struct {
	ID int64

	Name   string
	Breed  string // opcional; NULL se lee como ""
	Gender Gender
	Weight int64
}

func isColumn(name string) bool {
	for _, c := range Columns {
		if c == name {
			return true
		}
	}
	return false
}
