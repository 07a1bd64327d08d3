package catalog

import (
	sq "github.com/Masterminds/squirrel"

	"pet-catalog/internal/domain/pets"
)

// Conjunction acumula igualdades (columna = ?) en orden de llegada y las
// renderiza como un AND parametrizado. Los valores nunca se concatenan al SQL.
type Conjunction struct {
	parts sq.And
}

func (c *Conjunction) Add(column string, value any) *Conjunction {
	c.parts = append(c.parts, sq.Eq{column: value})
	return c
}

func (c *Conjunction) Len() int {
	return len(c.parts)
}

// ToSql implementa sq.Sqlizer.
func (c *Conjunction) ToSql() (string, []any, error) {
	return c.parts.ToSql()
}

// MatchPredicate arma el filtro del flujo "borrar por atributos":
// name, breed y weight si vienen no vacíos, y gender siempre al final.
func MatchPredicate(f Form) (*Conjunction, error) {
	in, err := f.normalize()
	if err != nil {
		return nil, err
	}

	c := &Conjunction{}
	if in.name != "" {
		c.Add(pets.ColName, in.name)
	}
	if in.breed != "" {
		c.Add(pets.ColBreed, in.breed)
	}
	if in.hasWeight {
		c.Add(pets.ColWeight, in.weight)
	}
	c.Add(pets.ColGender, int64(in.gender))
	return c, nil
}
