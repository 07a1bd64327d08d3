package pets

import (
	"database/sql"
	"fmt"
	"iter"
)

// Cursor recorre perezosamente el resultado de Query. Un Cursor sin filas
// (rows nil) es válido y está vacío. Hay que cerrarlo siempre.
type Cursor struct {
	rows *sql.Rows
	cols []string
}

func newCursor(rows *sql.Rows) (*Cursor, error) {
	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, err
	}
	return &Cursor{rows: rows, cols: cols}, nil
}

func (c *Cursor) Columns() []string {
	return c.cols
}

func (c *Cursor) Next() bool {
	if c == nil || c.rows == nil {
		return false
	}
	return c.rows.Next()
}

// Pet escanea la fila actual. Las columnas fuera de la proyección quedan en
// su valor cero.
func (c *Cursor) Pet() (Pet, error) {
	if c == nil || c.rows == nil {
		return Pet{}, sql.ErrNoRows
	}

	var (
		p      Pet
		breed  sql.NullString
		gender int64
	)
	dest := make([]any, len(c.cols))
	for i, col := range c.cols {
		switch col {
		case ColID:
			dest[i] = &p.ID
		case ColName:
			dest[i] = &p.Name
		case ColBreed:
			dest[i] = &breed
		case ColGender:
			dest[i] = &gender
		case ColWeight:
			dest[i] = &p.Weight
		default:
			return Pet{}, fmt.Errorf("unexpected column %q", col)
		}
	}
	if err := c.rows.Scan(dest...); err != nil {
		return Pet{}, err
	}

	p.Breed = breed.String
	p.Gender = Gender(gender)
	return p, nil
}

func (c *Cursor) Err() error {
	if c == nil || c.rows == nil {
		return nil
	}
	return c.rows.Err()
}

func (c *Cursor) Close() error {
	if c == nil || c.rows == nil {
		return nil
	}
	return c.rows.Close()
}

// All itera las filas restantes. Se corta en el primer error.
func (c *Cursor) All() iter.Seq2[Pet, error] {
	return func(yield func(Pet, error) bool) {
		for c.Next() {
			p, err := c.Pet()
			if !yield(p, err) || err != nil {
				return
			}
		}
		if err := c.Err(); err != nil {
			yield(Pet{}, err)
		}
	}
}

// Collect drena el cursor y lo cierra. Si la lectura falla a mitad devuelve
// las filas leídas hasta ahí junto con el error.
func Collect(c *Cursor) ([]Pet, error) {
	defer c.Close()

	out := make([]Pet, 0)
	for p, err := range c.All() {
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, nil
}
