package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"pet-catalog/internal/domain/pets"
)

var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
)

func printPets(out io.Writer, cols []string, list []pets.Pet) {
	if len(list) == 0 {
		warnColor.Fprintln(out, "No pets in the catalog")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := ""
	for i, c := range cols {
		if i > 0 {
			header += "\t"
		}
		header += columnTitle(c)
	}
	fmt.Fprintln(w, header)

	for _, p := range list {
		line := ""
		for i, c := range cols {
			if i > 0 {
				line += "\t"
			}
			line += cell(c, p)
		}
		fmt.Fprintln(w, line)
	}
	_ = w.Flush()
}

func columnTitle(col string) string {
	switch col {
	case pets.ColID:
		return "ID"
	case pets.ColName:
		return "NAME"
	case pets.ColBreed:
		return "BREED"
	case pets.ColGender:
		return "GENDER"
	case pets.ColWeight:
		return "WEIGHT"
	}
	return col
}

func cell(col string, p pets.Pet) string {
	switch col {
	case pets.ColID:
		return fmt.Sprint(p.ID)
	case pets.ColName:
		return p.Name
	case pets.ColBreed:
		if p.Breed == "" {
			return "-"
		}
		return p.Breed
	case pets.ColGender:
		return p.Gender.String()
	case pets.ColWeight:
		return fmt.Sprint(p.Weight)
	}
	return ""
}
