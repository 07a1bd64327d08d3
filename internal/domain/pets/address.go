package pets

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	Scheme    = "content"
	Authority = "pet-catalog"
	PathPets  = "pets"

	// CollectionURI identifica la colección completa de mascotas.
	CollectionURI = Scheme + "://" + Authority + "/" + PathPets
)

// Tipos de recurso devueltos por Service.Type.
const (
	TypeCollection = "collection-of-pets"
	TypeItem       = "single-pet"
)

type RouteKind int

const (
	RouteCollection RouteKind = iota + 1
	RouteItem
)

func (k RouteKind) String() string {
	switch k {
	case RouteCollection:
		return "collection"
	case RouteItem:
		return "item"
	default:
		return "unknown"
	}
}

// Route es el resultado de clasificar una dirección. ID solo tiene sentido
// cuando Kind == RouteItem.
type Route struct {
	Kind RouteKind
	ID   int64
}

// Match clasifica una dirección en colección o item.
// El sufijo de item debe ser un número decimal (sin signo).
func Match(address string) (Route, error) {
	u, err := url.Parse(strings.TrimSpace(address))
	if err != nil {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownResource, address)
	}
	if u.Scheme != Scheme || u.Host != Authority || u.RawQuery != "" || u.Fragment != "" {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownResource, address)
	}

	// Los segmentos vacíos se ignoran: "pets/" es la colección.
	var segs []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	if len(segs) == 0 || segs[0] != PathPets {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownResource, address)
	}

	switch len(segs) {
	case 1:
		return Route{Kind: RouteCollection}, nil
	case 2:
		id, ok := parseDigits(segs[1])
		if !ok {
			return Route{}, fmt.Errorf("%w: %q", ErrUnknownResource, address)
		}
		return Route{Kind: RouteItem, ID: id}, nil
	default:
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownResource, address)
	}
}

// ItemURI arma la dirección de una mascota a partir de la colección.
func ItemURI(id int64) string {
	return CollectionURI + "/" + strconv.FormatInt(id, 10)
}

func parseDigits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
