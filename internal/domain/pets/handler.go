package pets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-chi/chi/v5"
)

// HeaderResourceType lleva el resultado de Service.Type en cada respuesta.
const HeaderResourceType = "X-Resource-Type"

func RegisterRoutes(r chi.Router, svc *Service) {
	// Colección: filtros por query string (igualdad, AND)
	r.Get("/pets", queryPetsHandler(svc))
	r.Post("/pets", insertPetHandler(svc))
	r.Patch("/pets", updatePetsHandler(svc))
	r.Delete("/pets", deletePetsHandler(svc))

	// Item
	r.Get("/pets/{petID:[0-9]+}", getPetHandler(svc))
	r.Patch("/pets/{petID:[0-9]+}", updatePetsHandler(svc))
	r.Delete("/pets/{petID:[0-9]+}", deletePetsHandler(svc))
}

// Las keys JSON son los nombres de columna, salvo _id que sale como "id".
type insertPetResponse struct {
	ID  int64  `json:"id"`
	URI string `json:"uri"`
}

type countResponse struct {
	Updated *int64 `json:"updated,omitempty"`
	Deleted *int64 `json:"deleted,omitempty"`
}

func queryPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		where, err := filterFromQuery(r.URL.Query(), false)
		if err != nil {
			writeError(w, err)
			return
		}

		opts := QueryOptions{
			Columns: splitList(r.URL.Query().Get("fields")),
			Where:   where,
			OrderBy: splitList(r.URL.Query().Get("sort")),
		}
		c, err := svc.Query(r.Context(), CollectionURI, opts)
		if err != nil {
			writeError(w, err)
			return
		}
		items := svc.Drain(CollectionURI, c)

		out := make([]map[string]any, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(c.Columns(), p))
		}

		w.Header().Set(HeaderResourceType, TypeCollection)
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := itemAddress(r)

		c, err := svc.Query(r.Context(), address, QueryOptions{
			Columns: splitList(r.URL.Query().Get("fields")),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		items := svc.Drain(address, c)
		if len(items) == 0 {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		setResourceType(w, svc, address)
		writeJSON(w, http.StatusOK, toPetResponse(c.Columns(), items[0]))
	}
}

func insertPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := decodeValues(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		uri, err := svc.Insert(r.Context(), CollectionURI, values)
		if err != nil {
			writeError(w, err)
			return
		}
		route, err := Match(uri)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Location", "/pets/"+strconv.FormatInt(route.ID, 10))
		setResourceType(w, svc, uri)
		writeJSON(w, http.StatusCreated, insertPetResponse{ID: route.ID, URI: uri})
	}
}

// updatePetsHandler sirve PATCH /pets (con filtro) y PATCH /pets/{id}.
func updatePetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, where, err := targetOf(r)
		if err != nil {
			writeError(w, err)
			return
		}
		values, err := decodeValues(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		n, err := svc.Update(r.Context(), address, values, where)
		if err != nil {
			writeError(w, err)
			return
		}

		setResourceType(w, svc, address)
		writeJSON(w, http.StatusOK, countResponse{Updated: &n})
	}
}

// deletePetsHandler sirve DELETE /pets (sin filtro = todo) y DELETE /pets/{id}.
func deletePetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, where, err := targetOf(r)
		if err != nil {
			writeError(w, err)
			return
		}

		n, err := svc.Delete(r.Context(), address, where)
		if err != nil {
			writeError(w, err)
			return
		}

		setResourceType(w, svc, address)
		writeJSON(w, http.StatusOK, countResponse{Deleted: &n})
	}
}

func itemAddress(r *http.Request) string {
	return CollectionURI + "/" + chi.URLParam(r, "petID")
}

func targetOf(r *http.Request) (string, sq.Sqlizer, error) {
	if chi.URLParam(r, "petID") != "" {
		return itemAddress(r), nil, nil
	}
	// PATCH/DELETE: una key desconocida no puede convertirse en "todas".
	where, err := filterFromQuery(r.URL.Query(), true)
	return CollectionURI, where, err
}

// filterFromQuery arma un AND de igualdades con las columnas conocidas que
// vengan en el query string, en orden de tabla. Con strict, cualquier otro
// parámetro es ErrInvalidArgument; sin strict se ignora (fields, sort).
func filterFromQuery(q url.Values, strict bool) (sq.Sqlizer, error) {
	if strict {
		for key := range q {
			if key == ColID || (key != "id" && !isColumn(key)) {
				return nil, fmt.Errorf("%w: unknown filter %q", ErrInvalidArgument, key)
			}
		}
	}

	var and sq.And
	for _, col := range Columns {
		key := col
		if col == ColID {
			key = "id"
		}
		if !q.Has(key) {
			continue
		}
		raw := q.Get(key)

		switch col {
		case ColName, ColBreed:
			and = append(and, sq.Eq{col: raw})
		case ColGender:
			g, err := ParseGender(raw)
			if err != nil {
				return nil, err
			}
			and = append(and, sq.Eq{col: int64(g)})
		default:
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgument, key)
			}
			and = append(and, sq.Eq{col: n})
		}
	}
	if len(and) == 0 {
		return nil, nil
	}
	return and, nil
}

// decodeValues lee el body como mapa columna -> valor. "gender" acepta el
// nombre (male/female/unknown) además del número.
func decodeValues(r *http.Request) (Values, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.New("invalid json")
	}

	values := Values{}
	for k, v := range raw {
		if k == "id" {
			k = ColID
		}
		values[k] = v
	}
	// En blanco no es "unknown": sigue como string y lo rechaza la validación.
	if s, ok := values[ColGender].(string); ok && strings.TrimSpace(s) != "" {
		if g, err := ParseGender(s); err == nil {
			values[ColGender] = g
		}
	}
	return values, nil
}

func toPetResponse(cols []string, p Pet) map[string]any {
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		switch c {
		case ColID:
			out["id"] = p.ID
		case ColName:
			out[ColName] = p.Name
		case ColBreed:
			out[ColBreed] = p.Breed
		case ColGender:
			out[ColGender] = p.Gender.String()
		case ColWeight:
			out[ColWeight] = p.Weight
		}
	}
	return out
}

func setResourceType(w http.ResponseWriter, svc *Service, address string) {
	if t, err := svc.Type(address); err == nil {
		w.Header().Set(HeaderResourceType, t)
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnknownResource):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrUnsupportedOperation):
		http.Error(w, err.Error(), http.StatusMethodNotAllowed)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (pets/catalog)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
