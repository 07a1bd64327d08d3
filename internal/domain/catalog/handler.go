package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-catalog/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Acciones del menú de la lista y del editor.
	r.Post("/pets/sample", insertSampleHandler(svc))
	r.Post("/pets/delete-matching", deleteMatchingHandler(svc))
	r.Post("/pets/save", saveHandler(svc))
}

// formRequest refleja los campos del editor: todo texto, gender por nombre.
type formRequest struct {
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Weight string `json:"weight"`
	Gender string `json:"gender"`
}

type savedResponse struct {
	ID  int64  `json:"id"`
	URI string `json:"uri"`
}

type deleteOutcomeResponse struct {
	Kind    DeleteKind `json:"kind"`
	Deleted int64      `json:"deleted"`
	ID      int64      `json:"id,omitempty"`
}

func insertSampleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saved, err := svc.InsertSample(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, savedResponse{ID: saved.ID, URI: saved.URI})
	}
}

func saveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := decodeForm(r)
		if err != nil {
			writeError(w, err)
			return
		}

		saved, err := svc.Save(r.Context(), f)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, savedResponse{ID: saved.ID, URI: saved.URI})
	}
}

func deleteMatchingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := decodeForm(r)
		if err != nil {
			writeError(w, err)
			return
		}

		out, err := svc.DeleteMatching(r.Context(), f)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deleteOutcomeResponse{Kind: out.Kind, Deleted: out.Count, ID: out.ID})
	}
}

func decodeForm(r *http.Request) (Form, error) {
	var req formRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Form{}, errors.Join(ErrInvalidInput, errors.New("invalid json"))
	}
	g, err := pets.ParseGender(req.Gender)
	if err != nil {
		return Form{}, err
	}
	return Form{Name: req.Name, Breed: req.Breed, Weight: req.Weight, Gender: g}, nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, pets.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
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
