package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"pet-catalog/internal/adapters/storage/sqlite"
	"pet-catalog/internal/domain/pets"
	"pet-catalog/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "shelter.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	ts := httptest.NewServer(router.NewRouter(router.Options{Pets: pets.NewService(st, nil)}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_PetLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// 1) Health
	{
		st, _, body := doReq(t, ts.URL, "GET", "/health", nil)
		if st != http.StatusOK || string(body) != "ok" {
			t.Fatalf("expected 200 ok, got %d body=%s", st, string(body))
		}
	}

	// 2) Alta
	petID := createPet(t, ts.URL, map[string]any{
		"name":   "Milo",
		"breed":  "mixed",
		"gender": "male",
		"weight": 4,
	})

	// 3) Lectura por id
	{
		st, hdr, body := doReq(t, ts.URL, "GET", "/pets/"+petID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d body=%s", st, string(body))
		}
		if got := hdr.Get(pets.HeaderResourceType); got != pets.TypeItem {
			t.Fatalf("expected resource type %q, got %q", pets.TypeItem, got)
		}
		var p map[string]any
		mustJSON(t, body, &p)
		if p["name"] != "Milo" || p["gender"] != "male" || p["weight"] != float64(4) {
			t.Fatalf("unexpected pet: %v", p)
		}
	}

	// 4) PATCH parcial
	{
		st, _, body := doReq(t, ts.URL, "PATCH", "/pets/"+petID, map[string]any{"weight": 5})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch, got %d body=%s", st, string(body))
		}
		var out map[string]int64
		mustJSON(t, body, &out)
		if out["updated"] != 1 {
			t.Fatalf("expected 1 updated, got %v", out)
		}
	}

	// 5) Listado con filtro, proyección y orden
	createPet(t, ts.URL, map[string]any{"name": "Luna", "gender": "female", "weight": 3})
	createPet(t, ts.URL, map[string]any{"name": "Rex", "gender": 1, "weight": 9})
	{
		st, hdr, body := doReq(t, ts.URL, "GET", "/pets?gender=male&sort=name%20DESC&fields=name,weight", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		if got := hdr.Get(pets.HeaderResourceType); got != pets.TypeCollection {
			t.Fatalf("expected resource type %q, got %q", pets.TypeCollection, got)
		}
		var list []map[string]any
		mustJSON(t, body, &list)
		if len(list) != 2 {
			t.Fatalf("expected 2 male pets, got %d: %v", len(list), list)
		}
		if list[0]["name"] != "Rex" || list[1]["name"] != "Milo" || list[1]["weight"] != float64(5) {
			t.Fatalf("unexpected order or values: %v", list)
		}
		if _, ok := list[0]["id"]; ok {
			t.Fatalf("projection leaked id: %v", list[0])
		}
	}

	// 6) Borrado por id y 404 posterior
	{
		st, _, body := doReq(t, ts.URL, "DELETE", "/pets/"+petID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete, got %d body=%s", st, string(body))
		}
		st, _, _ = doReq(t, ts.URL, "GET", "/pets/"+petID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}

	// 7) DELETE sin filtro vacía la colección
	{
		st, _, body := doReq(t, ts.URL, "DELETE", "/pets", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete all, got %d body=%s", st, string(body))
		}
		var out map[string]int64
		mustJSON(t, body, &out)
		if out["deleted"] != 2 {
			t.Fatalf("expected 2 deleted, got %v", out)
		}
	}
}

func TestHTTP_InvalidRequests(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing name", "POST", "/pets", map[string]any{"gender": 0, "weight": 2}, http.StatusBadRequest},
		{"negative weight", "POST", "/pets", map[string]any{"name": "Milo", "gender": 0, "weight": -1}, http.StatusBadRequest},
		{"unknown column", "POST", "/pets", map[string]any{"name": "Milo", "gender": 0, "weight": 1, "species": "dog"}, http.StatusBadRequest},
		{"id in payload", "POST", "/pets", map[string]any{"id": 3, "name": "Milo", "gender": 0, "weight": 1}, http.StatusBadRequest},
		{"bad filter", "GET", "/pets?weight=heavy", nil, http.StatusBadRequest},
		{"bad sort", "GET", "/pets?sort=weight;DROP", nil, http.StatusBadRequest},
		{"bad projection", "GET", "/pets?fields=species", nil, http.StatusBadRequest},
		{"bad gender filter", "DELETE", "/pets?gender=7", nil, http.StatusBadRequest},
		{"not a number", "GET", "/pets/abc", nil, http.StatusNotFound},
		{"blank gender", "POST", "/pets", map[string]any{"name": "X", "gender": "", "weight": 1}, http.StatusBadRequest},
		{"whitespace gender", "POST", "/pets", map[string]any{"name": "X", "gender": "  ", "weight": 1}, http.StatusBadRequest},
		{"blank gender on patch", "PATCH", "/pets?name=X", map[string]any{"gender": ""}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, _, body := doReq(t, ts.URL, tc.method, tc.path, tc.body)
			if st != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, st, string(body))
			}
		})
	}
}

func TestHTTP_UnknownFilterOnMutationTouchesNothing(t *testing.T) {
	ts := newTestServer(t)
	createPet(t, ts.URL, map[string]any{"name": "Milo", "gender": "male", "weight": 4})
	createPet(t, ts.URL, map[string]any{"name": "Luna", "gender": "female", "weight": 3})

	for _, tc := range []struct {
		method string
		path   string
		body   any
	}{
		{"DELETE", "/pets?nmae=Milo", nil},
		{"DELETE", "/pets?_id=1", nil},
		{"PATCH", "/pets?nmae=Milo", map[string]any{"weight": 9}},
	} {
		st, _, body := doReq(t, ts.URL, tc.method, tc.path, tc.body)
		if st != http.StatusBadRequest {
			t.Fatalf("%s %s: expected 400, got %d body=%s", tc.method, tc.path, st, string(body))
		}
	}

	_, _, body := doReq(t, ts.URL, "GET", "/pets?sort=_id", nil)
	var list []map[string]any
	mustJSON(t, body, &list)
	if len(list) != 2 {
		t.Fatalf("expected both pets kept, got %v", list)
	}
	for _, p := range list {
		if p["weight"] == float64(9) {
			t.Fatalf("pet updated through unknown filter: %v", p)
		}
	}

	// GET sigue ignorando parámetros que no son columnas.
	st, _, body := doReq(t, ts.URL, "GET", "/pets?nmae=Milo", nil)
	mustJSON(t, body, &list)
	if st != http.StatusOK || len(list) != 2 {
		t.Fatalf("expected 200 with 2 pets, got %d body=%s", st, string(body))
	}
}

func TestHTTP_ReadFailureReturnsRowsRead(t *testing.T) {
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "shelter.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	ts := httptest.NewServer(router.NewRouter(router.Options{Pets: pets.NewService(st, nil)}))
	t.Cleanup(ts.Close)

	createPet(t, ts.URL, map[string]any{"name": "Milo", "gender": "male", "weight": 4})
	if _, err := st.DB().Exec(`INSERT INTO pets (name, gender, weight) VALUES ('Bad', 0, 'heavy')`); err != nil {
		t.Fatalf("insert bad row: %v", err)
	}

	status, _, body := doReq(t, ts.URL, "GET", "/pets?sort=_id", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", status, string(body))
	}
	var list []map[string]any
	mustJSON(t, body, &list)
	if len(list) != 1 || list[0]["name"] != "Milo" {
		t.Fatalf("expected only the readable row, got %v", list)
	}
}

func TestHTTP_CatalogFlows(t *testing.T) {
	ts := newTestServer(t)

	// Ejemplo del menú
	{
		st, _, body := doReq(t, ts.URL, "POST", "/pets/sample", nil)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 sample, got %d body=%s", st, string(body))
		}
	}

	// Editor: name y weight obligatorios
	{
		st, _, body := doReq(t, ts.URL, "POST", "/pets/save", map[string]any{"name": "Luna", "gender": "female"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 without weight, got %d body=%s", st, string(body))
		}
		st, _, body = doReq(t, ts.URL, "POST", "/pets/save", map[string]any{"name": "Luna", "weight": "3", "gender": "female"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 save, got %d body=%s", st, string(body))
		}
	}

	// Borrar por atributos: una sola coincidencia se borra por id
	{
		st, _, body := doReq(t, ts.URL, "POST", "/pets/delete-matching", map[string]any{
			"name": "Toto", "breed": "Terrier", "weight": "7", "gender": "male",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete-matching, got %d body=%s", st, string(body))
		}
		var out struct {
			Kind    string `json:"kind"`
			Deleted int64  `json:"deleted"`
			ID      int64  `json:"id"`
		}
		mustJSON(t, body, &out)
		if out.Kind != "single" || out.Deleted != 1 || out.ID <= 0 {
			t.Fatalf("unexpected outcome: %+v", out)
		}
	}

	// Sin coincidencias no se toca nada
	{
		st, _, body := doReq(t, ts.URL, "POST", "/pets/delete-matching", map[string]any{"name": "Nadie"})
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", st, string(body))
		}
		var out map[string]any
		mustJSON(t, body, &out)
		if out["kind"] != "none" {
			t.Fatalf("expected kind none, got %v", out)
		}

		_, _, body = doReq(t, ts.URL, "GET", "/pets", nil)
		var list []map[string]any
		mustJSON(t, body, &list)
		if len(list) != 1 || list[0]["name"] != "Luna" {
			t.Fatalf("expected only Luna left, got %v", list)
		}
	}
}

func createPet(t *testing.T, baseURL string, body map[string]any) string {
	t.Helper()

	st, hdr, respBody := doReq(t, baseURL, "POST", "/pets", body)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating pet, got %d body=%s", st, string(respBody))
	}

	var out struct {
		ID  int64  `json:"id"`
		URI string `json:"uri"`
	}
	mustJSON(t, respBody, &out)
	if out.ID <= 0 || out.URI != pets.ItemURI(out.ID) {
		t.Fatalf("unexpected insert response: %s", string(respBody))
	}
	if loc := hdr.Get("Location"); loc != "/pets/"+strconv.FormatInt(out.ID, 10) {
		t.Fatalf("unexpected Location %q", loc)
	}
	return strconv.FormatInt(out.ID, 10)
}

func mustJSON(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, http.Header, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, res.Header, respBody
}
