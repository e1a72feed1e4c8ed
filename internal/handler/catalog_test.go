package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagiodex/hagiodex/internal/handler/dto"
	"github.com/hagiodex/hagiodex/internal/metrics"
	"github.com/hagiodex/hagiodex/internal/service"
	"github.com/hagiodex/hagiodex/internal/testutil/memstore"
)

const francisJSON = `{
	"name": "Francis of Assisi",
	"patronage": "Animals",
	"feast_day": "1226-10-04",
	"veneration": "Catholic Church",
	"birthplace": "Assisi",
	"birth_date": "1181-07-05",
	"death_date": "1226-10-03",
	"history": "Founder of the Franciscans"
}`

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func newCreatureHandler() *CreatureHandler {
	return NewCreatureHandler(service.NewCreatureService(memstore.New(), metrics.NewNoop()), discardLogger())
}

func newSaintHandler() *SaintHandler {
	return NewSaintHandler(service.NewSaintService(memstore.New(), metrics.NewNoop()), discardLogger())
}

func createCreature(t *testing.T, h *CreatureHandler, body string) dto.CreatureResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/creatures", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.CreatureResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCreatureHandler_CreateAndGet(t *testing.T) {
	h := newCreatureHandler()
	created := createCreature(t, h, `{"name":"Bulbasaur","types":["grass","poison"],"stats":{"hp":45,"attack":49,"defense":49}}`)

	assert.Equal(t, []string{"grass", "poison"}, created.Types)
	assert.Equal(t, dto.StatsBody{HP: 45, Attack: 49, Defense: 49}, created.Stats)

	for _, key := range []string{strconv.FormatInt(created.ID, 10), "bulbasaur", "  BULBASAUR  "} {
		rec := httptest.NewRecorder()
		h.Get(rec, withParam(httptest.NewRequest(http.MethodGet, "/creatures/x", nil), "idOrName", key))

		require.Equal(t, http.StatusOK, rec.Code, "key %q", key)
		var got dto.CreatureResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, created, got)
	}
}

func TestCreatureHandler_GetMissing(t *testing.T) {
	h := newCreatureHandler()

	for _, key := range []string{"999", "missingno"} {
		rec := httptest.NewRecorder()
		h.Get(rec, withParam(httptest.NewRequest(http.MethodGet, "/creatures/x", nil), "idOrName", key))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "CREATURE_NOT_FOUND", decodeError(t, rec).Code)
	}
}

func TestCreatureHandler_CreateDuplicate(t *testing.T) {
	h := newCreatureHandler()
	createCreature(t, h, `{"name":"Mew","types":["psychic"],"stats":{"hp":100,"attack":100,"defense":100}}`)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/creatures", strings.NewReader(`{"name":"mew","types":[]}`)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreatureHandler_List(t *testing.T) {
	h := newCreatureHandler()

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/creatures", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	createCreature(t, h, `{"name":"Zubat","types":["poison","flying"]}`)
	createCreature(t, h, `{"name":"Abra","types":["psychic"]}`)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/creatures", nil))

	var list []dto.CreatureResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "Zubat", list[0].Name)
	assert.Equal(t, "Abra", list[1].Name)
}

func TestSaintHandler_CRUD(t *testing.T) {
	h := newSaintHandler()

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/saints", strings.NewReader(francisJSON)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.SaintResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "1226-10-04", created.FeastDay)
	assert.Equal(t, "1181-07-05", created.BirthDate)
	id := strconv.FormatInt(created.ID, 10)

	rec = httptest.NewRecorder()
	h.Get(rec, withParam(httptest.NewRequest(http.MethodGet, "/saints/x", nil), "id", "francis of assisi"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Update(rec, withParam(httptest.NewRequest(http.MethodPatch, "/saints/"+id, strings.NewReader(`{"patronage":"Ecology"}`)), "id", id))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated dto.SaintResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, "Ecology", updated.Patronage)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.History, updated.History)

	rec = httptest.NewRecorder()
	h.Delete(rec, withParam(httptest.NewRequest(http.MethodDelete, "/saints/"+id, nil), "id", id))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.Get(rec, withParam(httptest.NewRequest(http.MethodGet, "/saints/"+id, nil), "id", id))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaintHandler_CreateValidation(t *testing.T) {
	h := newSaintHandler()

	rec := httptest.NewRecorder()
	body := `{"name":"Augustine","feast_day":"28 August"}`
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/saints", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec)
	assert.Contains(t, resp.Details, "feast_day")
	assert.Contains(t, resp.Details, "patronage")
	assert.NotContains(t, resp.Details, "name")
	assert.NotContains(t, resp.Details, "attributes")
}

func TestSaintHandler_UpdateMissing(t *testing.T) {
	h := newSaintHandler()

	rec := httptest.NewRecorder()
	h.Update(rec, withParam(httptest.NewRequest(http.MethodPatch, "/saints/42", strings.NewReader(`{"history":"x"}`)), "id", "42"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SAINT_NOT_FOUND", decodeError(t, rec).Code)
}
