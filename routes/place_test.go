package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlaceByIDUnknown(t *testing.T) {
	db, mock := newMockDB()
	app, _ := buildTestApp(db, t.TempDir())

	mock.ExpectQuery(`SELECT \* FROM "places"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodGet, "/places/99", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "null", strings.TrimSpace(resp.Body.String()))
}

func TestGetPlaceByID(t *testing.T) {
	db, mock := newMockDB()
	app, _ := buildTestApp(db, t.TempDir())

	mock.ExpectQuery(`SELECT \* FROM "places"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "owner_id", "title", "price", "photos", "perks"}).
			AddRow(5, 7, "Cabin", 100.0, []byte(`["a.jpg"]`), []byte(`["wifi"]`)))

	req := httptest.NewRequest(http.MethodGet, "/places/5", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `"Cabin"`)
	assert.Contains(t, body, `"a.jpg"`)
	assert.Contains(t, body, `"wifi"`)
	assert.Contains(t, body, `"price":100`)
}

func TestCreatePlace(t *testing.T) {
	db, mock := newMockDB()
	app, tokens := buildTestApp(db, t.TempDir())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "places"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodPost, "/places",
		strings.NewReader(`{"title":"Cabin","address":"1 Forest Rd","price":100,"maxGuests":4}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(tokens, 7, "a@x.com"))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `"ID":3`)
	assert.Contains(t, body, `"Cabin"`)
	assert.Contains(t, body, `"owner":7`)
	// JSON columns come back as arrays even when nothing was sent
	assert.Contains(t, body, `"photos":[]`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePlaceRequiresAuth(t *testing.T) {
	db, mock := newMockDB()
	app, _ := buildTestApp(db, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/places",
		strings.NewReader(`{"title":"Cabin","address":"1 Forest Rd"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePlaceByNonOwner(t *testing.T) {
	db, mock := newMockDB()
	app, tokens := buildTestApp(db, t.TempDir())

	mock.ExpectQuery(`SELECT \* FROM "places"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title"}).
			AddRow(5, 42, "Cabin"))

	req := httptest.NewRequest(http.MethodPut, "/places",
		strings.NewReader(`{"id":5,"title":"Hijacked","address":"elsewhere"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(tokens, 7, "intruder@x.com"))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	// no UPDATE was expected: a non-owner must never mutate the record
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePlaceByOwner(t *testing.T) {
	db, mock := newMockDB()
	app, tokens := buildTestApp(db, t.TempDir())

	mock.ExpectQuery(`SELECT \* FROM "places"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title"}).
			AddRow(5, 7, "Cabin"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "places"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodPut, "/places",
		strings.NewReader(`{"id":5,"title":"Bigger Cabin","address":"1 Forest Rd","price":120}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(tokens, 7, "a@x.com"))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, `"ok"`, strings.TrimSpace(resp.Body.String()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUnknownPlace(t *testing.T) {
	db, mock := newMockDB()
	app, tokens := buildTestApp(db, t.TempDir())

	mock.ExpectQuery(`SELECT \* FROM "places"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodPut, "/places",
		strings.NewReader(`{"id":404,"title":"Ghost","address":"nowhere"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(tokens, 7, "a@x.com"))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListPlaces(t *testing.T) {
	db, mock := newMockDB()
	app, _ := buildTestApp(db, t.TempDir())

	mock.ExpectQuery(`SELECT \* FROM "places"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title"}).
			AddRow(1, 7, "Cabin").
			AddRow(2, 8, "Beach House"))

	req := httptest.NewRequest(http.MethodGet, "/places", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `"Cabin"`)
	assert.Contains(t, body, `"Beach House"`)
}

func TestListOwnPlacesScopedToSession(t *testing.T) {
	db, mock := newMockDB()
	app, tokens := buildTestApp(db, t.TempDir())

	mock.ExpectQuery(`SELECT \* FROM "places" WHERE owner_id`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title"}).
			AddRow(1, 7, "Cabin"))

	req := httptest.NewRequest(http.MethodGet, "/user-places", nil)
	req.AddCookie(sessionCookie(tokens, 7, "a@x.com"))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"Cabin"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
