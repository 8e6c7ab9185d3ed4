package api

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/nerrad567/recipe-manager/internal/auth"
)

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", auth.RoleAdmin)
	cook := env.createUser(t, "cook", auth.RoleUser)

	rec := env.do(t, http.MethodGet, "/api/users", env.tokenFor(t, admin), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	want := []userResponse{{ID: admin.ID, Username: "admin"}, {ID: cook.ID, Username: "cook"}}
	sortByName := cmpopts.SortSlices(func(a, b userResponse) bool { return a.Username < b.Username })
	if diff := cmp.Diff(want, decodeBody[[]userResponse](t, rec), sortByName); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}

	rec = env.do(t, http.MethodGet, "/api/users", env.tokenFor(t, cook), nil)
	assertError(t, rec, http.StatusForbidden, "Access denied.")
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", auth.RoleAdmin)
	alice := env.createUser(t, "alice", auth.RoleUser)
	bob := env.createUser(t, "bob", auth.RoleUser)

	rec := env.do(t, http.MethodGet, "/api/users/"+alice.ID, env.tokenFor(t, alice), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("self status = %d, want 200", rec.Code)
	}
	if diff := cmp.Diff(userResponse{ID: alice.ID, Username: "alice"}, decodeBody[userResponse](t, rec)); diff != "" {
		t.Errorf("user mismatch (-want +got):\n%s", diff)
	}

	rec = env.do(t, http.MethodGet, "/api/users/"+bob.ID, env.tokenFor(t, alice), nil)
	assertError(t, rec, http.StatusForbidden, "Access denied.")

	rec = env.do(t, http.MethodGet, "/api/users/"+bob.ID, env.tokenFor(t, admin), nil)
	if rec.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/users/missing", env.tokenFor(t, admin), nil)
	assertError(t, rec, http.StatusNotFound, "User with id missing was not found")

	rec = env.do(t, http.MethodGet, "/api/users/"+alice.ID, "", nil)
	assertError(t, rec, http.StatusForbidden, "Access denied.")
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", auth.RoleUser)
	bob := env.createUser(t, "bob", auth.RoleUser)
	tok := env.tokenFor(t, alice)

	rec := env.do(t, http.MethodPut, "/api/users/"+alice.ID, tok, updateUserRequest{Username: "alicia"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if got := decodeBody[userResponse](t, rec); got.Username != "alicia" {
		t.Errorf("username = %q, want alicia", got.Username)
	}

	rec = env.do(t, http.MethodPut, "/api/users/"+alice.ID, tok, updateUserRequest{Username: "bob"})
	assertError(t, rec, http.StatusConflict, "User with username bob already exists.")

	rec = env.do(t, http.MethodPut, "/api/users/"+bob.ID, tok, updateUserRequest{Username: "robert"})
	assertError(t, rec, http.StatusForbidden, "Access denied.")

	rec = env.do(t, http.MethodPut, "/api/users/"+alice.ID, tok, updateUserRequest{Username: ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty username status = %d, want 400", rec.Code)
	}
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", auth.RoleAdmin)
	cook := env.createUser(t, "cook", auth.RoleUser)

	rec := env.do(t, http.MethodDelete, "/api/users/"+admin.ID, env.tokenFor(t, cook), nil)
	assertError(t, rec, http.StatusForbidden, "Access denied.")

	rec = env.do(t, http.MethodDelete, "/api/users/"+cook.ID, env.tokenFor(t, admin), nil)
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("delete = %d %q, want 204 with empty body", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodDelete, "/api/users/"+cook.ID, env.tokenFor(t, admin), nil)
	assertError(t, rec, http.StatusNotFound, "User with id "+cook.ID+" was not found")
}
