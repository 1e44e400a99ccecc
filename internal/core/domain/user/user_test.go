package user

import "testing"

func TestCreateUserRequest_Normalize(t *testing.T) {
	req := CreateUserRequest{Name: "  Jean Dupont ", Email: " Jean@Test.COM "}
	req.Normalize()
	if req.Name != "Jean Dupont" {
		t.Fatalf("unexpected name: %q", req.Name)
	}
	if req.Email != "jean@test.com" {
		t.Fatalf("unexpected email: %q", req.Email)
	}
}
