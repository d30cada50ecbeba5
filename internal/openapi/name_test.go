package openapi

import "testing"

func TestGenerateToolName(t *testing.T) {
	cases := []struct {
		method, path, namespace, want string
	}{
		{"GET", "/pet/{petId}", "", "get_pet_petId"},
		{"POST", "/user", "", "post_user"},
		{"GET", "/store/inventory", "", "get_store_inventory"},
		{"DELETE", "/pet/{petId}", "petstore", "petstore_delete_pet_petId"},
		{"GET", "/api/v1/users/{user-id}/posts", "", "get_api_v1_users_user_id_posts"},
		{"GET", "/", "", "get"},
		{"GET", "/a.b/c-d", "", "get_a_b_c_d"},
		{"PUT", "/trailing/", "", "put_trailing"},
	}
	for _, c := range cases {
		got := GenerateToolName(c.method, c.path, c.namespace)
		if got != c.want {
			t.Errorf("GenerateToolName(%s, %s, %q) = %q, want %q", c.method, c.path, c.namespace, got, c.want)
		}
	}
}

func TestDeriveToolName_OperationIDVerbatim(t *testing.T) {
	ref := OperationRef{
		Path:   "/pet/{petId}",
		Method: "get",
		Op:     Operation{OperationID: "getPetById"},
	}
	if got := DeriveToolName(ref, ""); got != "getPetById" {
		t.Errorf("expected getPetById, got %q", got)
	}
}

func TestDeriveToolName_NamespacePrefix(t *testing.T) {
	ref := OperationRef{
		Path:   "/pet/{petId}",
		Method: "get",
		Op:     Operation{OperationID: "getPetById"},
	}
	if got := DeriveToolName(ref, "ns"); got != "ns_getPetById" {
		t.Errorf("expected ns_getPetById, got %q", got)
	}
}

func TestDeriveToolName_FallbackWithNamespace(t *testing.T) {
	ref := OperationRef{Path: "/store/inventory", Method: "get"}
	if got := DeriveToolName(ref, "shop"); got != "shop_get_store_inventory" {
		t.Errorf("expected shop_get_store_inventory, got %q", got)
	}
}

func TestDeriveToolName_Deterministic(t *testing.T) {
	ref := OperationRef{Path: "/users/{userId}/orders", Method: "post"}
	first := DeriveToolName(ref, "acct")
	for i := 0; i < 10; i++ {
		if got := DeriveToolName(ref, "acct"); got != first {
			t.Fatalf("name derivation not deterministic: %q vs %q", got, first)
		}
	}
}
