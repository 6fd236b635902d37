package core

import "testing"

func TestBuildFilter_KeepsOnlyPresentFields(t *testing.T) {
	empty := ""
	schemaID := "schema-1"
	filter := BuildFilter(
		Optional("connection_id", nil),
		Optional("schema_id", &schemaID),
		Optional("state", &empty),
		Fixed("role", RoleIssuer),
		Optional("", &schemaID),
	)

	if len(filter) != 3 {
		t.Fatalf("expected 3 constraints, got %#v", filter)
	}
	if _, ok := filter["connection_id"]; ok {
		t.Fatalf("absent field must not be constrained")
	}
	if value, ok := filter["state"]; !ok || value != "" {
		t.Fatalf("empty string is a present value, got %#v", filter)
	}
	if filter["role"] != RoleIssuer || filter["schema_id"] != "schema-1" {
		t.Fatalf("unexpected filter: %#v", filter)
	}
}

func TestFilterWith_ForcesValueWithoutMutating(t *testing.T) {
	original := Filter{"role": RoleHolder, "state": "done"}
	forced := original.With("role", RoleVerifier)

	if forced["role"] != RoleVerifier || forced["state"] != "done" {
		t.Fatalf("unexpected forced filter: %#v", forced)
	}
	if original["role"] != RoleHolder {
		t.Fatalf("expected original filter untouched, got %#v", original)
	}
}

func TestFilterMatchesAndKeys(t *testing.T) {
	filter := Filter{"state": ConnectionStateInvitation, "accept": AcceptAuto}
	keys := filter.Keys()
	if len(keys) != 2 || keys[0] != "accept" || keys[1] != "state" {
		t.Fatalf("expected sorted keys, got %#v", keys)
	}

	record := ConnectionRecord{ConnectionID: "conn_1", State: ConnectionStateInvitation, Accept: AcceptAuto}
	if !filter.Matches(record.FilterFields()) {
		t.Fatalf("expected record to match")
	}
	record.Accept = AcceptManual
	if filter.Matches(record.FilterFields()) {
		t.Fatalf("expected mismatch after accept change")
	}
	if !(Filter{}).Matches(nil) {
		t.Fatalf("empty filter matches everything")
	}
	if (Filter{"missing": ""}).Matches(map[string]string{}) {
		t.Fatalf("absent field must not match an empty constraint")
	}
}
