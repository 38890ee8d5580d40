package services

import (
	"testing"

	"github.com/lborres/bantay/core"
)

// Requirement: BaseEndpoints lists every route of the authorization surface
func TestBaseEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		wantPath   string
		wantMethod string
		wantOpID   string
	}{
		{name: "password login", wantPath: "/login", wantMethod: "POST", wantOpID: OpLogin},
		{name: "code exchange", wantPath: "/token", wantMethod: "POST", wantOpID: OpExchangeToken},
		{name: "authorize form", wantPath: "/authorize", wantMethod: "GET", wantOpID: OpAuthorizeForm},
		{name: "authorize submit", wantPath: "/authorize", wantMethod: "POST", wantOpID: OpAuthorize},
		{name: "register form", wantPath: "/register", wantMethod: "GET", wantOpID: OpRegisterForm},
		{name: "register submit", wantPath: "/register", wantMethod: "POST", wantOpID: OpRegister},
		{name: "activate", wantPath: "/activate", wantMethod: "GET", wantOpID: OpActivate},
		{name: "resend activation", wantPath: "/activate", wantMethod: "POST", wantOpID: OpResendActivation},
		{name: "inspect", wantPath: "/inspect", wantMethod: "POST", wantOpID: OpInspect},
	}

	endpoints := BaseEndpoints()
	if len(endpoints) != len(tests) {
		t.Fatalf("BaseEndpoints() returned %d endpoints, want %d", len(endpoints), len(tests))
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			var found *core.Endpoint
			for i := range endpoints {
				if endpoints[i].Path == test.wantPath && endpoints[i].Method == test.wantMethod {
					found = &endpoints[i]
					break
				}
			}
			if found == nil {
				t.Fatalf("endpoint %s %s not found", test.wantMethod, test.wantPath)
			}
			if found.Metadata.OperationID != test.wantOpID {
				t.Errorf("OperationID = %q, want %q", found.Metadata.OperationID, test.wantOpID)
			}
			if found.Metadata.Description == "" {
				t.Error("Description should not be empty")
			}
		})
	}
}

// Requirement: OperationIDs are unique so adapters can bind handlers by ID
func TestBaseEndpoints_OperationIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, ep := range BaseEndpoints() {
		if seen[ep.Metadata.OperationID] {
			t.Errorf("duplicate OperationID %q", ep.Metadata.OperationID)
		}
		seen[ep.Metadata.OperationID] = true
	}
}

// Requirement: the registry starts with every base endpoint in a stable order
func TestEndpointRegistry_RegistersBaseEndpoints(t *testing.T) {
	reg := NewEndpointRegistry()

	got := reg.Endpoints()
	if len(got) != len(BaseEndpoints()) {
		t.Fatalf("registry has %d endpoints, want %d", len(got), len(BaseEndpoints()))
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.Path > cur.Path || (prev.Path == cur.Path && prev.Method > cur.Method) {
			t.Errorf("endpoints not sorted: %s %s before %s %s", prev.Method, prev.Path, cur.Method, cur.Path)
		}
	}
}

// Requirement: registering an existing METHOD:PATH fails, a new one succeeds
func TestEndpointRegistry_DetectsConflicts(t *testing.T) {
	tests := []struct {
		name    string
		ep      core.Endpoint
		wantErr bool
	}{
		{name: "conflicts with base login", ep: core.Endpoint{Path: "/login", Method: "POST"}, wantErr: true},
		{name: "same path other method", ep: core.Endpoint{Path: "/login", Method: "GET"}, wantErr: false},
		{name: "new path", ep: core.Endpoint{Path: "/userinfo", Method: "GET"}, wantErr: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			reg := NewEndpointRegistry()

			// Act
			err := reg.Register(test.ep)

			// Assert
			if (err != nil) != test.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, test.wantErr)
			}
		})
	}
}
