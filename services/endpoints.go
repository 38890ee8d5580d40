package services

import (
	"fmt"
	"sort"

	"github.com/lborres/bantay/core"
)

// Operation IDs shared by every HTTP adapter
const (
	OpLogin            = "loginWithPassword"
	OpExchangeToken    = "exchangeAuthorizationCode"
	OpAuthorizeForm    = "showAuthorizeForm"
	OpAuthorize        = "authorizeClient"
	OpRegisterForm     = "showRegisterForm"
	OpRegister         = "registerUser"
	OpActivate         = "activateUser"
	OpResendActivation = "resendActivationMail"
	OpInspect          = "inspectAccessToken"
)

// BaseEndpoints returns framework-agnostic endpoint descriptions for the
// authorization surface. Adapters bind a handler to each OperationID.
func BaseEndpoints() []core.Endpoint {
	return []core.Endpoint{
		{
			Path:   "/login",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: OpLogin,
				Description: "Exchange username and password for an access token",
			},
		},
		{
			Path:   "/token",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: OpExchangeToken,
				Description: "Exchange an authorization code and client secret for an access token",
			},
		},
		{
			Path:   "/authorize",
			Method: "GET",
			Metadata: core.EndpointMetadata{
				OperationID: OpAuthorizeForm,
				Description: "Render the login form for a third-party client",
			},
		},
		{
			Path:   "/authorize",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: OpAuthorize,
				Description: "Verify credentials and redirect to the client with an authorization code",
			},
		},
		{
			Path:   "/register",
			Method: "GET",
			Metadata: core.EndpointMetadata{
				OperationID: OpRegisterForm,
				Description: "Render the registration form",
			},
		},
		{
			Path:   "/register",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: OpRegister,
				Description: "Register an inactive user and mail an activation link",
			},
		},
		{
			Path:   "/activate",
			Method: "GET",
			Metadata: core.EndpointMetadata{
				OperationID: OpActivate,
				Description: "Activate a user with an activation code, or render the resend form",
			},
		},
		{
			Path:   "/activate",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: OpResendActivation,
				Description: "Mail a fresh activation link",
			},
		},
		{
			Path:   "/inspect",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: OpInspect,
				Description: "Validate an access token and return its payload",
			},
		},
	}
}

// EndpointRegistry holds endpoints keyed by "METHOD:PATH" and rejects
// duplicates.
type EndpointRegistry struct {
	endpoints map[string]core.Endpoint
}

// NewEndpointRegistry creates a registry with the base endpoints registered.
func NewEndpointRegistry() *EndpointRegistry {
	reg := &EndpointRegistry{endpoints: make(map[string]core.Endpoint)}
	for _, ep := range BaseEndpoints() {
		// base endpoints are unique by construction
		_ = reg.Register(ep)
	}
	return reg
}

// Register adds ep, failing if METHOD:PATH is already taken.
func (r *EndpointRegistry) Register(ep core.Endpoint) error {
	key := endpointKey(ep)
	if _, exists := r.endpoints[key]; exists {
		return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
	}
	r.endpoints[key] = ep
	return nil
}

// Endpoints returns all registered endpoints ordered by path then method.
func (r *EndpointRegistry) Endpoints() []core.Endpoint {
	result := make([]core.Endpoint, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		result = append(result, ep)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Path != result[j].Path {
			return result[i].Path < result[j].Path
		}
		return result[i].Method < result[j].Method
	})
	return result
}

func endpointKey(ep core.Endpoint) string {
	return fmt.Sprintf("%s:%s", ep.Method, ep.Path)
}
