// Package registry is an HTTP client for the MCP instance data registry.
//
// The registry stores key/value pairs per MCP instance. Requests authenticate with the
// instance's bearer token; the endpoint is already scoped to the instance, so a single key
// lives at {endpoint}/{key} and the full mapping at {endpoint}.
//
// Failures are reported as *ConfigurationError, *AuthenticationError, *HTTPError or
// *TransportError, each of which matches a package sentinel with errors.Is. A missing key is
// not an error.
package registry
