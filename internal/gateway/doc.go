package gateway

// This package implements the API Gateway for the patient portal.
// The gateway provides:
// - JWT token validation and role-based access checks
// - Request routing to the portal microservices
// - Per-user rate limiting
// - CORS handling and security headers
// - Request/response logging and Prometheus metrics
