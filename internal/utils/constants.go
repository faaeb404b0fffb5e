package utils

import "time"

// Application Constants
const (
	AppName    = "Transandino"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage = "es"
	DefaultTimeZone = "America/Santiago"
	DefaultCurrency = "CLP"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8

	// Trip Constants
	MaxTripDurationDays = 15
	FolioPrefix         = "VJ"

	// Rate Limiting
	DefaultRateLimit = 100
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrConflict           = "conflict"
	ErrValidationFailed   = "validation failed"
	ErrTripNotFound       = "trip not found"
	ErrDriverNotFound     = "driver not found"
	ErrVehicleNotFound    = "vehicle not found"
	ErrSemitrailerNotFound = "semitrailer not found"
	ErrClientNotFound     = "client not found"
)

// Cache Keys
const (
	CacheKeyTrip        = "trip:"
	CacheKeyDriver      = "driver:"
	CacheKeyVehicle     = "vehicle:"
	CacheKeySemitrailer = "semitrailer:"

	CacheTTLTrip      = 5 * time.Minute
	CacheTTLDirectory = 10 * time.Minute
)

// Collection names
const (
	CollectionDrivers      = "drivers"
	CollectionVehicles     = "vehicles"
	CollectionSemitrailers = "semitrailers"
	CollectionTrips        = "trips"
	CollectionLocations    = "locations"
	CollectionClients      = "clients"
	CollectionAuditLogs    = "audit_logs"
)
