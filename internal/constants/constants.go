package constants

// Built-in role names
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleWorker   = "worker"
	RoleDriver   = "driver"
	RoleCustomer = "customer"
)

// BuiltinRoles lists every role seeded at startup.
var BuiltinRoles = []string{RoleAdmin, RoleManager, RoleWorker, RoleDriver, RoleCustomer}

// Inbound fulfillment options (how goods reach the business)
const (
	InboundCustomerDropoff = "customer_dropoff"
	InboundBusinessPickup  = "business_pickup"
)

// Outbound fulfillment options (how goods leave the business)
const (
	OutboundCustomerPickup   = "customer_pickup"
	OutboundBusinessDelivery = "business_delivery"
)

// Item status constants (the registry seeds these; admins may add more)
const (
	ItemStatusRequested = "requested"
	ItemStatusPickup    = "pickup"
	ItemStatusWorking   = "working"
	ItemStatusWrapping  = "wrapping"
	ItemStatusReady     = "ready"
	ItemStatusDelivery  = "delivery"
	ItemStatusCompleted = "completed"
)

// Settings keys
const (
	SettingKeyPricing        = "pricing"
	SettingKeyCompanyProfile = "company_profile"
	SettingKeyLoginCaptcha   = "login_captcha"
)

// Queue constants
const (
	QueueDefault             = "default"
	TaskRequestStatusChanged = "request:status_changed"
)

// Cache default configuration constants
const (
	RedisPrefixDefault = "naseej"
)
