package telemetry

const defaultVersion = "1.0.0"

// Predefined service configurations
var (
	OrderServiceConfig = Config{
		ServiceName:    "order-service",
		ServiceVersion: defaultVersion,
	}

	OrchestratorServiceConfig = Config{
		ServiceName:    "orchestrator-service",
		ServiceVersion: defaultVersion,
	}

	ProductValidationServiceConfig = Config{
		ServiceName:    "product-validation-service",
		ServiceVersion: defaultVersion,
	}

	PaymentServiceConfig = Config{
		ServiceName:    "payment-service",
		ServiceVersion: defaultVersion,
	}

	InventoryServiceConfig = Config{
		ServiceName:    "inventory-service",
		ServiceVersion: defaultVersion,
	}
)

// NewConfigForService creates a new telemetry config for a custom service
func NewConfigForService(serviceName, version, otlpEndpoint string) Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: version,
		OTLPEndpoint:   otlpEndpoint,
	}
}

// WithOTLPEndpoint sets the OTLP endpoint for a config
func (c Config) WithOTLPEndpoint(endpoint string) Config {
	c.OTLPEndpoint = endpoint
	return c
}

// WithSampleRatio sets the share of new traces kept
func (c Config) WithSampleRatio(ratio float64) Config {
	c.SampleRatio = ratio
	return c
}
