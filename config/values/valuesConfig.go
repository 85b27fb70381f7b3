package values

type StorefrontValues struct {
	TaxRate            float64 `yaml:"tax-rate"`
	SyncIntervalMin    int     `yaml:"sync-interval-minutes"`
	RequestsPerMinute  int     `yaml:"requests-per-minute"`
	DisposableCategory string  `yaml:"disposable-category"`
	DisposablePrice    float64 `yaml:"disposable-price"`
	DisposableStock    int     `yaml:"disposable-stock"`
}

// Defaults mirror the remote service contract: 19% IVA, one request
// window per minute bucket, and the placeholder fields the backend
// requires on a throwaway product.
func Defaults() StorefrontValues {
	return StorefrontValues{
		TaxRate:            0.19,
		SyncIntervalMin:    30,
		RequestsPerMinute:  70,
		DisposableCategory: "temp",
		DisposablePrice:    1,
		DisposableStock:    1,
	}
}
