package models

// MarketDefinition describes one tradable market and, once hydrated, the
// connection endpoints of the exchange that lists it.
type MarketDefinition struct {
	MarketID   string `mapstructure:"market_id" json:"market_id" validate:"required"`
	Exchange   string `mapstructure:"exchange" json:"exchange" validate:"required"`
	Instrument string `mapstructure:"instrument" json:"instrument,omitempty"`
	Currency   string `mapstructure:"currency" json:"currency,omitempty"`

	// Hydrated from the matching exchange connection settings; empty until the
	// settings loader builds the market map.
	WSBaseURL   string `mapstructure:"ws_base_url" json:"ws_base_url,omitempty"`
	RESTBaseURL string `mapstructure:"rest_base_url" json:"rest_base_url,omitempty"`
}
