package config

// AIConfig holds the analysis service settings
type AIConfig struct {
	APIKey    string `mapstructure:"apiKey" json:"-"` // Never serialize
	BaseURL   string `mapstructure:"baseURL" json:"baseUrl"`
	Model     string `mapstructure:"model" json:"model"`
	Language  string `mapstructure:"language" json:"language"` // response language for the model
	TimeoutMS int    `mapstructure:"timeoutMs" json:"timeoutMs"`
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full generateContent endpoint for the configured model
func (c *AIConfig) ModelEndpoint() string {
	return c.BaseURL + "/" + c.Model + ":generateContent"
}
