package domain

// Theme options.
const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeCyber  = "cyber"
	ThemePastel = "pastel"
)

// Layout options.
const (
	LayoutModern   = "modern"
	LayoutSimple   = "simple"
	LayoutAnalytic = "analytic"
	LayoutCompact  = "compact"
)

// Analytics modes.
const (
	AnalyticsBasic    = "basic"
	AnalyticsAdvanced = "advanced"
	AnalyticsForecast = "forecast"
)

// AppSettings is the persisted application configuration singleton.
// EnableDummyData makes sales reads return generated data instead of the
// stored list.
type AppSettings struct {
	Theme           string `json:"theme"`
	Layout          string `json:"layout"`
	AnalyticsMode   string `json:"analyticsMode"`
	EnableDummyData bool   `json:"enableDummyData"`
}

// DefaultAppSettings is returned when no settings have been saved yet.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Theme:           ThemeDark,
		Layout:          LayoutModern,
		AnalyticsMode:   AnalyticsBasic,
		EnableDummyData: false,
	}
}
