package constants

// viper keys
const (
	ViperKeyListenAddr         = "listen_addr"
	ViperKeyDatabaseDSN        = "database_dsn"
	ViperKeyDataDir            = "data_dir"
	ViperKeyRemoteExportURL    = "remote_export_url"
	ViperKeyTimezone           = "timezone"
	ViperKeyExcludedLabID      = "excluded_lab_id"
	ViperKeyDefaultYear        = "default_year"
	ViperKeyActivityWindowDays = "activity_window_days"
	ViperKeyExcludeDisabled    = "exclude_disabled_default"
	ViperSecretKey             = "admin_secret"
)

const (
	CookieKeySecretToken = "secret_token"
)

// defaults applied at startup
const (
	DefaultListenAddr         = ":8080"
	DefaultTimezone           = "America/Sao_Paulo"
	DefaultYear               = 2025
	DefaultActivityWindowDays = 15
	// report-disabled gatherings stay out of the dashboard unless asked for
	DefaultExcludeDisabled = true
	// blind-sample laboratory excluded from the registry before any processing
	DefaultExcludedLabID = "5aa61aeeef23e80010b1224e"
)
