package config

const (
	defaultDataDir       = "~/.local/share/checkrun/data"
	defaultLogDir        = "~/.local/share/checkrun/logs"
	defaultOutputDir     = "~/.local/share/checkrun/output"
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultPrintTimeout  = 120
	defaultSheetSlots    = 3
	defaultDefaultLedger = "General"
	defaultAutoNumbering = false
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			OutputDir: defaultOutputDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Printing: Printing{
			TimeoutSeconds: defaultPrintTimeout,
		},
		Batch: Batch{
			SheetSlots:    defaultSheetSlots,
			DefaultLedger: defaultDefaultLedger,
			AutoNumber:    defaultAutoNumbering,
		},
	}
}
