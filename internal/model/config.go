package model

// Config holds the full runtime configuration for a batch run.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Assets AssetsConfig `yaml:"assets"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// InputConfig describes the tabular claim dataset.
type InputConfig struct {
	Path string `yaml:"path"` // .csv or .xlsx file
}

// AssetsConfig describes the images root directory.
type AssetsConfig struct {
	Root string `yaml:"root"`
}

// OutputConfig describes where and how reports are written.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Verbose bool   `yaml:"verbose"`
}

// LogConfig describes the diagnostic log sink.
type LogConfig struct {
	File string `yaml:"file"`
}

// DefaultConfig returns the baseline configuration. Paths are empty: the
// three required inputs must be supplied by the operator.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir: "./reports",
		},
		Log: LogConfig{
			File: "reportgen.log",
		},
	}
}
