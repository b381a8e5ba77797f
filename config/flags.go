package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagIn      = flag.String("in", "", "Input mesh (.obj, .stl, .meshpb)")
	flagOut     = flag.String("out", "", "Output mesh (.obj, .stl, .meshpb)")
	flagTarget  = flag.Float64("target", -1, "Target reduction in [0, 1]")
	flagError   = flag.Float64("error", -1, "Maximum error as a fraction of the bounding box diagonal")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagScalars = flag.Bool("scalars", false, "Write per point error scalars (.meshpb only)")
	flagLog     = flag.String("log", "", "Also log to this file")
)

// ParseFlags parses the command line. Call it before Load.
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the path given with -config, if any.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(cfg *Config) {
	if *flagIn != "" {
		cfg.IO.Input = *flagIn
	}
	if *flagOut != "" {
		cfg.IO.Output = *flagOut
	}
	if *flagTarget >= 0 {
		cfg.Decimate.TargetReduction = *flagTarget
	}
	if *flagError >= 0 {
		cfg.Decimate.MaximumError = *flagError
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScalars {
		cfg.Decimate.GenerateErrorScalars = true
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
}
