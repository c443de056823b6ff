package config

import "flag"

// Flags are the command-line overrides shared by the commands. Only flags
// given explicitly on the command line override the config file.
type Flags struct {
	fs *flag.FlagSet

	Config      string
	Debug       bool
	Dir         string
	Calibration bool
	Mode        string
	Fov         float64
	Width       int
	Height      int
	Reference   bool
	Nearest     bool
	Offset      float64
	Workers     int
	LogFile     string
	NoWatch     bool
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Dir, "dir", "", "Cube map directory")
	fs.BoolVar(&f.Calibration, "calibration", false, "Use the generated calibration cube map")
	fs.StringVar(&f.Mode, "mode", "", "Render mode: perspective, equirect or unwrapped")
	fs.Float64Var(&f.Fov, "fov", 0, "Horizontal field of view in degrees")
	fs.IntVar(&f.Width, "width", 0, "Output width")
	fs.IntVar(&f.Height, "height", 0, "Output height")
	fs.BoolVar(&f.Reference, "reference", false, "Draw the face reference overlay")
	fs.BoolVar(&f.Nearest, "nearest", false, "Use nearest filtering instead of bilinear")
	fs.Float64Var(&f.Offset, "offset", 0, "Equirect horizontal offset (fraction of a turn)")
	fs.IntVar(&f.Workers, "workers", 0, "Render workers (0 = one per CPU)")
	fs.StringVar(&f.LogFile, "log-file", "", "Also log to this file")
	fs.BoolVar(&f.NoWatch, "no-watch", false, "Do not reload the cube map when files change")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if set["dir"] {
		cfg.Cubemap.Dir = f.Dir
		cfg.Cubemap.Calibration = false
	}
	if set["calibration"] {
		cfg.Cubemap.Calibration = f.Calibration
	}
	if set["mode"] {
		cfg.Viewer.Mode = f.Mode
	}
	if set["fov"] {
		cfg.Viewer.Fov = float32(f.Fov)
	}
	if f.Width > 0 {
		cfg.Viewer.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Viewer.Height = f.Height
	}
	if set["reference"] {
		cfg.Viewer.ShowReference = f.Reference
	}
	if set["nearest"] {
		cfg.Viewer.Bilinear = !f.Nearest
	}
	if set["offset"] {
		cfg.Viewer.EquirectOffset = float32(f.Offset)
	}
	if set["workers"] {
		cfg.Render.Workers = f.Workers
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.NoWatch {
		cfg.Cubemap.Watch = false
	}
}
