package config

const (
	defaultLibraryDir         = "~/Music"
	defaultLogDir             = "~/.local/share/setlist/logs"
	defaultLogRetentionDays   = 30
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultMatchingAlgorithm  = "sequence"
	defaultDirectoryThreshold = 0.5
	defaultFileThreshold      = 0.4
	defaultAutoAcceptScore    = 0.9
	defaultPlaylistFormat     = "m3u"
)

var defaultExtensions = []string{".m4a", ".mp3"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Library: Library{
			Extensions: append([]string(nil), defaultExtensions...),
		},
		Matching: Matching{
			Algorithm:          defaultMatchingAlgorithm,
			DirectoryThreshold: defaultDirectoryThreshold,
			FileThreshold:      defaultFileThreshold,
			AutoAcceptScore:    defaultAutoAcceptScore,
		},
		Playlist: Playlist{
			Format: defaultPlaylistFormat,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
