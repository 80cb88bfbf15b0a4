package config

const (
	defaultWorkDir        = "~/.local/share/seqflow/work"
	defaultLogDir         = "~/.local/share/seqflow/logs"
	defaultQiitaBaseURL   = "https://localhost:21174"
	defaultQiitaTimeout   = 30
	defaultTrimBinary     = "kneaddata"
	defaultBowtie2Binary  = "bowtie2"
	defaultSamtoolsBinary = "samtools"
	defaultBedtoolsBinary = "bedtools"
	defaultPigzBinary     = "pigz"
	defaultFilterThreads  = 4
	defaultLogFormat      = "text"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Qiita: Qiita{
			BaseURL:        defaultQiitaBaseURL,
			RequestTimeout: defaultQiitaTimeout,
		},
		Trim: Trim{
			Binary: defaultTrimBinary,
		},
		Filter: Filter{
			Bowtie2Binary:  defaultBowtie2Binary,
			SamtoolsBinary: defaultSamtoolsBinary,
			BedtoolsBinary: defaultBedtoolsBinary,
			PigzBinary:     defaultPigzBinary,
			Threads:        defaultFilterThreads,
		},
		Databases: Databases{
			Refs: map[string]string{
				"Human": "Human/phix",
			},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
