package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	RulesFile           string
	Port                string
	WorkerCount         int
	SchedulerInterval   int
	FeedRefreshInterval int
	FeedFetchTimeout    int
	APIAccessKey        string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
