package config

var (
	DefaultFiles              = []string{"test.json", "testcase2.json"}
	DefaultMaxSubsets         = 1 << 20
	DefaultLogLevel           = "info"
	DefaultConcurrency        = 4
	DefaultHTTPTimeoutSeconds = 30
)
