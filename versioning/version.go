package versioning

// Set at build time with -ldflags "-X github.com/arcana-network/secretrecovery/versioning.Version=...".
var Version = "dev"
