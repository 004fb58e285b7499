package version

var (
	Program   = "swiftclient"
	Version   = "dev"
	GitCommit = "HEAD"
)
