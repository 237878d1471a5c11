package version

var (
	// Version is the current version of the node
	Version = "0.1.0"

	// GitCommit is the current HEAD, set with ldflags
	GitCommit string
)

func init() {
	if GitCommit != "" {
		Version += "-" + GitCommit
	}
}
