package version

// Version is the current CLI version. Override at build time with:
//
//	go build -ldflags="-X 'github.com/Kailash-Mistry/Interviewly/internal/version.Version=v1.0.0'"
var Version = "dev"
