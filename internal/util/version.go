package util

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/girste/hostprobe/internal/util.Version=1.2.0"
var Version = "dev"
