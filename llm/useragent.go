package llm

import (
	"fmt"
	"runtime"
)

// Version is the release version embedded in the outbound user-agent.
// Injected at build time:
//
//	go build -ldflags "-X github.com/genbridge/genbridge/llm.Version=v1.2.3"
var Version = "dev"

// UserAgent returns the header value attached to every outbound call on all
// backends except the interactive-login path, where header handling is
// delegated to the login transport.
func UserAgent() string {
	return fmt.Sprintf("GenBridge/%s (%s; %s)", Version, runtime.GOOS, runtime.GOARCH)
}
