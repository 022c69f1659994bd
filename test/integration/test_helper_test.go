package integration

import (
	"os"
	"testing"
	"time"
)

// BaseURL points the suite at a running API instance, e.g.
// API_BASE_URL=http://localhost:8080 go test ./test/integration/...
var BaseURL = os.Getenv("API_BASE_URL")

func TestMain(m *testing.M) {
	if BaseURL == "" {
		// No instance to talk to; unit suites cover the logic.
		os.Exit(0)
	}

	// 等待服务启动
	time.Sleep(2 * time.Second)

	os.Exit(m.Run())
}
