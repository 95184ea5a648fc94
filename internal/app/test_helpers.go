package app

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an App with debug logging captured in a SafeBuffer.
// Set GYPCMAKE_TEST_LOGS=true to print the captured log after the test.
func SetupAppTest(t *testing.T, appConfig *Config) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp, err := NewApp(logBuffer, appConfig)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	t.Cleanup(func() {
		if os.Getenv("GYPCMAKE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
