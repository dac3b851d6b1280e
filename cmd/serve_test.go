package cmd

import (
	"strconv"
	"strings"
	"testing"
)

func TestNewServeCmd(t *testing.T) {
	cmd := newServeCmd()

	port := cmd.Flags().Lookup("port")
	if port == nil {
		t.Fatal("newServeCmd() missing --port flag")
	}
	if port.DefValue != strconv.Itoa(DefaultRecorderPort) {
		t.Errorf("--port default = %s, want %d", port.DefValue, DefaultRecorderPort)
	}

	for _, name := range []string{"base-dir", "queue", "metrics-addr"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("newServeCmd() missing --%s flag", name)
		}
	}
}

func TestServeCmd_InvalidPort(t *testing.T) {
	_, err := execute(newServeCmd(), "--port=-1")
	if err == nil {
		t.Fatal("Execute() with an invalid port should fail")
	}

	if !strings.Contains(err.Error(), "failed to listen on port -1") {
		t.Errorf("Execute() error = %v", err)
	}
}
