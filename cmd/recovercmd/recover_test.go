package recovercmd

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := GetCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestRecoverCommand(t *testing.T) {
	out := execute(t,
		"--config", filepath.Join(t.TempDir(), "absent.json"),
		"--log-level", "panic",
		filepath.Join("testdata", "test.json"),
		filepath.Join("testdata", "testcase2.json"),
	)
	assert.Regexp(t, `test\.json\s+\|\s+3\s+\|\s+None`, out)
	assert.Regexp(t, `testcase2\.json\s+\|\s+123456789012345678901\s+\|\s+\[1, 2, 3\]\s+\|\s+\[5\]`, out)
}

func TestRecoverCommandFromConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	caseFile := filepath.Join("testdata", "test.json")
	conf := `{"files":["` + filepath.ToSlash(caseFile) + `"],"logLevel":"panic","output":"table"}`
	require.NoError(t, os.WriteFile(configPath, []byte(conf), 0o600))

	out := execute(t, "--config", configPath, "--no-incorrect")
	assert.Regexp(t, `test\.json\s+\|\s+3\s+\|\s+None`, out)
}

func TestRecoverCommandRejectsBadConfig(t *testing.T) {
	cmd := GetCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "absent.json"),
		"--output", "xml",
		filepath.Join("testdata", "test.json"),
	})
	assert.Error(t, cmd.Execute())
}

func freeAddress(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func TestRecoverCommandServesMetricsUntilCancelled(t *testing.T) {
	addr := freeAddress(t)
	var out bytes.Buffer
	cmd := GetCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "absent.json"),
		"--log-level", "panic",
		"--metrics-addr", addr,
		filepath.Join("testdata", "test.json"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}
		body = string(data)
		return strings.Contains(body, "recovery_cases_processed")
	}, 10*time.Second, 50*time.Millisecond)
	assert.Contains(t, body, "recovery_subsets_evaluated")

	select {
	case err := <-done:
		t.Fatalf("command returned before cancel: %v", err)
	default:
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("command did not stop after cancel")
	}
	assert.Regexp(t, `test\.json\s+\|\s+3\s+\|\s+None`, out.String())
}

func TestRecoverCommandRejectsBusyMetricsAddress(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	cmd := GetCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "absent.json"),
		"--log-level", "panic",
		"--metrics-addr", lis.Addr().String(),
		filepath.Join("testdata", "test.json"),
	})
	assert.Error(t, cmd.Execute())
}
