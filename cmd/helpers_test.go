package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/AzureXuanVerse/Nebula-Tools/common"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/profile/keyring"
)

var testBuild = BuildArgs{Version: "1.2.3", BuildType: "test", Date: "2024-05-01", Commit: "abc123"}

// noKeyring makes every profile key fall back to the file store.
type noKeyring struct{}

func (noKeyring) GetKey() ([]byte, error) { return nil, errors.New("no keyring") }
func (noKeyring) SetKey() ([]byte, error) { return nil, errors.New("no keyring") }
func (noKeyring) DeleteKey() error        { return nil }

// isolate points config, profiles and history at a temp dir and blanks the
// NEBULA_* environment. It returns the config dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{
		common.ServerURLEnv, common.TokenEnv, common.TimeoutEnv, common.ProxyEnv,
		common.RPCListenEnv, common.RPCSecretEnv, common.DebugEnv,
	} {
		t.Setenv(k, "")
	}
	t.Setenv(common.ConfigDirEnv, dir)

	origFs, origKeyring := appFs, systemKeyring
	appFs = afero.NewMemMapFs()
	systemKeyring = func() keyring.KeyStore { return noKeyring{} }
	t.Cleanup(func() { appFs, systemKeyring = origFs, origKeyring })
	return dir
}

// captureOutput captures stdout and stderr during function execution.
func captureOutput(f func()) (stdout, stderr string) {
	oldStdout, oldStderr := os.Stdout, os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout, os.Stderr = wOut, wErr

	var bufOut, bufErr bytes.Buffer
	done := make(chan struct{}, 2)
	go func() { io.Copy(&bufOut, rOut); done <- struct{}{} }()
	go func() { io.Copy(&bufErr, rErr); done <- struct{}{} }()

	f()

	wOut.Close()
	wErr.Close()
	<-done
	<-done
	os.Stdout, os.Stderr = oldStdout, oldStderr
	rOut.Close()
	rErr.Close()
	return bufOut.String(), bufErr.String()
}

// run executes the CLI with args and returns stdout and the error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var err error
	out, _ := captureOutput(func() {
		err = Execute(append([]string{"nebula"}, args...), testBuild)
	})
	return out, err
}

type adminRequest struct {
	path string
	body string
}

// startAdmin is a fake admin endpoint answering every request with body.
func startAdmin(t *testing.T, body string) (string, <-chan adminRequest) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	reqs := make(chan adminRequest, 8)
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				req, err := http.ReadRequest(bufio.NewReader(c))
				if err != nil {
					return
				}
				b, _ := io.ReadAll(req.Body)
				reqs <- adminRequest{path: req.URL.Path, body: string(b)}
				_, _ = io.WriteString(c, "HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n"+body)
			}(conn)
		}
	}()
	return "http://" + l.Addr().String(), reqs
}

func assertContains(t *testing.T, output, expected string) {
	t.Helper()
	if !strings.Contains(output, expected) {
		t.Errorf("expected output to contain %q, got:\n%s", expected, output)
	}
}
