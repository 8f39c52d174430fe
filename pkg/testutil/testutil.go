// Package testutil provides helpers for tests that load ARFF files from disk
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/arff/pkg/compression"
)

// TestLogger creates a logger that writes to the test output
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestContext returns a context with a 30-second timeout, cancelled when
// the test completes
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// WriteFile writes content to dir/name and returns the path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// WriteCompressed writes content compressed with alg to dir/name and
// returns the path
func WriteCompressed(t *testing.T, dir, name string, alg compression.Algorithm, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := compression.NewWriter(f, alg, compression.Default)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

// FileSuite is a testify suite with a fresh temporary directory per test
type FileSuite struct {
	suite.Suite
	ctx     context.Context
	cancel  context.CancelFunc
	tempDir string
}

// SetupTest runs before each test in the suite
func (s *FileSuite) SetupTest() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 30*time.Second)
	s.tempDir = s.T().TempDir()
}

// TearDownTest runs after each test in the suite
func (s *FileSuite) TearDownTest() {
	s.cancel()
}

// Context returns the test context
func (s *FileSuite) Context() context.Context {
	return s.ctx
}

// TempDir returns the temporary directory of the current test
func (s *FileSuite) TempDir() string {
	return s.tempDir
}

// CreateFile writes an uncompressed file into the temporary directory
func (s *FileSuite) CreateFile(name, content string) string {
	return WriteFile(s.T(), s.tempDir, name, content)
}

// CreateCompressed writes a compressed file into the temporary directory
func (s *FileSuite) CreateCompressed(name string, alg compression.Algorithm, content string) string {
	return WriteCompressed(s.T(), s.tempDir, name, alg, content)
}

// IntegrationTest skips the calling test in -short mode
func IntegrationTest(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}
