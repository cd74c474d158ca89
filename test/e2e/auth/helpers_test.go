package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, a cookie-aware API client, and assertions.
 */

const (
	testImageName = "soom-auth-test:latest"

	jwtSecret     = "e2e-0123456789abcdef0123456789abcdef"
	seedEmail     = "admin@soom.test"
	seedName      = "Administrator"
	seedPassword  = "Admin123!"
	refreshCookie = "refreshToken"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Image might not exist
}

// setupAuthContainer starts the auth service in a container and returns the
// base URL. Rate limits are relaxed so rapid test requests don't trip them.
func setupAuthContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"AUTH_JWT_SECRET":     jwtSecret,
			"AUTH_ISSUER":         "soom-auth-e2e",
			"AUTH_DATABASE_FILE":  "/tmp/auth.db",
			"AUTH_PEPPER_FILE":    "/tmp/pepper",
			"AUTH_SEED_EMAIL":     seedEmail,
			"AUTH_SEED_NAME":      seedName,
			"AUTH_SEED_PASSWORD":  seedPassword,
			"AUTH_COOKIE_SECURE":  "false",
			"ENV":                 "test",
			"LOG_LEVEL":           "info",
			"LOG_FORMAT":          "json",
			// Production limits are too strict for rapid test requests
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/api/health").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// apiClient is a thin cookie-aware client for the auth API. The cookie jar
// carries the refresh cookie between calls exactly like a browser would.
type apiClient struct {
	baseURL string
	http    *http.Client
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newAPIClient(t *testing.T, baseURL string) *apiClient {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &apiClient{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}
}

func (c *apiClient) post(t *testing.T, path string, body any, bearer string) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	return c.do(t, req)
}

func (c *apiClient) get(t *testing.T, path, bearer string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	return c.do(t, req)
}

func (c *apiClient) do(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()

	resp, err := c.http.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// refreshCookieValue returns the refresh cookie currently held in the jar,
// or "" when the jar has none.
func (c *apiClient) refreshCookieValue(t *testing.T, baseURL string) string {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, baseURL+"/auth/refresh", nil)
	require.NoError(t, err)

	for _, ck := range c.http.Jar.Cookies(req.URL) {
		if ck.Name == refreshCookie {
			return ck.Value
		}
	}
	return ""
}

func login(t *testing.T, c *apiClient, email, password string) string {
	t.Helper()

	code, env := c.post(t, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)
	require.Equal(t, "Login berhasil", env.Message)

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}
