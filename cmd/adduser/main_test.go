package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"moneta/internal/auth"
	"moneta/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runArgs(t *testing.T, stdin *bytes.Buffer, args ...string) (string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	err := run(context.Background(), args, stdin, stdout, stderr)
	return stdout.String(), err
}

func TestRun_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_success.db")

	output, err := runArgs(t, new(bytes.Buffer), "-user", "testuser", "-password", "secret", "-db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, output, "User testuser created successfully")

	db, err := storage.NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	user, err := db.GetUserByUsername(context.Background(), "testuser")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword("secret", user.PasswordHash))
	assert.Contains(t, output, user.ID)
}

func TestRun_Profile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_profile.db")

	_, err := runArgs(t, new(bytes.Buffer),
		"-user", "ann", "-password", "secret", "-db", dbPath, "-name", "Ann", "-email", "ann@example.com")
	require.NoError(t, err)

	db, err := storage.NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	user, err := db.GetUserByUsername(context.Background(), "ann")
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.DisplayName)
	assert.Equal(t, "ann@example.com", user.Email)
}

func TestRun_DuplicateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_duplicate.db")
	args := []string{"-user", "testuser", "-password", "secret", "-db", dbPath}

	// First run
	_, err := runArgs(t, new(bytes.Buffer), args...)
	require.NoError(t, err, "first run should succeed")

	// Second run
	_, err = runArgs(t, new(bytes.Buffer), args...)
	require.Error(t, err, "expected error on duplicate user")
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingUserFlag(t *testing.T) {
	output, err := runArgs(t, new(bytes.Buffer), "-password", "secret")
	require.Error(t, err, "expected error for missing user flag")
	assert.Contains(t, err.Error(), "missing required flags: user")

	// Usage should be printed
	assert.Contains(t, output, "Usage:")
}

func TestRun_ShortPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_short.db")

	_, err := runArgs(t, new(bytes.Buffer), "-user", "shorty", "-password", "12345", "-db", dbPath)
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}

func TestRun_InteractivePassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_interactive.db")

	// Simulate user typing "interactive_secret" followed by newline
	output, err := runArgs(t, bytes.NewBufferString("interactive_secret\n"), "-user", "interactive_user", "-db", dbPath)
	require.NoError(t, err)

	// Should verify that it prompted for password
	assert.Contains(t, output, "Password: ")
	assert.Contains(t, output, "User interactive_user created successfully")
}

func TestRun_InteractivePassword_Empty(t *testing.T) {
	// Simulate user typing newline (empty password)
	_, err := runArgs(t, bytes.NewBufferString("\n"), "-user", "empty_pass_user")
	require.Error(t, err, "expected error for empty password")
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestRun_EnvVarOverride(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_env.db")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PATH", dbPath)

	// Do not pass -db flag, let it use env var
	_, err := runArgs(t, new(bytes.Buffer), "-user", "envuser", "-password", "secret")
	require.NoError(t, err)

	// Verify DB file was created at dbPath
	assert.FileExists(t, dbPath)
}

func TestRun_InvalidDBPath(t *testing.T) {
	// Use a directory path as DB file path, which should fail
	_, err := runArgs(t, new(bytes.Buffer), "-user", "failuser", "-password", "secret", "-db", t.TempDir())
	require.Error(t, err, "expected error for invalid db path")
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestRun_UnknownDriver(t *testing.T) {
	_, err := runArgs(t, new(bytes.Buffer), "-user", "u", "-password", "secret", "-driver", "mysql", "-db", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestRun_InvalidFlag(t *testing.T) {
	_, err := runArgs(t, new(bytes.Buffer), "-invalid")
	require.Error(t, err, "expected error for invalid flag")
	assert.Contains(t, err.Error(), "flag provided but not defined")
}
