package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validSettings는 검증을 통과하는 설정을 만듭니다
func validSettings(t *testing.T) Settings {
	t.Helper()
	dir := t.TempDir()
	return Settings{
		Username:        "user@example.com",
		Password:        "secret",
		DID:             "5551234567",
		LockfilePath:    filepath.Join(dir, "latest.lock"),
		InboundHandler:  executable(t, dir, "inbound"),
		OutboundHandler: executable(t, dir, "outbound"),
	}
}

func executable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755))
	return path
}

func TestValidate_Valid(t *testing.T) {
	s := validSettings(t)

	got, err := Validate(s)

	require.NoError(t, err)
	require.NotNil(t, got.LatestWatermark)
	assert.Equal(t, uint64(0), *got.LatestWatermark)
	assert.Nil(t, s.LatestWatermark, "입력 설정은 변경되지 않아야 합니다")
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		modify func(t *testing.T, s *Settings)
		field  string
		kind   error
	}{
		{
			name:   "missing username",
			modify: func(t *testing.T, s *Settings) { s.Username = "" },
			field:  "username", kind: ErrConfiguration,
		},
		{
			name:   "missing password",
			modify: func(t *testing.T, s *Settings) { s.Password = "" },
			field:  "password", kind: ErrConfiguration,
		},
		{
			name:   "username is not an email",
			modify: func(t *testing.T, s *Settings) { s.Username = "not-an-email" },
			field:  "username", kind: ErrConfiguration,
		},
		{
			name:   "username with display name",
			modify: func(t *testing.T, s *Settings) { s.Username = "Bob <bob@example.com>" },
			field:  "username", kind: ErrConfiguration,
		},
		{
			name:   "did too short",
			modify: func(t *testing.T, s *Settings) { s.DID = "555123456" },
			field:  "did", kind: ErrConfiguration,
		},
		{
			name:   "did with letters",
			modify: func(t *testing.T, s *Settings) { s.DID = "555123456a" },
			field:  "did", kind: ErrConfiguration,
		},
		{
			name:   "inbound handler missing",
			modify: func(t *testing.T, s *Settings) { s.InboundHandler = "/nonexistent/handler" },
			field:  "inbound_handler", kind: ErrConfiguration,
		},
		{
			name: "outbound handler not executable",
			modify: func(t *testing.T, s *Settings) {
				path := filepath.Join(t.TempDir(), "plain")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				s.OutboundHandler = path
			},
			field: "outbound_handler", kind: ErrConfiguration,
		},
		{
			name:   "bare handler not on PATH",
			modify: func(t *testing.T, s *Settings) { s.InboundHandler = "no-such-sms-handler-xyz" },
			field:  "inbound_handler", kind: ErrConfiguration,
		},
		{
			name:   "lockfile directory missing",
			modify: func(t *testing.T, s *Settings) { s.LockfilePath = filepath.Join(t.TempDir(), "gone", "latest.lock") },
			field:  "lockfile_path", kind: ErrFilesystem,
		},
		{
			name:   "empty lockfile path",
			modify: func(t *testing.T, s *Settings) { s.LockfilePath = "" },
			field:  "lockfile_path", kind: ErrConfiguration,
		},
		{
			name: "malformed lock file",
			modify: func(t *testing.T, s *Settings) {
				require.NoError(t, os.WriteFile(s.LockfilePath, []byte("abc"), 0644))
			},
			field: "latest_watermark", kind: ErrConfiguration,
		},
		{
			name:   "bad direction",
			modify: func(t *testing.T, s *Settings) { s.DirectionFilter = "both" },
			field:  "direction_filter", kind: ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings(t)
			tt.modify(t, &s)

			_, err := Validate(s)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestValidate_FailFastOrder(t *testing.T) {
	s := validSettings(t)
	s.Username = "bad"
	s.DID = "123"
	s.DirectionFilter = "sideways"

	_, err := Validate(s)

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "username", cfgErr.Field)
}

func TestValidate_PrintModeSkipsHandlers(t *testing.T) {
	s := validSettings(t)
	s.PrintMode = true
	s.InboundHandler = "/nonexistent/in"
	s.OutboundHandler = "/nonexistent/out"

	_, err := Validate(s)

	assert.NoError(t, err)
}

func TestValidate_BareHandlerOnPath(t *testing.T) {
	bin := t.TempDir()
	executable(t, bin, "sms-inbound-test")
	t.Setenv("PATH", bin)
	s := validSettings(t)
	s.InboundHandler = "sms-inbound-test"

	_, err := Validate(s)

	assert.NoError(t, err)
}

func TestValidate_WatermarkFromLockFile(t *testing.T) {
	s := validSettings(t)
	require.NoError(t, os.WriteFile(s.LockfilePath, []byte("42\n"), 0644))

	got, err := Validate(s)

	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.Watermark())
}

func TestValidate_WatermarkOverrideWins(t *testing.T) {
	s := validSettings(t)
	require.NoError(t, os.WriteFile(s.LockfilePath, []byte("42"), 0644))
	override := uint64(7)
	s.LatestWatermark = &override

	got, err := Validate(s)

	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.Watermark())
}

func TestValidate_DoesNotCreateLockFile(t *testing.T) {
	s := validSettings(t)

	_, err := Validate(s)
	require.NoError(t, err)

	_, statErr := os.Stat(s.LockfilePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestValidate_ErrorMasksPassword(t *testing.T) {
	s := validSettings(t)
	s.Password = ""

	_, err := Validate(s)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestParseWatermark(t *testing.T) {
	v, err := ParseWatermark("9")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), v)

	_, err = ParseWatermark("-1")
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = ParseWatermark("")
	assert.ErrorIs(t, err, ErrConfiguration)
}
