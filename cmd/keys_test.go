package cmd

import (
	"bytes"
	"testing"

	domain "github.com/inference-gateway/hotcli/internal/domain"
	cobra "github.com/spf13/cobra"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestCheckCombo(t *testing.T) {
	tests := []struct {
		name     string
		combo    string
		wantErr  error
		contains []string
	}{
		{
			name:     "valid combo",
			combo:    "Ctrl+P+O",
			contains: []string{"combo:   ctrl+p+o", "tokens:  ctrl, p, o", "release: o"},
		},
		{
			name:     "unknown token warns",
			combo:    "ctrl+hyper",
			contains: []string{"warning: unknown tokens hyper"},
		},
		{name: "reserved", combo: "ctrl+c", wantErr: domain.ErrReservedCombo},
		{name: "malformed", combo: "ctrl++s", wantErr: domain.ErrMalformedCombo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			out := &bytes.Buffer{}
			cmd.SetOut(out)

			err := checkCombo(cmd, []string{tt.combo})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out := &bytes.Buffer{}
	versionCmd.SetOut(out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "hotcli version "+version)
	assert.Contains(t, out.String(), "headless")
}
