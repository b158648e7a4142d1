package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func execCompletion(shell string) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := newCompletionCmd()
	cmd.SetOut(stdout)
	err := runCompletion(cmd, shell)
	return stdout.String(), err
}

func TestCompletionShells(t *testing.T) {
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			out, err := execCompletion(shell)
			assert.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}

func TestCompletionInvalidShell(t *testing.T) {
	_, err := execCompletion("tcsh")
	assert.EqualError(t, err, "unsupported shell: tcsh (valid: bash, zsh, fish, powershell)")
}

func TestShellFromEnv(t *testing.T) {
	assert.Equal(t, "zsh", shellFromEnv("/bin/zsh"))
	assert.Equal(t, "fish", shellFromEnv("/usr/local/bin/fish"))
	assert.Equal(t, "", shellFromEnv("/bin/tcsh"))
	assert.Equal(t, "", shellFromEnv(""))
}

func TestCompletionAutoDetect(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")
	stdout := new(bytes.Buffer)
	cmd := newCompletionCmd()
	cmd.SetOut(stdout)
	cmd.SetArgs([]string{})
	assert.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "bash")
}
