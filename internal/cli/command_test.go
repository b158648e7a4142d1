package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafCommandBuild(t *testing.T) {
	cmd := LeafCommand{
		Use:   "log",
		Short: "Log today's feedback",
		Args:  cobra.ExactArgs(1),
		BoolFlags: []BoolFlag{
			{Name: "yes", Usage: "skip confirmation prompt", Default: false},
			{Name: "static", Usage: "print a static calendar", Default: true},
		},
		StrFlags: []StringFlag{
			{Name: "output", Usage: "output file", Default: "relatorio.pdf"},
		},
		StrArrayFlags: []StringArrayFlag{
			{Name: "exercise", Usage: "exercise as NAME:SETSxREPS"},
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}.Build()

	assert.Equal(t, "log", cmd.Use)
	assert.Equal(t, "Log today's feedback", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	yes := cmd.Flags().Lookup("yes")
	require.NotNil(t, yes)
	assert.Equal(t, "false", yes.DefValue)

	static := cmd.Flags().Lookup("static")
	require.NotNil(t, static)
	assert.Equal(t, "true", static.DefValue)

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "relatorio.pdf", output.DefValue)

	require.NoError(t, cmd.ParseFlags([]string{"--exercise", "a", "--exercise", "b,c"}))
	exercises, err := cmd.Flags().GetStringArray("exercise")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b,c"}, exercises)
}

func TestLeafCommandBuildNoFlags(t *testing.T) {
	cmd := LeafCommand{
		Use:   "remind",
		Short: "Send exercise reminders",
		RunE:  func(cmd *cobra.Command, args []string) error { return nil },
	}.Build()

	assert.Equal(t, "remind", cmd.Use)
	assert.False(t, cmd.HasFlags())
}

func TestGroupCommandBuild(t *testing.T) {
	add := &cobra.Command{Use: "add"}
	list := &cobra.Command{Use: "list"}

	cmd := GroupCommand{
		Use:         "athlete",
		Short:       "Manage athletes",
		Subcommands: []*cobra.Command{add, list},
	}.Build()

	assert.Equal(t, "athlete", cmd.Use)
	assert.Equal(t, "Manage athletes", cmd.Short)
	assert.Nil(t, cmd.RunE)

	names := make([]string, len(cmd.Commands()))
	for i, c := range cmd.Commands() {
		names[i] = c.Name()
	}
	assert.Contains(t, names, "add")
	assert.Contains(t, names, "list")
}

func TestGroupCommandBuildNoSubcommands(t *testing.T) {
	cmd := GroupCommand{
		Use:   "push",
		Short: "Manage push notifications",
	}.Build()

	assert.Equal(t, "push", cmd.Use)
	assert.Empty(t, cmd.Commands())
}
