package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/clubhouse/internal/models"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("team", " 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = ParseID("team", "twelve")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = ParseID("staff", "-3")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestStringFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().String("name", "", "")
	cmd.Flags().String("nickname", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--nickname", ""}))

	name, nickname := "Red FC", "The Reds"
	changed := StringFlags(cmd, map[string]*string{"name": &name, "nickname": &nickname, "missing": &name})

	assert.True(t, changed)
	assert.Equal(t, "Red FC", name)
	assert.Equal(t, "", nickname)

	fresh := &cobra.Command{Use: "y"}
	fresh.Flags().String("name", "", "")
	assert.False(t, StringFlags(fresh, map[string]*string{"name": &name}))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "50,000", Count(50000))
	assert.Equal(t, "7", Count(7))
}

func TestGetCLIFromContext(t *testing.T) {
	_, err := GetCLIFromContext(context.Background())
	assert.ErrorIs(t, err, ErrUsage)

	c := &CLI{}
	got, err := GetCLIFromContext(WithCLI(context.Background(), c))
	require.NoError(t, err)
	assert.Same(t, c, got)
}
