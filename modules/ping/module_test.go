package ping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cmdsync/internal/catalog"
	"github.com/vk/cmdsync/internal/registry"
)

func TestModule_Register(t *testing.T) {
	reg := registry.New()
	(&Module{}).Register(reg)
	require.Equal(t, []string{Ref}, reg.Refs())

	d, err := catalog.NewLoader(reg).Load(context.Background(), Ref)
	require.NoError(t, err)
	assert.Equal(t, "ping", d.Name())
	assert.JSONEq(t, `{"name":"ping","description":"Check that the bot is alive","dm_permission":true}`, string(d.Metadata()))
}
